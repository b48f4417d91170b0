package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/depreciation"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Update aplica un parche sobre un activo con sello optimista: si la versión
// del request ya no es la actual, falla con ErrConcurrentModification y el
// caller debe releer y reintentar. Nunca se pisa una escritura en silencio.
func (uc *LedgerUseCase) Update(ctx context.Context, p authz.Principal, assetID string, in dto.AssetUpdateRequest) (*dto.AssetResponse, error) {
	asset, err := uc.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionAssetUpdate, asset.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, asset.CompanyID); err != nil {
		return nil, err
	}
	if asset.IsTerminal() {
		return nil, domain.ErrImmutableRecord
	}

	before := *asset
	applyPatch(asset, in)
	if err := validatePatched(asset); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	res, err := depreciation.ComputeAsOf(depreciation.FromAsset(asset), now)
	if err != nil {
		return nil, err
	}
	asset.AccumulatedDepreciation = res.AccumulatedDepreciation
	asset.BookValue = res.BookValue
	asset.Version = in.Version + 1
	asset.UpdatedAt = now

	err = uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		_ repository.MovementRepository,
		_ repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		if err := assets.UpdateVersioned(ctx, asset, in.Version); err != nil {
			return err
		}
		return uc.recorder.Append(ctx, audits, now, audit.Entry{
			CompanyID:  asset.CompanyID,
			EntityType: "asset",
			EntityID:   asset.ID,
			Action:     "asset.update",
			ActorID:    p.UserID,
			Before:     &before,
			After:      asset,
		})
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

func applyPatch(a *entity.Asset, in dto.AssetUpdateRequest) {
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.SerialNumber != nil {
		a.SerialNumber = *in.SerialNumber
	}
	if in.Condition != nil {
		a.Condition = *in.Condition
	}
	if in.Criticality != nil {
		a.Criticality = *in.Criticality
	}
	if in.SalvageValue != nil {
		a.SalvageValue = *in.SalvageValue
	}
	if in.UsefulLifeYears != nil {
		a.UsefulLifeYears = *in.UsefulLifeYears
	}
	if in.DepreciationMethod != nil {
		a.DepreciationMethod = *in.DepreciationMethod
	}
	if in.UnitsToDate != nil {
		a.UnitsToDate = in.UnitsToDate
	}
	if in.TotalExpectedUnits != nil {
		a.TotalExpectedUnits = in.TotalExpectedUnits
	}
	if in.LastAuditDate != nil {
		a.LastAuditDate = in.LastAuditDate
	}
	if in.NextAuditDate != nil {
		a.NextAuditDate = in.NextAuditDate
	}
	if in.ComplianceStatus != nil {
		a.ComplianceStatus = *in.ComplianceStatus
	}
}

func validatePatched(a *entity.Asset) error {
	if a.Name == "" {
		return fmt.Errorf("name no puede quedar vacío: %w", domain.ErrInvalidInput)
	}
	if a.SalvageValue.IsNegative() || a.SalvageValue.GreaterThan(a.PurchaseCost) {
		return fmt.Errorf("salvage_value fuera de rango: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidDepreciationMethod(a.DepreciationMethod) {
		return fmt.Errorf("depreciation_method desconocido: %w", domain.ErrInvalidDepreciationInput)
	}
	if !entity.ValidCondition(a.Condition) {
		return fmt.Errorf("condition desconocida: %w", domain.ErrInvalidInput)
	}
	return nil
}
