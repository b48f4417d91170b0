package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/identifier"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/depreciation"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Create da de alta un activo: autoriza, valida invariantes financieros,
// calcula los campos derivados y asigna el número de activo. Cada intento de
// asignación corre su propia transacción completa (insert + auditoría): un
// conflicto de número revierte el intento entero, así un crash nunca deja un
// código reservado sin entidad que lo consuma.
func (uc *LedgerUseCase) Create(ctx context.Context, p authz.Principal, in dto.AssetCreateRequest) (*dto.AssetResponse, error) {
	targetTenant := p.TenantID
	if in.CompanyID != "" && p.Role == authz.RoleSuperAdmin {
		targetTenant = in.CompanyID
	}
	if err := uc.authorize(p, authz.ActionAssetCreate, targetTenant); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, targetTenant); err != nil {
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	asset := newAsset(targetTenant, in, now)

	// Campos derivados al instante del alta. Un activo comprado en el pasado
	// entra con su depreciación ya acumulada.
	res, err := depreciation.ComputeAsOf(depreciation.FromAsset(asset), now)
	if err != nil {
		return nil, err
	}
	asset.AccumulatedDepreciation = res.AccumulatedDepreciation
	asset.BookValue = res.BookValue

	code, err := identifier.Allocate(ctx, identifier.BaseCode(in.Name), func(ctx context.Context, candidate string) error {
		asset.AssetNumber = candidate
		return uc.tx.Run(ctx, func(
			assets repository.AssetRepository,
			_ repository.MovementRepository,
			_ repository.WorkOrderRepository,
			audits repository.AuditLogRepository,
		) error {
			if err := assets.Create(ctx, asset); err != nil {
				return err
			}
			return uc.recorder.Append(ctx, audits, now, audit.Entry{
				CompanyID:  asset.CompanyID,
				EntityType: "asset",
				EntityID:   asset.ID,
				Action:     "asset.create",
				ActorID:    p.UserID,
				After:      asset,
			})
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("asset_id", asset.ID).
		Str("asset_number", code).
		Str("company_id", asset.CompanyID).
		Msg("activo creado")
	return toAssetResponse(asset), nil
}

func newAsset(tenantID string, in dto.AssetCreateRequest, now time.Time) *entity.Asset {
	condition := in.Condition
	if condition == "" {
		condition = entity.ConditionGood
	}
	criticality := in.Criticality
	if criticality == "" {
		criticality = entity.CriticalityMedium
	}
	compliance := entity.ComplianceCompliant
	if in.NextAuditDate != nil {
		compliance = entity.CompliancePending
	}
	return &entity.Asset{
		ID:                 uuid.New().String(),
		CompanyID:          tenantID,
		Name:               in.Name,
		Category:           in.Category,
		SerialNumber:       in.SerialNumber,
		Status:             entity.AssetStatusActive,
		Condition:          condition,
		Criticality:        criticality,
		PurchaseCost:       in.PurchaseCost,
		PurchaseDate:       in.PurchaseDate,
		SalvageValue:       in.SalvageValue,
		UsefulLifeYears:    in.UsefulLifeYears,
		DepreciationMethod: in.DepreciationMethod,
		UnitsToDate:        in.UnitsToDate,
		TotalExpectedUnits: in.TotalExpectedUnits,
		NextAuditDate:      in.NextAuditDate,
		ComplianceStatus:   compliance,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func validateCreate(in dto.AssetCreateRequest) error {
	if in.Name == "" {
		return fmt.Errorf("name es requerido: %w", domain.ErrInvalidInput)
	}
	if in.PurchaseDate.IsZero() {
		return fmt.Errorf("purchase_date es requerido: %w", domain.ErrInvalidInput)
	}
	if in.PurchaseCost.IsNegative() {
		return fmt.Errorf("purchase_cost negativo: %w", domain.ErrInvalidInput)
	}
	if in.SalvageValue.IsNegative() || in.SalvageValue.GreaterThan(in.PurchaseCost) {
		return fmt.Errorf("salvage_value fuera de rango [0, purchase_cost]: %w", domain.ErrInvalidInput)
	}
	if !entity.ValidDepreciationMethod(in.DepreciationMethod) {
		return fmt.Errorf("depreciation_method desconocido: %w", domain.ErrInvalidDepreciationInput)
	}
	if in.DepreciationMethod != entity.DepreciationUnitsOfProduction && in.UsefulLifeYears <= 0 {
		return fmt.Errorf("useful_life_years debe ser > 0: %w", domain.ErrInvalidDepreciationInput)
	}
	if in.Condition != "" && !entity.ValidCondition(in.Condition) {
		return fmt.Errorf("condition desconocida: %w", domain.ErrInvalidInput)
	}
	return nil
}
