package ledger

import (
	"context"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/depreciation"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Delete da de baja un activo. Con historia financiera la baja es lógica
// (pasa a disposed y congela la depreciación); el borrado físico queda
// reservado para activos sin actividad financiera registrada.
func (uc *LedgerUseCase) Delete(ctx context.Context, p authz.Principal, assetID string) (*dto.AssetResponse, error) {
	asset, err := uc.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionAssetDelete, asset.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, asset.CompanyID); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	var out *entity.Asset
	err = uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		_ repository.MovementRepository,
		workorders repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		current, err := assets.GetByID(ctx, assetID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.IsTerminal() {
			return domain.ErrImmutableRecord
		}

		// Actividad financiera: depreciación acumulada o mantenimiento ya
		// facturado (orden completada con roll-up de costos).
		hasHistory := current.HasFinancialHistory()
		if !hasHistory {
			billed, err := workorders.AnyCompletedForAsset(ctx, current.ID)
			if err != nil {
				return err
			}
			hasHistory = billed
		}

		if !hasHistory {
			// Borrado físico: sin actividad financiera no hay nada que
			// preservar más allá del propio rastro de auditoría.
			if err := uc.recorder.Append(ctx, audits, now, audit.Entry{
				CompanyID:       current.CompanyID,
				EntityType:      "asset",
				EntityID:        current.ID,
				Action:          "asset.delete",
				ActorID:         p.UserID,
				Before:          current,
				ComplianceEvent: true,
			}); err != nil {
				return err
			}
			out = nil
			return assets.Delete(ctx, current.ID)
		}

		// Baja lógica: disposición administrativa con congelamiento.
		before := *current
		expected := current.Version
		disposedAt := now
		current.DisposedAt = &disposedAt

		res, err := depreciation.ComputeAsOf(depreciation.FromAsset(current), now)
		if err != nil {
			return err
		}
		current.AccumulatedDepreciation = res.AccumulatedDepreciation
		current.BookValue = res.BookValue
		current.Status = entity.AssetStatusDisposed
		current.Version = expected + 1
		current.UpdatedAt = now

		if err := assets.UpdateVersioned(ctx, current, expected); err != nil {
			return err
		}
		if err := uc.recorder.Append(ctx, audits, now, audit.Entry{
			CompanyID:       current.CompanyID,
			EntityType:      "asset",
			EntityID:        current.ID,
			Action:          "asset.logical_delete",
			ActorID:         p.UserID,
			Before:          &before,
			After:           current,
			ComplianceEvent: true,
		}); err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(out), nil
}
