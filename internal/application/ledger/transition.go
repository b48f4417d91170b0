package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/depreciation"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Transition cambia el estado del ciclo de vida de un activo. La transición
// solo se aplica si el registro disparador referenciado ya está en su estado
// terminal (movimiento aprobado u orden completada); las solicitudes
// pendientes no producen ningún cambio especulativo.
func (uc *LedgerUseCase) Transition(ctx context.Context, p authz.Principal, assetID string, in dto.AssetTransitionRequest) (*dto.AssetResponse, error) {
	asset, err := uc.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	action := authz.ActionAssetUpdate
	if lifecycle.IsTerminal(in.RequestedStatus) {
		action = authz.ActionAssetDispose
	}
	if err := uc.authorize(p, action, asset.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, asset.CompanyID); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	var out *entity.Asset
	err = uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		movements repository.MovementRepository,
		workorders repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		// Releer dentro de la tx: el sello optimista arbitra la carrera con
		// otros escritores.
		current, err := assets.GetByID(ctx, assetID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		trig, err := resolveTrigger(ctx, movements, workorders, current, in.TriggeringRecordID)
		if err != nil {
			return err
		}
		out, err = uc.applyTransition(ctx, assets, audits, p, current, in.RequestedStatus, trig, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toAssetResponse(out), nil
}

// resolveTrigger busca el registro disparador: primero como movimiento, luego
// como orden de trabajo. Debe pertenecer al mismo activo.
func resolveTrigger(
	ctx context.Context,
	movements repository.MovementRepository,
	workorders repository.WorkOrderRepository,
	asset *entity.Asset,
	recordID string,
) (lifecycle.Trigger, error) {
	var trig lifecycle.Trigger
	if recordID == "" {
		return trig, nil
	}
	m, err := movements.GetByID(ctx, recordID)
	if err != nil {
		return trig, err
	}
	if m != nil {
		if m.AssetID != asset.ID {
			return trig, domain.ErrNotFound
		}
		trig.Movement = m
		return trig, nil
	}
	w, err := workorders.GetByID(ctx, recordID)
	if err != nil {
		return trig, err
	}
	if w != nil {
		if w.AssetID != asset.ID {
			return trig, domain.ErrNotFound
		}
		trig.WorkOrder = w
		return trig, nil
	}
	return trig, fmt.Errorf("registro disparador %s: %w", recordID, domain.ErrNotFound)
}

// applyTransition valida contra la máquina de estados, congela la depreciación
// al disponer, persiste con sello optimista y audita. Corre siempre dentro de
// la transacción del caller.
func (uc *LedgerUseCase) applyTransition(
	ctx context.Context,
	assets repository.AssetRepository,
	audits repository.AuditLogRepository,
	p authz.Principal,
	asset *entity.Asset,
	target string,
	trig lifecycle.Trigger,
	now time.Time,
) (*entity.Asset, error) {
	if err := lifecycle.Validate(asset.Status, target, trig); err != nil {
		return nil, err
	}

	before := *asset
	expected := asset.Version

	if target == entity.AssetStatusDisposed {
		disposedAt := now
		asset.DisposedAt = &disposedAt
	}

	// El valor en libros queda fijado al momento de la transición; con
	// DisposedAt puesto, consultas futuras devuelven el mismo valor.
	res, err := depreciation.ComputeAsOf(depreciation.FromAsset(asset), now)
	if err != nil {
		return nil, err
	}
	asset.AccumulatedDepreciation = res.AccumulatedDepreciation
	asset.BookValue = res.BookValue

	asset.Status = target
	asset.Version = expected + 1
	asset.UpdatedAt = now

	if err := assets.UpdateVersioned(ctx, asset, expected); err != nil {
		return nil, err
	}
	if err := uc.recorder.Append(ctx, audits, now, audit.Entry{
		CompanyID:       asset.CompanyID,
		EntityType:      "asset",
		EntityID:        asset.ID,
		Action:          "asset.transition",
		ActorID:         p.UserID,
		Before:          &before,
		After:           asset,
		ComplianceEvent: lifecycle.IsTerminal(target),
	}); err != nil {
		return nil, err
	}
	return asset, nil
}
