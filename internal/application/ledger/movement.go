package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// RequestMovement crea una solicitud de movimiento en estado pending. El
// estado del activo no cambia aquí: la transición solo ocurre al aprobar.
func (uc *LedgerUseCase) RequestMovement(ctx context.Context, p authz.Principal, in dto.MovementRequest) (*dto.MovementResponse, error) {
	if !entity.ValidMovementType(in.MovementType) {
		return nil, fmt.Errorf("movement_type desconocido: %w", domain.ErrInvalidInput)
	}
	asset, err := uc.loadAsset(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionMovementRequest, asset.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, asset.CompanyID); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	movement := &entity.AssetMovement{
		ID:             uuid.New().String(),
		CompanyID:      asset.CompanyID,
		AssetID:        asset.ID,
		MovementType:   in.MovementType,
		FromLocation:   in.FromLocation,
		ToLocation:     in.ToLocation,
		FromUserID:     in.FromUserID,
		ToUserID:       in.ToUserID,
		ApprovalStatus: entity.ApprovalPending,
		Notes:          in.Notes,
		RequestedBy:    p.UserID,
		RequestedAt:    now,
		CreatedAt:      now,
	}

	// Feedback temprano: si el movimiento implica un cambio de estado que la
	// tabla nunca permitiría desde el estado actual, se rechaza la solicitud
	// en lugar de dejarla pendiente condenada.
	if target := movement.TargetStatus(); target != "" {
		if err := lifecycle.CanTransition(asset.Status, target); err != nil {
			return nil, err
		}
	}

	err = uc.tx.Run(ctx, func(
		_ repository.AssetRepository,
		movements repository.MovementRepository,
		_ repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		if err := movements.Create(ctx, movement); err != nil {
			return err
		}
		return uc.recorder.Append(ctx, audits, now, audit.Entry{
			CompanyID:  movement.CompanyID,
			EntityType: "movement",
			EntityID:   movement.ID,
			Action:     "movement.request",
			ActorID:    p.UserID,
			After:      movement,
		})
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ResolveMovement aprueba o rechaza una solicitud pendiente. La resolución es
// única e inmutable. Si se aprueba un movimiento que dispara un cambio de
// estado, la transición del activo se aplica en la misma transacción.
func (uc *LedgerUseCase) ResolveMovement(ctx context.Context, p authz.Principal, movementID string, in dto.MovementResolveRequest) (*dto.MovementResponse, error) {
	// Lectura pool-bound solo para autorizar contra el tenant correcto.
	peek, err := uc.movementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionMovementApprove, peek.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, peek.CompanyID); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	var out *entity.AssetMovement
	err = uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		movements repository.MovementRepository,
		_ repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		movement, err := movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Resolved() {
			return domain.ErrImmutableRecord
		}

		before := *movement
		movement.ApprovalStatus = entity.ApprovalRejected
		action := "movement.reject"
		if in.Approve {
			movement.ApprovalStatus = entity.ApprovalApproved
			action = "movement.approve"
		}
		if in.Notes != "" {
			movement.Notes = in.Notes
		}
		movement.ResolvedBy = p.UserID
		resolvedAt := now
		movement.ResolvedAt = &resolvedAt

		if err := movements.Resolve(ctx, movement); err != nil {
			return err
		}
		if err := uc.recorder.Append(ctx, audits, now, audit.Entry{
			CompanyID:       movement.CompanyID,
			EntityType:      "movement",
			EntityID:        movement.ID,
			Action:          action,
			ActorID:         p.UserID,
			Before:          &before,
			After:           movement,
			ComplianceEvent: in.Approve && movement.TargetStatus() != "",
		}); err != nil {
			return err
		}

		// La aprobación dispara la transición del activo, atómica con la
		// resolución: o ambas quedan o ninguna.
		if in.Approve {
			if target := movement.TargetStatus(); target != "" {
				asset, err := assets.GetByID(ctx, movement.AssetID)
				if err != nil {
					return err
				}
				if asset == nil {
					return domain.ErrNotFound
				}
				trig := lifecycle.Trigger{Movement: movement}
				if _, err := uc.applyTransition(ctx, assets, audits, p, asset, target, trig, now); err != nil {
					return err
				}
			}
		}
		out = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(out), nil
}

// movementByID lectura pool-bound vía el TxRunner no aplica; se usa una tx de
// solo lectura corta para reutilizar los mismos adaptadores.
func (uc *LedgerUseCase) movementByID(ctx context.Context, id string) (*entity.AssetMovement, error) {
	var out *entity.AssetMovement
	err := uc.tx.Run(ctx, func(
		_ repository.AssetRepository,
		movements repository.MovementRepository,
		_ repository.WorkOrderRepository,
		_ repository.AuditLogRepository,
	) error {
		m, err := movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}
