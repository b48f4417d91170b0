package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/lifecycle"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// CreateWorkOrder abre una orden de trabajo sobre un activo no terminal.
func (uc *LedgerUseCase) CreateWorkOrder(ctx context.Context, p authz.Principal, in dto.WorkOrderCreateRequest) (*dto.WorkOrderResponse, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title es requerido: %w", domain.ErrInvalidInput)
	}
	asset, err := uc.loadAsset(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionWorkOrderManage, asset.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, asset.CompanyID); err != nil {
		return nil, err
	}
	if asset.IsTerminal() {
		return nil, domain.ErrImmutableRecord
	}

	now := uc.clk.Now()
	wo := &entity.WorkOrder{
		ID:          uuid.New().String(),
		CompanyID:   asset.CompanyID,
		AssetID:     asset.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.WorkOrderOpen,
		AssignedTo:  in.AssignedTo,
		LaborCost:   decimal.Zero,
		PartsCost:   decimal.Zero,
		TotalCost:   decimal.Zero,
		OpenedBy:    p.UserID,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.tx.Run(ctx, func(
		_ repository.AssetRepository,
		_ repository.MovementRepository,
		workorders repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		if err := workorders.Create(ctx, wo); err != nil {
			return err
		}
		return uc.recorder.Append(ctx, audits, now, audit.Entry{
			CompanyID:  wo.CompanyID,
			EntityType: "workorder",
			EntityID:   wo.ID,
			Action:     "workorder.create",
			ActorID:    p.UserID,
			After:      wo,
		})
	})
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(wo), nil
}

// UpdateWorkOrderStatus transiciona la orden según su propia tabla de estados.
// Al completar hace el roll-up de costos y, si el activo está en maintenance,
// lo devuelve a active en la misma transacción: la orden completada es el
// único disparador legítimo de esa transición.
func (uc *LedgerUseCase) UpdateWorkOrderStatus(ctx context.Context, p authz.Principal, workOrderID string, in dto.WorkOrderStatusRequest) (*dto.WorkOrderResponse, error) {
	peek, err := uc.workOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionWorkOrderManage, peek.CompanyID); err != nil {
		return nil, err
	}
	if _, err := uc.requireActiveTenant(ctx, peek.CompanyID); err != nil {
		return nil, err
	}

	now := uc.clk.Now()
	var out *entity.WorkOrder
	err = uc.tx.Run(ctx, func(
		assets repository.AssetRepository,
		_ repository.MovementRepository,
		workorders repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error {
		wo, err := workorders.GetByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if wo == nil {
			return domain.ErrNotFound
		}
		if !wo.CanMoveTo(in.Status) {
			return &domain.IllegalTransitionError{From: wo.Status, To: in.Status}
		}
		// Sello optimista del caller: si la orden cambió desde su lectura, debe
		// releer antes de decidir la transición.
		if in.Version != wo.Version {
			return domain.ErrConcurrentModification
		}

		before := *wo
		expected := wo.Version
		wo.Status = in.Status
		switch in.Status {
		case entity.WorkOrderInProgress:
			if wo.StartedAt == nil {
				startedAt := now
				wo.StartedAt = &startedAt
			}
		case entity.WorkOrderCompleted:
			if in.LaborCost != nil {
				wo.LaborCost = *in.LaborCost
			}
			if in.PartsCost != nil {
				wo.PartsCost = *in.PartsCost
			}
			if wo.LaborCost.IsNegative() || wo.PartsCost.IsNegative() {
				return fmt.Errorf("costos negativos: %w", domain.ErrInvalidInput)
			}
			wo.TotalCost = wo.LaborCost.Add(wo.PartsCost)
			completedAt := now
			wo.CompletedAt = &completedAt
		}
		wo.Version = expected + 1
		wo.UpdatedAt = now

		if err := workorders.UpdateVersioned(ctx, wo, expected); err != nil {
			return err
		}
		if err := uc.recorder.Append(ctx, audits, now, audit.Entry{
			CompanyID:  wo.CompanyID,
			EntityType: "workorder",
			EntityID:   wo.ID,
			Action:     "workorder." + in.Status,
			ActorID:    p.UserID,
			Before:     &before,
			After:      wo,
		}); err != nil {
			return err
		}

		if in.Status == entity.WorkOrderCompleted {
			asset, err := assets.GetByID(ctx, wo.AssetID)
			if err != nil {
				return err
			}
			if asset != nil && asset.Status == entity.AssetStatusMaintenance {
				trig := lifecycle.Trigger{WorkOrder: wo}
				if _, err := uc.applyTransition(ctx, assets, audits, p, asset, entity.AssetStatusActive, trig, now); err != nil {
					return err
				}
			}
		}
		out = wo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(out), nil
}

func (uc *LedgerUseCase) workOrderByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	var out *entity.WorkOrder
	err := uc.tx.Run(ctx, func(
		_ repository.AssetRepository,
		_ repository.MovementRepository,
		workorders repository.WorkOrderRepository,
		_ repository.AuditLogRepository,
	) error {
		w, err := workorders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out = w
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
