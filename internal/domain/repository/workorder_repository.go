package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// WorkOrderRepository puerto de persistencia para órdenes de trabajo.
// UpdateVersioned aplica el mismo sello optimista que los activos.
// AnyCompletedForAsset informa si el activo tiene al menos una orden
// completada (costos de mantenimiento ya facturados cuentan como actividad
// financiera para la decisión de borrado).
type WorkOrderRepository interface {
	Create(ctx context.Context, w *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	UpdateVersioned(ctx context.Context, w *entity.WorkOrder, expectedVersion int64) error
	ListByAsset(ctx context.Context, assetID string, limit, offset int) ([]*entity.WorkOrder, error)
	AnyCompletedForAsset(ctx context.Context, assetID string) (bool, error)
}
