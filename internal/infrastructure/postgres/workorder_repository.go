package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, company_id, asset_id, title, description, status, assigned_to,
	labor_cost, parts_cost, total_cost, opened_by, started_at, completed_at,
	version, created_at, updated_at`

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create persiste una nueva orden de trabajo.
func (r *WorkOrderRepo) Create(ctx context.Context, w *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.CompanyID, w.AssetID, w.Title, w.Description, w.Status, w.AssignedTo,
		w.LaborCost, w.PartsCost, w.TotalCost, w.OpenedBy, w.StartedAt, w.CompletedAt,
		w.Version, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	var w entity.WorkOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.CompanyID, &w.AssetID, &w.Title, &w.Description, &w.Status, &w.AssignedTo,
		&w.LaborCost, &w.PartsCost, &w.TotalCost, &w.OpenedBy, &w.StartedAt, &w.CompletedAt,
		&w.Version, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return &w, nil
}

// UpdateVersioned escribe la orden con el mismo sello optimista que los
// activos: cero filas afectadas = modificación concurrente o fila inexistente.
func (r *WorkOrderRepo) UpdateVersioned(ctx context.Context, w *entity.WorkOrder, expectedVersion int64) error {
	query := `
		UPDATE work_orders SET
			title = $3, description = $4, status = $5, assigned_to = $6,
			labor_cost = $7, parts_cost = $8, total_cost = $9,
			started_at = $10, completed_at = $11, version = $12, updated_at = $13
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		w.ID, expectedVersion,
		w.Title, w.Description, w.Status, w.AssignedTo,
		w.LaborCost, w.PartsCost, w.TotalCost,
		w.StartedAt, w.CompletedAt, w.Version, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.GetByID(ctx, w.ID)
		if err != nil {
			return err
		}
		if exists == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentModification
	}
	return nil
}

// AnyCompletedForAsset informa si el activo tiene al menos una orden completada.
func (r *WorkOrderRepo) AnyCompletedForAsset(ctx context.Context, assetID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM work_orders WHERE asset_id = $1 AND status = $2)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, assetID, entity.WorkOrderCompleted).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed work orders: %w", err)
	}
	return exists, nil
}

// ListByAsset lista las órdenes de un activo, más recientes primero.
func (r *WorkOrderRepo) ListByAsset(ctx context.Context, assetID string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + ` FROM work_orders
		WHERE asset_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, assetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.WorkOrder
	for rows.Next() {
		var w entity.WorkOrder
		if err := rows.Scan(
			&w.ID, &w.CompanyID, &w.AssetID, &w.Title, &w.Description, &w.Status, &w.AssignedTo,
			&w.LaborCost, &w.PartsCost, &w.TotalCost, &w.OpenedBy, &w.StartedAt, &w.CompletedAt,
			&w.Version, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	return out, nil
}
