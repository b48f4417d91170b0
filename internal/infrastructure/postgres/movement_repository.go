package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, company_id, asset_id, movement_type, from_location, to_location,
	from_user_id, to_user_id, approval_status, notes, requested_by, resolved_by,
	requested_at, resolved_at, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste una nueva solicitud de movimiento en estado pending.
func (r *MovementRepo) Create(ctx context.Context, m *entity.AssetMovement) error {
	query := `
		INSERT INTO asset_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.AssetID, m.MovementType, m.FromLocation, m.ToLocation,
		m.FromUserID, m.ToUserID, m.ApprovalStatus, m.Notes, m.RequestedBy, m.ResolvedBy,
		m.RequestedAt, m.ResolvedAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.AssetMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM asset_movements WHERE id = $1`
	var m entity.AssetMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.CompanyID, &m.AssetID, &m.MovementType, &m.FromLocation, &m.ToLocation,
		&m.FromUserID, &m.ToUserID, &m.ApprovalStatus, &m.Notes, &m.RequestedBy, &m.ResolvedBy,
		&m.RequestedAt, &m.ResolvedAt, &m.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Resolve escribe la resolución solo si la fila sigue pending. El predicado en
// el WHERE hace la escritura de única vez: si cero filas cambiaron, la
// solicitud ya estaba resuelta (ErrImmutableRecord) o no existe (ErrNotFound).
func (r *MovementRepo) Resolve(ctx context.Context, m *entity.AssetMovement) error {
	query := `
		UPDATE asset_movements SET approval_status = $2, resolved_by = $3, resolved_at = $4, notes = $5
		WHERE id = $1 AND approval_status = 'pending'`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.ApprovalStatus, m.ResolvedBy, m.ResolvedAt, m.Notes,
	)
	if err != nil {
		return fmt.Errorf("resolve movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if exists == nil {
			return domain.ErrNotFound
		}
		return domain.ErrImmutableRecord
	}
	return nil
}

// ListByAsset lista los movimientos de un activo, más recientes primero.
func (r *MovementRepo) ListByAsset(ctx context.Context, assetID string, limit, offset int) ([]*entity.AssetMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM asset_movements
		WHERE asset_id = $1 ORDER BY requested_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, assetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.AssetMovement
	for rows.Next() {
		var m entity.AssetMovement
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.AssetID, &m.MovementType, &m.FromLocation, &m.ToLocation,
			&m.FromUserID, &m.ToUserID, &m.ApprovalStatus, &m.Notes, &m.RequestedBy, &m.ResolvedBy,
			&m.RequestedAt, &m.ResolvedAt, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return out, nil
}
