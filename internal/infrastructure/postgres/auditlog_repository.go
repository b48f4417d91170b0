package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const auditColumns = `id, company_id, entity_type, entity_id, action, actor_id,
	before_snapshot, after_snapshot, compliance_event, prev_checksum, checksum, created_at`

// AuditLogRepo implementación append-only del rastro de auditoría sobre
// PostgreSQL. No expone Update ni Delete: las filas son inmutables.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append persiste una fila del rastro. Siempre insert, nunca upsert.
func (r *AuditLogRepo) Append(ctx context.Context, row *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		row.ID, row.CompanyID, row.EntityType, row.EntityID, row.Action, row.ActorID,
		row.Before, row.After, row.ComplianceEvent, row.PrevChecksum, row.Checksum, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// LastForEntity devuelve la fila más reciente de una entidad, de donde el
// recorder toma el checksum previo. Devuelve (nil, nil) si no hay historia.
func (r *AuditLogRepo) LastForEntity(ctx context.Context, entityType, entityID string) (*entity.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + ` FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, id DESC LIMIT 1`
	var row entity.AuditLog
	err := r.q.QueryRow(ctx, query, entityType, entityID).Scan(
		&row.ID, &row.CompanyID, &row.EntityType, &row.EntityID, &row.Action, &row.ActorID,
		&row.Before, &row.After, &row.ComplianceEvent, &row.PrevChecksum, &row.Checksum, &row.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("last audit log: %w", err)
	}
	return &row, nil
}

// ListForEntity devuelve el rastro completo de una entidad en orden de
// inserción, el orden en que la cadena de checksums se verifica.
func (r *AuditLogRepo) ListForEntity(ctx context.Context, entityType, entityID string) ([]*entity.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + ` FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var row entity.AuditLog
		if err := rows.Scan(
			&row.ID, &row.CompanyID, &row.EntityType, &row.EntityID, &row.Action, &row.ActorID,
			&row.Before, &row.After, &row.ComplianceEvent, &row.PrevChecksum, &row.Checksum, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return out, nil
}
