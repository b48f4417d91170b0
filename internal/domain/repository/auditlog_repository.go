package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// AuditLogRepository puerto append-only del rastro de auditoría. No hay
// Update ni Delete: las filas son inmutables por contrato de cumplimiento.
// LastForEntity devuelve la fila más reciente de una entidad (nil si no hay),
// de donde el recorder toma el checksum previo de la cadena.
type AuditLogRepository interface {
	Append(ctx context.Context, row *entity.AuditLog) error
	LastForEntity(ctx context.Context, entityType, entityID string) (*entity.AuditLog, error)
	ListForEntity(ctx context.Context, entityType, entityID string) ([]*entity.AuditLog, error)
}
