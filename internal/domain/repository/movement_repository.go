package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia para solicitudes de movimiento.
// Resolve escribe la resolución (approved/rejected) solo si la fila sigue
// pending; si ya fue resuelta devuelve domain.ErrImmutableRecord.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.AssetMovement) error
	GetByID(ctx context.Context, id string) (*entity.AssetMovement, error)
	Resolve(ctx context.Context, m *entity.AssetMovement) error
	ListByAsset(ctx context.Context, assetID string, limit, offset int) ([]*entity.AssetMovement, error)
}
