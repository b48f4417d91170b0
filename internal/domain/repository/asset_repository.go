package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// AssetFilter criterios de listado. El filtro de tenant no viaja aquí: llega
// como authz.Scope derivado del principal, para que ningún caller lo omita.
type AssetFilter struct {
	Status    string
	Condition string
	Category  string
	Search    string // matchea contra name y asset_number
}

// AssetRepository puerto de persistencia para activos.
//
// Create devuelve domain.ErrDuplicate si el asset_number ya existe en la
// company (constraint único compuesto). UpdateVersioned compara el sello
// optimista: si la versión cambió desde la lectura devuelve
// domain.ErrConcurrentModification y no escribe nada.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	UpdateVersioned(ctx context.Context, asset *entity.Asset, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, scope authz.Scope, filter AssetFilter, limit, offset int) ([]*entity.Asset, int, error)
}
