package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
// Create devuelve domain.ErrDuplicate si el email o el employee_id ya existen
// dentro de la company.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, scope authz.Scope, limit, offset int) ([]*entity.User, error)
}
