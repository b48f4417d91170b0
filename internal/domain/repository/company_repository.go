package repository

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para empresas (tenants).
// Create devuelve domain.ErrDuplicate si el código ya existe: el constraint
// único del almacenamiento es el árbitro de la asignación de códigos.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
