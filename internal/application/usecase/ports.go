package usecase

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// IdentityTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de identidad (empresas, usuarios, auditoría) atados a esa tx.
// Lo usan el alta de empresas y de usuarios para que la asignación de códigos
// y la creación de la entidad que los consume sean una sola unidad atómica.
type IdentityTxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
		audits repository.AuditLogRepository,
	) error) error
}
