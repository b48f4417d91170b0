package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/identifier"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/clock"
)

// CompanyUseCase administración de empresas (tenants). El alta asigna el
// código humano único global vía el allocator; el constraint único de la
// tabla arbitra las carreras entre altas concurrentes.
type CompanyUseCase struct {
	tx       IdentityTxRunner
	repo     repository.CompanyRepository
	auth     *authz.Engine
	recorder *audit.Recorder
	clk      clock.Clock
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(tx IdentityTxRunner, repo repository.CompanyRepository, auth *authz.Engine, recorder *audit.Recorder, clk clock.Clock) *CompanyUseCase {
	return &CompanyUseCase{tx: tx, repo: repo, auth: auth, recorder: recorder, clk: clk}
}

// Create da de alta una empresa. Reservado a super_admin.
func (uc *CompanyUseCase) Create(ctx context.Context, p authz.Principal, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if d := uc.auth.Authorize(p, authz.ActionCompanyManage, p.TenantID); !d.Allowed {
		return nil, d.Err()
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name es requerido: %w", domain.ErrInvalidInput)
	}

	now := uc.clk.Now()
	starts := in.SubscriptionStartsAt
	if starts.IsZero() {
		starts = now
	}
	company := &entity.Company{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		Status:               entity.CompanyStatusActive,
		SubscriptionStartsAt: starts,
		SubscriptionEndsAt:   in.SubscriptionEndsAt,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	_, err := identifier.Allocate(ctx, identifier.BaseCode(in.Name), func(ctx context.Context, code string) error {
		company.Code = code
		return uc.tx.RunIdentity(ctx, func(
			companies repository.CompanyRepository,
			_ repository.UserRepository,
			audits repository.AuditLogRepository,
		) error {
			if err := companies.Create(ctx, company); err != nil {
				return err
			}
			return uc.recorder.Append(ctx, audits, now, audit.Entry{
				CompanyID:  company.ID,
				EntityType: "company",
				EntityID:   company.ID,
				Action:     "company.create",
				ActorID:    p.UserID,
				After:      company,
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID devuelve una empresa. Cada principal solo ve la suya; super_admin
// cualquiera.
func (uc *CompanyUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.CompanyResponse, error) {
	if p.Role != authz.RoleSuperAdmin && p.TenantID != id {
		return nil, authz.Deny(authz.ReasonCrossTenantAccess).Err()
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con paginación. Reservado a super_admin.
func (uc *CompanyUseCase) List(ctx context.Context, p authz.Principal, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if d := uc.auth.Authorize(p, authz.ActionCompanyManage, p.TenantID); !d.Allowed {
		return nil, d.Err()
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                   c.ID,
		Code:                 c.Code,
		Name:                 c.Name,
		Status:               c.Status,
		SubscriptionStartsAt: c.SubscriptionStartsAt,
		SubscriptionEndsAt:   c.SubscriptionEndsAt,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
