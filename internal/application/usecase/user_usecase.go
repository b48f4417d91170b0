package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/identifier"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/clock"
)

// UserUseCase administración de usuarios. El employee ID se asigna con el
// allocator en el ámbito de la company; los permisos iniciales salen del
// mapeo rol -> permisos de configuración (datos, no lógica).
type UserUseCase struct {
	tx        IdentityTxRunner
	users     repository.UserRepository
	companies repository.CompanyRepository
	auth      *authz.Engine
	recorder  *audit.Recorder
	clk       clock.Clock
	rolePerms map[string][]string
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	tx IdentityTxRunner,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	auth *authz.Engine,
	recorder *audit.Recorder,
	clk clock.Clock,
	rolePerms map[string][]string,
) *UserUseCase {
	return &UserUseCase{
		tx:        tx,
		users:     users,
		companies: companies,
		auth:      auth,
		recorder:  recorder,
		clk:       clk,
		rolePerms: rolePerms,
	}
}

// Create da de alta un usuario dentro de una company. Requiere user.manage
// sobre el tenant destino; solo super_admin puede crear en otro tenant.
func (uc *UserUseCase) Create(ctx context.Context, p authz.Principal, in dto.RegisterRequest) (*dto.UserResponse, error) {
	targetTenant := in.CompanyID
	if targetTenant == "" {
		targetTenant = p.TenantID
	}
	if d := uc.auth.Authorize(p, authz.ActionUserManage, targetTenant); !d.Allowed {
		return nil, d.Err()
	}
	if err := validateNewUser(in); err != nil {
		return nil, err
	}
	role := authz.Role(in.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("role desconocido: %w", domain.ErrInvalidInput)
	}
	// Solo un super_admin puede otorgar super_admin.
	if role == authz.RoleSuperAdmin && p.Role != authz.RoleSuperAdmin {
		return nil, authz.Deny(authz.ReasonInsufficientRole).Err()
	}

	now := uc.clk.Now()
	company, err := uc.companies.GetByID(ctx, targetTenant)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.ActiveAt(now) {
		return nil, domain.ErrTenantInactive
	}

	// Pre-chequeo de email para un error claro; la carrera residual la
	// resuelve el constraint único en el insert.
	existing, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email ya registrado: %w", domain.ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    targetTenant,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Permissions:  defaultPermissions(uc.rolePerms, in.Role),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = identifier.Allocate(ctx, identifier.BaseCode(name), func(ctx context.Context, code string) error {
		user.EmployeeID = code
		return uc.tx.RunIdentity(ctx, func(
			_ repository.CompanyRepository,
			users repository.UserRepository,
			audits repository.AuditLogRepository,
		) error {
			if err := users.Create(ctx, user); err != nil {
				return err
			}
			return uc.recorder.Append(ctx, audits, now, audit.Entry{
				CompanyID:  user.CompanyID,
				EntityType: "user",
				EntityID:   user.ID,
				Action:     "user.create",
				ActorID:    p.UserID,
				After:      sanitizeUser(user),
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List lista los usuarios visibles para el principal.
func (uc *UserUseCase) List(ctx context.Context, p authz.Principal, page dto.PageRequest) ([]dto.UserResponse, error) {
	if d := uc.auth.Authorize(p, authz.ActionUserManage, p.TenantID); !d.Allowed {
		return nil, d.Err()
	}
	page.DefaultPage()
	scope := uc.auth.ScopeFilter(p)
	list, err := uc.users.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

func validateNewUser(in dto.RegisterRequest) error {
	if in.Email == "" {
		return fmt.Errorf("email es requerido: %w", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return fmt.Errorf("password de al menos 8 caracteres: %w", domain.ErrInvalidInput)
	}
	return nil
}

// defaultPermissions copia el conjunto por defecto del rol; el conjunto
// persistido del usuario es el que manda de ahí en adelante.
func defaultPermissions(rolePerms map[string][]string, role string) []string {
	src := rolePerms[role]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// sanitizeUser snapshot sin hash de password para el rastro de auditoría.
func sanitizeUser(u *entity.User) *entity.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

// ToUserResponse convierte la entidad a DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		EmployeeID:  u.EmployeeID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
