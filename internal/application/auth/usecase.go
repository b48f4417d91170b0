package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/identifier"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/clock"
	"github.com/jhoicas/activos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro público (signup de empresa + admin) y login.
type AuthUseCase struct {
	tx        usecase.IdentityTxRunner
	users     repository.UserRepository
	companies repository.CompanyRepository
	recorder  *audit.Recorder
	clk       clock.Clock
	rolePerms map[string][]string
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx usecase.IdentityTxRunner,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	recorder *audit.Recorder,
	clk clock.Clock,
	rolePerms map[string][]string,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		tx:        tx,
		users:     users,
		companies: companies,
		recorder:  recorder,
		clk:       clk,
		rolePerms: rolePerms,
		jwtCfg:    jwtCfg,
	}
}

// Signup crea la empresa y su primer usuario admin en una sola transacción.
// El código de empresa lo asigna el allocator con insert optimista: dos
// registros concurrentes con el mismo nombre obtienen códigos distintos, el
// constraint único decide quién se queda con cada candidato.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	if in.CompanyName == "" {
		return nil, fmt.Errorf("company_name es requerido: %w", domain.ErrInvalidInput)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("email es requerido: %w", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password de al menos 8 caracteres: %w", domain.ErrInvalidInput)
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

	now := uc.clk.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	company := &entity.Company{
		ID:                   uuid.New().String(),
		Name:                 in.CompanyName,
		Status:               entity.CompanyStatusActive,
		SubscriptionStartsAt: now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		EmployeeID:   identifier.BaseCode(name), // company recién creada: sin conflicto posible
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         string(authz.RoleAdmin),
		Permissions:  copyPermissions(uc.rolePerms[string(authz.RoleAdmin)]),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = identifier.Allocate(ctx, identifier.BaseCode(in.CompanyName), func(ctx context.Context, code string) error {
		company.Code = code
		return uc.tx.RunIdentity(ctx, func(
			companies repository.CompanyRepository,
			users repository.UserRepository,
			audits repository.AuditLogRepository,
		) error {
			if err := companies.Create(ctx, company); err != nil {
				return err
			}
			if err := users.Create(ctx, admin); err != nil {
				return err
			}
			if err := uc.recorder.Append(ctx, audits, now, audit.Entry{
				CompanyID:  company.ID,
				EntityType: "company",
				EntityID:   company.ID,
				Action:     "company.signup",
				ActorID:    admin.ID,
				After:      company,
			}); err != nil {
				return err
			}
			return uc.recorder.Append(ctx, audits, now, audit.Entry{
				CompanyID:  company.ID,
				EntityType: "user",
				EntityID:   admin.ID,
				Action:     "user.create",
				ActorID:    admin.ID,
				After:      sanitized(admin),
			})
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.SignupResponse{
		Company: dto.CompanyResponse{
			ID:                   company.ID,
			Code:                 company.Code,
			Name:                 company.Name,
			Status:               company.Status,
			SubscriptionStartsAt: company.SubscriptionStartsAt,
			CreatedAt:            company.CreatedAt,
			UpdatedAt:            company.UpdatedAt,
		},
		User: *usecase.ToUserResponse(admin),
	}, nil
}

// copyPermissions copia el conjunto por defecto del rol: el slice de
// configuración es compartido y no debe quedar aliased en el usuario.
func copyPermissions(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// sanitized snapshot del usuario sin hash de password para auditoría.
func sanitized(u *entity.User) *entity.User {
	clean := *u
	clean.PasswordHash = ""
	return &clean
}

// Login verifica credenciales y genera el JWT con rol y permisos. El token es
// la única fuente del principal en requests posteriores.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("credenciales inválidas: %w", domain.ErrInvalidInput)
	}
	if user.Status != entity.UserStatusActive {
		return nil, authz.Deny(authz.ReasonInactivePrincipal).Err()
	}
	company, err := uc.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.ActiveAt(uc.clk.Now()) {
		return nil, domain.ErrTenantInactive
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, user.Permissions, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
