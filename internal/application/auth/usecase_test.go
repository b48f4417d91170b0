package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/auth"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/clock"
	"github.com/jhoicas/activos-api/pkg/jwt"
)

var authNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

// identityStore repos de identidad en memoria, con los mismos constraints
// únicos que las tablas (código de empresa global, email global).
type identityStore struct {
	companies map[string]entity.Company
	users     map[string]entity.User
	audits    []entity.AuditLog
}

func newIdentityStore() *identityStore {
	return &identityStore{
		companies: make(map[string]entity.Company),
		users:     make(map[string]entity.User),
	}
}

func (s *identityStore) Create(_ context.Context, c *entity.Company) error {
	for _, existing := range s.companies {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	s.companies[c.ID] = *c
	return nil
}

func (s *identityStore) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

func (s *identityStore) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	for _, c := range s.companies {
		if c.Code == code {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *identityStore) Update(_ context.Context, c *entity.Company) error {
	if _, ok := s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	s.companies[c.ID] = *c
	return nil
}

func (s *identityStore) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range s.companies {
		copied := c
		out = append(out, &copied)
	}
	return out, nil
}

// userRepo envuelve el store para no chocar con los métodos de company.
type userRepo struct {
	st *identityStore
}

func (s *identityStore) usersRepo() repository.UserRepository { return &userRepo{st: s} }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.st.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.st.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.st.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.st.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.st.users[u.ID] = *u
	return nil
}

func (r *userRepo) List(_ context.Context, scope authz.Scope, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.st.users {
		if !scope.AllTenants && u.CompanyID != scope.TenantID {
			continue
		}
		copied := u
		out = append(out, &copied)
	}
	return out, nil
}

func (s *identityStore) Append(_ context.Context, row *entity.AuditLog) error {
	s.audits = append(s.audits, *row)
	return nil
}

func (s *identityStore) LastForEntity(_ context.Context, entityType, entityID string) (*entity.AuditLog, error) {
	for i := len(s.audits) - 1; i >= 0; i-- {
		if s.audits[i].EntityType == entityType && s.audits[i].EntityID == entityID {
			copied := s.audits[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *identityStore) ListForEntity(_ context.Context, entityType, entityID string) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for i := range s.audits {
		if s.audits[i].EntityType == entityType && s.audits[i].EntityID == entityID {
			copied := s.audits[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

var _ repository.CompanyRepository = (*identityStore)(nil)
var _ repository.AuditLogRepository = (*identityStore)(nil)

func newAuthFixture() (*auth.AuthUseCase, *identityStore, map[string][]string) {
	st := newIdentityStore()
	rolePerms := map[string][]string{
		string(authz.RoleAdmin): {"asset.write", "user.manage"},
	}
	uc := auth.NewAuthUseCase(
		&wrappedRunner{st: st}, st.usersRepo(), st, audit.NewRecorder(), clock.Fixed{T: authNow},
		rolePerms, auth.JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 30, Issuer: "activos-api"},
	)
	return uc, st, rolePerms
}

// wrappedRunner pasa el userRepo envuelto dentro de la transacción simulada.
type wrappedRunner struct {
	st *identityStore
}

func (w *wrappedRunner) RunIdentity(_ context.Context, fn func(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	audits repository.AuditLogRepository,
) error) error {
	return fn(w.st, w.st.usersRepo(), w.st)
}

func signupReq() dto.SignupRequest {
	return dto.SignupRequest{
		CompanyName: "Acme Logística",
		Email:       "admin@acme.co",
		Password:    "contraseña-larga",
		Name:        "Ana Admin",
	}
}

func TestSignup_CreaEmpresaYAdmin(t *testing.T) {
	uc, st, _ := newAuthFixture()

	out, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	assert.Equal(t, "ACMELO", out.Company.Code)
	assert.Equal(t, entity.CompanyStatusActive, out.Company.Status)
	assert.Equal(t, string(authz.RoleAdmin), out.User.Role)
	assert.Equal(t, out.Company.ID, out.User.CompanyID)
	assert.ElementsMatch(t, []string{"asset.write", "user.manage"}, out.User.Permissions)

	companyRows, err := st.ListForEntity(context.Background(), "company", out.Company.ID)
	require.NoError(t, err)
	require.Len(t, companyRows, 1)
	assert.Equal(t, "company.signup", companyRows[0].Action)

	userRows, err := st.ListForEntity(context.Background(), "user", out.User.ID)
	require.NoError(t, err)
	require.Len(t, userRows, 1)
	assert.Equal(t, "user.create", userRows[0].Action)
}

// El conjunto de permisos del usuario debe ser copia propia: mutarlo después
// no puede tocar el mapa rol -> permisos de configuración.
func TestSignup_PermisosNoAliasanLaConfiguracion(t *testing.T) {
	uc, st, rolePerms := newAuthFixture()

	out, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	stored, err := st.usersRepo().GetByID(context.Background(), out.User.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.Permissions)

	stored.Permissions[0] = "asset.dispose"
	out.User.Permissions[0] = "asset.dispose"

	assert.Equal(t, []string{"asset.write", "user.manage"}, rolePerms[string(authz.RoleAdmin)],
		"la configuración compartida no debe mutar a través del usuario")
}

func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = uc.Signup(context.Background(), dto.SignupRequest{
		CompanyName: "Otra Empresa",
		Email:       "admin@acme.co",
		Password:    "contraseña-larga",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignup_MismoNombreObtieneCodigoConSufijo(t *testing.T) {
	uc, _, _ := newAuthFixture()

	first, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	req := signupReq()
	req.Email = "admin2@acme.co"
	second, err := uc.Signup(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "ACMELO", first.Company.Code)
	assert.Equal(t, "ACMELO-2", second.Company.Code)
}

func TestLogin_CredencialesValidasEmitenToken(t *testing.T) {
	uc, _, _ := newAuthFixture()
	_, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@acme.co",
		Password: "contraseña-larga",
	})
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto-de-pruebas", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, out.User.CompanyID, claims.CompanyID)
	assert.Equal(t, string(authz.RoleAdmin), claims.Role)
	assert.Contains(t, claims.Permissions, "user.manage")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, _ := newAuthFixture()
	_, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@acme.co",
		Password: "otra-cosa",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmpresaSuspendida(t *testing.T) {
	uc, st, _ := newAuthFixture()
	out, err := uc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	company := st.companies[out.Company.ID]
	company.Status = entity.CompanyStatusSuspended
	st.companies[out.Company.ID] = company

	_, err = uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@acme.co",
		Password: "contraseña-larga",
	})
	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}
