package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/domain/authz"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

func principal(role authz.Role, tenant string, perms ...string) authz.Principal {
	return authz.Principal{
		UserID:      "u-1",
		TenantID:    tenant,
		Role:        role,
		Permissions: perms,
		Active:      true,
	}
}

// La coincidencia de tenant es la primera regla: ningún rol (salvo
// super_admin) ni ningún permiso explícito habilita acceso cruzado.
func TestTenantPrimero_NingunRolNiPermisoCruza(t *testing.T) {
	e := authz.NewEngine()
	roles := []authz.Role{authz.RoleViewer, authz.RoleUser, authz.RoleManager, authz.RoleAdmin}
	allPerms := []string{
		"asset.read", "asset.write", "asset.dispose",
		"movement.request", "movement.approve",
		"workorder.manage", "user.manage", "company.manage", "audit.read",
	}
	for _, role := range roles {
		d := e.Authorize(principal(role, tenantA, allPerms...), authz.ActionAssetRead, tenantB)
		require.False(t, d.Allowed, "rol %s no debe cruzar tenants", role)
		assert.Equal(t, authz.ReasonCrossTenantAccess, d.Reason)
	}
}

// super_admin está exento de la coincidencia de tenant.
func TestSuperAdmin_CruzaTenants(t *testing.T) {
	e := authz.NewEngine()
	d := e.Authorize(principal(authz.RoleSuperAdmin, tenantA), authz.ActionAssetRead, tenantB)
	assert.True(t, d.Allowed)
}

// El permiso explícito habilita aunque el rol esté bajo el piso.
func TestPermisoExplicitoSobrePisoDeRol(t *testing.T) {
	e := authz.NewEngine()

	// viewer con asset.write puede actualizar (piso manager).
	d := e.Authorize(principal(authz.RoleViewer, tenantA, "asset.write"), authz.ActionAssetUpdate, tenantA)
	assert.True(t, d.Allowed)

	// viewer sin el permiso: denegado por rol insuficiente.
	d = e.Authorize(principal(authz.RoleViewer, tenantA), authz.ActionAssetUpdate, tenantA)
	require.False(t, d.Allowed)
	assert.Equal(t, authz.ReasonInsufficientRole, d.Reason)
}

// El piso de rol habilita sin permiso explícito.
func TestPisoDeRol(t *testing.T) {
	e := authz.NewEngine()

	d := e.Authorize(principal(authz.RoleManager, tenantA), authz.ActionMovementApprove, tenantA)
	assert.True(t, d.Allowed)

	d = e.Authorize(principal(authz.RoleUser, tenantA), authz.ActionMovementApprove, tenantA)
	require.False(t, d.Allowed)
	assert.Equal(t, authz.ReasonInsufficientRole, d.Reason)
}

// La disposición de activos es solo por capacidad: ni admin la tiene sin el
// tag explícito.
func TestDisposicion_SoloPorCapacidad(t *testing.T) {
	e := authz.NewEngine()

	d := e.Authorize(principal(authz.RoleAdmin, tenantA), authz.ActionAssetDispose, tenantA)
	require.False(t, d.Allowed)
	assert.Equal(t, authz.ReasonMissingPermission, d.Reason)

	d = e.Authorize(principal(authz.RoleUser, tenantA, "asset.dispose"), authz.ActionAssetDispose, tenantA)
	assert.True(t, d.Allowed)
}

// Un principal inactivo no ejecuta nada, sin importar rol ni permisos.
func TestPrincipalInactivo(t *testing.T) {
	e := authz.NewEngine()
	p := principal(authz.RoleSuperAdmin, tenantA, "asset.read")
	p.Active = false

	d := e.Authorize(p, authz.ActionAssetRead, tenantA)
	require.False(t, d.Allowed)
	assert.Equal(t, authz.ReasonInactivePrincipal, d.Reason)
}

// Acción fuera del conjunto cerrado: denegación, nunca allow por defecto.
func TestAccionDesconocida(t *testing.T) {
	e := authz.NewEngine()
	d := e.Authorize(principal(authz.RoleSuperAdmin, tenantA), "asset.export", tenantA)
	require.False(t, d.Allowed)
	assert.Equal(t, authz.ReasonUnknownAction, d.Reason)
}

// ScopeFilter: super_admin ve todos los tenants, el resto solo el propio.
func TestScopeFilter(t *testing.T) {
	e := authz.NewEngine()

	s := e.ScopeFilter(principal(authz.RoleSuperAdmin, tenantA))
	assert.True(t, s.AllTenants)

	s = e.ScopeFilter(principal(authz.RoleAdmin, tenantA))
	assert.False(t, s.AllTenants)
	assert.Equal(t, tenantA, s.TenantID)
}

// El orden de roles es fijo: viewer < user < manager < admin < super_admin.
func TestOrdenDeRoles(t *testing.T) {
	order := []authz.Role{authz.RoleViewer, authz.RoleUser, authz.RoleManager, authz.RoleAdmin, authz.RoleSuperAdmin}
	for i := 1; i < len(order); i++ {
		assert.True(t, order[i].AtLeast(order[i-1]), "%s debe estar al menos al nivel de %s", order[i], order[i-1])
		assert.False(t, order[i-1].AtLeast(order[i]))
	}
}

// Decision.Err: nil al permitir, *DeniedError con el código al denegar.
func TestDecisionErr(t *testing.T) {
	assert.NoError(t, authz.Allow().Err())

	err := authz.Deny(authz.ReasonCrossTenantAccess).Err()
	require.Error(t, err)
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, authz.ReasonCrossTenantAccess, denied.Reason)
}
