// Package authz resuelve si un principal puede ejecutar una acción sobre un
// recurso. Es un módulo de decisión puro: no consulta almacenamiento, no lanza
// errores por denegaciones, devuelve siempre una Decision tipada.
package authz

// Principal es el sujeto autenticado de cada llamada al core. Se pasa
// explícito en cada operación; no existe "usuario actual" ambiente.
type Principal struct {
	UserID      string
	TenantID    string
	Role        Role
	Permissions []string
	Active      bool
}

// HasPermission informa si el tag de capacidad está en el conjunto explícito.
func (p Principal) HasPermission(tag string) bool {
	for _, t := range p.Permissions {
		if t == tag {
			return true
		}
	}
	return false
}

// Reason código de denegación, para observabilidad.
type Reason string

const (
	ReasonCrossTenantAccess Reason = "CrossTenantAccess"
	ReasonInsufficientRole  Reason = "InsufficientRole"
	ReasonMissingPermission Reason = "MissingPermission"
	ReasonInactivePrincipal Reason = "InactivePrincipal"
	ReasonUnknownAction     Reason = "UnknownAction"
)

// Decision resultado tipado de una autorización. Una denegación nunca es un
// error de Go: el caller decide cómo surfear el Reason.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// DeniedError envuelve una denegación cuando el caller necesita propagarla
// como error (el motor en sí nunca lanza errores por denegaciones).
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string {
	return "autorización denegada: " + string(e.Reason)
}

// Err devuelve nil si la decisión permite, o un *DeniedError con el código.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// Allow construye una decisión positiva.
func Allow() Decision { return Decision{Allowed: true} }

// Deny construye una denegación con su código.
func Deny(r Reason) Decision { return Decision{Allowed: false, Reason: r} }

// Acciones del core. Cada una declara la capacidad que la habilita y el piso
// de rol. Un piso vacío significa que solo la capacidad explícita habilita la
// acción (p.ej. disposición de activos: postura de cumplimiento).
const (
	ActionAssetRead       = "asset.read"
	ActionAssetCreate     = "asset.create"
	ActionAssetUpdate     = "asset.update"
	ActionAssetDispose    = "asset.dispose"
	ActionAssetDelete     = "asset.delete"
	ActionMovementRequest = "movement.request"
	ActionMovementApprove = "movement.approve"
	ActionWorkOrderManage = "workorder.manage"
	ActionUserManage      = "user.manage"
	ActionCompanyManage   = "company.manage"
	ActionAuditRead       = "audit.read"
)

type actionRule struct {
	capability string // tag que habilita la acción por permiso explícito
	minRole    Role   // piso de rol; "" = sin piso, solo capacidad
}

// Conjunto cerrado de reglas. Consolida los chequeos dispersos por handlers en
// una sola tabla unit-testeable.
var actionRules = map[string]actionRule{
	ActionAssetRead:       {capability: "asset.read", minRole: RoleViewer},
	ActionAssetCreate:     {capability: "asset.write", minRole: RoleManager},
	ActionAssetUpdate:     {capability: "asset.write", minRole: RoleManager},
	ActionAssetDispose:    {capability: "asset.dispose", minRole: ""},
	ActionAssetDelete:     {capability: "asset.dispose", minRole: RoleAdmin},
	ActionMovementRequest: {capability: "movement.request", minRole: RoleUser},
	ActionMovementApprove: {capability: "movement.approve", minRole: RoleManager},
	ActionWorkOrderManage: {capability: "workorder.manage", minRole: RoleManager},
	ActionUserManage:      {capability: "user.manage", minRole: RoleAdmin},
	ActionCompanyManage:   {capability: "company.manage", minRole: RoleSuperAdmin},
	ActionAuditRead:       {capability: "audit.read", minRole: RoleManager},
}

// Engine motor de autorización. Sin estado: seguro para uso concurrente.
type Engine struct{}

// NewEngine construye el motor.
func NewEngine() *Engine { return &Engine{} }

// Authorize aplica la precedencia de reglas:
//  1. coincidencia de tenant (exento super_admin); un mismatch deniega
//     CrossTenantAccess sin importar rol ni permisos
//  2. permiso explícito en el conjunto del principal
//  3. piso de rol en el orden fijo
func (e *Engine) Authorize(p Principal, action, resourceTenantID string) Decision {
	if !p.Active {
		return Deny(ReasonInactivePrincipal)
	}
	rule, ok := actionRules[action]
	if !ok {
		return Deny(ReasonUnknownAction)
	}
	if p.Role != RoleSuperAdmin && p.TenantID != resourceTenantID {
		return Deny(ReasonCrossTenantAccess)
	}
	if rule.capability != "" && p.HasPermission(rule.capability) {
		return Allow()
	}
	if rule.minRole != "" && p.Role.AtLeast(rule.minRole) {
		return Allow()
	}
	if rule.minRole == "" {
		return Deny(ReasonMissingPermission)
	}
	return Deny(ReasonInsufficientRole)
}

// Scope filtro de tenant que toda consulta de listado debe inyectar antes de
// llegar al almacenamiento.
type Scope struct {
	TenantID   string
	AllTenants bool // solo super_admin
}

// ScopeFilter deriva el filtro del principal, para que ningún caller pueda
// olvidarlo.
func (e *Engine) ScopeFilter(p Principal) Scope {
	if p.Role == RoleSuperAdmin {
		return Scope{AllTenants: true}
	}
	return Scope{TenantID: p.TenantID}
}
