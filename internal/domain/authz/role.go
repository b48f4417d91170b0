package authz

// Role representa el nivel de un usuario en la jerarquía fija del sistema.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleUser       Role = "user"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin" // único rol que puede actuar entre tenants
)

// Level devuelve la posición en el orden viewer < user < manager < admin < super_admin.
func (r Role) Level() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleUser:
		return 2
	case RoleManager:
		return 3
	case RoleAdmin:
		return 4
	case RoleSuperAdmin:
		return 5
	default:
		return 0
	}
}

// AtLeast informa si el rol alcanza el piso requerido.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// IsValid informa si el rol es uno de los conocidos.
func (r Role) IsValid() bool {
	return r.Level() > 0
}

func (r Role) String() string {
	return string(r)
}
