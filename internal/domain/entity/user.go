package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema (pertenece a una Company).
// Role y Permissions alimentan al motor de autorización; el conjunto de
// permisos es explícito y aditivo, independiente del rol.
type User struct {
	ID           string
	CompanyID    string
	EmployeeID   string // código humano único dentro de la company, asignado por el allocator
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string   // viewer, user, manager, admin, super_admin
	Permissions  []string // tags de capacidad, ej. "asset.write"
	Status       string   // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
