package entity

import "time"

// Estados válidos para Company.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company representa una organización/tenant del sistema. Toda entidad del
// registro de activos cuelga de una Company vía CompanyID; los datos nunca
// cruzan de un tenant a otro.
type Company struct {
	ID                   string
	Code                 string // código humano único global, asignado por el allocator
	Name                 string
	Status               string // active, suspended, inactive
	SubscriptionStartsAt time.Time
	SubscriptionEndsAt   *time.Time // nil = sin vencimiento
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ActiveAt informa si la empresa está activa y dentro de su ventana de
// suscripción en el instante dado. Las mutaciones contra un tenant fuera de
// ventana se rechazan.
func (c *Company) ActiveAt(t time.Time) bool {
	if c.Status != CompanyStatusActive {
		return false
	}
	if t.Before(c.SubscriptionStartsAt) {
		return false
	}
	if c.SubscriptionEndsAt != nil && t.After(*c.SubscriptionEndsAt) {
		return false
	}
	return true
}
