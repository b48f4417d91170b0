package dto

import "time"

// CreateCompanyRequest alta de una empresa. El código único lo asigna el
// allocator a partir del nombre; no viaja en el request.
type CreateCompanyRequest struct {
	Name                 string     `json:"name"`
	SubscriptionStartsAt time.Time  `json:"subscription_starts_at"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at,omitempty"`
}

// CompanyResponse representación de salida de una empresa.
type CompanyResponse struct {
	ID                   string     `json:"id"`
	Code                 string     `json:"code"`
	Name                 string     `json:"name"`
	Status               string     `json:"status"`
	SubscriptionStartsAt time.Time  `json:"subscription_starts_at"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// CompanyListResponse página de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
