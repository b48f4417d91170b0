package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderCreateRequest alta de una orden de trabajo sobre un activo.
type WorkOrderCreateRequest struct {
	AssetID     string `json:"asset_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// WorkOrderStatusRequest transición de estado de la orden. Los costos solo se
// aceptan al completar (roll-up).
type WorkOrderStatusRequest struct {
	Status    string           `json:"status"`
	Version   int64            `json:"version"`
	LaborCost *decimal.Decimal `json:"labor_cost,omitempty"`
	PartsCost *decimal.Decimal `json:"parts_cost,omitempty"`
}

// WorkOrderResponse representación de salida de una orden de trabajo.
type WorkOrderResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	AssetID     string          `json:"asset_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	PartsCost   decimal.Decimal `json:"parts_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	OpenedBy    string          `json:"opened_by"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
