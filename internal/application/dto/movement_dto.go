package dto

import "time"

// MovementRequest solicitud de movimiento sobre un activo. Nace pending.
type MovementRequest struct {
	AssetID      string `json:"asset_id"`
	MovementType string `json:"movement_type"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	FromUserID   string `json:"from_user_id,omitempty"`
	ToUserID     string `json:"to_user_id,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// MovementResolveRequest resolución de una solicitud pendiente.
type MovementResolveRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes,omitempty"`
}

// MovementResponse representación de salida de un movimiento.
type MovementResponse struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"company_id"`
	AssetID        string     `json:"asset_id"`
	MovementType   string     `json:"movement_type"`
	FromLocation   string     `json:"from_location,omitempty"`
	ToLocation     string     `json:"to_location,omitempty"`
	FromUserID     string     `json:"from_user_id,omitempty"`
	ToUserID       string     `json:"to_user_id,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	Notes          string     `json:"notes,omitempty"`
	RequestedBy    string     `json:"requested_by"`
	ResolvedBy     string     `json:"resolved_by,omitempty"`
	RequestedAt    time.Time  `json:"requested_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}
