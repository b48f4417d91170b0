package entity

import "time"

// Tipos de movimiento. Los de mantenimiento (corrective, preventive) llevan el
// activo a maintenance; disposal, stolen y lost lo llevan al estado terminal
// correspondiente; transfer y custody solo cambian ubicación/custodio.
const (
	MovementTypeTransfer   = "transfer"
	MovementTypeCustody    = "custody"
	MovementTypeCorrective = "corrective"
	MovementTypePreventive = "preventive"
	MovementTypeDisposal   = "disposal"
	MovementTypeStolen     = "stolen"
	MovementTypeLost       = "lost"
)

// Estados de aprobación. pending transiciona exactamente una vez a approved o
// rejected; después el registro es inmutable.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// AssetMovement es el registro inmutable de una solicitud de cambio de estado,
// ubicación o custodia de un activo.
type AssetMovement struct {
	ID             string
	CompanyID      string
	AssetID        string
	MovementType   string
	FromLocation   string
	ToLocation     string
	FromUserID     string
	ToUserID       string
	ApprovalStatus string
	Notes          string
	RequestedBy    string
	ResolvedBy     string
	RequestedAt    time.Time
	ResolvedAt     *time.Time
	CreatedAt      time.Time
}

// Resolved informa si la solicitud ya alcanzó un estado terminal.
func (m *AssetMovement) Resolved() bool {
	return m.ApprovalStatus != ApprovalPending
}

// ValidMovementType informa si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeTransfer, MovementTypeCustody, MovementTypeCorrective,
		MovementTypePreventive, MovementTypeDisposal, MovementTypeStolen, MovementTypeLost:
		return true
	}
	return false
}

// TargetStatus devuelve el estado de activo que un movimiento aprobado de este
// tipo dispara, o "" si el tipo no cambia el estado.
func (m *AssetMovement) TargetStatus() string {
	switch m.MovementType {
	case MovementTypeCorrective, MovementTypePreventive:
		return AssetStatusMaintenance
	case MovementTypeDisposal:
		return AssetStatusDisposed
	case MovementTypeStolen:
		return AssetStatusStolen
	case MovementTypeLost:
		return AssetStatusLost
	}
	return ""
}
