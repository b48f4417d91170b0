package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	WorkOrderOpen       = "open"
	WorkOrderInProgress = "in_progress"
	WorkOrderCompleted  = "completed"
	WorkOrderCancelled  = "cancelled"
	WorkOrderOnHold     = "on_hold"
)

// WorkOrder es una tarea de mantenimiento sobre un activo. Completarla es la
// única vía legítima para sacar un activo de maintenance.
type WorkOrder struct {
	ID          string
	CompanyID   string
	AssetID     string
	Title       string
	Description string
	Status      string
	AssignedTo  string
	LaborCost   decimal.Decimal
	PartsCost   decimal.Decimal
	TotalCost   decimal.Decimal // roll-up: LaborCost + PartsCost al completar
	OpenedBy    string
	StartedAt   *time.Time
	CompletedAt *time.Time
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// workOrderTransitions tabla de transiciones legales de la orden de trabajo.
var workOrderTransitions = map[string][]string{
	WorkOrderOpen:       {WorkOrderInProgress, WorkOrderCancelled, WorkOrderOnHold},
	WorkOrderInProgress: {WorkOrderCompleted, WorkOrderCancelled, WorkOrderOnHold},
	WorkOrderOnHold:     {WorkOrderInProgress, WorkOrderCancelled},
}

// CanMoveTo informa si la orden admite la transición de estado pedida.
// completed y cancelled son terminales.
func (w *WorkOrder) CanMoveTo(target string) bool {
	for _, t := range workOrderTransitions[w.Status] {
		if t == target {
			return true
		}
	}
	return false
}

// Terminal informa si la orden ya no admite más transiciones.
func (w *WorkOrder) Terminal() bool {
	return w.Status == WorkOrderCompleted || w.Status == WorkOrderCancelled
}
