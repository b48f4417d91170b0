// Package lifecycle gobierna las transiciones legales de estado de un activo.
// Una transición solo se aplica cuando su registro disparador (aprobación de
// movimiento u orden de trabajo completada) ya alcanzó su propio estado
// terminal; nunca hay cambios especulativos sobre solicitudes pendientes.
package lifecycle

import (
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// legalTransitions tabla cerrada de transiciones. Los estados terminales
// (disposed, stolen, lost) no aparecen como origen: no tienen salida.
var legalTransitions = map[string][]string{
	entity.AssetStatusActive: {
		entity.AssetStatusInactive,
		entity.AssetStatusMaintenance,
		entity.AssetStatusDisposed,
		entity.AssetStatusStolen,
		entity.AssetStatusLost,
	},
	entity.AssetStatusInactive: {
		entity.AssetStatusActive,
		entity.AssetStatusDisposed,
		entity.AssetStatusStolen,
		entity.AssetStatusLost,
	},
	entity.AssetStatusMaintenance: {
		entity.AssetStatusActive,
		entity.AssetStatusDisposed,
		entity.AssetStatusStolen,
		entity.AssetStatusLost,
	},
}

// IsTerminal informa si el estado no admite transiciones de salida.
func IsTerminal(status string) bool {
	switch status {
	case entity.AssetStatusDisposed, entity.AssetStatusStolen, entity.AssetStatusLost:
		return true
	}
	return false
}

// CanTransition valida contra la tabla. Devuelve IllegalTransitionError
// nombrando origen y destino si la transición no está permitida.
func CanTransition(from, to string) error {
	for _, t := range legalTransitions[from] {
		if t == to {
			return nil
		}
	}
	return &domain.IllegalTransitionError{From: from, To: to}
}

// Trigger registro disparador de una transición: exactamente uno de Movement o
// WorkOrder, ya en su estado terminal.
type Trigger struct {
	Movement  *entity.AssetMovement
	WorkOrder *entity.WorkOrder
}

// Validate comprueba la transición completa: tabla de estados más el registro
// disparador que cada destino exige.
//
//   - active <-> inactive: cambio administrativo, sin disparador.
//   - active -> maintenance: movimiento corrective/preventive aprobado.
//   - maintenance -> active: únicamente la orden de trabajo completada.
//   - -> disposed|stolen|lost: movimiento aprobado del tipo correspondiente.
func Validate(from, to string, trig Trigger) error {
	if err := CanTransition(from, to); err != nil {
		return err
	}

	switch to {
	case entity.AssetStatusActive:
		if from == entity.AssetStatusMaintenance {
			if trig.WorkOrder == nil || trig.WorkOrder.Status != entity.WorkOrderCompleted {
				return &domain.IllegalTransitionError{From: from, To: to}
			}
		}
		return nil

	case entity.AssetStatusInactive:
		return nil

	case entity.AssetStatusMaintenance:
		if trig.Movement == nil ||
			trig.Movement.ApprovalStatus != entity.ApprovalApproved ||
			(trig.Movement.MovementType != entity.MovementTypeCorrective &&
				trig.Movement.MovementType != entity.MovementTypePreventive) {
			return &domain.IllegalTransitionError{From: from, To: to}
		}
		return nil

	case entity.AssetStatusDisposed, entity.AssetStatusStolen, entity.AssetStatusLost:
		if trig.Movement == nil ||
			trig.Movement.ApprovalStatus != entity.ApprovalApproved ||
			trig.Movement.TargetStatus() != to {
			return &domain.IllegalTransitionError{From: from, To: to}
		}
		return nil
	}

	return &domain.IllegalTransitionError{From: from, To: to}
}
