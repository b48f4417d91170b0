package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/lifecycle"
)

func approvedMovement(movType string) *entity.AssetMovement {
	return &entity.AssetMovement{
		MovementType:   movType,
		ApprovalStatus: entity.ApprovalApproved,
	}
}

// active <-> inactive es cambio administrativo: no requiere disparador.
func TestActivoInactivo_SinDisparador(t *testing.T) {
	assert.NoError(t, lifecycle.Validate(entity.AssetStatusActive, entity.AssetStatusInactive, lifecycle.Trigger{}))
	assert.NoError(t, lifecycle.Validate(entity.AssetStatusInactive, entity.AssetStatusActive, lifecycle.Trigger{}))
}

// Entrar a maintenance exige un movimiento de mantenimiento aprobado.
func TestEntradaMantenimiento(t *testing.T) {
	// Sin disparador: ilegal.
	err := lifecycle.Validate(entity.AssetStatusActive, entity.AssetStatusMaintenance, lifecycle.Trigger{})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	// Movimiento pendiente: ilegal, nunca cambios especulativos.
	pending := &entity.AssetMovement{
		MovementType:   entity.MovementTypeCorrective,
		ApprovalStatus: entity.ApprovalPending,
	}
	err = lifecycle.Validate(entity.AssetStatusActive, entity.AssetStatusMaintenance, lifecycle.Trigger{Movement: pending})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	// Movimiento de tipo no-mantenimiento aprobado: ilegal.
	err = lifecycle.Validate(entity.AssetStatusActive, entity.AssetStatusMaintenance,
		lifecycle.Trigger{Movement: approvedMovement(entity.MovementTypeTransfer)})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	// Correctivo o preventivo aprobado: legal.
	assert.NoError(t, lifecycle.Validate(entity.AssetStatusActive, entity.AssetStatusMaintenance,
		lifecycle.Trigger{Movement: approvedMovement(entity.MovementTypeCorrective)}))
	assert.NoError(t, lifecycle.Validate(entity.AssetStatusActive, entity.AssetStatusMaintenance,
		lifecycle.Trigger{Movement: approvedMovement(entity.MovementTypePreventive)}))
}

// Salir de maintenance a active exige la orden de trabajo completada; ni un
// movimiento aprobado ni una orden en otro estado lo habilitan.
func TestSalidaMantenimiento_SoloOrdenCompletada(t *testing.T) {
	err := lifecycle.Validate(entity.AssetStatusMaintenance, entity.AssetStatusActive, lifecycle.Trigger{})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	err = lifecycle.Validate(entity.AssetStatusMaintenance, entity.AssetStatusActive,
		lifecycle.Trigger{Movement: approvedMovement(entity.MovementTypeCorrective)})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "un movimiento no saca de mantenimiento")

	for _, status := range []string{entity.WorkOrderOpen, entity.WorkOrderInProgress, entity.WorkOrderOnHold, entity.WorkOrderCancelled} {
		err = lifecycle.Validate(entity.AssetStatusMaintenance, entity.AssetStatusActive,
			lifecycle.Trigger{WorkOrder: &entity.WorkOrder{Status: status}})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition, "orden en %s no habilita la salida", status)
	}

	assert.NoError(t, lifecycle.Validate(entity.AssetStatusMaintenance, entity.AssetStatusActive,
		lifecycle.Trigger{WorkOrder: &entity.WorkOrder{Status: entity.WorkOrderCompleted}}))
}

// Cada destino terminal exige un movimiento aprobado de su tipo exacto.
func TestDestinosTerminales_TipoDeMovimientoExacto(t *testing.T) {
	cases := map[string]string{
		entity.AssetStatusDisposed: entity.MovementTypeDisposal,
		entity.AssetStatusStolen:   entity.MovementTypeStolen,
		entity.AssetStatusLost:     entity.MovementTypeLost,
	}
	for target, movType := range cases {
		assert.NoError(t, lifecycle.Validate(entity.AssetStatusActive, target,
			lifecycle.Trigger{Movement: approvedMovement(movType)}),
			"movimiento %s debe habilitar %s", movType, target)

		// Tipo cruzado: un disposal no habilita stolen, etc.
		err := lifecycle.Validate(entity.AssetStatusActive, target,
			lifecycle.Trigger{Movement: approvedMovement(entity.MovementTypeTransfer)})
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	}
}

// Los estados terminales no tienen salida, hacia ningún destino y con ningún
// disparador.
func TestEstadosTerminales_SinSalida(t *testing.T) {
	terminals := []string{entity.AssetStatusDisposed, entity.AssetStatusStolen, entity.AssetStatusLost}
	targets := []string{
		entity.AssetStatusActive, entity.AssetStatusInactive, entity.AssetStatusMaintenance,
		entity.AssetStatusDisposed, entity.AssetStatusStolen, entity.AssetStatusLost,
	}
	for _, from := range terminals {
		require.True(t, lifecycle.IsTerminal(from))
		for _, to := range targets {
			err := lifecycle.Validate(from, to, lifecycle.Trigger{
				Movement:  approvedMovement(entity.MovementTypeDisposal),
				WorkOrder: &entity.WorkOrder{Status: entity.WorkOrderCompleted},
			})
			assert.ErrorIs(t, err, domain.ErrIllegalTransition, "%s -> %s debe ser ilegal", from, to)
		}
	}
}

// El error nombra origen y destino para diagnósticos.
func TestErrorNombraOrigenYDestino(t *testing.T) {
	err := lifecycle.CanTransition(entity.AssetStatusDisposed, entity.AssetStatusActive)
	require.Error(t, err)

	var ite *domain.IllegalTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, entity.AssetStatusDisposed, ite.From)
	assert.Equal(t, entity.AssetStatusActive, ite.To)
}
