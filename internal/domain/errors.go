package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Cada sentinel pertenece a una
// categoría; CategoryOf permite al caller decidir entre reintentar, corregir la
// entrada o alertar, sin inspeccionar strings.
var (
	// Validación: el caller puede corregir la entrada y reintentar.
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrTenantInactive = errors.New("la empresa está inactiva o fuera de su ventana de suscripción")

	// Concurrencia: reintentar con estado fresco, con reintentos acotados.
	ErrConcurrentModification = errors.New("el registro fue modificado por otra operación")
	ErrAllocationExhausted    = errors.New("se agotaron los intentos de asignar un código único")

	// Estado: problema de lógica o de datos; no se reintenta automáticamente.
	ErrIllegalTransition        = errors.New("transición de estado ilegal")
	ErrInsufficientUsageData    = errors.New("faltan datos de uso para depreciar por unidades de producción")
	ErrInvalidDepreciationInput = errors.New("parámetros de depreciación inválidos")
	ErrImmutableRecord          = errors.New("el registro ya alcanzó un estado terminal y no admite cambios")
)

// IllegalTransitionError nombra el estado actual y el solicitado.
// errors.Is(err, ErrIllegalTransition) sigue funcionando sobre este tipo.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transición ilegal: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// Category clasifica un error según la taxonomía del core.
type Category int

const (
	CategoryStorage Category = iota // infraestructura; reintentable con backoff en el caller
	CategoryValidation
	CategoryConcurrency
	CategoryState
)

// CategoryOf devuelve la categoría de un error de dominio. Todo error no
// reconocido se trata como error de almacenamiento (infraestructura envuelta).
func CategoryOf(err error) Category {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrTenantInactive):
		return CategoryValidation
	case errors.Is(err, ErrConcurrentModification),
		errors.Is(err, ErrAllocationExhausted):
		return CategoryConcurrency
	case errors.Is(err, ErrIllegalTransition),
		errors.Is(err, ErrInsufficientUsageData),
		errors.Is(err, ErrInvalidDepreciationInput),
		errors.Is(err, ErrImmutableRecord):
		return CategoryState
	default:
		return CategoryStorage
	}
}
