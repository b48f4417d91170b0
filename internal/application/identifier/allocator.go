// Package identifier genera códigos únicos legibles (códigos de empresa,
// employee IDs, números de activo) bajo creación concurrente.
//
// El diseño es insert optimista: cada candidato se intenta insertar y el
// constraint único del almacenamiento arbitra el conflicto. No hay
// check-then-insert, que pierde carreras entre el check y el insert.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/activos-api/internal/domain"
)

// MaxAttempts intentos acotados por asignación. Superado el límite la
// operación falla con ErrAllocationExhausted: nunca un loop infinito. El tope
// debe superar con holgura la contención esperada sobre un mismo base (cientos
// de creaciones concurrentes con el mismo nombre).
const MaxAttempts = 500

// BaseCode deriva un código base determinista de un nombre: primeros 6
// caracteres alfanuméricos en mayúsculas, relleno con X hasta un mínimo de 3.
// La derivación exacta no es contrato; la unicidad la garantiza Allocate.
func BaseCode(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= 6 {
				break
			}
		}
	}
	code := b.String()
	for len(code) < 3 {
		code += "X"
	}
	return code
}

// Candidate construye el candidato para un intento: el base desnudo primero,
// después sufijo numérico incremental (BODEGA, BODEGA-2, BODEGA-3, ...).
func Candidate(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt+1)
}

// Allocate ejecuta try con candidatos sucesivos hasta que uno no choque.
// try debe intentar la inserción completa (código + entidad que lo consume) en
// una sola transacción y devolver domain.ErrDuplicate cuando el constraint
// único rechace el candidato; cualquier otro error corta la asignación.
// Devuelve el código que quedó insertado.
func Allocate(ctx context.Context, base string, try func(ctx context.Context, code string) error) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		code := Candidate(base, attempt)
		err := try(ctx, code)
		if err == nil {
			return code, nil
		}
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		return "", err
	}
	return "", fmt.Errorf("asignar código con base %s: %w", base, domain.ErrAllocationExhausted)
}
