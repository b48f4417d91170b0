package clock

import "time"

// Clock abstrae "ahora" para que los cálculos de depreciación y los sellos de
// tiempo sean deterministas en tests. El core nunca llama time.Now directo.
type Clock interface {
	Now() time.Time
}

// System es el reloj real.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed es un reloj congelado para tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
