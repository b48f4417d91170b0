// Package depreciation calcula depreciación acumulada y valor en libros como
// función pura del tiempo y el método contable. Sin efectos: el mismo input
// produce siempre el mismo resultado, seguro en paralelo para activos
// distintos.
package depreciation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// Input parámetros financieros de un activo para el cálculo.
type Input struct {
	Method          string
	PurchaseCost    decimal.Decimal
	SalvageValue    decimal.Decimal
	PurchaseDate    time.Time
	UsefulLifeYears int

	// DisposedAt congela la acumulación: después de esa fecha no se deprecia
	// más aunque asOf sea posterior.
	DisposedAt *time.Time

	// Solo units_of_production.
	UnitsToDate        *decimal.Decimal
	TotalExpectedUnits *decimal.Decimal
}

// Result depreciación acumulada y valor en libros a la fecha pedida.
// Invariante: AccumulatedDepreciation + BookValue == PurchaseCost.
type Result struct {
	AccumulatedDepreciation decimal.Decimal
	BookValue               decimal.Decimal
}

// FromAsset arma el Input desde la entidad.
func FromAsset(a *entity.Asset) Input {
	return Input{
		Method:             a.DepreciationMethod,
		PurchaseCost:       a.PurchaseCost,
		SalvageValue:       a.SalvageValue,
		PurchaseDate:       a.PurchaseDate,
		UsefulLifeYears:    a.UsefulLifeYears,
		DisposedAt:         a.DisposedAt,
		UnitsToDate:        a.UnitsToDate,
		TotalExpectedUnits: a.TotalExpectedUnits,
	}
}

var (
	daysPerYear = decimal.NewFromInt(365)
	two         = decimal.NewFromInt(2)
)

// ComputeAsOf calcula la depreciación a la fecha dada según el método.
// Errores: ErrInvalidDepreciationInput para parámetros fuera de rango,
// ErrInsufficientUsageData si units_of_production no trae datos de uso.
func ComputeAsOf(in Input, asOf time.Time) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	// La baja congela el cálculo en la fecha de disposición.
	if in.DisposedAt != nil && asOf.After(*in.DisposedAt) {
		asOf = *in.DisposedAt
	}

	// Antes de la compra no hay depreciación.
	if !asOf.After(in.PurchaseDate) {
		return Result{AccumulatedDepreciation: decimal.Zero, BookValue: in.PurchaseCost}, nil
	}

	depreciable := in.PurchaseCost.Sub(in.SalvageValue)

	var accumulated decimal.Decimal
	switch in.Method {
	case entity.DepreciationStraightLine:
		accumulated = straightLine(in, depreciable, elapsedYears(in.PurchaseDate, asOf))
	case entity.DepreciationDecliningBalance:
		accumulated = decliningBalance(in, elapsedYears(in.PurchaseDate, asOf))
	case entity.DepreciationUnitsOfProduction:
		accumulated = unitsOfProduction(in, depreciable)
	}

	// Clamp defensivo al rango [0, depreciable].
	if accumulated.GreaterThan(depreciable) {
		accumulated = depreciable
	}
	if accumulated.IsNegative() {
		accumulated = decimal.Zero
	}
	return Result{
		AccumulatedDepreciation: accumulated,
		BookValue:               in.PurchaseCost.Sub(accumulated),
	}, nil
}

func validate(in Input) error {
	if !entity.ValidDepreciationMethod(in.Method) {
		return domain.ErrInvalidDepreciationInput
	}
	if in.PurchaseDate.IsZero() {
		return domain.ErrInvalidDepreciationInput
	}
	if in.PurchaseCost.IsNegative() || in.SalvageValue.IsNegative() ||
		in.SalvageValue.GreaterThan(in.PurchaseCost) {
		return domain.ErrInvalidDepreciationInput
	}
	switch in.Method {
	case entity.DepreciationStraightLine, entity.DepreciationDecliningBalance:
		if in.UsefulLifeYears <= 0 {
			return domain.ErrInvalidDepreciationInput
		}
	case entity.DepreciationUnitsOfProduction:
		if in.UnitsToDate == nil || in.TotalExpectedUnits == nil ||
			!in.TotalExpectedUnits.GreaterThan(decimal.Zero) {
			return domain.ErrInsufficientUsageData
		}
		if in.UnitsToDate.IsNegative() {
			return domain.ErrInvalidDepreciationInput
		}
	}
	return nil
}

// elapsedYears devuelve los años transcurridos como decimal fraccional,
// prorrateando por días transcurridos / 365.
func elapsedYears(from, to time.Time) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(to.Sub(from) / time.Second))
	days := seconds.Div(decimal.NewFromInt(86400))
	return days.Div(daysPerYear)
}

// straightLine: anual = (costo - salvamento) / vida útil;
// acumulada = min(anual * añosTranscurridos, depreciable).
func straightLine(in Input, depreciable, years decimal.Decimal) decimal.Decimal {
	annual := depreciable.Div(decimal.NewFromInt(int64(in.UsefulLifeYears)))
	acc := annual.Mul(years)
	if acc.GreaterThan(depreciable) {
		return depreciable
	}
	return acc
}

// decliningBalance: saldo doble decreciente. tasa = 2 / vida útil; cada período
// deprecia valorEnLibros * tasa, iterando por año completo más un período
// parcial prorrateado. El último período se recorta para que el valor en
// libros nunca baje del salvamento.
func decliningBalance(in Input, years decimal.Decimal) decimal.Decimal {
	rate := two.Div(decimal.NewFromInt(int64(in.UsefulLifeYears)))
	book := in.PurchaseCost
	floor := in.SalvageValue
	accumulated := decimal.Zero

	full := years.IntPart()
	fraction := years.Sub(decimal.NewFromInt(full))

	for i := int64(0); i < full; i++ {
		period := book.Mul(rate)
		if book.Sub(period).LessThan(floor) {
			period = book.Sub(floor)
		}
		accumulated = accumulated.Add(period)
		book = book.Sub(period)
	}
	if fraction.GreaterThan(decimal.Zero) {
		period := book.Mul(rate).Mul(fraction)
		if book.Sub(period).LessThan(floor) {
			period = book.Sub(floor)
		}
		accumulated = accumulated.Add(period)
	}
	return accumulated
}

// unitsOfProduction: (costo - salvamento) * (unidadesConsumidas / capacidadTotal).
func unitsOfProduction(in Input, depreciable decimal.Decimal) decimal.Decimal {
	return depreciable.Mul(in.UnitsToDate.Div(*in.TotalExpectedUnits))
}
