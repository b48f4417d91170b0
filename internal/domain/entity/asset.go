package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un activo. disposed, stolen y lost son
// terminales: no hay transición de salida sin capacidad administrativa.
const (
	AssetStatusActive      = "active"
	AssetStatusInactive    = "inactive"
	AssetStatusMaintenance = "maintenance"
	AssetStatusDisposed    = "disposed"
	AssetStatusStolen      = "stolen"
	AssetStatusLost        = "lost"
)

// Condición física del activo.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
	ConditionDamaged   = "damaged"
)

// Criticidad operativa.
const (
	CriticalityLow      = "low"
	CriticalityMedium   = "medium"
	CriticalityHigh     = "high"
	CriticalityCritical = "critical"
)

// Métodos de depreciación soportados.
const (
	DepreciationStraightLine      = "straight_line"
	DepreciationDecliningBalance  = "declining_balance"
	DepreciationUnitsOfProduction = "units_of_production"
)

// Estado de cumplimiento (auditorías ISO/financieras).
const (
	ComplianceCompliant = "compliant"
	CompliancePending   = "pending_audit"
	ComplianceOverdue   = "overdue"
)

// Asset es el registro maestro de un activo físico/IT. AssetNumber es único
// dentro de la Company. Version es el sello optimista: toda actualización
// compara y aumenta Version, y falla con ErrConcurrentModification si otro
// escritor ganó la carrera.
//
// Invariante financiero: BookValue = PurchaseCost - AccumulatedDepreciation,
// siempre >= SalvageValue y <= PurchaseCost.
type Asset struct {
	ID           string
	CompanyID    string
	AssetNumber  string
	Name         string
	Category     string
	SerialNumber string
	Status       string
	Condition    string
	Criticality  string

	// Campos financieros (siempre decimal, nunca float).
	PurchaseCost            decimal.Decimal
	PurchaseDate            time.Time
	SalvageValue            decimal.Decimal
	UsefulLifeYears         int
	DepreciationMethod      string
	UnitsToDate             *decimal.Decimal // solo units_of_production
	TotalExpectedUnits      *decimal.Decimal // solo units_of_production
	AccumulatedDepreciation decimal.Decimal
	BookValue               decimal.Decimal

	// Campos de cumplimiento.
	LastAuditDate    *time.Time
	NextAuditDate    *time.Time
	ComplianceStatus string

	// DisposedAt congela la depreciación: después de esta fecha no se acumula
	// más, aunque se consulte con un asOf futuro.
	DisposedAt *time.Time

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal informa si el activo está en un estado terminal del ciclo de vida.
func (a *Asset) IsTerminal() bool {
	switch a.Status {
	case AssetStatusDisposed, AssetStatusStolen, AssetStatusLost:
		return true
	}
	return false
}

// HasFinancialHistory informa si el activo ya acumuló depreciación. Es la
// parte de la actividad financiera visible desde la entidad; los costos de
// mantenimiento facturados (órdenes completadas) los evalúa el ledger al
// decidir entre baja lógica y borrado físico.
func (a *Asset) HasFinancialHistory() bool {
	return a.AccumulatedDepreciation.GreaterThan(decimal.Zero)
}

// ValidCondition informa si la condición es una de las conocidas.
func ValidCondition(c string) bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged:
		return true
	}
	return false
}

// ValidDepreciationMethod informa si el método es uno de los soportados.
func ValidDepreciationMethod(m string) bool {
	switch m {
	case DepreciationStraightLine, DepreciationDecliningBalance, DepreciationUnitsOfProduction:
		return true
	}
	return false
}
