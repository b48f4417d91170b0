package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetCreateRequest alta de un activo. CompanyID solo lo puede fijar un
// super_admin; para el resto se ignora y manda el tenant del principal.
type AssetCreateRequest struct {
	CompanyID          string           `json:"company_id,omitempty"`
	Name               string           `json:"name"`
	Category           string           `json:"category"`
	SerialNumber       string           `json:"serial_number"`
	Condition          string           `json:"condition"`
	Criticality        string           `json:"criticality"`
	PurchaseCost       decimal.Decimal  `json:"purchase_cost"`
	PurchaseDate       time.Time        `json:"purchase_date"`
	SalvageValue       decimal.Decimal  `json:"salvage_value"`
	UsefulLifeYears    int              `json:"useful_life_years"`
	DepreciationMethod string           `json:"depreciation_method"`
	UnitsToDate        *decimal.Decimal `json:"units_to_date,omitempty"`
	TotalExpectedUnits *decimal.Decimal `json:"total_expected_units,omitempty"`
	NextAuditDate      *time.Time       `json:"next_audit_date,omitempty"`
}

// AssetUpdateRequest actualización parcial. Version es el sello optimista
// leído por el caller; la actualización falla con ConcurrentModification si el
// activo cambió desde esa lectura. Los punteros nil significan "sin cambio".
type AssetUpdateRequest struct {
	Version            int64            `json:"version"`
	Name               *string          `json:"name,omitempty"`
	Category           *string          `json:"category,omitempty"`
	SerialNumber       *string          `json:"serial_number,omitempty"`
	Condition          *string          `json:"condition,omitempty"`
	Criticality        *string          `json:"criticality,omitempty"`
	SalvageValue       *decimal.Decimal `json:"salvage_value,omitempty"`
	UsefulLifeYears    *int             `json:"useful_life_years,omitempty"`
	DepreciationMethod *string          `json:"depreciation_method,omitempty"`
	UnitsToDate        *decimal.Decimal `json:"units_to_date,omitempty"`
	TotalExpectedUnits *decimal.Decimal `json:"total_expected_units,omitempty"`
	LastAuditDate      *time.Time       `json:"last_audit_date,omitempty"`
	NextAuditDate      *time.Time       `json:"next_audit_date,omitempty"`
	ComplianceStatus   *string          `json:"compliance_status,omitempty"`
}

// AssetTransitionRequest cambio de estado del ciclo de vida.
// TriggeringRecordID referencia el movimiento aprobado o la orden de trabajo
// completada que habilita la transición; vacío para active <-> inactive.
type AssetTransitionRequest struct {
	RequestedStatus    string `json:"requested_status"`
	TriggeringRecordID string `json:"triggering_record_id,omitempty"`
}

// AssetQueryRequest filtros de listado.
type AssetQueryRequest struct {
	Status    string `query:"status"`
	Condition string `query:"condition"`
	Category  string `query:"category"`
	Search    string `query:"search"`
	PageRequest
}

// AssetResponse representación de salida de un activo.
type AssetResponse struct {
	ID                      string           `json:"id"`
	CompanyID               string           `json:"company_id"`
	AssetNumber             string           `json:"asset_number"`
	Name                    string           `json:"name"`
	Category                string           `json:"category"`
	SerialNumber            string           `json:"serial_number,omitempty"`
	Status                  string           `json:"status"`
	Condition               string           `json:"condition"`
	Criticality             string           `json:"criticality"`
	PurchaseCost            decimal.Decimal  `json:"purchase_cost"`
	PurchaseDate            time.Time        `json:"purchase_date"`
	SalvageValue            decimal.Decimal  `json:"salvage_value"`
	UsefulLifeYears         int              `json:"useful_life_years"`
	DepreciationMethod      string           `json:"depreciation_method"`
	AccumulatedDepreciation decimal.Decimal  `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal  `json:"book_value"`
	LastAuditDate           *time.Time       `json:"last_audit_date,omitempty"`
	NextAuditDate           *time.Time       `json:"next_audit_date,omitempty"`
	ComplianceStatus        string           `json:"compliance_status"`
	DisposedAt              *time.Time       `json:"disposed_at,omitempty"`
	Version                 int64            `json:"version"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// AssetListResponse página de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// DepreciationResponse resultado de computeAsOf para reportes.
type DepreciationResponse struct {
	AssetID                 string          `json:"asset_id"`
	AsOf                    time.Time       `json:"as_of"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `json:"book_value"`
}
