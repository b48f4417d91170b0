// Package ledger orquesta toda mutación sobre activos como unidad de trabajo
// atómica: autorizar -> asignar identificador -> validar invariantes ->
// recalcular depreciación -> transicionar estado -> persistir -> auditar.
// Una aplicación parcial (código asignado sin entidad persistida, mutación sin
// fila de auditoría) nunca es observable por otro caller.
package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
	"github.com/jhoicas/activos-api/pkg/clock"
	"github.com/jhoicas/activos-api/pkg/logger"
)

// LedgerUseCase caso de uso central del registro de activos.
// Los repos pool-bound sirven lecturas; toda escritura pasa por el TxRunner.
type LedgerUseCase struct {
	tx        TxRunner
	assets    repository.AssetRepository
	companies repository.CompanyRepository
	audits    repository.AuditLogRepository
	auth      *authz.Engine
	recorder  *audit.Recorder
	clk       clock.Clock
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	tx TxRunner,
	assets repository.AssetRepository,
	companies repository.CompanyRepository,
	audits repository.AuditLogRepository,
	auth *authz.Engine,
	recorder *audit.Recorder,
	clk clock.Clock,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		tx:        tx,
		assets:    assets,
		companies: companies,
		audits:    audits,
		auth:      auth,
		recorder:  recorder,
		clk:       clk,
		log:       log.Component("ledger"),
	}
}

// authorize corre el motor y registra la denegación para observabilidad.
func (uc *LedgerUseCase) authorize(p authz.Principal, action, resourceTenantID string) error {
	d := uc.auth.Authorize(p, action, resourceTenantID)
	if !d.Allowed {
		uc.log.Warn().
			Str("user_id", p.UserID).
			Str("action", action).
			Str("reason", string(d.Reason)).
			Msg("autorización denegada")
	}
	return d.Err()
}

// requireActiveTenant carga la empresa y rechaza mutaciones fuera de la
// ventana de suscripción.
func (uc *LedgerUseCase) requireActiveTenant(ctx context.Context, tenantID string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("cargar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.ActiveAt(uc.clk.Now()) {
		return nil, domain.ErrTenantInactive
	}
	return company, nil
}

// loadAsset lectura pool-bound con not-found normalizado.
func (uc *LedgerUseCase) loadAsset(ctx context.Context, id string) (*entity.Asset, error) {
	asset, err := uc.assets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar activo: %w", err)
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return asset, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	return &dto.AssetResponse{
		ID:                      a.ID,
		CompanyID:               a.CompanyID,
		AssetNumber:             a.AssetNumber,
		Name:                    a.Name,
		Category:                a.Category,
		SerialNumber:            a.SerialNumber,
		Status:                  a.Status,
		Condition:               a.Condition,
		Criticality:             a.Criticality,
		PurchaseCost:            a.PurchaseCost,
		PurchaseDate:            a.PurchaseDate,
		SalvageValue:            a.SalvageValue,
		UsefulLifeYears:         a.UsefulLifeYears,
		DepreciationMethod:      a.DepreciationMethod,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		BookValue:               a.BookValue,
		LastAuditDate:           a.LastAuditDate,
		NextAuditDate:           a.NextAuditDate,
		ComplianceStatus:        a.ComplianceStatus,
		DisposedAt:              a.DisposedAt,
		Version:                 a.Version,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

func toMovementResponse(m *entity.AssetMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		CompanyID:      m.CompanyID,
		AssetID:        m.AssetID,
		MovementType:   m.MovementType,
		FromLocation:   m.FromLocation,
		ToLocation:     m.ToLocation,
		FromUserID:     m.FromUserID,
		ToUserID:       m.ToUserID,
		ApprovalStatus: m.ApprovalStatus,
		Notes:          m.Notes,
		RequestedBy:    m.RequestedBy,
		ResolvedBy:     m.ResolvedBy,
		RequestedAt:    m.RequestedAt,
		ResolvedAt:     m.ResolvedAt,
	}
}

func toWorkOrderResponse(w *entity.WorkOrder) *dto.WorkOrderResponse {
	if w == nil {
		return nil
	}
	return &dto.WorkOrderResponse{
		ID:          w.ID,
		CompanyID:   w.CompanyID,
		AssetID:     w.AssetID,
		Title:       w.Title,
		Description: w.Description,
		Status:      w.Status,
		AssignedTo:  w.AssignedTo,
		LaborCost:   w.LaborCost,
		PartsCost:   w.PartsCost,
		TotalCost:   w.TotalCost,
		OpenedBy:    w.OpenedBy,
		StartedAt:   w.StartedAt,
		CompletedAt: w.CompletedAt,
		Version:     w.Version,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
