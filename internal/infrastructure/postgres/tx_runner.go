package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/application/usecase"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Ensure TxRunner implementa ledger.TxRunner y usecase.IdentityTxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ usecase.IdentityTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la
// tx y hace Commit o Rollback. Si fn falla por cualquier motivo (incluido un
// append de auditoría) no se comitea nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	assets repository.AssetRepository,
	movements repository.MovementRepository,
	workorders repository.WorkOrderRepository,
	audits repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewAssetRepository(tx),
		NewMovementRepository(tx),
		NewWorkOrderRepository(tx),
		NewAuditLogRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIdentity igual que Run pero con los repos de identidad (empresas,
// usuarios, auditoría), para las altas que asignan códigos.
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	audits repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewCompanyRepository(tx),
		NewUserRepository(tx),
		NewAuditLogRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
