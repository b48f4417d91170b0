package ledger

import (
	"context"

	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la unidad de trabajo atómica del
// ledger: validación, asignación, cálculo, persistencia y auditoría se
// comitean juntos o no se comitea nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assets repository.AssetRepository,
		movements repository.MovementRepository,
		workorders repository.WorkOrderRepository,
		audits repository.AuditLogRepository,
	) error) error
}
