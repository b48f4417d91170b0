package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, company_id, asset_number, name, category, serial_number,
	status, condition, criticality,
	purchase_cost, purchase_date, salvage_value, useful_life_years, depreciation_method,
	units_to_date, total_expected_units, accumulated_depreciation, book_value,
	last_audit_date, next_audit_date, compliance_status, disposed_at,
	version, created_at, updated_at`

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL
// (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un nuevo activo. El constraint único (company_id,
// asset_number) es el árbitro de la asignación de códigos: ante colisión
// devuelve domain.ErrDuplicate y el allocator reintenta con otro candidato.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.AssetNumber, a.Name, a.Category, a.SerialNumber,
		a.Status, a.Condition, a.Criticality,
		a.PurchaseCost, a.PurchaseDate, a.SalvageValue, a.UsefulLifeYears, a.DepreciationMethod,
		a.UnitsToDate, a.TotalExpectedUnits, a.AccumulatedDepreciation, a.BookValue,
		a.LastAuditDate, a.NextAuditDate, a.ComplianceStatus, a.DisposedAt,
		a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID. Devuelve (nil, nil) si no existe.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	a, err := scanAsset(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// UpdateVersioned escribe el activo completo solo si la versión persistida
// sigue siendo expectedVersion. Cero filas afectadas significa que otro
// escritor ganó la carrera (ErrConcurrentModification) o que el activo ya no
// existe (ErrNotFound); se relee para distinguir.
func (r *AssetRepo) UpdateVersioned(ctx context.Context, a *entity.Asset, expectedVersion int64) error {
	query := `
		UPDATE assets SET
			name = $3, category = $4, serial_number = $5,
			status = $6, condition = $7, criticality = $8,
			purchase_cost = $9, purchase_date = $10, salvage_value = $11,
			useful_life_years = $12, depreciation_method = $13,
			units_to_date = $14, total_expected_units = $15,
			accumulated_depreciation = $16, book_value = $17,
			last_audit_date = $18, next_audit_date = $19, compliance_status = $20,
			disposed_at = $21, version = $22, updated_at = $23
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, expectedVersion,
		a.Name, a.Category, a.SerialNumber,
		a.Status, a.Condition, a.Criticality,
		a.PurchaseCost, a.PurchaseDate, a.SalvageValue,
		a.UsefulLifeYears, a.DepreciationMethod,
		a.UnitsToDate, a.TotalExpectedUnits,
		a.AccumulatedDepreciation, a.BookValue,
		a.LastAuditDate, a.NextAuditDate, a.ComplianceStatus,
		a.DisposedAt, a.Version, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.GetByID(ctx, a.ID)
		if err != nil {
			return err
		}
		if exists == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentModification
	}
	return nil
}

// Delete borra físicamente un activo. Solo el caso de uso decide cuándo es
// legal (activos sin historia financiera).
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista activos dentro del scope del principal con filtros opcionales.
// Devuelve la página y el total sin paginar.
func (r *AssetRepo) List(ctx context.Context, scope authz.Scope, filter repository.AssetFilter, limit, offset int) ([]*entity.Asset, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !scope.AllTenants {
		conds = append(conds, "company_id = "+arg(scope.TenantID))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.Condition != "" {
		conds = append(conds, "condition = "+arg(filter.Condition))
	}
	if filter.Category != "" {
		conds = append(conds, "category = "+arg(filter.Category))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(name ILIKE "+p+" OR asset_number ILIKE "+p+")")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT count(*) FROM assets"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	query := "SELECT " + assetColumns + " FROM assets" + where +
		" ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.AssetNumber, &a.Name, &a.Category, &a.SerialNumber,
		&a.Status, &a.Condition, &a.Criticality,
		&a.PurchaseCost, &a.PurchaseDate, &a.SalvageValue, &a.UsefulLifeYears, &a.DepreciationMethod,
		&a.UnitsToDate, &a.TotalExpectedUnits, &a.AccumulatedDepreciation, &a.BookValue,
		&a.LastAuditDate, &a.NextAuditDate, &a.ComplianceStatus, &a.DisposedAt,
		&a.Version, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
