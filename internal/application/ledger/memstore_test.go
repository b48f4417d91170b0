package ledger_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// memData estado en memoria con los mismos contratos que las tablas reales:
// constraints únicos, sello optimista y append-only de auditoría.
type memData struct {
	assets     map[string]entity.Asset
	movements  map[string]entity.AssetMovement
	workorders map[string]entity.WorkOrder
	companies  map[string]entity.Company
	audits     []entity.AuditLog
}

func newMemData() *memData {
	return &memData{
		assets:     make(map[string]entity.Asset),
		movements:  make(map[string]entity.AssetMovement),
		workorders: make(map[string]entity.WorkOrder),
		companies:  make(map[string]entity.Company),
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.assets {
		c.assets[k] = v
	}
	for k, v := range d.movements {
		c.movements[k] = v
	}
	for k, v := range d.workorders {
		c.workorders[k] = v
	}
	for k, v := range d.companies {
		c.companies[k] = v
	}
	c.audits = append(c.audits, d.audits...)
	return c
}

// memStore serializa transacciones con un mutex y aplica los cambios de cada
// Run de forma atómica (copia de trabajo, swap al comitear). Un error en el
// callback descarta la copia entera: el rollback real.
type memStore struct {
	mu   sync.Mutex
	data *memData
}

func newMemStore() *memStore {
	return &memStore{data: newMemData()}
}

var _ ledger.TxRunner = (*memStore)(nil)

func (s *memStore) Run(_ context.Context, fn func(
	assets repository.AssetRepository,
	movements repository.MovementRepository,
	workorders repository.WorkOrderRepository,
	audits repository.AuditLogRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.data.clone()
	err := fn(
		&memAssetRepo{tx: work},
		&memMovementRepo{tx: work},
		&memWorkOrderRepo{tx: work},
		&memAuditRepo{tx: work},
	)
	if err != nil {
		return err
	}
	s.data = work
	return nil
}

// Repos pool-bound para lecturas fuera de transacción.
func (s *memStore) Assets() repository.AssetRepository      { return &memAssetRepo{st: s} }
func (s *memStore) Companies() repository.CompanyRepository { return &memCompanyRepo{st: s} }
func (s *memStore) Audits() repository.AuditLogRepository   { return &memAuditRepo{st: s} }

// ─── asset repo ───

type memAssetRepo struct {
	st *memStore
	tx *memData
}

func (r *memAssetRepo) data() (*memData, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.st.mu.Lock()
	return r.st.data, r.st.mu.Unlock
}

func (r *memAssetRepo) Create(_ context.Context, a *entity.Asset) error {
	d, done := r.data()
	defer done()
	for _, existing := range d.assets {
		if existing.CompanyID == a.CompanyID && existing.AssetNumber == a.AssetNumber {
			return domain.ErrDuplicate
		}
	}
	d.assets[a.ID] = *a
	return nil
}

func (r *memAssetRepo) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	d, done := r.data()
	defer done()
	a, ok := d.assets[id]
	if !ok {
		return nil, nil
	}
	copied := a
	return &copied, nil
}

func (r *memAssetRepo) UpdateVersioned(_ context.Context, a *entity.Asset, expectedVersion int64) error {
	d, done := r.data()
	defer done()
	current, ok := d.assets[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	d.assets[a.ID] = *a
	return nil
}

func (r *memAssetRepo) Delete(_ context.Context, id string) error {
	d, done := r.data()
	defer done()
	if _, ok := d.assets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(d.assets, id)
	return nil
}

func (r *memAssetRepo) List(_ context.Context, scope authz.Scope, filter repository.AssetFilter, limit, offset int) ([]*entity.Asset, int, error) {
	d, done := r.data()
	defer done()
	var matched []*entity.Asset
	for _, a := range d.assets {
		if !scope.AllTenants && a.CompanyID != scope.TenantID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Condition != "" && a.Condition != filter.Condition {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(a.AssetNumber), strings.ToLower(filter.Search)) {
			continue
		}
		copied := a
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// ─── movement repo ───

type memMovementRepo struct {
	st *memStore
	tx *memData
}

func (r *memMovementRepo) data() (*memData, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.st.mu.Lock()
	return r.st.data, r.st.mu.Unlock
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.AssetMovement) error {
	d, done := r.data()
	defer done()
	d.movements[m.ID] = *m
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.AssetMovement, error) {
	d, done := r.data()
	defer done()
	m, ok := d.movements[id]
	if !ok {
		return nil, nil
	}
	copied := m
	return &copied, nil
}

func (r *memMovementRepo) Resolve(_ context.Context, m *entity.AssetMovement) error {
	d, done := r.data()
	defer done()
	current, ok := d.movements[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.ApprovalStatus != entity.ApprovalPending {
		return domain.ErrImmutableRecord
	}
	d.movements[m.ID] = *m
	return nil
}

func (r *memMovementRepo) ListByAsset(_ context.Context, assetID string, limit, offset int) ([]*entity.AssetMovement, error) {
	d, done := r.data()
	defer done()
	var out []*entity.AssetMovement
	for _, m := range d.movements {
		if m.AssetID == assetID {
			copied := m
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ─── work order repo ───

type memWorkOrderRepo struct {
	st *memStore
	tx *memData
}

func (r *memWorkOrderRepo) data() (*memData, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.st.mu.Lock()
	return r.st.data, r.st.mu.Unlock
}

func (r *memWorkOrderRepo) Create(_ context.Context, w *entity.WorkOrder) error {
	d, done := r.data()
	defer done()
	d.workorders[w.ID] = *w
	return nil
}

func (r *memWorkOrderRepo) GetByID(_ context.Context, id string) (*entity.WorkOrder, error) {
	d, done := r.data()
	defer done()
	w, ok := d.workorders[id]
	if !ok {
		return nil, nil
	}
	copied := w
	return &copied, nil
}

func (r *memWorkOrderRepo) UpdateVersioned(_ context.Context, w *entity.WorkOrder, expectedVersion int64) error {
	d, done := r.data()
	defer done()
	current, ok := d.workorders[w.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != expectedVersion {
		return domain.ErrConcurrentModification
	}
	d.workorders[w.ID] = *w
	return nil
}

func (r *memWorkOrderRepo) AnyCompletedForAsset(_ context.Context, assetID string) (bool, error) {
	d, done := r.data()
	defer done()
	for _, w := range d.workorders {
		if w.AssetID == assetID && w.Status == entity.WorkOrderCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWorkOrderRepo) ListByAsset(_ context.Context, assetID string, limit, offset int) ([]*entity.WorkOrder, error) {
	d, done := r.data()
	defer done()
	var out []*entity.WorkOrder
	for _, w := range d.workorders {
		if w.AssetID == assetID {
			copied := w
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ─── audit repo ───

type memAuditRepo struct {
	st *memStore
	tx *memData
}

func (r *memAuditRepo) data() (*memData, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.st.mu.Lock()
	return r.st.data, r.st.mu.Unlock
}

func (r *memAuditRepo) Append(_ context.Context, row *entity.AuditLog) error {
	d, done := r.data()
	defer done()
	d.audits = append(d.audits, *row)
	return nil
}

func (r *memAuditRepo) LastForEntity(_ context.Context, entityType, entityID string) (*entity.AuditLog, error) {
	d, done := r.data()
	defer done()
	for i := len(d.audits) - 1; i >= 0; i-- {
		if d.audits[i].EntityType == entityType && d.audits[i].EntityID == entityID {
			copied := d.audits[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memAuditRepo) ListForEntity(_ context.Context, entityType, entityID string) ([]*entity.AuditLog, error) {
	d, done := r.data()
	defer done()
	var out []*entity.AuditLog
	for i := range d.audits {
		if d.audits[i].EntityType == entityType && d.audits[i].EntityID == entityID {
			copied := d.audits[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ─── company repo ───

type memCompanyRepo struct {
	st *memStore
	tx *memData
}

func (r *memCompanyRepo) data() (*memData, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.st.mu.Lock()
	return r.st.data, r.st.mu.Unlock
}

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	d, done := r.data()
	defer done()
	for _, existing := range d.companies {
		if existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	d.companies[c.ID] = *c
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	d, done := r.data()
	defer done()
	c, ok := d.companies[id]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

func (r *memCompanyRepo) GetByCode(_ context.Context, code string) (*entity.Company, error) {
	d, done := r.data()
	defer done()
	for _, c := range d.companies {
		if c.Code == code {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	d, done := r.data()
	defer done()
	if _, ok := d.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	d.companies[c.ID] = *c
	return nil
}

func (r *memCompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	d, done := r.data()
	defer done()
	var out []*entity.Company
	for _, c := range d.companies {
		copied := c
		out = append(out, &copied)
	}
	return out, nil
}
