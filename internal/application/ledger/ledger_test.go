package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/activos-api/internal/application/audit"
	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/application/ledger"
	"github.com/jhoicas/activos-api/internal/domain"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/pkg/clock"
	"github.com/jhoicas/activos-api/pkg/logger"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

const (
	tenantA = "company-a"
	tenantB = "company-b"
	frozen  = "company-frozen"
)

type fixture struct {
	uc    *ledger.LedgerUseCase
	store *memStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	for _, c := range []entity.Company{
		{ID: tenantA, Code: "ACMEA", Name: "Acme A", Status: entity.CompanyStatusActive, SubscriptionStartsAt: testNow.AddDate(-1, 0, 0)},
		{ID: tenantB, Code: "ACMEB", Name: "Acme B", Status: entity.CompanyStatusActive, SubscriptionStartsAt: testNow.AddDate(-1, 0, 0)},
		{ID: frozen, Code: "FROZEN", Name: "Congelada", Status: entity.CompanyStatusSuspended, SubscriptionStartsAt: testNow.AddDate(-1, 0, 0)},
	} {
		store.data.companies[c.ID] = c
	}

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := ledger.NewLedgerUseCase(
		store, store.Assets(), store.Companies(), store.Audits(),
		authz.NewEngine(), audit.NewRecorder(), clock.Fixed{T: testNow}, log,
	)
	return &fixture{uc: uc, store: store}
}

func manager(tenant string) authz.Principal {
	return authz.Principal{
		UserID: "mgr-" + tenant, TenantID: tenant, Role: authz.RoleManager, Active: true,
	}
}

// disposer tiene la capacidad asset.dispose además del rol admin.
func disposer(tenant string) authz.Principal {
	return authz.Principal{
		UserID: "adm-" + tenant, TenantID: tenant, Role: authz.RoleAdmin,
		Permissions: []string{"asset.dispose"}, Active: true,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createReq(name string) dto.AssetCreateRequest {
	return dto.AssetCreateRequest{
		Name:               name,
		Category:           "it",
		PurchaseCost:       dec("10000000"),
		PurchaseDate:       testNow,
		SalvageValue:       dec("1000000"),
		UsefulLifeYears:    5,
		DepreciationMethod: entity.DepreciationStraightLine,
	}
}

func (f *fixture) mustCreate(t *testing.T, p authz.Principal, name string) *dto.AssetResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), p, createReq(name))
	require.NoError(t, err)
	return out
}

// ─── alta ───

func TestCrear_AsignaNumeroYAudita(t *testing.T) {
	f := newFixture(t)
	out := f.mustCreate(t, manager(tenantA), "Laptop Dell 7420")

	assert.Equal(t, "LAPTOP", out.AssetNumber)
	assert.Equal(t, entity.AssetStatusActive, out.Status)
	assert.Equal(t, int64(1), out.Version)
	assert.True(t, out.BookValue.Equal(dec("10000000")), "comprado hoy: sin depreciación")

	rows, err := f.store.Audits().ListForEntity(context.Background(), "asset", out.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "asset.create", rows[0].Action)
	assert.Empty(t, rows[0].PrevChecksum)
}

func TestCrear_NombresRepetidosObtienenSufijos(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)

	first := f.mustCreate(t, p, "Impresora HP")
	second := f.mustCreate(t, p, "Impresora HP")
	third := f.mustCreate(t, p, "Impresora HP")

	assert.Equal(t, "IMPRES", first.AssetNumber)
	assert.Equal(t, "IMPRES-2", second.AssetNumber)
	assert.Equal(t, "IMPRES-3", third.AssetNumber)
}

func TestCrear_MismoNumeroEnOtroTenantNoColisiona(t *testing.T) {
	f := newFixture(t)

	a := f.mustCreate(t, manager(tenantA), "Servidor")
	b := f.mustCreate(t, manager(tenantB), "Servidor")

	assert.Equal(t, a.AssetNumber, b.AssetNumber, "el número es único por tenant, no global")
}

// Un activo comprado en el pasado entra con la depreciación ya acumulada:
// 10M, salvamento 1M, 5 años, comprado hace 2.5 años -> 4.5M acumulada.
func TestCrear_CompradoEnElPasado(t *testing.T) {
	f := newFixture(t)
	in := createReq("Torno CNC")
	in.PurchaseDate = testNow.Add(-time.Duration(2.5*365*86400) * time.Second)

	out, err := f.uc.Create(context.Background(), manager(tenantA), in)
	require.NoError(t, err)

	assert.True(t, out.AccumulatedDepreciation.Equal(dec("4500000")),
		"esperada 4500000, obtenida %s", out.AccumulatedDepreciation)
	assert.True(t, out.BookValue.Equal(dec("5500000")))
}

func TestCrear_TenantInactivoRechaza(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), manager(frozen), createReq("Silla"))
	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestCrear_ViewerDenegado(t *testing.T) {
	f := newFixture(t)
	viewer := authz.Principal{UserID: "v", TenantID: tenantA, Role: authz.RoleViewer, Active: true}

	_, err := f.uc.Create(context.Background(), viewer, createReq("Silla"))
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, authz.ReasonInsufficientRole, denied.Reason)
}

// ─── actualización con sello optimista ───

func TestActualizar_VersionViejaFalla(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Proyector")

	name1 := "Proyector sala 1"
	_, err := f.uc.Update(context.Background(), p, created.ID, dto.AssetUpdateRequest{Version: created.Version, Name: &name1})
	require.NoError(t, err)

	// Reintentar con la versión ya consumida.
	name2 := "Proyector sala 2"
	_, err = f.uc.Update(context.Background(), p, created.ID, dto.AssetUpdateRequest{Version: created.Version, Name: &name2})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

// Varios escritores con la misma versión leída: exactamente uno gana, el
// resto recibe ErrConcurrentModification. Nadie pisa a nadie en silencio.
func TestActualizar_EscritoresConcurrentes(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Montacargas")

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "Montacargas bahía"
			_, errs[i] = f.uc.Update(context.Background(), p, created.ID, dto.AssetUpdateRequest{
				Version: created.Version, Name: &name,
			})
		}(i)
	}
	wg.Wait()

	wins, stale := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, domain.ErrConcurrentModification)
			stale++
		}
	}
	assert.Equal(t, 1, wins, "exactamente un escritor debe ganar")
	assert.Equal(t, n-1, stale)
}

func TestActualizar_TerminalEsInmutable(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Camioneta")
	f.disposeViaMovement(t, created.ID)

	name := "Camioneta norte"
	_, err := f.uc.Update(context.Background(), p, created.ID, dto.AssetUpdateRequest{Version: 2, Name: &name})
	assert.ErrorIs(t, err, domain.ErrImmutableRecord)
}

// ─── transiciones de ciclo de vida ───

func TestTransicion_ActivoInactivoSinDisparador(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Escáner")

	out, err := f.uc.Transition(context.Background(), p, created.ID, dto.AssetTransitionRequest{
		RequestedStatus: entity.AssetStatusInactive,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusInactive, out.Status)
	assert.Equal(t, int64(2), out.Version)
}

func TestTransicion_MantenimientoSinMovimientoEsIlegal(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Compresor")

	_, err := f.uc.Transition(context.Background(), p, created.ID, dto.AssetTransitionRequest{
		RequestedStatus: entity.AssetStatusMaintenance,
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestTransicion_TerminalRequiereCapacidad(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Generador")

	// manager sin asset.dispose: denegado por permiso, no por rol.
	_, err := f.uc.Transition(context.Background(), p, created.ID, dto.AssetTransitionRequest{
		RequestedStatus: entity.AssetStatusDisposed,
	})
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, authz.ReasonMissingPermission, denied.Reason)
}

// ─── flujo de movimientos ───

func TestMovimiento_AprobarLlevaAMantenimiento(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Prensa hidráulica")

	mov, err := f.uc.RequestMovement(context.Background(), p, dto.MovementRequest{
		AssetID: created.ID, MovementType: entity.MovementTypeCorrective, Notes: "vibración anormal",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, mov.ApprovalStatus)

	// La solicitud pendiente no cambia el estado del activo.
	asset, err := f.uc.GetByID(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusActive, asset.Status)

	resolved, err := f.uc.ResolveMovement(context.Background(), p, mov.ID, dto.MovementResolveRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, resolved.ApprovalStatus)

	// La aprobación aplicó la transición en la misma transacción.
	asset, err = f.uc.GetByID(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusMaintenance, asset.Status)
}

func TestMovimiento_RechazoNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Taladro industrial")

	mov, err := f.uc.RequestMovement(context.Background(), p, dto.MovementRequest{
		AssetID: created.ID, MovementType: entity.MovementTypePreventive,
	})
	require.NoError(t, err)

	resolved, err := f.uc.ResolveMovement(context.Background(), p, mov.ID, dto.MovementResolveRequest{Approve: false})
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, resolved.ApprovalStatus)

	asset, _ := f.uc.GetByID(context.Background(), p, created.ID)
	assert.Equal(t, entity.AssetStatusActive, asset.Status)
}

func TestMovimiento_ResolucionEsUnica(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Pulidora")

	mov, err := f.uc.RequestMovement(context.Background(), p, dto.MovementRequest{
		AssetID: created.ID, MovementType: entity.MovementTypeTransfer, ToLocation: "planta 2",
	})
	require.NoError(t, err)

	_, err = f.uc.ResolveMovement(context.Background(), p, mov.ID, dto.MovementResolveRequest{Approve: true})
	require.NoError(t, err)

	_, err = f.uc.ResolveMovement(context.Background(), p, mov.ID, dto.MovementResolveRequest{Approve: false})
	assert.ErrorIs(t, err, domain.ErrImmutableRecord)
}

func TestMovimiento_SolicitudCondenadaSeRechazaTemprano(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Caldera")
	f.disposeViaMovement(t, created.ID)

	_, err := f.uc.RequestMovement(context.Background(), p, dto.MovementRequest{
		AssetID: created.ID, MovementType: entity.MovementTypeCorrective,
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition,
		"un activo terminal no acepta solicitudes que lo muevan de estado")
}

// ─── flujo de órdenes de trabajo ───

func TestOrden_CompletarDevuelveElActivoAActivo(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Prensa")
	f.toMaintenance(t, created.ID)

	wo, err := f.uc.CreateWorkOrder(context.Background(), p, dto.WorkOrderCreateRequest{
		AssetID: created.ID, Title: "Cambio de rodamientos",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WorkOrderOpen, wo.Status)

	wo, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderInProgress, Version: wo.Version,
	})
	require.NoError(t, err)
	require.NotNil(t, wo.StartedAt)

	labor := dec("350000")
	parts := dec("120000")
	wo, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderCompleted, Version: wo.Version, LaborCost: &labor, PartsCost: &parts,
	})
	require.NoError(t, err)
	assert.True(t, wo.TotalCost.Equal(dec("470000")), "roll-up de costos al completar")
	require.NotNil(t, wo.CompletedAt)

	asset, err := f.uc.GetByID(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusActive, asset.Status,
		"la orden completada devuelve el activo a active en la misma transacción")
}

func TestOrden_SaltoDeEstadoIlegal(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Fresadora")
	f.toMaintenance(t, created.ID)

	wo, err := f.uc.CreateWorkOrder(context.Background(), p, dto.WorkOrderCreateRequest{
		AssetID: created.ID, Title: "Ajuste de husillo",
	})
	require.NoError(t, err)

	// open -> completed sin pasar por in_progress.
	_, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderCompleted, Version: wo.Version,
	})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestOrden_VersionViejaFalla(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Horno")
	f.toMaintenance(t, created.ID)

	wo, err := f.uc.CreateWorkOrder(context.Background(), p, dto.WorkOrderCreateRequest{
		AssetID: created.ID, Title: "Recalibración",
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderInProgress, Version: wo.Version,
	})
	require.NoError(t, err)

	// Con la versión vieja ya consumida.
	_, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderOnHold, Version: wo.Version,
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestOrden_SobreActivoTerminalRechazada(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Bomba")
	f.disposeViaMovement(t, created.ID)

	_, err := f.uc.CreateWorkOrder(context.Background(), p, dto.WorkOrderCreateRequest{
		AssetID: created.ID, Title: "Mantenimiento",
	})
	assert.ErrorIs(t, err, domain.ErrImmutableRecord)
}

// ─── disposición y congelamiento ───

func TestDisposicion_CongelaDepreciacion(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)

	in := createReq("Retroexcavadora")
	in.PurchaseDate = testNow.Add(-time.Duration(2.5*365*86400) * time.Second)
	created, err := f.uc.Create(context.Background(), p, in)
	require.NoError(t, err)

	f.disposeViaMovement(t, created.ID)

	disposed, err := f.uc.GetByID(context.Background(), p, created.ID)
	require.NoError(t, err)
	require.NotNil(t, disposed.DisposedAt)
	assert.True(t, disposed.AccumulatedDepreciation.Equal(dec("4500000")))

	// Un año después la consulta devuelve los mismos valores congelados.
	later, err := f.uc.ComputeAsOf(context.Background(), p, created.ID, testNow.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.True(t, later.AccumulatedDepreciation.Equal(dec("4500000")),
		"la baja congela la acumulada: obtenida %s", later.AccumulatedDepreciation)
	assert.True(t, later.BookValue.Equal(dec("5500000")))
}

// ─── borrado ───

func TestBorrado_FisicoSinHistoriaFinanciera(t *testing.T) {
	f := newFixture(t)
	p := disposer(tenantA)
	created := f.mustCreate(t, manager(tenantA), "Silla ergonómica")

	out, err := f.uc.Delete(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Nil(t, out, "sin historia financiera el borrado es físico")

	_, err = f.uc.GetByID(context.Background(), p, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El rastro de auditoría sobrevive al activo.
	rows, err := f.store.Audits().ListForEntity(context.Background(), "asset", created.ID)
	require.NoError(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, "asset.delete", last.Action)
	assert.True(t, last.ComplianceEvent)
}

// Un activo sin depreciación acumulada pero con mantenimiento facturado
// (orden completada) también lleva baja lógica: los costos registrados son
// actividad financiera.
func TestBorrado_LogicoConOrdenCompletada(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Banco de pruebas")
	require.True(t, created.AccumulatedDepreciation.IsZero())

	f.toMaintenance(t, created.ID)
	wo, err := f.uc.CreateWorkOrder(context.Background(), p, dto.WorkOrderCreateRequest{
		AssetID: created.ID, Title: "Reemplazo de sensores",
	})
	require.NoError(t, err)
	wo, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderInProgress, Version: wo.Version,
	})
	require.NoError(t, err)
	labor := dec("250000")
	_, err = f.uc.UpdateWorkOrderStatus(context.Background(), p, wo.ID, dto.WorkOrderStatusRequest{
		Status: entity.WorkOrderCompleted, Version: wo.Version, LaborCost: &labor,
	})
	require.NoError(t, err)

	out, err := f.uc.Delete(context.Background(), disposer(tenantA), created.ID)
	require.NoError(t, err)
	require.NotNil(t, out, "con mantenimiento facturado la baja debe ser lógica")
	assert.Equal(t, entity.AssetStatusDisposed, out.Status)

	got, err := f.uc.GetByID(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusDisposed, got.Status)
}

func TestBorrado_LogicoConHistoriaFinanciera(t *testing.T) {
	f := newFixture(t)
	p := disposer(tenantA)

	in := createReq("Camión de reparto")
	in.PurchaseDate = testNow.AddDate(-1, 0, 0) // ya acumuló depreciación
	created, err := f.uc.Create(context.Background(), manager(tenantA), in)
	require.NoError(t, err)
	require.True(t, created.AccumulatedDepreciation.GreaterThan(decimal.Zero))

	out, err := f.uc.Delete(context.Background(), p, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out, "con historia la baja es lógica")
	assert.Equal(t, entity.AssetStatusDisposed, out.Status)
	assert.NotNil(t, out.DisposedAt)

	// El activo sigue consultable.
	got, err := f.uc.GetByID(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AssetStatusDisposed, got.Status)
}

// ─── consultas y scoping ───

func TestQuery_ScopePorTenant(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, manager(tenantA), "Activo A1")
	f.mustCreate(t, manager(tenantA), "Activo A2")
	f.mustCreate(t, manager(tenantB), "Activo B1")

	out, err := f.uc.Query(context.Background(), manager(tenantA), dto.AssetQueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	for _, item := range out.Items {
		assert.Equal(t, tenantA, item.CompanyID)
	}

	super := authz.Principal{UserID: "root", Role: authz.RoleSuperAdmin, Active: true}
	all, err := f.uc.Query(context.Background(), super, dto.AssetQueryRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Page.Total)
}

func TestGetByID_CruceDeTenant(t *testing.T) {
	f := newFixture(t)
	created := f.mustCreate(t, manager(tenantA), "Secreto industrial")

	_, err := f.uc.GetByID(context.Background(), manager(tenantB), created.ID)
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, authz.ReasonCrossTenantAccess, denied.Reason)
}

func TestAuditTrail_CadenaIntegra(t *testing.T) {
	f := newFixture(t)
	p := manager(tenantA)
	created := f.mustCreate(t, p, "Robot soldador")

	name := "Robot soldador celda 3"
	_, err := f.uc.Update(context.Background(), p, created.ID, dto.AssetUpdateRequest{Version: 1, Name: &name})
	require.NoError(t, err)
	_, err = f.uc.Transition(context.Background(), p, created.ID, dto.AssetTransitionRequest{
		RequestedStatus: entity.AssetStatusInactive,
	})
	require.NoError(t, err)

	rows, broken, err := f.uc.AuditTrail(context.Background(), p, created.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, broken, "la cadena debe estar íntegra")
	require.Len(t, rows, 3)
	assert.Equal(t, "asset.create", rows[0].Action)
	assert.Equal(t, "asset.update", rows[1].Action)
	assert.Equal(t, "asset.transition", rows[2].Action)
}

// ─── helpers de flujo ───

// toMaintenance lleva el activo a maintenance vía movimiento correctivo
// aprobado.
func (f *fixture) toMaintenance(t *testing.T, assetID string) {
	t.Helper()
	p := manager(tenantA)
	mov, err := f.uc.RequestMovement(context.Background(), p, dto.MovementRequest{
		AssetID: assetID, MovementType: entity.MovementTypeCorrective,
	})
	require.NoError(t, err)
	_, err = f.uc.ResolveMovement(context.Background(), p, mov.ID, dto.MovementResolveRequest{Approve: true})
	require.NoError(t, err)
}

// disposeViaMovement dispone el activo vía movimiento de disposición aprobado.
func (f *fixture) disposeViaMovement(t *testing.T, assetID string) {
	t.Helper()
	p := manager(tenantA)
	mov, err := f.uc.RequestMovement(context.Background(), p, dto.MovementRequest{
		AssetID: assetID, MovementType: entity.MovementTypeDisposal,
	})
	require.NoError(t, err)
	_, err = f.uc.ResolveMovement(context.Background(), p, mov.ID, dto.MovementResolveRequest{Approve: true})
	require.NoError(t, err)
}
