package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mesero-api/internal/application/dto"
	"github.com/jhoicas/Mesero-api/internal/application/usecase"
	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/infrastructure/docstore"
	"github.com/jhoicas/Mesero-api/internal/infrastructure/memory"
	"github.com/jhoicas/Mesero-api/internal/tenancy"
	"github.com/jhoicas/Mesero-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeTenantRepo registro mínimo con un tenant activo.
type fakeTenantRepo struct {
	tenant *entity.Tenant
}

func (r *fakeTenantRepo) Create(ctx context.Context, t *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	if r.tenant != nil && r.tenant.ID == id {
		return r.tenant, nil
	}
	return nil, nil
}
func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return nil, nil
}
func (r *fakeTenantRepo) Update(ctx context.Context, t *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	return nil, nil
}
func (r *fakeTenantRepo) Deactivate(ctx context.Context, id string) error { return nil }

// fakePDF generador de recibos que registra la orden recibida.
type fakePDF struct {
	lastOrderID string
}

func (g *fakePDF) GenerateReceiptPDF(ctx context.Context, order *entity.Order, tenant *entity.Tenant) ([]byte, error) {
	g.lastOrderID = order.ID
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	orders *usecase.OrderUseCase
	pdf    *fakePDF
	ctx    context.Context
}

// newFixture arma el stack completo de producción (ScopedStore + motor en
// memoria) con un ítem de menú disponible y uno agotado.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	scoped := tenancy.NewScopedStore(memory.NewStore(), logger.Nop())
	menuRepo := docstore.NewMenuItemRepository(scoped)
	orderRepo := docstore.NewOrderRepository(scoped)
	tenantRepo := &fakeTenantRepo{tenant: &entity.Tenant{
		ID: "tenant-a", Name: "Café del Parque", Slug: "cafe-del-parque", Status: entity.TenantStatusActive,
	}}
	pdf := &fakePDF{}

	ctx := tenancy.WithTenant(context.Background(), tenancy.Context{TenantID: "tenant-a"})
	now := time.Now()
	require.NoError(t, menuRepo.Create(ctx, &entity.MenuItem{
		ID: "mi-capu", Name: "Cappuccino", Category: entity.CategoryBebidas,
		Price: decimal.RequireFromString("4.50"), Available: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, menuRepo.Create(ctx, &entity.MenuItem{
		ID: "mi-agotado", Name: "Torta", Category: entity.CategoryPostres,
		Price: decimal.RequireFromString("6.00"), Available: false, CreatedAt: now, UpdatedAt: now,
	}))

	return &fixture{
		orders: usecase.NewOrderUseCase(orderRepo, menuRepo, tenantRepo, pdf),
		pdf:    pdf,
		ctx:    ctx,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// La orden toma snapshot de nombre y precio del menú y calcula el total.
func TestOrderUseCase_Create_SnapshotYTotal(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.orders.Create(fx.ctx, dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{MenuItemID: "mi-capu", Quantity: 2}},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.OrderStatusOpen, out.Status)
	assert.Equal(t, "9.00", out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Cappuccino", out.Items[0].Name)
	assert.Equal(t, "4.50", out.Items[0].UnitPrice)
}

func TestOrderUseCase_Create_SinLineas_Rechazado(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.orders.Create(fx.ctx, dto.CreateOrderRequest{TableNumber: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderUseCase_Create_ItemInexistente_ErrNotFound(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.orders.Create(fx.ctx, dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{MenuItemID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUseCase_Create_ItemNoDisponible_ErrConflict(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.orders.Create(fx.ctx, dto.CreateOrderRequest{
		TableNumber: 3,
		Items:       []dto.OrderItemRequest{{MenuItemID: "mi-agotado", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func createOpenOrder(t *testing.T, fx *fixture) string {
	t.Helper()
	out, err := fx.orders.Create(fx.ctx, dto.CreateOrderRequest{
		TableNumber: 1,
		Items:       []dto.OrderItemRequest{{MenuItemID: "mi-capu", Quantity: 1}},
	})
	require.NoError(t, err)
	return out.ID
}

func TestOrderUseCase_UpdateStatus_TransicionValida(t *testing.T) {
	fx := newFixture(t)
	id := createOpenOrder(t, fx)

	out, err := fx.orders.UpdateStatus(fx.ctx, id, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, out.Status)

	// El cambio queda persistido, no solo reflejado en la respuesta.
	got, err := fx.orders.GetByID(fx.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.OrderStatusPreparing, got.Status)
}

func TestOrderUseCase_UpdateStatus_SaltoInvalido_ErrConflict(t *testing.T) {
	fx := newFixture(t)
	id := createOpenOrder(t, fx)

	// open → paid no es una transición legal (falta served).
	_, err := fx.orders.UpdateStatus(fx.ctx, id, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPaid})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderUseCase_UpdateStatus_EstadoTerminal_SinSalida(t *testing.T) {
	fx := newFixture(t)
	id := createOpenOrder(t, fx)

	_, err := fx.orders.UpdateStatus(fx.ctx, id, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled})
	require.NoError(t, err)

	_, err = fx.orders.UpdateStatus(fx.ctx, id, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusOpen})
	assert.ErrorIs(t, err, domain.ErrConflict, "cancelled es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibo y revenue
// ──────────────────────────────────────────────────────────────────────────────

func payOrder(t *testing.T, fx *fixture, id string) {
	t.Helper()
	for _, status := range []string{entity.OrderStatusPreparing, entity.OrderStatusServed, entity.OrderStatusPaid} {
		_, err := fx.orders.UpdateStatus(fx.ctx, id, dto.UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
	}
}

func TestOrderUseCase_Receipt_SoloOrdenesPagadas(t *testing.T) {
	fx := newFixture(t)
	id := createOpenOrder(t, fx)

	_, err := fx.orders.Receipt(fx.ctx, id, "tenant-a")
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden abierta no tiene recibo")

	payOrder(t, fx, id)
	pdf, err := fx.orders.Receipt(fx.ctx, id, "tenant-a")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, id, fx.pdf.lastOrderID)
}

func TestOrderUseCase_DailyRevenue(t *testing.T) {
	fx := newFixture(t)
	id := createOpenOrder(t, fx)
	payOrder(t, fx, id)
	createOpenOrder(t, fx) // queda abierta, no suma

	out, err := fx.orders.DailyRevenue(fx.ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, "4.50", out.Revenue)
}
