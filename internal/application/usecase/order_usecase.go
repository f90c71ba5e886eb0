package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mesero-api/internal/application/dto"
	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
)

// ReceiptPDFGenerator puerto para generar el recibo de una orden en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, tenant *entity.Tenant) ([]byte, error)
}

// validTransitions transiciones permitidas del estado de una orden.
var validTransitions = map[string][]string{
	entity.OrderStatusOpen:      {entity.OrderStatusPreparing, entity.OrderStatusCancelled},
	entity.OrderStatusPreparing: {entity.OrderStatusServed, entity.OrderStatusCancelled},
	entity.OrderStatusServed:    {entity.OrderStatusPaid, entity.OrderStatusCancelled},
	entity.OrderStatusPaid:      {},
	entity.OrderStatusCancelled: {},
}

// OrderUseCase casos de uso de órdenes de mesa.
type OrderUseCase struct {
	orders  repository.OrderRepository
	menu    repository.MenuItemRepository
	tenants repository.TenantRepository
	pdf     ReceiptPDFGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders repository.OrderRepository, menu repository.MenuItemRepository, tenants repository.TenantRepository, pdf ReceiptPDFGenerator) *OrderUseCase {
	return &OrderUseCase{orders: orders, menu: menu, tenants: tenants, pdf: pdf}
}

// Create crea una orden tomando snapshot de precio y nombre de cada ítem de menú.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.TableNumber <= 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]entity.OrderItem, 0, len(in.Items))
	for _, li := range in.Items {
		if li.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.menu.GetByID(ctx, li.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if !item.Available {
			return nil, domain.ErrConflict
		}
		lines = append(lines, entity.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   li.Quantity,
			UnitPrice:  item.Price,
		})
	}
	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		TableNumber: in.TableNumber,
		Items:       lines,
		Status:      entity.OrderStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.Total = order.ComputeTotal()
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con paginación; status vacío = todas.
func (uc *OrderUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if status != "" {
		list, err = uc.orders.ListByStatus(ctx, status, limit, offset)
	} else {
		list, err = uc.orders.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus aplica una transición de estado validada. La escritura es un
// parche puntual sobre status, no un save del documento completo.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !transitionAllowed(order.Status, in.Status) {
		return nil, domain.ErrConflict
	}
	n, err := uc.orders.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// La orden desapareció entre la lectura y el parche.
		return nil, nil
	}
	order.Status = in.Status
	order.UpdatedAt = time.Now()
	return toOrderResponse(order), nil
}

// Delete elimina una orden por ID.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.orders.Delete(ctx, id)
}

// DailyRevenue suma los totales de las órdenes pagadas de una fecha.
func (uc *OrderUseCase) DailyRevenue(ctx context.Context, day time.Time) (*dto.DailyRevenueResponse, error) {
	revenue, err := uc.orders.RevenueForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return &dto.DailyRevenueResponse{
		Day:     day.UTC().Format("2006-01-02"),
		Revenue: revenue.StringFixed(2),
	}, nil
}

// Receipt genera el recibo PDF de una orden pagada, con membrete del tenant.
func (uc *OrderUseCase) Receipt(ctx context.Context, orderID, tenantID string) ([]byte, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPaid {
		return nil, domain.ErrConflict
	}
	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateReceiptPDF(ctx, order, tenant)
}

func transitionAllowed(from, to string) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.StringFixed(2),
		})
	}
	return &dto.OrderResponse{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Items:       items,
		Status:      o.Status,
		Total:       o.Total.StringFixed(2),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
