package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderStatusOpen      = "open"
	OrderStatusPreparing = "preparing"
	OrderStatusServed    = "served"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// OrderItem es una línea de la orden (snapshot del ítem de menú al momento de ordenar).
type OrderItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// Order es una orden de mesa. Entidad particionada por tenant.
type Order struct {
	ID          string
	TenantID    string
	TableNumber int
	Items       []OrderItem
	Status      string // ver constantes OrderStatus*
	Total       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeTotal recalcula el total a partir de las líneas.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
