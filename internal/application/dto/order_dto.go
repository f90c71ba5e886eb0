package dto

import "time"

// OrderItemRequest línea de una orden nueva.
type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest alta de una orden de mesa.
type CreateOrderRequest struct {
	TableNumber int                `json:"table_number"`
	Items       []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest transición de estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
}

// OrderResponse representación pública de una orden.
type OrderResponse struct {
	ID          string              `json:"id"`
	TableNumber int                 `json:"table_number"`
	Items       []OrderItemResponse `json:"items"`
	Status      string              `json:"status"`
	Total       string              `json:"total"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// DailyRevenueResponse ingreso agregado de un día.
type DailyRevenueResponse struct {
	Day     string `json:"day"` // YYYY-MM-DD
	Revenue string `json:"revenue"`
}
