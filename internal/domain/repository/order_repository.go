package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para Order sobre el store particionado.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus parchea el estado de la orden sin sobrescribir el documento.
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
	Delete(ctx context.Context, id string) error
	// RevenueForDay suma los totales de las órdenes pagadas del día dado.
	RevenueForDay(ctx context.Context, day time.Time) (decimal.Decimal, error)
}
