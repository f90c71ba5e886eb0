package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/internal/store"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo adaptador de Order sobre el store particionado.
type OrderRepo struct {
	s store.Store
}

// NewOrderRepository construye el adaptador. En producción s es el ScopedStore.
func NewOrderRepository(s store.Store) *OrderRepo {
	return &OrderRepo{s: s}
}

// Las líneas se guardan serializadas como string JSON para que el documento
// sea neutral entre motores (jsonb y memoria).
func orderToDoc(o *entity.Order) (store.Document, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return store.Document{
		store.FieldID:     o.ID,
		store.FieldTenant: o.TenantID,
		"table_number":    o.TableNumber,
		"items":           string(items),
		"status":          o.Status,
		"total":           o.Total.String(),
		"day":             dayKey(o.CreatedAt),
		"created_at":      encodeTime(o.CreatedAt),
		"updated_at":      encodeTime(o.UpdatedAt),
	}, nil
}

func docToOrder(doc store.Document) (*entity.Order, error) {
	total, err := decimal.NewFromString(asString(doc["total"]))
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	var items []entity.OrderItem
	if raw := asString(doc["items"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &entity.Order{
		ID:          doc.ID(),
		TenantID:    doc.TenantID(),
		TableNumber: asInt(doc["table_number"]),
		Items:       items,
		Status:      asString(doc["status"]),
		Total:       total,
		CreatedAt:   asTime(doc["created_at"]),
		UpdatedAt:   asTime(doc["updated_at"]),
	}, nil
}

// Create persiste una orden nueva (insert).
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	doc, err := orderToDoc(order)
	if err != nil {
		return err
	}
	return r.s.Insert(ctx, CollectionOrders, doc)
}

// GetByID obtiene una orden por ID (find-one).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.s.FindOne(ctx, CollectionOrders, store.ByID(id))
	if err != nil || doc == nil {
		return nil, err
	}
	return docToOrder(doc)
}

func (r *OrderRepo) list(ctx context.Context, f store.Filter, limit, offset int) ([]*entity.Order, error) {
	docs, err := r.s.FindMany(ctx, CollectionOrders, f,
		store.FindOptions{Limit: limit, Offset: offset, OrderBy: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		o, err := docToOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// List lista las órdenes del tenant activo (find-many).
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return r.list(ctx, store.Filter{}, limit, offset)
}

// ListByStatus lista las órdenes con un estado dado.
func (r *OrderRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	return r.list(ctx, store.Filter{"status": status}, limit, offset)
}

// UpdateStatus cambia el estado de una orden (update-one).
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	return r.s.UpdateOne(ctx, CollectionOrders, store.ByID(id),
		store.Update{"status": status, "updated_at": encodeTime(time.Now())})
}

// Delete elimina una orden (delete-one).
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.s.DeleteOne(ctx, CollectionOrders, store.ByID(id))
	return err
}

// RevenueForDay suma los totales pagados del día (aggregate).
func (r *OrderRepo) RevenueForDay(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	return r.s.Aggregate(ctx, CollectionOrders,
		store.Filter{"status": entity.OrderStatusPaid, "day": dayKey(day)},
		store.Aggregation{Func: store.AggSum, Field: "total"})
}
