package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/internal/store"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo adaptador de MenuItem sobre el store particionado.
type MenuItemRepo struct {
	s store.Store
}

// NewMenuItemRepository construye el adaptador. En producción s es el ScopedStore.
func NewMenuItemRepository(s store.Store) *MenuItemRepo {
	return &MenuItemRepo{s: s}
}

func menuItemToDoc(m *entity.MenuItem) store.Document {
	return store.Document{
		store.FieldID:     m.ID,
		store.FieldTenant: m.TenantID,
		"name":            m.Name,
		"category":        m.Category,
		"price":           m.Price.String(),
		"available":       m.Available,
		"created_at":      encodeTime(m.CreatedAt),
		"updated_at":      encodeTime(m.UpdatedAt),
	}
}

func docToMenuItem(doc store.Document) (*entity.MenuItem, error) {
	price, err := decimal.NewFromString(asString(doc["price"]))
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &entity.MenuItem{
		ID:        doc.ID(),
		TenantID:  doc.TenantID(),
		Name:      asString(doc["name"]),
		Category:  asString(doc["category"]),
		Price:     price,
		Available: asBool(doc["available"]),
		CreatedAt: asTime(doc["created_at"]),
		UpdatedAt: asTime(doc["updated_at"]),
	}, nil
}

// Create persiste un ítem nuevo (insert).
func (r *MenuItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.s.Insert(ctx, CollectionMenuItems, menuItemToDoc(item))
}

// GetByID obtiene un ítem por ID (find-one).
func (r *MenuItemRepo) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	doc, err := r.s.FindOne(ctx, CollectionMenuItems, store.ByID(id))
	if err != nil || doc == nil {
		return nil, err
	}
	return docToMenuItem(doc)
}

func (r *MenuItemRepo) list(ctx context.Context, f store.Filter, limit, offset int) ([]*entity.MenuItem, error) {
	docs, err := r.s.FindMany(ctx, CollectionMenuItems, f,
		store.FindOptions{Limit: limit, Offset: offset, OrderBy: "name"})
	if err != nil {
		return nil, err
	}
	items := make([]*entity.MenuItem, 0, len(docs))
	for _, doc := range docs {
		item, err := docToMenuItem(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// List lista los ítems del tenant activo (find-many).
func (r *MenuItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.MenuItem, error) {
	return r.list(ctx, store.Filter{}, limit, offset)
}

// ListByCategory lista los ítems de una categoría.
func (r *MenuItemRepo) ListByCategory(ctx context.Context, category string, limit, offset int) ([]*entity.MenuItem, error) {
	return r.list(ctx, store.Filter{"category": category}, limit, offset)
}

// Save sobrescribe un ítem existente (save con verificación de tenant).
func (r *MenuItemRepo) Save(ctx context.Context, item *entity.MenuItem) error {
	return r.s.Save(ctx, CollectionMenuItems, menuItemToDoc(item))
}

// SetCategoryAvailability habilita o deshabilita toda una categoría (update-many).
func (r *MenuItemRepo) SetCategoryAvailability(ctx context.Context, category string, available bool) (int64, error) {
	return r.s.UpdateMany(ctx, CollectionMenuItems,
		store.Filter{"category": category},
		store.Update{"available": available, "updated_at": encodeTime(time.Now())})
}

// Delete elimina un ítem (delete-one).
func (r *MenuItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.s.DeleteOne(ctx, CollectionMenuItems, store.ByID(id))
	return err
}

// Count cuenta los ítems del tenant activo.
func (r *MenuItemRepo) Count(ctx context.Context) (int64, error) {
	return r.s.Count(ctx, CollectionMenuItems, store.Filter{})
}
