package repository

import (
	"context"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
)

// MenuItemRepository puerto de persistencia para MenuItem. La implementación trabaja
// sobre el store particionado: ningún método recibe tenant_id, sale del contexto.
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MenuItem, error)
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]*entity.MenuItem, error)
	Save(ctx context.Context, item *entity.MenuItem) error
	SetCategoryAvailability(ctx context.Context, category string, available bool) (int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
