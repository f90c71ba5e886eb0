package repository

import (
	"context"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
)

// TenantRepository define el puerto del registro global de tenants (DIP).
// Los tenants NO se particionan: este repositorio opera fuera del interceptor de scoping.
// No hay Delete: el ciclo de vida termina en Deactivate (status inactive).
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	Deactivate(ctx context.Context, id string) error
}
