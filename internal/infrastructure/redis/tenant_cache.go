// Package redis implementa el cache del registro de tenants. La resolución de
// tenant ocurre en cada petición autenticada; cachearla evita un viaje a
// PostgreSQL por request. Cualquier error de cache degrada a lectura directa.
package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/pkg/config"
	"github.com/jhoicas/Mesero-api/pkg/logger"
)

var _ repository.TenantRepository = (*CachedTenantRepo)(nil)

// TTL del cache de tenants. Corto a propósito: una suspensión debe
// hacerse efectiva en minutos, no en horas.
const tenantCacheTTL = 5 * time.Minute

// NewClient construye el cliente Redis y verifica conectividad.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// CachedTenantRepo decora un TenantRepository con cache en Redis para las
// lecturas por id y slug. Las escrituras delegan e invalidan.
type CachedTenantRepo struct {
	inner repository.TenantRepository
	rdb   *goredis.Client
	log   *logger.Logger
}

// NewCachedTenantRepository construye el decorador de cache.
func NewCachedTenantRepository(inner repository.TenantRepository, rdb *goredis.Client, log *logger.Logger) *CachedTenantRepo {
	return &CachedTenantRepo{inner: inner, rdb: rdb, log: log.WithComponent("tenant_cache")}
}

func keyByID(id string) string     { return "tenant:id:" + id }
func keyBySlug(slug string) string { return "tenant:slug:" + slug }

func (r *CachedTenantRepo) get(ctx context.Context, key string) *entity.Tenant {
	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != goredis.Nil {
			r.log.Debug().Err(err).Str("key", key).Msg("cache get falló; lectura directa")
		}
		return nil
	}
	var t entity.Tenant
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		r.log.Debug().Err(err).Str("key", key).Msg("cache corrupto; lectura directa")
		return nil
	}
	return &t
}

func (r *CachedTenantRepo) put(ctx context.Context, tenant *entity.Tenant) {
	raw, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, keyByID(tenant.ID), raw, tenantCacheTTL).Err(); err != nil {
		r.log.Debug().Err(err).Msg("cache set falló")
	}
	if err := r.rdb.Set(ctx, keyBySlug(tenant.Slug), raw, tenantCacheTTL).Err(); err != nil {
		r.log.Debug().Err(err).Msg("cache set falló")
	}
}

func (r *CachedTenantRepo) invalidate(ctx context.Context, tenant *entity.Tenant) {
	keys := []string{keyByID(tenant.ID), keyBySlug(tenant.Slug)}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.log.Debug().Err(err).Msg("cache del falló")
	}
}

// Create delega al registro.
func (r *CachedTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	return r.inner.Create(ctx, tenant)
}

// GetByID lee del cache y cae al registro en caso de miss.
func (r *CachedTenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	if t := r.get(ctx, keyByID(id)); t != nil {
		return t, nil
	}
	t, err := r.inner.GetByID(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	r.put(ctx, t)
	return t, nil
}

// GetBySlug lee del cache y cae al registro en caso de miss.
func (r *CachedTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	if t := r.get(ctx, keyBySlug(slug)); t != nil {
		return t, nil
	}
	t, err := r.inner.GetBySlug(ctx, slug)
	if err != nil || t == nil {
		return t, err
	}
	r.put(ctx, t)
	return t, nil
}

// Update delega e invalida las entradas del tenant.
func (r *CachedTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	if err := r.inner.Update(ctx, tenant); err != nil {
		return err
	}
	r.invalidate(ctx, tenant)
	return nil
}

// List delega sin cachear (es una operación administrativa poco frecuente).
func (r *CachedTenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	return r.inner.List(ctx, limit, offset)
}

// Deactivate delega e invalida las entradas del tenant.
func (r *CachedTenantRepo) Deactivate(ctx context.Context, id string) error {
	tenant, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.Deactivate(ctx, id); err != nil {
		return err
	}
	if tenant != nil {
		r.invalidate(ctx, tenant)
	}
	return nil
}
