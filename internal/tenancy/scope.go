package tenancy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/store"
	"github.com/jhoicas/Mesero-api/pkg/logger"
)

var _ store.Store = (*ScopedStore)(nil)

// UnscopedObserver recibe cada operación que se ejecutó sin contexto de tenant.
// Señal tipada además del log, para poder asertarla en tests y alimentar métricas.
type UnscopedObserver func(op, collection string)

// ScopedStore es el interceptor de scoping: envuelve un store.Store y fuerza la
// partición por tenant en cada operación.
//
// Lecturas/updates/deletes/count/aggregate: si hay contexto y el filtro no
// restringe tenant_id, se inyecta la cláusula. Si no hay contexto la operación
// ejecuta SIN filtro (fail-open de compatibilidad, logueado en warn: condición
// alertable en producción, no un control de seguridad).
//
// Insert: tenant_id vacío se estampa desde el contexto; sin contexto queda
// vacío y la validación obligatoria del motor rechaza (fail-closed). Un valor
// puesto por el caller nunca se sobrescribe.
//
// Save: se compara el tenant PERSISTIDO contra el contexto y contra el propio
// documento; cualquier diferencia es TenantMismatchError antes de persistir.
type ScopedStore struct {
	inner      store.Store
	log        *logger.Logger
	onUnscoped UnscopedObserver
}

// Option configura el ScopedStore.
type Option func(*ScopedStore)

// WithUnscopedObserver registra el callback de operaciones sin contexto.
func WithUnscopedObserver(fn UnscopedObserver) Option {
	return func(s *ScopedStore) { s.onUnscoped = fn }
}

// NewScopedStore construye el interceptor sobre el store dado.
func NewScopedStore(inner store.Store, log *logger.Logger, opts ...Option) *ScopedStore {
	s := &ScopedStore{
		inner: inner,
		log:   log.WithComponent("tenancy.scope"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// scopeFilter aplica la política de partición a un filtro. Único punto de
// inyección: todas las operaciones de lectura/mutación masiva pasan por aquí.
func (s *ScopedStore) scopeFilter(ctx context.Context, op, collection string, f store.Filter) store.Filter {
	tc, ok := Current(ctx)
	if !ok {
		s.log.Warn().
			Str("op", op).
			Str("collection", collection).
			Msg("operación sin contexto de tenant: ejecuta sin filtro de partición")
		if s.onUnscoped != nil {
			s.onUnscoped(op, collection)
		}
		return f
	}

	if f.Has(store.FieldTenant) {
		if IsElevated(ctx) {
			// Escape hatch autorizado: el caller con capacidad cross-tenant
			// ya restringió tenant_id y su cláusula se respeta.
			return f
		}
		// Sin la capacidad, un tenant explícito en el filtro no es licencia:
		// se fuerza el tenant del contexto.
		s.log.Warn().
			Str("op", op).
			Str("collection", collection).
			Str("tenant_id", tc.TenantID).
			Msg("filtro con tenant explícito sin privilegio cross-tenant: se fuerza el tenant del contexto")
	}

	g := f.Clone()
	g.Set(store.FieldTenant, tc.TenantID)
	return g
}

// FindOne busca un registro dentro de la partición del tenant activo.
func (s *ScopedStore) FindOne(ctx context.Context, collection string, f store.Filter) (store.Document, error) {
	return s.inner.FindOne(ctx, collection, s.scopeFilter(ctx, "find_one", collection, f))
}

// FindMany lista registros dentro de la partición del tenant activo.
func (s *ScopedStore) FindMany(ctx context.Context, collection string, f store.Filter, opts store.FindOptions) ([]store.Document, error) {
	return s.inner.FindMany(ctx, collection, s.scopeFilter(ctx, "find_many", collection, f), opts)
}

// UpdateOne actualiza a lo sumo un registro de la partición.
func (s *ScopedStore) UpdateOne(ctx context.Context, collection string, f store.Filter, u store.Update) (int64, error) {
	return s.inner.UpdateOne(ctx, collection, s.scopeFilter(ctx, "update_one", collection, f), u)
}

// UpdateMany actualiza todos los registros de la partición que cumplan el filtro.
func (s *ScopedStore) UpdateMany(ctx context.Context, collection string, f store.Filter, u store.Update) (int64, error) {
	return s.inner.UpdateMany(ctx, collection, s.scopeFilter(ctx, "update_many", collection, f), u)
}

// DeleteOne elimina a lo sumo un registro de la partición.
func (s *ScopedStore) DeleteOne(ctx context.Context, collection string, f store.Filter) (int64, error) {
	return s.inner.DeleteOne(ctx, collection, s.scopeFilter(ctx, "delete_one", collection, f))
}

// DeleteMany elimina los registros de la partición que cumplan el filtro.
func (s *ScopedStore) DeleteMany(ctx context.Context, collection string, f store.Filter) (int64, error) {
	return s.inner.DeleteMany(ctx, collection, s.scopeFilter(ctx, "delete_many", collection, f))
}

// Count cuenta registros dentro de la partición.
func (s *ScopedStore) Count(ctx context.Context, collection string, f store.Filter) (int64, error) {
	return s.inner.Count(ctx, collection, s.scopeFilter(ctx, "count", collection, f))
}

// Aggregate agrega un campo numérico dentro de la partición.
func (s *ScopedStore) Aggregate(ctx context.Context, collection string, f store.Filter, agg store.Aggregation) (decimal.Decimal, error) {
	return s.inner.Aggregate(ctx, collection, s.scopeFilter(ctx, "aggregate", collection, f), agg)
}

// Insert persiste un registro nuevo estampando el tenant del contexto.
func (s *ScopedStore) Insert(ctx context.Context, collection string, doc store.Document) error {
	if doc.TenantID() == "" {
		if tc, ok := Current(ctx); ok {
			doc = doc.Clone()
			doc.SetTenantID(tc.TenantID)
		}
		// Sin contexto el campo queda vacío y el motor rechaza el insert:
		// la creación es fail-closed, a diferencia de las lecturas.
	}
	return s.inner.Insert(ctx, collection, doc)
}

// Save escribe un registro existente verificando la consistencia de tenant
// contra el valor PERSISTIDO (no contra el campo en memoria, que puede venir
// manipulado). Transiciones legales: mismo tenant, o backfill de un registro
// legado sin tenant bajo contexto activo.
func (s *ScopedStore) Save(ctx context.Context, collection string, doc store.Document) error {
	persisted, err := s.inner.FindOne(ctx, collection, store.ByID(doc.ID()))
	if err != nil {
		return err
	}
	if persisted == nil {
		return domain.ErrNotFound
	}

	stored := persisted.TenantID()
	tc, hasCtx := Current(ctx)

	if stored == "" {
		// Registro legado sin tenant. Decisión explícita: backfill bajo
		// contexto activo (rechazarlo dejaría ilegible todo dato pre-migración).
		if hasCtx {
			doc = doc.Clone()
			doc.SetTenantID(tc.TenantID)
			s.log.Warn().
				Str("collection", collection).
				Str("id", doc.ID()).
				Str("tenant_id", tc.TenantID).
				Msg("registro legado sin tenant: backfill con el tenant del contexto")
		}
		return s.inner.Save(ctx, collection, doc)
	}

	// Intento de migrar el registro a otro tenant reescribiendo el campo. El
	// contexto reportado es el real del caller; el valor del documento va aparte.
	if docTenant := doc.TenantID(); docTenant != "" && docTenant != stored {
		mismatch := &domain.TenantMismatchError{
			Collection:     collection,
			StoredTenant:   stored,
			ContextTenant:  tc.TenantID,
			DocumentTenant: docTenant,
		}
		s.logMismatch(mismatch, doc.ID())
		return mismatch
	}

	// Escritura desde el contexto de otro tenant.
	if hasCtx && tc.TenantID != stored {
		mismatch := &domain.TenantMismatchError{Collection: collection, StoredTenant: stored, ContextTenant: tc.TenantID}
		s.logMismatch(mismatch, doc.ID())
		return mismatch
	}
	// Contexto ausente con tenant persistido: se permite (la escritura conserva
	// el tenant almacenado). Condición ambigua heredada, monitoreable vía logs.

	// La escritura siempre conserva el tenant persistido.
	doc = doc.Clone()
	doc.SetTenantID(stored)
	return s.inner.Save(ctx, collection, doc)
}

func (s *ScopedStore) logMismatch(e *domain.TenantMismatchError, id string) {
	evt := s.log.Error().
		Str("collection", e.Collection).
		Str("id", id).
		Str("stored_tenant", e.StoredTenant).
		Str("context_tenant", e.ContextTenant)
	if e.DocumentTenant != "" {
		evt = evt.Str("document_tenant", e.DocumentTenant)
	}
	evt.Msg("escritura cross-tenant rechazada")
}
