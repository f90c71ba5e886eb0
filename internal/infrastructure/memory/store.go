// Package memory implementa store.Store en memoria, para tests y entornos
// efímeros. Un RWMutex protege el estado; las lecturas devuelven clones para
// que el caller no mute el registro persistido.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store almacén en memoria: una colección es un mapa id -> documento.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]store.Document
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]store.Document)}
}

func (s *Store) collection(name string) map[string]store.Document {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]store.Document)
		s.collections[name] = c
	}
	return c
}

// matches evalúa las cláusulas de igualdad del filtro contra el documento.
func matches(doc store.Document, f store.Filter) bool {
	for field, want := range f {
		got, ok := doc[field]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// matchingIDs devuelve los ids coincidentes en orden estable.
func matchingIDs(c map[string]store.Document, f store.Filter) []string {
	ids := make([]string, 0)
	for id, doc := range c {
		if matches(doc, f) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// FindOne devuelve el primer documento que cumpla el filtro, o (nil, nil).
func (s *Store) FindOne(ctx context.Context, collection string, f store.Filter) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[collection]
	for _, id := range matchingIDs(c, f) {
		return c[id].Clone(), nil
	}
	return nil, nil
}

// FindMany devuelve los documentos que cumplan el filtro, paginados.
func (s *Store) FindMany(ctx context.Context, collection string, f store.Filter, opts store.FindOptions) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[collection]
	ids := matchingIDs(c, f)

	docs := make([]store.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, c[id].Clone())
	}
	if opts.OrderBy != "" {
		field, desc := opts.OrderBy, opts.Desc
		sort.SliceStable(docs, func(i, j int) bool {
			a := fmt.Sprint(docs[i][field])
			b := fmt.Sprint(docs[j][field])
			if desc {
				return a > b
			}
			return a < b
		})
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(docs) {
			return []store.Document{}, nil
		}
		docs = docs[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(docs) {
		docs = docs[:opts.Limit]
	}
	return docs, nil
}

func validatePatch(collection string, u store.Update) error {
	if _, ok := u[store.FieldTenant]; ok {
		return &domain.ValidationError{Collection: collection, Field: store.FieldTenant, Reason: "es inmutable"}
	}
	if _, ok := u[store.FieldID]; ok {
		return &domain.ValidationError{Collection: collection, Field: store.FieldID, Reason: "es inmutable"}
	}
	return nil
}

func applyPatch(doc store.Document, u store.Update) store.Document {
	out := doc.Clone()
	for k, v := range u {
		out[k] = v
	}
	return out
}

// UpdateOne aplica el parche al primer documento coincidente.
func (s *Store) UpdateOne(ctx context.Context, collection string, f store.Filter, u store.Update) (int64, error) {
	if err := validatePatch(collection, u); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	for _, id := range matchingIDs(c, f) {
		c[id] = applyPatch(c[id], u)
		return 1, nil
	}
	return 0, nil
}

// UpdateMany aplica el parche a todos los documentos coincidentes.
func (s *Store) UpdateMany(ctx context.Context, collection string, f store.Filter, u store.Update) (int64, error) {
	if err := validatePatch(collection, u); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	var n int64
	for _, id := range matchingIDs(c, f) {
		c[id] = applyPatch(c[id], u)
		n++
	}
	return n, nil
}

// DeleteOne elimina el primer documento coincidente.
func (s *Store) DeleteOne(ctx context.Context, collection string, f store.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	for _, id := range matchingIDs(c, f) {
		delete(c, id)
		return 1, nil
	}
	return 0, nil
}

// DeleteMany elimina todos los documentos coincidentes.
func (s *Store) DeleteMany(ctx context.Context, collection string, f store.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	var n int64
	for _, id := range matchingIDs(c, f) {
		delete(c, id)
		n++
	}
	return n, nil
}

// Count cuenta los documentos coincidentes.
func (s *Store) Count(ctx context.Context, collection string, f store.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(matchingIDs(s.collections[collection], f))), nil
}

// Aggregate agrega un campo numérico de los documentos coincidentes.
// Conjunto vacío: cero para toda función.
func (s *Store) Aggregate(ctx context.Context, collection string, f store.Filter, agg store.Aggregation) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[collection]

	var values []decimal.Decimal
	for _, id := range matchingIDs(c, f) {
		v, err := toDecimal(c[id][agg.Field])
		if err != nil {
			return decimal.Zero, fmt.Errorf("aggregate %s.%s: %w", collection, agg.Field, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return decimal.Zero, nil
	}

	switch agg.Func {
	case store.AggSum:
		return decimal.Sum(values[0], values[1:]...), nil
	case store.AggAvg:
		return decimal.Avg(values[0], values[1:]...), nil
	case store.AggMin:
		return decimal.Min(values[0], values[1:]...), nil
	case store.AggMax:
		return decimal.Max(values[0], values[1:]...), nil
	default:
		return decimal.Zero, fmt.Errorf("aggregate: función desconocida %q", agg.Func)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case string:
		return decimal.NewFromString(x)
	case float64:
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case nil:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("valor no numérico %T", v)
	}
}

// Insert persiste un documento nuevo. tenant_id es obligatorio: la creación de
// una entidad particionada sin tenant resoluble se rechaza (fail-closed).
func (s *Store) Insert(ctx context.Context, collection string, doc store.Document) error {
	if doc.ID() == "" {
		return &domain.ValidationError{Collection: collection, Field: store.FieldID, Reason: "es obligatorio"}
	}
	if doc.TenantID() == "" {
		return &domain.ValidationError{Collection: collection, Field: store.FieldTenant, Reason: "es obligatorio"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c[doc.ID()]; exists {
		return domain.ErrDuplicate
	}
	c[doc.ID()] = doc.Clone()
	return nil
}

// Save sobrescribe un documento existente por id.
func (s *Store) Save(ctx context.Context, collection string, doc store.Document) error {
	if doc.ID() == "" {
		return &domain.ValidationError{Collection: collection, Field: store.FieldID, Reason: "es obligatorio"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(collection)
	if _, exists := c[doc.ID()]; !exists {
		return domain.ErrNotFound
	}
	c[doc.ID()] = doc.Clone()
	return nil
}

// Seed carga un documento saltándose las validaciones de Insert. Solo para
// tests que necesitan registros legados (ej. sin tenant_id).
func (s *Store) Seed(collection string, doc store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[doc.ID()] = doc.Clone()
}
