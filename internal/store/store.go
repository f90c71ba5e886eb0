// Package store define el contrato del almacén de entidades: documentos opacos,
// filtros inspeccionables/enmendables y las operaciones que el interceptor de
// scoping intercepta de manera uniforme. Las implementaciones viven en
// infrastructure (postgres, memory).
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Campos reservados de todo documento.
const (
	FieldID     = "id"
	FieldTenant = "tenant_id"
)

// Document es la representación neutra de un registro persistible.
// Los valores deben ser serializables a JSON (el motor postgres los guarda en jsonb).
type Document map[string]any

// ID devuelve el campo id del documento ("" si no existe).
func (d Document) ID() string {
	s, _ := d[FieldID].(string)
	return s
}

// TenantID devuelve el tenant_id del documento ("" si no está asignado).
func (d Document) TenantID() string {
	s, _ := d[FieldTenant].(string)
	return s
}

// SetTenantID asigna el tenant_id del documento.
func (d Document) SetTenantID(id string) {
	d[FieldTenant] = id
}

// Clone copia superficial del documento (los valores anidados se comparten).
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Filter es un conjunto de cláusulas de igualdad campo == valor. Es mutable a
// propósito: el interceptor necesita inspeccionarlo (Has) y enmendarlo (Set)
// antes de que llegue al motor.
type Filter map[string]any

// Has indica si el filtro ya restringe el campo dado.
func (f Filter) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Set agrega o reemplaza una cláusula de igualdad.
func (f Filter) Set(field string, value any) {
	f[field] = value
}

// Clone copia el filtro para enmendarlo sin mutar el del caller.
func (f Filter) Clone() Filter {
	out := make(Filter, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ByID construye el filtro más común.
func ByID(id string) Filter {
	return Filter{FieldID: id}
}

// Update es el conjunto de campos a sobrescribir en una actualización.
// Los motores rechazan parches que toquen tenant_id: ese campo es inmutable.
type Update map[string]any

// FindOptions opciones de paginación y orden para find-many.
type FindOptions struct {
	Limit   int
	Offset  int
	OrderBy string // campo del documento; vacío = orden del motor
	Desc    bool
}

// AggFunc funciones de agregación soportadas.
type AggFunc string

const (
	AggSum AggFunc = "sum"
	AggAvg AggFunc = "avg"
	AggMin AggFunc = "min"
	AggMax AggFunc = "max"
)

// Aggregation describe una agregación numérica sobre un campo del documento.
type Aggregation struct {
	Func  AggFunc
	Field string
}

// Store es el contrato del almacén compartido por todos los tenants. Cada
// operación acepta un Filter que el interceptor puede enmendar antes de ejecutar.
// FindOne devuelve (nil, nil) si no hay coincidencia; las operaciones de
// mutación devuelven la cantidad de registros afectados.
type Store interface {
	FindOne(ctx context.Context, collection string, f Filter) (Document, error)
	FindMany(ctx context.Context, collection string, f Filter, opts FindOptions) ([]Document, error)
	UpdateOne(ctx context.Context, collection string, f Filter, u Update) (int64, error)
	UpdateMany(ctx context.Context, collection string, f Filter, u Update) (int64, error)
	DeleteOne(ctx context.Context, collection string, f Filter) (int64, error)
	DeleteMany(ctx context.Context, collection string, f Filter) (int64, error)
	Count(ctx context.Context, collection string, f Filter) (int64, error)
	Aggregate(ctx context.Context, collection string, f Filter, agg Aggregation) (decimal.Decimal, error)
	Insert(ctx context.Context, collection string, doc Document) error
	Save(ctx context.Context, collection string, doc Document) error
}
