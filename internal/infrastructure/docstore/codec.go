// Package docstore implementa los puertos de repositorio de las entidades
// particionadas sobre un store.Store. En producción ese store es el
// ScopedStore: estos adaptadores nunca mencionan tenant_id, la partición la
// inyecta el interceptor desde el contexto.
package docstore

import "time"

// Nombres de colección de las entidades particionadas.
const (
	CollectionMenuItems    = "menu_items"
	CollectionOrders       = "orders"
	CollectionReservations = "reservations"
)

// dayKey normaliza un instante a la clave de día usada en filtros de igualdad.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// asString lee un campo string de un documento.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asBool lee un campo bool de un documento.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asInt lee un campo numérico: el motor en memoria conserva int, el de
// postgres devuelve float64 tras el roundtrip por jsonb.
func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return 0
	}
}

// asTime parsea un timestamp RFC3339 almacenado como string.
func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// encodeTime serializa timestamps como RFC3339 (ordenables lexicográficamente).
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
