// Package tenancy implementa el aislamiento de datos por tenant: el portador de
// contexto (qué café ejecuta la operación) y el interceptor que particiona cada
// operación contra el store. La lógica de negocio nunca menciona tenant_id; el
// valor viaja en el context.Context de la petición y se inyecta aquí.
package tenancy

import (
	"context"
	"errors"
)

// ErrNoTenant se retorna cuando una operación exige contexto de tenant y no hay ninguno establecido.
var ErrNoTenant = errors.New("no hay tenant en el contexto")

// Context es el valor efímero que identifica al tenant de una operación lógica.
// Se crea al inicio de la petición, acompaña todo su árbol de llamadas y se
// descarta al terminar. Nunca se persiste ni se comparte entre peticiones.
type Context struct {
	TenantID string
	Slug     string
	Name     string
}

type tenantKey struct{}
type elevatedKey struct{}

// WithTenant establece el tenant activo para todo lo que derive de ctx.
// Un WithTenant anidado sombrea al exterior solo dentro de su subárbol: al
// volver al contexto padre el valor exterior sigue intacto (los context.Context
// son inmutables, cada derivación es una capa nueva).
func WithTenant(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, tenantKey{}, tc)
}

// Establish ejecuta fn con el tenant establecido y propaga su resultado.
// Forma de callback de WithTenant para los puntos de integración que corren
// un cuerpo completo bajo un tenant (handlers, workers).
func Establish(ctx context.Context, tc Context, fn func(context.Context) error) error {
	return fn(WithTenant(ctx, tc))
}

// Current devuelve el tenant activo del contexto, o ok=false si no hay ninguno
// (ej. mantenimiento fuera de una petición).
func Current(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(tenantKey{}).(Context)
	return tc, ok
}

// Require devuelve el tenant activo o ErrNoTenant. Variante dura de Current
// para caminos que no admiten ejecución sin tenant.
func Require(ctx context.Context) (Context, error) {
	tc, ok := Current(ctx)
	if !ok || tc.TenantID == "" {
		return Context{}, ErrNoTenant
	}
	return tc, nil
}

// Elevate marca el contexto con la capacidad de acceso cross-tenant. Solo el
// operador de plataforma la recibe; sin ella un filtro con tenant explícito no
// evade el scoping.
func Elevate(ctx context.Context) context.Context {
	return context.WithValue(ctx, elevatedKey{}, true)
}

// IsElevated indica si el contexto porta la capacidad cross-tenant.
func IsElevated(ctx context.Context) bool {
	ok, _ := ctx.Value(elevatedKey{}).(bool)
	return ok
}
