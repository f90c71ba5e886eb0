package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de menú usadas por los filtros de disponibilidad.
const (
	CategoryBebidas  = "bebidas"
	CategoryComidas  = "comidas"
	CategoryPostres  = "postres"
	CategoryEspecial = "especial"
)

// MenuItem es un plato o bebida del menú de un café. Entidad particionada por tenant:
// TenantID se asigna una sola vez al crear y es inmutable.
type MenuItem struct {
	ID        string
	TenantID  string
	Name      string
	Category  string // ver constantes Category*
	Price     decimal.Decimal
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
