package entity

import "time"

// Estados del ciclo de vida de un Tenant. No hay borrado físico: solo desactivación.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
	TenantStatusInactive  = "inactive"
)

// Tenant representa un café/restaurante del sistema. Es una entidad GLOBAL:
// nunca lleva tenant_id propio y vive fuera de la partición por tenant.
type Tenant struct {
	ID        string
	Name      string    // nombre visible ("Café del Parque")
	Slug      string    // identificador de ruteo, único ("cafe-del-parque")
	Status    string    // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el tenant puede operar.
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
