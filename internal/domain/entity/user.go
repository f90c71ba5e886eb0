package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"    // administra su café
	RoleMesero   = "mesero"   // operación diaria
	RolePlatform = "platform" // operador de la plataforma; habilita acceso cross-tenant
)

// User representa un usuario del sistema (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, mesero, platform
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
