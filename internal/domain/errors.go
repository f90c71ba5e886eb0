package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrSlugAlreadyExists  = errors.New("el slug ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrTenantInactive     = errors.New("tenant suspendido o inactivo")

	// ErrTenantMismatch centinela para errors.Is; el valor concreto es TenantMismatchError.
	ErrTenantMismatch = errors.New("tenant del registro no coincide con el contexto")
	// ErrValidation centinela para errores de validación de persistencia.
	ErrValidation = errors.New("validación de persistencia")
)

// TenantMismatchError indica un intento de mutación cuyo registro pertenece a otro tenant.
// Se rechaza antes de persistir; incluye todas las identidades para el log de seguridad.
type TenantMismatchError struct {
	Collection     string // tipo de entidad afectada (colección)
	StoredTenant   string // tenant_id persistido en el registro
	ContextTenant  string // tenant_id del contexto activo ("" si la operación llegó sin contexto)
	DocumentTenant string // tenant_id reescrito en el documento, cuando difiere del persistido
}

func (e *TenantMismatchError) Error() string {
	if e.DocumentTenant != "" {
		return fmt.Sprintf("tenant mismatch en %s: registro pertenece a %q, documento trae %q, contexto es %q",
			e.Collection, e.StoredTenant, e.DocumentTenant, e.ContextTenant)
	}
	return fmt.Sprintf("tenant mismatch en %s: registro pertenece a %q, contexto es %q",
		e.Collection, e.StoredTenant, e.ContextTenant)
}

// Unwrap permite errors.Is(err, ErrTenantMismatch).
func (e *TenantMismatchError) Unwrap() error { return ErrTenantMismatch }

// ValidationError indica que un registro no cumple una validación obligatoria del store
// (ej. tenant_id vacío al crear una entidad particionada).
type ValidationError struct {
	Collection string
	Field      string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación en %s: campo %q %s", e.Collection, e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }
