package entity

import "time"

// Estados de una reserva.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusSeated    = "seated"
	ReservationStatusCancelled = "cancelled"
)

// Reservation es una reserva de mesa. Entidad particionada por tenant.
type Reservation struct {
	ID           string
	TenantID     string
	CustomerName string
	PartySize    int
	ScheduledAt  time.Time
	Status       string // ver constantes ReservationStatus*
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
