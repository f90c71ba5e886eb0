package dto

import "time"

// CreateReservationRequest alta de una reserva de mesa.
type CreateReservationRequest struct {
	CustomerName string    `json:"customer_name"`
	PartySize    int       `json:"party_size"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Notes        string    `json:"notes"`
}

// UpdateReservationRequest campos mutables de una reserva (punteros = opcionales).
type UpdateReservationRequest struct {
	PartySize   *int       `json:"party_size"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
}

// ReservationResponse representación pública de una reserva.
type ReservationResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	PartySize    int       `json:"party_size"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReservationListResponse listado paginado de reservas.
type ReservationListResponse struct {
	Items []ReservationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CancelDayResponse resultado de cancelar las reservas de una fecha.
type CancelDayResponse struct {
	Day       string `json:"day"`
	Cancelled int64  `json:"cancelled"`
}
