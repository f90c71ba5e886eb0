package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
)

// ReservationRepository puerto de persistencia para Reservation sobre el store particionado.
type ReservationRepository interface {
	Create(ctx context.Context, res *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	Save(ctx context.Context, res *entity.Reservation) error
	// CancelDay cancela todas las reservas pendientes/confirmadas de una fecha (delete-many lógico).
	CancelDay(ctx context.Context, day time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
