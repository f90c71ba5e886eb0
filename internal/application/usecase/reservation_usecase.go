package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mesero-api/internal/application/dto"
	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
)

// ReservationUseCase casos de uso de reservas de mesa.
type ReservationUseCase struct {
	repo repository.ReservationRepository
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(repo repository.ReservationRepository) *ReservationUseCase {
	return &ReservationUseCase{repo: repo}
}

// Create crea una reserva en estado pending.
func (uc *ReservationUseCase) Create(ctx context.Context, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if in.CustomerName == "" || in.PartySize <= 0 || in.ScheduledAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	res := &entity.Reservation{
		ID:           uuid.New().String(),
		CustomerName: in.CustomerName,
		PartySize:    in.PartySize,
		ScheduledAt:  in.ScheduledAt,
		Status:       entity.ReservationStatusPending,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return toReservationResponse(res), nil
}

// GetByID obtiene una reserva por ID.
func (uc *ReservationUseCase) GetByID(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return toReservationResponse(res), nil
}

// List lista reservas con paginación.
func (uc *ReservationUseCase) List(ctx context.Context, limit, offset int) (*dto.ReservationListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReservationResponse(r))
	}
	return &dto.ReservationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza campos mutables de una reserva.
func (uc *ReservationUseCase) Update(ctx context.Context, id string, in dto.UpdateReservationRequest) (*dto.ReservationResponse, error) {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	if in.PartySize != nil {
		if *in.PartySize <= 0 {
			return nil, domain.ErrInvalidInput
		}
		res.PartySize = *in.PartySize
	}
	if in.ScheduledAt != nil {
		res.ScheduledAt = *in.ScheduledAt
	}
	if in.Status != nil {
		if !validReservationStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		res.Status = *in.Status
	}
	if in.Notes != nil {
		res.Notes = *in.Notes
	}
	res.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, res); err != nil {
		return nil, err
	}
	return toReservationResponse(res), nil
}

// CancelDay cancela todas las reservas de una fecha (cierre imprevisto del local).
func (uc *ReservationUseCase) CancelDay(ctx context.Context, day time.Time) (*dto.CancelDayResponse, error) {
	n, err := uc.repo.CancelDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return &dto.CancelDayResponse{
		Day:       day.UTC().Format("2006-01-02"),
		Cancelled: n,
	}, nil
}

// Delete elimina una reserva por ID.
func (uc *ReservationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Count cuenta las reservas del tenant activo.
func (uc *ReservationUseCase) Count(ctx context.Context) (int64, error) {
	return uc.repo.Count(ctx)
}

func validReservationStatus(s string) bool {
	switch s {
	case entity.ReservationStatusPending, entity.ReservationStatusConfirmed,
		entity.ReservationStatusSeated, entity.ReservationStatusCancelled:
		return true
	}
	return false
}

func toReservationResponse(r *entity.Reservation) *dto.ReservationResponse {
	if r == nil {
		return nil
	}
	return &dto.ReservationResponse{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		PartySize:    r.PartySize,
		ScheduledAt:  r.ScheduledAt,
		Status:       r.Status,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
