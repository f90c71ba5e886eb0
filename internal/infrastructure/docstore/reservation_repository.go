package docstore

import (
	"context"
	"time"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/internal/store"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo adaptador de Reservation sobre el store particionado.
type ReservationRepo struct {
	s store.Store
}

// NewReservationRepository construye el adaptador. En producción s es el ScopedStore.
func NewReservationRepository(s store.Store) *ReservationRepo {
	return &ReservationRepo{s: s}
}

func reservationToDoc(res *entity.Reservation) store.Document {
	return store.Document{
		store.FieldID:     res.ID,
		store.FieldTenant: res.TenantID,
		"customer_name":   res.CustomerName,
		"party_size":      res.PartySize,
		"scheduled_at":    encodeTime(res.ScheduledAt),
		"day":             dayKey(res.ScheduledAt),
		"status":          res.Status,
		"notes":           res.Notes,
		"created_at":      encodeTime(res.CreatedAt),
		"updated_at":      encodeTime(res.UpdatedAt),
	}
}

func docToReservation(doc store.Document) *entity.Reservation {
	return &entity.Reservation{
		ID:           doc.ID(),
		TenantID:     doc.TenantID(),
		CustomerName: asString(doc["customer_name"]),
		PartySize:    asInt(doc["party_size"]),
		ScheduledAt:  asTime(doc["scheduled_at"]),
		Status:       asString(doc["status"]),
		Notes:        asString(doc["notes"]),
		CreatedAt:    asTime(doc["created_at"]),
		UpdatedAt:    asTime(doc["updated_at"]),
	}
}

// Create persiste una reserva nueva (insert).
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	return r.s.Insert(ctx, CollectionReservations, reservationToDoc(res))
}

// GetByID obtiene una reserva por ID (find-one).
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	doc, err := r.s.FindOne(ctx, CollectionReservations, store.ByID(id))
	if err != nil || doc == nil {
		return nil, err
	}
	return docToReservation(doc), nil
}

// List lista las reservas del tenant activo ordenadas por horario (find-many).
func (r *ReservationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	docs, err := r.s.FindMany(ctx, CollectionReservations, store.Filter{},
		store.FindOptions{Limit: limit, Offset: offset, OrderBy: "scheduled_at"})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Reservation, 0, len(docs))
	for _, doc := range docs {
		out = append(out, docToReservation(doc))
	}
	return out, nil
}

// Save sobrescribe una reserva existente (save con verificación de tenant).
func (r *ReservationRepo) Save(ctx context.Context, res *entity.Reservation) error {
	return r.s.Save(ctx, CollectionReservations, reservationToDoc(res))
}

// CancelDay elimina todas las reservas de una fecha (delete-many).
func (r *ReservationRepo) CancelDay(ctx context.Context, day time.Time) (int64, error) {
	return r.s.DeleteMany(ctx, CollectionReservations, store.Filter{"day": dayKey(day)})
}

// Delete elimina una reserva (delete-one).
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.s.DeleteOne(ctx, CollectionReservations, store.ByID(id))
	return err
}

// Count cuenta las reservas del tenant activo.
func (r *ReservationRepo) Count(ctx context.Context) (int64, error) {
	return r.s.Count(ctx, CollectionReservations, store.Filter{})
}
