package repository

import (
	"context"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// El login ocurre antes de establecer el contexto de tenant, por lo que la búsqueda
// por email es global; el TenantID viaja dentro de la entidad.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
