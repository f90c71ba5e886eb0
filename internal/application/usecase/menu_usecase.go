package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mesero-api/internal/application/dto"
	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
)

// MenuUseCase casos de uso CRUD para el menú. Nunca menciona tenant_id: la
// partición viaja en el contexto y la aplica el interceptor de scoping.
type MenuUseCase struct {
	repo repository.MenuItemRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(repo repository.MenuItemRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Create crea un ítem de menú.
func (uc *MenuUseCase) Create(ctx context.Context, in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Price:     price,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *MenuUseCase) GetByID(ctx context.Context, id string) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toMenuItemResponse(item), nil
}

// List lista el menú con paginación; category vacío = todas.
func (uc *MenuUseCase) List(ctx context.Context, category string, limit, offset int) (*dto.MenuListResponse, error) {
	var (
		list []*entity.MenuItem
		err  error
	)
	if category != "" {
		list, err = uc.repo.ListByCategory(ctx, category, limit, offset)
	} else {
		list, err = uc.repo.List(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MenuItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toMenuItemResponse(it))
	}
	return &dto.MenuListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un ítem existente.
func (uc *MenuUseCase) Update(ctx context.Context, id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Price != nil {
		price, err := decimal.NewFromString(*in.Price)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		item.Price = price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toMenuItemResponse(item), nil
}

// SetCategoryAvailability habilita/deshabilita una categoría completa.
// Devuelve la cantidad de ítems afectados.
func (uc *MenuUseCase) SetCategoryAvailability(ctx context.Context, in dto.CategoryAvailabilityRequest) (int64, error) {
	if in.Category == "" {
		return 0, domain.ErrInvalidInput
	}
	return uc.repo.SetCategoryAvailability(ctx, in.Category, in.Available)
}

// Delete elimina un ítem por ID.
func (uc *MenuUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Count cuenta los ítems del menú del tenant activo.
func (uc *MenuUseCase) Count(ctx context.Context) (int64, error) {
	return uc.repo.Count(ctx)
}

func toMenuItemResponse(m *entity.MenuItem) *dto.MenuItemResponse {
	if m == nil {
		return nil
	}
	return &dto.MenuItemResponse{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		Price:     m.Price.StringFixed(2),
		Available: m.Available,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
