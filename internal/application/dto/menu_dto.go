package dto

import "time"

// CreateMenuItemRequest alta de un ítem del menú.
type CreateMenuItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"` // decimal como string ("12500.00")
}

// UpdateMenuItemRequest campos mutables de un ítem (punteros = opcionales).
type UpdateMenuItemRequest struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Price     *string `json:"price"`
	Available *bool   `json:"available"`
}

// CategoryAvailabilityRequest habilita/deshabilita toda una categoría.
type CategoryAvailabilityRequest struct {
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// MenuItemResponse representación pública de un ítem del menú.
type MenuItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     string    `json:"price"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuListResponse listado paginado del menú.
type MenuListResponse struct {
	Items []MenuItemResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
