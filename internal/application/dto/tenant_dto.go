package dto

import "time"

// CreateTenantRequest alta de un negocio. Slug se deriva del nombre si se omite.
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Slug string `json:"slug" validate:"omitempty,max=100"`
	Tier string `json:"tier" validate:"omitempty,oneof=basic pro enterprise"`
}

// UpdateTenantRequest cambios parciales de un negocio.
type UpdateTenantRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Slug *string `json:"slug" validate:"omitempty,min=1,max=100"`
	Tier *string `json:"tier" validate:"omitempty,oneof=basic pro enterprise"`
}

// TenantResponse salida de un negocio.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Tier      string    `json:"tier"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
