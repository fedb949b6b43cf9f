package dto

import "time"

// CreateAccountRequest alta de una cuenta del negocio (password en texto, se hashea en use case).
// TenantID solo lo usa un operador para provisionar dentro de un negocio concreto.
type CreateAccountRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=owner supervisor cashier"`
	TenantID string `json:"tenantId" validate:"omitempty,uuid"`
}

// UpdateAccountRequest cambios parciales de una cuenta.
type UpdateAccountRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=owner supervisor cashier"`
}

// AccountResponse salida de una cuenta (sin password).
type AccountResponse struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenantId,omitempty"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
