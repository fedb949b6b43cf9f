package dto

import "time"

// LoginRequest credenciales. Tenant es el slug del negocio, opcional para desambiguar
// un email registrado en varios negocios.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,email,max=254"`
	Secret     string `json:"secret" validate:"required,max=72"`
	Tenant     string `json:"tenant" validate:"omitempty,max=100"`
}

// PrincipalResponse identidad autenticada.
type PrincipalResponse struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	TenantID  string `json:"tenantId,omitempty"`
}

// LoginResponse token de sesión con el principal y su negocio (nil para operadores).
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Principal PrincipalResponse `json:"principal"`
	Tenant    *TenantResponse   `json:"tenant"`
}

// SessionResponse datos de la sesión actual.
type SessionResponse struct {
	Principal PrincipalResponse `json:"principal"`
	Tenant    *TenantResponse   `json:"tenant"`
}
