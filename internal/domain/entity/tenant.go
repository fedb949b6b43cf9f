package entity

import "time"

// Planes de suscripción disponibles para un negocio.
const (
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Tenant representa un negocio independiente dentro del despliegue (multi-tenant).
// Todas las entidades de negocio llevan exactamente una referencia a su Tenant.
type Tenant struct {
	ID        string
	Name      string
	Slug      string // clave única global, derivada del nombre si no se indica
	Tier      string // basic, pro, enterprise
	IsActive  bool   // un negocio inactivo rechaza todo acceso que no sea de operador
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidTier informa si el plan es uno de los conocidos.
func ValidTier(tier string) bool {
	switch tier {
	case TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}
