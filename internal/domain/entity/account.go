package entity

import "time"

// Role rol de una cuenta.
type Role string

// Roles válidos. RoleOperator es el rol privilegiado entre negocios y no pertenece a ningún tenant.
const (
	RoleOperator   Role = "operator"
	RoleOwner      Role = "owner"
	RoleSupervisor Role = "supervisor"
	RoleCashier    Role = "cashier"
)

// Valid informa si el rol es conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleOwner, RoleSupervisor, RoleCashier:
		return true
	}
	return false
}

// Account representa una cuenta de acceso (personal del negocio u operador).
type Account struct {
	ID           string
	TenantID     string // vacío solo para RoleOperator
	Email        string
	EmailKey     string // email normalizado; clave de unicidad dentro del tenant
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}
