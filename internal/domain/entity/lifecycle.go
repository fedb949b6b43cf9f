package entity

import (
	"time"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
)

// LifecycleState estado de un registro con soft delete.
type LifecycleState string

const (
	StateActive  LifecycleState = "active"
	StateDeleted LifecycleState = "deleted"
)

// Lifecycle encapsula el flag activo y la marca de eliminación lógica.
// Las transiciones viven aquí para que "eliminado implica inactivo" y
// "restaurado implica activo" se cumplan en un solo lugar.
type Lifecycle struct {
	IsActive  bool
	DeletedAt *time.Time
}

// NewLifecycle estado inicial: activo y sin eliminar.
func NewLifecycle() Lifecycle {
	return Lifecycle{IsActive: true}
}

// State devuelve Active o Deleted según la marca de eliminación.
func (l Lifecycle) State() LifecycleState {
	if l.DeletedAt != nil {
		return StateDeleted
	}
	return StateActive
}

// IsDeleted informa si el registro está eliminado lógicamente.
func (l Lifecycle) IsDeleted() bool { return l.DeletedAt != nil }

// Delete Active -> Deleted. Marca la fecha y fuerza IsActive=false.
func (l *Lifecycle) Delete(now time.Time) error {
	if l.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	t := now.UTC()
	l.DeletedAt = &t
	l.IsActive = false
	return nil
}

// Restore Deleted -> Active. Siempre reactiva.
func (l *Lifecycle) Restore() error {
	if !l.IsDeleted() {
		return domain.ErrNotDeleted
	}
	l.DeletedAt = nil
	l.IsActive = true
	return nil
}

// ToggleActive invierte el flag activo; solo permitido en estado Active.
func (l *Lifecycle) ToggleActive() error {
	if l.IsDeleted() {
		return domain.ErrEntityDeleted
	}
	l.IsActive = !l.IsActive
	return nil
}
