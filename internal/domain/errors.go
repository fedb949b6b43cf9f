package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("credenciales inválidas")
	ErrForbidden        = errors.New("acceso denegado")
	ErrAccountInactive  = errors.New("cuenta inactiva")
	ErrSelfAction       = errors.New("no se permite sobre la propia cuenta")
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")

	// Resolución de tenant.
	ErrTenantMissing  = errors.New("la cuenta no tiene negocio asignado")
	ErrTenantNotFound = errors.New("negocio no encontrado")
	ErrTenantInactive = errors.New("negocio inactivo")

	// Unicidad por tenant.
	ErrConflict            = errors.New("ya existe un registro activo con ese valor")
	ErrConflictWithDeleted = errors.New("existe un registro eliminado con ese valor; restáurelo en lugar de crearlo")

	// Ciclo de vida (soft delete).
	ErrAlreadyDeleted   = errors.New("el registro ya está eliminado")
	ErrNotDeleted       = errors.New("el registro no está eliminado")
	ErrEntityDeleted    = errors.New("el registro está eliminado")
	ErrDependencyExists = errors.New("existen registros activos que dependen de este")

	// Turnos y caja.
	ErrInvalidAmount    = errors.New("monto inválido")
	ErrShiftAlreadyOpen = errors.New("la cuenta ya tiene un turno abierto")
	ErrShiftNotFound    = errors.New("turno no encontrado")
	ErrShiftNotOpen     = errors.New("el turno ya está cerrado")
	ErrShiftNotActive   = errors.New("el turno no está activo para registrar ventas")
)

// DependencyError indica cuántos registros activos bloquean una eliminación.
type DependencyError struct {
	Count int
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s (%d)", ErrDependencyExists.Error(), e.Count)
}

// Is permite errors.Is(err, ErrDependencyExists).
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyExists
}

// DependencyCount devuelve el conteo si err es un DependencyError.
func DependencyCount(err error) (int, bool) {
	var dep *DependencyError
	if errors.As(err, &dep) {
		return dep.Count, true
	}
	return 0, false
}

// ValidationError error de validación asociado a un campo concreto.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError conflicto de unicidad sobre un campo. Err es ErrConflict o ErrConflictWithDeleted.
type ConflictError struct {
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ConflictError) Unwrap() error { return e.Err }
