package repository

import (
	"fmt"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// Visibility visibilidad de registros con soft delete en listados.
type Visibility string

const (
	VisibilityActive  Visibility = "active"  // solo no eliminados (por defecto)
	VisibilityDeleted Visibility = "deleted" // solo eliminados
	VisibilityAll     Visibility = "all"
)

// ParseVisibility traduce el parámetro show_deleted (false|only|true). Vacío equivale a false.
func ParseVisibility(showDeleted string) (Visibility, error) {
	switch showDeleted {
	case "", "false":
		return VisibilityActive, nil
	case "only":
		return VisibilityDeleted, nil
	case "true":
		return VisibilityAll, nil
	}
	return "", domain.NewValidationError("show_deleted", fmt.Sprintf("valor %q no soportado (false, only, true)", showDeleted))
}

// Includes informa si un registro con ese ciclo de vida es visible.
func (v Visibility) Includes(l entity.Lifecycle) bool {
	switch v {
	case VisibilityAll:
		return true
	case VisibilityDeleted:
		return l.IsDeleted()
	default:
		return !l.IsDeleted()
	}
}

// Límites de paginación.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListFilter filtros comunes para listados de entidades de negocio.
type ListFilter struct {
	Search     string
	Active     *bool
	Visibility Visibility
	Page       int // desde 1
	Limit      int
}

// Normalize aplica valores por defecto y cotas.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Visibility == "" {
		f.Visibility = VisibilityActive
	}
}

// Offset desplazamiento para la página actual.
func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// KeyMatch coincidencia de una clave de unicidad.
type KeyMatch struct {
	ID      string
	Deleted bool
}
