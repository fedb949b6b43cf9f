package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

var errInvalidScope = errors.New("postgres: consulta sobre datos de negocio sin scope")

// scopeFilter acumula predicados de una consulta. El scope de negocio y la visibilidad
// no se agregan con where: los pone render al final, así ninguna consulta los omite.
type scopeFilter struct {
	scope        access.Scope
	tenantColumn string // "" para tablas que no pertenecen a un negocio
	deletedCol   string // "" para tablas sin soft delete
	visibility   repository.Visibility

	conds []string
	args  []any
}

// newScopeFilter filtro para una tabla de negocio; column es la columna tenant_id (con alias si aplica).
func newScopeFilter(scope access.Scope, column string) *scopeFilter {
	return &scopeFilter{scope: scope, tenantColumn: column}
}

// globalFilter filtro para tablas sin negocio (tenants).
func globalFilter() *scopeFilter {
	return &scopeFilter{scope: access.Unscoped()}
}

// softDelete activa el filtro de visibilidad sobre la columna deleted_at indicada.
func (f *scopeFilter) softDelete(column string, v repository.Visibility) *scopeFilter {
	f.deletedCol = column
	f.visibility = v
	return f
}

// where agrega un predicado; cada "?" se reemplaza por el siguiente $n.
func (f *scopeFilter) where(cond string, args ...any) *scopeFilter {
	var b strings.Builder
	i := 0
	for _, r := range cond {
		if r == '?' && i < len(args) {
			b.WriteString(f.arg(args[i]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	f.conds = append(f.conds, b.String())
	return f
}

// arg registra un argumento y devuelve su placeholder.
func (f *scopeFilter) arg(v any) string {
	f.args = append(f.args, v)
	return "$" + strconv.Itoa(len(f.args))
}

// render devuelve la cláusula WHERE (vacía si no hay predicados) con scope y visibilidad al final.
func (f *scopeFilter) render() (string, error) {
	if !f.scope.Valid() {
		return "", errInvalidScope
	}
	conds := append([]string(nil), f.conds...)
	if tenantID, ok := f.scope.TenantID(); ok {
		if f.tenantColumn == "" {
			return "", errInvalidScope
		}
		conds = append(conds, f.tenantColumn+" = "+f.arg(tenantID))
	}
	if f.deletedCol != "" {
		switch f.visibility {
		case repository.VisibilityAll:
		case repository.VisibilityDeleted:
			conds = append(conds, f.deletedCol+" IS NOT NULL")
		default:
			conds = append(conds, f.deletedCol+" IS NULL")
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), nil
}

// page agrega LIMIT/OFFSET; llamar después de render.
func (f *scopeFilter) page(limit, offset int) string {
	return " LIMIT " + f.arg(limit) + " OFFSET " + f.arg(offset)
}

// listFilter aplica búsqueda y flag activo comunes a los listados.
func (f *scopeFilter) listFilter(filter repository.ListFilter, searchCols ...string) *scopeFilter {
	if s := strings.TrimSpace(filter.Search); s != "" && len(searchCols) > 0 {
		p := f.arg(likePattern(s))
		parts := make([]string, len(searchCols))
		for i, c := range searchCols {
			parts[i] = c + " ILIKE " + p
		}
		f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	}
	if filter.Active != nil {
		f.where("is_active = ?", *filter.Active)
	}
	return f
}
