package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

var _ repository.LifecycleRepository = (*LifecycleRepo)(nil)

// dependents consulta que cuenta filas vivas que referencian a la fila bloqueada.
type dependents struct {
	from         string
	tenantColumn string
	cond         string // un solo "?" para el id
}

// lifecycleTable tabla con soft delete y sus dependencias.
type lifecycleTable struct {
	name string
	deps dependents
}

var lifecycleTables = map[access.Resource]lifecycleTable{
	access.ResourceCategories: {
		name: "categories",
		deps: dependents{
			from:         "products",
			tenantColumn: "tenant_id",
			cond:         "category_id = ? AND is_active AND deleted_at IS NULL",
		},
	},
	access.ResourceProducts: {
		name: "products",
		deps: dependents{
			from:         "sales s JOIN shifts sh ON sh.id = s.shift_id",
			tenantColumn: "s.tenant_id",
			cond:         "s.product_id = ? AND s.status = 'completed' AND sh.status = 'open'",
		},
	},
	access.ResourceAccounts: {
		name: "accounts",
		deps: dependents{
			from:         "shifts",
			tenantColumn: "tenant_id",
			cond:         "account_id = ? AND status = 'open'",
		},
	},
}

// LifecycleRepo acceso genérico a is_active/deleted_at de una tabla con soft delete.
type LifecycleRepo struct {
	q     Querier
	table lifecycleTable
}

// NewLifecycleRepository construye el repositorio para el recurso indicado.
func NewLifecycleRepository(q Querier, resource access.Resource) (*LifecycleRepo, error) {
	table, ok := lifecycleTables[resource]
	if !ok {
		return nil, fmt.Errorf("lifecycle: recurso %q sin soft delete", resource)
	}
	return &LifecycleRepo{q: q, table: table}, nil
}

// Lock lee el ciclo de vida con SELECT ... FOR UPDATE; nil si no existe en el scope.
func (r *LifecycleRepo) Lock(ctx context.Context, scope access.Scope, id string) (*entity.Lifecycle, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	var l entity.Lifecycle
	err = r.q.QueryRow(ctx, `SELECT is_active, deleted_at FROM `+r.table.name+where+` FOR UPDATE`, f.args...).
		Scan(&l.IsActive, &l.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("lock "+r.table.name, err)
	}
	return &l, nil
}

// Save persiste is_active y deleted_at en un solo UPDATE. Restaurar sobre una clave
// tomada por otra fila viva viola el índice parcial -> ErrConflict.
func (r *LifecycleRepo) Save(ctx context.Context, scope access.Scope, id string, l entity.Lifecycle) error {
	f := newScopeFilter(scope, "tenant_id")
	set := fmt.Sprintf("is_active = %s, deleted_at = %s, updated_at = now()", f.arg(l.IsActive), f.arg(l.DeletedAt))
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE `+r.table.name+` SET `+set+where, f.args...)
	if err != nil {
		return translate("save "+r.table.name+" lifecycle", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountDependents cuenta las filas vivas que bloquean la eliminación.
func (r *LifecycleRepo) CountDependents(ctx context.Context, scope access.Scope, id string) (int, error) {
	d := r.table.deps
	f := newScopeFilter(scope, d.tenantColumn)
	f.where(d.cond, id)
	where, err := f.render()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+d.from+where, f.args...).Scan(&n); err != nil {
		return 0, translate("count "+r.table.name+" dependents", err)
	}
	return n, nil
}
