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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, tenant_id, email, email_key, password_hash, name, role, is_active, deleted_at, created_at, updated_at`

func scanAccount(row rowScanner) (*entity.Account, error) {
	var (
		a        entity.Account
		tenantID *string
		role     string
	)
	err := row.Scan(&a.ID, &tenantID, &a.Email, &a.EmailKey, &a.PasswordHash, &a.Name, &role,
		&a.IsActive, &a.DeletedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.TenantID = deref(tenantID)
	a.Role = entity.Role(role)
	return &a, nil
}

// Create persiste una nueva cuenta. Email repetido entre cuentas vivas del negocio -> ErrConflict.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, tenant_id, email, email_key, password_hash, name, role, is_active, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, nullable(a.TenantID), a.Email, a.EmailKey, a.PasswordHash, a.Name, string(a.Role),
		a.IsActive, a.DeletedAt, a.CreatedAt, a.UpdatedAt,
	)
	return translate("insert account", err)
}

// GetByID obtiene una cuenta dentro del scope, incluso eliminada.
func (r *AccountRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Account, error) {
	f := newScopeFilter(scope, "tenant_id").softDelete("deleted_at", repository.VisibilityAll)
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	a, err := scanAccount(r.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts`+where, f.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("get account", err)
	}
	return a, nil
}

// Update actualiza los datos editables; el ciclo de vida se guarda por LifecycleRepository.
func (r *AccountRepo) Update(ctx context.Context, scope access.Scope, a *entity.Account) error {
	f := newScopeFilter(scope, "tenant_id")
	set := fmt.Sprintf(`email = %s, email_key = %s, password_hash = %s, name = %s, role = %s, updated_at = %s`,
		f.arg(a.Email), f.arg(a.EmailKey), f.arg(a.PasswordHash), f.arg(a.Name), f.arg(string(a.Role)), f.arg(a.UpdatedAt))
	f.where("id = ?", a.ID)
	where, err := f.render()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE accounts SET `+set+where, f.args...)
	if err != nil {
		return translate("update account", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cuentas del scope. Las cuentas de operador nunca aparecen.
func (r *AccountRepo) List(ctx context.Context, scope access.Scope, filter repository.ListFilter) ([]*entity.Account, int, error) {
	filter.Normalize()
	f := newScopeFilter(scope, "tenant_id").softDelete("deleted_at", filter.Visibility)
	f.where("role <> ?", string(entity.RoleOperator))
	f.listFilter(filter, "name", "email")
	where, err := f.render()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`+where, f.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []*entity.Account{}, 0, nil
		}
		return nil, 0, translate("count accounts", err)
	}
	query := `SELECT ` + accountColumns + ` FROM accounts` + where + ` ORDER BY created_at DESC` + f.page(filter.Limit, filter.Offset())
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, translate("list accounts", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, 0, translate("scan accounts", err)
	}
	return list, total, nil
}

// MatchKey coincidencias del email normalizado. Unscoped busca solo entre operadores,
// que son las únicas cuentas sin negocio.
func (r *AccountRepo) MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]repository.KeyMatch, error) {
	if field != "email" {
		return nil, fmt.Errorf("match account: campo %q sin clave de unicidad", field)
	}
	f := newScopeFilter(scope, "tenant_id").softDelete("deleted_at", repository.VisibilityAll)
	f.where("email_key = ?", key)
	if scope.IsUnscoped() {
		f.where("tenant_id IS NULL")
	}
	return matchKeys(ctx, r.q, "accounts", f)
}

// FindLoginCandidates cuentas no eliminadas con ese email, de cualquier negocio.
func (r *AccountRepo) FindLoginCandidates(ctx context.Context, emailKey string) ([]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email_key = $1 AND deleted_at IS NULL ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, emailKey)
	if err != nil {
		return nil, translate("find login candidates", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, translate("scan login candidates", err)
	}
	return list, nil
}

// matchKeys ejecuta la consulta de unicidad común a las tablas con soft delete.
func matchKeys(ctx context.Context, q Querier, table string, f *scopeFilter) ([]repository.KeyMatch, error) {
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT id, deleted_at IS NOT NULL FROM `+table+where, f.args...)
	if err != nil {
		return nil, translate("match "+table, err)
	}
	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.KeyMatch, error) {
		var m repository.KeyMatch
		err := row.Scan(&m.ID, &m.Deleted)
		return m, err
	})
	if err != nil {
		return nil, translate("scan "+table+" matches", err)
	}
	return matches, nil
}
