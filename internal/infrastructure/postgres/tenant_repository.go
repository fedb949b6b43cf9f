package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// Asegura que TenantRepo implementa repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de persistencia para negocios. Pasar pool o tx.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, name, slug, tier, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*entity.Tenant, error) {
	var t entity.Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Tier, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un nuevo negocio. Slug repetido -> ErrConflict.
func (r *TenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, tier, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Slug, tenant.Tier, tenant.IsActive, tenant.CreatedAt, tenant.UpdatedAt,
	)
	return translate("insert tenant", err)
}

// GetByID obtiene un negocio por ID; nil si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.getOne(ctx, "get tenant", `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
}

// GetBySlug obtiene un negocio por slug; nil si no existe.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return r.getOne(ctx, "get tenant by slug", `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, slug)
}

func (r *TenantRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate(op, err)
	}
	return t, nil
}

// Update actualiza nombre, slug, plan y estado.
func (r *TenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		UPDATE tenants SET name = $2, slug = $3, tier = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Slug, tenant.Tier, tenant.IsActive, tenant.UpdatedAt,
	)
	if err != nil {
		return translate("update tenant", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista negocios con búsqueda por nombre o slug y filtro de estado.
func (r *TenantRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Tenant, int, error) {
	filter.Normalize()
	f := globalFilter().listFilter(filter, "name", "slug")
	where, err := f.render()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`+where, f.args...).Scan(&total); err != nil {
		return nil, 0, translate("count tenants", err)
	}

	query := `SELECT ` + tenantColumns + ` FROM tenants` + where + ` ORDER BY name` + f.page(filter.Limit, filter.Offset())
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, translate("list tenants", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Tenant, error) {
		return scanTenant(row)
	})
	if err != nil {
		return nil, 0, translate("scan tenants", err)
	}
	return list, total, nil
}
