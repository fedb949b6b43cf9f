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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, tenant_id, name, name_key, description, is_active, deleted_at, created_at, updated_at`

func scanCategory(row rowScanner) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.NameKey, &c.Description,
		&c.IsActive, &c.DeletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, tenant_id, name, name_key, description, is_active, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.NameKey, c.Description, c.IsActive, c.DeletedAt, c.CreatedAt, c.UpdatedAt,
	)
	return translate("insert category", err)
}

// GetByID obtiene una categoría dentro del scope, incluso eliminada.
func (r *CategoryRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Category, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories`+where, f.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("get category", err)
	}
	return c, nil
}

// Update actualiza nombre y descripción.
func (r *CategoryRepo) Update(ctx context.Context, scope access.Scope, c *entity.Category) error {
	f := newScopeFilter(scope, "tenant_id")
	set := fmt.Sprintf(`name = %s, name_key = %s, description = %s, updated_at = %s`,
		f.arg(c.Name), f.arg(c.NameKey), f.arg(c.Description), f.arg(c.UpdatedAt))
	f.where("id = ?", c.ID)
	where, err := f.render()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE categories SET `+set+where, f.args...)
	if err != nil {
		return translate("update category", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías del scope.
func (r *CategoryRepo) List(ctx context.Context, scope access.Scope, filter repository.ListFilter) ([]*entity.Category, int, error) {
	filter.Normalize()
	f := newScopeFilter(scope, "tenant_id").softDelete("deleted_at", filter.Visibility)
	f.listFilter(filter, "name", "description")
	where, err := f.render()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`+where, f.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []*entity.Category{}, 0, nil
		}
		return nil, 0, translate("count categories", err)
	}
	query := `SELECT ` + categoryColumns + ` FROM categories` + where + ` ORDER BY name` + f.page(filter.Limit, filter.Offset())
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, translate("list categories", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, 0, translate("scan categories", err)
	}
	return list, total, nil
}

// MatchKey coincidencias del nombre normalizado.
func (r *CategoryRepo) MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]repository.KeyMatch, error) {
	if field != "name" {
		return nil, fmt.Errorf("match category: campo %q sin clave de unicidad", field)
	}
	f := newScopeFilter(scope, "tenant_id")
	f.where("name_key = ?", key)
	return matchKeys(ctx, r.q, "categories", f)
}
