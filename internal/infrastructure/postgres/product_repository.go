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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, tenant_id, category_id, name, name_key, sku, sku_key, description, price, is_active, deleted_at, created_at, updated_at`

// liveCategoryGuard la categoría existe viva en el negocio; la bloquea FOR SHARE para que
// no pueda eliminarse mientras se inserta o mueve un producto hacia ella.
const liveCategoryGuard = `(%[1]s::uuid IS NULL OR EXISTS (
		SELECT 1 FROM categories c
		WHERE c.id = %[1]s::uuid AND c.tenant_id = %[2]s::uuid AND c.deleted_at IS NULL
		FOR SHARE))`

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p           entity.Product
		sku, skuKey *string
	)
	err := row.Scan(&p.ID, &p.TenantID, &p.CategoryID, &p.Name, &p.NameKey, &sku, &skuKey, &p.Description,
		&p.Price, &p.IsActive, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.SKU = deref(sku)
	p.SKUKey = deref(skuKey)
	return &p, nil
}

// Create persiste un nuevo producto. Si la categoría no está viva en el mismo negocio -> ErrNotFound.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, category_id, name, name_key, sku, sku_key, description, price, is_active, deleted_at, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7, $8, $9::numeric, $10, $11::timestamptz, $12::timestamptz, $13::timestamptz
		WHERE ` + fmt.Sprintf(liveCategoryGuard, "$3", "$2")
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, p.CategoryID, p.Name, p.NameKey, nullable(p.SKU), nullable(p.SKUKey), p.Description,
		p.Price, p.IsActive, p.DeletedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translate("insert product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un producto dentro del scope, incluso eliminado.
func (r *ProductRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Product, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products`+where, f.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("get product", err)
	}
	return p, nil
}

// Update actualiza los datos editables. Mover a una categoría que no está viva -> ErrNotFound.
func (r *ProductRepo) Update(ctx context.Context, scope access.Scope, p *entity.Product) error {
	f := newScopeFilter(scope, "tenant_id")
	cat := f.arg(p.CategoryID)
	set := fmt.Sprintf(`category_id = %s::uuid, name = %s, name_key = %s, sku = %s, sku_key = %s, description = %s, price = %s, updated_at = %s`,
		cat, f.arg(p.Name), f.arg(p.NameKey), f.arg(nullable(p.SKU)), f.arg(nullable(p.SKUKey)),
		f.arg(p.Description), f.arg(p.Price), f.arg(p.UpdatedAt))
	f.where("id = ?", p.ID)
	f.conds = append(f.conds, fmt.Sprintf(liveCategoryGuard, cat, "products.tenant_id"))
	where, err := f.render()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE products SET `+set+where, f.args...)
	if err != nil {
		return translate("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos del scope, opcionalmente de una categoría.
func (r *ProductRepo) List(ctx context.Context, scope access.Scope, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	filter.Normalize()
	f := newScopeFilter(scope, "tenant_id").softDelete("deleted_at", filter.Visibility)
	if filter.CategoryID != "" {
		f.where("category_id = ?", filter.CategoryID)
	}
	f.listFilter(filter.ListFilter, "name", "sku")
	where, err := f.render()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, f.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []*entity.Product{}, 0, nil
		}
		return nil, 0, translate("count products", err)
	}
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY name` + f.page(filter.Limit, filter.Offset())
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, translate("list products", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, 0, translate("scan products", err)
	}
	return list, total, nil
}

// MatchKey coincidencias del nombre o del SKU normalizados.
func (r *ProductRepo) MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]repository.KeyMatch, error) {
	var column string
	switch field {
	case "name":
		column = "name_key"
	case "sku":
		column = "sku_key"
	default:
		return nil, fmt.Errorf("match product: campo %q sin clave de unicidad", field)
	}
	f := newScopeFilter(scope, "tenant_id")
	f.where(column+" = ?", key)
	return matchKeys(ctx, r.q, "products", f)
}
