package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo diario de ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, tenant_id, shift_id, account_id, product_id, quantity, unit_price, total, payment_method, status, created_at`

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.TenantID, &s.ShiftID, &s.AccountID, &s.ProductID, &s.Quantity,
		&s.UnitPrice, &s.Total, &s.PaymentMethod, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create registra una venta. El turno se bloquea FOR SHARE: un cierre concurrente (FOR UPDATE)
// espera a que la venta confirme o la venta ve el turno ya cerrado. Lo mismo con el producto
// frente a su eliminación.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, shift_id, account_id, product_id, quantity, unit_price, total, payment_method, status, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::uuid, $5::uuid, $6::integer, $7::numeric, $8::numeric, $9, $10, $11::timestamptz
		WHERE EXISTS (
			SELECT 1 FROM shifts sh
			WHERE sh.id = $3::uuid AND sh.tenant_id = $2::uuid AND sh.status = 'open'
			FOR SHARE)
		AND EXISTS (
			SELECT 1 FROM products p
			WHERE p.id = $5::uuid AND p.tenant_id = $2::uuid AND p.deleted_at IS NULL AND p.is_active
			FOR SHARE)`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.ShiftID, s.AccountID, s.ProductID, s.Quantity,
		s.UnitPrice, s.Total, s.PaymentMethod, s.Status, s.CreatedAt,
	)
	if err != nil {
		return translate("insert sale", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	// Ninguna fila: distinguir turno no activo de producto no disponible.
	var open bool
	err = r.q.QueryRow(ctx,
		`SELECT status = 'open' FROM shifts WHERE id = $1 AND tenant_id = $2`, s.ShiftID, s.TenantID,
	).Scan(&open)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) && !isInvalidID(err) {
		return translate("check sale shift", err)
	}
	if !open {
		return domain.ErrShiftNotActive
	}
	return domain.ErrNotFound
}

// GetByID obtiene una venta dentro del scope.
func (r *SaleRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Sale, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales`+where, f.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("get sale", err)
	}
	return s, nil
}

// ListByShift ventas de un turno en orden de registro.
func (r *SaleRepo) ListByShift(ctx context.Context, scope access.Scope, shiftID string) ([]*entity.Sale, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("shift_id = ?", shiftID)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales`+where+` ORDER BY created_at, id`, f.args...)
	if err != nil {
		return nil, translate("list sales", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Sale, error) {
		return scanSale(row)
	})
	if err != nil {
		if isInvalidID(err) {
			return []*entity.Sale{}, nil
		}
		return nil, translate("scan sales", err)
	}
	return list, nil
}

// UpdateStatus cambia el estado de una venta (único campo mutable).
func (r *SaleRepo) UpdateStatus(ctx context.Context, scope access.Scope, id, status string) error {
	f := newScopeFilter(scope, "tenant_id")
	set := `status = ` + f.arg(status)
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET `+set+where, f.args...)
	if err != nil {
		return translate("update sale status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
