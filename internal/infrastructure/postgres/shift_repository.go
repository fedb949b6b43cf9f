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

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación del puerto ShiftRepository sobre PostgreSQL.
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de persistencia para turnos.
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const shiftColumns = `id, tenant_id, account_id, status, opening_cash, closing_cash, cash_sales, expected_cash, variance, opened_at, closed_at`

func scanShift(row rowScanner) (*entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(&s.ID, &s.TenantID, &s.AccountID, &s.Status, &s.OpeningCash,
		&s.ClosingCash, &s.CashSales, &s.ExpectedCash, &s.Variance, &s.OpenedAt, &s.ClosedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create abre un turno. La cuenta debe seguir viva y activa en el negocio (se bloquea FOR SHARE);
// un segundo turno abierto para la cuenta viola shifts_one_open_per_account -> ErrShiftAlreadyOpen.
func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	query := `
		INSERT INTO shifts (id, tenant_id, account_id, status, opening_cash, opened_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4, $5::numeric, $6::timestamptz
		WHERE EXISTS (
			SELECT 1 FROM accounts a
			WHERE a.id = $3::uuid AND a.tenant_id = $2::uuid AND a.deleted_at IS NULL AND a.is_active
			FOR SHARE)`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.TenantID, s.AccountID, s.Status, s.OpeningCash, s.OpenedAt)
	if err != nil {
		return translate("insert shift", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un turno dentro del scope.
func (r *ShiftRepo) GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Shift, error) {
	return r.getOne(ctx, scope, id, "")
}

// LockByID igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *ShiftRepo) LockByID(ctx context.Context, scope access.Scope, id string) (*entity.Shift, error) {
	return r.getOne(ctx, scope, id, " FOR UPDATE")
}

func (r *ShiftRepo) getOne(ctx context.Context, scope access.Scope, id, lock string) (*entity.Shift, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("id = ?", id)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	s, err := scanShift(r.q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts`+where+lock, f.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("get shift", err)
	}
	return s, nil
}

// GetOpenByAccount turno abierto de la cuenta; nil si no tiene.
func (r *ShiftRepo) GetOpenByAccount(ctx context.Context, scope access.Scope, accountID string) (*entity.Shift, error) {
	f := newScopeFilter(scope, "tenant_id")
	f.where("account_id = ?", accountID)
	f.where("status = ?", entity.ShiftOpen)
	where, err := f.render()
	if err != nil {
		return nil, err
	}
	s, err := scanShift(r.q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts`+where, f.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, translate("get open shift", err)
	}
	return s, nil
}

// Close persiste el arqueo. Solo afecta turnos abiertos; si otro cierre ganó -> ErrShiftNotOpen.
func (r *ShiftRepo) Close(ctx context.Context, scope access.Scope, s *entity.Shift) error {
	f := newScopeFilter(scope, "tenant_id")
	set := `status = ` + f.arg(entity.ShiftClosed) +
		`, closing_cash = ` + f.arg(s.ClosingCash) +
		`, cash_sales = ` + f.arg(s.CashSales) +
		`, expected_cash = ` + f.arg(s.ExpectedCash) +
		`, variance = ` + f.arg(s.Variance) +
		`, closed_at = ` + f.arg(s.ClosedAt)
	f.where("id = ?", s.ID)
	f.where("status = ?", entity.ShiftOpen)
	where, err := f.render()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `UPDATE shifts SET `+set+where, f.args...)
	if err != nil {
		return translate("close shift", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrShiftNotOpen
	}
	return nil
}

// List lista turnos del scope, más recientes primero.
func (r *ShiftRepo) List(ctx context.Context, scope access.Scope, filter repository.ShiftFilter) ([]*entity.Shift, int, error) {
	page := repository.ListFilter{Page: filter.Page, Limit: filter.Limit}
	page.Normalize()

	f := newScopeFilter(scope, "tenant_id")
	if filter.Status != "" {
		f.where("status = ?", filter.Status)
	}
	if filter.AccountID != "" {
		f.where("account_id = ?", filter.AccountID)
	}
	where, err := f.render()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM shifts`+where, f.args...).Scan(&total); err != nil {
		if isInvalidID(err) {
			return []*entity.Shift{}, 0, nil
		}
		return nil, 0, translate("count shifts", err)
	}
	query := `SELECT ` + shiftColumns + ` FROM shifts` + where + ` ORDER BY opened_at DESC` + f.page(page.Limit, page.Offset())
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, translate("list shifts", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Shift, error) {
		return scanShift(row)
	})
	if err != nil {
		return nil, 0, translate("scan shifts", err)
	}
	return list, total, nil
}
