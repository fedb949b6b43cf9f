// Package shift abre y cierra turnos de caja y lleva el diario de ventas de cada turno.
package shift

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/ledger"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

// Ledger ciclo de vida del turno: Open -> Closed.
type Ledger struct {
	accounts repository.AccountRepository
	shifts   repository.ShiftRepository
	sales    repository.SaleRepository
	tx       ports.LedgerTxRunner
	metrics  ports.ShiftMetrics
	log      *logger.Logger
	now      func() time.Time
}

// NewLedger construye el servicio. metrics nil no registra.
func NewLedger(
	accounts repository.AccountRepository,
	shifts repository.ShiftRepository,
	sales repository.SaleRepository,
	tx ports.LedgerTxRunner,
	metrics ports.ShiftMetrics,
	log *logger.Logger,
) *Ledger {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Ledger{
		accounts: accounts, shifts: shifts, sales: sales, tx: tx,
		metrics: metrics, log: log, now: time.Now,
	}
}

// Open abre un turno para la cuenta indicada (la de quien llama si viene vacía).
// Un cajero solo abre su propio turno.
func (l *Ledger) Open(ctx context.Context, scope access.Scope, p access.Principal, in dto.OpenShiftRequest) (*dto.ShiftResponse, error) {
	opening, err := amount(in.OpeningCash, "openingCash")
	if err != nil {
		return nil, err
	}
	accountID := in.AccountID
	if accountID == "" {
		accountID = p.AccountID
	}
	if p.Role == entity.RoleCashier && accountID != p.AccountID {
		return nil, domain.ErrForbidden
	}

	account, err := l.accounts.GetByID(ctx, scope, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.IsDeleted() || account.TenantID == "" {
		return nil, domain.ErrNotFound
	}
	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}

	tenantScope := access.Scoped(account.TenantID)
	current, err := l.shifts.GetOpenByAccount(ctx, tenantScope, account.ID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, domain.ErrShiftAlreadyOpen
	}

	s := &entity.Shift{
		ID:          uuid.NewString(),
		TenantID:    account.TenantID,
		AccountID:   account.ID,
		Status:      entity.ShiftOpen,
		OpeningCash: opening,
		OpenedAt:    l.now().UTC(),
	}
	// La restricción de un turno abierto por cuenta resuelve las aperturas simultáneas.
	if err := l.shifts.Create(ctx, s); err != nil {
		return nil, err
	}
	l.metrics.ShiftOpened()
	l.log.Info().Str("shift_id", s.ID).Str("tenant_id", s.TenantID).Str("account_id", s.AccountID).
		Str("opening_cash", opening.StringFixed(ledger.MoneyPlaces)).Msg("turno abierto")
	return dto.ToShiftResponse(s), nil
}

// Close cierra el turno con el conteo del cajón y devuelve el arqueo. El turno queda
// bloqueado durante el cálculo: ninguna venta entra después de sumar el efectivo.
func (l *Ledger) Close(ctx context.Context, scope access.Scope, p access.Principal, shiftID string, in dto.CloseShiftRequest) (*dto.CloseShiftResponse, error) {
	closing, err := amount(in.ClosingCash, "closingCash")
	if err != nil {
		return nil, err
	}

	var (
		closed *entity.Shift
		rec    ledger.Reconciliation
	)
	err = l.tx.RunLedger(ctx, func(shifts repository.ShiftRepository, sales repository.SaleRepository) error {
		s, err := shifts.LockByID(ctx, scope, shiftID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrShiftNotFound
		}
		if p.Role == entity.RoleCashier && s.AccountID != p.AccountID {
			return domain.ErrForbidden
		}
		if !s.IsOpen() {
			return domain.ErrShiftNotOpen
		}
		list, err := sales.ListByShift(ctx, scope, s.ID)
		if err != nil {
			return err
		}
		rec = ledger.Reconcile(s.OpeningCash, list, closing)
		closedAt := l.now().UTC()
		s.ClosingCash = &rec.ClosingCash
		s.CashSales = &rec.CashSales
		s.ExpectedCash = &rec.ExpectedCash
		s.Variance = &rec.Variance
		s.ClosedAt = &closedAt
		if err := shifts.Close(ctx, scope, s); err != nil {
			return err
		}
		s.Status = entity.ShiftClosed
		closed = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	status := rec.Status()
	l.metrics.ShiftClosed(status)
	l.log.Info().Str("shift_id", closed.ID).Str("tenant_id", closed.TenantID).
		Str("variance", rec.Variance.StringFixed(ledger.MoneyPlaces)).Str("result", status).Msg("turno cerrado")
	return &dto.CloseShiftResponse{
		Shift:          *dto.ToShiftResponse(closed),
		Reconciliation: dto.ToReconciliationResponse(rec),
	}, nil
}

// Current turno abierto de quien llama.
func (l *Ledger) Current(ctx context.Context, scope access.Scope, p access.Principal) (*dto.ShiftResponse, error) {
	s, err := l.shifts.GetOpenByAccount(ctx, scope, p.AccountID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrShiftNotFound
	}
	return dto.ToShiftResponse(s), nil
}

// Get detalle del turno con totales por método de pago.
func (l *Ledger) Get(ctx context.Context, scope access.Scope, p access.Principal, shiftID string) (*dto.ShiftDetailResponse, error) {
	s, err := l.visibleShift(ctx, scope, p, shiftID)
	if err != nil {
		return nil, err
	}
	list, err := l.sales.ListByShift(ctx, scope, s.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ShiftDetailResponse{ShiftResponse: *dto.ToShiftResponse(s), Totals: totals(list)}, nil
}

// List lista turnos del scope. Un cajero solo ve los suyos.
func (l *Ledger) List(ctx context.Context, scope access.Scope, p access.Principal, filter repository.ShiftFilter) (*dto.Page[dto.ShiftResponse], error) {
	if p.Role == entity.RoleCashier {
		filter.AccountID = p.AccountID
	}
	page := repository.ListFilter{Page: filter.Page, Limit: filter.Limit}
	page.Normalize()
	filter.Page, filter.Limit = page.Page, page.Limit

	list, total, err := l.shifts.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ShiftResponse]{
		Items:      dto.MapSlice(list, dto.ToShiftResponse),
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	}, nil
}

// visibleShift turno del scope; un cajero no ve turnos ajenos.
func (l *Ledger) visibleShift(ctx context.Context, scope access.Scope, p access.Principal, shiftID string) (*entity.Shift, error) {
	s, err := l.shifts.GetByID(ctx, scope, shiftID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrShiftNotFound
	}
	if p.Role == entity.RoleCashier && s.AccountID != p.AccountID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func totals(sales []*entity.Sale) dto.ShiftTotals {
	t := dto.ShiftTotals{CashSales: decimal.Zero, CardSales: decimal.Zero}
	for _, s := range sales {
		if s.Status != entity.SaleCompleted {
			t.VoidedCount++
			continue
		}
		t.SalesCount++
		if s.PaymentMethod == entity.PaymentCard {
			t.CardSales = ledger.Round(t.CardSales.Add(s.Total))
		}
	}
	t.CashSales = ledger.CashSales(sales)
	return t
}

// amount monto no negativo redondeado a centavos.
func amount(v *decimal.Decimal, field string) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, domain.NewValidationError(field, "obligatorio")
	}
	if v.IsNegative() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return ledger.Round(*v), nil
}
