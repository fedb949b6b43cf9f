package shift_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/shift"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/ledger"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

const tenantA = "tenant-a"

type fixture struct {
	store   *memStore
	metrics *countingMetrics
	ledger  *shift.Ledger
	journal *shift.Journal
	scope   access.Scope
	cashier access.Principal
	owner   access.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	store.accounts["cashier"] = &entity.Account{ID: "cashier", TenantID: tenantA, Role: entity.RoleCashier, Lifecycle: entity.NewLifecycle()}
	store.accounts["cashier2"] = &entity.Account{ID: "cashier2", TenantID: tenantA, Role: entity.RoleCashier, Lifecycle: entity.NewLifecycle()}
	store.accounts["owner"] = &entity.Account{ID: "owner", TenantID: tenantA, Role: entity.RoleOwner, Lifecycle: entity.NewLifecycle()}
	store.accounts["other"] = &entity.Account{ID: "other", TenantID: "tenant-b", Role: entity.RoleCashier, Lifecycle: entity.NewLifecycle()}
	store.products["ticket"] = &entity.Product{ID: "ticket", TenantID: tenantA, Name: "Entrada", Price: decimal.RequireFromString("50.00"), Lifecycle: entity.NewLifecycle()}
	store.products["soap"] = &entity.Product{ID: "soap", TenantID: tenantA, Name: "Jabón", Price: decimal.RequireFromString("25.50"), Lifecycle: entity.NewLifecycle()}
	store.products["towel"] = &entity.Product{ID: "towel", TenantID: tenantA, Name: "Toalla", Price: decimal.RequireFromString("10.00"), Lifecycle: entity.NewLifecycle()}

	m := &countingMetrics{}
	log := logger.Nop()
	return &fixture{
		store:   store,
		metrics: m,
		ledger:  shift.NewLedger(memAccounts{s: store}, memShifts{store}, memSales{store}, store, m, log),
		journal: shift.NewJournal(memShifts{store}, memSales{store}, memProducts{s: store}, store, log),
		scope:   access.Scoped(tenantA),
		cashier: access.Principal{AccountID: "cashier", Role: entity.RoleCashier, TenantID: tenantA},
		owner:   access.Principal{AccountID: "owner", Role: entity.RoleOwner, TenantID: tenantA},
	}
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (f *fixture) open(t *testing.T, opening string) *dto.ShiftResponse {
	t.Helper()
	s, err := f.ledger.Open(context.Background(), f.scope, f.cashier, dto.OpenShiftRequest{OpeningCash: money(opening)})
	require.NoError(t, err)
	return s
}

func (f *fixture) sell(t *testing.T, product, method string) *dto.SaleResponse {
	t.Helper()
	sale, err := f.journal.Record(context.Background(), f.scope, f.cashier, dto.CreateSaleRequest{
		ProductID: product, Quantity: 1, PaymentMethod: method,
	})
	require.NoError(t, err)
	return sale
}

func TestLedger_OpenYCierreExacto(t *testing.T) {
	f := newFixture(t)
	opened := f.open(t, "100.00")
	assert.Equal(t, entity.ShiftOpen, opened.Status)
	assert.Equal(t, 1, f.metrics.opened)

	f.sell(t, "ticket", entity.PaymentCash)
	f.sell(t, "soap", entity.PaymentCash)
	f.sell(t, "towel", entity.PaymentCash)
	f.sell(t, "ticket", entity.PaymentCard)

	res, err := f.ledger.Close(context.Background(), f.scope, f.cashier, opened.ID, dto.CloseShiftRequest{ClosingCash: money("185.50")})
	require.NoError(t, err)

	rec := res.Reconciliation
	assert.True(t, rec.CashSales.Equal(decimal.RequireFromString("85.50")), rec.CashSales.String())
	assert.True(t, rec.ExpectedCash.Equal(decimal.RequireFromString("185.50")))
	assert.True(t, rec.Variance.IsZero())
	assert.Equal(t, ledger.StatusExact, rec.Status)
	assert.Equal(t, entity.ShiftClosed, res.Shift.Status)
	require.NotNil(t, res.Shift.Variance)
	assert.Equal(t, 1, f.metrics.closed[ledger.StatusExact])
}

func TestLedger_CierreConFaltante(t *testing.T) {
	f := newFixture(t)
	opened := f.open(t, "100.00")
	f.sell(t, "ticket", entity.PaymentCash)
	f.sell(t, "soap", entity.PaymentCash)
	f.sell(t, "towel", entity.PaymentCash)

	res, err := f.ledger.Close(context.Background(), f.scope, f.owner, opened.ID, dto.CloseShiftRequest{ClosingCash: money("180.00")})
	require.NoError(t, err)
	assert.True(t, res.Reconciliation.Variance.Equal(decimal.RequireFromString("-5.50")))
	assert.Equal(t, ledger.StatusShortage, res.Reconciliation.Status)
}

func TestLedger_OpenErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Open(ctx, f.scope, f.cashier, dto.OpenShiftRequest{OpeningCash: money("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.ledger.Open(ctx, f.scope, f.cashier, dto.OpenShiftRequest{AccountID: "cashier2", OpeningCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrForbidden, "un cajero solo abre su propio turno")

	_, err = f.ledger.Open(ctx, f.scope, f.owner, dto.OpenShiftRequest{AccountID: "other", OpeningCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cuenta de otro negocio")

	f.store.accounts["cashier2"].IsActive = false
	_, err = f.ledger.Open(ctx, f.scope, f.owner, dto.OpenShiftRequest{AccountID: "cashier2", OpeningCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)

	f.open(t, "0")
	_, err = f.ledger.Open(ctx, f.scope, f.owner, dto.OpenShiftRequest{AccountID: "cashier", OpeningCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
}

func TestLedger_OpenParaOtraCuentaComoSupervisor(t *testing.T) {
	f := newFixture(t)
	s, err := f.ledger.Open(context.Background(), f.scope, f.owner, dto.OpenShiftRequest{AccountID: "cashier2", OpeningCash: money("20")})
	require.NoError(t, err)
	assert.Equal(t, "cashier2", s.AccountID)
	assert.Equal(t, tenantA, s.TenantID)
}

func TestLedger_CloseErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	opened := f.open(t, "10")

	_, err := f.ledger.Close(ctx, f.scope, f.cashier, "missing", dto.CloseShiftRequest{ClosingCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrShiftNotFound)

	_, err = f.ledger.Close(ctx, access.Scoped("tenant-b"), f.cashier, opened.ID, dto.CloseShiftRequest{ClosingCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrShiftNotFound, "turno de otro negocio")

	_, err = f.ledger.Close(ctx, f.scope, f.cashier, opened.ID, dto.CloseShiftRequest{ClosingCash: money("-0.01")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	other := access.Principal{AccountID: "cashier2", Role: entity.RoleCashier, TenantID: tenantA}
	_, err = f.ledger.Close(ctx, f.scope, other, opened.ID, dto.CloseShiftRequest{ClosingCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.ledger.Close(ctx, f.scope, f.cashier, opened.ID, dto.CloseShiftRequest{ClosingCash: money("10")})
	require.NoError(t, err)
	_, err = f.ledger.Close(ctx, f.scope, f.cashier, opened.ID, dto.CloseShiftRequest{ClosingCash: money("10")})
	assert.ErrorIs(t, err, domain.ErrShiftNotOpen)
}

func TestLedger_CurrentGetYList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Current(ctx, f.scope, f.cashier)
	assert.ErrorIs(t, err, domain.ErrShiftNotFound)

	opened := f.open(t, "50")
	f.sell(t, "ticket", entity.PaymentCash)
	f.sell(t, "soap", entity.PaymentCard)
	voided := f.sell(t, "towel", entity.PaymentCash)
	_, err = f.journal.Void(ctx, f.scope, voided.ID)
	require.NoError(t, err)

	current, err := f.ledger.Current(ctx, f.scope, f.cashier)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, current.ID)

	detail, err := f.ledger.Get(ctx, f.scope, f.owner, opened.ID)
	require.NoError(t, err)
	assert.True(t, detail.Totals.CashSales.Equal(decimal.RequireFromString("50")))
	assert.True(t, detail.Totals.CardSales.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, 2, detail.Totals.SalesCount)
	assert.Equal(t, 1, detail.Totals.VoidedCount)

	_, err = f.ledger.Open(ctx, f.scope, f.owner, dto.OpenShiftRequest{AccountID: "cashier2", OpeningCash: money("0")})
	require.NoError(t, err)

	page, err := f.ledger.List(ctx, f.scope, f.cashier, repository.ShiftFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1, "un cajero solo lista sus turnos")

	page, err = f.ledger.List(ctx, f.scope, f.owner, repository.ShiftFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, repository.DefaultLimit, page.Pagination.Limit)
}
