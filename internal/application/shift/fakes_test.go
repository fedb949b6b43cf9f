package shift_test

import (
	"context"
	"sync"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// memStore implementa en memoria los repos que usan Ledger y Journal.
// Los métodos que no se usan quedan en las interfaces embebidas (nil).
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	products map[string]*entity.Product
	shifts   map[string]*entity.Shift
	sales    []*entity.Sale
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]*entity.Account{},
		products: map[string]*entity.Product{},
		shifts:   map[string]*entity.Shift{},
	}
}

type memAccounts struct {
	repository.AccountRepository
	s *memStore
}

func (r memAccounts) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Account, error) {
	a, ok := r.s.accounts[id]
	if !ok || !scope.Allows(a.TenantID) {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

type memProducts struct {
	repository.ProductRepository
	s *memStore
}

func (r memProducts) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || !scope.Allows(p.TenantID) {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type memShifts struct {
	s *memStore
}

var _ repository.ShiftRepository = memShifts{}

func (r memShifts) Create(_ context.Context, sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.shifts {
		if other.TenantID == sh.TenantID && other.AccountID == sh.AccountID && other.IsOpen() {
			return domain.ErrShiftAlreadyOpen
		}
	}
	cp := *sh
	r.s.shifts[sh.ID] = &cp
	return nil
}

func (r memShifts) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.shifts[id]
	if !ok || !scope.Allows(sh.TenantID) {
		return nil, nil
	}
	cp := *sh
	return &cp, nil
}

func (r memShifts) LockByID(ctx context.Context, scope access.Scope, id string) (*entity.Shift, error) {
	return r.GetByID(ctx, scope, id)
}

func (r memShifts) GetOpenByAccount(_ context.Context, scope access.Scope, accountID string) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sh := range r.s.shifts {
		if sh.AccountID == accountID && sh.IsOpen() && scope.Allows(sh.TenantID) {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memShifts) Close(_ context.Context, scope access.Scope, sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.shifts[sh.ID]
	if !ok || !scope.Allows(stored.TenantID) || !stored.IsOpen() {
		return domain.ErrShiftNotOpen
	}
	cp := *sh
	cp.Status = entity.ShiftClosed
	r.s.shifts[sh.ID] = &cp
	return nil
}

func (r memShifts) List(_ context.Context, scope access.Scope, f repository.ShiftFilter) ([]*entity.Shift, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Shift
	for _, sh := range r.s.shifts {
		if !scope.Allows(sh.TenantID) || (f.AccountID != "" && sh.AccountID != f.AccountID) || (f.Status != "" && sh.Status != f.Status) {
			continue
		}
		cp := *sh
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type memSales struct {
	s *memStore
}

var _ repository.SaleRepository = memSales{}

func (r memSales) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.shifts[sale.ShiftID]
	if !ok || sh.TenantID != sale.TenantID || !sh.IsOpen() {
		return domain.ErrShiftNotActive
	}
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r memSales) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.sales {
		if sale.ID == id && scope.Allows(sale.TenantID) {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memSales) ListByShift(_ context.Context, scope access.Scope, shiftID string) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.ShiftID == shiftID && scope.Allows(sale.TenantID) {
			cp := *sale
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memSales) UpdateStatus(_ context.Context, scope access.Scope, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.sales {
		if sale.ID == id && scope.Allows(sale.TenantID) {
			sale.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// RunLedger sin transacción real: los repos en memoria ya serializan con el mutex.
func (s *memStore) RunLedger(_ context.Context, fn func(repository.ShiftRepository, repository.SaleRepository) error) error {
	return fn(memShifts{s}, memSales{s})
}

type countingMetrics struct {
	opened int
	closed map[string]int
}

func (m *countingMetrics) ShiftOpened() { m.opened++ }
func (m *countingMetrics) ShiftClosed(status string) {
	if m.closed == nil {
		m.closed = map[string]int{}
	}
	m.closed[status]++
}
