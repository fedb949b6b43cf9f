package usecase

import (
	"context"
	"errors"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// keyIndex índice de claves de unicidad en memoria: field -> key -> coincidencias.
type keyIndex map[string]map[string][]repository.KeyMatch

func (ix keyIndex) add(field, key, id string, deleted bool) {
	if ix[field] == nil {
		ix[field] = map[string][]repository.KeyMatch{}
	}
	ix[field][key] = append(ix[field][key], repository.KeyMatch{ID: id, Deleted: deleted})
}

// MatchKey rechaza un scope inválido como lo hace el repositorio real.
func (ix keyIndex) MatchKey(_ context.Context, scope access.Scope, field, key string) ([]repository.KeyMatch, error) {
	if !scope.Valid() {
		return nil, errors.New("consulta sin scope")
	}
	return ix[field][key], nil
}

type fakeAccounts struct {
	keyIndex
	byID    map[string]*entity.Account
	created []*entity.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{keyIndex: keyIndex{}, byID: map[string]*entity.Account{}}
}

func (r *fakeAccounts) Create(_ context.Context, a *entity.Account) error {
	r.created = append(r.created, a)
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAccounts) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Account, error) {
	a, ok := r.byID[id]
	if !ok || !scope.Allows(a.TenantID) {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccounts) Update(_ context.Context, _ access.Scope, a *entity.Account) error {
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAccounts) List(context.Context, access.Scope, repository.ListFilter) ([]*entity.Account, int, error) {
	return nil, 0, nil
}

func (r *fakeAccounts) FindLoginCandidates(context.Context, string) ([]*entity.Account, error) {
	return nil, nil
}

type fakeTenants struct {
	byID map[string]*entity.Tenant
}

func (r *fakeTenants) Create(_ context.Context, t *entity.Tenant) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return r.byID[id], nil
}

func (r *fakeTenants) GetBySlug(_ context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.byID {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenants) Update(_ context.Context, t *entity.Tenant) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTenants) List(context.Context, repository.ListFilter) ([]*entity.Tenant, int, error) {
	return nil, 0, nil
}

type fakeCategories struct {
	keyIndex
	byID map[string]*entity.Category
}

func (r *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategories) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok || !scope.Allows(c.TenantID) {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCategories) Update(_ context.Context, _ access.Scope, c *entity.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategories) List(context.Context, access.Scope, repository.ListFilter) ([]*entity.Category, int, error) {
	return nil, 0, nil
}

type fakeProducts struct {
	keyIndex
	byID map[string]*entity.Product
}

func (r *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProducts) GetByID(_ context.Context, scope access.Scope, id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok || !scope.Allows(p.TenantID) {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProducts) Update(_ context.Context, _ access.Scope, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProducts) List(context.Context, access.Scope, repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
