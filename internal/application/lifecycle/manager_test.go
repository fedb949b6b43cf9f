package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acruxgo/banos-forum-backend/internal/application/lifecycle"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

type row struct {
	tenantID   string
	lifecycle  entity.Lifecycle
	dependents int
}

// fakeStore simula la tabla; Save con saveErr reproduce un conflicto de unicidad al restaurar.
type fakeStore struct {
	rows    map[string]*row
	saves   int
	saveErr error
}

func (s *fakeStore) RunLifecycle(_ context.Context, _ access.Resource, fn func(repository.LifecycleRepository) error) error {
	return fn(s)
}

func (s *fakeStore) Lock(_ context.Context, scope access.Scope, id string) (*entity.Lifecycle, error) {
	r, ok := s.rows[id]
	if !ok || !scope.Allows(r.tenantID) {
		return nil, nil
	}
	l := r.lifecycle
	return &l, nil
}

func (s *fakeStore) Save(_ context.Context, _ access.Scope, id string, l entity.Lifecycle) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.rows[id].lifecycle = l
	return nil
}

func (s *fakeStore) CountDependents(_ context.Context, _ access.Scope, id string) (int, error) {
	return s.rows[id].dependents, nil
}

func newStore() *fakeStore {
	deletedAt := time.Now().Add(-time.Hour)
	return &fakeStore{rows: map[string]*row{
		"live":    {tenantID: "t1", lifecycle: entity.NewLifecycle()},
		"deleted": {tenantID: "t1", lifecycle: entity.Lifecycle{DeletedAt: &deletedAt}},
		"busy":    {tenantID: "t1", lifecycle: entity.NewLifecycle(), dependents: 3},
	}}
}

func TestManager_Delete(t *testing.T) {
	store := newStore()
	m := lifecycle.NewManager(store, logger.Nop())
	ctx := context.Background()
	scope := access.Scoped("t1")

	require.NoError(t, m.Delete(ctx, scope, access.ResourceCategories, "live"))
	l := store.rows["live"].lifecycle
	assert.True(t, l.IsDeleted())
	assert.False(t, l.IsActive, "eliminado implica inactivo")

	assert.ErrorIs(t, m.Delete(ctx, scope, access.ResourceCategories, "deleted"), domain.ErrAlreadyDeleted)
}

func TestManager_DeleteConDependencias(t *testing.T) {
	store := newStore()
	m := lifecycle.NewManager(store, logger.Nop())

	err := m.Delete(context.Background(), access.Scoped("t1"), access.ResourceCategories, "busy")
	require.ErrorIs(t, err, domain.ErrDependencyExists)
	n, ok := domain.DependencyCount(err)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Zero(t, store.saves, "sin cambios si hay dependencias")
	assert.False(t, store.rows["busy"].lifecycle.IsDeleted())
}

func TestManager_Restore(t *testing.T) {
	store := newStore()
	m := lifecycle.NewManager(store, logger.Nop())
	ctx := context.Background()
	scope := access.Scoped("t1")

	require.NoError(t, m.Restore(ctx, scope, access.ResourceProducts, "deleted"))
	l := store.rows["deleted"].lifecycle
	assert.False(t, l.IsDeleted())
	assert.True(t, l.IsActive, "restaurar siempre reactiva")

	assert.ErrorIs(t, m.Restore(ctx, scope, access.ResourceProducts, "live"), domain.ErrNotDeleted)
}

func TestManager_RestoreConClaveTomada(t *testing.T) {
	store := newStore()
	store.saveErr = &domain.ConflictError{Field: "name", Err: domain.ErrConflict}
	m := lifecycle.NewManager(store, logger.Nop())

	err := m.Restore(context.Background(), access.Scoped("t1"), access.ResourceProducts, "deleted")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, store.rows["deleted"].lifecycle.IsDeleted())
}

func TestManager_ToggleActive(t *testing.T) {
	store := newStore()
	m := lifecycle.NewManager(store, logger.Nop())
	ctx := context.Background()
	scope := access.Scoped("t1")

	active, err := m.ToggleActive(ctx, scope, access.ResourceAccounts, "live")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = m.ToggleActive(ctx, scope, access.ResourceAccounts, "live")
	require.NoError(t, err)
	assert.True(t, active)

	_, err = m.ToggleActive(ctx, scope, access.ResourceAccounts, "deleted")
	assert.ErrorIs(t, err, domain.ErrEntityDeleted)
}

func TestManager_FueraDeScope(t *testing.T) {
	store := newStore()
	m := lifecycle.NewManager(store, logger.Nop())

	err := m.Delete(context.Background(), access.Scoped("t2"), access.ResourceCategories, "live")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, store.rows["live"].lifecycle.IsDeleted())

	_, err = m.ToggleActive(context.Background(), access.Scoped("t1"), access.ResourceCategories, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
