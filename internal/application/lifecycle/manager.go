// Package lifecycle aplica las transiciones de soft delete (eliminar, restaurar, activar/desactivar)
// sobre cuentas, categorías y productos, dentro de una transacción y con la fila bloqueada.
package lifecycle

import (
	"context"
	"time"

	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

// Manager ejecuta las transiciones del ciclo de vida.
type Manager struct {
	tx  ports.LifecycleTxRunner
	log *logger.Logger
	now func() time.Time
}

// NewManager construye el manager.
func NewManager(tx ports.LifecycleTxRunner, log *logger.Logger) *Manager {
	return &Manager{tx: tx, log: log, now: time.Now}
}

// Delete Active -> Deleted. Falla sin modificar nada si la fila ya está eliminada
// o si hay registros vivos que dependen de ella.
func (m *Manager) Delete(ctx context.Context, scope access.Scope, resource access.Resource, id string) error {
	err := m.transition(ctx, scope, resource, id, func(repo repository.LifecycleRepository, l *entity.Lifecycle) error {
		if l.IsDeleted() {
			return domain.ErrAlreadyDeleted
		}
		n, err := repo.CountDependents(ctx, scope, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &domain.DependencyError{Count: n}
		}
		return l.Delete(m.now())
	})
	if err == nil {
		m.log.Info().Str("resource", string(resource)).Str("id", id).Msg("registro eliminado")
	}
	return err
}

// Restore Deleted -> Active. Si otra fila viva tomó la clave de unicidad, el guardado
// falla con ErrConflict y la fila sigue eliminada.
func (m *Manager) Restore(ctx context.Context, scope access.Scope, resource access.Resource, id string) error {
	err := m.transition(ctx, scope, resource, id, func(_ repository.LifecycleRepository, l *entity.Lifecycle) error {
		return l.Restore()
	})
	if err == nil {
		m.log.Info().Str("resource", string(resource)).Str("id", id).Msg("registro restaurado")
	}
	return err
}

// ToggleActive invierte el flag activo de una fila no eliminada. Devuelve el nuevo valor.
func (m *Manager) ToggleActive(ctx context.Context, scope access.Scope, resource access.Resource, id string) (bool, error) {
	var active bool
	err := m.transition(ctx, scope, resource, id, func(_ repository.LifecycleRepository, l *entity.Lifecycle) error {
		if err := l.ToggleActive(); err != nil {
			return err
		}
		active = l.IsActive
		return nil
	})
	return active, err
}

func (m *Manager) transition(
	ctx context.Context,
	scope access.Scope,
	resource access.Resource,
	id string,
	apply func(repo repository.LifecycleRepository, l *entity.Lifecycle) error,
) error {
	return m.tx.RunLifecycle(ctx, resource, func(repo repository.LifecycleRepository) error {
		l, err := repo.Lock(ctx, scope, id)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrNotFound
		}
		if err := apply(repo, l); err != nil {
			return err
		}
		return repo.Save(ctx, scope, id, *l)
	})
}
