package repository

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// LifecycleRepository acceso a los campos de soft delete de un tipo de entidad.
// Se usa dentro de una transacción: Lock bloquea la fila hasta el commit.
type LifecycleRepository interface {
	// Lock devuelve el ciclo de vida de la fila bloqueada; nil si no existe dentro del scope.
	Lock(ctx context.Context, scope access.Scope, id string) (*entity.Lifecycle, error)
	// Save persiste IsActive y DeletedAt juntos en un solo UPDATE.
	Save(ctx context.Context, scope access.Scope, id string, l entity.Lifecycle) error
	// CountDependents cuenta registros activos que todavía referencian la fila.
	CountDependents(ctx context.Context, scope access.Scope, id string) (int, error)
}
