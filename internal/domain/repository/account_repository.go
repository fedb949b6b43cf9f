package repository

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (almacén de principales).
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	// GetByID devuelve la cuenta aunque esté eliminada; nil si no existe dentro del scope.
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Account, error)
	Update(ctx context.Context, scope access.Scope, account *entity.Account) error
	// List excluye siempre las cuentas con rol operator.
	List(ctx context.Context, scope access.Scope, filter ListFilter) ([]*entity.Account, int, error)
	// MatchKey busca coincidencias de una clave de unicidad ("email").
	MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]KeyMatch, error)
	// FindLoginCandidates cuentas no eliminadas con ese email normalizado, de cualquier negocio.
	FindLoginCandidates(ctx context.Context, emailKey string) ([]*entity.Account, error)
}
