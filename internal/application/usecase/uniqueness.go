package usecase

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
)

// keyMatcher búsqueda por clave de unicidad (la implementan los repositorios con soft delete).
type keyMatcher interface {
	MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]repository.KeyMatch, error)
}

// checkUnique verifica una clave normalizada dentro del scope, ignorando excludeID.
// Una coincidencia viva -> ErrConflict; solo coincidencias eliminadas -> ErrConflictWithDeleted,
// para que quien llama sugiera restaurar.
func checkUnique(ctx context.Context, m keyMatcher, scope access.Scope, field, key, excludeID string) error {
	if key == "" {
		return nil
	}
	matches, err := m.MatchKey(ctx, scope, field, key)
	if err != nil {
		return err
	}
	deleted := false
	for _, match := range matches {
		if match.ID == excludeID {
			continue
		}
		if !match.Deleted {
			return &domain.ConflictError{Field: field, Err: domain.ErrConflict}
		}
		deleted = true
	}
	if deleted {
		return &domain.ConflictError{Field: field, Err: domain.ErrConflictWithDeleted}
	}
	return nil
}

// tenantOf negocio de un scope para crear registros. Unscoped no crea datos de negocio.
func tenantOf(scope access.Scope) (string, error) {
	tenantID, ok := scope.TenantID()
	if !ok {
		return "", domain.ErrForbidden
	}
	return tenantID, nil
}
