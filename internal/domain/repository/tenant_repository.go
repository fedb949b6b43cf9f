package repository

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// Los negocios no pertenecen a otro negocio: no reciben Scope.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	List(ctx context.Context, filter ListFilter) ([]*entity.Tenant, int, error)
}
