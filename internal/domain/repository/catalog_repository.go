package repository

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Category, error)
	Update(ctx context.Context, scope access.Scope, category *entity.Category) error
	List(ctx context.Context, scope access.Scope, filter ListFilter) ([]*entity.Category, int, error)
	MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]KeyMatch, error)
}

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	ListFilter
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create falla con ErrNotFound si la categoría indicada no está viva en el mismo negocio.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, scope access.Scope, id string) (*entity.Product, error)
	Update(ctx context.Context, scope access.Scope, product *entity.Product) error
	List(ctx context.Context, scope access.Scope, filter ProductFilter) ([]*entity.Product, int, error)
	MatchKey(ctx context.Context, scope access.Scope, field, key string) ([]KeyMatch, error)
}
