package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/lifecycle"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

// CategoryUseCase casos de uso del catálogo de categorías.
type CategoryUseCase struct {
	repo      repository.CategoryRepository
	lifecycle *lifecycle.Manager
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, lc *lifecycle.Manager) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, lifecycle: lc}
}

// Create crea una categoría con nombre único entre las vivas del negocio.
func (uc *CategoryUseCase) Create(ctx context.Context, scope access.Scope, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	tenantID, err := tenantOf(scope)
	if err != nil {
		return nil, err
	}
	key := textkey.Key(in.Name)
	if err := checkUnique(ctx, uc.repo, scope, "name", key, ""); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        in.Name,
		NameKey:     key,
		Description: in.Description,
		Lifecycle:   entity.NewLifecycle(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// GetByID obtiene una categoría del scope.
func (uc *CategoryUseCase) GetByID(ctx context.Context, scope access.Scope, id string) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// Update renombra o describe una categoría viva.
func (uc *CategoryUseCase) Update(ctx context.Context, scope access.Scope, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() {
		return nil, domain.ErrEntityDeleted
	}
	if in.Name != nil {
		key := textkey.Key(*in.Name)
		if key != category.NameKey {
			if err := checkUnique(ctx, uc.repo, scope, "name", key, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name, category.NameKey = *in.Name, key
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, scope, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// List lista categorías del scope.
func (uc *CategoryUseCase) List(ctx context.Context, scope access.Scope, filter repository.ListFilter) (*dto.Page[dto.CategoryResponse], error) {
	filter.Normalize()
	list, total, err := uc.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.CategoryResponse]{
		Items:      dto.MapSlice(list, dto.ToCategoryResponse),
		Pagination: dto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// Delete elimina lógicamente una categoría sin productos activos.
func (uc *CategoryUseCase) Delete(ctx context.Context, scope access.Scope, id string) error {
	return uc.lifecycle.Delete(ctx, scope, access.ResourceCategories, id)
}

// Restore restaura una categoría si su nombre sigue libre.
func (uc *CategoryUseCase) Restore(ctx context.Context, scope access.Scope, id string) (*dto.CategoryResponse, error) {
	if err := uc.lifecycle.Restore(ctx, scope, access.ResourceCategories, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, scope, id)
}

// ToggleActive activa o desactiva una categoría.
func (uc *CategoryUseCase) ToggleActive(ctx context.Context, scope access.Scope, id string) (*dto.CategoryResponse, error) {
	if _, err := uc.lifecycle.ToggleActive(ctx, scope, access.ResourceCategories, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, scope, id)
}

func (uc *CategoryUseCase) get(ctx context.Context, scope access.Scope, id string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}
