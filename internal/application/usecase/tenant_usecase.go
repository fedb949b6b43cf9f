package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

// TenantUseCase administración de negocios (solo operadores).
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create da de alta un negocio activo. El slug se deriva del nombre si no se indica.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	slug, err := uc.uniqueSlug(ctx, in.Slug, in.Name, "")
	if err != nil {
		return nil, err
	}
	tier := in.Tier
	if tier == "" {
		tier = entity.TierBasic
	}
	now := time.Now().UTC()
	tenant := &entity.Tenant{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Slug:      slug,
		Tier:      tier,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return dto.ToTenantResponse(tenant), nil
}

// GetByID obtiene un negocio.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToTenantResponse(tenant), nil
}

// Update cambia nombre, slug o plan.
func (uc *TenantUseCase) Update(ctx context.Context, id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		tenant.Name = *in.Name
	}
	if in.Slug != nil {
		slug, err := uc.uniqueSlug(ctx, *in.Slug, "", tenant.ID)
		if err != nil {
			return nil, err
		}
		tenant.Slug = slug
	}
	if in.Tier != nil {
		if !entity.ValidTier(*in.Tier) {
			return nil, domain.NewValidationError("tier", "plan desconocido")
		}
		tenant.Tier = *in.Tier
	}
	tenant.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return dto.ToTenantResponse(tenant), nil
}

// ToggleActive activa o desactiva el negocio. Un negocio inactivo rechaza a todas sus cuentas.
func (uc *TenantUseCase) ToggleActive(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	tenant.IsActive = !tenant.IsActive
	tenant.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return dto.ToTenantResponse(tenant), nil
}

// List lista negocios.
func (uc *TenantUseCase) List(ctx context.Context, filter repository.ListFilter) (*dto.Page[dto.TenantResponse], error) {
	filter.Normalize()
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.TenantResponse]{
		Items:      dto.MapSlice(list, dto.ToTenantResponse),
		Pagination: dto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

func (uc *TenantUseCase) get(ctx context.Context, id string) (*entity.Tenant, error) {
	tenant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return tenant, nil
}

// uniqueSlug normaliza el slug (o lo deriva del nombre) y verifica que ningún otro negocio lo use.
func (uc *TenantUseCase) uniqueSlug(ctx context.Context, slug, name, excludeID string) (string, error) {
	if slug == "" {
		slug = name
	}
	slug = textkey.Slug(slug)
	if slug == "" {
		return "", domain.NewValidationError("slug", "no se pudo derivar un slug válido")
	}
	existing, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != excludeID {
		return "", &domain.ConflictError{Field: "slug", Err: domain.ErrConflict}
	}
	return slug, nil
}
