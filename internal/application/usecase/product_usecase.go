package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/lifecycle"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/ledger"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	lifecycle  *lifecycle.Manager
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, lc *lifecycle.Manager) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, lifecycle: lc}
}

// Create crea un producto. Nombre y SKU son únicos entre los vivos del negocio;
// la categoría, si se indica, debe estar viva en el mismo negocio.
func (uc *ProductUseCase) Create(ctx context.Context, scope access.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	tenantID, err := tenantOf(scope)
	if err != nil {
		return nil, err
	}
	price, err := validPrice(in.Price)
	if err != nil {
		return nil, err
	}
	categoryID := emptyToNil(in.CategoryID)
	if err := uc.checkCategory(ctx, scope, categoryID); err != nil {
		return nil, err
	}
	nameKey := textkey.Key(in.Name)
	if err := checkUnique(ctx, uc.repo, scope, "name", nameKey, ""); err != nil {
		return nil, err
	}
	skuKey := textkey.Key(in.SKU)
	if err := checkUnique(ctx, uc.repo, scope, "sku", skuKey, ""); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		CategoryID:  categoryID,
		Name:        in.Name,
		NameKey:     nameKey,
		SKU:         in.SKU,
		SKUKey:      skuKey,
		Description: in.Description,
		Price:       price,
		Lifecycle:   entity.NewLifecycle(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto del scope.
func (uc *ProductUseCase) GetByID(ctx context.Context, scope access.Scope, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update actualiza un producto vivo.
func (uc *ProductUseCase) Update(ctx context.Context, scope access.Scope, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if product.IsDeleted() {
		return nil, domain.ErrEntityDeleted
	}
	if in.CategoryID != nil {
		categoryID := emptyToNil(in.CategoryID)
		if categoryID != nil {
			if _, err := uuid.Parse(*categoryID); err != nil {
				return nil, domain.NewValidationError("categoryId", "debe ser un uuid")
			}
		}
		if err := uc.checkCategory(ctx, scope, categoryID); err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if in.Name != nil {
		key := textkey.Key(*in.Name)
		if key != product.NameKey {
			if err := checkUnique(ctx, uc.repo, scope, "name", key, product.ID); err != nil {
				return nil, err
			}
		}
		product.Name, product.NameKey = *in.Name, key
	}
	if in.SKU != nil {
		key := textkey.Key(*in.SKU)
		if key != product.SKUKey {
			if err := checkUnique(ctx, uc.repo, scope, "sku", key, product.ID); err != nil {
				return nil, err
			}
		}
		product.SKU, product.SKUKey = *in.SKU, key
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		price, err := validPrice(in.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, scope, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos del scope.
func (uc *ProductUseCase) List(ctx context.Context, scope access.Scope, filter repository.ProductFilter) (*dto.Page[dto.ProductResponse], error) {
	filter.Normalize()
	list, total, err := uc.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ProductResponse]{
		Items:      dto.MapSlice(list, dto.ToProductResponse),
		Pagination: dto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// Delete elimina lógicamente un producto sin ventas completadas en turnos abiertos.
func (uc *ProductUseCase) Delete(ctx context.Context, scope access.Scope, id string) error {
	return uc.lifecycle.Delete(ctx, scope, access.ResourceProducts, id)
}

// Restore restaura un producto si su nombre y SKU siguen libres.
func (uc *ProductUseCase) Restore(ctx context.Context, scope access.Scope, id string) (*dto.ProductResponse, error) {
	if err := uc.lifecycle.Restore(ctx, scope, access.ResourceProducts, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, scope, id)
}

// ToggleActive activa o desactiva un producto.
func (uc *ProductUseCase) ToggleActive(ctx context.Context, scope access.Scope, id string) (*dto.ProductResponse, error) {
	if _, err := uc.lifecycle.ToggleActive(ctx, scope, access.ResourceProducts, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, scope, id)
}

func (uc *ProductUseCase) get(ctx context.Context, scope access.Scope, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, scope access.Scope, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	category, err := uc.categories.GetByID(ctx, scope, *categoryID)
	if err != nil {
		return err
	}
	if category == nil || category.IsDeleted() {
		return domain.ErrNotFound
	}
	return nil
}

func validPrice(p *decimal.Decimal) (decimal.Decimal, error) {
	if p == nil {
		return decimal.Zero, domain.NewValidationError("price", "obligatorio")
	}
	if p.IsNegative() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return ledger.Round(*p), nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
