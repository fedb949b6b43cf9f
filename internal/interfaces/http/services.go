package http

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/jwt"
)

// Contratos que los handlers necesitan de la capa de aplicación.
// Los implementan auth.AuthUseCase, usecase.*UseCase, shift.Ledger y shift.Journal.

type sessionService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, p access.Principal) (*dto.SessionResponse, error)
}

type tenantService interface {
	Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TenantResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	ToggleActive(ctx context.Context, id string) (*dto.TenantResponse, error)
	List(ctx context.Context, filter repository.ListFilter) (*dto.Page[dto.TenantResponse], error)
}

type accountService interface {
	Create(ctx context.Context, scope access.Scope, in dto.CreateAccountRequest) (*dto.AccountResponse, error)
	GetByID(ctx context.Context, scope access.Scope, id string) (*dto.AccountResponse, error)
	Update(ctx context.Context, scope access.Scope, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	List(ctx context.Context, scope access.Scope, filter repository.ListFilter) (*dto.Page[dto.AccountResponse], error)
	Delete(ctx context.Context, scope access.Scope, p access.Principal, id string) error
	Restore(ctx context.Context, scope access.Scope, id string) (*dto.AccountResponse, error)
	ToggleActive(ctx context.Context, scope access.Scope, p access.Principal, id string) (*dto.AccountResponse, error)
}

type categoryService interface {
	Create(ctx context.Context, scope access.Scope, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, scope access.Scope, id string) (*dto.CategoryResponse, error)
	Update(ctx context.Context, scope access.Scope, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context, scope access.Scope, filter repository.ListFilter) (*dto.Page[dto.CategoryResponse], error)
	Delete(ctx context.Context, scope access.Scope, id string) error
	Restore(ctx context.Context, scope access.Scope, id string) (*dto.CategoryResponse, error)
	ToggleActive(ctx context.Context, scope access.Scope, id string) (*dto.CategoryResponse, error)
}

type productService interface {
	Create(ctx context.Context, scope access.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, scope access.Scope, id string) (*dto.ProductResponse, error)
	Update(ctx context.Context, scope access.Scope, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, scope access.Scope, filter repository.ProductFilter) (*dto.Page[dto.ProductResponse], error)
	Delete(ctx context.Context, scope access.Scope, id string) error
	Restore(ctx context.Context, scope access.Scope, id string) (*dto.ProductResponse, error)
	ToggleActive(ctx context.Context, scope access.Scope, id string) (*dto.ProductResponse, error)
}

type shiftService interface {
	Open(ctx context.Context, scope access.Scope, p access.Principal, in dto.OpenShiftRequest) (*dto.ShiftResponse, error)
	Close(ctx context.Context, scope access.Scope, p access.Principal, shiftID string, in dto.CloseShiftRequest) (*dto.CloseShiftResponse, error)
	Current(ctx context.Context, scope access.Scope, p access.Principal) (*dto.ShiftResponse, error)
	Get(ctx context.Context, scope access.Scope, p access.Principal, shiftID string) (*dto.ShiftDetailResponse, error)
	List(ctx context.Context, scope access.Scope, p access.Principal, filter repository.ShiftFilter) (*dto.Page[dto.ShiftResponse], error)
}

type saleService interface {
	Record(ctx context.Context, scope access.Scope, p access.Principal, in dto.CreateSaleRequest) (*dto.SaleResponse, error)
	ListByShift(ctx context.Context, scope access.Scope, p access.Principal, shiftID string) ([]dto.SaleResponse, error)
	Void(ctx context.Context, scope access.Scope, saleID string) (*dto.SaleResponse, error)
}
