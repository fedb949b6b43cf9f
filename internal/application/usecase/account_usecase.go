package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/lifecycle"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

// AccountUseCase gestión de las cuentas del personal de un negocio.
type AccountUseCase struct {
	repo      repository.AccountRepository
	tenants   repository.TenantRepository
	lifecycle *lifecycle.Manager
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.AccountRepository, tenants repository.TenantRepository, lc *lifecycle.Manager) *AccountUseCase {
	return &AccountUseCase{repo: repo, tenants: tenants, lifecycle: lc}
}

// Create da de alta una cuenta en el negocio del scope. Un operador (Unscoped) debe indicar TenantID.
func (uc *AccountUseCase) Create(ctx context.Context, scope access.Scope, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	scope, err := uc.targetScope(ctx, scope, in.TenantID)
	if err != nil {
		return nil, err
	}
	tenantID, _ := scope.TenantID()

	role := entity.Role(in.Role)
	if !role.Valid() || role == entity.RoleOperator {
		return nil, domain.NewValidationError("role", "rol no permitido")
	}
	emailKey := textkey.Key(in.Email)
	if err := checkUnique(ctx, uc.repo, scope, "email", emailKey, ""); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	account := &entity.Account{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Email:        in.Email,
		EmailKey:     emailKey,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Lifecycle:    entity.NewLifecycle(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// targetScope el operador provisiona dentro de un negocio explícito que debe existir.
func (uc *AccountUseCase) targetScope(ctx context.Context, scope access.Scope, tenantID string) (access.Scope, error) {
	if !scope.IsUnscoped() {
		return scope, nil
	}
	if tenantID == "" {
		return access.Scope{}, domain.NewValidationError("tenantId", "obligatorio para operadores")
	}
	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return access.Scope{}, err
	}
	if tenant == nil {
		return access.Scope{}, domain.ErrTenantNotFound
	}
	return scope.Narrow(tenant.ID), nil
}

// GetByID obtiene una cuenta del scope (también eliminadas).
func (uc *AccountUseCase) GetByID(ctx context.Context, scope access.Scope, id string) (*dto.AccountResponse, error) {
	account, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// Update cambia datos de una cuenta viva. El email sigue siendo único dentro del negocio.
func (uc *AccountUseCase) Update(ctx context.Context, scope access.Scope, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if account.IsDeleted() {
		return nil, domain.ErrEntityDeleted
	}
	if in.Email != nil {
		key := textkey.Key(*in.Email)
		if key != account.EmailKey {
			if err := checkUnique(ctx, uc.repo, ownerScope(account), "email", key, account.ID); err != nil {
				return nil, err
			}
		}
		account.Email, account.EmailKey = *in.Email, key
	}
	if in.Name != nil {
		account.Name = *in.Name
	}
	if in.Role != nil {
		role := entity.Role(*in.Role)
		if !role.Valid() || role == entity.RoleOperator || account.Role == entity.RoleOperator {
			return nil, domain.NewValidationError("role", "rol no permitido")
		}
		account.Role = role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}
	account.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, scope, account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// List lista cuentas del scope; nunca incluye operadores.
func (uc *AccountUseCase) List(ctx context.Context, scope access.Scope, filter repository.ListFilter) (*dto.Page[dto.AccountResponse], error) {
	filter.Normalize()
	list, total, err := uc.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.AccountResponse]{
		Items:      dto.MapSlice(list, dto.ToAccountResponse),
		Pagination: dto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// Delete elimina lógicamente una cuenta sin turnos abiertos. Nadie se elimina a sí mismo.
func (uc *AccountUseCase) Delete(ctx context.Context, scope access.Scope, p access.Principal, id string) error {
	if id == p.AccountID {
		return domain.ErrSelfAction
	}
	return uc.lifecycle.Delete(ctx, scope, access.ResourceAccounts, id)
}

// Restore restaura una cuenta eliminada si su email sigue libre.
func (uc *AccountUseCase) Restore(ctx context.Context, scope access.Scope, id string) (*dto.AccountResponse, error) {
	if err := uc.lifecycle.Restore(ctx, scope, access.ResourceAccounts, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, scope, id)
}

// ToggleActive activa o desactiva una cuenta. Nadie se desactiva a sí mismo.
func (uc *AccountUseCase) ToggleActive(ctx context.Context, scope access.Scope, p access.Principal, id string) (*dto.AccountResponse, error) {
	if id == p.AccountID {
		return nil, domain.ErrSelfAction
	}
	if _, err := uc.lifecycle.ToggleActive(ctx, scope, access.ResourceAccounts, id); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, scope, id)
}

func (uc *AccountUseCase) get(ctx context.Context, scope access.Scope, id string) (*entity.Account, error) {
	account, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

// ownerScope scope donde vive la cuenta: los operadores no tienen negocio.
func ownerScope(a *entity.Account) access.Scope {
	if a.TenantID == "" {
		return access.Unscoped()
	}
	return access.Scoped(a.TenantID)
}
