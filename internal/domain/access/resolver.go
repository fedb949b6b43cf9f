package access

import (
	"context"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

// TenantLookup contrato mínimo que necesita el resolver (lo implementa el repositorio de tenants).
type TenantLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
}

// Resolver determina el Scope de la petición a partir del principal.
type Resolver struct {
	tenants TenantLookup
}

// NewResolver construye el resolver.
func NewResolver(tenants TenantLookup) *Resolver {
	return &Resolver{tenants: tenants}
}

// Resolve devuelve Unscoped para operadores. Para el resto hace exactamente una
// consulta del negocio y falla con ErrTenantMissing, ErrTenantNotFound o ErrTenantInactive.
// El tenant devuelto es nil para operadores.
func (r *Resolver) Resolve(ctx context.Context, p Principal) (Scope, *entity.Tenant, error) {
	if p.IsOperator() {
		return Unscoped(), nil, nil
	}
	if p.TenantID == "" {
		return Scope{}, nil, domain.ErrTenantMissing
	}
	tenant, err := r.tenants.GetByID(ctx, p.TenantID)
	if err != nil {
		return Scope{}, nil, err
	}
	if tenant == nil {
		return Scope{}, nil, domain.ErrTenantNotFound
	}
	if !tenant.IsActive {
		return Scope{}, nil, domain.ErrTenantInactive
	}
	return Scoped(tenant.ID), tenant, nil
}
