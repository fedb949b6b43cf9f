package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
)

type stubTenants struct {
	tenants map[string]*entity.Tenant
	calls   int
	err     error
}

func (s *stubTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tenants[id], nil
}

func newStub() *stubTenants {
	return &stubTenants{tenants: map[string]*entity.Tenant{
		"t-activo":   {ID: "t-activo", IsActive: true},
		"t-inactivo": {ID: "t-inactivo", IsActive: false},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolver
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_OperadorSinAlcance(t *testing.T) {
	stub := newStub()
	scope, tenant, err := access.NewResolver(stub).Resolve(context.Background(),
		access.Principal{AccountID: "op", Role: entity.RoleOperator})

	require.NoError(t, err)
	assert.True(t, scope.IsUnscoped())
	assert.Nil(t, tenant)
	assert.Zero(t, stub.calls, "el operador no consulta negocio")
}

func TestResolve_CajeroAcotado(t *testing.T) {
	stub := newStub()
	scope, tenant, err := access.NewResolver(stub).Resolve(context.Background(),
		access.Principal{AccountID: "c1", Role: entity.RoleCashier, TenantID: "t-activo"})

	require.NoError(t, err)
	id, ok := scope.TenantID()
	assert.True(t, ok)
	assert.Equal(t, "t-activo", id)
	assert.Equal(t, "t-activo", tenant.ID)
	assert.Equal(t, 1, stub.calls, "exactamente una consulta por petición")
}

func TestResolve_Errores(t *testing.T) {
	cases := []struct {
		name   string
		tenant string
		want   error
	}{
		{"sin negocio", "", domain.ErrTenantMissing},
		{"negocio inexistente", "t-x", domain.ErrTenantNotFound},
		{"negocio inactivo", "t-inactivo", domain.ErrTenantInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scope, _, err := access.NewResolver(newStub()).Resolve(context.Background(),
				access.Principal{AccountID: "u", Role: entity.RoleOwner, TenantID: tc.tenant})
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, scope.Valid(), "nunca se entrega un alcance parcial")
		})
	}
}

func TestResolve_FalloDeAlmacenamiento(t *testing.T) {
	stub := newStub()
	stub.err = errors.New("timeout")
	_, _, err := access.NewResolver(stub).Resolve(context.Background(),
		access.Principal{AccountID: "u", Role: entity.RoleOwner, TenantID: "t-activo"})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Scope
// ──────────────────────────────────────────────────────────────────────────────

func TestScope_ValorCeroInvalido(t *testing.T) {
	var s access.Scope
	assert.False(t, s.Valid())
	assert.False(t, s.Allows("t1"))
	assert.False(t, access.Scoped("").Valid())
}

func TestScope_Narrow(t *testing.T) {
	narrowed := access.Unscoped().Narrow("t1")
	id, ok := narrowed.TenantID()
	assert.True(t, ok)
	assert.Equal(t, "t1", id)

	// un scope acotado no se puede mover a otro negocio
	same := access.Scoped("t1").Narrow("t2")
	id, _ = same.TenantID()
	assert.Equal(t, "t1", id)

	assert.True(t, access.Unscoped().Narrow("").IsUnscoped())
}

func TestScope_Allows(t *testing.T) {
	assert.True(t, access.Unscoped().Allows("cualquiera"))
	assert.True(t, access.Scoped("t1").Allows("t1"))
	assert.False(t, access.Scoped("t1").Allows("t2"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gate
// ──────────────────────────────────────────────────────────────────────────────

func TestGate_DefaultPolicy(t *testing.T) {
	gate := access.NewGate(nil)
	op := access.Principal{Role: entity.RoleOperator}
	owner := access.Principal{Role: entity.RoleOwner, TenantID: "t"}
	sup := access.Principal{Role: entity.RoleSupervisor, TenantID: "t"}
	cashier := access.Principal{Role: entity.RoleCashier, TenantID: "t"}

	cases := []struct {
		name     string
		p        access.Principal
		resource access.Resource
		action   access.Action
		allowed  bool
	}{
		{"operador administra negocios", op, access.ResourceTenants, access.ActionCreate, true},
		{"dueño no administra negocios", owner, access.ResourceTenants, access.ActionRead, false},
		{"operador lista cuentas", op, access.ResourceAccounts, access.ActionRead, true},
		{"operador crea cuentas", op, access.ResourceAccounts, access.ActionCreate, true},
		{"operador no abre turnos", op, access.ResourceShifts, access.ActionOpen, false},
		{"operador no registra ventas", op, access.ResourceSales, access.ActionCreate, false},
		{"operador no crea productos", op, access.ResourceProducts, access.ActionCreate, false},
		{"operador observa productos", op, access.ResourceProducts, access.ActionRead, true},
		{"cajero lista cuentas de su negocio", cashier, access.ResourceAccounts, access.ActionRead, true},
		{"cajero no edita cuentas", cashier, access.ResourceAccounts, access.ActionUpdate, false},
		{"supervisor lista cuentas", sup, access.ResourceAccounts, access.ActionRead, true},
		{"supervisor no crea cuentas", sup, access.ResourceAccounts, access.ActionCreate, false},
		{"cajero abre turno", cashier, access.ResourceShifts, access.ActionOpen, true},
		{"cajero no anula ventas", cashier, access.ResourceSales, access.ActionVoid, false},
		{"supervisor elimina categorías", sup, access.ResourceCategories, access.ActionDelete, true},
		{"permiso desconocido", owner, access.Resource("x"), access.ActionRead, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.Authorize(tc.p, tc.resource, tc.action)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

func TestGate_PoliticaPersonalizada(t *testing.T) {
	policy := access.Policy{
		{Resource: access.ResourceSales, Action: access.ActionVoid}: {Roles: []entity.Role{entity.RoleCashier}},
	}
	gate := access.NewGate(policy)

	assert.True(t, gate.Allowed(access.Principal{Role: entity.RoleCashier}, access.ResourceSales, access.ActionVoid))
	assert.False(t, gate.Allowed(access.Principal{Role: entity.RoleOwner}, access.ResourceSales, access.ActionVoid))
	assert.False(t, gate.Allowed(access.Principal{Role: entity.RoleOperator}, access.ResourceSales, access.ActionVoid))
}
