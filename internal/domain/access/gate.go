package access

import (
	"slices"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
)

// Gate predicado de autorización: sin I/O, sin estado mutable.
type Gate struct {
	policy Policy
}

// NewGate construye el gate sobre una política. nil usa DefaultPolicy.
func NewGate(policy Policy) *Gate {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Gate{policy: policy}
}

// Authorize devuelve nil si el rol del principal está admitido para (recurso, acción),
// domain.ErrForbidden en caso contrario.
func (g *Gate) Authorize(p Principal, resource Resource, action Action) error {
	rule, ok := g.policy[Permission{Resource: resource, Action: action}]
	if !ok {
		return domain.ErrForbidden
	}
	if p.IsOperator() && rule.Administrative {
		return nil
	}
	if slices.Contains(rule.Roles, p.Role) {
		return nil
	}
	return domain.ErrForbidden
}

// Allowed atajo booleano de Authorize.
func (g *Gate) Allowed(p Principal, resource Resource, action Action) bool {
	return g.Authorize(p, resource, action) == nil
}
