package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
)

// tenantFailureRecorder cuenta los rechazos de resolución (lo implementa *metrics.Metrics).
type tenantFailureRecorder interface {
	TenantResolutionFailed(reason string)
}

// ResolveTenant calcula el Scope de la petición una sola vez. Debe usarse DESPUÉS de AuthMiddleware.
// Un operador puede acotar a un negocio con ?tenant_id=.
func ResolveTenant(resolver *access.Resolver, failures tenantFailureRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return errMissingToken
		}
		scope, tenant, err := resolver.Resolve(c.UserContext(), p)
		if err != nil {
			if failures != nil {
				failures.TenantResolutionFailed(failureReason(err))
			}
			return err
		}
		if tenantID := c.Query("tenant_id"); tenantID != "" {
			if err := validate.Var(tenantID, "uuid"); err != nil {
				return domain.NewValidationError("tenant_id", "debe ser un uuid")
			}
			scope = scope.Narrow(tenantID)
		}
		c.Locals(localScope, scope)
		c.Locals(localTenant, tenant)
		return c.Next()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTenantMissing):
		return "missing"
	case errors.Is(err, domain.ErrTenantNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrTenantInactive):
		return "inactive"
	}
	return "error"
}

// RequireAccess consulta el gate para (recurso, acción). Debe usarse DESPUÉS de AuthMiddleware.
func RequireAccess(gate *access.Gate, resource access.Resource, action access.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return errMissingToken
		}
		if err := gate.Authorize(p, resource, action); err != nil {
			return err
		}
		return c.Next()
	}
}
