package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/pkg/jwt"
)

// Locals keys. Solo transportan el principal y el scope del middleware al handler;
// los casos de uso los reciben como parámetros.
const (
	localPrincipal = "principal"
	localClaims    = "claims"
	localScope     = "scope"
	localTenant    = "tenant"
)

// GetPrincipal devuelve el principal autenticado (después de AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) (access.Principal, bool) {
	p, ok := c.Locals(localPrincipal).(access.Principal)
	return p, ok
}

// GetClaims devuelve los claims del token de la petición.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(localClaims).(*jwt.Claims)
	return claims
}

// GetScope devuelve el scope resuelto (después de ResolveTenant). Sin resolver es el valor cero, inválido.
func GetScope(c *fiber.Ctx) access.Scope {
	scope, _ := c.Locals(localScope).(access.Scope)
	return scope
}

// GetTenant devuelve el negocio resuelto; nil para operadores.
func GetTenant(c *fiber.Ctx) *entity.Tenant {
	tenant, _ := c.Locals(localTenant).(*entity.Tenant)
	return tenant
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
