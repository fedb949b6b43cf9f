package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/pkg/jwt"
)

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados por logout
// y deja el Principal en c.Locals.
func AuthMiddleware(jwtSecret string, revocations ports.RevocationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return errMissingToken
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errInvalidToken
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return errMissingToken
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return errInvalidToken
		}
		role := entity.Role(claims.Role)
		if claims.AccountID == "" || !role.Valid() {
			return errInvalidToken
		}
		if revocations != nil && claims.ID != "" {
			revoked, err := revocations.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return err
			}
			if revoked {
				return errTokenRevoked
			}
		}
		c.Locals(localClaims, claims)
		c.Locals(localPrincipal, access.Principal{
			AccountID: claims.AccountID,
			Role:      role,
			TenantID:  claims.TenantID,
		})
		return c.Next()
	}
}
