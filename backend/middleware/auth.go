package middleware

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/config"
	"senya/backend/models"
	"senya/backend/utils"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token once and stores the caller for
// the rest of the chain.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := utils.ExtractPrincipalFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, err.Error())
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireRole lets the request through only when the authenticated caller
// holds one of roles. Must run after AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		// Доступ только для перечисленных ролей
		return utils.Forbidden(c, "Forbidden - insufficient role")
	}
}

// PrincipalFrom returns the caller stored by AuthMiddleware.
func PrincipalFrom(c *fiber.Ctx) (utils.Principal, bool) {
	principal, ok := c.Locals(principalKey).(utils.Principal)
	return principal, ok
}
