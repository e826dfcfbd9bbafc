package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pims/models"
	"pims/utils"
)

// WriteProtected guards mutating endpoints. Reads stay open, so a missing or
// invalid token on a write is answered with 403 permission_denied rather than
// a 401 challenge: the resource exists and is readable, the caller just lacks
// write rights.
//
// The token is taken from the Authorization header, falling back to the
// access_token cookie so browser sessions work without an API client.
func WriteProtected(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
					"Invalid authorization format", nil)
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies("access_token")
			if token == "" {
				return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
					"Write access requires authentication", nil)
			}
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
				"Invalid or expired token", nil)
		}
		if claims.TokenType != utils.TokenTypeAccess {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
				"Access token required", nil)
		}

		var principal models.Principal
		if err := db.First(&principal, claims.PrincipalID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
				"Unknown principal", nil)
		}
		if !principal.IsActive {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodePermission,
				"Account is not active", nil)
		}

		c.Locals("principal", &principal)
		return c.Next()
	}
}
