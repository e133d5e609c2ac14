package middleware

import (
	"errors"
	"strings"

	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/config"
	"hostelhub/internal/core/domain"
	"hostelhub/internal/pkg/jwt"
	"hostelhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware creates authentication middleware. A valid token is
// not enough on its own: the account behind it must still exist and
// be active.
func AuthMiddleware(cfg *config.Config, users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Check the account is still live. Tokens issued before a
		// deactivation would otherwise keep working until they expire.
		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.Unauthorized(c, "User no longer exists")
			}
			return response.InternalServerError(c, "Could not verify account")
		}
		if !user.IsActive {
			return response.Unauthorized(c, "Account is deactivated")
		}

		// 6. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("name", claims.Name)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("admin")
}

// StaffOnly middleware allows warden or admin roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware("warden", "admin")
}

// GetActor extracts the authenticated principal from the request
// context. Handlers call this after AuthMiddleware has run.
func GetActor(c *fiber.Ctx) domain.Actor {
	actor := domain.Actor{}
	if id, ok := c.Locals("userID").(uint); ok {
		actor.ID = id
	}
	if email, ok := c.Locals("email").(string); ok {
		actor.Email = email
	}
	if name, ok := c.Locals("name").(string); ok {
		actor.Name = name
	}
	if role, ok := c.Locals("role").(string); ok {
		actor.Role = domain.Role(role)
	}
	return actor
}
