package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type JWTConfig struct {
	Secret string
}

// RequireStaffJWT guards the shop API. It stores the acting employee's
// id, name and role in locals for the handlers.
func RequireStaffJWT(cfg JWTConfig) fiber.Handler {
	secret := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token signing method")
			}
			return secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token claims")
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals("employee_id", sub)
		}
		if name, _ := claims["name"].(string); name != "" {
			c.Locals("employee_name", name)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Locals("employee_role", role)
		}

		return c.Next()
	}
}

// EmployeeID reads the acting employee from locals.
func EmployeeID(c *fiber.Ctx) string {
	id, _ := c.Locals("employee_id").(string)
	return id
}

// IsAdmin reports whether the acting employee has the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("employee_role").(string)
	return role == "admin"
}
