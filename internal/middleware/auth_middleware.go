package middleware

import (
	"strings"

	"github.com/narendrababuts/AutoShopPro/internal/repository"
	"github.com/narendrababuts/AutoShopPro/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireAuth validates the JWT and resolves the caller's garage. The garage
// id lands in Locals; handlers pass it into services explicitly so no
// operation ever runs without a tenant.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is deactivated"})
		}

		// The DB row wins over a stale claim if the user moved garages.
		c.Locals("user_id", user.ID.String())
		c.Locals("user_name", user.FullName)
		c.Locals("user_email", user.Email)
		c.Locals("garage_id", user.GarageID)

		return c.Next()
	}
}

// GarageID extracts the tenant resolved by RequireAuth. uuid.Nil means the
// request carried no usable tenant and services will refuse to operate.
func GarageID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("garage_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
