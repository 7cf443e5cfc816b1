package middleware

import (
	"uniportal/database"
	"uniportal/models"
	"uniportal/permissions"

	"github.com/gofiber/fiber/v2"
)

// RequirePermission returns a middleware that checks the actor's
// granted capability codes against the requirement. ADMIN users
// bypass the check entirely.
func RequirePermission(req permissions.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		var codes []string
		if err := database.Database.Db.Model(&models.Permission{}).
			Where("user_id = ? AND is_deleted = false", userID).
			Pluck("permission", &codes).Error; err != nil {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		if !permissions.Authorize(permissions.NewSet(codes...), user.IsSystemRole(), req) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		c.Locals("userRole", user.Role)
		return c.Next()
	}
}
