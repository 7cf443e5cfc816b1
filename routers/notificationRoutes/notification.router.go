package notificationRoutes

import (
	controllers "uniportal/controllers/notification"
	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notification")

	notificationGroup.Get("/list", middleware.JWTMiddleware, controllers.ListNotifications)
	notificationGroup.Patch("/:id/read", middleware.JWTMiddleware, controllers.MarkNotificationRead)
}
