package notificationController

import (
	"log"

	"uniportal/middleware"
	notificationService "uniportal/services/notification"

	"github.com/gofiber/fiber/v2"
)

var service *notificationService.Service

// Init wires the controller to the shared notification service
func Init(svc *notificationService.Service) {
	service = svc
}

// ListNotifications returns the caller's notifications, newest first
func ListNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notifications, err := service.ListForUser(userID, c.QueryInt("limit"))
	if err != nil {
		log.Printf("Error listing notifications: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	if err := service.MarkRead(userID, uint(id)); err != nil {
		log.Printf("Error marking notification read: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification as read!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", nil)
}
