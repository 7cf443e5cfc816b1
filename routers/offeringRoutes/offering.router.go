package offeringRoutes

import (
	controllers "uniportal/controllers/enrollment"
	"uniportal/middleware"
	"uniportal/permissions"
	validators "uniportal/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupOfferingRoutes(app *fiber.App) {
	offeringGroup := app.Group("/offering")

	manage := middleware.RequirePermission(permissions.Any("offering.manage", "enrollment.manage"))

	offeringGroup.Get("/list", middleware.JWTMiddleware, controllers.ListOfferings)
	offeringGroup.Get("/:id/capacity", middleware.JWTMiddleware, controllers.GetCapacity)

	offeringGroup.Post("/create", middleware.JWTMiddleware, manage, validators.Offering(), controllers.CreateOffering)
	offeringGroup.Put("/:id", middleware.JWTMiddleware, manage, validators.Offering(), controllers.UpdateOffering)
	offeringGroup.Delete("/:id", middleware.JWTMiddleware, manage, controllers.DeleteOffering)

	// Enrollment
	enrollGroup := app.Group("/enrollment")
	enrollGroup.Post("/enroll", middleware.JWTMiddleware, validators.Enroll(), controllers.Enroll)
	enrollGroup.Post("/manage/enroll",
		middleware.JWTMiddleware,
		middleware.RequirePermission(permissions.Single("enrollment.manage")),
		validators.Enroll(), controllers.Enroll)
	enrollGroup.Post("/bulk",
		middleware.JWTMiddleware,
		middleware.RequirePermission(permissions.Single("enrollment.manage")),
		validators.BulkEnroll(), controllers.BulkEnroll)
	enrollGroup.Delete("/offering/:id", middleware.JWTMiddleware, controllers.Drop)
	enrollGroup.Get("/my", middleware.JWTMiddleware, controllers.MyEnrollments)
}
