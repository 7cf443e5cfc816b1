package semesterRoutes

import (
	controllers "uniportal/controllers/semester"
	"uniportal/middleware"
	"uniportal/permissions"
	validators "uniportal/validators/semester"

	"github.com/gofiber/fiber/v2"
)

func SetupSemesterRoutes(app *fiber.App) {
	semesterGroup := app.Group("/semester")

	manage := middleware.RequirePermission(permissions.Single("semester.manage"))

	semesterGroup.Get("/list", middleware.JWTMiddleware, controllers.ListSemesters)
	semesterGroup.Get("/current", middleware.JWTMiddleware, controllers.GetCurrentSemester)

	semesterGroup.Post("/create", middleware.JWTMiddleware, manage, validators.CreateSemester(), controllers.CreateSemester)
	semesterGroup.Post("/:id/activate", middleware.JWTMiddleware, manage, controllers.ActivateSemester)
	semesterGroup.Post("/:id/deactivate", middleware.JWTMiddleware, manage, controllers.DeactivateSemester)
	semesterGroup.Delete("/:id", middleware.JWTMiddleware, manage, controllers.DeleteSemester)
}
