package courseRoutes

import (
	controllers "uniportal/controllers/course"
	"uniportal/middleware"
	"uniportal/permissions"
	validators "uniportal/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.ListCourses)
	courseGroup.Post("/create",
		middleware.JWTMiddleware,
		middleware.RequirePermission(permissions.Single("course.manage")),
		validators.CreateCourse(), controllers.CreateCourse)
}
