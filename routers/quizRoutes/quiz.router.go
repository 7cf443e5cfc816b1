package quizRoutes

import (
	controllers "uniportal/controllers/quiz"
	"uniportal/middleware"
	"uniportal/permissions"
	validators "uniportal/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz management, taking and grading routes
func SetupQuizRoutes(app *fiber.App) {
	manage := middleware.RequirePermission(permissions.Single("quiz.manage"))
	grade := middleware.RequirePermission(permissions.Any("quiz.grade", "quiz.manage"))

	// Quiz management
	adminGroup := app.Group("/admin/quiz")
	adminGroup.Post("/create", middleware.JWTMiddleware, manage, validators.Quiz(), controllers.CreateQuiz)
	adminGroup.Put("/:id", middleware.JWTMiddleware, manage, validators.Quiz(), controllers.UpdateQuiz)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, manage, controllers.DeleteQuiz)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, manage, controllers.PublishQuiz)
	adminGroup.Post("/:id/close", middleware.JWTMiddleware, manage, controllers.CloseQuiz)

	// Question management
	adminGroup.Post("/:id/question", middleware.JWTMiddleware, manage, validators.Question(), controllers.AddQuestion)
	adminGroup.Put("/question/:questionId", middleware.JWTMiddleware, manage, validators.Question(), controllers.UpdateQuestion)
	adminGroup.Delete("/question/:questionId", middleware.JWTMiddleware, manage, controllers.DeleteQuestion)
	adminGroup.Get("/:id", middleware.JWTMiddleware, manage, controllers.GetQuiz)

	// Student-facing quiz routes
	quizGroup := app.Group("/quiz")
	quizGroup.Get("/list", middleware.JWTMiddleware, controllers.ListQuizzes)
	quizGroup.Post("/:id/attempt", middleware.JWTMiddleware, controllers.StartAttempt)

	attemptGroup := app.Group("/attempt")
	attemptGroup.Get("/:attemptId", middleware.JWTMiddleware, controllers.GetAttemptForTaking)
	attemptGroup.Post("/:attemptId/answer", middleware.JWTMiddleware, validators.Answer(), controllers.SubmitAnswer)
	attemptGroup.Post("/:attemptId/submit", middleware.JWTMiddleware, controllers.FinalizeAttempt)
	attemptGroup.Get("/:attemptId/results", middleware.JWTMiddleware, controllers.GetResults)

	// Grading
	gradingGroup := app.Group("/grading/attempt")
	gradingGroup.Get("/:attemptId/pending", middleware.JWTMiddleware, grade, controllers.PendingGrading)
	gradingGroup.Post("/:attemptId/ai-suggest", middleware.JWTMiddleware, grade, controllers.SuggestAIGrades)
	gradingGroup.Post("/:attemptId/grade", middleware.JWTMiddleware, grade, validators.Grade(), controllers.ApplyGrade)
}
