package quizController

import (
	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

// PendingGrading lists short answers still waiting for a grade
func PendingGrading(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	answers, err := attemptService.PendingShortAnswers(uint(attemptID))
	if err != nil {
		return quizErrorResponse(c, err, "fetch pending answers")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending answers fetched successfully!", answers)
}

// SuggestAIGrades runs the AI grader over ungraded short answers. The
// suggestions are advisory; grades are applied with ApplyGrade.
func SuggestAIGrades(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	suggested, err := attemptService.SuggestAIGrades(c.Context(), grader, uint(attemptID))
	if err != nil {
		// Partial progress survives: already-suggested answers keep
		// their suggestion and the run can be retried.
		return quizErrorResponse(c, err, "suggest grades")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "AI suggestions generated!", fiber.Map{
		"suggested": suggested,
	})
}

// ApplyGrade records the authoritative grade for one short answer
func ApplyGrade(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	reqData, ok := c.Locals("validatedGrade").(*struct {
		QuestionID uint    `json:"question_id"`
		Points     float64 `json:"points"`
		Feedback   string  `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	graderID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attempt, err := attemptService.ApplyGrade(uint(attemptID), reqData.QuestionID, reqData.Points, reqData.Feedback, graderID)
	if err != nil {
		return quizErrorResponse(c, err, "apply grade")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade applied successfully!", attempt)
}
