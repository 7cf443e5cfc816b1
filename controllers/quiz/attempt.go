package quizController

import (
	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

// StartAttempt starts or resumes the calling student's attempt
func StartAttempt(c *fiber.Ctx) error {
	quizID, err := c.ParamsInt("id")
	if err != nil || quizID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attempt, err := attemptService.StartOrResume(studentID, uint(quizID))
	if err != nil {
		return quizErrorResponse(c, err, "start attempt")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt ready!", attempt)
}

// GetAttemptForTaking returns the sanitized taking view
func GetAttemptForTaking(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	if resp := requireAttemptOwner(c, uint(attemptID)); resp != nil {
		return resp()
	}

	view, err := attemptService.GetForTaking(uint(attemptID))
	if err != nil {
		return quizErrorResponse(c, err, "fetch attempt")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", view)
}

// SubmitAnswer saves the student's answer to one question
func SubmitAnswer(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	reqData, ok := c.Locals("validatedAnswer").(*struct {
		QuestionID       uint   `json:"question_id"`
		SelectedOptionID *uint  `json:"selected_option_id"`
		TextAnswer       string `json:"text_answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if resp := requireAttemptOwner(c, uint(attemptID)); resp != nil {
		return resp()
	}

	answer, err := attemptService.SubmitAnswer(uint(attemptID), reqData.QuestionID, reqData.SelectedOptionID, reqData.TextAnswer)
	if err != nil {
		return quizErrorResponse(c, err, "save answer")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer saved!", answer)
}

// FinalizeAttempt submits the attempt for grading
func FinalizeAttempt(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	if resp := requireAttemptOwner(c, uint(attemptID)); resp != nil {
		return resp()
	}

	attempt, err := attemptService.Finalize(uint(attemptID))
	if err != nil {
		return quizErrorResponse(c, err, "submit attempt")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt submitted successfully!", attempt)
}

// GetResults returns the attempt outcome under the quiz's visibility
// policy
func GetResults(c *fiber.Ctx) error {
	attemptID, err := c.ParamsInt("attemptId")
	if err != nil || attemptID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	if resp := requireAttemptOwner(c, uint(attemptID)); resp != nil {
		return resp()
	}

	view, err := attemptService.Results(uint(attemptID))
	if err != nil {
		return quizErrorResponse(c, err, "fetch results")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", view)
}

// requireAttemptOwner rejects students touching attempts that are not
// theirs. Staff roles pass through so graders can view attempts.
func requireAttemptOwner(c *fiber.Ctx, attemptID uint) func() error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return func() error {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
	}

	if role, _ := c.Locals("userRole").(string); role == "TEACHER" || role == "ADMIN" {
		return nil
	}

	owner, err := attemptService.AttemptOwner(attemptID)
	if err != nil {
		return func() error {
			return quizErrorResponse(c, err, "fetch attempt")
		}
	}
	if owner != userID {
		return func() error {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This attempt belongs to another student!", nil)
		}
	}
	return nil
}
