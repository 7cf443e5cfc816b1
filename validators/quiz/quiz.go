package quizValidator

import (
	"strings"

	quizController "uniportal/controllers/quiz"
	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Quiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(quizController.QuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.OfferingID == 0 {
			errors["offering_id"] = "Offering is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be greater than 0!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func Question() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(quizController.QuestionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}
		if reqData.Points <= 0 {
			errors["points"] = "Points must be greater than 0!"
		}
		// Per-type option rules are enforced by the question bank

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func Answer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID       uint   `json:"question_id"`
			SelectedOptionID *uint  `json:"selected_option_id"`
			TextAnswer       string `json:"text_answer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionID == 0 {
			errors["question_id"] = "Question is required!"
		}
		if reqData.SelectedOptionID == nil && strings.TrimSpace(reqData.TextAnswer) == "" {
			errors["answer"] = "An option or answer text is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}

func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID uint    `json:"question_id"`
			Points     float64 `json:"points"`
			Feedback   string  `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.QuestionID == 0 {
			errors["question_id"] = "Question is required!"
		}
		if reqData.Points < 0 {
			errors["points"] = "Points cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
