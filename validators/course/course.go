package courseValidator

import (
	"strings"

	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code        string `json:"code"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Credits     int    `json:"credits"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		if reqData.Code == "" {
			errors["code"] = "Course code is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Course title is required!"
		}
		if reqData.Credits <= 0 {
			reqData.Credits = 3
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
