package semesterValidator

import (
	"strings"
	"time"

	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateSemester() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code      string    `json:"code"`
			Name      string    `json:"name"`
			StartDate time.Time `json:"start_date"`
			EndDate   time.Time `json:"end_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		if reqData.Code == "" {
			errors["code"] = "Semester code is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Semester name is required!"
		}
		if !reqData.StartDate.IsZero() && !reqData.EndDate.IsZero() && !reqData.EndDate.After(reqData.StartDate) {
			errors["end_date"] = "End date must be after start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSemester", reqData)
		return c.Next()
	}
}
