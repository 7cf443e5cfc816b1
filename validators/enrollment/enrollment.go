package enrollmentValidator

import (
	"strings"

	"uniportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Offering() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint   `json:"course_id"`
			SemesterID  uint   `json:"semester_id"`
			Section     string `json:"section"`
			TeacherID   uint   `json:"teacher_id"`
			MaxStudents int    `json:"max_students"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course is required!"
		}
		if reqData.SemesterID == 0 {
			errors["semester_id"] = "Semester is required!"
		}
		reqData.Section = strings.ToUpper(strings.TrimSpace(reqData.Section))
		if reqData.Section == "" {
			errors["section"] = "Section is required!"
		}
		if reqData.MaxStudents <= 0 {
			reqData.MaxStudents = 30
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOffering", reqData)
		return c.Next()
	}
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OfferingID uint `json:"offering_id"`
			StudentID  uint `json:"student_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.OfferingID == 0 {
			errors["offering_id"] = "Offering is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

func BulkEnroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OfferingID uint   `json:"offering_id"`
			StudentIDs []uint `json:"student_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.OfferingID == 0 {
			errors["offering_id"] = "Offering is required!"
		}
		if len(reqData.StudentIDs) == 0 {
			errors["student_ids"] = "At least one student is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkEnroll", reqData)
		return c.Next()
	}
}
