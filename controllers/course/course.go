package courseController

import (
	"log"

	"uniportal/database"
	"uniportal/middleware"
	"uniportal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse adds a catalog entry
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Code        string `json:"code"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Credits     int    `json:"credits"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).
		First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists!", nil)
	}

	course := models.Course{
		Code:        reqData.Code,
		Title:       reqData.Title,
		Description: reqData.Description,
		Credits:     reqData.Credits,
	}
	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// ListCourses returns the catalog
func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("code asc").Find(&courses).Error; err != nil {
		log.Printf("Error listing courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}
