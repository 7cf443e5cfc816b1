package semesterController

import (
	"errors"
	"log"
	"time"

	"uniportal/database"
	"uniportal/middleware"
	"uniportal/models"
	semesterService "uniportal/services/semester"

	"github.com/gofiber/fiber/v2"
)

var service *semesterService.Service

// Init wires the controller to the shared semester service
func Init(svc *semesterService.Service) {
	service = svc
}

// CreateSemester registers a new semester
func CreateSemester(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSemester").(*struct {
		Code      string    `json:"code"`
		Name      string    `json:"name"`
		StartDate time.Time `json:"start_date"`
		EndDate   time.Time `json:"end_date"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).
		First(&models.Semester{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Semester code already exists!", nil)
	}

	sem := models.Semester{
		Code:      reqData.Code,
		Name:      reqData.Name,
		StartDate: reqData.StartDate,
		EndDate:   reqData.EndDate,
	}
	if err := db.Create(&sem).Error; err != nil {
		log.Printf("Error creating semester: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Semester created successfully!", sem)
}

// ListSemesters returns all semesters
func ListSemesters(c *fiber.Ctx) error {
	var semesters []models.Semester
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at desc").Find(&semesters).Error; err != nil {
		log.Printf("Error listing semesters: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch semesters!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semesters fetched successfully!", semesters)
}

// GetCurrentSemester returns the active semester, if any
func GetCurrentSemester(c *fiber.Ctx) error {
	sem, err := service.Current()
	if err != nil {
		if errors.Is(err, semesterService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No current semester is set!", nil)
		}
		log.Printf("Error fetching current semester: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch current semester!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Current semester fetched successfully!", sem)
}

// ActivateSemester makes a semester the single current one
func ActivateSemester(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester id!", nil)
	}

	sem, err := service.Activate(uint(id))
	if err != nil {
		if errors.Is(err, semesterService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		}
		log.Printf("Error activating semester: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to activate semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester activated successfully!", sem)
}

// DeactivateSemester clears the current flag without a replacement
func DeactivateSemester(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester id!", nil)
	}

	if err := service.Deactivate(uint(id)); err != nil {
		if errors.Is(err, semesterService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		}
		log.Printf("Error deactivating semester: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate semester!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester deactivated successfully!", nil)
}

// DeleteSemester soft-deletes a semester without offerings
func DeleteSemester(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid semester id!", nil)
	}

	if err := service.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, semesterService.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Semester not found!", nil)
		case errors.Is(err, semesterService.ErrIsCurrentSemester):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete the current semester!", nil)
		case errors.Is(err, semesterService.ErrHasOfferings):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Semester has offerings and cannot be deleted!", nil)
		default:
			log.Printf("Error deleting semester: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete semester!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Semester deleted successfully!", nil)
}
