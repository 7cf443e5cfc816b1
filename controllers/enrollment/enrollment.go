package enrollmentController

import (
	"errors"
	"log"

	"uniportal/database"
	"uniportal/middleware"
	"uniportal/models"
	enrollmentService "uniportal/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

var service *enrollmentService.Service

// Init wires the controller to the shared enrollment service
func Init(svc *enrollmentService.Service) {
	service = svc
}

func offeringErrorResponse(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, enrollmentService.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Offering not found!", nil)
	case errors.Is(err, enrollmentService.ErrDuplicateOffering):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An offering already exists for this course, semester and section!", nil)
	case errors.Is(err, enrollmentService.ErrHasEnrollments):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Offering has active enrollments!", nil)
	default:
		log.Printf("Error during %s: %v", action, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to "+action+"!", nil)
	}
}

// CreateOffering schedules a course section for a semester
func CreateOffering(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOffering").(*struct {
		CourseID    uint   `json:"course_id"`
		SemesterID  uint   `json:"semester_id"`
		Section     string `json:"section"`
		TeacherID   uint   `json:"teacher_id"`
		MaxStudents int    `json:"max_students"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offering, err := service.CreateOffering(enrollmentService.OfferingInput{
		CourseID:    reqData.CourseID,
		SemesterID:  reqData.SemesterID,
		Section:     reqData.Section,
		TeacherID:   reqData.TeacherID,
		MaxStudents: reqData.MaxStudents,
	})
	if err != nil {
		return offeringErrorResponse(c, err, "create offering")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Offering created successfully!", offering)
}

// UpdateOffering edits an offering; its code follows identity changes
func UpdateOffering(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid offering id!", nil)
	}

	reqData, ok := c.Locals("validatedOffering").(*struct {
		CourseID    uint   `json:"course_id"`
		SemesterID  uint   `json:"semester_id"`
		Section     string `json:"section"`
		TeacherID   uint   `json:"teacher_id"`
		MaxStudents int    `json:"max_students"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offering, err := service.UpdateOffering(uint(id), enrollmentService.OfferingInput{
		CourseID:    reqData.CourseID,
		SemesterID:  reqData.SemesterID,
		Section:     reqData.Section,
		TeacherID:   reqData.TeacherID,
		MaxStudents: reqData.MaxStudents,
	})
	if err != nil {
		return offeringErrorResponse(c, err, "update offering")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offering updated successfully!", offering)
}

// DeleteOffering removes an offering with no active enrollments
func DeleteOffering(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid offering id!", nil)
	}

	if err := service.DeleteOffering(uint(id)); err != nil {
		return offeringErrorResponse(c, err, "delete offering")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offering deleted successfully!", nil)
}

// ListOfferings returns offerings with course and semester preloaded
func ListOfferings(c *fiber.Ctx) error {
	var offerings []models.Offering
	query := database.Database.Db.Where("is_deleted = ?", false).
		Preload("Course").Preload("Semester")

	if semesterID := c.QueryInt("semester_id"); semesterID > 0 {
		query = query.Where("semester_id = ?", semesterID)
	}

	if err := query.Order("code asc").Find(&offerings).Error; err != nil {
		log.Printf("Error listing offerings: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch offerings!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offerings fetched successfully!", offerings)
}

// GetCapacity reports seats used and remaining on an offering
func GetCapacity(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid offering id!", nil)
	}

	status, err := service.CanEnroll(uint(id))
	if err != nil {
		if errors.Is(err, enrollmentService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Offering not found!", nil)
		}
		log.Printf("Error checking capacity: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check capacity!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Capacity fetched successfully!", status)
}

// Enroll grants one seat to a student
func Enroll(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnroll").(*struct {
		OfferingID uint `json:"offering_id"`
		StudentID  uint `json:"student_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Enrolling someone else requires a staff role; everyone else
	// enrolls themselves no matter what the body says
	studentID, _ := c.Locals("userId").(uint)
	if role, _ := c.Locals("userRole").(string); reqData.StudentID != 0 && (role == "TEACHER" || role == "ADMIN") {
		studentID = reqData.StudentID
	}

	enrollment, err := service.Enroll(reqData.OfferingID, studentID)
	if err != nil {
		switch {
		case errors.Is(err, enrollmentService.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Offering not found!", nil)
		case errors.Is(err, enrollmentService.ErrCapacityExceeded):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Offering is at capacity!", nil)
		case errors.Is(err, enrollmentService.ErrDuplicateEnrollment):
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student is already enrolled!", nil)
		case errors.Is(err, enrollmentService.ErrStudentInactive):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student account is not active!", nil)
		default:
			log.Printf("Error enrolling student: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll student!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// BulkEnroll grants seats to a roster in input order until capacity
func BulkEnroll(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBulkEnroll").(*struct {
		OfferingID uint   `json:"offering_id"`
		StudentIDs []uint `json:"student_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := service.BulkEnroll(reqData.OfferingID, reqData.StudentIDs)
	if err != nil {
		if errors.Is(err, enrollmentService.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Offering not found!", nil)
		}
		log.Printf("Error bulk enrolling: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to bulk enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk enrollment processed!", result)
}

// Drop releases the calling student's seat
func Drop(c *fiber.Ctx) error {
	offeringID, err := c.ParamsInt("id")
	if err != nil || offeringID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid offering id!", nil)
	}

	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := service.Drop(uint(offeringID), studentID); err != nil {
		if errors.Is(err, enrollmentService.ErrNotEnrolled) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this offering!", nil)
		}
		log.Printf("Error dropping enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to drop enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dropped successfully!", nil)
}

// MyEnrollments lists the calling student's active enrollments
func MyEnrollments(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.
		Where("student_id = ? AND dropped_at IS NULL AND is_deleted = ?", studentID, false).
		Find(&enrollments).Error; err != nil {
		log.Printf("Error listing enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
