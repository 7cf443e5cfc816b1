package enrollment

import (
	"errors"

	"uniportal/models"
	"uniportal/utils"

	"gorm.io/gorm"
)

var (
	ErrDuplicateOffering = errors.New("offering already exists for this course, semester and section")
	ErrHasEnrollments    = errors.New("offering has active enrollments")
)

// OfferingInput is the offering shape accepted from callers
type OfferingInput struct {
	CourseID    uint
	SemesterID  uint
	Section     string
	TeacherID   uint
	MaxStudents int
}

// CreateOffering creates an offering with a generated unique code.
// The (course, semester, section) triple must be unique.
func (s *Service) CreateOffering(in OfferingInput) (*models.Offering, error) {
	var offering models.Offering

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Where("id = ? AND is_deleted = ?", in.CourseID, false).First(&course).Error; err != nil {
			return ErrNotFound
		}

		var sem models.Semester
		if err := tx.Where("id = ? AND is_deleted = ?", in.SemesterID, false).First(&sem).Error; err != nil {
			return ErrNotFound
		}

		var existing models.Offering
		if err := tx.Where("course_id = ? AND semester_id = ? AND section = ? AND is_deleted = false",
			in.CourseID, in.SemesterID, in.Section).First(&existing).Error; err == nil {
			return ErrDuplicateOffering
		}

		offering = models.Offering{
			CourseID:    in.CourseID,
			SemesterID:  in.SemesterID,
			Section:     in.Section,
			Code:        utils.OfferingCode(course.Code, sem.Code, in.Section),
			TeacherID:   in.TeacherID,
			MaxStudents: in.MaxStudents,
		}
		return tx.Create(&offering).Error
	})
	if err != nil {
		return nil, err
	}

	return &offering, nil
}

// UpdateOffering applies changes and regenerates the code whenever
// course, semester or section changed.
func (s *Service) UpdateOffering(id uint, in OfferingInput) (*models.Offering, error) {
	var offering models.Offering

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&offering).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		identityChanged := offering.CourseID != in.CourseID ||
			offering.SemesterID != in.SemesterID ||
			offering.Section != in.Section

		if identityChanged {
			var existing models.Offering
			if err := tx.Where("course_id = ? AND semester_id = ? AND section = ? AND id <> ? AND is_deleted = false",
				in.CourseID, in.SemesterID, in.Section, id).First(&existing).Error; err == nil {
				return ErrDuplicateOffering
			}
		}

		offering.CourseID = in.CourseID
		offering.SemesterID = in.SemesterID
		offering.Section = in.Section
		offering.TeacherID = in.TeacherID
		offering.MaxStudents = in.MaxStudents

		if identityChanged {
			var course models.Course
			if err := tx.Where("id = ? AND is_deleted = ?", in.CourseID, false).First(&course).Error; err != nil {
				return ErrNotFound
			}
			var sem models.Semester
			if err := tx.Where("id = ? AND is_deleted = ?", in.SemesterID, false).First(&sem).Error; err != nil {
				return ErrNotFound
			}
			offering.Code = utils.OfferingCode(course.Code, sem.Code, in.Section)
		}

		return tx.Save(&offering).Error
	})
	if err != nil {
		return nil, err
	}

	return &offering, nil
}

// DeleteOffering soft-deletes an offering with no active enrollments
func (s *Service) DeleteOffering(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var offering models.Offering
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&offering).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		count, err := activeCount(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrHasEnrollments
		}

		return tx.Model(&offering).Update("is_deleted", true).Error
	})
}
