package enrollment

import (
	"errors"
	"fmt"
	"time"

	"uniportal/models"
	"uniportal/utils"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("offering not found")
	ErrCapacityExceeded    = errors.New("offering is at capacity")
	ErrDuplicateEnrollment = errors.New("student already enrolled")
	ErrStudentInactive     = errors.New("student account is not active")
	ErrNotEnrolled         = errors.New("student is not enrolled")
)

// Service is the capacity ledger: it guards the enrollment count
// against each offering's maximum and keeps offering codes unique.
type Service struct {
	DB    *gorm.DB
	locks *utils.KeyedMutex
}

// NewService creates an enrollment service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, locks: utils.NewKeyedMutex()}
}

// CapacityStatus reports the seat situation for an offering
type CapacityStatus struct {
	Ok          bool   `json:"ok"`
	Reason      string `json:"reason,omitempty"`
	MaxStudents int    `json:"max_students"`
	Enrolled    int64  `json:"enrolled"`
	Remaining   int64  `json:"remaining"`
}

// BulkResult summarizes a bulk enrollment
type BulkResult struct {
	Enrolled int               `json:"enrolled"`
	Failed   int               `json:"failed"`
	Reasons  map[uint]string   `json:"reasons,omitempty"` // studentID -> failure reason
}

func activeCount(tx *gorm.DB, offeringID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Enrollment{}).
		Where("offering_id = ? AND dropped_at IS NULL AND is_deleted = false", offeringID).
		Count(&count).Error
	return count, err
}

// CanEnroll checks remaining capacity without reserving a seat
func (s *Service) CanEnroll(offeringID uint) (*CapacityStatus, error) {
	var offering models.Offering
	if err := s.DB.Where("id = ? AND is_deleted = ?", offeringID, false).First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count, err := activeCount(s.DB, offeringID)
	if err != nil {
		return nil, err
	}

	status := &CapacityStatus{
		MaxStudents: offering.MaxStudents,
		Enrolled:    count,
		Remaining:   int64(offering.MaxStudents) - count,
	}
	if count >= int64(offering.MaxStudents) {
		status.Reason = "offering is at capacity"
	} else {
		status.Ok = true
	}
	return status, nil
}

// Enroll reserves one seat for the student. The count check and the
// insert run under the offering's lock inside one transaction so two
// concurrent calls cannot both squeeze past capacity.
func (s *Service) Enroll(offeringID, studentID uint) (*models.Enrollment, error) {
	unlock := s.locks.Lock(fmt.Sprintf("offering:%d", offeringID))
	defer unlock()

	var enrollment models.Enrollment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var offering models.Offering
		if err := tx.Where("id = ? AND is_deleted = ?", offeringID, false).First(&offering).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var student models.User
		if err := tx.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentInactive
			}
			return err
		}
		if !student.IsActive {
			return ErrStudentInactive
		}

		var existing models.Enrollment
		if err := tx.Where("student_id = ? AND offering_id = ? AND dropped_at IS NULL AND is_deleted = false",
			studentID, offeringID).First(&existing).Error; err == nil {
			return ErrDuplicateEnrollment
		}

		count, err := activeCount(tx, offeringID)
		if err != nil {
			return err
		}
		if count >= int64(offering.MaxStudents) {
			return ErrCapacityExceeded
		}

		enrollment = models.Enrollment{StudentID: studentID, OfferingID: offeringID}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}

// BulkEnroll grants seats in input order up to remaining capacity.
// The capacity check runs once against the whole batch; students past
// the cutoff fail with the capacity reason, other failures (duplicate,
// inactive) are reported per student without aborting the rest.
func (s *Service) BulkEnroll(offeringID uint, studentIDs []uint) (*BulkResult, error) {
	unlock := s.locks.Lock(fmt.Sprintf("offering:%d", offeringID))
	defer unlock()

	result := &BulkResult{Reasons: make(map[uint]string)}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var offering models.Offering
		if err := tx.Where("id = ? AND is_deleted = ?", offeringID, false).First(&offering).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		count, err := activeCount(tx, offeringID)
		if err != nil {
			return err
		}
		remaining := int64(offering.MaxStudents) - count

		for _, studentID := range studentIDs {
			if remaining <= 0 {
				result.Failed++
				result.Reasons[studentID] = ErrCapacityExceeded.Error()
				continue
			}

			var student models.User
			if err := tx.Where("id = ? AND is_active = ? AND is_deleted = ?", studentID, true, false).
				First(&student).Error; err != nil {
				result.Failed++
				result.Reasons[studentID] = ErrStudentInactive.Error()
				continue
			}

			var existing models.Enrollment
			if err := tx.Where("student_id = ? AND offering_id = ? AND dropped_at IS NULL AND is_deleted = false",
				studentID, offeringID).First(&existing).Error; err == nil {
				result.Failed++
				result.Reasons[studentID] = ErrDuplicateEnrollment.Error()
				continue
			}

			if err := tx.Create(&models.Enrollment{StudentID: studentID, OfferingID: offeringID}).Error; err != nil {
				return err
			}
			result.Enrolled++
			remaining--
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Drop releases the student's seat by stamping DroppedAt. The row is
// never hard-deleted.
func (s *Service) Drop(offeringID, studentID uint) error {
	var enrollment models.Enrollment
	if err := s.DB.Where("student_id = ? AND offering_id = ? AND dropped_at IS NULL AND is_deleted = false",
		studentID, offeringID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return err
	}

	now := time.Now()
	return s.DB.Model(&enrollment).Update("dropped_at", &now).Error
}

// IsEnrolled reports whether the student holds an active seat
func (s *Service) IsEnrolled(offeringID, studentID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND offering_id = ? AND dropped_at IS NULL AND is_deleted = false",
			studentID, offeringID).
		Count(&count).Error
	return count > 0, err
}
