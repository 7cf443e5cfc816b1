package semester

import (
	"errors"

	"uniportal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("semester not found")
	ErrHasOfferings      = errors.New("semester has offerings")
	ErrIsCurrentSemester = errors.New("semester is currently active")
)

// Service owns the single-current-semester invariant
type Service struct {
	DB *gorm.DB
}

// NewService creates a semester service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Activate flags the semester as the current one. Clearing the flag on
// every other semester and setting it on the target commit together —
// no state with two current semesters (or none) is ever visible.
func (s *Service) Activate(id uint) (*models.Semester, error) {
	var sem models.Semester

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&sem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.Semester{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error; err != nil {
			return err
		}

		if err := tx.Model(&sem).Updates(map[string]interface{}{
			"is_current": true,
			"is_active":  true,
		}).Error; err != nil {
			return err
		}

		sem.IsCurrent = true
		sem.IsActive = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sem, nil
}

// Deactivate clears the current flag without promoting another semester
func (s *Service) Deactivate(id uint) error {
	var sem models.Semester
	if err := s.DB.Where("id = ? AND is_deleted = ?", id, false).First(&sem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.DB.Model(&sem).Updates(map[string]interface{}{
		"is_current": false,
		"is_active":  false,
	}).Error
}

// Current returns the semester flagged current, if any
func (s *Service) Current() (*models.Semester, error) {
	var sem models.Semester
	if err := s.DB.Where("is_current = ? AND is_deleted = ?", true, false).First(&sem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sem, nil
}

// Delete soft-deletes a semester. Rejected while offerings depend on
// it or while it is the current semester.
func (s *Service) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var sem models.Semester
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&sem).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if sem.IsCurrent {
			return ErrIsCurrentSemester
		}

		var offeringCount int64
		if err := tx.Model(&models.Offering{}).
			Where("semester_id = ? AND is_deleted = false", id).
			Count(&offeringCount).Error; err != nil {
			return err
		}
		if offeringCount > 0 {
			return ErrHasOfferings
		}

		return tx.Model(&sem).Update("is_deleted", true).Error
	})
}
