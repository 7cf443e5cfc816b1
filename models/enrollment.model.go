package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a student to an offering. A row counts against the
// offering's capacity while DroppedAt is null; dropping stamps
// DroppedAt instead of deleting the row.
type Enrollment struct {
	gorm.Model
	StudentID  uint       `json:"student_id" gorm:"index;not null"`
	OfferingID uint       `json:"offering_id" gorm:"index;not null"`
	DroppedAt  *time.Time `json:"dropped_at"`
	IsDeleted  bool       `gorm:"default:false"`
}

// IsActiveEnrollment reports whether the row still occupies a seat
func (e *Enrollment) IsActiveEnrollment() bool {
	return e.DroppedAt == nil && !e.IsDeleted
}
