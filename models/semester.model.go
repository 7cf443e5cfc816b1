package models

import (
	"time"

	"gorm.io/gorm"
)

// Semester represents one academic term. At most one semester is
// flagged current at any time; activation handles the swap atomically.
type Semester struct {
	gorm.Model
	Name      string    `json:"name"`
	Code      string    `json:"code" gorm:"unique;not null"` // e.g., "FA26"
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsCurrent bool      `json:"is_current" gorm:"default:false"`
	IsActive  bool      `json:"is_active" gorm:"default:false"`
	IsDeleted bool      `gorm:"default:false"`
}
