package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is an in-app message for one user. Data carries an
// opaque JSON payload the portal passes through untouched.
type Notification struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Title     string         `json:"title"`
	Body      string         `json:"body" gorm:"type:text"`
	Type      string         `json:"type" gorm:"default:'GENERAL'"` // GENERAL, QUIZ_GRADED, ENROLLMENT
	Link      string         `json:"link"`
	Data      datatypes.JSON `json:"data"`
	IsRead    bool           `json:"is_read" gorm:"default:false"`
	IsDeleted bool           `gorm:"default:false"`
}
