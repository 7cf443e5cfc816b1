package models

import (
	"gorm.io/gorm"
)

// Permission grants a single capability code to a user.
// Capability codes are free-form strings (e.g. "quiz.grade") managed as
// data, not compiled into the binary.
type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	User       User   `gorm:"foreignKey:UserID"`
	Permission string `gorm:"type:varchar(255);not null"` // e.g., "quiz.manage"
	IsDeleted  bool   `gorm:"default:false"`
}
