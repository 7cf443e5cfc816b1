package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string    `gorm:"default:''"`
	Email     string    `gorm:"unique;not null"`
	Role      string    `gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password  string    `gorm:"not null"`
	IsActive  bool      `gorm:"default:true"`
	LastLogin time.Time `gorm:"default:NULL"`
	IsDeleted bool      `gorm:"default:false"`
}

// IsSystemRole reports whether the user bypasses all capability checks
func (u *User) IsSystemRole() bool {
	return u.Role == "ADMIN"
}
