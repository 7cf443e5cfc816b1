package models

import "gorm.io/gorm"

// Course is the catalog entry offerings are scheduled from
type Course struct {
	gorm.Model
	Code        string `json:"code" gorm:"unique;not null"` // e.g., "CS101"
	Title       string `json:"title"`
	Description string `json:"description"`
	Credits     int    `json:"credits" gorm:"default:3"`
	IsDeleted   bool   `gorm:"default:false"`
}
