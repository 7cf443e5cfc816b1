package models

import "gorm.io/gorm"

// Offering is a scheduled section of a course within a semester,
// capped at MaxStudents active enrollments.
type Offering struct {
	gorm.Model
	CourseID    uint     `json:"course_id" gorm:"not null;uniqueIndex:idx_course_semester_section"`
	Course      Course   `json:"course" gorm:"foreignKey:CourseID"`
	SemesterID  uint     `json:"semester_id" gorm:"not null;uniqueIndex:idx_course_semester_section"`
	Semester    Semester `json:"semester" gorm:"foreignKey:SemesterID"`
	Section     string   `json:"section" gorm:"not null;uniqueIndex:idx_course_semester_section"` // e.g., "A"
	Code        string   `json:"code" gorm:"unique;not null"`                                     // e.g., "CS101-FA26-A"
	TeacherID   uint     `json:"teacher_id" gorm:"index"`
	MaxStudents int      `json:"max_students" gorm:"default:30"`
	IsDeleted   bool     `gorm:"default:false"`
}
