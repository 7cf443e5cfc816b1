package quiz

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusClosed    = "CLOSED"
)

// Quiz is a timed assessment attached to one offering. Definition is
// mutable only while DRAFT and before any attempt exists.
type Quiz struct {
	gorm.Model
	OfferingID  uint   `json:"offering_id" gorm:"index;not null"`
	CreatedBy   uint   `json:"created_by" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED, CLOSED

	Duration     int     `json:"duration" gorm:"default:30"` // minutes
	TotalPoints  float64 `json:"total_points" gorm:"default:0"`
	PassingScore float64 `json:"passing_score" gorm:"default:60"` // percentage

	ShuffleQuestions bool `json:"shuffle_questions" gorm:"default:false"`
	ShuffleOptions   bool `json:"shuffle_options" gorm:"default:false"`
	ShowResults      bool `json:"show_results" gorm:"default:true"`
	AllowReview      bool `json:"allow_review" gorm:"default:false"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	IsDeleted bool `gorm:"default:false"`
}

// IsAvailableAt reports whether the quiz can be taken at t
func (q *Quiz) IsAvailableAt(t time.Time) bool {
	if q.Status != StatusPublished {
		return false
	}
	if q.StartTime != nil && t.Before(*q.StartTime) {
		return false
	}
	if q.EndTime != nil && t.After(*q.EndTime) {
		return false
	}
	return true
}
