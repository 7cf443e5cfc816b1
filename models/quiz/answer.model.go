package quiz

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one student's response to one question within an attempt,
// unique per (attempt, question) — resubmission replaces the value.
// AIScore/AIFeedback are suggestions only; PointsEarned is the
// authoritative grade and is set by auto-grading or an explicit
// grading action, never by the AI directly.
type Answer struct {
	gorm.Model
	AttemptID  uint `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`

	SelectedOptionID *uint  `json:"selected_option_id"`              // objective types
	TextAnswer       string `json:"text_answer" gorm:"type:text"`    // short answer

	IsCorrect    *bool    `json:"is_correct"`    // nil until graded
	PointsEarned *float64 `json:"points_earned"` // nil until graded
	Feedback     string   `json:"feedback" gorm:"type:text"`
	GradedBy     *uint    `json:"graded_by"` // grader user, manual grades only

	AIScore    *float64   `json:"ai_score"` // 0-100 suggestion
	AIFeedback string     `json:"ai_feedback" gorm:"type:text"`
	AIGradedAt *time.Time `json:"ai_graded_at"`

	IsDeleted bool `gorm:"default:false"`
}

// IsGradedAnswer reports whether an authoritative grade has been set
func (a *Answer) IsGradedAnswer() bool {
	return a.PointsEarned != nil
}
