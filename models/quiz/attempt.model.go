package quiz

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptSubmitted  = "SUBMITTED"
	AttemptGraded     = "GRADED"
	AttemptExpired    = "EXPIRED"
)

// QuizAttempt is one student's single timed pass through a quiz.
// At most one non-deleted attempt exists per (student, quiz).
type QuizAttempt struct {
	gorm.Model
	QuizID    uint `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_student"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_quiz_student"`

	Status      string     `json:"status" gorm:"default:'IN_PROGRESS'"`
	StartedAt   time.Time  `json:"started_at" gorm:"not null"`
	SubmittedAt *time.Time `json:"submitted_at"`
	GradedAt    *time.Time `json:"graded_at"`

	Score      float64 `json:"score" gorm:"default:0"`
	Percentage float64 `json:"percentage" gorm:"default:0"` // 0-100

	IsDeleted bool `gorm:"default:false"`
}

// Deadline returns the instant the attempt runs out of time
func (a *QuizAttempt) Deadline(q *Quiz) time.Time {
	return a.StartedAt.Add(time.Duration(q.Duration) * time.Minute)
}

// IsTerminal reports whether the attempt can no longer change state
func (a *QuizAttempt) IsTerminal() bool {
	return a.Status == AttemptGraded || a.Status == AttemptExpired
}
