package quiz

import "time"

// TakingOption is an option as shown to a student mid-attempt.
// Correctness is stripped before it leaves the service.
type TakingOption struct {
	OptionID uint   `json:"option_id"`
	Text     string `json:"text"`
}

// TakingQuestion is a question as shown to a student mid-attempt
type TakingQuestion struct {
	QuestionID       uint           `json:"question_id"`
	Type             string         `json:"type"`
	Difficulty       string         `json:"difficulty"`
	Text             string         `json:"text"`
	Points           float64        `json:"points"`
	Options          []TakingOption `json:"options,omitempty"`
	SelectedOptionID *uint          `json:"selected_option_id,omitempty"`
	TextAnswer       string         `json:"text_answer,omitempty"`
}

// TakingView is the sanitized in-progress view of an attempt: no
// correct answers, no per-option points, no score.
type TakingView struct {
	AttemptID        uint             `json:"attempt_id"`
	QuizID           uint             `json:"quiz_id"`
	Title            string           `json:"title"`
	Duration         int              `json:"duration"`
	StartedAt        time.Time        `json:"started_at"`
	Deadline         time.Time        `json:"deadline"`
	RemainingSeconds int64            `json:"remaining_seconds"`
	Questions        []TakingQuestion `json:"questions"`
}

// ReviewOption is an option in the post-attempt review
type ReviewOption struct {
	OptionID  uint   `json:"option_id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// ReviewQuestion is one question in the post-attempt review
type ReviewQuestion struct {
	QuestionID       uint           `json:"question_id"`
	Type             string         `json:"type"`
	Text             string         `json:"text"`
	Points           float64        `json:"points"`
	Explanation      string         `json:"explanation,omitempty"`
	Options          []ReviewOption `json:"options,omitempty"`
	SelectedOptionID *uint          `json:"selected_option_id,omitempty"`
	TextAnswer       string         `json:"text_answer,omitempty"`
	IsCorrect        *bool          `json:"is_correct,omitempty"`
	PointsEarned     *float64       `json:"points_earned,omitempty"`
	Feedback         string         `json:"feedback,omitempty"`
	AIScore          *float64       `json:"ai_score,omitempty"`
	AIFeedback       string         `json:"ai_feedback,omitempty"`
}

// ResultView is the post-attempt view. Score fields appear only when
// the quiz shows results; the per-question review only when the quiz
// allows review — the two flags are independent.
type ResultView struct {
	AttemptID   uint             `json:"attempt_id"`
	QuizID      uint             `json:"quiz_id"`
	Status      string           `json:"status"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	GradedAt    *time.Time       `json:"graded_at,omitempty"`
	ShowResults bool             `json:"show_results"`
	Score       *float64         `json:"score,omitempty"`
	Percentage  *float64         `json:"percentage,omitempty"`
	Passed      *bool            `json:"passed,omitempty"`
	Review      []ReviewQuestion `json:"review,omitempty"`
}
