package quiz

import "gorm.io/gorm"

const (
	TypeMultipleChoice = "MULTIPLE_CHOICE"
	TypeTrueFalse      = "TRUE_FALSE"
	TypeShortAnswer    = "SHORT_ANSWER"

	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

// Question belongs to one quiz. Explanation doubles as the model
// answer handed to the AI grader for SHORT_ANSWER questions.
type Question struct {
	gorm.Model
	QuizID      uint    `json:"quiz_id" gorm:"index;not null"`
	Type        string  `json:"type" gorm:"not null"` // MULTIPLE_CHOICE, TRUE_FALSE, SHORT_ANSWER
	Difficulty  string  `json:"difficulty" gorm:"default:'MEDIUM'"`
	Text        string  `json:"text" gorm:"type:text;not null"`
	Points      float64 `json:"points" gorm:"default:1"`
	OrderIndex  int     `json:"order_index" gorm:"default:0"`
	Explanation string  `json:"explanation" gorm:"type:text"`
	IsDeleted   bool    `gorm:"default:false"`
}

// IsObjective reports whether the question is mechanically gradable
func (q *Question) IsObjective() bool {
	return q.Type == TypeMultipleChoice || q.Type == TypeTrueFalse
}
