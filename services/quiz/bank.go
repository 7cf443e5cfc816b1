package quiz

import (
	"errors"
	"strings"
	"time"

	quizModels "uniportal/models/quiz"

	"gorm.io/gorm"
)

// BankService owns quiz definitions: questions, options, their
// ordering and point values. Definitions are mutable only while the
// quiz is DRAFT and has no attempts; TotalPoints is recomputed on
// every question mutation, never drifted.
type BankService struct {
	DB *gorm.DB
}

// NewBankService creates a question bank service
func NewBankService(db *gorm.DB) *BankService {
	return &BankService{DB: db}
}

// QuizInput is the quiz shape accepted from callers
type QuizInput struct {
	OfferingID       uint
	Title            string
	Description      string
	Duration         int
	PassingScore     float64
	ShuffleQuestions bool
	ShuffleOptions   bool
	ShowResults      bool
	AllowReview      bool
	StartTime        *time.Time
	EndTime          *time.Time
}

// OptionInput is one option on an objective question
type OptionInput struct {
	Text       string
	IsCorrect  bool
	OrderIndex int
}

// QuestionInput is the question shape accepted from callers
type QuestionInput struct {
	Type        string
	Difficulty  string
	Text        string
	Points      float64
	OrderIndex  int
	Explanation string
	Options     []OptionInput
}

// CreateQuiz creates a DRAFT quiz on an offering
func (s *BankService) CreateQuiz(createdBy uint, in QuizInput) (*quizModels.Quiz, error) {
	if fields := validateQuizInput(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	q := quizModels.Quiz{
		OfferingID:       in.OfferingID,
		CreatedBy:        createdBy,
		Title:            in.Title,
		Description:      in.Description,
		Status:           quizModels.StatusDraft,
		Duration:         in.Duration,
		PassingScore:     in.PassingScore,
		ShuffleQuestions: in.ShuffleQuestions,
		ShuffleOptions:   in.ShuffleOptions,
		ShowResults:      in.ShowResults,
		AllowReview:      in.AllowReview,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
	}
	if err := s.DB.Create(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuiz updates a quiz definition while it is still editable
func (s *BankService) UpdateQuiz(quizID uint, in QuizInput) (*quizModels.Quiz, error) {
	if fields := validateQuizInput(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var q quizModels.Quiz
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.loadEditableQuiz(tx, quizID, &q); err != nil {
			return err
		}

		q.Title = in.Title
		q.Description = in.Description
		q.Duration = in.Duration
		q.PassingScore = in.PassingScore
		q.ShuffleQuestions = in.ShuffleQuestions
		q.ShuffleOptions = in.ShuffleOptions
		q.ShowResults = in.ShowResults
		q.AllowReview = in.AllowReview
		q.StartTime = in.StartTime
		q.EndTime = in.EndTime

		return tx.Save(&q).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Publish moves a quiz from DRAFT to PUBLISHED. A quiz with no
// questions cannot be published.
func (s *BankService) Publish(quizID uint) (*quizModels.Quiz, error) {
	var q quizModels.Quiz
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", quizID, false).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if q.Status != quizModels.StatusDraft {
			return ErrInvalidState
		}

		var questionCount int64
		if err := tx.Model(&quizModels.Question{}).
			Where("quiz_id = ? AND is_deleted = false", quizID).
			Count(&questionCount).Error; err != nil {
			return err
		}
		if questionCount == 0 {
			return &ValidationError{Fields: map[string]string{"questions": "Quiz must have at least one question to publish!"}}
		}

		q.Status = quizModels.StatusPublished
		return tx.Save(&q).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Close moves a PUBLISHED quiz to CLOSED
func (s *BankService) Close(quizID uint) (*quizModels.Quiz, error) {
	var q quizModels.Quiz
	if err := s.DB.Where("id = ? AND is_deleted = ?", quizID, false).First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if q.Status != quizModels.StatusPublished {
		return nil, ErrInvalidState
	}

	q.Status = quizModels.StatusClosed
	if err := s.DB.Save(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuiz soft-deletes a quiz with its questions and options.
// Rejected while attempts reference the quiz.
func (s *BankService) DeleteQuiz(quizID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var q quizModels.Quiz
		if err := tx.Where("id = ? AND is_deleted = ?", quizID, false).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var attemptCount int64
		if err := tx.Model(&quizModels.QuizAttempt{}).
			Where("quiz_id = ? AND is_deleted = false", quizID).
			Count(&attemptCount).Error; err != nil {
			return err
		}
		if attemptCount > 0 {
			return ErrHasAttempts
		}

		var questionIDs []uint
		if err := tx.Model(&quizModels.Question{}).
			Where("quiz_id = ? AND is_deleted = false", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Model(&quizModels.Option{}).
				Where("question_id IN ?", questionIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&quizModels.Question{}).
				Where("quiz_id = ?", quizID).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		return tx.Model(&q).Update("is_deleted", true).Error
	})
}

// AddQuestion appends a validated question (with options) to an
// editable quiz and recomputes the quiz total.
func (s *BankService) AddQuestion(quizID uint, in QuestionInput) (*quizModels.Question, error) {
	if fields := validateQuestionInput(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var question quizModels.Question
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var q quizModels.Quiz
		if err := s.loadEditableQuiz(tx, quizID, &q); err != nil {
			return err
		}

		question = quizModels.Question{
			QuizID:      quizID,
			Type:        in.Type,
			Difficulty:  in.Difficulty,
			Text:        in.Text,
			Points:      in.Points,
			OrderIndex:  in.OrderIndex,
			Explanation: in.Explanation,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		for _, opt := range in.Options {
			option := quizModels.Option{
				QuestionID: question.ID,
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
				OrderIndex: opt.OrderIndex,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}

		return s.recomputeTotalPoints(tx, quizID)
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// UpdateQuestion replaces a question's definition and options and
// recomputes the quiz total.
func (s *BankService) UpdateQuestion(questionID uint, in QuestionInput) (*quizModels.Question, error) {
	if fields := validateQuestionInput(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var question quizModels.Question
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var q quizModels.Quiz
		if err := s.loadEditableQuiz(tx, question.QuizID, &q); err != nil {
			return err
		}

		question.Type = in.Type
		question.Difficulty = in.Difficulty
		question.Text = in.Text
		question.Points = in.Points
		question.OrderIndex = in.OrderIndex
		question.Explanation = in.Explanation
		if err := tx.Save(&question).Error; err != nil {
			return err
		}

		// Options are replaced wholesale on update
		if err := tx.Model(&quizModels.Option{}).
			Where("question_id = ?", questionID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		for _, opt := range in.Options {
			option := quizModels.Option{
				QuestionID: questionID,
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
				OrderIndex: opt.OrderIndex,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}

		return s.recomputeTotalPoints(tx, question.QuizID)
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// DeleteQuestion soft-deletes a question with its options and
// recomputes the quiz total.
func (s *BankService) DeleteQuestion(questionID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var question quizModels.Question
		if err := tx.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var q quizModels.Quiz
		if err := s.loadEditableQuiz(tx, question.QuizID, &q); err != nil {
			return err
		}

		if err := tx.Model(&quizModels.Option{}).
			Where("question_id = ?", questionID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&question).Update("is_deleted", true).Error; err != nil {
			return err
		}

		return s.recomputeTotalPoints(tx, question.QuizID)
	})
}

// Questions returns a quiz's questions in canonical order
func (s *BankService) Questions(quizID uint) ([]quizModels.Question, error) {
	var questions []quizModels.Question
	err := s.DB.Where("quiz_id = ? AND is_deleted = false", quizID).
		Order("order_index asc, id asc").
		Find(&questions).Error
	return questions, err
}

// loadEditableQuiz loads the quiz and rejects edits once it left DRAFT
// or any attempt exists.
func (s *BankService) loadEditableQuiz(tx *gorm.DB, quizID uint, q *quizModels.Quiz) error {
	if err := tx.Where("id = ? AND is_deleted = ?", quizID, false).First(q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if q.Status != quizModels.StatusDraft {
		return ErrQuizLocked
	}

	var attemptCount int64
	if err := tx.Model(&quizModels.QuizAttempt{}).
		Where("quiz_id = ? AND is_deleted = false", quizID).
		Count(&attemptCount).Error; err != nil {
		return err
	}
	if attemptCount > 0 {
		return ErrQuizLocked
	}
	return nil
}

// recomputeTotalPoints re-derives the quiz total from its questions
func (s *BankService) recomputeTotalPoints(tx *gorm.DB, quizID uint) error {
	var total float64
	if err := tx.Model(&quizModels.Question{}).
		Where("quiz_id = ? AND is_deleted = false", quizID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&quizModels.Quiz{}).
		Where("id = ?", quizID).
		Update("total_points", total).Error
}

func validateQuizInput(in QuizInput) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required!"
	}
	if in.Duration <= 0 {
		fields["duration"] = "Duration must be greater than 0!"
	}
	if in.PassingScore < 0 || in.PassingScore > 100 {
		fields["passing_score"] = "Passing score must be between 0 and 100!"
	}
	if in.StartTime != nil && in.EndTime != nil && !in.EndTime.After(*in.StartTime) {
		fields["end_time"] = "End time must be after start time!"
	}
	return fields
}

// validateQuestionInput enforces the per-type option invariants.
// Malformed option sets are rejected outright rather than repaired.
func validateQuestionInput(in QuestionInput) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(in.Text) == "" {
		fields["text"] = "Question text is required!"
	}
	if in.Points <= 0 {
		fields["points"] = "Points must be greater than 0!"
	}

	switch in.Difficulty {
	case quizModels.DifficultyEasy, quizModels.DifficultyMedium, quizModels.DifficultyHard:
	default:
		fields["difficulty"] = "Difficulty must be EASY, MEDIUM or HARD!"
	}

	correct := 0
	for _, opt := range in.Options {
		if opt.IsCorrect {
			correct++
		}
	}

	switch in.Type {
	case quizModels.TypeMultipleChoice:
		if len(in.Options) < 2 {
			fields["options"] = "Multiple choice questions need at least 2 options!"
		} else if correct != 1 {
			fields["options"] = "Multiple choice questions need exactly one correct option!"
		}
	case quizModels.TypeTrueFalse:
		if len(in.Options) != 2 {
			fields["options"] = "True/false questions need exactly 2 options!"
		} else if correct != 1 {
			fields["options"] = "True/false questions need exactly one correct option!"
		}
	case quizModels.TypeShortAnswer:
		if len(in.Options) != 0 {
			fields["options"] = "Short answer questions cannot have options!"
		}
	default:
		fields["type"] = "Question type must be MULTIPLE_CHOICE, TRUE_FALSE or SHORT_ANSWER!"
	}

	return fields
}
