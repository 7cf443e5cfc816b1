package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"uniportal/models"
	quizModels "uniportal/models/quiz"
	"uniportal/services/notification"
	"uniportal/utils"

	"gorm.io/gorm"
)

// AttemptService drives the attempt lifecycle:
//
//	IN_PROGRESS -> SUBMITTED -> GRADED
//	IN_PROGRESS -> EXPIRED
//
// SUBMITTED, GRADED and EXPIRED are terminal for taking purposes;
// only grading actions move SUBMITTED forward. Expiry is evaluated
// lazily on every read plus a periodic sweep.
type AttemptService struct {
	DB       *gorm.DB
	Notifier *notification.Service
	locks    *utils.KeyedMutex
}

// NewAttemptService creates an attempt service. Notifier may be nil.
func NewAttemptService(db *gorm.DB, notifier *notification.Service) *AttemptService {
	return &AttemptService{DB: db, Notifier: notifier, locks: utils.NewKeyedMutex()}
}

// StartOrResume returns the student's attempt for the quiz, creating
// it on first access. Idempotent: once an attempt exists for the pair
// it is always the one returned, never a second.
func (s *AttemptService) StartOrResume(studentID, quizID uint) (*quizModels.QuizAttempt, error) {
	unlock := s.locks.Lock(fmt.Sprintf("attempt:%d:%d", quizID, studentID))
	defer unlock()

	var attempt quizModels.QuizAttempt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var q quizModels.Quiz
		if err := tx.Where("id = ? AND is_deleted = ?", quizID, false).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Resume before availability: an existing attempt stays
		// reachable even after the window closes.
		if err := tx.Where("quiz_id = ? AND student_id = ? AND is_deleted = false",
			quizID, studentID).First(&attempt).Error; err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !q.IsAvailableAt(time.Now()) {
			return ErrQuizNotAvailable
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND offering_id = ? AND dropped_at IS NULL AND is_deleted = false",
				studentID, q.OfferingID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled == 0 {
			return ErrNotEnrolled
		}

		attempt = quizModels.QuizAttempt{
			QuizID:    quizID,
			StudentID: studentID,
			Status:    quizModels.AttemptInProgress,
			StartedAt: time.Now(),
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}

	return &attempt, nil
}

// GetForTaking returns the sanitized question view for an in-progress
// attempt. If the time limit has elapsed the attempt is expired as a
// side effect and ErrAttemptExpired is returned so the caller can
// redirect to results.
func (s *AttemptService) GetForTaking(attemptID uint) (*TakingView, error) {
	unlock := s.locks.Lock(fmt.Sprintf("attempt:%d", attemptID))
	defer unlock()

	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	expired, err := s.expireIfOverdue(attempt, q)
	if err != nil {
		return nil, err
	}
	if expired || attempt.Status == quizModels.AttemptExpired {
		return nil, ErrAttemptExpired
	}
	if attempt.Status != quizModels.AttemptInProgress {
		return nil, ErrInvalidState
	}

	var questions []quizModels.Question
	if err := s.DB.Where("quiz_id = ? AND is_deleted = false", q.ID).Find(&questions).Error; err != nil {
		return nil, err
	}

	var answers []quizModels.Answer
	if err := s.DB.Where("attempt_id = ? AND is_deleted = false", attemptID).Find(&answers).Error; err != nil {
		return nil, err
	}
	answerByQuestion := make(map[uint]quizModels.Answer, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuestionID] = a
	}

	deadline := attempt.Deadline(q)
	view := &TakingView{
		AttemptID:        attempt.ID,
		QuizID:           q.ID,
		Title:            q.Title,
		Duration:         q.Duration,
		StartedAt:        attempt.StartedAt,
		Deadline:         deadline,
		RemainingSeconds: int64(time.Until(deadline).Seconds()),
	}

	for _, question := range shuffledQuestions(questions, q, attempt.ID) {
		tq := TakingQuestion{
			QuestionID: question.ID,
			Type:       question.Type,
			Difficulty: question.Difficulty,
			Text:       question.Text,
			Points:     question.Points,
		}

		if question.IsObjective() {
			var options []quizModels.Option
			if err := s.DB.Where("question_id = ? AND is_deleted = false", question.ID).
				Find(&options).Error; err != nil {
				return nil, err
			}
			for _, opt := range shuffledOptions(options, q, attempt.ID, question.ID) {
				tq.Options = append(tq.Options, TakingOption{OptionID: opt.ID, Text: opt.Text})
			}
		}

		if ans, ok := answerByQuestion[question.ID]; ok {
			tq.SelectedOptionID = ans.SelectedOptionID
			tq.TextAnswer = ans.TextAnswer
		}

		view.Questions = append(view.Questions, tq)
	}

	return view, nil
}

// SubmitAnswer upserts the student's answer to one question. Unique
// per (attempt, question): resubmission replaces the prior value.
func (s *AttemptService) SubmitAnswer(attemptID, questionID uint, selectedOptionID *uint, textAnswer string) (*quizModels.Answer, error) {
	unlock := s.locks.Lock(fmt.Sprintf("attempt:%d", attemptID))
	defer unlock()

	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	expired, err := s.expireIfOverdue(attempt, q)
	if err != nil {
		return nil, err
	}
	if expired || attempt.Status == quizModels.AttemptExpired {
		return nil, ErrAttemptExpired
	}
	if attempt.Status != quizModels.AttemptInProgress {
		return nil, ErrInvalidState
	}

	var question quizModels.Question
	if err := s.DB.Where("id = ? AND quiz_id = ? AND is_deleted = false",
		questionID, q.ID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if question.IsObjective() {
		if selectedOptionID == nil {
			return nil, &ValidationError{Fields: map[string]string{"selected_option_id": "An option must be selected!"}}
		}
		var option quizModels.Option
		if err := s.DB.Where("id = ? AND question_id = ? AND is_deleted = false",
			*selectedOptionID, questionID).First(&option).Error; err != nil {
			return nil, &ValidationError{Fields: map[string]string{"selected_option_id": "Option does not belong to this question!"}}
		}
		textAnswer = ""
	} else {
		if strings.TrimSpace(textAnswer) == "" {
			return nil, &ValidationError{Fields: map[string]string{"text_answer": "Answer text is required!"}}
		}
		selectedOptionID = nil
	}

	var answer quizModels.Answer
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id = ? AND question_id = ? AND is_deleted = false",
			attemptID, questionID).First(&answer).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			answer = quizModels.Answer{AttemptID: attemptID, QuestionID: questionID}
		}

		answer.SelectedOptionID = selectedOptionID
		answer.TextAnswer = textAnswer
		return tx.Save(&answer).Error
	})
	if err != nil {
		return nil, err
	}

	return &answer, nil
}

// Finalize submits the attempt: objective answers are auto-graded,
// short answers stay ungraded pending manual or AI-assisted grading,
// and a provisional score over graded answers is stored. A finalize
// past the deadline takes the expiry path instead, keeping whatever
// answers exist.
func (s *AttemptService) Finalize(attemptID uint) (*quizModels.QuizAttempt, error) {
	unlock := s.locks.Lock(fmt.Sprintf("attempt:%d", attemptID))
	defer unlock()

	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	if attempt.Status != quizModels.AttemptInProgress {
		return nil, ErrInvalidState
	}

	now := time.Now()
	status := quizModels.AttemptSubmitted
	submittedAt := now
	if now.After(attempt.Deadline(q)) {
		status = quizModels.AttemptExpired
		submittedAt = attempt.Deadline(q)
	}

	if err := s.finalizeAttempt(attempt, q, status, submittedAt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// finalizeAttempt grades objective answers and seals the attempt in
// one transaction. Missing answer rows are created so every question
// carries a gradable row: objective ones score zero, short answers
// stay ungraded.
func (s *AttemptService) finalizeAttempt(attempt *quizModels.QuizAttempt, q *quizModels.Quiz, status string, submittedAt time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var questions []quizModels.Question
		if err := tx.Where("quiz_id = ? AND is_deleted = false", q.ID).Find(&questions).Error; err != nil {
			return err
		}

		var answers []quizModels.Answer
		if err := tx.Where("attempt_id = ? AND is_deleted = false", attempt.ID).Find(&answers).Error; err != nil {
			return err
		}
		answerByQuestion := make(map[uint]*quizModels.Answer, len(answers))
		for i := range answers {
			answerByQuestion[answers[i].QuestionID] = &answers[i]
		}

		for _, question := range questions {
			answer, ok := answerByQuestion[question.ID]
			if !ok {
				answer = &quizModels.Answer{AttemptID: attempt.ID, QuestionID: question.ID}
			}

			if question.IsObjective() {
				isCorrect := false
				if answer.SelectedOptionID != nil {
					var correct quizModels.Option
					if err := tx.Where("question_id = ? AND is_correct = ? AND is_deleted = false",
						question.ID, true).First(&correct).Error; err == nil {
						isCorrect = *answer.SelectedOptionID == correct.ID
					}
				}
				earned := 0.0
				if isCorrect {
					earned = question.Points
				}
				answer.IsCorrect = &isCorrect
				answer.PointsEarned = &earned
			}

			if err := tx.Save(answer).Error; err != nil {
				return err
			}
		}

		score, percentage := aggregateScore(tx, attempt.ID, q)

		attempt.Status = status
		attempt.SubmittedAt = &submittedAt
		attempt.Score = score
		attempt.Percentage = percentage
		return tx.Save(attempt).Error
	})
}

// ApplyGrade promotes points onto a short answer of a submitted
// attempt. This is the only way PointsEarned moves on a short answer —
// AI output never applies itself. Once every question carries a grade
// the attempt transitions to GRADED.
func (s *AttemptService) ApplyGrade(attemptID, questionID uint, points float64, feedback string, graderID uint) (*quizModels.QuizAttempt, error) {
	unlock := s.locks.Lock(fmt.Sprintf("attempt:%d", attemptID))
	defer unlock()

	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	if attempt.Status != quizModels.AttemptSubmitted {
		return nil, ErrInvalidState
	}

	var question quizModels.Question
	if err := s.DB.Where("id = ? AND quiz_id = ? AND is_deleted = false",
		questionID, q.ID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if question.Type != quizModels.TypeShortAnswer {
		return nil, &ValidationError{Fields: map[string]string{"question_id": "Only short answer questions are graded manually!"}}
	}

	if points < 0 {
		points = 0
	}
	if points > question.Points {
		points = question.Points
	}

	graded := false
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var answer quizModels.Answer
		if err := tx.Where("attempt_id = ? AND question_id = ? AND is_deleted = false",
			attemptID, questionID).First(&answer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// Pass threshold: half the question's points or better counts
		// as correct.
		isCorrect := points >= question.Points*0.5
		answer.PointsEarned = &points
		answer.IsCorrect = &isCorrect
		answer.Feedback = feedback
		answer.GradedBy = &graderID
		if err := tx.Save(&answer).Error; err != nil {
			return err
		}

		score, percentage := aggregateScore(tx, attemptID, q)
		attempt.Score = score
		attempt.Percentage = percentage

		var ungraded int64
		if err := tx.Model(&quizModels.Answer{}).
			Where("attempt_id = ? AND points_earned IS NULL AND is_deleted = false", attemptID).
			Count(&ungraded).Error; err != nil {
			return err
		}
		if ungraded == 0 {
			now := time.Now()
			attempt.Status = quizModels.AttemptGraded
			attempt.GradedAt = &now
			graded = true
		}

		return tx.Save(attempt).Error
	})
	if err != nil {
		return nil, err
	}

	if graded && s.Notifier != nil {
		s.Notifier.Create(
			[]uint{attempt.StudentID},
			"Quiz graded",
			fmt.Sprintf("Your attempt on %q has been graded.", q.Title),
			"QUIZ_GRADED",
			fmt.Sprintf("/quiz/%d/attempt/%d/results", q.ID, attempt.ID),
			nil,
		)
	}

	return attempt, nil
}

// aggregateScore sums authoritative points over graded answers. A quiz
// with zero total points scores 0%, not an error.
func aggregateScore(tx *gorm.DB, attemptID uint, q *quizModels.Quiz) (float64, float64) {
	var score float64
	tx.Model(&quizModels.Answer{}).
		Where("attempt_id = ? AND points_earned IS NOT NULL AND is_deleted = false", attemptID).
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&score)

	percentage := 0.0
	if q.TotalPoints > 0 {
		percentage = 100 * score / q.TotalPoints
	}
	return score, percentage
}

// AttemptOwner returns the student who owns an attempt
func (s *AttemptService) AttemptOwner(attemptID uint) (uint, error) {
	var attempt quizModels.QuizAttempt
	if err := s.DB.Select("student_id").
		Where("id = ? AND is_deleted = ?", attemptID, false).
		First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return attempt.StudentID, nil
}

// loadAttempt fetches an attempt with its quiz
func (s *AttemptService) loadAttempt(attemptID uint) (*quizModels.QuizAttempt, *quizModels.Quiz, error) {
	var attempt quizModels.QuizAttempt
	if err := s.DB.Where("id = ? AND is_deleted = ?", attemptID, false).First(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var q quizModels.Quiz
	if err := s.DB.Where("id = ?", attempt.QuizID).First(&q).Error; err != nil {
		return nil, nil, err
	}

	return &attempt, &q, nil
}

// expireIfOverdue moves an in-progress attempt past its deadline to
// EXPIRED, grading whatever answers exist.
func (s *AttemptService) expireIfOverdue(attempt *quizModels.QuizAttempt, q *quizModels.Quiz) (bool, error) {
	if attempt.Status != quizModels.AttemptInProgress {
		return false, nil
	}
	deadline := attempt.Deadline(q)
	if !time.Now().After(deadline) {
		return false, nil
	}

	if err := s.finalizeAttempt(attempt, q, quizModels.AttemptExpired, deadline); err != nil {
		return false, err
	}
	return true, nil
}

// ExpireOverdue sweeps all in-progress attempts past their deadline.
// Run from the scheduler so expiry is never missed for longer than
// the sweep interval even if nobody reads the attempt.
func (s *AttemptService) ExpireOverdue() (int, error) {
	var attempts []quizModels.QuizAttempt
	if err := s.DB.Where("status = ? AND is_deleted = false", quizModels.AttemptInProgress).
		Find(&attempts).Error; err != nil {
		return 0, err
	}

	expired := 0
	for i := range attempts {
		unlock := s.locks.Lock(fmt.Sprintf("attempt:%d", attempts[i].ID))

		var q quizModels.Quiz
		if err := s.DB.Where("id = ?", attempts[i].QuizID).First(&q).Error; err != nil {
			unlock()
			continue
		}
		didExpire, err := s.expireIfOverdue(&attempts[i], &q)
		unlock()
		if err != nil {
			return expired, err
		}
		if didExpire {
			expired++
		}
	}
	return expired, nil
}
