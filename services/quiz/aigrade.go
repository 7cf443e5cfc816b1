package quiz

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	quizModels "uniportal/models/quiz"
	"uniportal/services/grading"
)

// SuggestAIGrades asks the AI capability to score every short answer
// of a submitted attempt that has neither an authoritative grade nor a
// prior suggestion. Suggestions land in AIScore/AIFeedback only; a
// grader must still call ApplyGrade to make them count. The loop is
// restartable: answers graded or suggested before a failure are left
// untouched and skipped on the next run.
func (s *AttemptService) SuggestAIGrades(ctx context.Context, grader grading.Grader, attemptID uint) (int, error) {
	if grader == nil {
		return 0, ErrAIUnavailable
	}

	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return 0, err
	}
	if attempt.Status != quizModels.AttemptSubmitted {
		return 0, ErrInvalidState
	}

	var questions []quizModels.Question
	if err := s.DB.Where("quiz_id = ? AND type = ? AND is_deleted = false",
		q.ID, quizModels.TypeShortAnswer).Find(&questions).Error; err != nil {
		return 0, err
	}
	questionByID := make(map[uint]quizModels.Question, len(questions))
	for _, question := range questions {
		questionByID[question.ID] = question
	}

	var answers []quizModels.Answer
	if err := s.DB.Where("attempt_id = ? AND points_earned IS NULL AND ai_graded_at IS NULL AND is_deleted = false",
		attemptID).Find(&answers).Error; err != nil {
		return 0, err
	}

	suggested := 0
	for i := range answers {
		question, ok := questionByID[answers[i].QuestionID]
		if !ok {
			continue // objective answers are auto-graded at finalize
		}
		if strings.TrimSpace(answers[i].TextAnswer) == "" {
			continue // nothing to grade, leave for the human
		}

		result, err := grader.Grade(ctx, question.Text, answers[i].TextAnswer, question.Explanation)
		if err != nil {
			if errors.Is(err, grading.ErrUnavailable) {
				return suggested, ErrAIUnavailable
			}
			log.Printf("AI grading failed for answer %d: %v", answers[i].ID, err)
			return suggested, err
		}

		now := time.Now()
		answers[i].AIScore = &result.Score
		answers[i].AIFeedback = formatAIFeedback(result)
		answers[i].AIGradedAt = &now
		if err := s.DB.Save(&answers[i]).Error; err != nil {
			return suggested, err
		}
		suggested++
	}

	return suggested, nil
}

// formatAIFeedback flattens the structured suggestion into the
// feedback text stored on the answer.
func formatAIFeedback(r *grading.Result) string {
	var b strings.Builder
	b.WriteString(r.Feedback)
	if len(r.Strengths) > 0 {
		b.WriteString("\n\nStrengths: ")
		b.WriteString(strings.Join(r.Strengths, "; "))
	}
	if len(r.Improvements) > 0 {
		b.WriteString("\n\nImprovements: ")
		b.WriteString(strings.Join(r.Improvements, "; "))
	}
	return b.String()
}

// PendingShortAnswers lists a submitted attempt's short answers still
// waiting for an authoritative grade, with any AI suggestion attached.
func (s *AttemptService) PendingShortAnswers(attemptID uint) ([]quizModels.Answer, error) {
	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status != quizModels.AttemptSubmitted {
		return nil, ErrInvalidState
	}

	var questionIDs []uint
	if err := s.DB.Model(&quizModels.Question{}).
		Where("quiz_id = ? AND type = ? AND is_deleted = false", q.ID, quizModels.TypeShortAnswer).
		Pluck("id", &questionIDs).Error; err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return nil, nil
	}

	var answers []quizModels.Answer
	err = s.DB.Where("attempt_id = ? AND question_id IN ? AND points_earned IS NULL AND is_deleted = false",
		attemptID, questionIDs).Find(&answers).Error
	return answers, err
}
