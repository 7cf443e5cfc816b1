package quiz

import (
	"fmt"

	quizModels "uniportal/models/quiz"
)

// Results builds the post-attempt view under the quiz's visibility
// policy. While IN_PROGRESS nothing is exposed; afterwards the score
// appears only with ShowResults and the per-question review only with
// AllowReview.
func (s *AttemptService) Results(attemptID uint) (*ResultView, error) {
	unlock := s.locks.Lock(fmt.Sprintf("attempt:%d", attemptID))
	defer unlock()

	attempt, q, err := s.loadAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	// A student landing on results after the deadline expires the
	// attempt here rather than bouncing them back to the taking view.
	if _, err := s.expireIfOverdue(attempt, q); err != nil {
		return nil, err
	}

	if attempt.Status == quizModels.AttemptInProgress {
		return nil, ErrInvalidState
	}

	view := &ResultView{
		AttemptID:   attempt.ID,
		QuizID:      q.ID,
		Status:      attempt.Status,
		SubmittedAt: attempt.SubmittedAt,
		GradedAt:    attempt.GradedAt,
		ShowResults: q.ShowResults,
	}

	if q.ShowResults {
		score := attempt.Score
		percentage := attempt.Percentage
		passed := percentage >= q.PassingScore
		view.Score = &score
		view.Percentage = &percentage
		view.Passed = &passed
	}

	if q.AllowReview {
		review, err := s.buildReview(attempt, q)
		if err != nil {
			return nil, err
		}
		view.Review = review
	}

	return view, nil
}

func (s *AttemptService) buildReview(attempt *quizModels.QuizAttempt, q *quizModels.Quiz) ([]ReviewQuestion, error) {
	var questions []quizModels.Question
	if err := s.DB.Where("quiz_id = ? AND is_deleted = false", q.ID).Find(&questions).Error; err != nil {
		return nil, err
	}

	var answers []quizModels.Answer
	if err := s.DB.Where("attempt_id = ? AND is_deleted = false", attempt.ID).Find(&answers).Error; err != nil {
		return nil, err
	}
	answerByQuestion := make(map[uint]quizModels.Answer, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuestionID] = a
	}

	var review []ReviewQuestion
	for _, question := range shuffledQuestions(questions, q, attempt.ID) {
		rq := ReviewQuestion{
			QuestionID:  question.ID,
			Type:        question.Type,
			Text:        question.Text,
			Points:      question.Points,
			Explanation: question.Explanation,
		}

		if question.IsObjective() {
			var options []quizModels.Option
			if err := s.DB.Where("question_id = ? AND is_deleted = false", question.ID).
				Find(&options).Error; err != nil {
				return nil, err
			}
			for _, opt := range shuffledOptions(options, q, attempt.ID, question.ID) {
				rq.Options = append(rq.Options, ReviewOption{
					OptionID:  opt.ID,
					Text:      opt.Text,
					IsCorrect: opt.IsCorrect,
				})
			}
		}

		if ans, ok := answerByQuestion[question.ID]; ok {
			rq.SelectedOptionID = ans.SelectedOptionID
			rq.TextAnswer = ans.TextAnswer
			rq.IsCorrect = ans.IsCorrect
			rq.PointsEarned = ans.PointsEarned
			rq.Feedback = ans.Feedback
			rq.AIScore = ans.AIScore
			rq.AIFeedback = ans.AIFeedback
		}

		review = append(review, rq)
	}

	return review, nil
}
