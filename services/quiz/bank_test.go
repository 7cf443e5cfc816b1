package quiz

import (
	"testing"

	quizModels "uniportal/models/quiz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizStartsDraft(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)

	assert.Equal(t, quizModels.StatusDraft, q.Status)
	assert.Equal(t, 0.0, q.TotalPoints)
}

func TestCreateQuizValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	in := quizInput(offering.ID)
	in.Title = "  "
	in.Duration = 0
	in.PassingScore = 150

	_, err := svc.CreateQuiz(1, in)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	ve := err.(*ValidationError)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "duration")
	assert.Contains(t, ve.Fields, "passing_score")
}

func TestTotalPointsFollowsQuestionMutations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)

	q1, err := svc.AddQuestion(q.ID, mcqInput("Q1", 4, 0))
	require.NoError(t, err)
	q2, err := svc.AddQuestion(q.ID, shortAnswerInput("Q2", 6, 1))
	require.NoError(t, err)

	reload := func() float64 {
		var fresh quizModels.Quiz
		require.NoError(t, db.First(&fresh, q.ID).Error)
		return fresh.TotalPoints
	}
	assert.Equal(t, 10.0, reload())

	// Updating a question's points re-derives the total
	in := mcqInput("Q1", 2, 0)
	_, err = svc.UpdateQuestion(q1.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 8.0, reload())

	require.NoError(t, svc.DeleteQuestion(q2.ID))
	assert.Equal(t, 2.0, reload())
}

func TestQuestionOptionInvariants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   QuestionInput
	}{
		{"mcq with one option", QuestionInput{
			Type: quizModels.TypeMultipleChoice, Difficulty: "EASY", Text: "Q", Points: 1,
			Options: []OptionInput{{Text: "only", IsCorrect: true}},
		}},
		{"mcq with no correct option", QuestionInput{
			Type: quizModels.TypeMultipleChoice, Difficulty: "EASY", Text: "Q", Points: 1,
			Options: []OptionInput{{Text: "a"}, {Text: "b"}},
		}},
		{"mcq with two correct options", QuestionInput{
			Type: quizModels.TypeMultipleChoice, Difficulty: "EASY", Text: "Q", Points: 1,
			Options: []OptionInput{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}},
		}},
		{"true false with three options", QuestionInput{
			Type: quizModels.TypeTrueFalse, Difficulty: "EASY", Text: "Q", Points: 1,
			Options: []OptionInput{{Text: "t", IsCorrect: true}, {Text: "f"}, {Text: "?"}},
		}},
		{"short answer with options", QuestionInput{
			Type: quizModels.TypeShortAnswer, Difficulty: "EASY", Text: "Q", Points: 1,
			Options: []OptionInput{{Text: "a", IsCorrect: true}},
		}},
		{"unknown type", QuestionInput{
			Type: "ESSAY", Difficulty: "EASY", Text: "Q", Points: 1,
		}},
		{"zero points", QuestionInput{
			Type: quizModels.TypeShortAnswer, Difficulty: "EASY", Text: "Q", Points: 0,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddQuestion(q.ID, tt.in)
			assert.True(t, IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestPublishRequiresQuestions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)

	_, err = svc.Publish(q.ID)
	assert.True(t, IsValidationError(err))

	_, err = svc.AddQuestion(q.ID, mcqInput("Q1", 1, 0))
	require.NoError(t, err)

	published, err := svc.Publish(q.ID)
	require.NoError(t, err)
	assert.Equal(t, quizModels.StatusPublished, published.Status)

	// Publish is DRAFT-only
	_, err = svc.Publish(q.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCloseRequiresPublished(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)

	_, err = svc.Close(q.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.AddQuestion(q.ID, mcqInput("Q1", 1, 0))
	require.NoError(t, err)
	_, err = svc.Publish(q.ID)
	require.NoError(t, err)

	closed, err := svc.Close(q.ID)
	require.NoError(t, err)
	assert.Equal(t, quizModels.StatusClosed, closed.Status)
}

func TestQuizLockedAfterPublish(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)
	question, err := svc.AddQuestion(q.ID, mcqInput("Q1", 1, 0))
	require.NoError(t, err)
	_, err = svc.Publish(q.ID)
	require.NoError(t, err)

	_, err = svc.UpdateQuiz(q.ID, quizInput(offering.ID))
	assert.ErrorIs(t, err, ErrQuizLocked)

	_, err = svc.AddQuestion(q.ID, mcqInput("Q2", 1, 1))
	assert.ErrorIs(t, err, ErrQuizLocked)

	_, err = svc.UpdateQuestion(question.ID, mcqInput("Q1 edited", 2, 0))
	assert.ErrorIs(t, err, ErrQuizLocked)

	assert.ErrorIs(t, svc.DeleteQuestion(question.ID), ErrQuizLocked)
}

func TestDeleteQuizWithAttemptsRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	attempts := NewAttemptService(db, nil)
	offering := createOffering(t, db)
	student := createStudent(t, db, "s1@test.edu")
	enrollStudent(t, db, offering.ID, student.ID)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)
	_, err = svc.AddQuestion(q.ID, mcqInput("Q1", 1, 0))
	require.NoError(t, err)
	_, err = svc.Publish(q.ID)
	require.NoError(t, err)

	_, err = attempts.StartOrResume(student.ID, q.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteQuiz(q.ID), ErrHasAttempts)
}

func TestDeleteQuizCascadesQuestionsAndOptions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)
	question, err := svc.AddQuestion(q.ID, mcqInput("Q1", 1, 0))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuiz(q.ID))

	var liveQuestions, liveOptions int64
	require.NoError(t, db.Model(&quizModels.Question{}).
		Where("quiz_id = ? AND is_deleted = false", q.ID).Count(&liveQuestions).Error)
	require.NoError(t, db.Model(&quizModels.Option{}).
		Where("question_id = ? AND is_deleted = false", question.ID).Count(&liveOptions).Error)

	assert.Zero(t, liveQuestions)
	assert.Zero(t, liveOptions)
}

func TestQuestionsCanonicalOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBankService(db)
	offering := createOffering(t, db)

	q, err := svc.CreateQuiz(1, quizInput(offering.ID))
	require.NoError(t, err)

	_, err = svc.AddQuestion(q.ID, mcqInput("second", 1, 1))
	require.NoError(t, err)
	_, err = svc.AddQuestion(q.ID, mcqInput("first", 1, 0))
	require.NoError(t, err)

	questions, err := svc.Questions(q.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "first", questions[0].Text)
	assert.Equal(t, "second", questions[1].Text)
}
