package quiz

import (
	"testing"

	quizModels "uniportal/models/quiz"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []quizModels.Question {
	questions := make([]quizModels.Question, n)
	for i := range questions {
		questions[i].ID = uint(i + 1)
		questions[i].OrderIndex = i
	}
	return questions
}

func questionIDs(questions []quizModels.Question) []uint {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestShuffledQuestionsStablePerAttempt(t *testing.T) {
	q := &quizModels.Quiz{ShuffleQuestions: true}
	questions := makeQuestions(10)

	first := questionIDs(shuffledQuestions(questions, q, 7))
	second := questionIDs(shuffledQuestions(questions, q, 7))

	// Same attempt always sees the same order
	assert.Equal(t, first, second)

	// Other attempts get their own permutations
	differs := false
	for attemptID := uint(8); attemptID < 16; attemptID++ {
		other := questionIDs(shuffledQuestions(questions, q, attemptID))
		if !assert.ObjectsAreEqual(first, other) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "every attempt saw the identical order")
}

func TestShuffledQuestionsCanonicalWhenDisabled(t *testing.T) {
	q := &quizModels.Quiz{ShuffleQuestions: false}

	// Feed them in out of order; order_index wins
	questions := makeQuestions(3)
	questions[0].OrderIndex = 2
	questions[2].OrderIndex = 0

	ordered := shuffledQuestions(questions, q, 42)
	assert.Equal(t, []uint{3, 2, 1}, questionIDs(ordered))
}

func TestShuffledOptionsIndependentPerQuestion(t *testing.T) {
	q := &quizModels.Quiz{ShuffleOptions: true}

	options := make([]quizModels.Option, 6)
	for i := range options {
		options[i].ID = uint(i + 1)
		options[i].OrderIndex = i
	}

	ids := func(opts []quizModels.Option) []uint {
		out := make([]uint, len(opts))
		for i, o := range opts {
			out[i] = o.ID
		}
		return out
	}

	a := ids(shuffledOptions(options, q, 7, 1))
	again := ids(shuffledOptions(options, q, 7, 1))
	assert.Equal(t, a, again)

	differs := false
	for questionID := uint(2); questionID < 10; questionID++ {
		b := ids(shuffledOptions(options, q, 7, questionID))
		if !assert.ObjectsAreEqual(a, b) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "every question saw the identical option order")
}
