package quiz

import (
	"math/rand"
	"sort"

	quizModels "uniportal/models/quiz"
)

// Display order must be stable across reloads and resumptions of the
// same attempt, and independent across attempts. Both properties fall
// out of seeding the permutation from the attempt (and question) IDs
// and re-deriving it on every read — no shuffle state is stored.

func shuffledQuestions(questions []quizModels.Question, q *quizModels.Quiz, attemptID uint) []quizModels.Question {
	ordered := make([]quizModels.Question, len(questions))
	copy(ordered, questions)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].OrderIndex != ordered[j].OrderIndex {
			return ordered[i].OrderIndex < ordered[j].OrderIndex
		}
		return ordered[i].ID < ordered[j].ID
	})

	if q.ShuffleQuestions {
		rng := rand.New(rand.NewSource(int64(attemptID)))
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}

func shuffledOptions(options []quizModels.Option, q *quizModels.Quiz, attemptID, questionID uint) []quizModels.Option {
	ordered := make([]quizModels.Option, len(options))
	copy(ordered, options)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].OrderIndex != ordered[j].OrderIndex {
			return ordered[i].OrderIndex < ordered[j].OrderIndex
		}
		return ordered[i].ID < ordered[j].ID
	})

	if q.ShuffleOptions {
		// Mix the question ID in so each question gets its own permutation
		rng := rand.New(rand.NewSource(int64(attemptID)<<20 | int64(questionID)))
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}
