package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	result, err := parseResult(`{"score": 72.5, "feedback": "Decent.", "strengths": ["clear"], "improvements": ["depth"]}`)
	require.NoError(t, err)

	assert.Equal(t, 72.5, result.Score)
	assert.Equal(t, "Decent.", result.Feedback)
	assert.Equal(t, []string{"clear"}, result.Strengths)
	assert.Equal(t, []string{"depth"}, result.Improvements)
}

func TestParseResultTrimsMarkdownFences(t *testing.T) {
	content := "```json\n{\"score\": 90, \"feedback\": \"Great.\"}\n```"

	result, err := parseResult(content)
	require.NoError(t, err)
	assert.Equal(t, 90.0, result.Score)
}

func TestParseResultClampsScore(t *testing.T) {
	result, err := parseResult(`{"score": 140, "feedback": ""}`)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)

	result, err = parseResult(`{"score": -5, "feedback": ""}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
}

func TestParseResultRejectsNonJSON(t *testing.T) {
	_, err := parseResult("I would give this answer a 7/10.")
	assert.Error(t, err)
}

func TestGradingPromptIncludesModelAnswer(t *testing.T) {
	prompt := gradingPrompt("What is a goroutine?", "A lightweight thread.", "A function running concurrently.")

	assert.Contains(t, prompt, "What is a goroutine?")
	assert.Contains(t, prompt, "A lightweight thread.")
	assert.Contains(t, prompt, "Model answer: A function running concurrently.")

	// Model answer section is dropped when there is none
	prompt = gradingPrompt("Q", "A", "")
	assert.NotContains(t, prompt, "Model answer")
}
