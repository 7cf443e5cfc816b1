// Package grading wraps the external AI scoring capability behind a
// single interface. Results are suggestions only — promoting a
// suggestion into an authoritative grade is always a separate,
// explicit action in the attempt service.
package grading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"uniportal/config"
)

// ErrUnavailable signals the capability is down; callers degrade to
// manual grading and may retry later.
var ErrUnavailable = errors.New("AI grading capability unavailable")

// Result is the AI's suggested evaluation of one answer
type Result struct {
	Score        float64  `json:"score"` // 0-100
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Grader scores a free-text answer against the question and an
// optional model answer.
type Grader interface {
	Grade(ctx context.Context, questionText, studentAnswer, modelAnswer string) (*Result, error)
}

// NewFromConfig selects the configured provider once at startup.
// Returns nil when AI grading is disabled.
func NewFromConfig() Grader {
	switch config.AppConfig.AIProvider {
	case "openai":
		return NewOpenAIGrader(config.AppConfig.OpenAIApiURL, config.AppConfig.OpenAIKey, config.AppConfig.AIModel)
	case "gemini":
		return NewGeminiGrader(config.AppConfig.GeminiApiURL, config.AppConfig.GeminiKey, config.AppConfig.AIModel)
	default:
		return nil
	}
}

// gradingPrompt builds the instruction sent to either provider
func gradingPrompt(questionText, studentAnswer, modelAnswer string) string {
	var b strings.Builder
	b.WriteString("You are grading a student's short answer. Respond with JSON only, no prose, using keys ")
	b.WriteString(`"score" (number 0-100), "feedback" (string), "strengths" (string array), "improvements" (string array).`)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(questionText)
	if modelAnswer != "" {
		b.WriteString("\n\nModel answer: ")
		b.WriteString(modelAnswer)
	}
	b.WriteString("\n\nStudent answer: ")
	b.WriteString(studentAnswer)
	return b.String()
}

// parseResult extracts the JSON object from a model reply. Providers
// sometimes wrap the JSON in markdown fences, so trim to the braces.
func parseResult(content string) (*Result, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in AI response")
	}

	var result Result
	if err := json.Unmarshal([]byte(content[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %v", err)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return &result, nil
}
