package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// OpenAIGrader grades answers through the OpenAI chat completions API
type OpenAIGrader struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIGrader creates an OpenAI-backed grader
func NewOpenAIGrader(baseURL, apiKey, model string) *OpenAIGrader {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGrader{
		client:  resty.New(),
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// Grade implements the Grader interface
func (g *OpenAIGrader) Grade(ctx context.Context, questionText, studentAnswer, modelAnswer string) (*Result, error) {
	body := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": gradingPrompt(questionText, studentAnswer, modelAnswer)},
		},
		"temperature": 0.2,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+g.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(g.baseURL + "/chat/completions")
	if err != nil {
		log.Printf("OpenAI request failed: %v", err)
		return nil, ErrUnavailable
	}
	if resp.StatusCode() != 200 {
		log.Printf("OpenAI returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, ErrUnavailable
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &chatResp); err != nil {
		return nil, fmt.Errorf("invalid OpenAI response: %v", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty OpenAI response")
	}

	return parseResult(chatResp.Choices[0].Message.Content)
}
