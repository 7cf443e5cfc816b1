package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// GeminiGrader grades answers through the Gemini generateContent API
type GeminiGrader struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiGrader creates a Gemini-backed grader
func NewGeminiGrader(baseURL, apiKey, model string) *GeminiGrader {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiGrader{
		client:  resty.New(),
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// Grade implements the Grader interface
func (g *GeminiGrader) Grade(ctx context.Context, questionText, studentAnswer, modelAnswer string) (*Result, error) {
	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": gradingPrompt(questionText, studentAnswer, modelAnswer)},
				},
			},
		},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		log.Printf("Gemini request failed: %v", err)
		return nil, ErrUnavailable
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gemini returned status %d: %s", resp.StatusCode(), resp.String())
		return nil, ErrUnavailable
	}

	var genResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(resp.Body(), &genResp); err != nil {
		return nil, fmt.Errorf("invalid Gemini response: %v", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty Gemini response")
	}

	return parseResult(genResp.Candidates[0].Content.Parts[0].Text)
}
