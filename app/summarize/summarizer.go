package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrRateLimited marks a quota rejection from the model API. Callers retry
// these with backoff and skip the entry when the budget runs out.
var ErrRateLimited = errors.New("model rate limited")

// Result is the structured digest of one filing.
type Result struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
}

var systemInstruction = `
You are a top Wall Street analyst covering breaking corporate disclosures.

You will receive the text of an SEC filing (a current report on Form 8-K).
Summarize the materially significant facts for a trader deciding within
minutes whether the filing matters.

Rules:
* The summary must be 50-80 words of plain prose. No bullet points.
* Lead with the single most market-moving fact.
* Include concrete numbers (dollar amounts, percentages, dates) when the
  filing states them. Never invent figures.
* Classify the overall sentiment for the company's shareholders as exactly
  one of: "Bullish 📈", "Bearish 📉", "Neutral ⚖️".
`

// Summarizer produces trader-oriented digests of filing text through the
// Gemini API.
type Summarizer struct {
	client *genai.Client
	model  string
}

func NewSummarizer(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Summarizer{client: client, model: model}, nil
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (*Result, error) {
	contents := []*genai.Content{
		{Role: "system", Parts: []*genai.Part{{Text: systemInstruction}}},
		{Role: "user", Parts: []*genai.Part{{Text: "Analyze the following filing text:\n\n---\n" + text}}},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		if isRateLimited(err) {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	respText := resp.Text()

	var result Result
	if err := json.Unmarshal([]byte(respText), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini JSON response: %w", err)
	}
	if strings.TrimSpace(result.Summary) == "" {
		return nil, fmt.Errorf("gemini returned an empty summary")
	}

	return &result, nil
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "50-80 words of plain prose leading with the most market-moving fact.",
			},
			"sentiment": {
				Type:        genai.TypeString,
				Description: `Exactly one of "Bullish 📈", "Bearish 📉", "Neutral ⚖️".`,
			},
		},
		Required: []string{"summary", "sentiment"},
	}
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429
	}
	return strings.Contains(err.Error(), "RESOURCE_EXHAUSTED")
}
