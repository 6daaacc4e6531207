package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tweetvault/pkg/archive"
)

const (
	anthropicAPI     = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	defaultModel     = "claude-sonnet-4-20250514"
)

// Classifier suggests tags for entry text via the Anthropic API.
type Classifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClassifier builds a Classifier. An empty model selects the default.
func NewClassifier(apiKey, model string) (*Classifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key not set")
	}
	if model == "" {
		model = defaultModel
	}

	return &Classifier{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicAPI,
		client:  http.DefaultClient,
	}, nil
}

// Classify analyzes one entry's text and returns tag suggestions.
func (c *Classifier) Classify(ctx context.Context, text string, existingTags []string) ([]Suggestion, error) {
	prompt := buildPrompt(text, existingTags)

	resp, err := c.callAPI(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}

	return parseResponse(resp)
}

func buildPrompt(text string, existingTags []string) string {
	var sb strings.Builder

	sb.WriteString("Classify this tweet from a personal archive and suggest tags. Return JSON only.\n\n")
	sb.WriteString("Tweet:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")

	if len(existingTags) > 0 {
		sb.WriteString("Existing tags in the archive (prefer reusing these when appropriate):\n")
		for _, tag := range existingTags {
			sb.WriteString("- ")
			sb.WriteString(tag)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`Return a JSON object with this structure:
{
  "tags": [
    {"name": "tag-name", "category": "topic", "confidence": 0.9}
  ]
}

Rules:
- Use lowercase, hyphenated tag names (e.g., "machine-learning" not "Machine Learning")
- Suggest 1-4 relevant tags
- category must be one of: topic (what it is about), pattern (what form it takes, e.g. question, hot-take, announcement), use (what it could be reused for, e.g. newsletter, talk)
- Confidence is 0.0-1.0 based on how certain the classification is
- Reuse existing tags when they fit; create new ones when needed
- Keep tags general enough to be reusable across the archive

Return ONLY the JSON, no other text.`)

	return sb.String()
}

type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Classifier) callAPI(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: 1024,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("api error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return apiResp.Content[0].Text, nil
}

type llmTag struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type llmResult struct {
	Tags []llmTag `json:"tags"`
}

func parseResponse(resp string) ([]Suggestion, error) {
	// Clean up response - remove markdown code blocks if present
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var result llmResult
	if err := json.Unmarshal([]byte(resp), &result); err != nil {
		return nil, fmt.Errorf("parse json: %w (response: %s)", err, resp)
	}

	suggestions := make([]Suggestion, 0, len(result.Tags))
	for _, tag := range result.Tags {
		name := archive.NormalizeTagName(tag.Name)
		if name == "" {
			continue
		}
		category := tag.Category
		if !archive.ValidCategory(category) {
			category = archive.CategoryCustom
		}
		suggestions = append(suggestions, Suggestion{
			Tag:        name,
			Category:   category,
			Confidence: tag.Confidence,
		})
	}

	return suggestions, nil
}
