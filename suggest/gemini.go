package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Models tried in order; cheaper/faster models first.
var defaultGeminiModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-1.5-pro",
}

// GeminiClient calls the Gemini generateContent REST endpoint to produce
// nearby-help suggestions for an SOS location.
type GeminiClient struct {
	apiKey  string
	baseURL string
	models  []string
	client  *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		models:  defaultGeminiModels,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *GeminiClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

// ModelNames lists the configured model candidates, for the status endpoint.
func (c *GeminiClient) ModelNames() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.models))
	copy(out, c.models)
	return out
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Suggestions asks Gemini for emergency services near the location. Models
// are tried in order; quota errors skip to the next model immediately.
func (c *GeminiClient) Suggestions(ctx context.Context, lat, lng float64) (*models.EmergencySuggestions, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("gemini: no API key configured")
	}

	prompt := buildPrompt(lat, lng)

	var lastErr error
	for _, model := range c.models {
		suggestions, err := c.generate(ctx, model, prompt)
		if err == nil {
			suggestions.Source = "gemini:" + model
			return suggestions, nil
		}
		lastErr = err
		if isQuotaError(err) {
			log.Printf("Gemini: model %s quota exhausted, trying next model", model)
			continue
		}
		log.Printf("Gemini: model %s failed: %v", model, err)
	}
	return nil, fmt.Errorf("gemini: all models failed: %v", lastErr)
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt string) (*models.EmergencySuggestions, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &quotaError{model: model}
	}
	if resp.StatusCode != http.StatusOK {
		if strings.Contains(string(body), "RESOURCE_EXHAUSTED") {
			return nil, &quotaError{model: model}
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	text := cleanJSONText(gr.Candidates[0].Content.Parts[0].Text)

	var suggestions models.EmergencySuggestions
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %v", err)
	}

	suggestions.Normalize()
	return &suggestions, nil
}

type quotaError struct {
	model string
}

func (e *quotaError) Error() string {
	return fmt.Sprintf("quota exhausted for model %s", e.model)
}

func isQuotaError(err error) bool {
	if _, ok := err.(*quotaError); ok {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted")
}

// cleanJSONText strips the markdown code fences models like to wrap
// JSON answers in.
func cleanJSONText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func buildPrompt(lat, lng float64) string {
	return fmt.Sprintf(`A person triggered an SOS alert at latitude %.6f, longitude %.6f.
List real emergency services near this location as pure JSON, no markdown, with exactly these keys:
{
  "hospitals": [{"name": "", "address": "", "phone": "", "distance": ""}],
  "police_stations": [{"name": "", "address": "", "phone": "", "distance": ""}],
  "mechanics": [{"name": "", "address": "", "phone": "", "distance": ""}],
  "hotels_restrooms": [{"name": "", "address": "", "phone": "", "distance": ""}],
  "emergency_tips": [""]
}
Limit each list to 3 entries. If you are not sure about an entry, leave the list empty.`, lat, lng)
}
