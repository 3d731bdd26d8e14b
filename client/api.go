package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// SOS submissions get a long leash: the server may be waiting on the
	// suggestion chain before answering.
	alertRequestTimeout = 30 * time.Second
)

// APIClient talks to the SafeRoute backend API.
type APIClient struct {
	baseURL     string
	client      *http.Client
	alertClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: defaultRequestTimeout},
		alertClient: &http.Client{Timeout: alertRequestTimeout},
	}
}

// RoutesResult mirrors the /get-routes response.
type RoutesResult struct {
	Success   bool                   `json:"success"`
	Routes    []models.RouteOption   `json:"routes"`
	CrimeData []models.CrimeIncident `json:"crime_data"`
	Error     string                 `json:"error,omitempty"`
}

func (c *APIClient) GetRoutes(ctx context.Context, from, to models.LatLng) (*RoutesResult, error) {
	body := map[string]models.LatLng{"from": from, "to": to}

	var result RoutesResult
	if err := c.post(ctx, c.client, "/api/v1/get-routes", body, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "route search failed"
		}
		return nil, fmt.Errorf("get-routes: %s", msg)
	}
	return &result, nil
}

type feedbackPage struct {
	Success  bool                    `json:"success"`
	Feedback []models.FeedbackReport `json:"feedback"`
}

func (c *APIClient) GetFeedback(ctx context.Context) ([]models.FeedbackReport, error) {
	var page feedbackPage
	if err := c.get(ctx, "/api/v1/get-feedback", &page); err != nil {
		return nil, err
	}
	return page.Feedback, nil
}

// FeedbackSubmission is the body for /post-feedback.
type FeedbackSubmission struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	UserName    string  `json:"user_name"`
}

// ErrEmptyDescription rejects a report before it leaves the device; the
// form keeps focus and nothing is sent.
var ErrEmptyDescription = errors.New("feedback description must not be empty")

func (c *APIClient) PostFeedback(ctx context.Context, sub FeedbackSubmission) (*models.FeedbackReport, error) {
	if strings.TrimSpace(sub.Description) == "" {
		return nil, ErrEmptyDescription
	}
	var resp struct {
		Success  bool                  `json:"success"`
		Feedback models.FeedbackReport `json:"feedback"`
	}
	if err := c.post(ctx, c.client, "/api/v1/post-feedback", sub, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("post-feedback rejected")
	}
	return &resp.Feedback, nil
}

// AlertSubmission is the body for /send-alert.
type AlertSubmission struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Accuracy  float64 `json:"accuracy"`
	UserName  string  `json:"user_name"`
	Timestamp string  `json:"timestamp"`
}

// AlertResult mirrors the /send-alert response. Suggestions may be nil:
// the alert still went through, the help content just degraded.
type AlertResult struct {
	Success     bool                         `json:"success"`
	AlertID     string                       `json:"alert_id"`
	Message     string                       `json:"message"`
	Suggestions *models.EmergencySuggestions `json:"emergency_suggestions"`
}

func (c *APIClient) SendAlert(ctx context.Context, sub AlertSubmission) (*AlertResult, error) {
	var result AlertResult
	if err := c.post(ctx, c.alertClient, "/api/v1/send-alert", sub, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("send-alert rejected")
	}
	return &result, nil
}

func (c *APIClient) ClearAllData(ctx context.Context, confirmation string) error {
	body := map[string]string{"confirmation": confirmation}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.post(ctx, c.client, "/api/v1/clear-all-data", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("clear-all-data rejected")
	}
	return nil
}

func (c *APIClient) post(ctx context.Context, hc *http.Client, path string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("error building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %v", err)
	}
	return nil
}

func (c *APIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error building request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %v", err)
	}
	return nil
}
