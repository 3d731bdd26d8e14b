package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func geminiText(t *testing.T, text string) []byte {
	t.Helper()
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

const fencedSuggestions = "```json\n" + `{
  "hospitals": [{"name": "City Hospital", "address": "MG Road", "phone": "+911122334455", "distance": "1.2 km"}],
  "police_stations": [],
  "emergency_tips": ["Stay calm"]
}` + "\n```"

func TestGeminiModelFallbackOnQuota(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1beta/models/", func(w http.ResponseWriter, r *http.Request) {
		model := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1beta/models/"), ":generateContent")
		calls = append(calls, model)
		if model == "gemini-1.5-flash" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(geminiText(t, fencedSuggestions))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewGeminiClient("test-key")
	client.baseURL = srv.URL

	got, err := client.Suggestions(context.Background(), 28.6139, 77.2090)
	if err != nil {
		t.Fatalf("Suggestions() error: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 model attempts, got %v", calls)
	}
	if got.Source != "gemini:gemini-1.5-flash-8b" {
		t.Errorf("Source = %q, want the second model", got.Source)
	}
	if len(got.Hospitals) != 1 || got.Hospitals[0].Name != "City Hospital" {
		t.Errorf("hospitals not parsed: %+v", got.Hospitals)
	}
	// Keys the model omitted must still be present and iterable
	if got.Mechanics == nil || got.HotelsRestrooms == nil {
		t.Error("missing categories were not normalized to empty slices")
	}
}

func TestGeminiAllModelsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key")
	client.baseURL = srv.URL

	if _, err := client.Suggestions(context.Background(), 28.6139, 77.2090); err == nil {
		t.Fatal("expected error when every model fails")
	}
}

func TestGeminiNotConfigured(t *testing.T) {
	client := NewGeminiClient("")
	if client.Configured() {
		t.Error("client without key reports configured")
	}
	if _, err := client.Suggestions(context.Background(), 0, 0); err == nil {
		t.Error("expected error without an API key")
	}
}

func TestGeminiInvalidJSONFromModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiText(t, "sorry, I cannot help with that"))
	}))
	defer srv.Close()

	client := NewGeminiClient("test-key")
	client.baseURL = srv.URL

	if _, err := client.Suggestions(context.Background(), 28.6139, 77.2090); err == nil {
		t.Fatal("expected error for non-JSON model output")
	}
}

func TestCleanJSONText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONText(tt.in); got != tt.want {
				t.Errorf("cleanJSONText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	if !isQuotaError(&quotaError{model: "m"}) {
		t.Error("quotaError not detected")
	}
	if !isQuotaError(errNamed("RESOURCE_EXHAUSTED: out of quota")) {
		t.Error("RESOURCE_EXHAUSTED text not detected")
	}
	if isQuotaError(errNamed("connection refused")) {
		t.Error("unrelated error flagged as quota")
	}
}

type errNamed string

func (e errNamed) Error() string { return string(e) }
