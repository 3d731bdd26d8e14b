package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	gocache "github.com/patrickmn/go-cache"
	"time"
)

func TestServiceFallsBackToGeneric(t *testing.T) {
	// No Gemini key, no Maps client: the chain must still produce content
	svc := NewService(NewGeminiClient(""), NewPlacesFinder(nil, "112"), "112", nil)

	got := svc.Suggest(context.Background(), 28.6139, 77.2090)
	if got == nil {
		t.Fatal("Suggest returned nil")
	}
	if got.Source != "generic" {
		t.Errorf("Source = %q, want generic", got.Source)
	}
	if len(got.EmergencyTips) == 0 {
		t.Error("generic payload has no tips")
	}
	if len(got.Hospitals) == 0 || got.Hospitals[0].Phone != "112" {
		t.Errorf("generic payload missing emergency number card: %+v", got.Hospitals)
	}
}

func TestServicePrefersGemini(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(geminiText(t, fencedSuggestions))
	}))
	defer srv.Close()

	gemini := NewGeminiClient("test-key")
	gemini.baseURL = srv.URL

	svc := NewService(gemini, NewPlacesFinder(nil, "112"), "112", nil)

	got := svc.Suggest(context.Background(), 28.6139, 77.2090)
	if got.Source != "gemini:gemini-1.5-flash" {
		t.Errorf("Source = %q, want the first gemini model", got.Source)
	}
}

func TestServiceCachesNonGenericResults(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write(geminiText(t, fencedSuggestions))
	}))
	defer srv.Close()

	gemini := NewGeminiClient("test-key")
	gemini.baseURL = srv.URL

	c := gocache.New(time.Minute, time.Minute)
	svc := NewService(gemini, NewPlacesFinder(nil, "112"), "112", c)

	svc.Suggest(context.Background(), 28.6139, 77.2090)
	svc.Suggest(context.Background(), 28.6139, 77.2090)

	if calls != 1 {
		t.Errorf("expected 1 upstream call with a warm cache, got %d", calls)
	}
}

func TestServiceStatus(t *testing.T) {
	svc := NewService(NewGeminiClient("test-key"), NewPlacesFinder(nil, "112"), "112", nil)

	status := svc.Status()
	if !status.Configured {
		t.Error("status should report configured with a key present")
	}
	if len(status.Models) == 0 {
		t.Error("status lists no models")
	}
}
