package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostFeedbackRequiresDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent despite empty description")
	}))
	defer srv.Close()
	api := NewAPIClient(srv.URL)

	for _, description := range []string{"", "   ", "\t\n"} {
		_, err := api.PostFeedback(context.Background(), FeedbackSubmission{
			Lat:         28.6139,
			Lng:         77.2090,
			Type:        "theft",
			Description: description,
			UserName:    "Priya",
		})
		if err != ErrEmptyDescription {
			t.Errorf("PostFeedback(description=%q) = %v, want ErrEmptyDescription", description, err)
		}
	}
}
