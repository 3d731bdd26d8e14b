package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

func report(id int64, feedbackType string) models.FeedbackReport {
	return models.FeedbackReport{
		ID:        id,
		Lat:       28.6,
		Lng:       77.2,
		Type:      feedbackType,
		UserName:  "Priya",
		Timestamp: time.Now(),
	}
}

func TestFeedPrependsNewestFirst(t *testing.T) {
	feed := NewFeedbackFeed(nil, NewMarkerRegistry())

	feed.ApplyNew(report(1, "theft"))
	feed.ApplyNew(report(2, "well_lit"))
	feed.ApplyNew(report(3, "harassment"))

	items := feed.Items()
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].ID != 3 || items[1].ID != 2 || items[2].ID != 1 {
		t.Errorf("feed order wrong: %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestFeedCapsAtTen(t *testing.T) {
	markers := NewMarkerRegistry()
	feed := NewFeedbackFeed(nil, markers)

	for i := int64(1); i <= 12; i++ {
		feed.ApplyNew(report(i, "theft"))
	}

	items := feed.Items()
	if len(items) != 10 {
		t.Fatalf("got %d items, cap is 10", len(items))
	}
	if items[0].ID != 12 || items[9].ID != 3 {
		t.Errorf("cap kept the wrong reports: first=%d last=%d", items[0].ID, items[9].ID)
	}
	if markers.Count(GroupFeedback) != 10 {
		t.Errorf("feedback markers = %d, want 10", markers.Count(GroupFeedback))
	}
}

func TestFeedClearAll(t *testing.T) {
	markers := NewMarkerRegistry()
	feed := NewFeedbackFeed(nil, markers)

	feed.ApplyNew(report(1, "theft"))
	feed.ApplyNew(report(2, "accident"))
	feed.ApplyClearAll()

	if len(feed.Items()) != 0 {
		t.Error("clear-all left reports in the feed")
	}
	if markers.Count(GroupFeedback) != 0 {
		t.Error("clear-all left feedback markers")
	}
}

func TestClearAllWipesMapState(t *testing.T) {
	srv := routesBackend(t, twoRouteResult())
	defer srv.Close()

	markers := NewMarkerRegistry()
	planner := NewRoutePlanner(NewAPIClient(srv.URL), markers)
	feed := NewFeedbackFeed(nil, markers)
	feed.OnClearAll(planner.Reset)

	if err := planner.Search(context.Background(), models.LatLng{Lat: 1}, models.LatLng{Lat: 2}); err != nil {
		t.Fatal(err)
	}
	feed.ApplyNew(report(1, "theft"))
	markers.Add(GroupServices, Marker{Lat: 28.6, Lng: 77.2, Label: "City Hospital", Kind: "service"})

	feed.HandleEvent(EventDataCleared, nil)

	for _, group := range []string{GroupRoutes, GroupCrime, GroupFeedback, GroupServices} {
		if n := markers.Count(group); n != 0 {
			t.Errorf("%s markers = %d after data_cleared, want 0", group, n)
		}
	}
	if len(feed.Items()) != 0 {
		t.Error("data_cleared left reports in the feed")
	}
	if len(planner.Views()) != 0 {
		t.Error("data_cleared left route candidates behind")
	}
	if planner.Selected() != -1 {
		t.Errorf("selection = %d after data_cleared, want -1", planner.Selected())
	}
}

func TestFeedHandleEvent(t *testing.T) {
	feed := NewFeedbackFeed(nil, NewMarkerRegistry())

	payload, _ := json.Marshal(report(7, "poor_lighting"))
	feed.HandleEvent(EventNewFeedback, payload)
	if len(feed.Items()) != 1 {
		t.Fatal("new_feedback event not applied")
	}

	// Unknown events are ignored
	feed.HandleEvent("server_gossip", json.RawMessage(`{"x":1}`))
	if len(feed.Items()) != 1 {
		t.Error("unknown event mutated the feed")
	}

	feed.HandleEvent(EventDataCleared, nil)
	if len(feed.Items()) != 0 {
		t.Error("data_cleared event not applied")
	}
}

func TestFeedLoadSeedsAndTrims(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/get-feedback", func(w http.ResponseWriter, r *http.Request) {
		reports := make([]models.FeedbackReport, 0, 15)
		for i := int64(15); i >= 1; i-- {
			reports = append(reports, report(i, "theft"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"feedback":`)
		json.NewEncoder(w).Encode(reports)
		fmt.Fprint(w, `}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	markers := NewMarkerRegistry()
	feed := NewFeedbackFeed(NewAPIClient(srv.URL), markers)

	if err := feed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	items := feed.Items()
	if len(items) != 10 {
		t.Fatalf("Load kept %d items, want 10", len(items))
	}
	if items[0].ID != 15 {
		t.Errorf("newest report has ID %d, want 15", items[0].ID)
	}
	if markers.Count(GroupFeedback) != 10 {
		t.Errorf("feedback markers = %d, want 10", markers.Count(GroupFeedback))
	}
}

func TestStyleForFeedback(t *testing.T) {
	if got := StyleForFeedback("harassment"); got.Color != "#dc2626" {
		t.Errorf("harassment color = %q", got.Color)
	}
	if got := StyleForFeedback("brand_new_type"); got.Label != "Report" {
		t.Errorf("unknown type style = %+v, want neutral default", got)
	}
}
