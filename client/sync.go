package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

// The feed keeps only the newest reports; older ones scroll off.
const feedCapacity = 10

// Push channel event names.
const (
	EventNewFeedback = "new_feedback"
	EventDataCleared = "data_cleared"
)

// FeedbackStyle is the pin color and display label for a report type.
type FeedbackStyle struct {
	Color string
	Label string
}

var feedbackStyles = map[string]FeedbackStyle{
	"harassment":      {Color: "#dc2626", Label: "Harassment"},
	"poor_lighting":   {Color: "#f59e0b", Label: "Poor Lighting"},
	"unsafe_area":     {Color: "#7c3aed", Label: "Unsafe Area"},
	"theft":           {Color: "#db2777", Label: "Theft"},
	"accident":        {Color: "#ea580c", Label: "Accident"},
	"well_lit":        {Color: "#16a34a", Label: "Well Lit"},
	"safe_area":       {Color: "#059669", Label: "Safe Area"},
	"police_presence": {Color: "#2563eb", Label: "Police Presence"},
}

// StyleForFeedback returns the style for a report type, with a neutral
// default for types this client version does not know yet.
func StyleForFeedback(feedbackType string) FeedbackStyle {
	if s, ok := feedbackStyles[feedbackType]; ok {
		return s
	}
	return FeedbackStyle{Color: "#64748b", Label: "Report"}
}

// FeedbackFeed is the live community report list: newest first, capped,
// kept in sync with the push channel. Transport reconnection is the
// transport's problem; the feed only applies events.
type FeedbackFeed struct {
	api     *APIClient
	markers *MarkerRegistry

	mu         sync.Mutex
	items      []models.FeedbackReport
	clearHooks []func()
}

func NewFeedbackFeed(api *APIClient, markers *MarkerRegistry) *FeedbackFeed {
	return &FeedbackFeed{
		api:     api,
		markers: markers,
	}
}

// OnClearAll registers a hook run when the server wipes its data, so
// other map state owners (the route planner, for one) reset alongside
// the feed.
func (f *FeedbackFeed) OnClearAll(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearHooks = append(f.clearHooks, fn)
}

// Load seeds the feed from the backend.
func (f *FeedbackFeed) Load(ctx context.Context) error {
	reports, err := f.api.GetFeedback(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(reports) > feedCapacity {
		reports = reports[:feedCapacity]
	}
	f.items = append([]models.FeedbackReport(nil), reports...)
	f.rebuildMarkersLocked()
	return nil
}

// ApplyNew prepends a pushed report and refreshes the overlay group.
func (f *FeedbackFeed) ApplyNew(report models.FeedbackReport) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]models.FeedbackReport{report}, f.items...)
	if len(f.items) > feedCapacity {
		f.items = f.items[:feedCapacity]
	}
	f.rebuildMarkersLocked()
}

// ApplyClearAll drops every report and wipes every overlay group: the
// server has deleted everything, so stale crime pins, service pins and
// route lines must not survive on the map. The user profile is
// untouched; clearing data never signs anyone out.
func (f *FeedbackFeed) ApplyClearAll() {
	f.mu.Lock()
	f.items = nil
	hooks := append(([]func())(nil), f.clearHooks...)
	f.mu.Unlock()

	f.markers.ClearAll()
	for _, fn := range hooks {
		fn()
	}
}

// HandleEvent dispatches a raw push-channel event into the feed. Unknown
// events are ignored so server-side additions stay backward compatible.
func (f *FeedbackFeed) HandleEvent(name string, payload json.RawMessage) {
	switch name {
	case EventNewFeedback:
		var report models.FeedbackReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return
		}
		f.ApplyNew(report)
	case EventDataCleared:
		f.ApplyClearAll()
	}
}

// Items returns the feed newest-first.
func (f *FeedbackFeed) Items() []models.FeedbackReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FeedbackReport(nil), f.items...)
}

func (f *FeedbackFeed) rebuildMarkersLocked() {
	markers := make([]Marker, 0, len(f.items))
	for _, report := range f.items {
		style := StyleForFeedback(report.Type)
		markers = append(markers, Marker{
			Lat:   report.Lat,
			Lng:   report.Lng,
			Color: style.Color,
			Label: style.Label,
			Kind:  "feedback",
		})
	}
	f.markers.ReplaceGroup(GroupFeedback, markers)
}
