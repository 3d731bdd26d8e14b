package client

import "sync"

// Overlay group names. Each group is cleared and repopulated as a unit.
const (
	GroupRoutes   = "routes"
	GroupCrime    = "crime"
	GroupFeedback = "feedback"
	GroupServices = "services"
)

// Marker is one map overlay element: a pin, a badge, a polyline anchor.
type Marker struct {
	Lat   float64
	Lng   float64
	Color string
	Label string
	Kind  string
}

// MarkerRegistry tracks every overlay the UI has placed, grouped by
// concern. Repopulation is always clear-then-add so stale markers cannot
// survive a refresh.
type MarkerRegistry struct {
	mu     sync.RWMutex
	groups map[string][]Marker
}

func NewMarkerRegistry() *MarkerRegistry {
	return &MarkerRegistry{
		groups: make(map[string][]Marker),
	}
}

func (r *MarkerRegistry) Add(group string, m Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[group] = append(r.groups[group], m)
}

// ReplaceGroup swaps a group's contents in one step.
func (r *MarkerRegistry) ReplaceGroup(group string, markers []Marker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[group] = append([]Marker(nil), markers...)
}

func (r *MarkerRegistry) ClearGroup(group string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.groups, group)
}

func (r *MarkerRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = make(map[string][]Marker)
}

// Snapshot returns a copy of a group's markers.
func (r *MarkerRegistry) Snapshot(group string) []Marker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Marker(nil), r.groups[group]...)
}

func (r *MarkerRegistry) Count(group string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups[group])
}
