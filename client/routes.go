package client

import (
	"context"
	"fmt"
	"sync"

	"googlemaps.github.io/maps"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

// Base rank colors, cycled when there are more candidates than colors.
var routePalette = []string{"#10b981", "#3b82f6", "#f59e0b", "#8b5cf6"}

// Styling for the deselected state.
const (
	mutedRouteColor   = "#94a3b8"
	selectedWeight    = 6
	deselectedWeight  = 4
	selectedOpacity   = 1.0
	deselectedOpacity = 0.4
	selectedZIndex    = 100
	deselectedZIndex  = 1
)

var crimeMarkerColors = map[string]string{
	"high":   "#dc2626",
	"medium": "#ea580c",
	"low":    "#facc15",
}

// ErrNoSuchRoute is returned for selections outside the candidate list.
var ErrNoSuchRoute = fmt.Errorf("no such route")

// RouteView is everything a route card or polyline needs to render one
// candidate.
type RouteView struct {
	Index            int
	RankLabel        string
	BaseColor        string
	Distance         string
	Duration         string
	SafetyScore      float64
	Class            Classification
	HospitalCount    int
	PoliceCount      int
	StreetLightScore float64
	CrimeIncidents   models.CrimeCounts
	Warnings         []string
	Path             []models.LatLng
	Selected         bool
}

// PolylineStyle describes how to draw one route line.
type PolylineStyle struct {
	Color   string
	Weight  int
	Opacity float64
	ZIndex  int
}

// RoutePlanner owns route search and selection state. Exactly one
// candidate is selected at a time; view models are derived, never stored
// by the UI.
type RoutePlanner struct {
	api     *APIClient
	markers *MarkerRegistry

	mu       sync.Mutex
	routes   []models.RouteOption
	paths    [][]models.LatLng
	selected int
	from     models.LatLng
	to       models.LatLng
}

func NewRoutePlanner(api *APIClient, markers *MarkerRegistry) *RoutePlanner {
	return &RoutePlanner{
		api:      api,
		markers:  markers,
		selected: -1,
	}
}

// Search replaces all candidates with fresh results. Stale route and
// crime overlays are cleared before repopulation; the first candidate is
// auto-selected.
func (p *RoutePlanner) Search(ctx context.Context, from, to models.LatLng) error {
	result, err := p.api.GetRoutes(ctx, from, to)
	if err != nil {
		return err
	}
	if len(result.Routes) == 0 {
		return fmt.Errorf("no routes found")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.from, p.to = from, to
	p.routes = result.Routes
	p.paths = make([][]models.LatLng, len(result.Routes))
	for i, route := range result.Routes {
		p.paths[i] = p.decodePath(route)
	}
	p.selected = 0

	p.markers.ClearGroup(GroupRoutes)
	p.markers.ClearGroup(GroupCrime)

	for i := range p.routes {
		p.markers.Add(GroupRoutes, Marker{
			Lat:   from.Lat,
			Lng:   from.Lng,
			Color: routePalette[i%len(routePalette)],
			Label: fmt.Sprintf("Route %d", i+1),
			Kind:  "route",
		})
	}

	crimeMarkers := make([]Marker, 0, len(result.CrimeData))
	for _, inc := range result.CrimeData {
		crimeMarkers = append(crimeMarkers, Marker{
			Lat:   inc.Lat,
			Lng:   inc.Lng,
			Color: crimeMarkerColors[inc.Severity],
			Label: inc.Type,
			Kind:  "crime",
		})
	}
	p.markers.ReplaceGroup(GroupCrime, crimeMarkers)

	return nil
}

// decodePath turns the encoded polyline into coordinates, falling back
// to a straight line between the endpoints when the polyline is missing
// or malformed.
func (p *RoutePlanner) decodePath(route models.RouteOption) []models.LatLng {
	if route.Polyline != "" {
		decoded, err := maps.DecodePolyline(route.Polyline)
		if err == nil && len(decoded) > 0 {
			path := make([]models.LatLng, 0, len(decoded))
			for _, pt := range decoded {
				path = append(path, models.LatLng{Lat: pt.Lat, Lng: pt.Lng})
			}
			return path
		}
	}
	return []models.LatLng{p.from, p.to}
}

// Reset drops all candidates and the selection. Route and crime markers
// are owned by the registry and cleared by whoever triggered the reset.
func (p *RoutePlanner) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes = nil
	p.paths = nil
	p.selected = -1
}

// Select makes candidate i the single selected route. Selecting the
// current index is a no-op.
func (p *RoutePlanner) Select(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.routes) {
		return ErrNoSuchRoute
	}
	p.selected = i
	return nil
}

func (p *RoutePlanner) Selected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Views builds the per-candidate view models in candidate order.
func (p *RoutePlanner) Views() []RouteView {
	p.mu.Lock()
	defer p.mu.Unlock()

	views := make([]RouteView, 0, len(p.routes))
	for i, route := range p.routes {
		views = append(views, RouteView{
			Index:            i,
			RankLabel:        fmt.Sprintf("Route %d", i+1),
			BaseColor:        routePalette[i%len(routePalette)],
			Distance:         route.Distance,
			Duration:         route.Duration,
			SafetyScore:      route.SafetyScore,
			Class:            Classify(route.SafetyScore),
			HospitalCount:    route.HospitalCount,
			PoliceCount:      route.PoliceCount,
			StreetLightScore: route.StreetLightScore,
			CrimeIncidents:   route.CrimeIncidents,
			Warnings:         route.SafetyWarnings,
			Path:             p.paths[i],
			Selected:         i == p.selected,
		})
	}
	return views
}

// StyleFor returns the polyline styling for candidate i given the
// current selection. The selected route draws in its safety color, on
// top; everything else is muted.
func (p *RoutePlanner) StyleFor(i int) (PolylineStyle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.routes) {
		return PolylineStyle{}, ErrNoSuchRoute
	}

	if i == p.selected {
		return PolylineStyle{
			Color:   Classify(p.routes[i].SafetyScore).Color,
			Weight:  selectedWeight,
			Opacity: selectedOpacity,
			ZIndex:  selectedZIndex,
		}, nil
	}
	return PolylineStyle{
		Color:   mutedRouteColor,
		Weight:  deselectedWeight,
		Opacity: deselectedOpacity,
		ZIndex:  deselectedZIndex,
	}, nil
}
