package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"googlemaps.github.io/maps"

	"github.com/akavinashsingh/safeRoute-AI/config"
	"github.com/akavinashsingh/safeRoute-AI/models"
	"github.com/akavinashsingh/safeRoute-AI/safety"
)

const maxRouteAlternatives = 4

// endpoint accepts either a {lat,lng} object or an address string.
type endpoint struct {
	Lat     float64
	Lng     float64
	Address string
}

func (e *endpoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Address = s
		return nil
	}
	var ll models.LatLng
	if err := json.Unmarshal(data, &ll); err != nil {
		return err
	}
	e.Lat, e.Lng = ll.Lat, ll.Lng
	return nil
}

type RoutesRequest struct {
	From endpoint `json:"from"`
	To   endpoint `json:"to"`
}

type RoutesResponse struct {
	Success   bool                   `json:"success"`
	Routes    []models.RouteOption   `json:"routes"`
	CrimeData []models.CrimeIncident `json:"crime_data"`
	Error     string                 `json:"error,omitempty"`
}

// GetRoutes handles POST /get-routes: fetches driving alternatives from
// the Directions API and scores each one for safety.
func GetRoutes(w http.ResponseWriter, r *http.Request) {
	log.Printf("GetRoutes: Starting request handling")

	if Maps == nil {
		log.Printf("GetRoutes: Maps client not configured")
		http.Error(w, "Route service not configured", http.StatusServiceUnavailable)
		return
	}

	var req RoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("GetRoutes: Error decoding request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from, err := resolveEndpoint(r, req.From)
	if err != nil {
		log.Printf("GetRoutes: Could not resolve origin: %v", err)
		http.Error(w, "Could not resolve origin", http.StatusBadRequest)
		return
	}
	to, err := resolveEndpoint(r, req.To)
	if err != nil {
		log.Printf("GetRoutes: Could not resolve destination: %v", err)
		http.Error(w, "Could not resolve destination", http.StatusBadRequest)
		return
	}

	cacheKey := config.GetCacheKey("routes",
		fmt.Sprintf("%.4f", from.Lat), fmt.Sprintf("%.4f", from.Lng),
		fmt.Sprintf("%.4f", to.Lat), fmt.Sprintf("%.4f", to.Lng))

	if cached, found := config.RouteCache.Get(cacheKey); found {
		log.Printf("GetRoutes: Serving cached analysis for %s", cacheKey)
		writeJSON(w, cached)
		return
	}

	routes, _, err := Maps.Directions(r.Context(), &maps.DirectionsRequest{
		Origin:       fmt.Sprintf("%f,%f", from.Lat, from.Lng),
		Destination:  fmt.Sprintf("%f,%f", to.Lat, to.Lng),
		Mode:         maps.TravelModeDriving,
		Alternatives: true,
	})
	if err != nil {
		log.Printf("GetRoutes: Directions request failed: %v", err)
		http.Error(w, "Directions request failed", http.StatusBadGateway)
		return
	}
	if len(routes) == 0 {
		log.Printf("GetRoutes: No routes found between the points")
		writeJSON(w, RoutesResponse{Success: false, Error: "No routes found", Routes: []models.RouteOption{}, CrimeData: []models.CrimeIncident{}})
		return
	}
	if len(routes) > maxRouteAlternatives {
		routes = routes[:maxRouteAlternatives]
	}

	response := RoutesResponse{
		Success:   true,
		Routes:    make([]models.RouteOption, 0, len(routes)),
		CrimeData: []models.CrimeIncident{},
	}

	for i, route := range routes {
		option, incidents := analyzeRoute(r, i, route)
		response.Routes = append(response.Routes, option)
		response.CrimeData = append(response.CrimeData, incidents...)
	}

	config.RouteCache.Set(cacheKey, response, gocache.DefaultExpiration)
	log.Printf("GetRoutes: Analyzed %d route alternatives", len(response.Routes))
	writeJSON(w, response)
}

func analyzeRoute(r *http.Request, index int, route maps.Route) (models.RouteOption, []models.CrimeIncident) {
	path := decodePath(route)
	mid := pathMidpoint(path)

	var leg *maps.Leg
	if len(route.Legs) > 0 {
		leg = route.Legs[0]
	}

	distanceKm := 0.0
	distanceText := ""
	durationText := ""
	if leg != nil {
		distanceKm = float64(leg.Distance.Meters) / 1000
		distanceText = leg.Distance.HumanReadable
		durationText = fmt.Sprintf("%.0f mins", leg.Duration.Minutes())
	}

	hospitals := countNearby(r, mid, maps.PlaceTypeHospital)
	police := countNearby(r, mid, maps.PlaceTypePolice)

	lampCount := -1
	if Lamps != nil {
		lampCount = Lamps.LampCount(r.Context(), mid.Lat, mid.Lng, 250)
	}
	lightScore := safety.StreetLightScore(mid.Lat, mid.Lng, time.Now(), lampCount)

	incidents := safety.GenerateIncidents(path)
	counts := safety.CountBySeverity(incidents)
	closeCount := safety.CountCloseToPath(incidents, path)
	crimeRisk := safety.CrimeRiskScore(counts, closeCount)

	score := safety.RouteSafetyScore(hospitals, police, lightScore, crimeRisk, distanceKm)
	warnings := safety.RouteWarnings(lightScore, crimeRisk, counts, hospitals)
	if warnings == nil {
		warnings = []string{}
	}

	return models.RouteOption{
		Index:            index,
		Summary:          route.Summary,
		Distance:         distanceText,
		DistanceKm:       distanceKm,
		Duration:         durationText,
		Polyline:         route.OverviewPolyline.Points,
		SafetyScore:      score,
		HospitalCount:    hospitals,
		PoliceCount:      police,
		StreetLightScore: lightScore,
		CrimeIncidents:   counts,
		SafetyWarnings:   warnings,
	}, incidents
}

func decodePath(route maps.Route) []models.LatLng {
	decoded, err := route.OverviewPolyline.Decode()
	if err != nil {
		log.Printf("GetRoutes: Error decoding overview polyline: %v", err)
		return nil
	}
	path := make([]models.LatLng, 0, len(decoded))
	for _, p := range decoded {
		path = append(path, models.LatLng{Lat: p.Lat, Lng: p.Lng})
	}
	return path
}

func pathMidpoint(path []models.LatLng) models.LatLng {
	if len(path) == 0 {
		return models.LatLng{}
	}
	return path[len(path)/2]
}

func countNearby(r *http.Request, at models.LatLng, placeType maps.PlaceType) int {
	resp, err := Maps.NearbySearch(r.Context(), &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: at.Lat, Lng: at.Lng},
		Radius:   2000,
		Type:     placeType,
	})
	if err != nil {
		log.Printf("GetRoutes: Nearby count for %s failed: %v", placeType, err)
		return 0
	}
	return len(resp.Results)
}

func resolveEndpoint(r *http.Request, e endpoint) (models.LatLng, error) {
	if e.Address == "" {
		if e.Lat == 0 && e.Lng == 0 {
			return models.LatLng{}, fmt.Errorf("missing coordinates")
		}
		return models.LatLng{Lat: e.Lat, Lng: e.Lng}, nil
	}

	results, err := Maps.Geocode(r.Context(), &maps.GeocodingRequest{Address: e.Address})
	if err != nil {
		return models.LatLng{}, fmt.Errorf("geocoding %q: %v", e.Address, err)
	}
	if len(results) == 0 {
		return models.LatLng{}, fmt.Errorf("no geocoding results for %q", e.Address)
	}
	loc := results[0].Geometry.Location
	return models.LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
