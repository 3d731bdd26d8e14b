package suggest

import (
	"context"
	"fmt"
	"log"
	"sort"

	"googlemaps.github.io/maps"

	"github.com/akavinashsingh/safeRoute-AI/models"
	"github.com/akavinashsingh/safeRoute-AI/utils"
)

// PlacesFinder backs the suggestion chain with Google Places nearby
// searches when Gemini is unavailable.
type PlacesFinder struct {
	client *maps.Client
	number string
}

func NewPlacesFinder(client *maps.Client, emergencyNumber string) *PlacesFinder {
	return &PlacesFinder{client: client, number: emergencyNumber}
}

type nearbyQuery struct {
	placeType maps.PlaceType
	radius    uint
	fetch     int
	keep      int
}

// Search radii and result caps per category.
var nearbyQueries = map[string]nearbyQuery{
	"hospitals":       {placeType: maps.PlaceTypeHospital, radius: 5000, fetch: 10, keep: 3},
	"police_stations": {placeType: maps.PlaceTypePolice, radius: 3000, fetch: 5, keep: 3},
	"mechanics":       {placeType: maps.PlaceTypeGasStation, radius: 3000, fetch: 5, keep: 3},
	"hotels_restrooms": {placeType: maps.PlaceTypeLodging, radius: 3000, fetch: 5, keep: 3},
}

// Suggestions finds nearby services through the Places API, distance-ranked.
func (f *PlacesFinder) Suggestions(ctx context.Context, lat, lng float64) (*models.EmergencySuggestions, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("places: no maps client configured")
	}

	suggestions := &models.EmergencySuggestions{Source: "places"}

	var firstErr error
	for category, q := range nearbyQueries {
		points, err := f.nearby(ctx, lat, lng, q)
		if err != nil {
			log.Printf("Places: %s search failed: %v", category, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		switch category {
		case "hospitals":
			suggestions.Hospitals = points
		case "police_stations":
			suggestions.PoliceStations = points
		case "mechanics":
			suggestions.Mechanics = points
		case "hotels_restrooms":
			suggestions.HotelsRestrooms = points
		}
	}

	suggestions.Normalize()
	if suggestions.Empty() {
		if firstErr != nil {
			return nil, fmt.Errorf("places: all searches failed: %v", firstErr)
		}
		return nil, fmt.Errorf("places: nothing found nearby")
	}

	suggestions.EmergencyTips = []string{
		"Stay where you are if it is safe to do so",
		"Keep your phone charged and reachable",
		"Call " + f.number + " if the situation escalates",
	}
	return suggestions, nil
}

func (f *PlacesFinder) nearby(ctx context.Context, lat, lng float64, q nearbyQuery) ([]models.ServicePoint, error) {
	resp, err := f.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   q.radius,
		Type:     q.placeType,
	})
	if err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > q.fetch {
		results = results[:q.fetch]
	}

	points := make([]models.ServicePoint, 0, len(results))
	for _, r := range results {
		meters := utils.DistanceMeters(lat, lng, r.Geometry.Location.Lat, r.Geometry.Location.Lng)
		points = append(points, models.ServicePoint{
			Name:     r.Name,
			Address:  r.Vicinity,
			Phone:    f.number, // nearby search has no phone field
			Lat:      r.Geometry.Location.Lat,
			Lng:      r.Geometry.Location.Lng,
			Distance: utils.FormatDistance(meters),
			Rating:   float64(r.Rating),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		di := utils.DistanceMeters(lat, lng, points[i].Lat, points[i].Lng)
		dj := utils.DistanceMeters(lat, lng, points[j].Lat, points[j].Lng)
		return di < dj
	})

	if len(points) > q.keep {
		points = points[:q.keep]
	}
	return points, nil
}
