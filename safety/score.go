package safety

import (
	"fmt"
	"math"
	"time"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

// Area types used for the street light heuristic. The type for a point is
// derived from its coordinates so repeated requests score identically.
const (
	AreaMainRoad    = "Main Road"
	AreaCommercial  = "Commercial"
	AreaUrban       = "Urban"
	AreaResidential = "Residential"
	AreaIndustrial  = "Industrial"
)

var baseLightScores = map[string]float64{
	AreaMainRoad:    85,
	AreaCommercial:  90,
	AreaUrban:       75,
	AreaResidential: 70,
	AreaIndustrial:  60,
}

var areaTypes = []string{AreaMainRoad, AreaCommercial, AreaUrban, AreaResidential, AreaIndustrial}

const (
	nightFactor   = 0.8
	minLightScore = 40
	maxLightScore = 100
)

// AreaTypeFor classifies a coordinate into one of the lighting area types.
// Deterministic: the same rounded coordinate always maps to the same type.
func AreaTypeFor(lat, lng float64) string {
	h := coordHash(lat, lng)
	return areaTypes[h%uint64(len(areaTypes))]
}

func coordHash(lat, lng float64) uint64 {
	// FNV-1a over the rounded coordinate pair
	key := fmt.Sprintf("%.3f:%.3f", lat, lng)
	var h uint64 = 14695981039346656037
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= 1099511628211
	}
	return h
}

func isNight(at time.Time) bool {
	hour := at.Hour()
	return hour >= 19 || hour < 6
}

// StreetLightScore estimates lighting quality for a point at a given time.
// lampCount is an optional street lamp count from OSM (pass a negative
// value when no survey data is available).
func StreetLightScore(lat, lng float64, at time.Time, lampCount int) float64 {
	score := baseLightScores[AreaTypeFor(lat, lng)]

	// Surveyed lamps nudge the heuristic, they never replace it
	if lampCount >= 0 {
		score += math.Min(10, float64(lampCount)/2)
	}

	if isNight(at) {
		score *= nightFactor
	}

	return clamp(score, minLightScore, maxLightScore)
}

// CrimeRiskScore aggregates incident counts into a 0-100 risk value.
// closeCount is the number of incidents within 100 m of the route itself.
func CrimeRiskScore(counts models.CrimeCounts, closeCount int) float64 {
	risk := float64(counts.High)*30 + float64(counts.Medium)*15 + float64(counts.Low)*5
	risk += float64(closeCount) * 10
	return math.Min(risk, 100)
}

// RouteSafetyScore combines the per-route signals into a single 0-100 score.
// Weighted scoring:
// - Nearby hospitals: up to 30 points (15 each)
// - Nearby police stations: up to 30 points (15 each)
// - Street lighting: 30% weight
// - Crime risk (inverted): 40% weight
// - Route length: 20% weight, long routes score lower
func RouteSafetyScore(hospitals, police int, lightScore, crimeRisk, distanceKm float64) float64 {
	score := math.Min(float64(hospitals)*15, 30) +
		math.Min(float64(police)*15, 30) +
		lightScore*0.3 +
		math.Max(0, 100-crimeRisk)*0.4 +
		math.Max(0, 100-distanceKm*10)*0.2

	return clamp(score, 0, 100)
}

// RouteWarnings derives up to three warnings for a route card.
func RouteWarnings(lightScore, crimeRisk float64, counts models.CrimeCounts, hospitals int) []string {
	var warnings []string

	if counts.High > 0 {
		warnings = append(warnings, fmt.Sprintf("%d high-severity incidents reported near this route", counts.High))
	}
	if lightScore < 60 {
		warnings = append(warnings, "Poor street lighting along parts of this route")
	}
	if crimeRisk >= 70 {
		warnings = append(warnings, "High overall crime risk in this area")
	}
	if hospitals == 0 {
		warnings = append(warnings, "No hospitals close to this route")
	}

	if len(warnings) > 3 {
		warnings = warnings[:3]
	}
	return warnings
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
