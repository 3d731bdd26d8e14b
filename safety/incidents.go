package safety

import (
	"math"
	"math/rand"

	"github.com/akavinashsingh/safeRoute-AI/models"
	"github.com/akavinashsingh/safeRoute-AI/utils"
)

const (
	minOffsetMeters = 50
	maxOffsetMeters = 300
	closeRadiusKm   = 0.1
)

var incidentTypes = map[string][]string{
	"high":   {"Armed robbery", "Assault", "Carjacking"},
	"medium": {"Theft", "Harassment", "Vandalism"},
	"low":    {"Pickpocketing", "Suspicious activity", "Noise complaint"},
}

// GenerateIncidents synthesizes crime incidents scattered 50-300 m off the
// route path. The generator is seeded from the path itself so the same
// route always produces the same incidents.
func GenerateIncidents(path []models.LatLng) []models.CrimeIncident {
	if len(path) == 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(pathSeed(path)))
	count := 5 + rng.Intn(11) // 5-15 incidents per route

	incidents := make([]models.CrimeIncident, 0, count)
	for i := 0; i < count; i++ {
		anchor := path[rng.Intn(len(path))]
		offset := minOffsetMeters + rng.Float64()*(maxOffsetMeters-minOffsetMeters)
		bearing := rng.Float64() * 2 * math.Pi
		lat, lng := utils.OffsetCoordinate(anchor.Lat, anchor.Lng, offset, bearing)

		severity := pickSeverity(rng)
		types := incidentTypes[severity]

		incidents = append(incidents, models.CrimeIncident{
			Lat:         lat,
			Lng:         lng,
			Severity:    severity,
			Type:        types[rng.Intn(len(types))],
			Description: "Reported in the last 30 days",
		})
	}
	return incidents
}

func pickSeverity(rng *rand.Rand) string {
	// 20% high, 35% medium, 45% low
	switch v := rng.Float64(); {
	case v < 0.20:
		return "high"
	case v < 0.55:
		return "medium"
	default:
		return "low"
	}
}

func pathSeed(path []models.LatLng) int64 {
	first := path[0]
	last := path[len(path)-1]
	return int64(coordHash(first.Lat, first.Lng) ^ coordHash(last.Lat, last.Lng))
}

// CountBySeverity tallies incidents per severity bucket.
func CountBySeverity(incidents []models.CrimeIncident) models.CrimeCounts {
	var counts models.CrimeCounts
	for _, inc := range incidents {
		switch inc.Severity {
		case "high":
			counts.High++
		case "medium":
			counts.Medium++
		case "low":
			counts.Low++
		}
	}
	return counts
}

// CountCloseToPath counts incidents within 100 m of any path vertex.
func CountCloseToPath(incidents []models.CrimeIncident, path []models.LatLng) int {
	close := 0
	for _, inc := range incidents {
		for _, p := range path {
			if utils.CalculateDistance(inc.Lat, inc.Lng, p.Lat, p.Lng) <= closeRadiusKm {
				close++
				break
			}
		}
	}
	return close
}
