package models

// LatLng is a plain WGS84 coordinate pair used across requests and responses.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CrimeCounts holds per-severity incident totals for one route.
type CrimeCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (c CrimeCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// CrimeIncident is a single synthesized incident placed near a route.
type CrimeIncident struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Severity    string  `json:"severity"` // high, medium, low
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// RouteOption is one analyzed route candidate returned by /get-routes.
type RouteOption struct {
	Index            int         `json:"index"`
	Summary          string      `json:"summary"`
	Distance         string      `json:"distance"`
	DistanceKm       float64     `json:"distance_km"`
	Duration         string      `json:"duration"`
	Polyline         string      `json:"polyline"`
	SafetyScore      float64     `json:"safety_score"`
	HospitalCount    int         `json:"hospital_count"`
	PoliceCount      int         `json:"police_count"`
	StreetLightScore float64     `json:"street_light_score"`
	CrimeIncidents   CrimeCounts `json:"crime_incidents"`
	SafetyWarnings   []string    `json:"safety_warnings"`
}
