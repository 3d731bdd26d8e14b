package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert statuses, in lifecycle order.
const (
	AlertStatusActive     = "active"
	AlertStatusResponding = "responding"
	AlertStatusResolved   = "resolved"
)

func ValidAlertStatus(s string) bool {
	return s == AlertStatusActive || s == AlertStatusResponding || s == AlertStatusResolved
}

// Alert is one SOS alert document. Stored in MongoDB with the AI
// suggestion payload nested on the same document.
type Alert struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty" json:"alert_id"`
	Lat         float64               `bson:"lat" json:"lat"`
	Lng         float64               `bson:"lng" json:"lng"`
	Accuracy    float64               `bson:"accuracy" json:"accuracy"`
	UserName    string                `bson:"user_name" json:"user_name"`
	Timestamp   time.Time             `bson:"timestamp" json:"timestamp"`
	Status      string                `bson:"status" json:"status"`
	Suggestions *EmergencySuggestions `bson:"suggestions,omitempty" json:"emergency_suggestions,omitempty"`
}

// ServicePoint is one nearby emergency service (hospital, police
// station, mechanic, hotel) offered to the user after an SOS.
type ServicePoint struct {
	Name     string  `bson:"name" json:"name"`
	Address  string  `bson:"address,omitempty" json:"address,omitempty"`
	Phone    string  `bson:"phone,omitempty" json:"phone,omitempty"`
	Lat      float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng      float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	Distance string  `bson:"distance,omitempty" json:"distance,omitempty"`
	Rating   float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}

// EmergencySuggestions is the nearby-help payload attached to an alert.
// All slice fields are kept non-nil on the wire so clients can iterate
// without nil checks.
type EmergencySuggestions struct {
	Hospitals       []ServicePoint `bson:"hospitals" json:"hospitals"`
	PoliceStations  []ServicePoint `bson:"police_stations" json:"police_stations"`
	Mechanics       []ServicePoint `bson:"mechanics" json:"mechanics"`
	HotelsRestrooms []ServicePoint `bson:"hotels_restrooms" json:"hotels_restrooms"`
	EmergencyTips   []string       `bson:"emergency_tips" json:"emergency_tips"`
	Source          string         `bson:"source,omitempty" json:"source,omitempty"`
}

// Normalize replaces nil slices with empty ones.
func (s *EmergencySuggestions) Normalize() {
	if s.Hospitals == nil {
		s.Hospitals = []ServicePoint{}
	}
	if s.PoliceStations == nil {
		s.PoliceStations = []ServicePoint{}
	}
	if s.Mechanics == nil {
		s.Mechanics = []ServicePoint{}
	}
	if s.HotelsRestrooms == nil {
		s.HotelsRestrooms = []ServicePoint{}
	}
	if s.EmergencyTips == nil {
		s.EmergencyTips = []string{}
	}
}

// Empty reports whether the payload carries nothing useful.
func (s *EmergencySuggestions) Empty() bool {
	if s == nil {
		return true
	}
	return len(s.Hospitals) == 0 && len(s.PoliceStations) == 0 &&
		len(s.Mechanics) == 0 && len(s.HotelsRestrooms) == 0 &&
		len(s.EmergencyTips) == 0
}
