package handlers

import (
	"googlemaps.github.io/maps"

	"github.com/akavinashsingh/safeRoute-AI/safety"
	"github.com/akavinashsingh/safeRoute-AI/suggest"
)

// Shared service clients, set once from main before the router starts.
var (
	Maps        *maps.Client
	Suggestions *suggest.Service
	Lamps       *safety.LampSurvey
)

func InitServices(m *maps.Client, s *suggest.Service, l *safety.LampSurvey) {
	Maps = m
	Suggestions = s
	Lamps = l
}
