package suggest

import (
	"context"
	"fmt"
	"log"

	"github.com/patrickmn/go-cache"

	"github.com/akavinashsingh/safeRoute-AI/models"
)

// Service runs the suggestion chain: Gemini first, Places second, the
// static generic payload last. It never returns an error; an SOS response
// always carries something.
type Service struct {
	gemini *GeminiClient
	places *PlacesFinder
	number string
	cache  *cache.Cache
}

func NewService(gemini *GeminiClient, places *PlacesFinder, emergencyNumber string, c *cache.Cache) *Service {
	return &Service{
		gemini: gemini,
		places: places,
		number: emergencyNumber,
		cache:  c,
	}
}

func (s *Service) Suggest(ctx context.Context, lat, lng float64) *models.EmergencySuggestions {
	key := fmt.Sprintf("suggest:%.3f:%.3f", lat, lng)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			return cached.(*models.EmergencySuggestions)
		}
	}

	result := s.run(ctx, lat, lng)
	if s.cache != nil && result.Source != "generic" {
		s.cache.Set(key, result, cache.DefaultExpiration)
	}
	return result
}

func (s *Service) run(ctx context.Context, lat, lng float64) *models.EmergencySuggestions {
	if s.gemini.Configured() {
		suggestions, err := s.gemini.Suggestions(ctx, lat, lng)
		if err == nil && !suggestions.Empty() {
			log.Printf("Suggestions: served by %s", suggestions.Source)
			return suggestions
		}
		if err != nil {
			log.Printf("Suggestions: gemini unavailable: %v", err)
		}
	}

	suggestions, err := s.places.Suggestions(ctx, lat, lng)
	if err == nil && !suggestions.Empty() {
		log.Printf("Suggestions: served by places")
		return suggestions
	}
	if err != nil {
		log.Printf("Suggestions: places unavailable: %v", err)
	}

	log.Printf("Suggestions: falling back to generic payload")
	return GenericSuggestions(s.number)
}

// GeminiStatus describes the AI side of the chain for /gemini-status.
type GeminiStatus struct {
	Configured bool     `json:"configured"`
	Models     []string `json:"models"`
}

func (s *Service) Status() GeminiStatus {
	return GeminiStatus{
		Configured: s.gemini.Configured(),
		Models:     s.gemini.ModelNames(),
	}
}
