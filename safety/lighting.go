package safety

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/serjvanilla/go-overpass"
)

// LampSurvey counts mapped street lamps near a point via the Overpass API.
// It is strictly best-effort: any failure means "no survey data" and the
// caller falls back to the area heuristic.
type LampSurvey struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewLampSurvey(endpoint string, timeout time.Duration) *LampSurvey {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &LampSurvey{
		client:  &client,
		timeout: timeout,
	}
}

// LampCount returns the number of street_lamp nodes within radiusMeters of
// the point, or -1 when the survey is unavailable.
func (s *LampSurvey) LampCount(ctx context.Context, lat, lng float64, radiusMeters int) int {
	if s == nil {
		return -1
	}

	query := fmt.Sprintf(`
		[out:json][timeout:10];
		(
			node["highway"="street_lamp"](around:%d,%f,%f);
		);
		out body;
	`, radiusMeters, lat, lng)

	result, err := s.executeQuery(ctx, query)
	if err != nil {
		log.Printf("LampSurvey: falling back to heuristic: %v", err)
		return -1
	}

	return len(result.Nodes)
}

func (s *LampSurvey) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return &result, nil
}
