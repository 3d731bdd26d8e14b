package utils

import (
	"math"
	"testing"
)

func TestCalculateDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"same point", 28.6139, 77.2090, 28.6139, 77.2090, 0, 0.001},
		{"delhi to mumbai", 28.6139, 77.2090, 19.0760, 72.8777, 1153, 15},
		{"short hop", 28.6139, 77.2090, 28.6229, 77.2090, 1.0, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("CalculateDistance() = %.3f km, want %.3f +/- %.3f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12 KM", 12},
		{"3.5km", 3.5},
		{"  7 ", 7},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := ParseDistance(tt.in); got != tt.want {
			t.Errorf("ParseDistance(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{850, "850 m"},
		{999, "999 m"},
		{1200, "1.2 km"},
		{15600, "15.6 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestOffsetCoordinate(t *testing.T) {
	lat, lng := 28.6139, 77.2090

	newLat, newLng := OffsetCoordinate(lat, lng, 100, 0) // 100 m due north
	moved := DistanceMeters(lat, lng, newLat, newLng)
	if math.Abs(moved-100) > 1 {
		t.Errorf("offset moved %.2f m, want ~100 m", moved)
	}
	if newLat <= lat {
		t.Errorf("northward offset should increase latitude: %v -> %v", lat, newLat)
	}
	if math.Abs(newLng-lng) > 0.0001 {
		t.Errorf("northward offset should not change longitude much: %v -> %v", lng, newLng)
	}
}
