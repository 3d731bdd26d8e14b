package utils

import (
    "fmt"
    "math"
    "strconv"
    "strings"
)

func ParseDistance(distance string) float64 {
    distance = strings.TrimSpace(strings.ToUpper(distance))
    distance = strings.TrimSuffix(distance, "KM")
    distance = strings.TrimSpace(distance)

    val, err := strconv.ParseFloat(distance, 64)
    if err != nil {
        return 0
    }
    return val
}

func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
    const earthRadius = 6371.0 // Earth's radius in kilometers

    // Convert coordinates to radians
    lat1Rad := lat1 * math.Pi / 180
    lon1Rad := lon1 * math.Pi / 180
    lat2Rad := lat2 * math.Pi / 180
    lon2Rad := lon2 * math.Pi / 180

    // Calculate differences
    dLat := lat2Rad - lat1Rad
    dLon := lon2Rad - lon1Rad

    // Haversine formula
    a := math.Sin(dLat/2)*math.Sin(dLat/2) +
        math.Cos(lat1Rad)*math.Cos(lat2Rad)*
            math.Sin(dLon/2)*math.Sin(dLon/2)

    c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
    distance := earthRadius * c

    return distance
}

func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
    return CalculateDistance(lat1, lon1, lat2, lon2) * 1000
}

// FormatDistance renders a distance in the "850 m" / "1.2 km" style used
// on suggestion cards.
func FormatDistance(meters float64) string {
    if meters < 1000 {
        return fmt.Sprintf("%.0f m", meters)
    }
    return fmt.Sprintf("%.1f km", meters/1000)
}

// OffsetCoordinate moves a point by distanceMeters along bearing (radians,
// 0 = north). Good enough at city scale; not meant for long distances.
func OffsetCoordinate(lat, lng, distanceMeters, bearing float64) (float64, float64) {
    const earthRadiusM = 6371000.0

    latRad := lat * math.Pi / 180
    lngRad := lng * math.Pi / 180
    angular := distanceMeters / earthRadiusM

    newLat := math.Asin(math.Sin(latRad)*math.Cos(angular) +
        math.Cos(latRad)*math.Sin(angular)*math.Cos(bearing))
    newLng := lngRad + math.Atan2(
        math.Sin(bearing)*math.Sin(angular)*math.Cos(latRad),
        math.Cos(angular)-math.Sin(latRad)*math.Sin(newLat))

    return newLat * 180 / math.Pi, newLng * 180 / math.Pi
}
