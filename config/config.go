package config

import (
    "os"
    "strconv"
)

// Google Maps / Gemini configuration
func GoogleMapsAPIKey() string {
    return getEnvWithDefault("GOOGLE_MAPS_API_KEY", "")
}

func GeminiAPIKey() string {
    return getEnvWithDefault("GEMINI_API_KEY", "")
}

// EmergencyNumber is the dial-out number shown when everything else fails.
func EmergencyNumber() string {
    return getEnvWithDefault("EMERGENCY_NUMBER", "112")
}

func OverpassURL() string {
    return getEnvWithDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
}

func getPostgresConnString() string {
    host := getEnvWithDefault("DB_HOST", "localhost")
    port := getEnvWithDefault("DB_PORT", "5432")
    user := getEnvWithDefault("DB_USER", "postgres")
    password := getEnvWithDefault("DB_PASSWORD", "1234")
    dbname := getEnvWithDefault("DB_NAME", "saferoute")

    return "host=" + host + " port=" + port + " user=" + user +
           " password=" + password + " dbname=" + dbname + " sslmode=disable"
}

func getMongoURI() string {
    uri := getEnvWithDefault("MONGO_URI", "mongodb://localhost:27017")
    return uri
}

func getMongoDBName() string {
    return getEnvWithDefault("MONGO_DB_NAME", "saferoute")
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
    if value := os.Getenv(key); value != "" {
        if intValue, err := strconv.Atoi(value); err == nil {
            return intValue
        }
    }
    return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
    if value := os.Getenv(key); value != "" {
        if boolValue, err := strconv.ParseBool(value); err == nil {
            return boolValue
        }
    }
    return defaultValue
}
