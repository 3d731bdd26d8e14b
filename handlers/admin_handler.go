package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/akavinashsingh/safeRoute-AI/config"
	"github.com/akavinashsingh/safeRoute-AI/realtime"
)

// Token the caller must echo back before anything is deleted.
const clearAllConfirmation = "DELETE_ALL_DATA"

// ClearAllData handles POST /clear-all-data: wipes feedback and alerts,
// flushes caches and tells every client to reset.
func ClearAllData(w http.ResponseWriter, r *http.Request) {
	log.Printf("ClearAllData: Starting request handling")

	var req struct {
		Confirmation string `json:"confirmation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ClearAllData: Error decoding request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Confirmation != clearAllConfirmation {
		log.Printf("ClearAllData: Rejected request with bad confirmation token")
		http.Error(w, "Confirmation token required", http.StatusForbidden)
		return
	}

	if config.DB == nil || config.MongoDB == nil {
		log.Printf("ClearAllData: Database connection is nil")
		http.Error(w, "Database connection not initialized", http.StatusInternalServerError)
		return
	}

	result, err := config.DB.ExecContext(r.Context(), `DELETE FROM route_feedback`)
	if err != nil {
		log.Printf("ClearAllData: Error deleting feedback: %v", err)
		http.Error(w, "Error deleting feedback", http.StatusInternalServerError)
		return
	}
	feedbackDeleted, _ := result.RowsAffected()

	deleteResult, err := config.MongoDB.Collection("sos_alerts").DeleteMany(r.Context(), bson.M{})
	if err != nil {
		log.Printf("ClearAllData: Error deleting alerts: %v", err)
		http.Error(w, "Error deleting alerts", http.StatusInternalServerError)
		return
	}
	alertsDeleted := deleteResult.DeletedCount

	config.ClearAllCaches()
	realtime.EmitDataCleared(feedbackDeleted, alertsDeleted)

	log.Printf("ClearAllData: Deleted %d feedback rows and %d alerts", feedbackDeleted, alertsDeleted)
	writeJSON(w, map[string]interface{}{
		"success":          true,
		"feedback_deleted": feedbackDeleted,
		"sos_deleted":      alertsDeleted,
	})
}

// GeminiStatus handles GET /gemini-status.
func GeminiStatus(w http.ResponseWriter, r *http.Request) {
	if Suggestions == nil {
		writeJSON(w, map[string]interface{}{"configured": false})
		return
	}
	writeJSON(w, Suggestions.Status())
}

// MapsConfig handles GET /get-maps-config: hands the browser its Maps key.
func MapsConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"google_maps_api_key": config.GoogleMapsAPIKey(),
	})
}
