package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akavinashsingh/safeRoute-AI/config"
	"github.com/akavinashsingh/safeRoute-AI/models"
	"github.com/akavinashsingh/safeRoute-AI/realtime"
)

type AlertRequest struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Accuracy  float64 `json:"accuracy"`
	UserName  string  `json:"user_name"`
	Timestamp string  `json:"timestamp"`
}

// SendAlert handles POST /send-alert. The alert is stored and broadcast
// before the suggestion chain runs, so a slow AI call never delays the
// admin notification.
func SendAlert(w http.ResponseWriter, r *http.Request) {
	log.Printf("SendAlert: Starting request handling")

	if config.MongoDB == nil {
		log.Printf("SendAlert: MongoDB connection is nil")
		http.Error(w, "Database connection not initialized", http.StatusInternalServerError)
		return
	}

	var req AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("SendAlert: Error decoding request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Lat == 0 && req.Lng == 0 {
		log.Printf("SendAlert: Missing coordinates")
		http.Error(w, "Missing coordinates", http.StatusBadRequest)
		return
	}

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = "Anonymous"
	}

	alert := models.Alert{
		Lat:       req.Lat,
		Lng:       req.Lng,
		Accuracy:  req.Accuracy,
		UserName:  userName,
		Timestamp: time.Now().UTC(),
		Status:    models.AlertStatusActive,
	}

	collection := config.MongoDB.Collection("sos_alerts")
	result, err := collection.InsertOne(r.Context(), alert)
	if err != nil {
		log.Printf("SendAlert: Error inserting alert: %v", err)
		http.Error(w, "Error storing alert", http.StatusInternalServerError)
		return
	}
	alert.ID = result.InsertedID.(primitive.ObjectID)

	realtime.EmitNewAlert(alert)
	log.Printf("SendAlert: Stored alert %s for %s", alert.ID.Hex(), alert.UserName)

	// Suggestion chain never fails; worst case is the generic payload.
	if Suggestions != nil {
		suggestions := Suggestions.Suggest(r.Context(), alert.Lat, alert.Lng)
		alert.Suggestions = suggestions

		_, err = collection.UpdateOne(r.Context(),
			bson.M{"_id": alert.ID},
			bson.M{"$set": bson.M{"suggestions": suggestions}})
		if err != nil {
			log.Printf("SendAlert: Error attaching suggestions to alert %s: %v", alert.ID.Hex(), err)
		}
	}

	writeJSON(w, map[string]interface{}{
		"success":               true,
		"alert_id":              alert.ID.Hex(),
		"message":               "Alert sent successfully",
		"emergency_suggestions": alert.Suggestions,
	})
}

// GetAllAlerts handles GET /get-all-alerts for the admin dashboard.
func GetAllAlerts(w http.ResponseWriter, r *http.Request) {
	log.Printf("GetAllAlerts: Starting request handling")

	if config.MongoDB == nil {
		log.Printf("GetAllAlerts: MongoDB connection is nil")
		http.Error(w, "Database connection not initialized", http.StatusInternalServerError)
		return
	}

	collection := config.MongoDB.Collection("sos_alerts")
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(100)

	cursor, err := collection.Find(r.Context(), bson.M{}, findOptions)
	if err != nil {
		log.Printf("GetAllAlerts: Error querying alerts: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	alerts := []models.Alert{}
	if err := cursor.All(r.Context(), &alerts); err != nil {
		log.Printf("GetAllAlerts: Error decoding alerts: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("GetAllAlerts: Returning %d alerts", len(alerts))
	writeJSON(w, map[string]interface{}{
		"success": true,
		"alerts":  alerts,
	})
}

// UpdateAlert handles PUT /update-alert/{id}: status transitions only.
func UpdateAlert(w http.ResponseWriter, r *http.Request) {
	log.Printf("UpdateAlert: Starting request handling")

	if config.MongoDB == nil {
		log.Printf("UpdateAlert: MongoDB connection is nil")
		http.Error(w, "Database connection not initialized", http.StatusInternalServerError)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		log.Printf("UpdateAlert: Invalid alert id: %v", err)
		http.Error(w, "Invalid alert id", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("UpdateAlert: Error decoding request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !models.ValidAlertStatus(req.Status) {
		log.Printf("UpdateAlert: Invalid status: %s", req.Status)
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	collection := config.MongoDB.Collection("sos_alerts")
	var alert models.Alert
	err = collection.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": req.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&alert)
	if err != nil {
		log.Printf("UpdateAlert: Error updating alert %s: %v", id.Hex(), err)
		http.Error(w, "Alert not found", http.StatusNotFound)
		return
	}

	realtime.EmitAlertUpdated(alert)
	log.Printf("UpdateAlert: Alert %s is now %s", id.Hex(), alert.Status)

	writeJSON(w, map[string]interface{}{
		"success": true,
		"alert":   alert,
	})
}
