package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/akavinashsingh/safeRoute-AI/config"
	"github.com/akavinashsingh/safeRoute-AI/models"
	"github.com/akavinashsingh/safeRoute-AI/realtime"
)

const feedbackPageSize = 50

type FeedbackRequest struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	UserName    string  `json:"user_name"`
}

// PostFeedback handles POST /post-feedback: validates and stores a
// community report, then broadcasts it over the push channel.
func PostFeedback(w http.ResponseWriter, r *http.Request) {
	log.Printf("PostFeedback: Starting request handling")

	if config.DB == nil {
		log.Printf("PostFeedback: Database connection is nil")
		http.Error(w, "Database connection not initialized", http.StatusInternalServerError)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("PostFeedback: Error decoding request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !models.ValidFeedbackType(req.Type) {
		log.Printf("PostFeedback: Invalid feedback type: %s", req.Type)
		http.Error(w, "Invalid feedback type", http.StatusBadRequest)
		return
	}
	if req.Lat == 0 && req.Lng == 0 {
		log.Printf("PostFeedback: Missing coordinates")
		http.Error(w, "Missing coordinates", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		log.Printf("PostFeedback: Missing description")
		http.Error(w, "Description is required", http.StatusBadRequest)
		return
	}

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = "Anonymous"
	}

	fb := models.FeedbackReport{
		Lat:         req.Lat,
		Lng:         req.Lng,
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
		UserName:    userName,
		Timestamp:   time.Now().UTC(),
	}

	err := config.DB.QueryRowContext(r.Context(), `
		INSERT INTO route_feedback (lat, lng, type, description, user_name, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		fb.Lat, fb.Lng, fb.Type, fb.Description, fb.UserName, fb.Timestamp).Scan(&fb.ID)
	if err != nil {
		log.Printf("PostFeedback: Error inserting feedback: %v", err)
		http.Error(w, "Error storing feedback", http.StatusInternalServerError)
		return
	}

	// New report invalidates the cached page
	config.FeedbackCache.Delete("feedback:page")

	realtime.EmitFeedback(fb)
	log.Printf("PostFeedback: Stored feedback %d (%s)", fb.ID, fb.Type)

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"feedback": fb,
	})
}

// GetFeedback handles GET /get-feedback: newest-first page of reports.
func GetFeedback(w http.ResponseWriter, r *http.Request) {
	log.Printf("GetFeedback: Starting request handling")

	if config.DB == nil {
		log.Printf("GetFeedback: Database connection is nil")
		http.Error(w, "Database connection not initialized", http.StatusInternalServerError)
		return
	}

	if cached, found := config.FeedbackCache.Get("feedback:page"); found {
		writeJSON(w, cached)
		return
	}

	rows, err := config.DB.QueryContext(r.Context(), `
		SELECT id, lat, lng, type, description, user_name, timestamp
		FROM route_feedback
		ORDER BY timestamp DESC
		LIMIT $1`, feedbackPageSize)
	if err != nil {
		log.Printf("GetFeedback: Error querying feedback: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	feedback := []models.FeedbackReport{}
	for rows.Next() {
		var fb models.FeedbackReport
		if err := rows.Scan(&fb.ID, &fb.Lat, &fb.Lng, &fb.Type, &fb.Description, &fb.UserName, &fb.Timestamp); err != nil {
			log.Printf("GetFeedback: Error scanning feedback row: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		feedback = append(feedback, fb)
	}

	response := map[string]interface{}{
		"success":  true,
		"feedback": feedback,
	}
	config.FeedbackCache.Set("feedback:page", response, gocache.DefaultExpiration)

	log.Printf("GetFeedback: Returning %d reports", len(feedback))
	writeJSON(w, response)
}
