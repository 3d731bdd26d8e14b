package models

import "time"

// FeedbackReport is one community safety report.
type FeedbackReport struct {
	ID          int64     `json:"id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	UserName    string    `json:"user_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// FeedbackTypes lists the accepted report categories.
var FeedbackTypes = []string{
	"harassment",
	"poor_lighting",
	"unsafe_area",
	"theft",
	"accident",
	"well_lit",
	"safe_area",
	"police_presence",
}

func ValidFeedbackType(t string) bool {
	for _, ft := range FeedbackTypes {
		if ft == t {
			return true
		}
	}
	return false
}
