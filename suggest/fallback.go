package suggest

import "github.com/akavinashsingh/safeRoute-AI/models"

// GenericSuggestions is the last rung of the chain. It never fails: the
// user at minimum gets the emergency number and basic guidance.
func GenericSuggestions(emergencyNumber string) *models.EmergencySuggestions {
	s := &models.EmergencySuggestions{
		Hospitals: []models.ServicePoint{
			{Name: "Emergency Services", Phone: emergencyNumber},
		},
		EmergencyTips: []string{
			"Call " + emergencyNumber + " immediately if you are in danger",
			"Move to a well-lit, populated area if possible",
			"Share your live location with someone you trust",
			"Stay on the line with the operator until help arrives",
			"Note nearby landmarks to describe your position",
		},
		Source: "generic",
	}
	s.Normalize()
	return s
}
