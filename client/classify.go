package client

// SafetyLevel buckets a route's safety score.
type SafetyLevel int

const (
	LevelSafe SafetyLevel = iota
	LevelModerate
	LevelUnsafe
)

func (l SafetyLevel) String() string {
	switch l {
	case LevelSafe:
		return "safe"
	case LevelModerate:
		return "moderate"
	default:
		return "unsafe"
	}
}

// Canonical thresholds. Every surface (route cards, polylines, badges)
// classifies through this one function so the buckets can never drift.
const (
	safeMinScore     = 75.0
	moderateMinScore = 60.0
)

// Classification is the presentation of a safety bucket.
type Classification struct {
	Level SafetyLevel
	Color string
	Label string
}

var classifications = map[SafetyLevel]Classification{
	LevelSafe:     {Level: LevelSafe, Color: "#10b981", Label: "Safe Route"},
	LevelModerate: {Level: LevelModerate, Color: "#f59e0b", Label: "Moderate Risk"},
	LevelUnsafe:   {Level: LevelUnsafe, Color: "#ef4444", Label: "High Risk"},
}

// Classify maps a 0-100 safety score to its bucket. Total over all float
// inputs; out-of-range scores fall in the nearest bucket.
func Classify(score float64) Classification {
	switch {
	case score >= safeMinScore:
		return classifications[LevelSafe]
	case score >= moderateMinScore:
		return classifications[LevelModerate]
	default:
		return classifications[LevelUnsafe]
	}
}
