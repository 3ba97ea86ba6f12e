package engine

import "strings"

// ParseMood parses user input to a MoodType.
// Supported: confidence, stress, dominance (and their adjective forms).
func ParseMood(input string) (MoodType, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "confidence", "confident":
		return MoodConfidence, true
	case "stress", "stressed":
		return MoodStress, true
	case "dominance", "dominant":
		return MoodDominance, true
	default:
		return "", false
	}
}

// ParseActivityType parses quest, training or battle.
func ParseActivityType(input string) (ActivityType, bool) {
	a := ActivityType(strings.TrimSpace(strings.ToLower(input)))
	return a, a.IsValid()
}
