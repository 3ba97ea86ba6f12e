package engine

import "math"

// statusLadder holds one status per 0.1-wide bucket of the [0,1] check-in
// score. Bucket lower bounds are inclusive; the last bucket is open-ended.
var statusLadder = [...]BodyStatus{
	StatusCollapsed,
	StatusGuarded,
	StatusInvisible,
	StatusObserver,
	StatusNeutral,
	StatusSteady,
	StatusPresent,
	StatusMagnetic,
	StatusDominant,
	StatusAlpha,
}

var statusUpperBounds = [...]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}

// StatusForScore maps a normalized score to its status bucket.
func StatusForScore(score float64) BodyStatus {
	if math.IsNaN(score) || score < 0 {
		return StatusCollapsed
	}
	for i, upper := range statusUpperBounds {
		if score < upper {
			return statusLadder[i]
		}
	}
	return StatusAlpha
}

// StatusRank is the 0-based bucket index of a status, or -1 if unknown.
func StatusRank(s BodyStatus) int {
	for i, v := range statusLadder {
		if v == s {
			return i
		}
	}
	return -1
}
