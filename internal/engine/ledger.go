package engine

import "time"

// DayKeyLayout formats activity history keys; one key per local calendar day.
const DayKeyLayout = "2006-01-02"

// HeatmapSaturation is the daily count that reaches full heatmap intensity.
const HeatmapSaturation = 5

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func DayKey(t time.Time) string {
	return StartOfDay(t).Format(DayKeyLayout)
}

// SameDay compares calendar days of a and b in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// LogActivity increments the history counter of now's calendar day.
func LogActivity(p *UserProgress, now time.Time) {
	if p.ActivityHistory == nil {
		p.ActivityHistory = map[string]int{}
	}
	p.ActivityHistory[DayKey(now)]++
}

func ActivityCount(p *UserProgress, day time.Time) int {
	return p.ActivityHistory[DayKey(day)]
}

// HeatmapIntensity is 0 for an idle day and min(count/5, 1) otherwise.
func HeatmapIntensity(p *UserProgress, day time.Time) float64 {
	count := ActivityCount(p, day)
	if count <= 0 {
		return 0
	}
	v := float64(count) / HeatmapSaturation
	if v > 1 {
		return 1
	}
	return v
}

// LastNDays returns the start of the n days ending with now's day, oldest first.
func LastNDays(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	today := StartOfDay(now)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[n-1-i] = today.AddDate(0, 0, -i)
	}
	return days
}

// Heatmap returns intensities for the n days ending today, oldest first.
func Heatmap(p *UserProgress, now time.Time, n int) []float64 {
	days := LastNDays(now, n)
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = HeatmapIntensity(p, d)
	}
	return out
}

// CurrentStreak counts consecutive active days ending today. A streak that
// ended yesterday still counts until today is over.
func CurrentStreak(p *UserProgress, now time.Time) int {
	day := StartOfDay(now)
	if ActivityCount(p, day) == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for ActivityCount(p, day) > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

type MoodStats struct {
	Day        time.Time
	Confidence int // confidence and dominance entries
	Stress     int
}

// MoodBreakdown tallies journal moods for each of the given days.
func MoodBreakdown(entries []JournalEntry, days []time.Time) []MoodStats {
	out := make([]MoodStats, len(days))
	for i, d := range days {
		out[i].Day = d
		for _, e := range entries {
			if !SameDay(e.Date, d, d.Location()) {
				continue
			}
			switch e.Mood {
			case MoodConfidence, MoodDominance:
				out[i].Confidence++
			case MoodStress:
				out[i].Stress++
			}
		}
	}
	return out
}
