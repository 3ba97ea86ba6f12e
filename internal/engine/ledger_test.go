package engine

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDayKeyUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	late := time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC).In(loc)
	if got := DayKey(late); got != "2025-01-02" {
		t.Fatalf("DayKey=%s, want 2025-01-02", got)
	}
	if !SameDay(late, time.Date(2025, 1, 2, 0, 5, 0, 0, time.UTC), loc) {
		t.Fatalf("expected same day in loc")
	}
}

func TestHeatmapIntensity(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	p := NewUserProgress()
	for i := 0; i < 7; i++ {
		LogActivity(p, now)
	}
	LogActivity(p, now.AddDate(0, 0, -2))
	LogActivity(p, now.AddDate(0, 0, -2))

	got := Heatmap(p, now, 4)
	want := []float64{0, 0.4, 0, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("heatmap mismatch (-want +got):\n%s", diff)
	}
}

func TestLastNDaysOldestFirst(t *testing.T) {
	now := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	days := LastNDays(now, 3)
	var keys []string
	for _, d := range days {
		keys = append(keys, DayKey(d))
	}
	if diff := cmp.Diff([]string{"2025-02-27", "2025-02-28", "2025-03-01"}, keys); diff != "" {
		t.Fatalf("days mismatch (-want +got):\n%s", diff)
	}
	if LastNDays(now, 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	p := NewUserProgress()
	if got := CurrentStreak(p, now); got != 0 {
		t.Fatalf("streak=%d, want 0", got)
	}

	LogActivity(p, now.AddDate(0, 0, -1))
	LogActivity(p, now.AddDate(0, 0, -2))
	LogActivity(p, now.AddDate(0, 0, -4))
	if got := CurrentStreak(p, now); got != 2 {
		t.Fatalf("streak=%d, want 2", got)
	}

	LogActivity(p, now)
	if got := CurrentStreak(p, now); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}
}

func TestMoodBreakdown(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	days := LastNDays(now, 2)
	entries := []JournalEntry{
		{Date: now, Mood: MoodConfidence},
		{Date: now, Mood: MoodDominance},
		{Date: now, Mood: MoodStress},
		{Date: now.AddDate(0, 0, -1), Mood: MoodStress},
		{Date: now.AddDate(0, 0, -9), Mood: MoodStress},
	}
	got := MoodBreakdown(entries, days)
	want := []MoodStats{
		{Day: days[0], Confidence: 0, Stress: 1},
		{Day: days[1], Confidence: 2, Stress: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breakdown mismatch (-want +got):\n%s", diff)
	}
}
