package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// SeedActivities returns the catalog a fresh installation starts with.
func SeedActivities() []Activity {
	return []Activity{
		{
			ID:          uuid.NewString(),
			Type:        ActivityQuest,
			Title:       "Mirror Check",
			Description: "Stand in front of a mirror and hold a power pose for 2 minutes.",
			Difficulty:  1,
			XPReward:    10,
		},
		{
			ID:          uuid.NewString(),
			Type:        ActivityTraining,
			Title:       "Magnetic Walk",
			Description: "Practice walking with purpose. Shoulders back, head high.",
			Difficulty:  2,
			XPReward:    20,
		},
		{
			ID:          uuid.NewString(),
			Type:        ActivityBattle,
			Title:       "Negotiation Face",
			Description: "Keep a neutral expression while listening to intense music.",
			Difficulty:  3,
			XPReward:    30,
		},
	}
}

// Activities returns the catalog, seeding it on first use.
func (s *Service) Activities(ctx context.Context) []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return append([]Activity(nil), s.activities...)
}

// FindActivity matches ref against an activity ID, an ID prefix of at least
// four characters, or a title (case-insensitive).
func (s *Service) FindActivity(ctx context.Context, ref string) (Activity, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Activity{}, false
	}
	for _, a := range s.Activities(ctx) {
		switch {
		case a.ID == ref,
			len(ref) >= 4 && strings.HasPrefix(a.ID, ref),
			strings.EqualFold(a.Title, ref):
			return a, true
		}
	}
	return Activity{}, false
}
