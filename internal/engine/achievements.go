package engine

const (
	BadgeWriter     = "Writer"
	BadgeSteelEyes  = "Steel Eyes"
	BadgeAlpha      = "Alpha"
	BadgeConsistent = "Consistent"
)

// Achievement represents a badge the user can unlock.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

type badgeRule struct {
	id, desc, icon string
	met            func(p *UserProgress) bool
}

var badgeRules = []badgeRule{
	{BadgeWriter, "Write 5 journal entries", "✍️", func(p *UserProgress) bool { return p.TotalJournalEntries >= 5 }},
	{BadgeSteelEyes, "Complete 10 activities", "👁️", func(p *UserProgress) bool { return p.ActivitiesCompleted >= 10 }},
	{BadgeAlpha, "Reach a body score of 90", "👑", func(p *UserProgress) bool { return p.BodyScore >= 90 }},
	{BadgeConsistent, "Complete 15 activities", "🔥", func(p *UserProgress) bool { return p.ActivitiesCompleted >= 15 }},
}

// EvaluateBadges returns the badges whose conditions p currently meets, in
// catalog order. It depends on p alone.
func EvaluateBadges(p *UserProgress) []string {
	var out []string
	for _, r := range badgeRules {
		if r.met(p) {
			out = append(out, r.id)
		}
	}
	return out
}

// MergeBadges appends ids not yet unlocked and returns the new ones.
// Unlocked badges are never removed.
func MergeBadges(p *UserProgress, ids []string) []string {
	var added []string
	for _, id := range ids {
		if p.HasBadge(id) {
			continue
		}
		p.UnlockedBadges = append(p.UnlockedBadges, id)
		added = append(added, id)
	}
	return added
}

// AchievementChecker lists achievements with their unlocked status.
type AchievementChecker struct {
	progress *UserProgress
}

func NewAchievementChecker(p *UserProgress) *AchievementChecker {
	return &AchievementChecker{progress: p}
}

// GetAchievements returns all achievements. A badge counts as earned once
// unlocked, even if its counter condition no longer holds.
func (c *AchievementChecker) GetAchievements() []Achievement {
	out := make([]Achievement, 0, len(badgeRules))
	for _, r := range badgeRules {
		out = append(out, Achievement{
			ID:          r.id,
			Name:        r.id,
			Description: r.desc,
			Icon:        r.icon,
			Earned:      c.progress.HasBadge(r.id) || r.met(c.progress),
		})
	}
	return out
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(badgeRules)
}
