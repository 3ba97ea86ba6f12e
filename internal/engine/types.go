package engine

import (
	"strings"
	"time"
)

type BodyStatus string

const (
	StatusCollapsed BodyStatus = "Collapsed"
	StatusGuarded   BodyStatus = "Guarded"
	StatusInvisible BodyStatus = "Invisible"
	StatusObserver  BodyStatus = "Observer"
	StatusNeutral   BodyStatus = "Neutral"
	StatusSteady    BodyStatus = "Steady"
	StatusPresent   BodyStatus = "Present"
	StatusMagnetic  BodyStatus = "Magnetic"
	StatusDominant  BodyStatus = "Dominant"
	StatusAlpha     BodyStatus = "Alpha Mode"
)

type SkillType string

const (
	SkillMimicry  SkillType = "Mimicry"
	SkillPosture  SkillType = "Posture"
	SkillGestures SkillType = "Gestures"
	SkillVoice    SkillType = "Voice"
)

// AllSkills lists the skills in display order.
var AllSkills = []SkillType{SkillMimicry, SkillPosture, SkillGestures, SkillVoice}

type MoodType string

const (
	MoodConfidence MoodType = "Confidence"
	MoodStress     MoodType = "Stress"
	MoodDominance  MoodType = "Dominance"
)

func (m MoodType) IsValid() bool {
	switch m {
	case MoodConfidence, MoodStress, MoodDominance:
		return true
	default:
		return false
	}
}

type ActivityType string

const (
	ActivityQuest    ActivityType = "quest"
	ActivityTraining ActivityType = "training"
	ActivityBattle   ActivityType = "battle"
)

func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityQuest, ActivityTraining, ActivityBattle:
		return true
	default:
		return false
	}
}

// Skill returns the skill an activity of this type trains.
func (a ActivityType) Skill() SkillType {
	switch a {
	case ActivityQuest:
		return SkillMimicry
	case ActivityBattle:
		return SkillGestures
	case ActivityTraining:
		fallthrough
	default:
		return SkillPosture
	}
}

type ThemeType string

const (
	ThemeStandard   ThemeType = "standard"
	ThemeNeonCyber  ThemeType = "neonCyber"
	ThemeStealthOps ThemeType = "stealthOps"
)

// AllThemes lists the themes in display order.
var AllThemes = []ThemeType{ThemeStandard, ThemeNeonCyber, ThemeStealthOps}

const (
	ProductNeonTheme    = "premium_theme_neon"
	ProductStealthTheme = "premium_theme_stealth"
)

// PremiumProductIDs are the store products that unlock themes.
var PremiumProductIDs = []string{ProductNeonTheme, ProductStealthTheme}

func (t ThemeType) IsValid() bool {
	switch t {
	case ThemeStandard, ThemeNeonCyber, ThemeStealthOps:
		return true
	default:
		return false
	}
}

func (t ThemeType) IsPremium() bool {
	return t.ProductID() != ""
}

// ProductID is empty for free themes.
func (t ThemeType) ProductID() string {
	switch t {
	case ThemeNeonCyber:
		return ProductNeonTheme
	case ThemeStealthOps:
		return ProductStealthTheme
	default:
		return ""
	}
}

// ParseTheme falls back to standard for unknown identifiers.
func ParseTheme(id string) ThemeType {
	t := ThemeType(strings.TrimSpace(id))
	if t.IsValid() {
		return t
	}
	for _, candidate := range AllThemes {
		if strings.EqualFold(string(candidate), string(t)) {
			return candidate
		}
	}
	return ThemeStandard
}

type JournalEntry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Mood      MoodType  `json:"mood"`
	Notes     string    `json:"notes"`
	PhotoPath string    `json:"photoPath,omitempty"`
	AudioPath string    `json:"audioPath,omitempty"`
	VoiceText string    `json:"voiceText,omitempty"`
}

func (e JournalEntry) HasAudio() bool { return e.AudioPath != "" }
func (e JournalEntry) HasPhoto() bool { return e.PhotoPath != "" }

type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Difficulty  int          `json:"difficulty"` // 1-3
	XPReward    int          `json:"xpReward"`
}

const (
	MaxLevel          = 100
	InitialSkillLevel = 10
)

type UserProgress struct {
	BodyScore           int               `json:"bodyScore"`
	CurrentStatus       BodyStatus        `json:"currentStatus"`
	TotalJournalEntries int               `json:"totalJournalEntries"`
	ActivitiesCompleted int               `json:"activitiesCompleted"`
	ActivityHistory     map[string]int    `json:"activityHistory"` // DayKey -> count
	LastCheckInDate     *time.Time        `json:"lastCheckInDate,omitempty"`
	LastDailyMoveDate   *time.Time        `json:"lastDailyMoveDate,omitempty"`
	LastDailyQuestDate  *time.Time        `json:"lastDailyQuestDate,omitempty"`
	SkillLevels         map[SkillType]int `json:"skillLevels"`
	UnlockedBadges      []string          `json:"unlockedBadges"`
}

// NewUserProgress returns the record a fresh installation starts with.
func NewUserProgress() *UserProgress {
	p := &UserProgress{
		CurrentStatus:   StatusNeutral,
		ActivityHistory: map[string]int{},
		SkillLevels:     map[SkillType]int{},
		UnlockedBadges:  []string{},
	}
	for _, s := range AllSkills {
		p.SkillLevels[s] = InitialSkillLevel
	}
	return p
}

// normalize repairs records decoded from older or partial payloads.
func (p *UserProgress) normalize() {
	if p.CurrentStatus == "" {
		p.CurrentStatus = StatusNeutral
	}
	if p.ActivityHistory == nil {
		p.ActivityHistory = map[string]int{}
	}
	if p.SkillLevels == nil {
		p.SkillLevels = map[SkillType]int{}
	}
	for _, s := range AllSkills {
		if _, ok := p.SkillLevels[s]; !ok {
			p.SkillLevels[s] = InitialSkillLevel
		}
	}
	if p.UnlockedBadges == nil {
		p.UnlockedBadges = []string{}
	}
	p.BodyScore = clampLevel(p.BodyScore)
	for s, v := range p.SkillLevels {
		p.SkillLevels[s] = clampLevel(v)
	}
	p.UnlockedBadges = dedupe(p.UnlockedBadges)
}

// Clone returns a deep copy safe to hand to callers.
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}
	c := *p
	c.ActivityHistory = make(map[string]int, len(p.ActivityHistory))
	for k, v := range p.ActivityHistory {
		c.ActivityHistory[k] = v
	}
	c.SkillLevels = make(map[SkillType]int, len(p.SkillLevels))
	for k, v := range p.SkillLevels {
		c.SkillLevels[k] = v
	}
	c.UnlockedBadges = append([]string{}, p.UnlockedBadges...)
	c.LastCheckInDate = cloneTime(p.LastCheckInDate)
	c.LastDailyMoveDate = cloneTime(p.LastDailyMoveDate)
	c.LastDailyQuestDate = cloneTime(p.LastDailyQuestDate)
	return &c
}

func (p *UserProgress) HasBadge(id string) bool {
	for _, b := range p.UnlockedBadges {
		if b == id {
			return true
		}
	}
	return false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
