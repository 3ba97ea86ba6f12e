package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kosharny/ThunderpickMove/internal/engine"
)

// ThunderpickMove look (CLI + TUI): one palette per app theme, shared styles
// and a few emojis.

const (
	IconBolt     = "⚡"
	IconSparkle  = "✨"
	IconDone     = "✅"
	IconTrophy   = "🏆"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconJournal  = "📓"
	IconMirror   = "🪞"
	IconTarget   = "🎯"
	IconSwords   = "⚔️"
	IconTimer    = "⏱️"
	IconLock     = "🔒"
	IconCart     = "🛒"
	IconFire     = "🔥"
	IconPalette  = "🎨"
	IconCalendar = "📅"
)

// Palette holds the colors of one theme.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Surface lipgloss.Color
}

var palettes = map[engine.ThemeType]Palette{
	engine.ThemeStandard:   {Primary: "#9D00FF", Accent: "205", Surface: "#1a0b2e"},
	engine.ThemeNeonCyber:  {Primary: "#D200FF", Accent: "51", Surface: "#2d1b4e"},
	engine.ThemeStealthOps: {Primary: "#00A8FF", Accent: "250", Surface: "#2c2c2e"},
}

func PaletteFor(t engine.ThemeType) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[engine.ThemeStandard]
}

var (
	cGood  = lipgloss.Color("42")  // green
	cWarn  = lipgloss.Color("214") // orange
	cBad   = lipgloss.Color("196") // red
	cMuted = lipgloss.Color("244") // gray
	cGold  = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true)
	H2    = lipgloss.NewStyle().Bold(true)
	Key   = lipgloss.NewStyle().Bold(true)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true)

	BadgeUnlocked = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("BADGE UNLOCKED")
)

func init() {
	Use(engine.ThemeStandard)
}

// Use switches the shared styles to the palette of t.
func Use(t engine.ThemeType) {
	p := PaletteFor(t)
	Title = Title.Foreground(p.Accent)
	H2 = H2.Foreground(p.Primary)
	Key = Key.Foreground(p.Primary)
	Panel = Panel.BorderForeground(p.Primary)
	PanelTitle = PanelTitle.Foreground(p.Accent)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText colors a body status by its rung on the ladder.
func StatusText(s engine.BodyStatus) string {
	rank := engine.StatusRank(s)
	switch {
	case rank >= 9:
		return Gold.Render(string(s))
	case rank >= 6:
		return Good.Render(string(s))
	case rank >= 3:
		return H2.Render(string(s))
	case rank >= 0:
		return Warn.Render(string(s))
	default:
		return Muted.Render(string(s))
	}
}

func SkillIcon(s engine.SkillType) string {
	switch s {
	case engine.SkillMimicry:
		return "🎭"
	case engine.SkillPosture:
		return "🧍"
	case engine.SkillGestures:
		return "👐"
	case engine.SkillVoice:
		return "🎙️"
	default:
		return "•"
	}
}

func MoodIcon(m engine.MoodType) string {
	switch m {
	case engine.MoodConfidence:
		return "😎"
	case engine.MoodStress:
		return "😰"
	case engine.MoodDominance:
		return "🦁"
	default:
		return "•"
	}
}

func ActivityIcon(a engine.ActivityType) string {
	switch a {
	case engine.ActivityQuest:
		return IconTarget
	case engine.ActivityTraining:
		return IconTimer
	case engine.ActivityBattle:
		return IconSwords
	default:
		return "•"
	}
}

var heatShades = []lipgloss.Color{"236", "22", "28", "34", "40", "46"}

// HeatCell renders one heatmap square for an intensity in [0,1].
func HeatCell(intensity float64) string {
	i := int(intensity * float64(len(heatShades)-1))
	if intensity > 0 && i == 0 {
		i = 1
	}
	if i < 0 {
		i = 0
	}
	if i >= len(heatShades) {
		i = len(heatShades) - 1
	}
	return lipgloss.NewStyle().Foreground(heatShades[i]).Render("■")
}

// Bar renders value/total as a fixed-width text bar.
func Bar(value, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
