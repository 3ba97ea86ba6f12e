package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

const heatmapDays = 28

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	keys keyMap
	help help.Model
	bar  progress.Model

	snap *snapshot
	feed *eventFeed

	// badges unlocked while the board is open, newest last
	unlocked []string

	lastLog string
	loading bool
	err     error
}

// snapshot is everything the board shows, read in one go.
type snapshot struct {
	now       time.Time
	progress  *engine.UserProgress
	theme     engine.ThemeType
	moveDone  bool
	questDone bool
	journal   int
}

type loadedMsg struct {
	snap *snapshot
}

type engineEventMsg struct {
	ev engine.Event
}

type completedMsg struct {
	what    string
	applied bool
	p       *engine.UserProgress
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		keys:    defaultKeys(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	if m.feed == nil {
		return m.loadCmd()
	}
	return tea.Batch(m.loadCmd(), m.feed.listen())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{snap: &snapshot{
			now:       m.svc.Now(),
			progress:  m.svc.Progress(m.ctx),
			theme:     m.svc.CurrentTheme(m.ctx),
			moveDone:  m.svc.IsDailyMoveDone(m.ctx),
			questDone: m.svc.IsDailyQuestDone(m.ctx),
			journal:   len(m.svc.JournalEntries(m.ctx)),
		}}
	}
}

func (m boardModel) completeMoveCmd() tea.Cmd {
	return func() tea.Msg {
		p, ok := m.svc.CompleteDailyMove(m.ctx)
		return completedMsg{what: "Daily move", applied: ok, p: p}
	}
}

func (m boardModel) completeQuestCmd() tea.Cmd {
	return func() tea.Msg {
		p, ok := m.svc.CompleteDailyQuest(m.ctx)
		return completedMsg{what: "Daily quest", applied: ok, p: p}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		m.loading = false
		m.snap = msg.snap
		ui.Use(msg.snap.theme)
		m.lastLog = fmt.Sprintf("Refreshed at %s.", msg.snap.now.Format("15:04:05"))
		return m, nil
	case engineEventMsg:
		return m.applyEvent(msg.ev)
	case completedMsg:
		if !msg.applied {
			m.lastLog = msg.what + " already done today."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("%s complete. Body score %d.", msg.what, msg.p.BodyScore)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Move):
			if m.snap != nil && m.snap.moveDone {
				m.lastLog = "Daily move already done today."
				return m, nil
			}
			m.lastLog = "Completing daily move…"
			return m, m.completeMoveCmd()
		case key.Matches(msg, m.keys.Quest):
			if m.snap != nil && m.snap.questDone {
				m.lastLog = "Daily quest already done today."
				return m, nil
			}
			m.lastLog = "Completing daily quest…"
			return m, m.completeQuestCmd()
		}
	}
	return m, nil
}

// applyEvent folds an engine event into the board and keeps listening.
func (m boardModel) applyEvent(ev engine.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch ev.Kind {
	case engine.EventProgressChanged, engine.EventJournalChanged:
		if m.snap != nil && ev.Progress != nil {
			m.snap.progress = ev.Progress
		}
		cmds = append(cmds, m.loadCmd())
	case engine.EventBadgesUnlocked:
		m.unlocked = append(m.unlocked, ev.Badges...)
		m.lastLog = "Badge unlocked: " + strings.Join(ev.Badges, ", ")
	case engine.EventThemeChanged:
		ui.Use(ev.Theme)
		if m.snap != nil {
			m.snap.theme = ev.Theme
		}
		m.lastLog = fmt.Sprintf("Theme switched to %s.", ev.Theme)
	}
	if m.feed != nil {
		cmds = append(cmds, m.feed.listen())
	}
	return m, tea.Batch(cmds...)
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.snap == nil {
		return "Loading ThunderpickMove…\n"
	}

	left := ui.Panel.Render(m.renderSidebar())
	right := ui.Panel.Render(m.renderMain())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	p := m.snap.progress
	return fmt.Sprintf("%s  %s  Body %d %s",
		ui.Heading(ui.IconBolt, "ThunderpickMove"),
		ui.StatusText(p.CurrentStatus),
		p.BodyScore,
		m.bar.ViewAs(float64(p.BodyScore)/engine.MaxLevel),
	)
}

func (m boardModel) renderSidebar() string {
	p := m.snap.progress
	lines := []string{ui.PanelTitle.Render("Skills")}
	for _, s := range engine.AllSkills {
		lvl := p.SkillLevels[s]
		lines = append(lines, fmt.Sprintf("%s %-8s %3d %s", ui.SkillIcon(s), s, lvl, m.bar.ViewAs(float64(lvl)/engine.MaxLevel)))
	}
	lines = append(lines, "")
	lines = append(lines, ui.PanelTitle.Render("Badges"))
	checker := engine.NewAchievementChecker(p)
	for _, a := range checker.GetAchievements() {
		mark := ui.Muted.Render(ui.IconLock)
		if a.Earned {
			mark = a.Icon
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, a.Name))
	}
	lines = append(lines, ui.Muted.Render(fmt.Sprintf("%d/%d earned", checker.CountEarned(), checker.CountTotal())))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	now := m.snap.now
	p := m.snap.progress

	move := engine.DailyPowerMove(now)
	pose := engine.DailyPose(now)
	var out []string
	out = append(out, ui.PanelTitle.Render("Today"))
	out = append(out, fmt.Sprintf("%s Move: %s %s", ui.IconMirror, move.Title, doneMark(m.snap.moveDone)))
	out = append(out, ui.Muted.Render("   "+move.Description))
	out = append(out, fmt.Sprintf("%s Quest: %s %s", ui.IconTarget, pose.Title, doneMark(m.snap.questDone)))
	out = append(out, ui.Muted.Render("   "+pose.Description))
	out = append(out, "")

	out = append(out, ui.PanelTitle.Render(fmt.Sprintf("Activity (last %d days)", heatmapDays)))
	out = append(out, renderHeatmap(engine.Heatmap(p, now, heatmapDays)))
	out = append(out, fmt.Sprintf("%s Streak: %d day(s)", ui.IconFire, engine.CurrentStreak(p, now)))
	out = append(out, "")
	out = append(out, ui.LabelValue("Activities", p.ActivitiesCompleted))
	out = append(out, ui.LabelValue("Journal entries", fmt.Sprintf("%d (%d kept)", p.TotalJournalEntries, m.snap.journal)))
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	log := m.lastLog
	if m.loading {
		log = "Loading…"
	}
	footer := ui.Muted.Render(log)
	if n := len(m.unlocked); n > 0 {
		footer = fmt.Sprintf("%s %s %s\n%s", ui.IconTrophy, ui.BadgeUnlocked, ui.Gold.Render(m.unlocked[n-1]), footer)
	}
	return footer + "\n" + m.help.View(m.keys)
}

// renderHeatmap lays intensities out in rows of seven, oldest first.
func renderHeatmap(cells []float64) string {
	var b strings.Builder
	for i, v := range cells {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(ui.HeatCell(v))
		b.WriteString(" ")
	}
	return b.String()
}

func doneMark(done bool) string {
	if done {
		return ui.Good.Render(ui.IconDone)
	}
	return ui.Muted.Render("(pending)")
}
