package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/storage"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newTestModel(t *testing.T) boardModel {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := engine.NewService(storage.NewKVRepo(db),
		engine.WithClock(func() time.Time { return now }),
		engine.WithLocation(time.UTC))
	return newBoardModel(ctx, svc)
}

func run(m boardModel, cmd tea.Cmd) boardModel {
	for cmd != nil {
		next, c := m.Update(cmd())
		m = next.(boardModel)
		cmd = c
	}
	return m
}

func TestBoardLoadsAndRenders(t *testing.T) {
	m := newTestModel(t)
	m = run(m, m.Init())

	require.NotNil(t, m.snap)
	view := m.View()
	assert.Contains(t, view, "ThunderpickMove")
	assert.Contains(t, view, "Skills")
	assert.Contains(t, view, "Steel Eyes")
	assert.Contains(t, view, engine.DailyPowerMove(m.snap.now).Title)
}

func TestBoardCompletesDailyMoveOnce(t *testing.T) {
	m := newTestModel(t)
	m = run(m, m.Init())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = run(next.(boardModel), cmd)
	assert.True(t, m.snap.moveDone)
	assert.Equal(t, engine.DailyMoveBodyBonus, m.snap.progress.BodyScore)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = next.(boardModel)
	assert.Nil(t, cmd)
	assert.True(t, strings.Contains(m.lastLog, "already done"))
}

type allowAll struct{}

func (allowAll) HasAccess(engine.ThemeType) bool { return true }

func TestBoardFollowsEngineEvents(t *testing.T) {
	ctx := context.Background()
	m := newTestModel(t)
	feed := subscribe(m.svc)
	t.Cleanup(feed.stop)
	t.Cleanup(func() { ui.Use(engine.ThemeStandard) })
	m.feed = feed
	m = run(m, m.loadCmd())

	for i := 0; i < 10; i++ {
		m.svc.CompleteActivity(ctx, engine.Activity{Type: engine.ActivityQuest})
	}
	require.NoError(t, m.svc.SetTheme(ctx, engine.ThemeNeonCyber, allowAll{}))

	// ten progress events, one badge event, one theme event
	var kinds []engine.EventKind
	for i := 0; i < 12; i++ {
		msg, ok := feed.listen()().(engineEventMsg)
		require.True(t, ok)
		kinds = append(kinds, msg.ev.Kind)
		next, cmd := m.Update(msg)
		m = next.(boardModel)
		assert.NotNil(t, cmd)
	}

	assert.Contains(t, kinds, engine.EventBadgesUnlocked)
	assert.Equal(t, engine.EventThemeChanged, kinds[len(kinds)-1])
	assert.Equal(t, 10, m.snap.progress.ActivitiesCompleted)
	assert.Equal(t, engine.ThemeNeonCyber, m.snap.theme)
	assert.Equal(t, []string{engine.BadgeSteelEyes}, m.unlocked)
	assert.Contains(t, m.View(), "BADGE UNLOCKED")

	feed.stop()
	assert.Nil(t, feed.listen()())
	m.svc.CompleteActivity(ctx, engine.Activity{Type: engine.ActivityQuest})
}

func TestRenderHeatmapRows(t *testing.T) {
	out := renderHeatmap(make([]float64, 28))
	assert.Equal(t, 4, len(strings.Split(out, "\n")))
}
