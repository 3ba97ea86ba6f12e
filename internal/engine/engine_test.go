package engine

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kosharny/ThunderpickMove/internal/storage"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestKV(t *testing.T) *storage.KVRepo {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewKVRepo(db)
}

func newTestService(t *testing.T) (*Service, *testClock, *storage.KVRepo) {
	t.Helper()
	kv := newTestKV(t)
	clock := &testClock{t: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)}
	svc := NewService(kv, WithClock(clock.Now), WithLocation(time.UTC))
	return svc, clock, kv
}

func TestCheckInSetsStatusBucket(t *testing.T) {
	cases := []struct {
		name                  string
		posture, face, energy float64
		want                  BodyStatus
		wantBody              int
	}{
		{"all zero", 0, 0, 0, StatusCollapsed, 0},
		{"low", 0.05, 0.05, 0.05, StatusCollapsed, 0},
		{"middle", 0.45, 0.45, 0.45, StatusNeutral, 2},
		{"half", 0.5, 0.5, 0.5, StatusSteady, 2},
		{"present boundary", 0.6, 0.6, 0.6, StatusPresent, 3},
		{"top bucket", 0.9, 1.0, 0.95, StatusAlpha, 4},
		{"full", 1, 1, 1, StatusAlpha, 5},
		{"clamped", 3, 2, 5, StatusAlpha, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			p := svc.CheckIn(context.Background(), tc.posture, tc.face, tc.energy)
			if p.CurrentStatus != tc.want {
				t.Fatalf("status=%q, want %q", p.CurrentStatus, tc.want)
			}
			if p.BodyScore != tc.wantBody {
				t.Fatalf("bodyScore=%d, want %d", p.BodyScore, tc.wantBody)
			}
			if p.LastCheckInDate == nil {
				t.Fatalf("expected check-in date")
			}
		})
	}
}

func TestStatusForScoreBoundaries(t *testing.T) {
	cases := map[float64]BodyStatus{
		0:     StatusCollapsed,
		0.1:   StatusGuarded,
		0.5:   StatusSteady,
		0.6:   StatusPresent,
		0.899: StatusDominant,
		0.9:   StatusAlpha,
		0.95:  StatusAlpha,
		1:     StatusAlpha,
		-1:    StatusCollapsed,
	}
	for score, want := range cases {
		if got := StatusForScore(score); got != want {
			t.Fatalf("StatusForScore(%v)=%q, want %q", score, got, want)
		}
	}
	if got := StatusRank(StatusAlpha); got != 9 {
		t.Fatalf("StatusRank(alpha)=%d, want 9", got)
	}
}

func TestScoresStayWithinBounds(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	quest := Activity{Type: ActivityQuest, Title: "q"}
	for i := 0; i < 40; i++ {
		svc.CheckIn(ctx, 1, 1, 1)
		svc.CompleteActivity(ctx, quest)
		svc.CompleteDailyMove(ctx)
		svc.AddJournalEntry(ctx, JournalEntry{Mood: MoodStress, AudioPath: "a.m4a"})
		clock.Advance(24 * time.Hour)
	}

	p := svc.Progress(ctx)
	if p.BodyScore != MaxLevel {
		t.Fatalf("bodyScore=%d, want %d", p.BodyScore, MaxLevel)
	}
	for _, skill := range AllSkills {
		if lvl := p.SkillLevels[skill]; lvl < 0 || lvl > MaxLevel {
			t.Fatalf("skill %s=%d out of range", skill, lvl)
		}
	}
	if p.SkillLevels[SkillMimicry] != MaxLevel || p.SkillLevels[SkillVoice] != MaxLevel {
		t.Fatalf("expected saturated skills, got %v", p.SkillLevels)
	}
}

func TestLoadClampsStoredRecord(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	raw := `{"bodyScore":-5,"skillLevels":{"Mimicry":150},"unlockedBadges":["Alpha","Alpha"]}`
	if err := kv.Put(ctx, storage.KeyUserStats, []byte(raw)); err != nil {
		t.Fatalf("put: %v", err)
	}
	p := svc.Load(ctx)
	if p.BodyScore != 0 {
		t.Fatalf("bodyScore=%d, want 0", p.BodyScore)
	}
	if p.SkillLevels[SkillMimicry] != MaxLevel || p.SkillLevels[SkillVoice] != InitialSkillLevel {
		t.Fatalf("unexpected skills %v", p.SkillLevels)
	}
	if len(p.UnlockedBadges) != 1 {
		t.Fatalf("badges=%v, want one", p.UnlockedBadges)
	}
	if p.CurrentStatus != StatusNeutral {
		t.Fatalf("status=%q, want neutral", p.CurrentStatus)
	}
}

func TestLoadFallsBackOnCorruptRecord(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	if err := kv.Put(ctx, storage.KeyUserStats, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}
	p := svc.Load(ctx)
	if p.BodyScore != 0 || p.ActivitiesCompleted != 0 {
		t.Fatalf("expected defaults, got %+v", p)
	}
	if p.SkillLevels[SkillPosture] != InitialSkillLevel {
		t.Fatalf("posture=%d, want %d", p.SkillLevels[SkillPosture], InitialSkillLevel)
	}
}

func TestDailyMoveOncePerDay(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	p, ok := svc.CompleteDailyMove(ctx)
	if !ok {
		t.Fatalf("first completion rejected")
	}
	if p.BodyScore != DailyMoveBodyBonus || p.ActivitiesCompleted != 1 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if !svc.IsDailyMoveDone(ctx) {
		t.Fatalf("expected move done today")
	}

	clock.Advance(2 * time.Hour)
	p, ok = svc.CompleteDailyMove(ctx)
	if ok {
		t.Fatalf("second completion on same day applied")
	}
	if p.BodyScore != DailyMoveBodyBonus || p.ActivitiesCompleted != 1 {
		t.Fatalf("reward applied twice: %+v", p)
	}

	clock.Advance(24 * time.Hour)
	if svc.IsDailyMoveDone(ctx) {
		t.Fatalf("move should reset on a new day")
	}
	p, ok = svc.CompleteDailyMove(ctx)
	if !ok {
		t.Fatalf("next-day completion rejected")
	}
	if p.BodyScore != 2*DailyMoveBodyBonus || p.SkillLevels[SkillPosture] != InitialSkillLevel+2*ActivitySkillBoost {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestDailyQuestOncePerDay(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	if _, ok := svc.CompleteDailyQuest(ctx); !ok {
		t.Fatalf("first completion rejected")
	}
	if _, ok := svc.CompleteDailyQuest(ctx); ok {
		t.Fatalf("second completion applied")
	}
	clock.Advance(24 * time.Hour)
	p, ok := svc.CompleteDailyQuest(ctx)
	if !ok {
		t.Fatalf("next-day completion rejected")
	}
	if p.BodyScore != 2*DailyQuestBodyBonus {
		t.Fatalf("bodyScore=%d, want %d", p.BodyScore, 2*DailyQuestBodyBonus)
	}
	if p.SkillLevels[SkillMimicry] != InitialSkillLevel+2*ActivitySkillBoost {
		t.Fatalf("mimicry=%d", p.SkillLevels[SkillMimicry])
	}
}

func TestCompleteActivityNotDayGated(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	battle := Activity{Type: ActivityBattle, Title: "Negotiation Face"}
	var p *UserProgress
	for i := 0; i < 5; i++ {
		p = svc.CompleteActivity(ctx, battle)
	}
	if p.ActivitiesCompleted != 5 {
		t.Fatalf("activitiesCompleted=%d, want 5", p.ActivitiesCompleted)
	}
	if p.SkillLevels[SkillGestures] != InitialSkillLevel+25 {
		t.Fatalf("gestures=%d, want %d", p.SkillLevels[SkillGestures], InitialSkillLevel+25)
	}
	if got := ActivityCount(p, clock.Now()); got != 5 {
		t.Fatalf("activity count today=%d, want 5", got)
	}
}

func TestActivityTypeSkill(t *testing.T) {
	cases := map[ActivityType]SkillType{
		ActivityQuest:    SkillMimicry,
		ActivityTraining: SkillPosture,
		ActivityBattle:   SkillGestures,
	}
	for typ, want := range cases {
		if got := typ.Skill(); got != want {
			t.Fatalf("%s.Skill()=%s, want %s", typ, got, want)
		}
	}
}

func TestEvaluateBadgesWriterOnly(t *testing.T) {
	p := NewUserProgress()
	p.TotalJournalEntries = 5

	got := EvaluateBadges(p)
	if len(got) != 1 || got[0] != BadgeWriter {
		t.Fatalf("EvaluateBadges=%v, want [Writer]", got)
	}

	added := MergeBadges(p, got)
	if len(added) != 1 {
		t.Fatalf("added=%v", added)
	}
	p.TotalJournalEntries = 0
	if added := MergeBadges(p, EvaluateBadges(p)); len(added) != 0 {
		t.Fatalf("unexpected additions %v", added)
	}
	if !p.HasBadge(BadgeWriter) {
		t.Fatalf("Writer badge was lost")
	}
}

func TestEvaluateBadgesThresholds(t *testing.T) {
	p := NewUserProgress()
	p.ActivitiesCompleted = 15
	p.BodyScore = 90

	got := EvaluateBadges(p)
	want := []string{BadgeSteelEyes, BadgeAlpha, BadgeConsistent}
	if len(got) != len(want) {
		t.Fatalf("EvaluateBadges=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EvaluateBadges=%v, want %v", got, want)
		}
	}

	checker := NewAchievementChecker(p)
	if checker.CountEarned() != 3 || checker.CountTotal() != 4 {
		t.Fatalf("earned=%d total=%d", checker.CountEarned(), checker.CountTotal())
	}
}

func TestDeleteJournalKeepsCounterAndBadges(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.AddJournalEntry(ctx, NewJournalEntry(MoodConfidence, "entry", svc.Now()))
	}
	entries := svc.JournalEntries(ctx)
	if len(entries) != 5 {
		t.Fatalf("entries=%d, want 5", len(entries))
	}
	if p := svc.Progress(ctx); !p.HasBadge(BadgeWriter) {
		t.Fatalf("expected Writer badge, got %v", p.UnlockedBadges)
	}

	if !svc.DeleteJournalEntry(ctx, entries[2].ID) {
		t.Fatalf("delete returned false")
	}
	if svc.DeleteJournalEntry(ctx, entries[2].ID) {
		t.Fatalf("second delete returned true")
	}

	left := svc.JournalEntries(ctx)
	if len(left) != 4 {
		t.Fatalf("entries=%d, want 4", len(left))
	}
	for _, e := range left {
		if e.ID == entries[2].ID {
			t.Fatalf("deleted entry still listed")
		}
	}
	p := svc.Progress(ctx)
	if p.TotalJournalEntries != 5 {
		t.Fatalf("totalJournalEntries=%d, want 5", p.TotalJournalEntries)
	}
	if !p.HasBadge(BadgeWriter) {
		t.Fatalf("Writer badge was lost")
	}
}

func TestJournalAudioBoostsVoice(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p := svc.AddJournalEntry(ctx, JournalEntry{Mood: MoodDominance, Notes: "text only"})
	if p.SkillLevels[SkillVoice] != InitialSkillLevel {
		t.Fatalf("voice boosted without audio")
	}
	p = svc.AddJournalEntry(ctx, JournalEntry{Mood: MoodDominance, AudioPath: "x.m4a"})
	if p.SkillLevels[SkillVoice] != InitialSkillLevel+VoiceJournalBoost {
		t.Fatalf("voice=%d", p.SkillLevels[SkillVoice])
	}
	for _, e := range svc.JournalEntries(ctx) {
		if e.ID == "" || e.Date.IsZero() {
			t.Fatalf("entry not stamped: %+v", e)
		}
	}
}

func TestStatePersistsAcrossServices(t *testing.T) {
	svc, clock, kv := newTestService(t)
	ctx := context.Background()

	svc.CompleteDailyMove(ctx)
	svc.AddJournalEntry(ctx, JournalEntry{Mood: MoodStress, Notes: "tense"})
	acts := svc.Activities(ctx)

	reopened := NewService(kv, WithClock(clock.Now), WithLocation(time.UTC))
	p := reopened.Load(ctx)
	if p.BodyScore != DailyMoveBodyBonus || p.TotalJournalEntries != 1 {
		t.Fatalf("unexpected reloaded progress %+v", p)
	}
	if !reopened.IsDailyMoveDone(ctx) {
		t.Fatalf("daily move date not persisted")
	}
	if got := reopened.JournalEntries(ctx); len(got) != 1 || got[0].Notes != "tense" {
		t.Fatalf("journal not persisted: %+v", got)
	}
	again := reopened.Activities(ctx)
	if len(again) != len(acts) || again[0].ID != acts[0].ID {
		t.Fatalf("activities reseeded")
	}
}

func TestFindActivity(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	acts := svc.Activities(ctx)
	if len(acts) != 3 {
		t.Fatalf("activities=%d, want 3", len(acts))
	}
	a, ok := svc.FindActivity(ctx, "magnetic walk")
	if !ok || a.Type != ActivityTraining {
		t.Fatalf("FindActivity by title: %+v %v", a, ok)
	}
	a, ok = svc.FindActivity(ctx, acts[2].ID[:8])
	if !ok || a.ID != acts[2].ID {
		t.Fatalf("FindActivity by prefix: %+v %v", a, ok)
	}
	if _, ok := svc.FindActivity(ctx, "nope"); ok {
		t.Fatalf("unexpected match")
	}
}

func TestFinishBattlePerfectBonus(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p := svc.FinishBattle(ctx, 7, 10)
	if p.BodyScore != 0 || p.SkillLevels[SkillGestures] != InitialSkillLevel+ActivitySkillBoost {
		t.Fatalf("unexpected progress %+v", p)
	}
	p = svc.FinishBattle(ctx, 10, 10)
	if p.BodyScore != PerfectBattleBonus {
		t.Fatalf("bodyScore=%d, want %d", p.BodyScore, PerfectBattleBonus)
	}
	if p.ActivitiesCompleted != 2 {
		t.Fatalf("activitiesCompleted=%d, want 2", p.ActivitiesCompleted)
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var kinds []EventKind
	var badges []string
	unsubscribe := svc.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		badges = append(badges, ev.Badges...)
		// observers may read back into the service
		_ = svc.Progress(ctx)
	})

	for i := 0; i < 10; i++ {
		svc.CompleteActivity(ctx, Activity{Type: ActivityQuest})
	}
	if len(badges) != 1 || badges[0] != BadgeSteelEyes {
		t.Fatalf("badges=%v, want [Steel Eyes]", badges)
	}
	if kinds[0] != EventProgressChanged {
		t.Fatalf("first event=%s", kinds[0])
	}

	unsubscribe()
	n := len(kinds)
	svc.CompleteActivity(ctx, Activity{Type: ActivityQuest})
	if len(kinds) != n {
		t.Fatalf("event delivered after unsubscribe")
	}
}

type fakeAccess struct {
	mu     sync.Mutex
	owned  map[ThemeType]bool
	loaded bool
}

func (f *fakeAccess) HasAccess(theme ThemeType) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return theme == ThemeStandard || f.owned[theme]
}

func (f *fakeAccess) IsLoaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func TestSetThemeRequiresAccess(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()
	access := &fakeAccess{owned: map[ThemeType]bool{}}

	err := svc.SetTheme(ctx, ThemeNeonCyber, access)
	var locked ThemeLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected ThemeLockedError, got %v", err)
	}
	if locked.ProductID != ProductNeonTheme {
		t.Fatalf("productID=%q", locked.ProductID)
	}
	if svc.CurrentTheme(ctx) != ThemeStandard {
		t.Fatalf("theme changed without access")
	}

	access.owned[ThemeNeonCyber] = true
	if err := svc.SetTheme(ctx, ThemeNeonCyber, access); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	raw, err := kv.Get(ctx, storage.KeySelectedTheme)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(raw) != string(ThemeNeonCyber) {
		t.Fatalf("stored theme=%q", raw)
	}
	if err := svc.SetTheme(ctx, ThemeType("sepia"), access); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestThemeGuardRevertsAfterLoad(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	access := &fakeAccess{owned: map[ThemeType]bool{ThemeStealthOps: true}}

	if err := svc.SetTheme(ctx, ThemeStealthOps, access); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	guard := NewThemeGuard(svc, access)

	access.owned = map[ThemeType]bool{}
	if guard.Validate(ctx) {
		t.Fatalf("reverted before entitlements loaded")
	}
	if svc.CurrentTheme(ctx) != ThemeStealthOps {
		t.Fatalf("theme changed before load")
	}

	access.loaded = true
	var themes []ThemeType
	svc.Subscribe(func(ev Event) {
		if ev.Kind == EventThemeChanged {
			themes = append(themes, ev.Theme)
		}
	})
	if !guard.Validate(ctx) {
		t.Fatalf("expected revert")
	}
	if svc.CurrentTheme(ctx) != ThemeStandard {
		t.Fatalf("theme=%s, want standard", svc.CurrentTheme(ctx))
	}
	if len(themes) != 1 || themes[0] != ThemeStandard {
		t.Fatalf("theme events=%v", themes)
	}
	if guard.Validate(ctx) {
		t.Fatalf("second validate reverted again")
	}
}

func TestRevertThemeLosesToConcurrentSelection(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	access := &fakeAccess{owned: map[ThemeType]bool{ThemeStealthOps: true, ThemeNeonCyber: true}}

	if svc.revertTheme(ctx, ThemeStealthOps) {
		t.Fatalf("reverted a theme that is not selected")
	}

	// Whatever the interleaving, the later selection of neon must survive a
	// revert of the previously selected stealth theme.
	for i := 0; i < 200; i++ {
		if err := svc.SetTheme(ctx, ThemeStealthOps, access); err != nil {
			t.Fatalf("SetTheme: %v", err)
		}
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.revertTheme(ctx, ThemeStealthOps)
		}()
		go func() {
			defer wg.Done()
			_ = svc.SetTheme(ctx, ThemeNeonCyber, access)
		}()
		wg.Wait()
		if got := svc.CurrentTheme(ctx); got != ThemeNeonCyber {
			t.Fatalf("iteration %d: theme=%s, want %s", i, got, ThemeNeonCyber)
		}
	}
}

func TestUnknownStoredThemeFallsBack(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	if err := kv.Put(ctx, storage.KeySelectedTheme, []byte("vaporwave")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := svc.CurrentTheme(ctx); got != ThemeStandard {
		t.Fatalf("theme=%s, want standard", got)
	}
}

func TestOnboardingAndLegacyFlags(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if svc.IsOnboardingComplete(ctx) || svc.LegacyPremium(ctx) {
		t.Fatalf("flags should default to false")
	}
	svc.SetOnboardingComplete(ctx, true)
	svc.SetLegacyPremium(ctx, true)
	if !svc.IsOnboardingComplete(ctx) || !svc.LegacyPremium(ctx) {
		t.Fatalf("flags not persisted")
	}
}

func TestParseMood(t *testing.T) {
	if m, ok := ParseMood(" Stressed "); !ok || m != MoodStress {
		t.Fatalf("ParseMood(stressed)=%q %v", m, ok)
	}
	if _, ok := ParseMood("sleepy"); ok {
		t.Fatalf("expected failure")
	}
	if a, ok := ParseActivityType("Battle"); !ok || a != ActivityBattle {
		t.Fatalf("ParseActivityType(Battle)=%q %v", a, ok)
	}
}
