package engine

import (
	"context"
	"math"
	"time"

	"github.com/kosharny/ThunderpickMove/internal/storage"
)

var progressKeys = []string{storage.KeyUserStats}

// CheckIn records a self-assessment. Each score is clamped to [0,1]; their
// average selects the status bucket and adds floor(avg*5) to the body score.
func (s *Service) CheckIn(ctx context.Context, posture, face, energy float64) *UserProgress {
	avg := (clampUnit(posture) + clampUnit(face) + clampUnit(energy)) / 3
	p, _ := s.mutate(ctx, progressKeys, func(p *UserProgress, now time.Time) bool {
		p.CurrentStatus = StatusForScore(avg)
		p.addBodyScore(int(math.Floor(avg * CheckInBodyFactor)))
		p.LastCheckInDate = &now
		LogActivity(p, now)
		return true
	})
	return p
}

// CompleteDailyMove rewards the daily power move once per calendar day.
// The bool is false when today's move was already completed.
func (s *Service) CompleteDailyMove(ctx context.Context) (*UserProgress, bool) {
	return s.mutate(ctx, progressKeys, func(p *UserProgress, now time.Time) bool {
		if doneOn(p.LastDailyMoveDate, now) {
			return false
		}
		p.addBodyScore(DailyMoveBodyBonus)
		p.ActivitiesCompleted++
		p.boostSkill(SkillPosture, ActivitySkillBoost)
		p.LastDailyMoveDate = &now
		LogActivity(p, now)
		return true
	})
}

// CompleteDailyQuest rewards the daily quest once per calendar day.
func (s *Service) CompleteDailyQuest(ctx context.Context) (*UserProgress, bool) {
	return s.mutate(ctx, progressKeys, func(p *UserProgress, now time.Time) bool {
		if doneOn(p.LastDailyQuestDate, now) {
			return false
		}
		p.addBodyScore(DailyQuestBodyBonus)
		p.ActivitiesCompleted++
		p.boostSkill(SkillMimicry, ActivitySkillBoost)
		p.LastDailyQuestDate = &now
		LogActivity(p, now)
		return true
	})
}

func (s *Service) IsDailyMoveDone(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return doneOn(s.progress.LastDailyMoveDate, s.Now())
}

func (s *Service) IsDailyQuestDone(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return doneOn(s.progress.LastDailyQuestDate, s.Now())
}

// CompleteActivity is not limited per day; every call counts.
func (s *Service) CompleteActivity(ctx context.Context, a Activity) *UserProgress {
	p, _ := s.mutate(ctx, progressKeys, func(p *UserProgress, now time.Time) bool {
		applyActivity(p, a, now)
		return true
	})
	return p
}

// FinishBattle completes a battle round. A perfect round also adds the
// perfect-battle bonus to the body score.
func (s *Service) FinishBattle(ctx context.Context, score, total int) *UserProgress {
	if score < 0 {
		score = 0
	}
	if score > total {
		score = total
	}
	a := Activity{
		Type:        ActivityBattle,
		Title:       "Body Language Battle",
		Description: "Completed a battle session",
		Difficulty:  2,
		XPReward:    score * BattleXPPerAnswer,
	}
	p, _ := s.mutate(ctx, progressKeys, func(p *UserProgress, now time.Time) bool {
		applyActivity(p, a, now)
		if total > 0 && score == total {
			p.addBodyScore(PerfectBattleBonus)
		}
		return true
	})
	return p
}

// BattleXPPerAnswer is the XP reward per correct battle answer.
const BattleXPPerAnswer = 15

func applyActivity(p *UserProgress, a Activity, now time.Time) {
	p.ActivitiesCompleted++
	p.boostSkill(a.Type.Skill(), ActivitySkillBoost)
	LogActivity(p, now)
}

func doneOn(last *time.Time, now time.Time) bool {
	return last != nil && SameDay(*last, now, now.Location())
}
