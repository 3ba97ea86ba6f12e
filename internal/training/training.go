// Package training runs timed body-language drills.
package training

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kosharny/ThunderpickMove/internal/engine"
)

// Drill is a fixed-length exercise rewarded as a training activity.
type Drill struct {
	Name        string
	Instruction string
	Duration    time.Duration
	Activity    engine.Activity
}

var drills = []Drill{
	{
		Name:        "Poker Face",
		Instruction: "Keep a completely neutral expression. Do not smile, frown, or show emotion.",
		Duration:    30 * time.Second,
		Activity: engine.Activity{
			Type:        engine.ActivityTraining,
			Title:       "Poker Face",
			Description: "Completed 30s session",
			Difficulty:  1,
			XPReward:    20,
		},
	},
	{
		Name:        "Magnetic Walk",
		Instruction: "Walk with purpose at a steady pace. Shoulders back, head high.",
		Duration:    60 * time.Second,
		Activity: engine.Activity{
			Type:        engine.ActivityTraining,
			Title:       "Magnetic Walk",
			Description: "Completed 1m pace tracking",
			Difficulty:  2,
			XPReward:    30,
		},
	},
	{
		Name:        "Power Posing",
		Instruction: "Hold an expansive pose: feet apart, hands on hips, chin up.",
		Duration:    2 * time.Minute,
		Activity: engine.Activity{
			Type:        engine.ActivityTraining,
			Title:       "Power Posing",
			Description: "Held pose for 2 mins",
			Difficulty:  3,
			XPReward:    50,
		},
	},
}

// Drills returns the available drills.
func Drills() []Drill {
	return append([]Drill(nil), drills...)
}

// FindDrill matches name case-insensitively, ignoring spaces and dashes.
func FindDrill(name string) (Drill, bool) {
	norm := func(s string) string {
		s = strings.ToLower(s)
		return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	}
	want := norm(name)
	for _, d := range drills {
		if norm(d.Name) == want {
			return d, true
		}
	}
	return Drill{}, false
}

// Completer records a finished activity.
type Completer interface {
	CompleteActivity(ctx context.Context, a engine.Activity) *engine.UserProgress
}

// Session counts a drill down one second per tick.
type Session struct {
	drill    Drill
	done     Completer
	interval time.Duration
}

type SessionOption func(*Session)

// WithTickInterval sets the wall time of one countdown second.
func WithTickInterval(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

func NewSession(d Drill, done Completer, opts ...SessionOption) *Session {
	s := &Session{drill: d, done: done, interval: time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run counts down and completes the drill's activity when the timer reaches
// zero. onTick, if set, receives the remaining time after every tick.
// A cancelled context ends the session without a reward.
func (s *Session) Run(ctx context.Context, onTick func(remaining time.Duration)) (*engine.UserProgress, error) {
	remaining := s.drill.Duration.Truncate(time.Second)
	if remaining <= 0 {
		return nil, fmt.Errorf("drill %q has no duration", s.drill.Name)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("drill %q abandoned: %w", s.drill.Name, ctx.Err())
		case <-ticker.C:
			remaining -= time.Second
			if onTick != nil {
				onTick(remaining)
			}
		}
	}
	return s.done.CompleteActivity(ctx, s.drill.Activity), nil
}
