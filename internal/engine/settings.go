package engine

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/storage"
)

// AccessChecker answers whether a theme may be used.
type AccessChecker interface {
	HasAccess(theme ThemeType) bool
}

func (s *Service) CurrentTheme(ctx context.Context) ThemeType {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return s.theme
}

// SetTheme selects and persists theme if access allows it.
func (s *Service) SetTheme(ctx context.Context, theme ThemeType, access AccessChecker) error {
	if !theme.IsValid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if theme.IsPremium() && (access == nil || !access.HasAccess(theme)) {
		return ThemeLockedError{Theme: theme, ProductID: theme.ProductID()}
	}
	s.applyTheme(ctx, theme)
	return nil
}

// revertTheme falls back to the free theme if from is still selected. It
// reports whether anything changed.
func (s *Service) revertTheme(ctx context.Context, from ThemeType) bool {
	s.mu.Lock()
	s.ensureLoaded(ctx)
	if s.theme != from || s.theme == ThemeStandard {
		s.mu.Unlock()
		return false
	}
	s.applyThemeLocked(ctx, ThemeStandard)
	s.mu.Unlock()

	s.observers.notify(Event{Kind: EventThemeChanged, Theme: ThemeStandard})
	return true
}

func (s *Service) applyTheme(ctx context.Context, theme ThemeType) {
	s.mu.Lock()
	s.ensureLoaded(ctx)
	changed := s.applyThemeLocked(ctx, theme)
	s.mu.Unlock()

	if changed {
		s.observers.notify(Event{Kind: EventThemeChanged, Theme: theme})
	}
}

// applyThemeLocked stores theme and reports whether it differs from the
// previous selection. s.mu must be held.
func (s *Service) applyThemeLocked(ctx context.Context, theme ThemeType) bool {
	changed := s.theme != theme
	s.theme = theme
	if err := s.kv.Put(ctx, storage.KeySelectedTheme, []byte(theme)); err != nil {
		s.logger.Warn("write failed", zap.String("key", storage.KeySelectedTheme), zap.Error(err))
	}
	return changed
}

func (s *Service) IsOnboardingComplete(ctx context.Context) bool {
	return s.readBool(ctx, storage.KeyOnboardingDone)
}

func (s *Service) SetOnboardingComplete(ctx context.Context, done bool) {
	s.writeBool(ctx, storage.KeyOnboardingDone, done)
}

// LegacyPremium reads the old premium flag. Entitlements decide access;
// this flag is kept for compatibility only.
func (s *Service) LegacyPremium(ctx context.Context) bool {
	return s.readBool(ctx, storage.KeyPremium)
}

func (s *Service) SetLegacyPremium(ctx context.Context, v bool) {
	s.writeBool(ctx, storage.KeyPremium, v)
}

func (s *Service) readBool(ctx context.Context, key string) bool {
	raw := s.readRaw(ctx, key)
	if raw == nil {
		return false
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		s.logger.Warn("decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return v
}

func (s *Service) writeBool(ctx context.Context, key string, v bool) {
	if err := s.kv.Put(ctx, key, []byte(strconv.FormatBool(v))); err != nil {
		s.logger.Warn("write failed", zap.String("key", key), zap.Error(err))
	}
}
