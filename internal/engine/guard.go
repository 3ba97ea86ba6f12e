package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EntitlementSource is an AccessChecker that knows when its first full
// entitlement scan has finished.
type EntitlementSource interface {
	AccessChecker
	IsLoaded() bool
}

// ThemeGuard reverts the selected theme to standard when the entitlement
// behind it is gone. Nothing is reverted before the source has loaded.
type ThemeGuard struct {
	svc    *Service
	src    EntitlementSource
	logger *zap.Logger

	mu sync.Mutex
}

func NewThemeGuard(svc *Service, src EntitlementSource) *ThemeGuard {
	return &ThemeGuard{svc: svc, src: src, logger: svc.logger.Named("guard")}
}

// Validate checks the selected theme against the source. It reports whether
// the theme was reverted.
func (g *ThemeGuard) Validate(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.src.IsLoaded() {
		return false
	}
	current := g.svc.CurrentTheme(ctx)
	if !current.IsPremium() || g.src.HasAccess(current) {
		return false
	}
	if !g.svc.revertTheme(ctx, current) {
		return false
	}
	g.logger.Info("theme entitlement missing, reverted to standard",
		zap.String("theme", string(current)))
	return true
}
