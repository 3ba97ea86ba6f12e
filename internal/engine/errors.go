package engine

import "fmt"

// ThemeLockedError is returned when a premium theme is selected without the
// matching entitlement. It should be shown to the user.
type ThemeLockedError struct {
	Theme     ThemeType
	ProductID string
}

func (e ThemeLockedError) Error() string {
	if e.ProductID == "" {
		return fmt.Sprintf("theme '%s' is locked", e.Theme)
	}
	return fmt.Sprintf("theme '%s' requires purchase of %s", e.Theme, e.ProductID)
}
