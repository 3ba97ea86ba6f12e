package storage

import "time"

// Keys of the records the engine persists.
const (
	KeyUserStats      = "userStats"
	KeyJournal        = "journal"
	KeyActivities     = "activities"
	KeySelectedTheme  = "selectedThemeID"
	KeyPremium        = "isPremium" // legacy, not authoritative
	KeyOnboardingDone = "isOnboardingComplete"
)

type KVEntry struct {
	Key   string
	Value []byte
}

type Purchase struct {
	TransactionID string
	ProductID     string
	PurchasedAt   time.Time
	Signature     string
}
