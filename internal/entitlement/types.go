package entitlement

import (
	"context"
	"errors"
	"time"
)

// Product is a purchasable item as listed by the provider.
type Product struct {
	ID           string
	DisplayName  string
	DisplayPrice string
	Price        float64
}

// Transaction is a provider record of a granted product.
type Transaction struct {
	ID          string
	ProductID   string
	PurchasedAt time.Time
	Verified    bool
}

type PurchaseStatus string

const (
	StatusSuccess       PurchaseStatus = "success"
	StatusPending       PurchaseStatus = "pending"
	StatusUserCancelled PurchaseStatus = "userCancelled"
)

type PurchaseResult struct {
	Status      PurchaseStatus
	Transaction Transaction
}

// Outcome is what the presentation layer sees after a purchase attempt.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomePending   Outcome = "pending"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

var (
	ErrFailedVerification = errors.New("transaction failed verification")
	ErrUnknownProduct     = errors.New("unknown product")
)

// Provider is the purchase backend.
//
// CurrentEntitlements streams every transaction the user currently owns and
// closes the channel when done. Updates streams newly granted transactions
// until ctx is cancelled.
type Provider interface {
	FetchProducts(ctx context.Context, ids []string) ([]Product, error)
	Purchase(ctx context.Context, p Product) (PurchaseResult, error)
	CurrentEntitlements(ctx context.Context) (<-chan Transaction, error)
	Updates(ctx context.Context) <-chan Transaction
}
