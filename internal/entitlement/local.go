package entitlement

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/storage"
)

// PurchaseStore persists local transactions.
type PurchaseStore interface {
	Insert(ctx context.Context, p storage.Purchase) error
	ListAll(ctx context.Context) ([]storage.Purchase, error)
}

// LocalProvider is a Provider backed by the local purchases table. Every
// transaction is signed with an HMAC key; rows whose signature does not match
// are reported as unverified.
type LocalProvider struct {
	store    PurchaseStore
	products []Product
	key      []byte
	now      func() time.Time
	logger   *zap.Logger

	mu      sync.Mutex
	next    PurchaseStatus
	subNext int
	subs    map[int]*subscriber
}

type subscriber struct {
	ch  chan Transaction
	ctx context.Context
}

type LocalOption func(*LocalProvider)

func WithLocalClock(now func() time.Time) LocalOption {
	return func(p *LocalProvider) {
		if now != nil {
			p.now = now
		}
	}
}

func WithLocalLogger(l *zap.Logger) LocalOption {
	return func(p *LocalProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewLocalProvider(store PurchaseStore, products []Product, key []byte, opts ...LocalOption) *LocalProvider {
	p := &LocalProvider{
		store:    store,
		products: append([]Product(nil), products...),
		key:      append([]byte(nil), key...),
		now:      time.Now,
		logger:   zap.NewNop(),
		subs:     map[int]*subscriber{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("store")
	return p
}

// SetNextOutcome makes the next Purchase call end with status instead of
// completing. Used to simulate deferred and cancelled purchases.
func (p *LocalProvider) SetNextOutcome(status PurchaseStatus) {
	p.mu.Lock()
	p.next = status
	p.mu.Unlock()
}

// FetchProducts returns the configured products matching ids, in ids order.
func (p *LocalProvider) FetchProducts(ctx context.Context, ids []string) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	byID := make(map[string]Product, len(p.products))
	for _, prod := range p.products {
		byID[prod.ID] = prod
	}
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if prod, ok := byID[id]; ok {
			out = append(out, prod)
		}
	}
	return out, nil
}

func (p *LocalProvider) Purchase(ctx context.Context, prod Product) (PurchaseResult, error) {
	if err := ctx.Err(); err != nil {
		return PurchaseResult{}, err
	}

	p.mu.Lock()
	status := p.next
	p.next = ""
	p.mu.Unlock()

	switch status {
	case StatusPending, StatusUserCancelled:
		return PurchaseResult{Status: status}, nil
	}

	known := false
	for _, candidate := range p.products {
		if candidate.ID == prod.ID {
			known = true
			break
		}
	}
	if !known {
		return PurchaseResult{}, fmt.Errorf("purchase %s: %w", prod.ID, ErrUnknownProduct)
	}

	rec := storage.Purchase{
		TransactionID: uuid.NewString(),
		ProductID:     prod.ID,
		PurchasedAt:   p.now().UTC(),
	}
	rec.Signature = p.sign(rec.TransactionID, rec.ProductID)
	if err := p.store.Insert(ctx, rec); err != nil {
		return PurchaseResult{}, fmt.Errorf("record purchase: %w", err)
	}

	tx := p.transaction(rec)
	p.broadcast(ctx, tx)
	return PurchaseResult{Status: StatusSuccess, Transaction: tx}, nil
}

// CurrentEntitlements streams all stored transactions, oldest first.
func (p *LocalProvider) CurrentEntitlements(ctx context.Context) (<-chan Transaction, error) {
	rows, err := p.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	ch := make(chan Transaction, len(rows))
	for _, rec := range rows {
		ch <- p.transaction(rec)
	}
	close(ch)
	return ch, nil
}

// Updates streams transactions recorded after the call until ctx is done.
func (p *LocalProvider) Updates(ctx context.Context) <-chan Transaction {
	sub := &subscriber{ch: make(chan Transaction, 8), ctx: ctx}

	p.mu.Lock()
	id := p.subNext
	p.subNext++
	p.subs[id] = sub
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		delete(p.subs, id)
		close(sub.ch)
		p.mu.Unlock()
	}()
	return sub.ch
}

func (p *LocalProvider) broadcast(ctx context.Context, tx Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sub := range p.subs {
		select {
		case sub.ch <- tx:
		case <-sub.ctx.Done():
		case <-ctx.Done():
			return
		}
	}
}

func (p *LocalProvider) transaction(rec storage.Purchase) Transaction {
	ok := hmac.Equal([]byte(rec.Signature), []byte(p.sign(rec.TransactionID, rec.ProductID)))
	if !ok {
		p.logger.Warn("signature mismatch", zap.String("transaction", rec.TransactionID))
	}
	return Transaction{
		ID:          rec.TransactionID,
		ProductID:   rec.ProductID,
		PurchasedAt: rec.PurchasedAt,
		Verified:    ok,
	}
}

func (p *LocalProvider) sign(txID, productID string) string {
	mac := hmac.New(sha256.New, p.key)
	mac.Write([]byte(txID + ":" + productID))
	return hex.EncodeToString(mac.Sum(nil))
}
