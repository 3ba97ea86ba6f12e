package entitlement

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kosharny/ThunderpickMove/internal/engine"
)

type GateEventKind string

const (
	GateLoaded         GateEventKind = "loaded"
	GateOwnedChanged   GateEventKind = "owned_changed"
	GateCatalogChanged GateEventKind = "catalog_changed"
)

type GateEvent struct {
	Kind  GateEventKind
	Owned []string
}

// Gate tracks which products the user owns and answers theme access
// questions. Owned state is rebuilt from the provider every session.
type Gate struct {
	provider   Provider
	productIDs []string
	logger     *zap.Logger

	mu      sync.RWMutex
	owned   map[string]struct{}
	loaded  bool
	catalog []Product
	// grants made while a Restore is reading the provider, keyed by restore
	restoring   map[int]map[string]struct{}
	restoreNext int

	subMu   sync.Mutex
	subNext int
	subs    map[int]func(GateEvent)

	watchMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewGate(provider Provider, productIDs []string, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		provider:   provider,
		productIDs: append([]string(nil), productIDs...),
		logger:     logger.Named("entitlement"),
		owned:      map[string]struct{}{},
	}
}

// FetchCatalog loads product listings, ordered by price.
func (g *Gate) FetchCatalog(ctx context.Context) error {
	products, err := g.provider.FetchProducts(ctx, g.productIDs)
	if err != nil {
		g.logger.Warn("fetch products failed", zap.Error(err))
		return fmt.Errorf("fetch products: %w", err)
	}
	products = slices.Clone(products)
	sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })

	g.mu.Lock()
	g.catalog = products
	g.mu.Unlock()

	g.notify(GateEvent{Kind: GateCatalogChanged})
	return nil
}

// Restore rebuilds the owned set from the provider's current entitlements.
// Unverified transactions are skipped. Products granted while the stream is
// being read are kept.
func (g *Gate) Restore(ctx context.Context) error {
	g.mu.Lock()
	id := g.restoreNext
	g.restoreNext++
	if g.restoring == nil {
		g.restoring = map[int]map[string]struct{}{}
	}
	g.restoring[id] = map[string]struct{}{}
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		delete(g.restoring, id)
		g.mu.Unlock()
	}()

	ch, err := g.provider.CurrentEntitlements(ctx)
	if err != nil {
		g.logger.Warn("current entitlements failed", zap.Error(err))
		return fmt.Errorf("current entitlements: %w", err)
	}

	owned := map[string]struct{}{}
	for done := false; !done; {
		select {
		case tx, ok := <-ch:
			if !ok {
				done = true
				continue
			}
			if !g.verified(tx) {
				continue
			}
			owned[tx.ProductID] = struct{}{}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.mu.Lock()
	for productID := range g.restoring[id] {
		owned[productID] = struct{}{}
	}
	changed := !sameSet(g.owned, owned)
	g.owned = owned
	g.mu.Unlock()

	if changed {
		g.notify(GateEvent{Kind: GateOwnedChanged, Owned: g.Owned()})
	}
	return nil
}

// Start fetches the catalog and restores entitlements concurrently, marks the
// gate loaded and starts watching for updates. A catalog failure is logged
// and does not keep the gate from loading; a restore failure does.
func (g *Gate) Start(ctx context.Context) error {
	var eg errgroup.Group
	eg.Go(func() error {
		_ = g.FetchCatalog(ctx)
		return nil
	})
	eg.Go(func() error {
		return g.Restore(ctx)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	g.mu.Lock()
	g.loaded = true
	g.mu.Unlock()
	g.notify(GateEvent{Kind: GateLoaded, Owned: g.Owned()})

	g.Watch(ctx)
	return nil
}

// Watch consumes the provider's update stream in the background until ctx is
// cancelled or Close is called. Calling Watch twice is a no-op.
func (g *Gate) Watch(ctx context.Context) {
	g.watchMu.Lock()
	defer g.watchMu.Unlock()
	if g.done != nil {
		return
	}

	wctx, cancel := context.WithCancel(ctx)
	updates := g.provider.Updates(wctx)
	g.cancel = cancel
	g.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		for {
			select {
			case tx, ok := <-updates:
				if !ok {
					return
				}
				g.grant(tx)
			case <-wctx.Done():
				return
			}
		}
	}(g.done)
}

// Close stops the update watcher and waits for it to exit.
func (g *Gate) Close() {
	g.watchMu.Lock()
	cancel, done := g.cancel, g.done
	g.cancel, g.done = nil, nil
	g.watchMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Purchase buys productID. On success the product is owned before Purchase
// returns.
func (g *Gate) Purchase(ctx context.Context, productID string) Outcome {
	product, ok := g.product(productID)
	if !ok {
		g.logger.Warn("purchase failed", zap.String("product", productID), zap.Error(ErrUnknownProduct))
		return OutcomeFailed
	}

	res, err := g.provider.Purchase(ctx, product)
	if err != nil {
		g.logger.Warn("purchase failed", zap.String("product", productID), zap.Error(err))
		return OutcomeFailed
	}

	switch res.Status {
	case StatusSuccess:
		if !g.grant(res.Transaction) {
			return OutcomeFailed
		}
		return OutcomeSuccess
	case StatusPending:
		return OutcomePending
	case StatusUserCancelled:
		return OutcomeCancelled
	default:
		g.logger.Warn("purchase failed", zap.String("product", productID), zap.String("status", string(res.Status)))
		return OutcomeFailed
	}
}

// grant records a verified transaction. It reports false for unverified
// ones; re-granting an owned product is a no-op.
func (g *Gate) grant(tx Transaction) bool {
	if !g.verified(tx) {
		return false
	}

	g.mu.Lock()
	_, had := g.owned[tx.ProductID]
	g.owned[tx.ProductID] = struct{}{}
	for _, granted := range g.restoring {
		granted[tx.ProductID] = struct{}{}
	}
	g.mu.Unlock()

	if !had {
		g.logger.Info("product granted", zap.String("product", tx.ProductID), zap.String("transaction", tx.ID))
		g.notify(GateEvent{Kind: GateOwnedChanged, Owned: g.Owned()})
	}
	return true
}

func (g *Gate) verified(tx Transaction) bool {
	if tx.Verified {
		return true
	}
	g.logger.Warn("rejecting transaction",
		zap.String("transaction", tx.ID),
		zap.String("product", tx.ProductID),
		zap.Error(ErrFailedVerification))
	return false
}

// HasAccess reports whether theme may be used. The free theme always may.
func (g *Gate) HasAccess(theme engine.ThemeType) bool {
	if !theme.IsPremium() {
		return true
	}
	return g.IsPurchased(theme.ProductID())
}

func (g *Gate) IsPurchased(productID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.owned[productID]
	return ok
}

func (g *Gate) IsLoaded() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loaded
}

func (g *Gate) Catalog() []Product {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.catalog)
}

// Owned returns the owned product IDs, sorted.
func (g *Gate) Owned() []string {
	g.mu.RLock()
	out := make([]string, 0, len(g.owned))
	for id := range g.owned {
		out = append(out, id)
	}
	g.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (g *Gate) product(id string) (Product, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, p := range g.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Subscribe registers fn for gate events. Events are delivered outside the
// gate lock, possibly from the watcher goroutine.
func (g *Gate) Subscribe(fn func(GateEvent)) func() {
	g.subMu.Lock()
	defer g.subMu.Unlock()
	if g.subs == nil {
		g.subs = map[int]func(GateEvent){}
	}
	id := g.subNext
	g.subNext++
	g.subs[id] = fn
	return func() {
		g.subMu.Lock()
		delete(g.subs, id)
		g.subMu.Unlock()
	}
}

func (g *Gate) notify(ev GateEvent) {
	g.subMu.Lock()
	ids := make([]int, 0, len(g.subs))
	for id := range g.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(GateEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, g.subs[id])
	}
	g.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
