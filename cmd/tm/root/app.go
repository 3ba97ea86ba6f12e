package root

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/config"
	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/entitlement"
	"github.com/kosharny/ThunderpickMove/internal/media"
	"github.com/kosharny/ThunderpickMove/internal/storage"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

// app bundles the services one command invocation works with.
type app struct {
	svc   *engine.Service
	gate  *entitlement.Gate
	store *entitlement.LocalProvider
	media *media.FileStore
}

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openApp wires storage, the engine and the entitlement gate. The gate is
// started and the selected theme re-validated before it returns.
func openApp(ctx context.Context) (*app, func(), error) {
	db, closeDB, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	svc := engine.NewService(storage.NewKVRepo(db), engine.WithLogger(logger), engine.WithLocation(loc))
	provider := entitlement.NewLocalProvider(
		storage.NewPurchaseRepo(db),
		products(cfg.Store),
		[]byte(cfg.Store.SigningKey),
		entitlement.WithLocalLogger(logger),
	)
	gate := entitlement.NewGate(provider, cfg.ProductIDs(), logger)

	guard := engine.NewThemeGuard(svc, gate)
	gate.Subscribe(func(ev entitlement.GateEvent) {
		if ev.Kind == entitlement.GateLoaded || ev.Kind == entitlement.GateOwnedChanged {
			guard.Validate(ctx)
		}
	})
	if err := gate.Start(ctx); err != nil {
		logger.Warn("entitlements unavailable", zap.Error(err))
	}
	ui.Use(svc.CurrentTheme(ctx))

	a := &app{
		svc:   svc,
		gate:  gate,
		store: provider,
		media: media.NewFileStore(cfg.MediaDir, logger),
	}
	cleanup := func() {
		gate.Close()
		closeDB()
	}
	return a, cleanup, nil
}

func products(sc config.StoreConfig) []entitlement.Product {
	out := make([]entitlement.Product, 0, len(sc.Products))
	for _, p := range sc.Products {
		out = append(out, entitlement.Product{
			ID:           p.ID,
			DisplayName:  p.Name,
			DisplayPrice: fmt.Sprintf("$%.2f", p.Price),
			Price:        p.Price,
		})
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
