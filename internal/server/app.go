package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"CastleWardrobe/data"
	"CastleWardrobe/internal/catalog"
	. "CastleWardrobe/internal/game"
	"CastleWardrobe/internal/telemetry"
)

// openSource picks the catalog source: a SQLite database, a data directory
// or the embedded defaults. The returned close func releases the source.
func openSource(ctx context.Context, cfg AppConfig) (catalog.Source, func() error, error) {
	noop := func() error { return nil }
	switch {
	case cfg.DBPath != "":
		db, err := catalog.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("[catalog] reading %s", cfg.DBPath)
		return catalog.NewSQLiteSource(db), db.Close, nil
	case cfg.DataDir != "":
		log.Printf("[catalog] reading %s", cfg.DataDir)
		return catalog.NewFSSource(os.DirFS(cfg.DataDir), "."), noop, nil
	default:
		log.Printf("[catalog] using embedded data")
		return catalog.NewFSSource(data.FS, "."), noop, nil
	}
}

// LoadContent loads the catalog and the game config into shared content.
func LoadContent(ctx context.Context, cfg AppConfig) (*Content, GameConfig, error) {
	gameCfg := resolveGameConfig(cfg)

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return nil, gameCfg, fmt.Errorf("open catalog: %w", err)
	}
	defer closeSrc()

	store, err := catalog.Load(ctx, src, catalog.LoadOptions{Strict: cfg.StrictLoad})
	if err != nil {
		return nil, gameCfg, err
	}
	store.SetAnimals(gameCfg.Animals)
	return NewContent(store), gameCfg, nil
}

// StartApp serves until ctx is cancelled or the listener fails. Telemetry is
// flushed before it returns.
func StartApp(ctx context.Context, addr string, cfg AppConfig) error {
	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		log.Printf("[otel] setup failed: %v (tracing disabled)", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdown(sctx)
	}()

	content, gameCfg, err := LoadContent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}
	store := content.Store
	log.Printf("catalog loaded: %d scenes (%d unlocked), %d characters, %d dialogue lines, %d outfits, %d animals",
		len(store.Scenes), len(store.UnlockedScenes()), len(store.Characters),
		len(store.Dialogue), len(store.Outfits), len(store.Animals))

	hub := NewHub(content, cfg.SessionTTL)

	// Periodic cleanup of idle sessions
	go func() {
		ticker := time.NewTicker(CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				hub.CleanupIdle(now)
			}
		}
	}()

	app := &App{Hub: hub, Presentation: gameCfg.Presentation, AssetsDir: cfg.AssetsDir}
	log.Printf("starting web server on %s (session ttl %s)\n", addr, hub.TTL)
	return startServer(ctx, app, addr)
}
