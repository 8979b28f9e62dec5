package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CastleWardrobe/internal/server"
)

func main() {
	cfg, err := server.LoadAppConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	addr := flag.String("addr", cfg.Addr, "address to listen on (e.g., 127.0.0.1:8080)")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "directory with scenes/characters/dialogue/outfits files (empty = embedded)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite catalog produced by catalog-import (wins over -data)")
	flag.StringVar(&cfg.GameConfigPath, "game-config", cfg.GameConfigPath, "path to animals/presentation YAML or JSON")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "directory served under /assets/")
	flag.BoolVar(&cfg.StrictLoad, "strict", cfg.StrictLoad, "fail startup when any data collection fails to load")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "drop sessions idle for longer than this")
	flag.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP endpoint for traces (empty = off)")
	hoverTransition := flag.String("hover-transition", "", "override the CSS hover transition")
	transformOrigin := flag.String("transform-origin", "", "override the CSS transform origin of sprites")
	dropShadow := flag.String("drop-shadow", "", "override the CSS drop shadow filter")
	flag.Parse()

	var overrides server.PresentationOverrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hover-transition":
			overrides.HoverTransition = hoverTransition
		case "transform-origin":
			overrides.TransformOrigin = transformOrigin
		case "drop-shadow":
			overrides.DropShadow = dropShadow
		}
	})
	cfg.Overrides = overrides
	cfg.Addr = *addr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.StartApp(ctx, cfg.Addr, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
