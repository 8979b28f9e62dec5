// Command player is a terminal front end for a single local session.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"CastleWardrobe/internal/game"
	"CastleWardrobe/internal/server"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

func main() {
	cfg, err := server.LoadAppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory (empty = embedded)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite catalog")
	flag.StringVar(&cfg.GameConfigPath, "game-config", cfg.GameConfigPath, "animals/presentation config")
	flag.BoolVar(&cfg.StrictLoad, "strict", cfg.StrictLoad, "fail when any data collection fails to load")
	flag.Parse()

	ctx := context.Background()
	content, _, err := server.LoadContent(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	sess := game.NewSession(uuid.NewString(), content)
	NewPlayer(screen, sess).Run(ctx)
}
