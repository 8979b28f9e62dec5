// Command catalog-import copies a scenes/characters/dialogue/outfits
// data set into a SQLite catalog that the server reads with -db.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"CastleWardrobe/data"
	"CastleWardrobe/internal/catalog"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		log.Fatalf("catalog-import: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("catalog-import", flag.ContinueOnError)
	fs.SetOutput(out)
	dataDir := fs.String("data", "", "directory with the data files (empty = embedded)")
	dbPath := fs.String("db", "", "SQLite file to write")
	strict := fs.Bool("strict", true, "abort when any collection fails to load")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return errors.New("-db is required")
	}

	src := catalog.NewFSSource(data.FS, ".")
	if *dataDir != "" {
		src = catalog.NewFSSource(os.DirFS(*dataDir), ".")
	}
	store, err := catalog.Load(ctx, src, catalog.LoadOptions{Strict: *strict})
	if err != nil {
		return err
	}

	db, err := catalog.OpenSQLite(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := catalog.ImportSQLite(ctx, db, store); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(out, "imported %d scenes, %d characters, %d dialogue lines, %d outfits into %s\n",
		len(store.Scenes), len(store.Characters), len(store.Dialogue), len(store.Outfits), *dbPath)
	return nil
}
