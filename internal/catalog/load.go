package catalog

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("CastleWardrobe/internal/catalog")

// Source provides the raw collections. Implementations must be safe for
// concurrent use by the four loaders.
type Source interface {
	Scenes(ctx context.Context) ([]Scene, error)
	Characters(ctx context.Context) ([]Character, error)
	Dialogue(ctx context.Context) ([]DialogueEntry, error)
	Outfits(ctx context.Context) ([]Outfit, error)
}

// LoadOptions controls failure handling during Load.
type LoadOptions struct {
	// Strict fails the whole load when any collection fails. Otherwise the
	// failing collection is logged and left empty.
	Strict bool
}

// Load fetches every collection concurrently and joins them into a Store.
// Cancelling ctx always fails the load.
func Load(ctx context.Context, src Source, opts LoadOptions) (*Store, error) {
	ctx, span := tracer.Start(ctx, "catalog.Load")
	defer span.End()

	store := &Store{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scenes, err := src.Scenes(gctx)
		return collect(CollectionScenes, &store.Scenes, scenes, err, opts.Strict)
	})
	g.Go(func() error {
		characters, err := src.Characters(gctx)
		return collect(CollectionCharacters, &store.Characters, characters, err, opts.Strict)
	})
	g.Go(func() error {
		dialogue, err := src.Dialogue(gctx)
		return collect(CollectionDialogue, &store.Dialogue, dialogue, err, opts.Strict)
	})
	g.Go(func() error {
		outfits, err := src.Outfits(gctx)
		return collect(CollectionOutfits, &store.Outfits, outfits, err, opts.Strict)
	})

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("catalog.scenes", len(store.Scenes)),
		attribute.Int("catalog.characters", len(store.Characters)),
		attribute.Int("catalog.dialogue", len(store.Dialogue)),
		attribute.Int("catalog.outfits", len(store.Outfits)),
	)
	for _, warning := range Validate(store) {
		log.Printf("catalog: %s", warning)
	}
	return store, nil
}

func collect[T any](name Collection, dst *[]T, items []T, err error, strict bool) error {
	if err != nil {
		err = fmt.Errorf("catalog: load %s: %w", name, err)
		if strict {
			return err
		}
		log.Printf("%v (using empty collection)", err)
		*dst = []T{}
		return nil
	}
	if items == nil {
		items = []T{}
	}
	*dst = items
	return nil
}
