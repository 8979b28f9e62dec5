package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// dataExtensions lists the accepted file extensions in lookup order.
var dataExtensions = []string{".json", ".yaml", ".yml"}

// FSSource reads one file per collection from a file system, e.g.
// scenes.json or outfits.yaml. Each file holds a document with a single
// top-level key named after the collection.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource returns a source reading from dir inside fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

func (s *FSSource) Scenes(ctx context.Context) ([]Scene, error) {
	return readCollection[Scene](ctx, s, CollectionScenes)
}

func (s *FSSource) Characters(ctx context.Context) ([]Character, error) {
	return readCollection[Character](ctx, s, CollectionCharacters)
}

func (s *FSSource) Dialogue(ctx context.Context) ([]DialogueEntry, error) {
	return readCollection[DialogueEntry](ctx, s, CollectionDialogue)
}

func (s *FSSource) Outfits(ctx context.Context) ([]Outfit, error) {
	return readCollection[Outfit](ctx, s, CollectionOutfits)
}

// locate finds the data file for a collection.
func (s *FSSource) locate(c Collection) (string, error) {
	for _, ext := range dataExtensions {
		name := path.Join(s.dir, string(c)+ext)
		if _, err := fs.Stat(s.fsys, name); err == nil {
			return name, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", name, err)
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrCollectionMissing, c, s.dir)
}

func readCollection[T any](ctx context.Context, s *FSSource, c Collection) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.locate(c)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	items, err := DecodeCollection[T](path.Ext(name), data, c)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return items, nil
}

// DecodeCollection decodes a {"<collection>": [...]} document in the format
// selected by ext (".json", ".yaml" or ".yml"). A document without the key
// decodes to an empty collection.
func DecodeCollection[T any](ext string, data []byte, c Collection) ([]T, error) {
	var items []T
	switch ext {
	case ".json":
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		raw, ok := doc[string(c)]
		if !ok {
			return []T{}, nil
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		var doc map[string]yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		node, ok := doc[string(c)]
		if !ok {
			return []T{}, nil
		}
		if err := node.Decode(&items); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
