package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteDriver is the database/sql driver name registered by modernc.org/sqlite.
const SQLiteDriver = "sqlite"

// sqliteSchema stores list and map fields as JSON text. seq preserves the
// source order; ids are not unique so duplicates survive a round trip.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS scenes (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		background TEXT NOT NULL,
		unlocked INTEGER NOT NULL,
		characters TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS characters (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		sprite TEXT NOT NULL,
		outfit TEXT NOT NULL,
		default_outfit TEXT NOT NULL,
		position TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dialogue (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		scene TEXT NOT NULL,
		character_id TEXT NOT NULL,
		text TEXT NOT NULL,
		next TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS outfits (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		character_id TEXT NOT NULL,
		category TEXT NOT NULL,
		name TEXT NOT NULL,
		image TEXT NOT NULL
	)`,
}

// OpenSQLite opens (or creates) a catalog database and ensures its schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(SQLiteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return db, nil
}

// SQLiteSource reads collections from a catalog database written by
// ImportSQLite.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource wraps an open catalog database.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

func (s *SQLiteSource) Scenes(ctx context.Context) ([]Scene, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, background, unlocked, characters FROM scenes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query scenes: %w", err)
	}
	defer rows.Close()

	scenes := []Scene{}
	for rows.Next() {
		var scene Scene
		var characters string
		if err := rows.Scan(&scene.ID, &scene.Name, &scene.Background, &scene.Unlocked, &characters); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		if err := json.Unmarshal([]byte(characters), &scene.Characters); err != nil {
			return nil, fmt.Errorf("scene %q characters: %w", scene.ID, err)
		}
		scenes = append(scenes, scene)
	}
	return scenes, rows.Err()
}

func (s *SQLiteSource) Characters(ctx context.Context) ([]Character, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, sprite, outfit, default_outfit, position FROM characters ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	characters := []Character{}
	for rows.Next() {
		var c Character
		var position string
		if err := rows.Scan(&c.ID, &c.Name, &c.Sprite, &c.Outfit, &c.DefaultOutfit, &position); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		if err := json.Unmarshal([]byte(position), &c.Position); err != nil {
			return nil, fmt.Errorf("character %q position: %w", c.ID, err)
		}
		characters = append(characters, c)
	}
	return characters, rows.Err()
}

func (s *SQLiteSource) Dialogue(ctx context.Context) ([]DialogueEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, scene, character_id, text, next FROM dialogue ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query dialogue: %w", err)
	}
	defer rows.Close()

	entries := []DialogueEntry{}
	for rows.Next() {
		var e DialogueEntry
		if err := rows.Scan(&e.ID, &e.Scene, &e.Character, &e.Text, &e.Next); err != nil {
			return nil, fmt.Errorf("scan dialogue: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteSource) Outfits(ctx context.Context) ([]Outfit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, character_id, category, name, image FROM outfits ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query outfits: %w", err)
	}
	defer rows.Close()

	outfits := []Outfit{}
	for rows.Next() {
		var o Outfit
		if err := rows.Scan(&o.ID, &o.Character, &o.Category, &o.Name, &o.Image); err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		outfits = append(outfits, o)
	}
	return outfits, rows.Err()
}

// ImportSQLite replaces the database contents with the store's collections
// in a single transaction.
func ImportSQLite(ctx context.Context, db *sql.DB, store *Store) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"scenes", "characters", "dialogue", "outfits"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, scene := range store.Scenes {
		characters, jerr := json.Marshal(nonNilStrings(scene.Characters))
		if jerr != nil {
			return fmt.Errorf("encode scene %q: %w", scene.ID, jerr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO scenes (seq, id, name, background, unlocked, characters) VALUES (?, ?, ?, ?, ?, ?)`,
			i, scene.ID, scene.Name, scene.Background, scene.Unlocked, string(characters)); err != nil {
			return fmt.Errorf("insert scene %q: %w", scene.ID, err)
		}
	}
	for i, c := range store.Characters {
		position := c.Position
		if position == nil {
			position = map[string]Position{}
		}
		encoded, jerr := json.Marshal(position)
		if jerr != nil {
			return fmt.Errorf("encode character %q: %w", c.ID, jerr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO characters (seq, id, name, sprite, outfit, default_outfit, position) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, c.ID, c.Name, c.Sprite, c.Outfit, c.DefaultOutfit, string(encoded)); err != nil {
			return fmt.Errorf("insert character %q: %w", c.ID, err)
		}
	}
	for i, e := range store.Dialogue {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO dialogue (seq, id, scene, character_id, text, next) VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Scene, e.Character, e.Text, e.Next); err != nil {
			return fmt.Errorf("insert dialogue %q: %w", e.ID, err)
		}
	}
	for i, o := range store.Outfits {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO outfits (seq, id, character_id, category, name, image) VALUES (?, ?, ?, ?, ?, ?)`,
			i, o.ID, o.Character, o.Category, o.Name, o.Image); err != nil {
			return fmt.Errorf("insert outfit %q: %w", o.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
