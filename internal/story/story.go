// Package story implements the per-session game state: scene navigation,
// outfit tracking, dialogue resolution and the wardrobe panel.
//
// Nothing here renders or logs. Every type is a plain state object that the
// session coordinator owns and mutates in response to player actions; the
// static content comes from a *catalog.Store.
package story

import "errors"

const (
	// DefaultOutfitID is the outfit reported for characters without one.
	DefaultOutfitID = "default"
	// CategoryAll disables the wardrobe category filter.
	CategoryAll = "all"
)

var (
	// ErrUnknownCharacter is returned for a character id that was never loaded.
	ErrUnknownCharacter = errors.New("story: unknown character")
	// ErrOutfitOwner is returned when applying an outfit to a character that does not own it.
	ErrOutfitOwner = errors.New("story: outfit belongs to another character")
)
