// Package catalog holds the static game content: scenes, characters,
// dialogue entries, outfits and animals.
//
// Content is loaded once at startup from a Source and never mutated
// afterwards, so a *Store can be shared by every session without locking.
package catalog

import "errors"

// Position places an entity inside a scene. X and Y are pixel offsets from
// the bottom-left corner of the stage.
type Position struct {
	X     float64  `json:"x" yaml:"x"`
	Y     float64  `json:"y" yaml:"y"`
	Scale *float64 `json:"scale,omitempty" yaml:"scale,omitempty"` // nil = 1
}

// EffectiveScale returns the configured scale, defaulting to 1.
func (p Position) EffectiveScale() float64 {
	if p.Scale == nil || *p.Scale <= 0 {
		return 1
	}
	return *p.Scale
}

// Scene is one navigable background.
type Scene struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Background string   `json:"background" yaml:"background"` // Asset ref; empty = gradient fallback
	Unlocked   bool     `json:"unlocked" yaml:"unlocked"`
	Characters []string `json:"characters" yaml:"characters"`
}

// Character is a clickable person. A character is shown in every scene it
// has a Position for.
type Character struct {
	ID            string              `json:"id" yaml:"id"`
	Name          string              `json:"name" yaml:"name"`
	Sprite        string              `json:"sprite" yaml:"sprite"`
	Outfit        string              `json:"outfit,omitempty" yaml:"outfit,omitempty"`               // Starting outfit
	DefaultOutfit string              `json:"defaultOutfit,omitempty" yaml:"defaultOutfit,omitempty"` // Restored on reset
	Position      map[string]Position `json:"position" yaml:"position"`
}

// PositionIn returns the character's placement in a scene.
func (c Character) PositionIn(sceneID string) (Position, bool) {
	pos, ok := c.Position[sceneID]
	return pos, ok
}

// DialogueEntry is a single line of dialogue. Next links to the id of the
// entry that follows it; empty means the chain ends here.
type DialogueEntry struct {
	ID        string `json:"id" yaml:"id"`
	Scene     string `json:"scene" yaml:"scene"`
	Character string `json:"character" yaml:"character"`
	Text      string `json:"text" yaml:"text"`
	Next      string `json:"next,omitempty" yaml:"next,omitempty"`
}

// Outfit is a wearable owned by exactly one character.
type Outfit struct {
	ID        string `json:"id" yaml:"id"`
	Character string `json:"character" yaml:"character"` // Owner id
	Category  string `json:"category" yaml:"category"`
	Name      string `json:"name" yaml:"name"`
	Image     string `json:"image" yaml:"image"`
}

// AnimalSize is the rendered size of an animal. Width is a CSS length and
// may be "auto".
type AnimalSize struct {
	Height int    `json:"height" yaml:"height"`
	Width  string `json:"width" yaml:"width"`
}

// Animal is a decorative clickable that plays a sound.
type Animal struct {
	ID         string              `json:"id" yaml:"id"`
	Scenes     []string            `json:"scenes" yaml:"scenes"`
	Position   map[string]Position `json:"position" yaml:"position"`
	Size       AnimalSize          `json:"size" yaml:"size"`
	ZIndex     int                 `json:"zIndex" yaml:"zIndex"`
	HoverScale float64             `json:"hoverScale" yaml:"hoverScale"`
	Image      string              `json:"image" yaml:"image"`
	Sound      string              `json:"sound" yaml:"sound"`
}

const (
	DefaultAnimalZIndex     = 15
	DefaultAnimalHoverScale = 1.1
	DefaultAnimalWidth      = "auto"
)

// WithDefaults fills the optional animal fields.
func (a Animal) WithDefaults() Animal {
	if a.ZIndex == 0 {
		a.ZIndex = DefaultAnimalZIndex
	}
	if a.HoverScale <= 0 {
		a.HoverScale = DefaultAnimalHoverScale
	}
	if a.Size.Width == "" {
		a.Size.Width = DefaultAnimalWidth
	}
	return a
}

// Collection names a loadable data set.
type Collection string

const (
	CollectionScenes     Collection = "scenes"
	CollectionCharacters Collection = "characters"
	CollectionDialogue   Collection = "dialogue"
	CollectionOutfits    Collection = "outfits"
)

// Collections lists every collection in load order.
var Collections = []Collection{
	CollectionScenes,
	CollectionCharacters,
	CollectionDialogue,
	CollectionOutfits,
}

var (
	// ErrCollectionMissing is returned by a Source that has no data for a collection.
	ErrCollectionMissing = errors.New("catalog: collection missing")
	// ErrUnsupportedFormat is returned for data files with an unknown extension.
	ErrUnsupportedFormat = errors.New("catalog: unsupported data format")
)
