package story

import (
	"fmt"

	"CastleWardrobe/internal/catalog"
)

// OutfitState tracks what every character is wearing in one session.
type OutfitState struct {
	outfits  map[string]string // Active outfit id per character
	images   map[string]string // Image override per character; absent = base sprite
	defaults map[string]string // Outfit restored by ResetOutfit
	sprites  map[string]string // Base sprite per character
}

// NewOutfitState initialises every character with its starting outfit:
// outfit, then defaultOutfit, then "default".
func NewOutfitState(characters []catalog.Character) *OutfitState {
	s := &OutfitState{
		outfits:  make(map[string]string, len(characters)),
		images:   make(map[string]string),
		defaults: make(map[string]string, len(characters)),
		sprites:  make(map[string]string, len(characters)),
	}
	for _, c := range characters {
		// First occurrence wins, matching catalog lookups.
		if _, seen := s.sprites[c.ID]; seen {
			continue
		}
		s.outfits[c.ID] = firstNonEmpty(c.Outfit, c.DefaultOutfit, DefaultOutfitID)
		s.defaults[c.ID] = firstNonEmpty(c.DefaultOutfit, DefaultOutfitID)
		s.sprites[c.ID] = c.Sprite
	}
	return s
}

// Known reports whether the character was initialised.
func (s *OutfitState) Known(characterID string) bool {
	_, ok := s.sprites[characterID]
	return ok
}

// SetOutfit switches the active outfit id. It fails without side effects
// for characters that were never initialised.
func (s *OutfitState) SetOutfit(characterID, outfitID string) bool {
	if _, ok := s.outfits[characterID]; !ok {
		return false
	}
	s.outfits[characterID] = outfitID
	return true
}

// Outfit returns the active outfit id, "default" when unset.
func (s *OutfitState) Outfit(characterID string) string {
	if id := s.outfits[characterID]; id != "" {
		return id
	}
	return DefaultOutfitID
}

// ResetOutfit restores the configured default outfit and drops any image
// override.
func (s *OutfitState) ResetOutfit(characterID string) bool {
	def, ok := s.defaults[characterID]
	if !ok {
		return false
	}
	s.outfits[characterID] = def
	delete(s.images, characterID)
	return true
}

// SetOutfitImage installs an image override. An empty image clears it.
func (s *OutfitState) SetOutfitImage(characterID, image string) bool {
	if !s.Known(characterID) {
		return false
	}
	if image == "" {
		delete(s.images, characterID)
	} else {
		s.images[characterID] = image
	}
	return true
}

// OutfitImage returns the image override, if any.
func (s *OutfitState) OutfitImage(characterID string) (string, bool) {
	image, ok := s.images[characterID]
	return image, ok
}

// ActiveSprite returns the override image when one is set, otherwise the
// character's base sprite. ok is false for unknown characters.
func (s *OutfitState) ActiveSprite(characterID string) (sprite string, ok bool) {
	base, ok := s.sprites[characterID]
	if !ok {
		return "", false
	}
	if image, overridden := s.images[characterID]; overridden {
		return image, true
	}
	return base, true
}

// Apply puts on an outfit: its id becomes active and its image overrides
// the sprite.
func (s *OutfitState) Apply(characterID string, outfit catalog.Outfit) error {
	if !s.Known(characterID) {
		return fmt.Errorf("%w: %s", ErrUnknownCharacter, characterID)
	}
	if outfit.Character != characterID {
		return fmt.Errorf("%w: %s is owned by %s, not %s", ErrOutfitOwner, outfit.ID, outfit.Character, characterID)
	}
	s.SetOutfit(characterID, outfit.ID)
	s.SetOutfitImage(characterID, outfit.Image)
	return nil
}

// Snapshot copies the active outfit ids for serialization.
func (s *OutfitState) Snapshot() map[string]string {
	out := make(map[string]string, len(s.outfits))
	for id, outfit := range s.outfits {
		out[id] = outfit
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
