package story

import (
	"unicode/utf8"

	"CastleWardrobe/internal/catalog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Wardrobe answers outfit queries.
type Wardrobe struct {
	outfits []catalog.Outfit
}

// NewWardrobe wraps the loaded outfits.
func NewWardrobe(outfits []catalog.Outfit) *Wardrobe {
	return &Wardrobe{outfits: outfits}
}

// OutfitsForCharacter returns a character's outfits in source order.
func (w *Wardrobe) OutfitsForCharacter(characterID string) []catalog.Outfit {
	var out []catalog.Outfit
	for _, o := range w.outfits {
		if o.Character == characterID {
			out = append(out, o)
		}
	}
	return out
}

// OutfitsByCategory filters a character's outfits by category. CategoryAll
// returns every outfit.
func (w *Wardrobe) OutfitsByCategory(characterID, category string) []catalog.Outfit {
	owned := w.OutfitsForCharacter(characterID)
	if category == CategoryAll {
		return owned
	}
	var out []catalog.Outfit
	for _, o := range owned {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}

// CategoriesForCharacter returns each category used by a character's
// outfits once, in first-seen order.
func (w *Wardrobe) CategoriesForCharacter(characterID string) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, o := range w.OutfitsForCharacter(characterID) {
		if !seen[o.Category] {
			seen[o.Category] = true
			categories = append(categories, o.Category)
		}
	}
	return categories
}

// OutfitByID returns a loaded outfit, or nil.
func (w *Wardrobe) OutfitByID(id string) *catalog.Outfit {
	for i := range w.outfits {
		if w.outfits[i].ID == id {
			return &w.outfits[i]
		}
	}
	return nil
}

// CategoryLabel is the button caption for a category: the first letter is
// upper-cased and the rest kept as written.
func CategoryLabel(category string) string {
	if category == CategoryAll {
		return "All"
	}
	first, size := utf8.DecodeRuneInString(category)
	if first == utf8.RuneError {
		return category
	}
	// Casers are stateful, so each call gets its own.
	return cases.Upper(language.Und).String(string(first)) + category[size:]
}

// WardrobeSelection is the wardrobe panel's state.
type WardrobeSelection struct {
	Open      bool
	Character string // Selected character id
	Outfit    string // Selected outfit id; empty = none
	Category  string
}

// OpenFor shows the panel for a character with a fresh selection.
func (s *WardrobeSelection) OpenFor(characterID string) {
	s.Open = true
	s.Character = characterID
	s.Outfit = ""
	s.Category = CategoryAll
}

// Close hides the panel and drops the selection.
func (s *WardrobeSelection) Close() {
	s.Open = false
	s.Character = ""
	s.Outfit = ""
}

// SelectCharacter switches the panel to another character.
func (s *WardrobeSelection) SelectCharacter(characterID string) {
	s.Character = characterID
	s.Outfit = ""
}

// SelectCategory changes the category filter; empty selects CategoryAll.
func (s *WardrobeSelection) SelectCategory(category string) {
	if category == "" {
		category = CategoryAll
	}
	s.Category = category
}

// ToggleOutfit selects an outfit, or deselects it when already selected.
// It reports whether an outfit is selected afterwards.
func (s *WardrobeSelection) ToggleOutfit(outfitID string) bool {
	if s.Outfit == outfitID {
		s.Outfit = ""
	} else {
		s.Outfit = outfitID
	}
	return s.Outfit != ""
}

// CanApply reports whether the apply and remove buttons are enabled.
func (s *WardrobeSelection) CanApply() bool {
	return s.Open && s.Outfit != ""
}
