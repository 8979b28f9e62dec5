package story

import (
	"testing"

	"CastleWardrobe/internal/catalog"
)

func testOutfits() []catalog.Outfit {
	return []catalog.Outfit{
		{ID: "o1", Character: "char-a", Category: "winter", Name: "Coat"},
		{ID: "o2", Character: "char-a", Category: "party", Name: "Dress"},
		{ID: "o3", Character: "char-b", Category: "winter", Name: "Scarf"},
		{ID: "o4", Character: "char-a", Category: "winter", Name: "Boots"},
	}
}

func TestCategoriesForCharacter(t *testing.T) {
	w := NewWardrobe(testOutfits())

	got := w.CategoriesForCharacter("char-a")
	expected := []string{"winter", "party"}
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Category %d: expected %q, got %q", i, expected[i], got[i])
		}
	}

	if cats := w.CategoriesForCharacter("nobody"); len(cats) != 0 {
		t.Errorf("Expected no categories, got %v", cats)
	}
}

func TestOutfitsByCategory(t *testing.T) {
	w := NewWardrobe(testOutfits())

	winter := w.OutfitsByCategory("char-a", "winter")
	if len(winter) != 2 || winter[0].ID != "o1" || winter[1].ID != "o4" {
		t.Errorf("Expected [o1 o4], got %+v", winter)
	}

	all := w.OutfitsByCategory("char-a", CategoryAll)
	if len(all) != 3 {
		t.Errorf("Expected 3 outfits for all, got %d", len(all))
	}
	for _, o := range all {
		if o.Character != "char-a" {
			t.Errorf("Outfit %s belongs to %s", o.ID, o.Character)
		}
	}

	if none := w.OutfitsByCategory("char-a", "swim"); len(none) != 0 {
		t.Errorf("Expected no swim outfits, got %+v", none)
	}
}

func TestWardrobeOutfitByID(t *testing.T) {
	w := NewWardrobe(testOutfits())

	if o := w.OutfitByID("o3"); o == nil || o.Character != "char-b" {
		t.Errorf("Expected o3 for char-b, got %+v", o)
	}
	if w.OutfitByID("missing") != nil {
		t.Error("Unknown outfit should return nil")
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := map[string]string{
		CategoryAll:   "All",
		"winter":      "Winter",
		"party":       "Party",
		"winter wear": "Winter wear",
		"semi-formal": "Semi-formal",
		"éte":         "Éte",
		"":            "",
	}
	for in, expected := range cases {
		if got := CategoryLabel(in); got != expected {
			t.Errorf("CategoryLabel(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestWardrobeSelection(t *testing.T) {
	var sel WardrobeSelection

	if sel.CanApply() {
		t.Error("Closed wardrobe should not allow apply")
	}

	sel.OpenFor("char-a")
	if !sel.Open || sel.Character != "char-a" || sel.Category != CategoryAll {
		t.Fatalf("Unexpected selection after open: %+v", sel)
	}
	if sel.CanApply() {
		t.Error("Apply should be disabled without a selected outfit")
	}

	if !sel.ToggleOutfit("o1") {
		t.Error("Toggle should select o1")
	}
	if !sel.CanApply() {
		t.Error("Apply should be enabled with a selected outfit")
	}
	if !sel.ToggleOutfit("o2") || sel.Outfit != "o2" {
		t.Errorf("Toggle should switch to o2, got %q", sel.Outfit)
	}
	if sel.ToggleOutfit("o2") {
		t.Error("Toggling the selected outfit should deselect it")
	}

	sel.ToggleOutfit("o1")
	sel.SelectCharacter("char-b")
	if sel.Outfit != "" {
		t.Errorf("Switching character should clear the outfit, got %q", sel.Outfit)
	}

	sel.SelectCategory("winter")
	if sel.Category != "winter" {
		t.Errorf("Expected winter, got %q", sel.Category)
	}
	sel.SelectCategory("")
	if sel.Category != CategoryAll {
		t.Errorf("Empty category should select all, got %q", sel.Category)
	}

	sel.Close()
	if sel.Open || sel.Character != "" || sel.CanApply() {
		t.Errorf("Unexpected selection after close: %+v", sel)
	}
}
