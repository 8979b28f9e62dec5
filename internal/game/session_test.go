package game

import (
	"context"
	"errors"
	"testing"

	"CastleWardrobe/internal/catalog"
	"CastleWardrobe/internal/story"
)

func scale(v float64) *float64 { return &v }

func testContent() *Content {
	store := catalog.NewStore(
		[]catalog.Scene{
			{ID: "hall", Name: "Great Hall", Unlocked: true},
			{ID: "vault", Name: "Vault", Unlocked: false},
			{ID: "garden", Name: "Garden", Unlocked: true},
		},
		[]catalog.Character{
			{
				ID: "luna", Name: "Luna", Sprite: "luna.png", DefaultOutfit: "gown",
				Position: map[string]catalog.Position{"hall": {X: 10, Y: 20, Scale: scale(1.5)}},
			},
			{
				ID: "faye", Name: "Faye", Sprite: "faye.png",
				Position: map[string]catalog.Position{"hall": {X: 50, Y: 20}, "garden": {X: 5, Y: 5}},
			},
		},
		[]catalog.DialogueEntry{
			{ID: "l1", Scene: "hall", Character: "luna", Text: "Welcome!", Next: "l2"},
			{ID: "l2", Scene: "hall", Character: "luna", Text: "Try the wardrobe."},
		},
		[]catalog.Outfit{
			{ID: "coat", Character: "luna", Category: "winter", Name: "Coat", Image: "coat.png"},
			{ID: "dress", Character: "luna", Category: "party", Name: "Dress", Image: "dress.png"},
			{ID: "hat", Character: "faye", Category: "winter", Name: "Hat", Image: "hat.png"},
		},
		[]catalog.Animal{
			{
				ID: "cat", Scenes: []string{"hall"}, Image: "cat.png", Sound: "meow.mp3",
				Position: map[string]catalog.Position{"hall": {X: 1, Y: 2}},
				Size:     catalog.AnimalSize{Height: 80},
			},
		},
	)
	return NewContent(store)
}

func TestSessionNavigation(t *testing.T) {
	ctx := context.Background()
	s := NewSession("s1", testContent())

	v := s.View()
	if v.Scene == nil || v.Scene.ID != "hall" {
		t.Fatalf("expected hall, got %+v", v.Scene)
	}
	if len(v.Scenes) != 2 || !v.Scenes[0].Active {
		t.Fatalf("expected 2 scene tabs with hall active, got %+v", v.Scenes)
	}
	if v.CanPrevious || !v.CanNext {
		t.Errorf("unexpected nav flags: prev=%v next=%v", v.CanPrevious, v.CanNext)
	}

	if !s.NextScene(ctx) {
		t.Fatal("expected to move to garden")
	}
	if s.NextScene(ctx) {
		t.Error("should not move past the last scene")
	}
	if v := s.View(); v.Scene.ID != "garden" || v.CanNext {
		t.Errorf("expected garden at the end, got %s next=%v", v.Scene.ID, v.CanNext)
	}

	if err := s.GoToScene(ctx, "vault"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene for a locked scene, got %v", err)
	}
	if !s.PreviousScene(ctx) {
		t.Error("expected to move back to hall")
	}
}

func TestSessionViewPlacesEntities(t *testing.T) {
	s := NewSession("s1", testContent())
	v := s.View()

	if len(v.Characters) != 2 {
		t.Fatalf("expected 2 characters in hall, got %d", len(v.Characters))
	}
	luna := v.Characters[0]
	if luna.ID != "luna" || luna.Scale != 1.5 || luna.Sprite != "luna.png" || luna.Outfit != "gown" {
		t.Errorf("unexpected luna view: %+v", luna)
	}
	if v.Characters[1].Scale != 1 {
		t.Errorf("expected default scale 1, got %v", v.Characters[1].Scale)
	}

	if len(v.Animals) != 1 {
		t.Fatalf("expected 1 animal, got %d", len(v.Animals))
	}
	cat := v.Animals[0]
	if cat.ZIndex != catalog.DefaultAnimalZIndex || cat.Width != "auto" || cat.HoverScale != catalog.DefaultAnimalHoverScale {
		t.Errorf("animal defaults not applied: %+v", cat)
	}
	if v.Dialogue != nil || v.Wardrobe != nil {
		t.Error("dialogue and wardrobe should start hidden")
	}
}

func TestSessionDialogueFlow(t *testing.T) {
	ctx := context.Background()
	s := NewSession("s1", testContent())

	if err := s.ClickCharacter(ctx, "luna"); err != nil {
		t.Fatalf("click failed: %v", err)
	}
	v := s.View()
	if v.Dialogue == nil || v.Dialogue.Speaker != "Luna" || v.Dialogue.Text != "Welcome!" {
		t.Fatalf("unexpected dialogue: %+v", v.Dialogue)
	}
	if v.Dialogue.Position != 1 || v.Dialogue.Total != 2 {
		t.Errorf("expected 1/2, got %d/%d", v.Dialogue.Position, v.Dialogue.Total)
	}

	s.ContinueDialogue(ctx)
	if v := s.View(); v.Dialogue == nil || v.Dialogue.Text != "Try the wardrobe." {
		t.Fatalf("expected second line, got %+v", v.Dialogue)
	}
	s.ContinueDialogue(ctx)
	if v := s.View(); v.Dialogue != nil {
		t.Errorf("dialogue should close after the last line, got %+v", v.Dialogue)
	}

	// Faye has no lines in the hall and gets the fallback greeting.
	if err := s.ClickCharacter(ctx, "faye"); err != nil {
		t.Fatalf("click faye failed: %v", err)
	}
	if v := s.View(); v.Dialogue == nil || v.Dialogue.Text != story.FallbackText || v.Dialogue.Speaker != "Faye" {
		t.Errorf("expected fallback line from Faye, got %+v", v.Dialogue)
	}
	s.NextScene(ctx)
	if v := s.View(); v.Dialogue != nil {
		t.Error("changing scene should hide the dialogue")
	}

	if err := s.ClickCharacter(ctx, "luna"); !errors.Is(err, ErrCharacterNotInScene) {
		t.Errorf("expected ErrCharacterNotInScene, got %v", err)
	}
	if err := s.ClickCharacter(ctx, "ghost"); !errors.Is(err, story.ErrUnknownCharacter) {
		t.Errorf("expected ErrUnknownCharacter, got %v", err)
	}
}

func TestSessionWardrobeFlow(t *testing.T) {
	s := NewSession("s1", testContent())

	if err := s.ApplySelectedOutfit(); !errors.Is(err, ErrWardrobeClosed) {
		t.Errorf("expected ErrWardrobeClosed, got %v", err)
	}

	if err := s.OpenWardrobe(""); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	w := s.View().Wardrobe
	if w == nil || w.Character != "luna" {
		t.Fatalf("expected wardrobe for luna, got %+v", w)
	}
	if len(w.Categories) != 3 || w.Categories[0].Label != "All" || !w.Categories[0].Active {
		t.Errorf("unexpected categories: %+v", w.Categories)
	}
	if len(w.Outfits) != 2 || w.CanApply {
		t.Errorf("expected 2 outfits and apply disabled, got %+v", w)
	}

	if err := s.SelectCategory("winter"); err != nil {
		t.Fatalf("select category failed: %v", err)
	}
	if w := s.View().Wardrobe; len(w.Outfits) != 1 || w.Outfits[0].ID != "coat" {
		t.Errorf("expected only coat, got %+v", w.Outfits)
	}

	if _, err := s.ToggleOutfit("hat"); !errors.Is(err, story.ErrOutfitOwner) {
		t.Errorf("expected ErrOutfitOwner for faye's hat, got %v", err)
	}
	if err := s.ApplySelectedOutfit(); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("expected ErrNothingSelected, got %v", err)
	}

	selected, err := s.ToggleOutfit("coat")
	if err != nil || !selected {
		t.Fatalf("toggle coat failed: %v %v", selected, err)
	}
	if err := s.ApplySelectedOutfit(); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	v := s.View()
	if v.Characters[0].Sprite != "coat.png" || v.Characters[0].Outfit != "coat" {
		t.Errorf("expected luna in coat, got %+v", v.Characters[0])
	}
	if !v.Wardrobe.Outfits[0].Worn {
		t.Error("coat should be marked worn")
	}

	if err := s.RemoveOutfit(); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	v = s.View()
	if v.Characters[0].Sprite != "luna.png" || v.Characters[0].Outfit != "gown" {
		t.Errorf("expected luna back in gown, got %+v", v.Characters[0])
	}

	if err := s.SelectWardrobeCharacter("faye"); err != nil {
		t.Fatalf("select character failed: %v", err)
	}
	if w := s.View().Wardrobe; w.Selected != "" || w.Character != "faye" {
		t.Errorf("switching character should clear the selection, got %+v", w)
	}

	s.CloseWardrobe()
	if s.View().Wardrobe != nil {
		t.Error("wardrobe should be closed")
	}
}

func TestSessionOpenWardrobeUnknown(t *testing.T) {
	s := NewSession("s1", testContent())
	if err := s.OpenWardrobe("ghost"); !errors.Is(err, story.ErrUnknownCharacter) {
		t.Errorf("expected ErrUnknownCharacter, got %v", err)
	}

	empty := NewSession("s2", NewContent(catalog.NewStore(nil, nil, nil, nil, nil)))
	if err := empty.OpenWardrobe(""); !errors.Is(err, ErrNoCharacters) {
		t.Errorf("expected ErrNoCharacters, got %v", err)
	}
	if err := empty.ClickCharacter(context.Background(), "luna"); !errors.Is(err, ErrNoScene) {
		t.Errorf("expected ErrNoScene, got %v", err)
	}
}

func TestSessionDismissOverlay(t *testing.T) {
	ctx := context.Background()
	s := NewSession("s1", testContent())

	s.ClickCharacter(ctx, "luna")
	s.OpenWardrobe("luna")
	if err := s.DismissOverlay(ctx); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	v := s.View()
	if v.Dialogue != nil || v.Wardrobe != nil {
		t.Errorf("overlay dismiss should close everything, got %+v %+v", v.Dialogue, v.Wardrobe)
	}
}

func TestSessionOpenWardrobeUsesSceneOrder(t *testing.T) {
	store := catalog.NewStore(
		[]catalog.Scene{{ID: "hall", Name: "Hall", Unlocked: true, Characters: []string{"faye", "luna"}}},
		[]catalog.Character{
			{ID: "luna", Name: "Luna", Position: map[string]catalog.Position{"hall": {X: 1}}},
			{ID: "faye", Name: "Faye", Position: map[string]catalog.Position{"hall": {X: 2}}},
		},
		nil, nil, nil,
	)
	s := NewSession("s1", NewContent(store))
	if err := s.OpenWardrobe(""); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if w := s.View().Wardrobe; w.Character != "faye" {
		t.Errorf("expected the scene's first listed character faye, got %s", w.Character)
	}

	s.CloseWardrobe()
	store.Scenes[0].Characters = []string{"ghost"}
	s = NewSession("s2", NewContent(store))
	s.OpenWardrobe("")
	if w := s.View().Wardrobe; w.Character != "luna" {
		t.Errorf("unknown listed character should fall back to placement order, got %s", w.Character)
	}
}

func TestSessionWardrobeAlwaysOffersAll(t *testing.T) {
	store := catalog.NewStore(
		[]catalog.Scene{{ID: "hall", Name: "Hall", Unlocked: true}},
		[]catalog.Character{{ID: "nova", Name: "Nova", Position: map[string]catalog.Position{"hall": {}}}},
		nil, nil, nil,
	)
	s := NewSession("s1", NewContent(store))
	if err := s.OpenWardrobe("nova"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	w := s.View().Wardrobe
	if len(w.Categories) != 1 || w.Categories[0].ID != story.CategoryAll || w.Categories[0].Label != "All" {
		t.Errorf("expected only the All category, got %+v", w.Categories)
	}
	if len(w.Outfits) != 0 {
		t.Errorf("expected no outfits, got %+v", w.Outfits)
	}
}
