package game

import (
	"CastleWardrobe/internal/catalog"
	"CastleWardrobe/internal/story"
)

// SceneTab is an entry of the scene selector.
type SceneTab struct {
	ID     string
	Name   string
	Active bool
}

// CharacterView is a character placed in the current scene.
type CharacterView struct {
	ID     string
	Name   string
	Sprite string // Active sprite: outfit override or base sprite
	Outfit string
	X, Y   float64
	Scale  float64
}

// AnimalView is an animal placed in the current scene.
type AnimalView struct {
	ID         string
	Image      string
	Sound      string
	X, Y       float64
	Scale      float64
	Height     int
	Width      string
	ZIndex     int
	HoverScale float64
}

// DialogueView is the line on screen.
type DialogueView struct {
	Speaker  string
	Text     string
	Position int
	Total    int
}

// CategoryView is a wardrobe category button.
type CategoryView struct {
	ID     string
	Label  string
	Active bool
}

// OutfitView is a wardrobe grid cell.
type OutfitView struct {
	ID       string
	Name     string
	Category string
	Image    string
	Selected bool
	Worn     bool
}

// WardrobeView is the wardrobe panel.
type WardrobeView struct {
	Characters []CharacterOption
	Character  string
	Categories []CategoryView
	Outfits    []OutfitView
	Selected   string
	CanApply   bool
	CanRemove  bool
}

// CharacterOption is a wardrobe character selector button.
type CharacterOption struct {
	ID     string
	Name   string
	Sprite string
	Active bool
}

// View is everything a front end needs to redraw.
type View struct {
	SessionID   string
	Scene       *catalog.Scene
	Scenes      []SceneTab
	CanNext     bool
	CanPrevious bool
	Characters  []CharacterView
	Animals     []AnimalView
	Dialogue    *DialogueView // nil while hidden
	Wardrobe    *WardrobeView // nil while closed
}

// View snapshots the session for rendering.
func (s *Session) View() View {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	v := View{
		SessionID:   s.ID,
		CanNext:     s.nav.CanGoNext(),
		CanPrevious: s.nav.CanGoPrevious(),
	}
	scene := s.nav.Current()
	for _, sc := range s.nav.Scenes() {
		v.Scenes = append(v.Scenes, SceneTab{
			ID:     sc.ID,
			Name:   sc.Name,
			Active: scene != nil && sc.ID == scene.ID,
		})
	}
	if scene != nil {
		cp := *scene
		v.Scene = &cp
		v.Characters = s.charactersLocked(scene.ID)
		v.Animals = s.animalsLocked(scene.ID)
	}
	if line, ok := s.box.Current(); ok {
		pos, total := s.box.Progress()
		v.Dialogue = &DialogueView{Speaker: line.Speaker, Text: line.Text, Position: pos, Total: total}
	}
	if s.selection.Open {
		v.Wardrobe = s.wardrobeLocked()
	}
	return v
}

func (s *Session) charactersLocked(sceneID string) []CharacterView {
	var out []CharacterView
	for _, c := range s.content.Store.CharactersInScene(sceneID) {
		pos, _ := c.PositionIn(sceneID)
		sprite, _ := s.outfits.ActiveSprite(c.ID)
		out = append(out, CharacterView{
			ID:     c.ID,
			Name:   c.Name,
			Sprite: sprite,
			Outfit: s.outfits.Outfit(c.ID),
			X:      pos.X,
			Y:      pos.Y,
			Scale:  pos.EffectiveScale(),
		})
	}
	return out
}

func (s *Session) animalsLocked(sceneID string) []AnimalView {
	var out []AnimalView
	for _, p := range s.content.Store.AnimalsInScene(sceneID) {
		a := p.Animal
		out = append(out, AnimalView{
			ID:         a.ID,
			Image:      a.Image,
			Sound:      a.Sound,
			X:          p.Position.X,
			Y:          p.Position.Y,
			Scale:      p.Position.EffectiveScale(),
			Height:     a.Size.Height,
			Width:      a.Size.Width,
			ZIndex:     a.ZIndex,
			HoverScale: a.HoverScale,
		})
	}
	return out
}

func (s *Session) wardrobeLocked() *WardrobeView {
	sel := s.selection
	w := &WardrobeView{
		Character: sel.Character,
		Selected:  sel.Outfit,
		CanApply:  sel.CanApply(),
		CanRemove: sel.CanApply(),
	}
	for _, c := range s.content.Store.Characters {
		sprite, _ := s.outfits.ActiveSprite(c.ID)
		w.Characters = append(w.Characters, CharacterOption{
			ID:     c.ID,
			Name:   c.Name,
			Sprite: sprite,
			Active: c.ID == sel.Character,
		})
	}

	w.Categories = append(w.Categories, CategoryView{
		ID:     story.CategoryAll,
		Label:  story.CategoryLabel(story.CategoryAll),
		Active: sel.Category == story.CategoryAll,
	})
	for _, c := range s.content.Wardrobe.CategoriesForCharacter(sel.Character) {
		w.Categories = append(w.Categories, CategoryView{
			ID:     c,
			Label:  story.CategoryLabel(c),
			Active: sel.Category == c,
		})
	}

	worn := s.outfits.Outfit(sel.Character)
	for _, o := range s.content.Wardrobe.OutfitsByCategory(sel.Character, sel.Category) {
		w.Outfits = append(w.Outfits, OutfitView{
			ID:       o.ID,
			Name:     o.Name,
			Category: o.Category,
			Image:    o.Image,
			Selected: o.ID == sel.Outfit,
			Worn:     o.ID == worn,
		})
	}
	return w
}
