package server

import (
	"CastleWardrobe/internal/catalog"
	"CastleWardrobe/internal/game"
	"CastleWardrobe/internal/story"
)

type sceneDTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Background string   `json:"background"` // Empty = client gradient
	Characters []string `json:"characters"`
}

type sceneTabDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type characterDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Sprite string  `json:"sprite"`
	Outfit string  `json:"outfit"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale"`
}

type animalDTO struct {
	ID         string  `json:"id"`
	Image      string  `json:"image"`
	Sound      string  `json:"sound"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Scale      float64 `json:"scale"`
	Height     int     `json:"height"`
	Width      string  `json:"width"`
	ZIndex     int     `json:"z_index"`
	HoverScale float64 `json:"hover_scale"`
}

type dialogueDTO struct {
	Speaker  string `json:"speaker"`
	Text     string `json:"text"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

type characterOptionDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
	Active bool   `json:"active"`
}

type categoryDTO struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type outfitDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
	Selected bool   `json:"selected,omitempty"`
	Worn     bool   `json:"worn,omitempty"`
}

type wardrobeDTO struct {
	Character  string               `json:"character"`
	Characters []characterOptionDTO `json:"characters"`
	Categories []categoryDTO        `json:"categories"`
	Outfits    []outfitDTO          `json:"outfits"`
	Selected   string               `json:"selected"`
	CanApply   bool                 `json:"can_apply"`
	CanRemove  bool                 `json:"can_remove"`
}

// stateDTO is the payload of an outbound "state" message.
type stateDTO struct {
	Session     string         `json:"session"`
	Scene       *sceneDTO      `json:"scene"`
	Scenes      []sceneTabDTO  `json:"scenes"`
	CanNext     bool           `json:"can_next"`
	CanPrevious bool           `json:"can_previous"`
	Characters  []characterDTO `json:"characters"`
	Animals     []animalDTO    `json:"animals"`
	Dialogue    *dialogueDTO   `json:"dialogue,omitempty"` // nil = hidden
	Wardrobe    *wardrobeDTO   `json:"wardrobe,omitempty"` // nil = closed
}

type errorDTO struct {
	Message string `json:"message"`
	Request string `json:"request,omitempty"`
}

type welcomeDTO struct {
	Session      string       `json:"session"`
	Presentation Presentation `json:"presentation"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func toSceneDTO(s catalog.Scene) sceneDTO {
	chars := s.Characters
	if chars == nil {
		chars = []string{}
	}
	return sceneDTO{ID: s.ID, Name: s.Name, Background: s.Background, Characters: chars}
}

func toStateDTO(v game.View) stateDTO {
	out := stateDTO{
		Session:     v.SessionID,
		CanNext:     v.CanNext,
		CanPrevious: v.CanPrevious,
		Scenes:      []sceneTabDTO{},
		Characters:  []characterDTO{},
		Animals:     []animalDTO{},
	}
	if v.Scene != nil {
		scene := toSceneDTO(*v.Scene)
		out.Scene = &scene
	}
	for _, t := range v.Scenes {
		out.Scenes = append(out.Scenes, sceneTabDTO{ID: t.ID, Name: t.Name, Active: t.Active})
	}
	for _, c := range v.Characters {
		out.Characters = append(out.Characters, characterDTO{
			ID: c.ID, Name: c.Name, Sprite: c.Sprite, Outfit: c.Outfit,
			X: c.X, Y: c.Y, Scale: c.Scale,
		})
	}
	for _, a := range v.Animals {
		out.Animals = append(out.Animals, animalDTO{
			ID: a.ID, Image: a.Image, Sound: a.Sound,
			X: a.X, Y: a.Y, Scale: a.Scale,
			Height: a.Height, Width: a.Width, ZIndex: a.ZIndex, HoverScale: a.HoverScale,
		})
	}
	if d := v.Dialogue; d != nil {
		out.Dialogue = &dialogueDTO{Speaker: d.Speaker, Text: d.Text, Position: d.Position, Total: d.Total}
	}
	if w := v.Wardrobe; w != nil {
		out.Wardrobe = toWardrobeDTO(w)
	}
	return out
}

func toWardrobeDTO(w *game.WardrobeView) *wardrobeDTO {
	out := &wardrobeDTO{
		Character:  w.Character,
		Selected:   w.Selected,
		CanApply:   w.CanApply,
		CanRemove:  w.CanRemove,
		Characters: []characterOptionDTO{},
		Categories: []categoryDTO{},
		Outfits:    []outfitDTO{},
	}
	for _, c := range w.Characters {
		out.Characters = append(out.Characters, characterOptionDTO{ID: c.ID, Name: c.Name, Sprite: c.Sprite, Active: c.Active})
	}
	for _, c := range w.Categories {
		out.Categories = append(out.Categories, categoryDTO{ID: c.ID, Label: c.Label, Active: c.Active})
	}
	for _, o := range w.Outfits {
		out.Outfits = append(out.Outfits, outfitDTO{
			ID: o.ID, Name: o.Name, Category: o.Category, Image: o.Image,
			Selected: o.Selected, Worn: o.Worn,
		})
	}
	return out
}

func toOutfitDTOs(outfits []catalog.Outfit) []outfitDTO {
	out := make([]outfitDTO, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, outfitDTO{ID: o.ID, Name: o.Name, Category: o.Category, Image: o.Image})
	}
	return out
}

func toCategoryDTOs(categories []string) []categoryDTO {
	out := []categoryDTO{{ID: story.CategoryAll, Label: story.CategoryLabel(story.CategoryAll)}}
	for _, c := range categories {
		out = append(out, categoryDTO{ID: c, Label: story.CategoryLabel(c)})
	}
	return out
}

/* ------------------------------- Inbound ------------------------------- */

type sceneGotoDTO struct {
	SceneID string `json:"sceneId"`
}

type characterRefDTO struct {
	CharacterID string `json:"characterId"`
}

type categoryRefDTO struct {
	Category string `json:"category"`
}

type outfitRefDTO struct {
	OutfitID string `json:"outfitId"`
}
