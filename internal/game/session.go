package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"CastleWardrobe/internal/catalog"
	"CastleWardrobe/internal/story"
)

var (
	ErrNoScene             = errors.New("game: no current scene")
	ErrUnknownScene        = errors.New("game: unknown scene")
	ErrCharacterNotInScene = errors.New("game: character not in current scene")
	ErrNoCharacters        = errors.New("game: no characters loaded")
	ErrWardrobeClosed      = errors.New("game: wardrobe is closed")
	ErrNothingSelected     = errors.New("game: no outfit selected")
	ErrUnknownOutfit       = errors.New("game: unknown outfit")
)

// Content is the read-only data every session shares.
type Content struct {
	Store    *catalog.Store
	Dialogue *story.DialogueResolver
	Wardrobe *story.Wardrobe
}

// NewContent indexes a loaded store.
func NewContent(store *catalog.Store) *Content {
	return &Content{
		Store:    store,
		Dialogue: story.NewDialogueResolver(store.Dialogue),
		Wardrobe: story.NewWardrobe(store.Outfits),
	}
}

// Session is one player's view of the game: the current scene, the outfits
// each character wears, the dialogue on screen and the wardrobe panel.
// Every exported method takes Mu itself.
type Session struct {
	ID       string
	LastSeen time.Time
	Mu       sync.Mutex

	content   *Content
	nav       *story.SceneNavigator
	outfits   *story.OutfitState
	box       *story.DialogueBox
	selection story.WardrobeSelection
	conns     int // attached connections; the hub keeps these sessions
}

// NewSession starts a session on the first unlocked scene with every
// character in its starting outfit.
func NewSession(id string, content *Content) *Session {
	return &Session{
		ID:       id,
		LastSeen: time.Now(),
		content:  content,
		nav:      story.NewSceneNavigator(content.Store.Scenes),
		outfits:  story.NewOutfitState(content.Store.Characters),
		box:      story.NewDialogueBox(),
	}
}

// Touch marks the session as active.
func (s *Session) Touch() {
	s.Mu.Lock()
	s.LastSeen = time.Now()
	s.Mu.Unlock()
}

// Attach records a live connection and touches the session.
func (s *Session) Attach() {
	s.Mu.Lock()
	s.conns++
	s.LastSeen = time.Now()
	s.Mu.Unlock()
}

// Detach releases a connection taken with Attach.
func (s *Session) Detach() {
	s.Mu.Lock()
	if s.conns > 0 {
		s.conns--
	}
	s.LastSeen = time.Now()
	s.Mu.Unlock()
}

// Connections returns the number of attached connections.
func (s *Session) Connections() int {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.conns
}

/* ----------------------------- Navigation ----------------------------- */

// NextScene moves forward one scene. It reports false at the last scene.
// Changing scene hides the dialogue box.
func (s *Session) NextScene(ctx context.Context) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.nav.Next() == nil {
		return false
	}
	s.hideDialogueLocked(ctx)
	return true
}

// PreviousScene moves back one scene. It reports false at the first scene.
func (s *Session) PreviousScene(ctx context.Context) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.nav.Previous() == nil {
		return false
	}
	s.hideDialogueLocked(ctx)
	return true
}

// GoToScene jumps to an unlocked scene by id.
func (s *Session) GoToScene(ctx context.Context, sceneID string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if cur := s.nav.Current(); cur != nil && cur.ID == sceneID {
		return nil
	}
	if s.nav.GoTo(sceneID) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownScene, sceneID)
	}
	s.hideDialogueLocked(ctx)
	return nil
}

func (s *Session) hideDialogueLocked(ctx context.Context) {
	_ = s.box.Dismiss(ctx)
}

/* ------------------------------ Dialogue ------------------------------ */

// ClickCharacter shows the dialogue chain for a character placed in the
// current scene.
func (s *Session) ClickCharacter(ctx context.Context, characterID string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	scene := s.nav.Current()
	if scene == nil {
		return ErrNoScene
	}
	char := s.content.Store.CharacterByID(characterID)
	if char == nil {
		return fmt.Errorf("%w: %s", story.ErrUnknownCharacter, characterID)
	}
	if _, ok := char.PositionIn(scene.ID); !ok {
		return fmt.Errorf("%w: %s", ErrCharacterNotInScene, characterID)
	}
	lines := s.content.Dialogue.Lines(scene.ID, characterID, s.speakerName)
	return s.box.Show(ctx, lines)
}

func (s *Session) speakerName(id string) string {
	return s.content.Store.CharacterName(id, SpeakerFallbackName)
}

// ContinueDialogue advances to the next line, closing the box after the last.
func (s *Session) ContinueDialogue(ctx context.Context) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.box.Continue(ctx)
}

// DismissDialogue hides the dialogue box.
func (s *Session) DismissDialogue(ctx context.Context) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.box.Dismiss(ctx)
}

/* ------------------------------ Wardrobe ------------------------------ */

// OpenWardrobe opens the panel for a character. An empty id picks the first
// character the current scene lists, then the first one placed in it, then
// the first loaded character.
func (s *Session) OpenWardrobe(characterID string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if characterID == "" {
		characterID = s.defaultWardrobeCharacterLocked()
		if characterID == "" {
			return ErrNoCharacters
		}
	} else if !s.outfits.Known(characterID) {
		return fmt.Errorf("%w: %s", story.ErrUnknownCharacter, characterID)
	}
	s.selection.OpenFor(characterID)
	return nil
}

func (s *Session) defaultWardrobeCharacterLocked() string {
	if scene := s.nav.Current(); scene != nil {
		if len(scene.Characters) > 0 && s.outfits.Known(scene.Characters[0]) {
			return scene.Characters[0]
		}
		if chars := s.content.Store.CharactersInScene(scene.ID); len(chars) > 0 {
			return chars[0].ID
		}
	}
	if all := s.content.Store.Characters; len(all) > 0 {
		return all[0].ID
	}
	return ""
}

// CloseWardrobe hides the panel.
func (s *Session) CloseWardrobe() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.selection.Close()
}

// SelectWardrobeCharacter switches the open panel to another character.
func (s *Session) SelectWardrobeCharacter(characterID string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.selection.Open {
		return ErrWardrobeClosed
	}
	if !s.outfits.Known(characterID) {
		return fmt.Errorf("%w: %s", story.ErrUnknownCharacter, characterID)
	}
	s.selection.SelectCharacter(characterID)
	return nil
}

// SelectCategory filters the outfit grid. Empty or story.CategoryAll shows
// everything.
func (s *Session) SelectCategory(category string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.selection.Open {
		return ErrWardrobeClosed
	}
	s.selection.SelectCategory(category)
	return nil
}

// ToggleOutfit selects or deselects an outfit of the panel's character. It
// reports whether an outfit is selected afterwards.
func (s *Session) ToggleOutfit(outfitID string) (bool, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.selection.Open {
		return false, ErrWardrobeClosed
	}
	outfit := s.content.Wardrobe.OutfitByID(outfitID)
	if outfit == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownOutfit, outfitID)
	}
	if outfit.Character != s.selection.Character {
		return false, fmt.Errorf("%w: %s", story.ErrOutfitOwner, outfitID)
	}
	return s.selection.ToggleOutfit(outfitID), nil
}

// ApplySelectedOutfit dresses the panel's character in the selected outfit.
func (s *Session) ApplySelectedOutfit() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.selection.Open {
		return ErrWardrobeClosed
	}
	if !s.selection.CanApply() {
		return ErrNothingSelected
	}
	outfit := s.content.Wardrobe.OutfitByID(s.selection.Outfit)
	if outfit == nil {
		return fmt.Errorf("%w: %s", ErrUnknownOutfit, s.selection.Outfit)
	}
	return s.outfits.Apply(s.selection.Character, *outfit)
}

// RemoveOutfit puts the panel's character back in its default outfit.
func (s *Session) RemoveOutfit() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if !s.selection.Open {
		return ErrWardrobeClosed
	}
	if !s.selection.CanApply() {
		return ErrNothingSelected
	}
	if !s.outfits.ResetOutfit(s.selection.Character) {
		return fmt.Errorf("%w: %s", story.ErrUnknownCharacter, s.selection.Character)
	}
	return nil
}

// DismissOverlay closes both the wardrobe and the dialogue box.
func (s *Session) DismissOverlay(ctx context.Context) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.selection.Close()
	return s.box.Dismiss(ctx)
}

// Outfit returns the outfit a character is wearing.
func (s *Session) Outfit(characterID string) string {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.outfits.Outfit(characterID)
}
