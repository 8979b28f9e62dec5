package main

import "github.com/gdamore/tcell/v2"

// Action is a player-requested UI action.
type Action uint8

const (
	ActionNone Action = iota
	ActionPrevScene
	ActionNextScene
	ActionClickCharacter
	ActionContinue
	ActionDismiss
	ActionToggleWardrobe
	ActionNextCategory
	ActionNextOutfit
	ActionPrevWardrobeCharacter
	ActionNextWardrobeCharacter
	ActionApply
	ActionRemove
	ActionQuit
)

// keyToAction maps a key event to an action. For ActionClickCharacter the
// second result is the zero-based character slot.
func keyToAction(ev *tcell.EventKey) (Action, int) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionPrevScene, 0
	case tcell.KeyRight:
		return ActionNextScene, 0
	case tcell.KeyUp:
		return ActionPrevWardrobeCharacter, 0
	case tcell.KeyDown:
		return ActionNextWardrobeCharacter, 0
	case tcell.KeyEscape:
		return ActionDismiss, 0
	case tcell.KeyTab:
		return ActionNextCategory, 0
	case tcell.KeyEnter:
		return ActionContinue, 0
	}

	switch r := ev.Rune(); r {
	case ' ':
		return ActionContinue, 0
	case 'w', 'W':
		return ActionToggleWardrobe, 0
	case 'c', 'C':
		return ActionNextCategory, 0
	case 'o', 'O':
		return ActionNextOutfit, 0
	case 'a', 'A':
		return ActionApply, 0
	case 'r', 'R':
		return ActionRemove, 0
	case 'q', 'Q':
		return ActionQuit, 0
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return ActionClickCharacter, int(r - '1')
	}
	return ActionNone, 0
}
