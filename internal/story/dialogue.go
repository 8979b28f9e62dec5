package story

import "CastleWardrobe/internal/catalog"

const (
	// FallbackEntryID identifies the synthesized entry used when a character
	// has nothing to say in a scene.
	FallbackEntryID = "default"
	// FallbackText is the line spoken by the synthesized entry.
	FallbackText = "Hello! It's nice to see you!"
	// MaxChainLength bounds a resolved chain even when next links loop.
	MaxChainLength = 64

	emptyLineText  = "..."
	unknownSpeaker = "Character"
)

// Line is one displayable step of a dialogue chain.
type Line struct {
	EntryID   string `json:"entry_id"`
	Character string `json:"character"` // Speaker id
	Speaker   string `json:"speaker"`   // Speaker display name
	Text      string `json:"text"`
}

// DialogueResolver answers dialogue queries against the loaded entries.
type DialogueResolver struct {
	entries []catalog.DialogueEntry
	byID    map[string]int // First index of each id
}

// NewDialogueResolver indexes the entries by id.
func NewDialogueResolver(entries []catalog.DialogueEntry) *DialogueResolver {
	r := &DialogueResolver{
		entries: entries,
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, exists := r.byID[e.ID]; !exists {
			r.byID[e.ID] = i
		}
	}
	return r
}

// EntryByID returns the first entry with the given id, or nil.
func (r *DialogueResolver) EntryByID(id string) *catalog.DialogueEntry {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.entries[i]
}

// EntriesFor returns the entries spoken by characterID in sceneID in source
// order. When there are none it returns a single fallback entry.
func (r *DialogueResolver) EntriesFor(sceneID, characterID string) []catalog.DialogueEntry {
	var matches []catalog.DialogueEntry
	for _, e := range r.entries {
		if e.Scene == sceneID && e.Character == characterID {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return []catalog.DialogueEntry{Fallback(sceneID, characterID)}
	}
	return matches
}

// Fallback builds the synthesized entry for a silent character.
func Fallback(sceneID, characterID string) catalog.DialogueEntry {
	return catalog.DialogueEntry{
		ID:        FallbackEntryID,
		Scene:     sceneID,
		Character: characterID,
		Text:      FallbackText,
	}
}

// ResolveChain starts at the first entry for (sceneID, characterID) and
// follows next links. A link to a missing id ends the chain. The walk stops
// before revisiting an entry and after MaxChainLength entries.
func (r *DialogueResolver) ResolveChain(sceneID, characterID string) []catalog.DialogueEntry {
	first := r.EntriesFor(sceneID, characterID)[0]
	chain := []catalog.DialogueEntry{first}
	visited := map[string]bool{first.ID: true}

	for next := first.Next; next != "" && len(chain) < MaxChainLength; {
		if visited[next] {
			break
		}
		entry := r.EntryByID(next)
		if entry == nil {
			break
		}
		visited[next] = true
		chain = append(chain, *entry)
		next = entry.Next
	}
	return chain
}

// Lines resolves the chain into displayable lines. names maps a speaker id to
// its display name; it may be nil.
func (r *DialogueResolver) Lines(sceneID, characterID string, names func(id string) string) []Line {
	chain := r.ResolveChain(sceneID, characterID)
	lines := make([]Line, 0, len(chain))
	for _, e := range chain {
		speaker := ""
		if names != nil {
			speaker = names(e.Character)
		}
		if speaker == "" {
			speaker = unknownSpeaker
		}
		text := e.Text
		if text == "" {
			text = emptyLineText
		}
		lines = append(lines, Line{
			EntryID:   e.ID,
			Character: e.Character,
			Speaker:   speaker,
			Text:      text,
		})
	}
	return lines
}
