package story

import (
	"testing"

	"CastleWardrobe/internal/catalog"
)

func TestResolveChainFollowsNext(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "a", Scene: "S", Character: "X", Text: "First", Next: "b"},
		{ID: "b", Scene: "S", Character: "X", Text: "Second"},
	})

	chain := r.ResolveChain("S", "X")
	if len(chain) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(chain))
	}
	if chain[0].ID != "a" || chain[1].ID != "b" {
		t.Errorf("Expected [a b], got [%s %s]", chain[0].ID, chain[1].ID)
	}
}

func TestEntriesForFallback(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "a", Scene: "S", Character: "Y", Text: "Not for X"},
	})

	entries := r.EntriesFor("S", "X")
	if len(entries) != 1 {
		t.Fatalf("Expected a single fallback entry, got %d", len(entries))
	}
	e := entries[0]
	if e.ID != FallbackEntryID || e.Text != FallbackText || e.Next != "" {
		t.Errorf("Unexpected fallback entry: %+v", e)
	}
	if e.Scene != "S" || e.Character != "X" {
		t.Errorf("Fallback should carry the query ids, got %+v", e)
	}

	chain := r.ResolveChain("S", "X")
	if len(chain) != 1 || chain[0].Text != FallbackText {
		t.Errorf("Chain should be the fallback alone, got %+v", chain)
	}
}

func TestEntriesForKeepsSourceOrder(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "c", Scene: "S", Character: "X"},
		{ID: "other", Scene: "T", Character: "X"},
		{ID: "a", Scene: "S", Character: "X"},
	})

	entries := r.EntriesFor("S", "X")
	if len(entries) != 2 || entries[0].ID != "c" || entries[1].ID != "a" {
		t.Errorf("Expected [c a], got %+v", entries)
	}
	// Only the first match starts the chain.
	if chain := r.ResolveChain("S", "X"); len(chain) != 1 || chain[0].ID != "c" {
		t.Errorf("Expected chain [c], got %+v", chain)
	}
}

func TestResolveChainMissingNextEndsEarly(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "a", Scene: "S", Character: "X", Next: "b"},
		{ID: "b", Scene: "S", Character: "X", Next: "gone"},
	})

	chain := r.ResolveChain("S", "X")
	if len(chain) != 2 {
		t.Errorf("Expected chain to stop at b, got %d entries", len(chain))
	}
}

func TestResolveChainStopsOnCycle(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "a", Scene: "S", Character: "X", Next: "b"},
		{ID: "b", Scene: "S", Character: "X", Next: "c"},
		{ID: "c", Scene: "S", Character: "X", Next: "a"},
	})

	chain := r.ResolveChain("S", "X")
	if len(chain) != 3 {
		t.Fatalf("Expected 3 entries before the cycle, got %d", len(chain))
	}
	if chain[2].ID != "c" {
		t.Errorf("Expected chain to end at c, got %s", chain[2].ID)
	}

	self := NewDialogueResolver([]catalog.DialogueEntry{{ID: "loop", Scene: "S", Character: "X", Next: "loop"}})
	if chain := self.ResolveChain("S", "X"); len(chain) != 1 {
		t.Errorf("Self link should yield one entry, got %d", len(chain))
	}
}

func TestResolveChainCap(t *testing.T) {
	var entries []catalog.DialogueEntry
	for i := 0; i < MaxChainLength+10; i++ {
		e := catalog.DialogueEntry{ID: idFor(i), Scene: "S", Character: "X"}
		if i > 0 {
			entries[i-1].Next = e.ID
		}
		entries = append(entries, e)
	}

	chain := NewDialogueResolver(entries).ResolveChain("S", "X")
	if len(chain) != MaxChainLength {
		t.Errorf("Expected chain capped at %d, got %d", MaxChainLength, len(chain))
	}
}

func TestResolveChainCrossesSpeakers(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "q", Scene: "S", Character: "X", Text: "Who are you?", Next: "r"},
		{ID: "r", Scene: "S", Character: "Y", Text: ""},
	})
	names := map[string]string{"X": "Luna"}

	lines := r.Lines("S", "X", func(id string) string { return names[id] })
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Speaker != "Luna" || lines[0].Text != "Who are you?" {
		t.Errorf("Unexpected first line: %+v", lines[0])
	}
	if lines[1].Speaker != "Character" || lines[1].Text != "..." || lines[1].Character != "Y" {
		t.Errorf("Unexpected second line: %+v", lines[1])
	}
}

func TestEntryByIDPrefersFirst(t *testing.T) {
	r := NewDialogueResolver([]catalog.DialogueEntry{
		{ID: "dup", Text: "first"},
		{ID: "dup", Text: "second"},
	})
	if e := r.EntryByID("dup"); e == nil || e.Text != "first" {
		t.Errorf("Expected first duplicate, got %+v", e)
	}
	if r.EntryByID("none") != nil {
		t.Error("Unknown id should return nil")
	}
}

func idFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%26]) + string(rune('0'+i/26))
}
