package catalog

import "fmt"

// Validate reports content problems that the game tolerates at runtime:
// duplicate ids, dangling dialogue links, outfits owned by unknown
// characters and scenes listing unknown characters. The result is meant for
// logging; none of these conditions stop the game.
func Validate(s *Store) []string {
	var warnings []string

	sceneIDs := make(map[string]bool, len(s.Scenes))
	for _, scene := range s.Scenes {
		if sceneIDs[scene.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate scene id %q", scene.ID))
		}
		sceneIDs[scene.ID] = true
	}

	characterIDs := make(map[string]bool, len(s.Characters))
	for _, c := range s.Characters {
		if characterIDs[c.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate character id %q", c.ID))
		}
		characterIDs[c.ID] = true
	}

	for _, scene := range s.Scenes {
		for _, id := range scene.Characters {
			if !characterIDs[id] {
				warnings = append(warnings, fmt.Sprintf("scene %q lists unknown character %q", scene.ID, id))
			}
		}
	}

	entryIDs := make(map[string]bool, len(s.Dialogue))
	for _, e := range s.Dialogue {
		if entryIDs[e.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate dialogue id %q", e.ID))
		}
		entryIDs[e.ID] = true
	}
	for _, e := range s.Dialogue {
		if e.Next != "" && !entryIDs[e.Next] {
			warnings = append(warnings, fmt.Sprintf("dialogue %q links to missing entry %q", e.ID, e.Next))
		}
	}

	outfitIDs := make(map[string]bool, len(s.Outfits))
	for _, o := range s.Outfits {
		if outfitIDs[o.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate outfit id %q", o.ID))
		}
		outfitIDs[o.ID] = true
		if !characterIDs[o.Character] {
			warnings = append(warnings, fmt.Sprintf("outfit %q belongs to unknown character %q", o.ID, o.Character))
		}
	}

	return warnings
}
