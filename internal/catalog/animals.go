package catalog

import (
	"log"
	"slices"
)

// AnimalPlacement is an animal resolved for a specific scene.
type AnimalPlacement struct {
	Animal   Animal
	Position Position
}

// AnimalsInScene returns the animals configured for sceneID. An animal that
// lists the scene but has no position for it is skipped with a warning.
func (s *Store) AnimalsInScene(sceneID string) []AnimalPlacement {
	var out []AnimalPlacement
	for _, a := range s.Animals {
		if !slices.Contains(a.Scenes, sceneID) {
			continue
		}
		pos, ok := a.Position[sceneID]
		if !ok {
			log.Printf("catalog: no position configured for %s in scene: %s", a.ID, sceneID)
			continue
		}
		out = append(out, AnimalPlacement{Animal: a, Position: pos})
	}
	return out
}
