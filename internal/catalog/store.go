package catalog

// Store is the in-memory DataStore. Collections keep their source order.
type Store struct {
	Scenes     []Scene
	Characters []Character
	Dialogue   []DialogueEntry
	Outfits    []Outfit
	Animals    []Animal
}

// NewStore builds a store from already decoded collections. Animals get
// their defaults applied.
func NewStore(scenes []Scene, characters []Character, dialogue []DialogueEntry, outfits []Outfit, animals []Animal) *Store {
	s := &Store{
		Scenes:     scenes,
		Characters: characters,
		Dialogue:   dialogue,
		Outfits:    outfits,
	}
	s.SetAnimals(animals)
	return s
}

// SetAnimals replaces the animal collection, applying defaults.
func (s *Store) SetAnimals(animals []Animal) {
	s.Animals = make([]Animal, 0, len(animals))
	for _, a := range animals {
		s.Animals = append(s.Animals, a.WithDefaults())
	}
}

// UnlockedScenes returns the navigable scenes in list order.
func (s *Store) UnlockedScenes() []Scene {
	var out []Scene
	for _, scene := range s.Scenes {
		if scene.Unlocked {
			out = append(out, scene)
		}
	}
	return out
}

// SceneByID returns a scene, or nil if not found.
func (s *Store) SceneByID(id string) *Scene {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return &s.Scenes[i]
		}
	}
	return nil
}

// CharacterByID returns a character, or nil if not found.
func (s *Store) CharacterByID(id string) *Character {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return &s.Characters[i]
		}
	}
	return nil
}

// CharacterName returns the display name for a character id, or fallback
// when the character is unknown or unnamed.
func (s *Store) CharacterName(id, fallback string) string {
	if c := s.CharacterByID(id); c != nil && c.Name != "" {
		return c.Name
	}
	return fallback
}

// CharactersInScene returns the characters that have a position in sceneID.
func (s *Store) CharactersInScene(sceneID string) []Character {
	var out []Character
	for _, c := range s.Characters {
		if _, ok := c.PositionIn(sceneID); ok {
			out = append(out, c)
		}
	}
	return out
}
