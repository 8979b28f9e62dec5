package story

import "CastleWardrobe/internal/catalog"

// SceneNavigator walks the unlocked scenes in list order.
type SceneNavigator struct {
	scenes []catalog.Scene
	index  int
}

// NewSceneNavigator keeps only the unlocked scenes and starts at the first.
func NewSceneNavigator(scenes []catalog.Scene) *SceneNavigator {
	n := &SceneNavigator{}
	for _, scene := range scenes {
		if scene.Unlocked {
			n.scenes = append(n.scenes, scene)
		}
	}
	return n
}

// Current returns the active scene, or nil when no scenes are loaded.
func (n *SceneNavigator) Current() *catalog.Scene {
	if len(n.scenes) == 0 {
		return nil
	}
	return &n.scenes[n.index]
}

// Index returns the position of the active scene.
func (n *SceneNavigator) Index() int {
	return n.index
}

// Scenes returns the navigable scenes in order.
func (n *SceneNavigator) Scenes() []catalog.Scene {
	return n.scenes
}

// CanGoNext reports whether Next would move.
func (n *SceneNavigator) CanGoNext() bool {
	return n.index < len(n.scenes)-1
}

// CanGoPrevious reports whether Previous would move.
func (n *SceneNavigator) CanGoPrevious() bool {
	return n.index > 0
}

// Next advances one scene. At the last scene it returns nil and stays put.
func (n *SceneNavigator) Next() *catalog.Scene {
	if !n.CanGoNext() {
		return nil
	}
	n.index++
	return &n.scenes[n.index]
}

// Previous steps back one scene. At the first scene it returns nil and stays put.
func (n *SceneNavigator) Previous() *catalog.Scene {
	if !n.CanGoPrevious() {
		return nil
	}
	n.index--
	return &n.scenes[n.index]
}

// GoTo jumps to the scene with the given id. Unknown ids return nil and
// leave the current scene unchanged.
func (n *SceneNavigator) GoTo(sceneID string) *catalog.Scene {
	for i := range n.scenes {
		if n.scenes[i].ID == sceneID {
			n.index = i
			return &n.scenes[i]
		}
	}
	return nil
}
