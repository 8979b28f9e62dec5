package server

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"CastleWardrobe/internal/catalog"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// AppConfig is read from CW_* environment variables; main overrides
// individual fields from flags.
type AppConfig struct {
	Addr           string        `env:"CW_ADDR" envDefault:":8080"`
	DataDir        string        `env:"CW_DATA_DIR"` // empty = embedded data
	DBPath         string        `env:"CW_DB_PATH"`  // SQLite catalog, wins over DataDir
	GameConfigPath string        `env:"CW_GAME_CONFIG" envDefault:"configs/game.yaml"`
	AssetsDir      string        `env:"CW_ASSETS_DIR" envDefault:"assets"`
	StrictLoad     bool          `env:"CW_STRICT_LOAD"`
	SessionTTL     time.Duration `env:"CW_SESSION_TTL" envDefault:"30m"`
	OTelEndpoint   string        `env:"CW_OTEL_ENDPOINT"`

	Overrides PresentationOverrides `env:"-"`
}

// LoadAppConfig parses the environment.
func LoadAppConfig() (AppConfig, error) {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

/* --------------------------- Game config file --------------------------- */

// Presentation holds the client-side look settings.
type Presentation struct {
	HoverTransition string `json:"hoverTransition"`
	TransformOrigin string `json:"transformOrigin"`
	DropShadow      string `json:"dropShadow"`
}

func DefaultPresentation() Presentation {
	return Presentation{
		HoverTransition: "transform 0.2s",
		TransformOrigin: "bottom center",
		DropShadow:      "drop-shadow(0 4px 8px rgba(0, 0, 0, 0.3))",
	}
}

// GameConfig is the resolved game config file.
type GameConfig struct {
	Animals      []catalog.Animal
	Presentation Presentation
}

type animationsConfig struct {
	HoverTransition *string `json:"hoverTransition" yaml:"hoverTransition"`
	TransformOrigin *string `json:"transformOrigin" yaml:"transformOrigin"`
}

type effectsConfig struct {
	DropShadow *string `json:"dropShadow" yaml:"dropShadow"`
}

type gameConfigFile struct {
	Animals    map[string]catalog.Animal `json:"animals" yaml:"animals"`
	Animations *animationsConfig         `json:"animations" yaml:"animations"`
	Effects    *effectsConfig            `json:"effects" yaml:"effects"`
}

// PresentationOverrides are optional command-line overrides.
type PresentationOverrides struct {
	HoverTransition *string
	TransformOrigin *string
	DropShadow      *string
}

func (o PresentationOverrides) apply(base Presentation) Presentation {
	if o.HoverTransition != nil {
		base.HoverTransition = *o.HoverTransition
	}
	if o.TransformOrigin != nil {
		base.TransformOrigin = *o.TransformOrigin
	}
	if o.DropShadow != nil {
		base.DropShadow = *o.DropShadow
	}
	return base
}

func mergeGameConfig(base GameConfig, file gameConfigFile) GameConfig {
	if a := file.Animations; a != nil {
		if a.HoverTransition != nil {
			base.Presentation.HoverTransition = *a.HoverTransition
		}
		if a.TransformOrigin != nil {
			base.Presentation.TransformOrigin = *a.TransformOrigin
		}
	}
	if e := file.Effects; e != nil && e.DropShadow != nil {
		base.Presentation.DropShadow = *e.DropShadow
	}
	if len(file.Animals) > 0 {
		ids := make([]string, 0, len(file.Animals))
		for id := range file.Animals {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		base.Animals = base.Animals[:0:0]
		for _, id := range ids {
			a := file.Animals[id]
			if a.ID == "" {
				a.ID = id
			}
			base.Animals = append(base.Animals, a.WithDefaults())
		}
	}
	return base
}

// loadGameConfig reads a YAML or JSON game config and merges it over base.
// A missing file yields base unchanged.
func loadGameConfig(path string, base GameConfig) (GameConfig, error) {
	if path == "" {
		return base, nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("read game config %q: %w", cleanPath, err)
	}
	var file gameConfigFile
	switch strings.ToLower(filepath.Ext(cleanPath)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return base, fmt.Errorf("parse game config %q: %w", cleanPath, err)
	}
	return mergeGameConfig(base, file), nil
}

func resolveGameConfig(cfg AppConfig) GameConfig {
	base := GameConfig{Presentation: DefaultPresentation()}
	loaded, err := loadGameConfig(cfg.GameConfigPath, base)
	if err != nil {
		log.Printf("[config] %v (using defaults)", err)
		loaded = base
	}
	loaded.Presentation = cfg.Overrides.apply(loaded.Presentation)
	return loaded
}
