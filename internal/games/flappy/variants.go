package flappy

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Variant is a registered flavour of the game: same engine, tuned config.
type Variant struct {
	ID    string
	Title string
	tune  func(*config.FlappyConfig)
}

var (
	// Classic is the standard game with score-driven difficulty.
	Classic = Variant{ID: "flappy", Title: "Flappy"}

	// Zen never speeds up and leaves a wider gap.
	Zen = Variant{ID: "flappy_zen", Title: "Flappy Zen", tune: func(cfg *config.FlappyConfig) {
		cfg.Difficulty.Enabled = false
		cfg.Obstacles.Gap *= 1.4
	}}
)

// Variants returns every registered variant.
func Variants() []Variant {
	return []Variant{Classic, Zen}
}

// VariantByID looks up a variant.
func VariantByID(id string) (Variant, error) {
	for _, v := range Variants() {
		if v.ID == id {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("flappy: unknown variant %q", id)
}

// Apply tunes cfg for this variant.
func (v Variant) Apply(cfg *config.FlappyConfig) {
	if v.tune != nil {
		v.tune(cfg)
	}
}

// Config loading is shared by every game instance the registry creates.
var (
	settingsMu       sync.Mutex
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path for new games.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for new games.
func SetDifficultyPreset(p config.DifficultyPreset) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = p
}

// LoadConfig resolves the config for v: file (or embedded default), then
// the difficulty preset, then the variant's own tuning.
func LoadConfig(v Variant) (config.FlappyConfig, error) {
	settingsMu.Lock()
	path, preset := configPath, difficultyPreset
	settingsMu.Unlock()

	cfg, err := config.LoadFlappy(path)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	v.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.FlappyConfig{}, err
	}
	return cfg, nil
}

// Register the variants with the registry
func init() {
	for _, v := range Variants() {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
