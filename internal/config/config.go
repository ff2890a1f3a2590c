// Package config provides YAML-based game configuration loading and
// difficulty management for the flappy engine.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the flappy simulation.
//
// Physics constants are expressed per reference frame (1/ReferenceFPS seconds).
// The simulation converts each tick's delta to frames
// (frames = deltaSeconds * ReferenceFPS), so at the reference rate the
// constants behave exactly as per-tick values while staying frame-rate
// independent at other rates.
type FlappyConfig struct {
	Physics      FlappyPhysics      `yaml:"physics"`
	Character    FlappyCharacter    `yaml:"character"`
	Obstacles    FlappyObstacles    `yaml:"obstacles"`
	Ground       FlappyGround       `yaml:"ground"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
	Presentation FlappyPresentation `yaml:"presentation"`
}

// FlappyPhysics defines physics parameters.
type FlappyPhysics struct {
	Gravity               float64 `yaml:"gravity"`                  // Downward acceleration per frame
	FlapImpulse           float64 `yaml:"flap_impulse"`             // Velocity set on flap (negative = up)
	GameOverGravityFactor float64 `yaml:"game_over_gravity_factor"` // Gravity multiplier while falling after impact
	ReferenceFPS          float64 `yaml:"reference_fps"`            // Frame rate the constants are tuned for
	MaxDelta              float64 `yaml:"max_delta"`                // Longest accepted tick in seconds
	BaseSpeed             float64 `yaml:"base_speed"`               // Obstacle speed per frame before difficulty
	GroundSpeed           float64 `yaml:"ground_speed"`             // Ground scroll per frame; 0 = base_speed
}

// FlappyCharacter defines the controllable character.
type FlappyCharacter struct {
	XFraction      float64 `yaml:"x_fraction"`      // Horizontal position as a fraction of viewport width
	Width          float64 `yaml:"width"`           // Hitbox width
	Height         float64 `yaml:"height"`          // Hitbox height
	RotationFactor float64 `yaml:"rotation_factor"` // Target rotation per unit of velocity
	MaxRotation    float64 `yaml:"max_rotation"`    // Rotation clamp in radians
	RotationBlend  float64 `yaml:"rotation_blend"`  // Per-frame blend toward the target rotation
}

// FlappyObstacles defines obstacle geometry and spacing.
type FlappyObstacles struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	MaxOffset     float64 `yaml:"max_offset"`     // Largest random shift toward the viewport centre
	Gap           float64 `yaml:"gap"`            // Smallest vertical gap between a pair
	SpawnDistance float64 `yaml:"spawn_distance"` // Base distance from the right edge before spawning
	RerollOffsets bool    `yaml:"reroll_offsets"` // Draw new offsets each time a pair is recycled
}

// FlappyGround defines the scrolling ground strip.
type FlappyGround struct {
	Height float64 `yaml:"height"`
}

// FlappyPresentation maps world units onto terminal cells.
type FlappyPresentation struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// DifficultyConfig defines the score-driven difficulty curve.
//
//	multiplier     = 1 + (score/StepScore) * Rate
//	spacing factor = clamp(1 - (score/StepScore) * Rate, MinSpacingFactor, 1)
type DifficultyConfig struct {
	Enabled          bool    `yaml:"enabled"`
	StepScore        float64 `yaml:"step_score"`
	Rate             float64 `yaml:"rate"`
	MinSpacingFactor float64 `yaml:"min_spacing_factor"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty means "keep config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Rate = 0.25
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Rate = 0.5
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Rate = 0.75
		cfg.Difficulty.MinSpacingFactor = 0.3
	}
}

// EffectiveGroundSpeed returns the ground scroll speed, defaulting to BaseSpeed.
func (p FlappyPhysics) EffectiveGroundSpeed() float64 {
	if p.GroundSpeed > 0 {
		return p.GroundSpeed
	}
	return p.BaseSpeed
}

// Validate checks that the config can drive a simulation.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Physics.ReferenceFPS <= 0 {
		errs = append(errs, errors.New("physics.reference_fps must be positive"))
	}
	if c.Physics.MaxDelta <= 0 {
		errs = append(errs, errors.New("physics.max_delta must be positive"))
	}
	if c.Physics.BaseSpeed < 0 {
		errs = append(errs, errors.New("physics.base_speed must not be negative"))
	}
	if c.Character.Width <= 0 || c.Character.Height <= 0 {
		errs = append(errs, errors.New("character width and height must be positive"))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 {
		errs = append(errs, errors.New("obstacles width and height must be positive"))
	}
	if c.Obstacles.MaxOffset < 0 || c.Obstacles.Gap < 0 {
		errs = append(errs, errors.New("obstacles max_offset and gap must not be negative"))
	}
	if c.Ground.Height < 0 {
		errs = append(errs, errors.New("ground.height must not be negative"))
	}
	if c.Difficulty.StepScore <= 0 {
		errs = append(errs, errors.New("difficulty.step_score must be positive"))
	}
	if c.Difficulty.MinSpacingFactor < 0 || c.Difficulty.MinSpacingFactor > 1 {
		errs = append(errs, errors.New("difficulty.min_spacing_factor must be within [0, 1]"))
	}
	if c.Presentation.CellWidth <= 0 || c.Presentation.CellHeight <= 0 {
		errs = append(errs, errors.New("presentation cell sizes must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}
