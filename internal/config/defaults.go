package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the hardcoded flappy configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:               0.6,
			FlapImpulse:           -8,
			GameOverGravityFactor: 1.5,
			ReferenceFPS:          60,
			MaxDelta:              0.1,
			BaseSpeed:             3.0,
		},
		Character: FlappyCharacter{
			XFraction:      0.25,
			Width:          34,
			Height:         24,
			RotationFactor: 0.1,
			MaxRotation:    math.Pi / 4,
			RotationBlend:  0.1,
		},
		Obstacles: FlappyObstacles{
			Width:         80,
			Height:        320,
			MaxOffset:     150,
			Gap:           140,
			SpawnDistance: 300,
		},
		Ground: FlappyGround{
			Height: 40,
		},
		Difficulty: DifficultyConfig{
			Enabled:          true,
			StepScore:        10,
			Rate:             0.5,
			MinSpacingFactor: 0.2,
		},
		Presentation: FlappyPresentation{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
