package config

import "math"

// DifficultyCurve calculates score-driven game parameters.
// The speed multiplier and the spawn spacing factor move in lockstep:
// more score means faster obstacles that are also closer together.
type DifficultyCurve struct {
	cfg DifficultyConfig
}

// NewDifficultyCurve creates a curve from config.
func NewDifficultyCurve(cfg DifficultyConfig) *DifficultyCurve {
	return &DifficultyCurve{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyCurve) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Rate > 0 && d.cfg.StepScore > 0
}

// progress returns (score/step)*rate, or 0 when progression is disabled.
func (d *DifficultyCurve) progress(score int) float64 {
	if !d.IsEnabled() || score <= 0 {
		return 0
	}
	return float64(score) / d.cfg.StepScore * d.cfg.Rate
}

// Multiplier returns the obstacle speed multiplier for a score. It is at
// least 1 and unbounded above.
func (d *DifficultyCurve) Multiplier(score int) float64 {
	return 1 + d.progress(score)
}

// SpacingFactor returns the fraction of the base spawn distance to use for
// a score, floored at MinSpacingFactor.
func (d *DifficultyCurve) SpacingFactor(score int) float64 {
	return clampF(1-d.progress(score), d.cfg.MinSpacingFactor, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
