package config

import (
	"math"
	"testing"
)

func TestDifficultyCurveFormulas(t *testing.T) {
	d := NewDifficultyCurve(DefaultFlappyConfig().Difficulty)

	tests := []struct {
		score      int
		multiplier float64
		spacing    float64
	}{
		{0, 1.0, 1.0},
		{1, 1.05, 0.95},
		{10, 1.5, 0.5},
		{16, 1.8, 0.2},
		{20, 2.0, 0.2},
		{100, 6.0, 0.2},
	}

	for _, tc := range tests {
		if got := d.Multiplier(tc.score); math.Abs(got-tc.multiplier) > 1e-9 {
			t.Errorf("Multiplier(%d) = %f, expected %f", tc.score, got, tc.multiplier)
		}
		if got := d.SpacingFactor(tc.score); math.Abs(got-tc.spacing) > 1e-9 {
			t.Errorf("SpacingFactor(%d) = %f, expected %f", tc.score, got, tc.spacing)
		}
	}
}

func TestDifficultyCurveMonotonic(t *testing.T) {
	d := NewDifficultyCurve(DefaultFlappyConfig().Difficulty)

	prevMul := d.Multiplier(0)
	prevSpacing := d.SpacingFactor(0)
	for score := 1; score <= 200; score++ {
		mul := d.Multiplier(score)
		spacing := d.SpacingFactor(score)
		if mul <= prevMul {
			t.Fatalf("Multiplier(%d) = %f should exceed Multiplier(%d) = %f", score, mul, score-1, prevMul)
		}
		if spacing > prevSpacing {
			t.Fatalf("SpacingFactor(%d) = %f should not exceed %f", score, spacing, prevSpacing)
		}
		if spacing < 0.2 {
			t.Fatalf("SpacingFactor(%d) = %f dropped below floor 0.2", score, spacing)
		}
		prevMul, prevSpacing = mul, spacing
	}
}

func TestDifficultyCurveDisabled(t *testing.T) {
	cfg := DefaultFlappyConfig().Difficulty
	cfg.Enabled = false
	d := NewDifficultyCurve(cfg)

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if d.Multiplier(50) != 1 {
		t.Errorf("Multiplier(50) = %f, expected 1 when disabled", d.Multiplier(50))
	}
	if d.SpacingFactor(50) != 1 {
		t.Errorf("SpacingFactor(50) = %f, expected 1 when disabled", d.SpacingFactor(50))
	}
}
