package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("Embedded defaults differ from DefaultFlappyConfig():\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestLoadFlappyCustomPathOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flappy.yaml")
	data := "physics:\n  gravity: 0.9\nobstacles:\n  gap: 200\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.9 {
		t.Errorf("Gravity = %f, expected 0.9", cfg.Physics.Gravity)
	}
	if cfg.Obstacles.Gap != 200 {
		t.Errorf("Gap = %f, expected 200", cfg.Obstacles.Gap)
	}
	// Untouched keys keep their defaults.
	if cfg.Physics.FlapImpulse != -8 {
		t.Errorf("FlapImpulse = %f, expected default -8", cfg.Physics.FlapImpulse)
	}
}

func TestLoadFlappyErrors(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFlappy() should fail for a missing custom path")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  reference_fps: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlappy(path)
	if err == nil {
		t.Fatal("LoadFlappy() should reject an invalid config")
	}
	if !strings.Contains(err.Error(), "reference_fps") {
		t.Errorf("Error should name the bad key, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyPreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got != cfg {
		t.Errorf("Round trip changed config:\n%+v\n%+v", got, cfg)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(\"nightmare\") should fail")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("Fixed preset should disable progression")
	}

	ApplyPreset(&cfg, DifficultyEasy)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.Rate != 0.25 {
		t.Errorf("Easy preset = %+v, expected enabled with rate 0.25", cfg.Difficulty)
	}
}

func TestEffectiveGroundSpeed(t *testing.T) {
	p := FlappyPhysics{BaseSpeed: 3}
	if p.EffectiveGroundSpeed() != 3 {
		t.Errorf("EffectiveGroundSpeed() = %f, expected base speed 3", p.EffectiveGroundSpeed())
	}
	p.GroundSpeed = 5
	if p.EffectiveGroundSpeed() != 5 {
		t.Errorf("EffectiveGroundSpeed() = %f, expected 5", p.EffectiveGroundSpeed())
	}
}
