package sim

import (
	"math"
	"testing"
)

func TestCharacterCeilingIsNotFatal(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	c := s.Character()
	c.y = 3

	c.Flap()
	c.Update(1)

	if c.Y() != 0 || c.Velocity() != 0 {
		t.Errorf("after ceiling hit y=%v velocity=%v, expected 0/0", c.Y(), c.Velocity())
	}
	if s.GameOver() {
		t.Error("GameOver() = true after touching the ceiling, expected false")
	}
}

func TestCharacterFloorY(t *testing.T) {
	tests := []struct {
		name     string
		vp       Viewport
		expected float64
	}{
		{"normal", Viewport{Width: 800, Height: 600, GroundHeight: 40}, 536},
		{"no ground", Viewport{Width: 800, Height: 600}, 576},
		{"tiny", Viewport{Width: 800, Height: 50, GroundHeight: 40}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(calmConfig(), tt.vp, 1)
			if got := s.Character().FloorY(); got != tt.expected {
				t.Errorf("FloorY() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCharacterRotationBounded(t *testing.T) {
	cfg := fallingConfig()
	s := NewSession(cfg, testViewport, 1)
	c := s.Character()
	c.y = 0

	for range 20 {
		c.Update(1)
		if math.Abs(c.Rotation()) > cfg.Character.MaxRotation {
			t.Fatalf("Rotation() = %v exceeds %v", c.Rotation(), cfg.Character.MaxRotation)
		}
	}
	if c.Rotation() <= 0 {
		t.Errorf("Rotation() = %v, expected nose-down while falling", c.Rotation())
	}
}

func TestCharacterFlapEmitsEvent(t *testing.T) {
	var got []FlapEvent
	s := NewSession(calmConfig(), testViewport, 1, WithEventHandler(func(e Event) {
		if ev, ok := e.(FlapEvent); ok {
			got = append(got, ev)
		}
	}))

	s.Update(tick)
	s.RequestFlap()
	s.Update(tick)

	if len(got) != 1 || got[0].Tick != 2 {
		t.Errorf("flap events = %+v, expected one at tick 2", got)
	}
}
