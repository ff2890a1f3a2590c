package sim

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

const tick = 1.0 / 60

var testViewport = Viewport{Width: 800, Height: 600, GroundHeight: 40}

// calmConfig has no gravity and a fixed gap at [210, 350] so the character
// at y=300 never touches anything unless a test moves it.
func calmConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0
	cfg.Obstacles.MaxOffset = 0
	return cfg
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func run(s *Session, ticks int) {
	for range ticks {
		s.Update(tick)
	}
}

func TestNewSession(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)

	if s.State() != StateRunning {
		t.Errorf("State() = %v, expected %v", s.State(), StateRunning)
	}
	if len(s.Active()) != 1 {
		t.Fatalf("len(Active()) = %d, expected 1", len(s.Active()))
	}
	if x := s.Active()[0].X(); x != 880 {
		t.Errorf("initial pair X() = %v, expected 880", x)
	}
	if s.Pool().Created() != 1 {
		t.Errorf("Created() = %d, expected 1", s.Pool().Created())
	}
	c := s.Character()
	if c.X() != 200 || c.Y() != 300 {
		t.Errorf("character at (%v, %v), expected (200, 300)", c.X(), c.Y())
	}
	if s.Difficulty() != 1 {
		t.Errorf("Difficulty() = %v, expected 1", s.Difficulty())
	}
}

func TestFlapThenTick(t *testing.T) {
	s := NewSession(config.DefaultFlappyConfig(), testViewport, 1)

	s.RequestFlap()
	s.Update(tick)

	c := s.Character()
	if !almostEqual(c.Velocity(), -7.4) {
		t.Errorf("Velocity() = %v, expected -7.4", c.Velocity())
	}
	if !almostEqual(c.Y(), 300-7.4) {
		t.Errorf("Y() = %v, expected %v", c.Y(), 300-7.4)
	}
	if c.Rotation() >= 0 {
		t.Errorf("Rotation() = %v, expected a nose-up (negative) rotation", c.Rotation())
	}
}

func TestRequestFlapCollapses(t *testing.T) {
	var flaps int
	s := NewSession(config.DefaultFlappyConfig(), testViewport, 1, WithEventHandler(func(e Event) {
		if _, ok := e.(FlapEvent); ok {
			flaps++
		}
	}))

	s.RequestFlap()
	s.RequestFlap()
	s.RequestFlap()
	s.Update(tick)
	s.Update(tick)

	if flaps != 1 {
		t.Errorf("flaps = %d, expected 1", flaps)
	}
}

func TestUpdateIgnoresBadDelta(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)

	for _, d := range []float64{0, -1, math.NaN()} {
		s.Update(d)
	}

	if s.Tick() != 0 {
		t.Errorf("Tick() = %d, expected 0", s.Tick())
	}
	if x := s.Active()[0].X(); x != 880 {
		t.Errorf("pair X() = %v, expected 880", x)
	}
}

func TestUpdateClampsDelta(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)

	// 5s is clamped to max_delta (0.1s), i.e. 6 frames at 3 units each.
	s.Update(5)

	if x := s.Active()[0].X(); !almostEqual(x, 862) {
		t.Errorf("pair X() = %v, expected 862", x)
	}
}

func TestSpawnCadence(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)

	run(s, 120)
	if len(s.Active()) != 1 {
		t.Errorf("after 120 ticks len(Active()) = %d, expected 1", len(s.Active()))
	}

	run(s, 10)
	if len(s.Active()) != 2 {
		t.Fatalf("after 130 ticks len(Active()) = %d, expected 2", len(s.Active()))
	}
	if x := s.Active()[1].X(); x > 880 || x < 870 {
		t.Errorf("second pair X() = %v, expected just inside spawn point", x)
	}
}

func TestSpawnThresholdInvariant(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 7)

	for i := range 2000 {
		s.Update(tick)
		if s.GameOver() {
			t.Fatalf("tick %d: unexpected game over (%v)", i, s.Cause())
		}
		active := s.Active()
		if len(active) == 0 {
			t.Fatalf("tick %d: no active pairs", i)
		}
		rightmost := active[0].X()
		for _, p := range active {
			rightmost = max(rightmost, p.X())
		}
		if gap := testViewport.Width - rightmost; gap > s.SpawnThreshold()+1e-9 {
			t.Fatalf("tick %d: distance to right edge %v exceeds threshold %v", i, gap, s.SpawnThreshold())
		}
	}
}

func TestScoringOncePerPair(t *testing.T) {
	var scored []int
	s := NewSession(calmConfig(), testViewport, 1, WithEventHandler(func(e Event) {
		if ev, ok := e.(ScoredEvent); ok {
			scored = append(scored, ev.Score)
		}
	}))

	run(s, 200)
	if s.Score() != 0 {
		t.Errorf("after 200 ticks Score() = %d, expected 0", s.Score())
	}

	run(s, 30)
	if s.Score() != 1 {
		t.Errorf("after 230 ticks Score() = %d, expected 1", s.Score())
	}
	if !s.Active()[0].Passed() {
		t.Error("first pair Passed() = false, expected true")
	}

	run(s, 30)
	if s.Score() != 1 {
		t.Errorf("after 260 ticks Score() = %d, expected 1", s.Score())
	}
	if len(scored) != 1 || scored[0] != 1 {
		t.Errorf("scored events = %v, expected [1]", scored)
	}
	if s.Difficulty() <= 1 {
		t.Errorf("Difficulty() = %v, expected > 1 after scoring", s.Difficulty())
	}
}

func TestPairsRecycled(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	first := s.Active()[0]

	run(s, 340)

	for _, p := range s.Active() {
		if p == first {
			t.Fatal("first pair still active after leaving the screen")
		}
	}
	if first.Active() {
		t.Error("released pair Active() = true, expected false")
	}
	if first.Passed() {
		t.Error("released pair Passed() = true, expected false")
	}
	if first.X() != s.spawnX() {
		t.Errorf("released pair X() = %v, expected %v", first.X(), s.spawnX())
	}
	if got := s.Pool().Free() + len(s.Active()); got != s.Pool().Created() {
		t.Errorf("free+active = %d, expected Created() = %d", got, s.Pool().Created())
	}
}

func TestGroundImpactEndsRun(t *testing.T) {
	var overs []GameOverEvent
	s := NewSession(config.DefaultFlappyConfig(), testViewport, 1, WithEventHandler(func(e Event) {
		if ev, ok := e.(GameOverEvent); ok {
			overs = append(overs, ev)
		}
	}))

	run(s, 100)

	if !s.GameOver() {
		t.Fatal("GameOver() = false, expected true")
	}
	if s.Cause() != CauseGround {
		t.Errorf("Cause() = %v, expected %v", s.Cause(), CauseGround)
	}
	if s.State() != StateGameOver {
		t.Errorf("State() = %v, expected %v", s.State(), StateGameOver)
	}
	if c := s.Character(); c.Y() != c.FloorY() || c.Alive() {
		t.Errorf("character y=%v alive=%v, expected y=%v alive=false", c.Y(), c.Alive(), c.FloorY())
	}
	if len(overs) != 1 {
		t.Errorf("game over events = %d, expected 1", len(overs))
	}
}

// fallingConfig is calmConfig with gravity, so the character drops but the
// gap stays fixed.
func fallingConfig() config.FlappyConfig {
	cfg := calmConfig()
	cfg.Physics.Gravity = 0.6
	return cfg
}

func TestObstacleCollision(t *testing.T) {
	s := NewSession(fallingConfig(), testViewport, 1)
	pair := s.Active()[0]
	pair.setX(220)
	s.character.y = 100

	s.Update(tick)

	if !s.GameOver() || s.Cause() != CauseObstacle {
		t.Fatalf("GameOver() = %v cause %v, expected true cause %v", s.GameOver(), s.Cause(), CauseObstacle)
	}
	if v := s.Character().Velocity(); !almostEqual(v, 0.6) {
		t.Errorf("Velocity() = %v, expected 0.6", v)
	}

	// Falling continues with the heavier game-over gravity; the world freezes.
	s.Update(tick)
	if v := s.Character().Velocity(); !almostEqual(v, 1.5) {
		t.Errorf("Velocity() = %v, expected 1.5", v)
	}
	y := s.Character().Y()
	run(s, 5)
	if s.Character().Y() <= y {
		t.Errorf("Y() = %v, expected the character to keep falling from %v", s.Character().Y(), y)
	}
	if pair.X() != 220 {
		t.Errorf("pair X() = %v, expected 220", pair.X())
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
}

func TestFlapIgnoredAfterGameOver(t *testing.T) {
	s := NewSession(fallingConfig(), testViewport, 1)
	s.Active()[0].setX(220)
	s.character.y = 100
	s.Update(tick)

	s.RequestFlap()
	s.Character().Flap()
	s.Update(tick)

	if v := s.Character().Velocity(); v < 0 {
		t.Errorf("Velocity() = %v, expected flaps to be ignored", v)
	}
}

func TestResizeScalesPairs(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	run(s, 10)

	s.Resize(Viewport{Width: 1600, Height: 600, GroundHeight: 40})

	if x := s.Active()[0].X(); !almostEqual(x, 1700) {
		t.Errorf("pair X() = %v, expected 1700", x)
	}
	if x := s.Character().X(); x != 400 {
		t.Errorf("character X() = %v, expected 400", x)
	}
	if w := s.Ground().SegmentWidth(); w != 1600 {
		t.Errorf("SegmentWidth() = %v, expected 1600", w)
	}
}

func TestResizeShrinkClampsCharacter(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)

	s.Resize(Viewport{Width: 800, Height: 200, GroundHeight: 40})

	if y, floor := s.Character().Y(), s.Character().FloorY(); y > floor {
		t.Errorf("Y() = %v, expected <= %v", y, floor)
	}
}

func TestCloseStopsUpdates(t *testing.T) {
	s := NewSession(calmConfig(), testViewport, 1)
	s.Close()
	s.Update(tick)

	if s.Tick() != 0 {
		t.Errorf("Tick() = %d, expected 0", s.Tick())
	}
	if len(s.Active()) != 0 {
		t.Errorf("len(Active()) = %d, expected 0", len(s.Active()))
	}
}

func TestSameSeedSameRun(t *testing.T) {
	play := func() Snapshot {
		s := NewSession(config.DefaultFlappyConfig(), testViewport, 99)
		inputs := rand.New(rand.NewSource(5))
		for range 600 {
			if inputs.Intn(12) == 0 {
				s.RequestFlap()
			}
			s.Update(tick)
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if a.Tick != b.Tick || a.Score != b.Score || a.Character != b.Character {
		t.Errorf("runs diverged: %+v vs %+v", a.Character, b.Character)
	}
	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("obstacle counts %d vs %d", len(a.Obstacles), len(b.Obstacles))
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Errorf("obstacle %d: %+v vs %+v", i, a.Obstacles[i], b.Obstacles[i])
		}
	}
}

// TestRandomRunInvariants drives many seeded sessions with random flaps and
// checks the properties that must hold on every tick.
func TestRandomRunInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		s := NewSession(config.DefaultFlappyConfig(), testViewport, seed)
		inputs := rand.New(rand.NewSource(seed))

		lastScore := 0
		wasOver := false
		maxActive := len(s.Active())

		for i := range 3000 {
			if inputs.Intn(10) == 0 {
				s.RequestFlap()
			}
			s.Update(tick * (0.5 + inputs.Float64()))

			c := s.Character()
			if c.Y() < 0 || c.Y() > c.FloorY() {
				t.Fatalf("seed %d tick %d: y=%v outside [0, %v]", seed, i, c.Y(), c.FloorY())
			}
			if s.Score() < lastScore {
				t.Fatalf("seed %d tick %d: score went from %d to %d", seed, i, lastScore, s.Score())
			}
			if wasOver && !s.GameOver() {
				t.Fatalf("seed %d tick %d: game over cleared", seed, i)
			}
			for _, p := range s.Active() {
				if !p.Active() {
					t.Fatalf("seed %d tick %d: inactive pair in active list", seed, i)
				}
			}
			for _, p := range s.Pool().free {
				if p.Active() {
					t.Fatalf("seed %d tick %d: active pair in free list", seed, i)
				}
			}
			maxActive = max(maxActive, len(s.Active()))
			lastScore = s.Score()
			wasOver = s.GameOver()
		}

		if s.Pool().Created() != maxActive {
			t.Errorf("seed %d: Created() = %d, expected %d", seed, s.Pool().Created(), maxActive)
		}
	}
}

// viewportHeights covers short terminals and ones taller than two
// obstacle heights plus the gap.
var viewportHeights = []float64{300, 600, 780, 1200, 2400}

func TestGapNeverBelowMinimum(t *testing.T) {
	for _, h := range viewportHeights {
		t.Run(fmt.Sprintf("height %v", h), func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Obstacles.RerollOffsets = true
			s := NewSession(cfg, Viewport{Width: 800, Height: h, GroundHeight: 40}, 3)

			for range 50 {
				p := s.Pool().Acquire()
				gap := p.Bottom().Y() - (p.Top().Y() + p.Top().Height())
				if gap < cfg.Obstacles.Gap-1e-9 {
					t.Fatalf("gap = %v, expected >= %v", gap, cfg.Obstacles.Gap)
				}
				s.Pool().Release(p)
			}
		})
	}
}

func TestObstaclesStayMounted(t *testing.T) {
	for _, h := range viewportHeights {
		t.Run(fmt.Sprintf("height %v", h), func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Obstacles.RerollOffsets = true
			vp := Viewport{Width: 800, Height: h, GroundHeight: 40}
			s := NewSession(cfg, vp, 5)

			for range 50 {
				p := s.Pool().Acquire()
				if y := p.Top().Y(); y > 0 {
					t.Fatalf("top obstacle Y() = %v, expected <= 0", y)
				}
				if end := p.Bottom().Y() + p.Bottom().Height(); end < vp.Playfield() {
					t.Fatalf("bottom obstacle ends at %v, expected >= %v", end, vp.Playfield())
				}
				for _, o := range []*Obstacle{p.Top(), p.Bottom()} {
					if o.Height() < cfg.Obstacles.Height {
						t.Fatalf("%v Height() = %v, expected >= %v", o.Direction(), o.Height(), cfg.Obstacles.Height)
					}
				}
				s.Pool().Release(p)
			}
		})
	}
}

func TestCeilingIsNoEscapeOnTallViewport(t *testing.T) {
	s := NewSession(calmConfig(), Viewport{Width: 800, Height: 1200, GroundHeight: 40}, 1)
	s.character.y = 0

	run(s, 400)

	if !s.GameOver() || s.Cause() != CauseObstacle {
		t.Fatalf("GameOver() = %v cause %v, expected true cause %v", s.GameOver(), s.Cause(), CauseObstacle)
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", s.Score())
	}
}

func TestOffsetsFixedUnlessRerolled(t *testing.T) {
	tests := []struct {
		name   string
		reroll bool
		same   bool
	}{
		{"fixed", false, true},
		{"reroll", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Obstacles.RerollOffsets = tt.reroll
			s := NewSession(cfg, testViewport, 11)

			p := s.Active()[0]
			before := p.Top().Offset()
			s.Pool().Release(p)
			s.active = nil
			again := s.Pool().Acquire()

			if again != p {
				t.Fatal("Acquire() did not reuse the released pair")
			}
			if got := again.Top().Offset() == before; got != tt.same {
				t.Errorf("offset unchanged = %v, expected %v", got, tt.same)
			}
		})
	}
}
