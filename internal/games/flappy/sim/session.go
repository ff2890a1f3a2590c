package sim

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithEventHandler registers fn to receive session events.
func WithEventHandler(fn func(Event)) Option {
	return func(s *Session) {
		s.onEvent = fn
	}
}

// Session owns the mutable state of one run. Restarting means building a
// new Session; nothing carries over.
type Session struct {
	cfg      config.FlappyConfig
	viewport Viewport
	rng      *rand.Rand
	curve    *config.DifficultyCurve
	onEvent  func(Event)

	character *Character
	pool      *ObstaclePairPool
	active    []*ObstaclePair
	ground    *Ground

	score          int
	difficulty     float64
	spawnThreshold float64
	tick           uint64
	state          State
	cause          Cause
	closed         bool

	gameOver  atomic.Bool
	flapLatch atomic.Bool
}

// NewSession builds a session for the given viewport and spawns the first
// obstacle pair. The seed drives every random draw, so two sessions with the
// same seed, config, viewport and inputs evolve identically.
func NewSession(cfg config.FlappyConfig, vp Viewport, seed int64, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		viewport:   vp,
		rng:        rand.New(rand.NewSource(seed)),
		curve:      config.NewDifficultyCurve(cfg.Difficulty),
		difficulty: 1,
		state:      StateInitializing,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.character = newCharacter(s)
	s.pool = newObstaclePairPool(s)
	s.ground = newGround(vp.Width)
	s.spawnThreshold = cfg.Obstacles.SpawnDistance * s.curve.SpacingFactor(0)

	s.spawn()
	s.state = StateRunning
	return s
}

// Update advances the simulation by deltaSeconds. Non-positive or
// non-finite deltas are ignored; long deltas are clamped to MaxDelta.
func (s *Session) Update(deltaSeconds float64) {
	if s.closed || math.IsNaN(deltaSeconds) || deltaSeconds <= 0 {
		return
	}
	deltaSeconds = min(deltaSeconds, s.cfg.Physics.MaxDelta)
	frames := deltaSeconds * s.cfg.Physics.ReferenceFPS
	s.tick++

	if s.flapLatch.Swap(false) {
		s.character.Flap()
	}
	s.character.Update(frames)

	if !s.GameOver() {
		s.checkCollisions()
	}
	if s.GameOver() {
		return
	}

	s.difficulty = s.curve.Multiplier(s.score)
	s.spawnThreshold = s.cfg.Obstacles.SpawnDistance * s.curve.SpacingFactor(s.score)

	s.advancePairs(frames)
	s.maybeSpawn()
	s.ground.Update(s.cfg.Physics.EffectiveGroundSpeed(), frames)
}

// RequestFlap latches a flap for the next Update. Multiple requests between
// updates collapse into one. Safe for concurrent use.
func (s *Session) RequestFlap() {
	if s.GameOver() {
		return
	}
	s.flapLatch.Store(true)
}

// Resize adopts a new viewport. Active pairs keep their relative horizontal
// position; the character and ground are re-laid out.
func (s *Session) Resize(vp Viewport) {
	if !vp.valid() {
		return
	}
	old := s.viewport
	s.viewport = vp

	ratio := 1.0
	if old.Width > 0 {
		ratio = vp.Width / old.Width
	}
	for _, p := range s.active {
		p.setX(p.X() * ratio)
	}
	s.character.relayout()
	s.ground.Resize(vp.Width)
}

// Close stops the session. Later updates are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, p := range s.active {
		s.pool.Release(p)
	}
	s.active = nil
	s.pool.Drain()
}

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Score returns the number of pairs passed.
func (s *Session) Score() int { return s.score }

// GameOver reports whether the run has ended. Safe for concurrent use.
func (s *Session) GameOver() bool { return s.gameOver.Load() }

// Cause returns why the run ended, or CauseNone.
func (s *Session) Cause() Cause { return s.cause }

// Tick returns the number of accepted updates.
func (s *Session) Tick() uint64 { return s.tick }

// Difficulty returns the current obstacle speed multiplier.
func (s *Session) Difficulty() float64 { return s.difficulty }

// SpawnThreshold returns the current spawn distance from the right edge.
func (s *Session) SpawnThreshold() float64 { return s.spawnThreshold }

// Viewport returns the current viewport.
func (s *Session) Viewport() Viewport { return s.viewport }

// Character returns the player body.
func (s *Session) Character() *Character { return s.character }

// Pool returns the obstacle pair pool.
func (s *Session) Pool() *ObstaclePairPool { return s.pool }

// Active returns the active pairs in spawn order. The slice must not be
// modified.
func (s *Session) Active() []*ObstaclePair { return s.active }

// Ground returns the scrolling ground.
func (s *Session) Ground() *Ground { return s.ground }

func (s *Session) checkCollisions() {
	box := s.character.Box()
	for _, p := range s.active {
		for _, o := range [2]*Obstacle{p.top, p.bottom} {
			ob, ok := o.Box()
			if !ok {
				continue
			}
			if box.Intersects(ob) {
				s.character.HandleCollision()
				return
			}
		}
	}
}

func (s *Session) advancePairs(frames float64) {
	kept := s.active[:0]
	for _, p := range s.active {
		p.Update(frames)
		if p.offscreen() {
			s.pool.Release(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(s.active[len(kept):])
	s.active = kept
}

func (s *Session) maybeSpawn() {
	if len(s.active) == 0 {
		s.spawn()
		return
	}
	rightmost := s.active[0].X()
	for _, p := range s.active[1:] {
		rightmost = max(rightmost, p.X())
	}
	if s.viewport.Width-rightmost > s.spawnThreshold {
		s.spawn()
	}
}

func (s *Session) spawn() {
	s.active = append(s.active, s.pool.Acquire())
}

// spawnX is the horizontal centre for a fresh pair, one obstacle width past
// the right edge.
func (s *Session) spawnX() float64 {
	return s.viewport.Width + s.cfg.Obstacles.Width
}

func (s *Session) obstacleSpeed() float64 {
	return s.cfg.Physics.BaseSpeed * s.difficulty
}

// obstacleReach returns the base reach of each obstacle into the playfield
// and the usable random offset span. A pair always leaves at least
// Obstacles.Gap between its edges.
func (s *Session) obstacleReach() (base, span float64) {
	slack := max((s.viewport.Playfield()-s.cfg.Obstacles.Gap)/2, 0)
	span = min(s.cfg.Obstacles.MaxOffset, slack)
	return slack - span, span
}

func (s *Session) addScore() {
	s.score++
	s.emit(ScoredEvent{Score: s.score, Tick: s.tick})
}

func (s *Session) endRun(cause Cause) {
	if !s.gameOver.CompareAndSwap(false, true) {
		return
	}
	s.character.alive = false
	s.state = StateGameOver
	s.cause = cause
	s.flapLatch.Store(false)
	s.emit(GameOverEvent{Score: s.score, Cause: cause, Tick: s.tick})
}

func (s *Session) emit(e Event) {
	if s.onEvent != nil {
		s.onEvent(e)
	}
}
