// Package flappy adapts the sim engine to the platform's Game interface.
// It maps the terminal grid to world units, feeds jump actions through an
// input bus, keeps the flap journal used for replays and draws snapshots
// onto a core.Screen.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Game implements registry.Game on top of a sim.Session.
type Game struct {
	variant Variant
	cfg     config.FlappyConfig
	loaded  bool
	runtime core.RuntimeConfig

	session    *sim.Session
	bus        *core.InputBus
	controller *sim.InputController
	pilot      *sim.Autopilot
	autopilot  bool
	paused     bool
	resized    bool

	flaps    []uint64 // ticks on which a flap took effect this run
	overTick uint64
	onEvent  func(sim.Event)
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{
		variant: v,
		bus:     core.NewInputBus(),
		pilot:   sim.NewAutopilot(),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// SetConfig pins the config used by the next Reset, bypassing LoadConfig.
func (g *Game) SetConfig(cfg config.FlappyConfig) {
	g.cfg = cfg
	g.loaded = true
}

// Config returns the config of the current run.
func (g *Game) Config() config.FlappyConfig {
	g.ensureConfig()
	return g.cfg
}

func (g *Game) ensureConfig() {
	if g.loaded {
		return
	}
	cfg, err := LoadConfig(g.variant)
	if err != nil {
		// The CLI validates the config before creating games; this only
		// guards direct registry use.
		cfg = config.DefaultFlappyConfig()
		g.variant.Apply(&cfg)
	}
	g.cfg = cfg
	g.loaded = true
}

// OnEvent registers fn to receive session events. It survives restarts.
func (g *Game) OnEvent(fn func(sim.Event)) {
	g.onEvent = fn
}

// SetAutopilot turns the built-in autopilot on or off.
func (g *Game) SetAutopilot(on bool) {
	g.autopilot = on
}

// Autopilot reports whether the autopilot is flying.
func (g *Game) Autopilot() bool {
	return g.autopilot
}

// Reset throws away the current session and starts a new one.
func (g *Game) Reset(rc core.RuntimeConfig) {
	rc = rc.Normalized()
	g.ensureConfig()
	g.runtime = rc

	if g.session != nil {
		g.controller.Disconnect()
		g.session.Close()
	}

	g.paused = false
	g.resized = false
	g.flaps = nil
	g.overTick = 0
	g.session = sim.NewSession(g.cfg, g.viewport(rc.ScreenW, rc.ScreenH), rc.Seed,
		sim.WithEventHandler(g.handleEvent))
	g.controller = sim.NewInputController(g.session)
	g.controller.Connect(g.bus)
}

// Resize adapts the running session to a new terminal size.
func (g *Game) Resize(screenW, screenH int) {
	if screenW == g.runtime.ScreenW && screenH == g.runtime.ScreenH {
		return
	}
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	if g.session != nil {
		g.session.Resize(g.viewport(screenW, screenH))
		g.resized = true
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	jump := in.Has(core.ActionJump)
	if g.autopilot {
		jump = g.pilot.Decide(g.session.Snapshot())
	}
	if jump {
		g.bus.Publish(core.ActionJump)
	}

	g.session.Update(g.tickSeconds())
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// Session returns the live session, or nil before the first Reset.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Replayable reports whether the current run can be re-simulated from its
// record. Runs that were resized midway cannot.
func (g *Game) Replayable() bool {
	return g.session != nil && !g.resized
}

// Record builds the journal entry for the current run.
func (g *Game) Record() (storage.Run, error) {
	cfg, err := config.Marshal(g.cfg)
	if err != nil {
		return storage.Run{}, err
	}
	r := storage.Run{
		GameID:   g.ID(),
		Seed:     g.runtime.Seed,
		TickRate: g.runtime.TickRate,
		ScreenW:  g.runtime.ScreenW,
		ScreenH:  g.runtime.ScreenH,
		Config:   cfg,
		Flaps:    append([]uint64(nil), g.flaps...),
	}
	if g.session != nil {
		r.Ticks = g.session.Tick()
		r.Score = g.session.Score()
		if g.session.GameOver() {
			r.Ticks = g.overTick
			r.Cause = g.session.Cause().String()
		}
	}
	return r, nil
}

func (g *Game) handleEvent(e sim.Event) {
	switch ev := e.(type) {
	case sim.FlapEvent:
		g.flaps = append(g.flaps, ev.Tick)
	case sim.GameOverEvent:
		g.overTick = ev.Tick
	}
	if g.onEvent != nil {
		g.onEvent(e)
	}
}

// viewport converts a terminal size to world units.
func (g *Game) viewport(screenW, screenH int) sim.Viewport {
	return ScreenViewport(g.cfg, screenW, screenH)
}

func (g *Game) tickSeconds() float64 {
	return g.runtime.TickSeconds()
}

// ScreenViewport maps a terminal of screenW x screenH cells onto world units.
func ScreenViewport(cfg config.FlappyConfig, screenW, screenH int) sim.Viewport {
	return sim.Viewport{
		Width:        float64(screenW) * cfg.Presentation.CellWidth,
		Height:       float64(screenH) * cfg.Presentation.CellHeight,
		GroundHeight: cfg.Ground.Height,
	}
}
