package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy/sim"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// footerHeight is the number of rows reserved below the playfield.
const footerHeight = 1

// statusTicks is how long a status message stays in the footer.
const statusTicks = 120

// recorder is implemented by games that can journal their runs.
type recorder interface {
	Record() (storage.Run, error)
	Replayable() bool
}

// autopiloted is implemented by games with a built-in autopilot.
type autopiloted interface {
	SetAutopilot(on bool)
	Autopilot() bool
}

// eventSource is implemented by games that report simulation events.
type eventSource interface {
	OnEvent(fn func(sim.Event))
}

// Options configures a Model.
type Options struct {
	Store  *storage.Store // May be nil; runs are then not journaled
	Logger *log.Logger    // Defaults to a discarding logger
	// Clipboard enables copying the seed to the local clipboard. Off for
	// SSH sessions, where the clipboard would be the server's.
	Clipboard bool
	// AllowBack enables the back-to-menu key.
	AllowBack bool

	// exitOnBack ends the program on back, for the local menu loop that
	// runs each game as its own program.
	exitOnBack bool
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	clock      *core.Clock
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	clipboard  bool
	quitting   bool
	exitOnBack bool
	backToMenu bool
	runSaved   bool // Whether the run has been journaled for current game over
	status     string
	statusLeft int
}

// NewModel creates a new Bubble Tea model for the given game. cfg holds the
// full terminal size; the bottom row is kept for the help footer.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg = cfg.Normalized()
	cfg.ScreenH = max(cfg.ScreenH-footerHeight, 1)

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	keys := DefaultKeyMap()
	keys.Back.SetEnabled(opts.AllowBack)
	keys.CopySeed.SetEnabled(opts.Clipboard)

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		clock:      core.NewClock(cfg.TickRate),
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       h,
		inputFrame: core.NewInputFrame(),
		clipboard:  opts.Clipboard,
		exitOnBack: opts.exitOnBack,
	}

	if src, ok := game.(eventSource); ok {
		src.OnEvent(m.logEvent)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "seed", m.config.Seed, "size", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH))
	return tickCmd(m.clock.Step())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keyMapper.MapMouse(msg); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.CopySeed):
		m.copySeed()
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		m.toggleAutopilot()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the run going at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-footerHeight, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.game.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs as many fixed steps as the clock says are due.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.clock.Step())
	}

	steps := m.clock.Advance(now)
	for range steps {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		// Input applies to the first step only.
		m.inputFrame.Clear()
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	if m.statusLeft > 0 {
		m.statusLeft -= steps
		if m.statusLeft <= 0 {
			m.status = ""
		}
	}

	// Continue ticking
	return m, tickCmd(m.clock.Step())
}

// restart starts a new session with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.inputFrame.Clear()
	m.clock.Reset()
	m.logger.Info("run started", "seed", m.config.Seed)
}

// saveRun journals the finished run when the game supports it.
func (m *Model) saveRun() {
	rec, ok := m.game.(recorder)
	if !ok || m.store == nil {
		return
	}
	if !rec.Replayable() {
		m.logger.Debug("run not journaled", "reason", "resized during play")
		return
	}

	run, err := rec.Record()
	if err != nil {
		m.logger.Error("cannot record run", "error", err)
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("cannot save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "score", run.Score, "ticks", run.Ticks)
}

func (m *Model) toggleAutopilot() {
	ap, ok := m.game.(autopiloted)
	if !ok {
		return
	}
	ap.SetAutopilot(!ap.Autopilot())
	m.logger.Info("autopilot", "on", ap.Autopilot())
	if ap.Autopilot() {
		m.flash("autopilot on")
	} else {
		m.flash("autopilot off")
	}
}

func (m *Model) copySeed() {
	if !m.clipboard {
		return
	}
	seed := strconv.FormatInt(m.config.Seed, 10)
	if err := clipboard.WriteAll(seed); err != nil {
		m.logger.Warn("cannot copy seed", "error", err)
		m.flash("clipboard unavailable")
		return
	}
	m.flash("seed " + seed + " copied")
}

// saveScreenshot saves the current screen as plain text under the XDG
// data directory.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	timestamp := time.Now().Format("20060102_150405")
	rel := filepath.Join("flappy", "screenshots", fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	path, err := xdg.DataFile(rel)
	if err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.flash("screenshot saved")
}

func (m *Model) flash(msg string) {
	m.status = msg
	m.statusLeft = statusTicks
}

func (m *Model) logEvent(e sim.Event) {
	switch ev := e.(type) {
	case sim.ScoredEvent:
		m.logger.Debug("scored", "score", ev.Score, "tick", ev.Tick)
	case sim.GameOverEvent:
		m.logger.Info("game over", "score", ev.Score, "cause", ev.Cause, "tick", ev.Tick)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderFrame(m.screen, m.footer())
}

func (m Model) footer() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return m.help.View(m.keys)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model. It reports
// whether the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	opts.Clipboard = !clipboard.Unsupported
	opts.exitOnBack = opts.AllowBack
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click flaps
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
