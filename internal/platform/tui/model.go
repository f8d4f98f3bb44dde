package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blahaj-tide/internal/core"
	"github.com/vovakirdan/blahaj-tide/internal/registry"
	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

// defaultHoldTicks is used when Options.HoldTicks is unset.
const defaultHoldTicks = 8

// Options configure a play model.
type Options struct {
	Store      *storage.Store // Run ledger; nil disables the leaderboard
	Logger     *log.Logger    // nil discards logs
	Player     string         // Name recorded with finished runs
	Difficulty string         // Preset name recorded with finished runs
	HoldTicks  int            // Ticks a key stays held after its last repeat

	// Observer, if set, receives the game state after every tick.
	Observer func(core.GameState)
}

// roundInfo is implemented by games that can describe a finished round.
type roundInfo interface {
	PreyTotal() int
	RoundSeconds() int
	Seed() int64
}

// resizer is implemented by games whose frame depends on the screen shape.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      Options
	logger    *log.Logger
	keys      KeyMap
	mapper    *KeyMapper
	hold      *HoldTracker
	pace      *core.FrameClock
	lastTick  time.Time
	help      help.Model
	board     Leaderboard
	gameState core.GameState
	quitting  bool
	runSaved  bool // Whether the current round has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.HoldTicks <= 0 {
		opts.HoldTicks = defaultHoldTicks
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		logger: logger,
		keys:   keys,
		mapper: NewKeyMapper(keys),
		hold:   NewHoldTracker(opts.HoldTicks),
		pace:   core.NewFrameClock(cfg.TickRate),
		help:   h,
		board:  NewLeaderboard(cfg.ScreenW),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game reset", "game", m.game.ID(), "seed", m.config.Seed, "tick_rate", m.config.TickRate)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.hold.Press(action)
	return m, nil
}

// handleResize adapts the screen to the terminal. The simulation does not
// depend on the screen size, so the round carries on.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}
	m.help.Width = msg.Width
	m.board.table = newRunTable(msg.Width)
	m.board.updateRows()
	return m, nil
}

// handleTick runs as many fixed steps as the wall clock allows.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	steps := 1
	if !m.lastTick.IsZero() {
		steps = m.pace.Advance(now.Sub(m.lastTick))
	}
	m.lastTick = now

	for range steps {
		m = m.step()
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// step runs one simulation tick with the input held right now.
func (m Model) step() Model {
	result := m.game.Step(m.hold.Frame())
	m.gameState = result.State

	for _, ev := range result.Events {
		m.logger.Debug("game event",
			"type", ev.Type,
			"frame", ev.Frame,
			"x", fmt.Sprintf("%.2f", ev.X),
			"z", fmt.Sprintf("%.2f", ev.Z),
			"value", ev.Value,
		)
		switch ev.Type {
		case core.EventSessionStarted:
			m.runSaved = false
		case core.EventSessionEnded:
			// Keys held at the whistle must not leak into the results screen
			m.hold.Release()
			if !m.runSaved {
				m.recordRun(ev.Value)
				m.runSaved = true
			}
		}
	}

	if m.opts.Observer != nil {
		m.opts.Observer(m.gameState)
	}
	return m
}

// recordRun stores the finished round and refreshes the leaderboard.
// The ledger is best-effort: failures are logged and play continues.
func (m *Model) recordRun(score int) {
	run := storage.Run{
		GameID:     m.game.ID(),
		Player:     m.opts.Player,
		Score:      score,
		Difficulty: m.opts.Difficulty,
		Seed:       m.config.Seed,
	}
	if info, ok := m.game.(roundInfo); ok {
		run.PreyTotal = info.PreyTotal()
		run.Seconds = info.RoundSeconds()
		run.Seed = info.Seed()
	}
	m.logger.Info("round finished", "player", run.Player, "score", score, "prey", run.PreyTotal)

	if m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not record run", "error", err)
		return
	}
	if err := m.board.Load(m.opts.Store, m.game.ID(), id, score); err != nil {
		m.logger.Warn("could not load leaderboard", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() (string, error) {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".blahaj", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// footer returns what goes under the game view for the current phase.
func (m Model) footer() string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	switch m.gameState.Phase {
	case "menu":
		return helpStyle.Render(m.help.View(m.keys))
	case "results":
		board := m.board.View()
		if board == "" {
			return helpStyle.Render(m.help.View(m.keys))
		}
		return lipgloss.JoinVertical(lipgloss.Left, board, helpStyle.Render(m.help.View(m.keys)))
	}
	return ""
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footer()
	height := m.config.ScreenH
	if footer != "" {
		height -= lipgloss.Height(footer)
	}
	m.screen.Resize(m.config.ScreenW, max(height, 1))

	m.screen.Clear()
	m.game.Render(m.screen)

	out := RenderScreen(m.screen)
	if footer != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, footer)
	}
	return out
}

// Run starts a local Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
