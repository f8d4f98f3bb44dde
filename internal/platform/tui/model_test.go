package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/core"
	"github.com/vovakirdan/blahaj-tide/internal/games/blahaj"
	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

const testTickRate = 10

func newTestModel(t *testing.T, store *storage.Store, observer func(core.GameState)) Model {
	t.Helper()
	cfg := config.DefaultBlahajConfig()
	cfg.Wave.GridSize = 32
	cfg.Wave.Speed = 2
	cfg.Prey.Count = 20
	cfg.Session.DurationSeconds = 1

	game, err := blahaj.New(blahaj.Options{Config: cfg})
	if err != nil {
		t.Fatalf("blahaj.New error: %v", err)
	}

	m := NewModel(game, core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: testTickRate,
		Seed:     7,
	}, Options{
		Store:      store,
		Player:     "tester",
		Difficulty: "normal",
		Observer:   observer,
	})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model
}

// playRound confirms on the menu and ticks until the round is over.
func playRound(t *testing.T, m Model, start time.Time) (Model, time.Time) {
	t.Helper()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	now := start
	step := time.Second / testTickRate
	for range testTickRate + 1 {
		m = update(t, m, TickMsg(now))
		now = now.Add(step)
	}
	return m, now
}

func TestModelRecordsFinishedRound(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory error: %v", err)
	}
	defer store.Close()

	var phases []string
	m := newTestModel(t, store, func(st core.GameState) {
		phases = append(phases, st.Phase)
	})

	m, _ = playRound(t, m, time.Unix(1000, 0))

	if m.gameState.Phase != "results" {
		t.Fatalf("phase = %q after the round, expected results", m.gameState.Phase)
	}
	if len(phases) == 0 || phases[0] != "playing" {
		t.Errorf("observer phases = %v, expected to start with playing", phases)
	}

	runs, err := store.TopRuns(blahaj.ID, 10)
	if err != nil {
		t.Fatalf("TopRuns error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Player != "tester" || r.Difficulty != "normal" || r.PreyTotal != 20 || r.Seconds != 1 || r.Seed != 7 {
		t.Errorf("recorded run = %+v", r)
	}

	view := m.View()
	if !strings.Contains(view, "BEST RUNS") {
		t.Error("results view should show the leaderboard")
	}
}

func TestModelRecordsEachRoundOnce(t *testing.T) {
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory error: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store, nil)
	now := time.Unix(1000, 0)
	m, now = playRound(t, m, now)

	// Idle ticks on the results screen must not add runs
	for range 5 {
		m = update(t, m, TickMsg(now))
		now = now.Add(time.Second / testTickRate)
	}
	m, _ = playRound(t, m, now)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns error: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("recorded %d runs over two rounds, expected 2", len(runs))
	}
}

func TestModelReleasesKeysWhenRoundEnds(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	now := time.Unix(1000, 0)
	step := time.Second / testTickRate
	for m.gameState.Phase != "results" {
		// Keep swimming right up to the whistle
		m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m = update(t, m, TickMsg(now))
		now = now.Add(step)
		if now.After(time.Unix(1005, 0)) {
			t.Fatal("round did not end")
		}
	}

	if f := m.hold.Frame(); len(f.Actions) != 0 {
		t.Errorf("held actions after the round = %v, expected none", f.Actions)
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m, _ = playRound(t, m, time.Unix(1000, 0))

	if m.gameState.Phase != "results" {
		t.Fatalf("phase = %q, expected results", m.gameState.Phase)
	}
	if m.board.Len() != 0 {
		t.Error("leaderboard should stay empty without a store")
	}
	if view := m.View(); view == "" {
		t.Error("View should render the results screen")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(time.Unix(1000, 0)))
	if m.gameState.Phase != "playing" {
		t.Fatalf("phase = %q, expected playing", m.gameState.Phase)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.config.ScreenW != 100 || m.config.ScreenH != 40 {
		t.Errorf("config size = %dx%d, expected 100x40", m.config.ScreenW, m.config.ScreenH)
	}
	if g := m.game.(*blahaj.Game); g.Runtime().ScreenW != 100 || g.Runtime().ScreenH != 40 {
		t.Errorf("game runtime size = %dx%d, expected 100x40", g.Runtime().ScreenW, g.Runtime().ScreenH)
	}
	m = update(t, m, TickMsg(time.Unix(1000, 0).Add(time.Second/testTickRate)))
	if m.gameState.Phase != "playing" {
		t.Error("resizing must not restart the round")
	}
	if !strings.Contains(m.View(), "fish") {
		t.Error("playing view should show the HUD")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestRenderScreenColors(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.SetCell(0, 0, '~', core.ColorDeepBlue)
	s.SetCell(1, 0, '≈', core.ColorFoam)
	out := RenderScreen(s)
	if !strings.Contains(out, "~") || !strings.Contains(out, "≈") {
		t.Errorf("RenderScreen lost runes: %q", out)
	}
}

func TestRenderScreenPlainMatchesString(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawText(0, 1, "blahaj")
	if got := RenderScreen(s); got != s.String() {
		t.Errorf("uncolored RenderScreen = %q, expected %q", got, s.String())
	}
}
