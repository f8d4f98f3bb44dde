package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blahaj-tide/internal/core"
	"github.com/vovakirdan/blahaj-tide/internal/games/blahaj"
	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

var (
	flagRounds   int
	flagMaxTicks int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot rounds",
	Long: `Run rounds without a terminal UI. An autopilot steers the shark towards
the nearest fish. The run is deterministic for a given --seed and config,
and ends with a state hash that can be compared across builds.

Examples:
  blahaj sim --seed 42
  blahaj sim --seed 42 --rounds 5 --difficulty easy
  blahaj sim --fps 30 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRounds, "rounds", 1, "Number of rounds to play")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Stop after this many ticks (0 = no limit)")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "blahaj-sim")
	if err != nil {
		return err
	}
	defer closeLog()

	if flagRounds < 1 {
		return fmt.Errorf("--rounds must be at least 1")
	}

	cfg, _, err := loadConfig(logger)
	if err != nil {
		return err
	}
	game, err := blahaj.New(blahaj.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	runtime := core.RuntimeConfig{TickRate: flagFPS, Seed: seed()}
	game.Reset(runtime)

	store, err := storage.OpenMemory()
	if err != nil {
		return err
	}
	defer store.Close()

	pilot := &blahaj.Autopilot{Replay: flagRounds > 1}
	finished := 0
	ticks := 0
	for finished < flagRounds {
		if flagMaxTicks > 0 && ticks >= flagMaxTicks {
			logger.Warn("tick limit reached", "ticks", ticks, "rounds", finished)
			break
		}

		result := game.Step(pilot.Input(game))
		ticks++
		for _, ev := range result.Events {
			logger.Debug("game event", "type", ev.Type, "frame", ev.Frame, "value", ev.Value)
			if ev.Type != core.EventSessionEnded {
				continue
			}
			finished++
			if _, saveErr := store.SaveRun(storage.Run{
				GameID:     game.ID(),
				Player:     "autopilot",
				Score:      ev.Value,
				PreyTotal:  game.PreyTotal(),
				Seconds:    game.RoundSeconds(),
				Difficulty: flagDifficulty,
				Seed:       runtime.Seed,
			}); saveErr != nil {
				logger.Warn("could not record run", "error", saveErr)
			}
			logger.Info("round finished", "round", finished, "score", ev.Value, "prey", game.PreyTotal())
		}
	}

	printSummary(game, store, runtime.Seed, ticks)
	return nil
}

func printSummary(game *blahaj.Game, store *storage.Store, seed int64, ticks int) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)

	snap := game.Snapshot()
	field := game.Field()

	fmt.Println(title.Render("Blahaj Tide simulation"))
	row := func(k string, v any) {
		fmt.Printf("%s %v\n", label.Render(k), v)
	}
	row("seed", seed)
	row("ticks", ticks)
	row("state", snap.State)
	row("shark scale", fmt.Sprintf("%.3f", snap.PlayerScale))
	row("wave energy", fmt.Sprintf("%.4f", snap.WaveEnergy))
	row("courant", fmt.Sprintf("%.3f (stable below 0.707)", field.Courant(game.Clock().Dt())))
	if !field.Finite() {
		row("warning", "wave field diverged")
	}

	if st, err := store.Stats(game.ID()); err == nil && st.Runs > 0 {
		row("rounds", st.Runs)
		row("best", st.BestScore)
		row("average", fmt.Sprintf("%.1f", st.AverageScore))
		row("total eaten", st.TotalEaten)
	}
	row("state hash", fmt.Sprintf("%016x", snap.Hash()))
}
