package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blahaj-tide/internal/core"
	"github.com/vovakirdan/blahaj-tide/internal/games/blahaj"
	"github.com/vovakirdan/blahaj-tide/internal/platform/tui"
	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally",
	Long: `Start a local game in the terminal.

Controls:
  Left/A, Right/D  - Turn
  Up/W             - Swim faster (leaves a wake)
  Down/S           - Brake
  Enter/Space      - Start / play again
  Ctrl+S           - Save a screenshot to ~/.blahaj/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More fish, a wider bite and a longer round
  normal - The default tuning
  hard   - Fewer, faster fish and a short round
  fixed  - Normal tuning but the shark never grows

Scores are kept for as long as the program runs.

Examples:
  blahaj play
  blahaj play --difficulty hard
  blahaj play --config ./my-blahaj.yaml --log-file blahaj.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The alt screen owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard, "blahaj")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, _, err := loadConfig(logger)
	if err != nil {
		return err
	}

	game, err := blahaj.New(blahaj.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	// The ledger only lives for this process
	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		store = nil
	}

	runErr := tui.Run(game, runtime, tui.Options{
		Store:      store,
		Logger:     logger,
		Player:     playerName(),
		Difficulty: flagDifficulty,
		HoldTicks:  cfg.Input.HoldTicks,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
