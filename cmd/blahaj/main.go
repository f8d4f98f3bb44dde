// blahaj is a terminal arcade: steer a shark through a rippling pond and eat
// as many fish as you can before the tide timer runs out.
//
// Usage:
//
//	blahaj [play]            - Play locally
//	blahaj serve             - Start SSH server for remote play
//	blahaj sim               - Run headless autopilot rounds
//	blahaj config            - Print the effective configuration
//	blahaj list              - List available games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom blahaj.yaml
//	--difficulty <name>   - Preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blahaj-tide/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/blahaj-tide/internal/games/blahaj"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blahaj",
	Short: "Blahaj Tide - chase fish across a rippling pond",
	Long: `Blahaj Tide is a terminal arcade game. You steer a shark across a pond
whose surface is a live wave simulation; swimming fast leaves a wake.
Eat as many fish as you can before the timer runs out.

Available commands:
  play     - Play locally (default)
  serve    - Start SSH server for remote play
  sim      - Run headless autopilot rounds
  config   - Print the effective configuration
  list     - Show all available games

Examples:
  blahaj
  blahaj play --difficulty easy
  blahaj serve --ssh :2222 --http :8080
  blahaj sim --seed 42 --rounds 3
  blahaj config --difficulty hard`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom blahaj.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
}

// newLogger builds the logger from the global flags. Logs go to --log-file
// when set, otherwise to fallback. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	return logger, closeFn, nil
}

// loadConfig loads the configuration named by the global flags, applies the
// difficulty preset and validates the result. Soft problems are logged.
func loadConfig(logger *log.Logger) (config.BlahajConfig, string, error) {
	cfg, source, err := config.LoadBlahajWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, source, err
	}
	config.ApplyBlahajPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, source, err
	}
	if err := cfg.CheckTickRate(flagFPS); err != nil {
		return cfg, source, err
	}

	logger.Debug("config loaded", "source", source, "difficulty", preset)
	for _, w := range cfg.Warnings(flagFPS) {
		logger.Warn("config", "warning", w)
	}
	return cfg, source, nil
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
