package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blahaj-tide/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the search order
and the --difficulty preset have been applied. The output is valid YAML and
can be saved as a starting point for --config.

Search order:
  1. --config <path>
  2. ~/.blahaj/configs/blahaj.yaml
  3. ./configs/blahaj.yaml
  4. built-in defaults

Examples:
  blahaj config
  blahaj config --difficulty easy > ~/.blahaj/configs/blahaj.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr, "blahaj")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, source, err := loadConfig(logger)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# source: %s\n", source)
	if flagDifficulty != "" {
		fmt.Fprintf(out, "# difficulty: %s\n", flagDifficulty)
	}
	_, err = out.Write(data)
	return err
}
