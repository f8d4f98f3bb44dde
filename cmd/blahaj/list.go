package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games and difficulty presets",
	Long:  `Shows the registered games and the difficulty presets they accept.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	head := lipgloss.NewStyle().Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	idWidth := 2 // "ID" header
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}
	col := lipgloss.NewStyle().Width(idWidth + 2)

	fmt.Fprintln(out, head.Render(col.Render("ID")+"Title"))
	for _, g := range games {
		fmt.Fprintln(out, col.Render(idStyle.Render(g.ID))+g.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, head.Render("Difficulty presets"))
	for _, p := range []config.DifficultyPreset{
		config.DifficultyEasy,
		config.DifficultyNormal,
		config.DifficultyHard,
		config.DifficultyFixed,
	} {
		cfg := config.DefaultBlahajConfig()
		config.ApplyBlahajPreset(&cfg, p)
		fmt.Fprintf(out, "  %-7s %3d fish, %3ds, bite %.1fx", p, cfg.Prey.Count, cfg.Session.DurationSeconds, cfg.Prey.CaptureFactor)
		if cfg.Player.GrowthPerPrey == 0 {
			fmt.Fprint(out, ", no growth")
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'blahaj play --difficulty <preset>' to play.")
}
