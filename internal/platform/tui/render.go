package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// palette maps core colors to ANSI 256 codes. Foam and the bright whites
// are bold so wave crests read on dim terminals.
var palette = [...]struct {
	code string
	bold bool
}{
	core.ColorDefault:       {"", false},
	core.ColorRed:           {"1", false},
	core.ColorGreen:         {"2", false},
	core.ColorYellow:        {"3", false},
	core.ColorBlue:          {"4", false},
	core.ColorMagenta:       {"5", false},
	core.ColorCyan:          {"6", false},
	core.ColorWhite:         {"7", false},
	core.ColorBrightRed:     {"9", false},
	core.ColorBrightGreen:   {"10", false},
	core.ColorBrightYellow:  {"11", false},
	core.ColorBrightBlue:    {"12", false},
	core.ColorBrightMagenta: {"13", false},
	core.ColorBrightCyan:    {"14", false},
	core.ColorBrightWhite:   {"15", true},
	core.ColorOrange:        {"208", false},
	core.ColorGray:          {"245", false},
	core.ColorDeepBlue:      {"24", false},
	core.ColorFoam:          {"195", true},
}

// colorStyles holds one lipgloss style per core color.
var colorStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for c, p := range palette {
		s := lipgloss.NewStyle()
		if p.code != "" {
			s = s.Foreground(lipgloss.Color(p.code))
		}
		if p.bold {
			s = s.Bold(true)
		}
		styles[c] = s
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(colorStyles) {
		return colorStyles[c]
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run, which keeps the
// escape sequences for a full pond of water down to a few per row.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		runColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				writeRun(&sb, &run, runColor)
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		writeRun(&sb, &run, runColor)
	}
	return sb.String()
}

// writeRun flushes a pending run of same-colored cells.
func writeRun(sb, run *strings.Builder, c core.Color) {
	if run.Len() == 0 {
		return
	}
	if c == core.ColorDefault {
		sb.WriteString(run.String())
	} else {
		sb.WriteString(styleFor(c).Render(run.String()))
	}
	run.Reset()
}
