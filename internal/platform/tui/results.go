package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blahaj-tide/internal/storage"
)

// leaderboardSize is how many runs the results board lists.
const leaderboardSize = 5

// Leaderboard is the table of best runs shown under the results screen.
type Leaderboard struct {
	table   table.Model
	runs    []storage.Run
	current int64 // ID of the run that just finished, 0 if none
	rank    int
}

// NewLeaderboard creates an empty board sized for the given width.
func NewLeaderboard(width int) Leaderboard {
	lb := Leaderboard{}
	lb.table = newRunTable(width)
	return lb
}

// newRunTable creates a table with appropriate columns.
func newRunTable(width int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Fish", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Mode", Width: 7},
		{Title: "When", Width: 12},
	}

	// Give spare room to the player name
	if extra := width - 4 - 51; extra > 0 {
		columns[2].Width += min(extra, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(leaderboardSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Load refreshes the board from the store and highlights the run with the
// given ID. A nil store leaves the board empty.
func (lb *Leaderboard) Load(store *storage.Store, gameID string, current int64, score int) error {
	lb.current = current
	lb.rank = 0
	if store == nil {
		lb.runs = nil
		lb.updateRows()
		return nil
	}

	runs, err := store.TopRuns(gameID, leaderboardSize)
	if err != nil {
		lb.runs = nil
		lb.updateRows()
		return err
	}
	lb.runs = runs
	if current != 0 {
		if rank, rankErr := store.Rank(gameID, score); rankErr == nil {
			lb.rank = rank
		}
	}
	lb.updateRows()
	return nil
}

// Len returns the number of listed runs.
func (lb *Leaderboard) Len() int {
	return len(lb.runs)
}

func (lb *Leaderboard) updateRows() {
	rows := make([]table.Row, len(lb.runs))
	cursor := -1
	for i, r := range lb.runs {
		mode := r.Difficulty
		if mode == "" {
			mode = "normal"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Player,
			mode,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if r.ID == lb.current {
			cursor = i
		}
	}
	lb.table.SetRows(rows)

	// The selected row style marks the run that just finished
	if cursor >= 0 {
		lb.table.Focus()
		lb.table.SetCursor(cursor)
	} else {
		lb.table.Blur()
		lb.table.GotoTop()
	}
}

// View renders the board, or nothing when there are no runs.
func (lb Leaderboard) View() string {
	if len(lb.runs) == 0 {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "BEST RUNS"
	if lb.rank > 0 {
		title = fmt.Sprintf("BEST RUNS  (you placed #%d)", lb.rank)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(lb.table.View()))
	return b.String()
}
