// pattern: Imperative Shell

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// forkItem wraps a fork row for display in the table list.
type forkItem struct {
	row *forkRow
}

// Title returns the fork name.
func (i forkItem) Title() string {
	return i.row.fork.Name
}

// Description returns the fork's current status text.
func (i forkItem) Description() string {
	return i.row.status
}

// FilterValue returns the value to filter on.
func (i forkItem) FilterValue() string {
	return i.row.fork.Name
}

// forkDelegate renders fork rows as table lines: name, path, origin URL and
// live status. The selected map is shared with the model so marks render
// without rebuilding the delegate.
type forkDelegate struct {
	styles       *Styles
	selected     map[string]bool
	columns      Columns
	spinnerFrame string
}

func newForkDelegate(styles *Styles, selected map[string]bool) forkDelegate {
	return forkDelegate{
		styles:   styles,
		selected: selected,
		columns:  ComputeColumns(80),
	}
}

// WithLayout returns a delegate sized for the given table width.
func (d forkDelegate) WithLayout(width int) forkDelegate {
	d.columns = ComputeColumns(width)
	return d
}

// WithSpinnerFrame returns a delegate with the current spinner frame, shown
// on rows whose pipeline is running.
func (d forkDelegate) WithSpinnerFrame(frame string) forkDelegate {
	d.spinnerFrame = frame
	return d
}

// Height returns the height of a single row.
func (d forkDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between rows.
func (d forkDelegate) Spacing() int {
	return 0
}

// Update handles item-specific updates.
func (d forkDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single fork row.
func (d forkDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(forkItem)
	if !ok {
		return
	}
	row := fi.row
	isCursor := index == m.Index()

	cursor := "  "
	if isCursor {
		cursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color(d.styles.flavor.Mauve().Hex)).
			Render("▸ ")
	}

	mark := "  "
	if d.selected[row.fork.Name] {
		mark = d.styles.AccentStyle().Render("✓ ")
	}

	nameStyle := lipgloss.NewStyle().
		Foreground(d.styles.StatusColor(row.state)).
		Width(d.columns.Name)
	if isCursor {
		nameStyle = nameStyle.Bold(true)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(d.styles.flavor.Subtext0().Hex))

	statusText := row.status
	if row.state == rowRunning && d.spinnerFrame != "" {
		statusText = d.spinnerFrame + " " + statusText
	}
	statusStyle := lipgloss.NewStyle().
		Foreground(d.styles.StatusColor(row.state)).
		Width(d.columns.Status)

	_, _ = fmt.Fprintf(w, "%s%s%s %s %s %s",
		cursor,
		mark,
		nameStyle.Render(clip(row.fork.Name, d.columns.Name)),
		dimStyle.Width(d.columns.Path).Render(clip(row.fork.Path, d.columns.Path)),
		dimStyle.Width(d.columns.Repo).Render(clip(row.fork.Origin(), d.columns.Repo)),
		statusStyle.Render(clip(statusText, d.columns.Status)),
	)
}

// clip truncates a cell to its column width, ANSI and wide-rune aware.
func clip(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
