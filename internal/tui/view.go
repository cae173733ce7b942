// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI.
func (m Model) View() string {
	layout := ComputeLayout(m.width, m.height, m.logPanelOpen)

	parts := []string{
		m.renderHeader(layout),
		m.forkList.View(),
	}

	if m.logPanelOpen {
		separator := lipgloss.NewStyle().
			Width(layout.Separator.Width).
			Foreground(lipgloss.Color(m.styles.flavor.Surface1().Hex)).
			Render(strings.Repeat("─", max(layout.Separator.Width, 1)))
		parts = append(parts, separator, m.logViewport.View())
	}

	parts = append(parts, m.renderStatusBar(layout.StatusBar.Width))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(layout Layout) string {
	title := m.styles.TitleStyle().
		Render(fmt.Sprintf("Rebasing forks of %s", m.upstreamName))

	subtitle := m.styles.SubtitleStyle().
		Render(fmt.Sprintf("Upstream: %s  •  Base: %s", m.upstreamURL, m.baseDir))

	columns := ComputeColumns(layout.Header.Width)
	headerLine := fmt.Sprintf("    %s %s %s %s",
		pad("Name", columns.Name),
		pad("Path", columns.Path),
		pad("Repository", columns.Repo),
		pad("Status", columns.Status),
	)
	columnHeaders := m.styles.ColumnHeaderStyle().Render(headerLine)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, columnHeaders)
}

func (m Model) renderStatusBar(width int) string {
	var content string
	switch {
	case m.rebasing:
		done := m.doneCount + m.failCount
		content = m.styles.AccentStyle().Render(
			fmt.Sprintf("%s Rebasing… %d/%d forks", m.statusSpinner.View(), done, m.batchSize))
	case m.statusIsError:
		content = m.styles.ErrorStyle().Render(m.statusMsg)
	case m.statusMsg != "":
		content = m.styles.InfoStyle().Render(m.statusMsg)
	default:
		content = m.styles.HelpStyle().Render(
			"↑/↓ move • space mark • enter rebase marked (all if none) • l logs • q quit")
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

// pad right-pads a column header to its column width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
