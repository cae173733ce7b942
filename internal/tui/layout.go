// pattern: Functional Core

package tui

// Region defines a rectangular area within the terminal.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layout holds computed regions for the UI components.
type Layout struct {
	Header    Region // Title + upstream line + column headers
	Content   Region // Fork table
	Separator Region // Separator above the log panel (1 line when open)
	Logs      Region // Log panel when open
	StatusBar Region // Status bar (1 line)
}

const (
	headerHeight    = 3 // Title + upstream subtitle + column headers
	statusBarHeight = 1
	separatorHeight = 1
)

// ComputeLayout calculates regions from the terminal dimensions. When the
// log panel is open the area below the header splits 60/40 (table/logs).
func ComputeLayout(width, height int, logPanelOpen bool) Layout {
	available := height - headerHeight - statusBarHeight
	if available < 4 {
		available = 4
	}

	var contentHeight, logsHeight int
	if logPanelOpen {
		logsHeight = int(float64(available) * 0.4)
		contentHeight = available - logsHeight - separatorHeight
	} else {
		contentHeight = available
	}

	y := 0
	header := Region{X: 0, Y: y, Width: width, Height: headerHeight}
	y += headerHeight

	content := Region{X: 0, Y: y, Width: width, Height: contentHeight}
	y += contentHeight

	var separator, logs Region
	if logPanelOpen {
		separator = Region{X: 0, Y: y, Width: width, Height: separatorHeight}
		y += separatorHeight
		logs = Region{X: 0, Y: y, Width: width, Height: logsHeight}
		y += logsHeight
	}

	statusBar := Region{X: 0, Y: y, Width: width, Height: statusBarHeight}

	return Layout{
		Header:    header,
		Content:   content,
		Separator: separator,
		Logs:      logs,
		StatusBar: statusBar,
	}
}

// Columns holds the widths of the fork table columns.
type Columns struct {
	Name   int
	Path   int
	Repo   int
	Status int
}

// Row chrome: cursor (2 cells) + mark (2 cells) + 3 column gaps.
const rowChromeWidth = 2 + 2 + 3

// ComputeColumns splits the table width between the name, path, repository
// and status columns.
func ComputeColumns(width int) Columns {
	usable := width - rowChromeWidth
	if usable < 40 {
		usable = 40
	}

	name := usable / 5
	if name > 24 {
		name = 24
	}
	status := usable / 3
	if status > 36 {
		status = 36
	}

	rest := usable - name - status
	path := rest * 2 / 5
	repo := rest - path

	return Columns{Name: name, Path: path, Repo: repo, Status: status}
}
