package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"forkrebase/internal/forks"
	"forkrebase/internal/logging"
	"forkrebase/internal/rebase"
)

// rowState classifies a fork row during a batch.
type rowState int

const (
	rowIdle rowState = iota
	rowRunning
	rowDone
	rowFailed
)

// forkRow is the view-model for one fork, keyed by fork name. The
// orchestrator's events mutate it; the delegate renders it.
type forkRow struct {
	fork   *forks.Fork
	status string
	state  rowState
}

// Params carries everything the model needs from startup.
type Params struct {
	BaseDir      string
	UpstreamURL  string
	UpstreamName string
	Forks        []*forks.Fork
	Scanner      *forks.Scanner
	Orchestrator *rebase.Orchestrator
	Logger       *zap.SugaredLogger
	LogEntries   <-chan logging.LogEntry
	Changes      <-chan struct{} // base directory change notifications, may be nil
	Theme        string
}

// Model is the TUI application state.
type Model struct {
	width  int
	height int
	styles *Styles

	baseDir      string
	upstreamURL  string
	upstreamName string

	scanner      *forks.Scanner
	orchestrator *rebase.Orchestrator
	logger       *zap.SugaredLogger
	logEntriesCh <-chan logging.LogEntry
	changesCh    <-chan struct{}

	forkList list.Model
	rows     map[string]*forkRow
	order    []string
	selected map[string]bool

	rebasing      bool
	doneCount     int
	failCount     int
	batchSize     int
	batchCh       chan rebase.Event
	rescanPending bool

	logPanelOpen bool
	logReady     bool
	logViewport  viewport.Model
	logEntries   []logging.LogEntry

	statusSpinner spinner.Model
	statusMsg     string
	statusIsError bool
}

// NewModel creates the TUI model from the discovered forks.
func NewModel(p Params) Model {
	styles := NewStyles(p.Theme)
	selected := make(map[string]bool)

	statusSpinner := spinner.New()
	statusSpinner.Spinner = spinner.Dot
	statusSpinner.Style = styles.AccentStyle()

	m := Model{
		styles:        styles,
		baseDir:       p.BaseDir,
		upstreamURL:   p.UpstreamURL,
		upstreamName:  p.UpstreamName,
		scanner:       p.Scanner,
		orchestrator:  p.Orchestrator,
		logger:        p.Logger,
		logEntriesCh:  p.LogEntries,
		changesCh:     p.Changes,
		selected:      selected,
		statusSpinner: statusSpinner,
	}
	m.setForks(p.Forks)

	delegate := newForkDelegate(styles, selected)
	forkList := list.New(m.listItems(), delegate, 0, 0)
	forkList.SetShowTitle(false)
	forkList.SetShowStatusBar(false)
	forkList.SetFilteringEnabled(false)
	forkList.SetShowHelp(false)
	forkList.SetShowPagination(false)
	m.forkList = forkList

	return m
}

// setForks rebuilds the row view-model, keeping marks on surviving names.
func (m *Model) setForks(all []*forks.Fork) {
	rows := make(map[string]*forkRow, len(all))
	order := make([]string, 0, len(all))
	for _, fork := range all {
		rows[fork.Name] = &forkRow{fork: fork}
		order = append(order, fork.Name)
	}
	for name := range m.selected {
		if _, ok := rows[name]; !ok {
			delete(m.selected, name)
		}
	}
	m.rows = rows
	m.order = order
}

// listItems converts the row view-model into list items in fork order.
func (m *Model) listItems() []list.Item {
	items := make([]list.Item, len(m.order))
	for i, name := range m.order {
		items[i] = forkItem{row: m.rows[name]}
	}
	return items
}

// batchTargets returns the forks a rebase invocation acts on: the marked
// subset, or every fork when nothing is marked. Order follows the table.
func (m *Model) batchTargets() []*forks.Fork {
	var targets []*forks.Fork
	for _, name := range m.order {
		if len(m.selected) == 0 || m.selected[name] {
			targets = append(targets, m.rows[name].fork)
		}
	}
	return targets
}

// Init returns the initial commands: spinner ticks plus the log and
// base-directory listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.statusSpinner.Tick}
	if m.logEntriesCh != nil {
		cmds = append(cmds, listenForLogs(m.logEntriesCh))
	}
	if m.changesCh != nil {
		cmds = append(cmds, listenForChanges(m.changesCh))
	}
	return tea.Batch(cmds...)
}
