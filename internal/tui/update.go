// pattern: Imperative Shell

package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"forkrebase/internal/forks"
	"forkrebase/internal/logging"
	"forkrebase/internal/rebase"
)

// maxLogEntries bounds the in-memory log panel backlog.
const maxLogEntries = 500

// batchEventMsg delivers one orchestrator event; ok is false once the batch
// channel is closed.
type batchEventMsg struct {
	event rebase.Event
	ok    bool
}

// logEntriesMsg delivers entries from the logging channel.
type logEntriesMsg struct {
	entries []logging.LogEntry
}

// baseDirChangedMsg signals that directories under the base dir changed.
type baseDirChangedMsg struct{}

// rescanDoneMsg carries the result of re-discovering forks.
type rescanDoneMsg struct {
	forks []*forks.Fork
	err   error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		layout := ComputeLayout(m.width, m.height, m.logPanelOpen)
		m.forkList.SetSize(m.width, layout.Content.Height)
		m.forkList.SetDelegate(m.currentDelegate())

		if m.logPanelOpen {
			m.sizeLogViewport(layout)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.rebasing {
			return m, nil
		}
		var cmd tea.Cmd
		m.statusSpinner, cmd = m.statusSpinner.Update(msg)
		m.forkList.SetDelegate(m.currentDelegate())
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case batchEventMsg:
		return m.handleBatchEvent(msg)

	case logEntriesMsg:
		m.logEntries = append(m.logEntries, msg.entries...)
		if len(m.logEntries) > maxLogEntries {
			m.logEntries = m.logEntries[len(m.logEntries)-maxLogEntries:]
		}
		if m.logPanelOpen && m.logReady {
			m.updateLogViewportContent()
		}
		return m, listenForLogs(m.logEntriesCh)

	case baseDirChangedMsg:
		if m.rebasing {
			// Never rescan under a running batch; pick it up afterwards.
			m.rescanPending = true
			return m, listenForChanges(m.changesCh)
		}
		return m, tea.Batch(m.rescan(), listenForChanges(m.changesCh))

	case rescanDoneMsg:
		if m.rebasing {
			// An idle-time rescan can finish after a batch has started.
			// Applying it would reset running rows and swap the forks the
			// batch is working on; redo it once the batch ends instead.
			m.rescanPending = true
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Rescan failed: %v", msg.err), true)
			return m, nil
		}
		m.setForks(msg.forks)
		m.forkList.SetItems(m.listItems())
		m.setStatus(fmt.Sprintf("Rescanned: %d forks", len(msg.forks)), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.forkList, cmd = m.forkList.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.rebasing {
			m.setStatus("Rebase in progress, wait for it to finish", true)
			return m, nil
		}
		return m, tea.Quit

	case " ":
		if m.rebasing {
			return m, nil
		}
		if item, ok := m.forkList.SelectedItem().(forkItem); ok {
			name := item.row.fork.Name
			if m.selected[name] {
				delete(m.selected, name)
			} else {
				m.selected[name] = true
			}
		}
		return m, nil

	case "esc":
		if !m.rebasing {
			for name := range m.selected {
				delete(m.selected, name)
			}
		}
		return m, nil

	case "enter", "r":
		if m.rebasing {
			return m, nil
		}
		return m.startBatch()

	case "l":
		m.logPanelOpen = !m.logPanelOpen
		layout := ComputeLayout(m.width, m.height, m.logPanelOpen)
		m.forkList.SetSize(m.width, layout.Content.Height)
		if m.logPanelOpen {
			m.sizeLogViewport(layout)
			m.updateLogViewportContent()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.forkList, cmd = m.forkList.Update(msg)
	return m, cmd
}

// startBatch launches the orchestrator over the marked forks (or all when
// nothing is marked) and begins consuming its events.
func (m Model) startBatch() (tea.Model, tea.Cmd) {
	targets := m.batchTargets()
	if len(targets) == 0 {
		return m, nil
	}

	for _, fork := range targets {
		row := m.rows[fork.Name]
		row.status = ""
		row.state = rowIdle
	}

	m.rebasing = true
	m.doneCount = 0
	m.failCount = 0
	m.batchSize = len(targets)
	m.batchCh = make(chan rebase.Event, 16)
	m.setStatus("", false)
	m.logger.Infow("batch rebase starting", "forks", len(targets))

	go m.orchestrator.Run(context.Background(), targets, m.upstreamURL, m.batchCh)

	return m, tea.Batch(waitForBatchEvent(m.batchCh), m.statusSpinner.Tick)
}

func (m Model) handleBatchEvent(msg batchEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.rebasing = false
		m.forkList.SetDelegate(m.currentDelegate())
		m.setStatus(fmt.Sprintf("Batch finished: %d ok, %d failed", m.doneCount, m.failCount), m.failCount > 0)
		if m.rescanPending {
			m.rescanPending = false
			return m, m.rescan()
		}
		return m, nil
	}

	if row, ok := m.rows[msg.event.Fork]; ok {
		if msg.event.Remotes != nil {
			// Remote maps are handed over via the event so the fork the
			// delegate renders is only ever written on this goroutine.
			row.fork.Remotes = msg.event.Remotes
		}
		row.status = msg.event.Status
		switch msg.event.State {
		case rebase.StateRunning:
			row.state = rowRunning
		case rebase.StateDone:
			row.state = rowDone
			m.doneCount++
		case rebase.StateFailed:
			row.state = rowFailed
			m.failCount++
		}
	}
	return m, waitForBatchEvent(m.batchCh)
}

// rescan re-discovers forks. The startup invariants still hold afterwards:
// every fork on master, consensus upstream unchanged.
func (m Model) rescan() tea.Cmd {
	scanner := m.scanner
	baseDir := m.baseDir
	upstreamURL := m.upstreamURL
	return func() tea.Msg {
		found, err := scanner.Scan(context.Background(), baseDir)
		if err != nil {
			return rescanDoneMsg{err: err}
		}
		if err := forks.RequireBranch(found, "master"); err != nil {
			return rescanDoneMsg{err: err}
		}
		url, err := forks.FindUpstream(found)
		if err != nil {
			return rescanDoneMsg{err: err}
		}
		if url != upstreamURL {
			return rescanDoneMsg{err: fmt.Errorf("upstream changed to %s, restart to pick it up", url)}
		}
		return rescanDoneMsg{forks: found}
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.statusMsg = text
	m.statusIsError = isError
}

func (m *Model) currentDelegate() forkDelegate {
	d := newForkDelegate(m.styles, m.selected).WithLayout(m.width)
	if m.rebasing {
		d = d.WithSpinnerFrame(m.statusSpinner.View())
	}
	return d
}

func (m *Model) sizeLogViewport(layout Layout) {
	if !m.logReady {
		m.logViewport = viewport.New(layout.Logs.Width, layout.Logs.Height)
		m.logReady = true
	} else {
		m.logViewport.Width = layout.Logs.Width
		m.logViewport.Height = layout.Logs.Height
	}
}

func (m *Model) updateLogViewportContent() {
	var lines string
	for i, entry := range m.logEntries {
		if i > 0 {
			lines += "\n"
		}
		lines += entry.String()
	}
	m.logViewport.SetContent(lines)
	m.logViewport.GotoBottom()
}

// waitForBatchEvent returns a command that waits for the next orchestrator
// event; a closed channel ends the batch.
func waitForBatchEvent(events chan rebase.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		return batchEventMsg{event: event, ok: ok}
	}
}

// listenForLogs blocks on the next log entry, then drains whatever else is
// already buffered so bursts arrive as one message.
func listenForLogs(entries <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		first, ok := <-entries
		if !ok {
			return nil
		}
		batch := []logging.LogEntry{first}
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return logEntriesMsg{entries: batch}
				}
				batch = append(batch, entry)
			default:
				return logEntriesMsg{entries: batch}
			}
		}
	}
}

// listenForChanges blocks on the next base directory change notification.
func listenForChanges(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return baseDirChangedMsg{}
	}
}
