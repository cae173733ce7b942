package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestViewShowsUpstreamAndForks(t *testing.T) {
	m := newTestModel(&fakeGit{}, "alpha", "beta")

	view := m.View()
	for _, want := range []string{"Widget Project", "git@example.com:acme/widget.git", "alpha", "beta", "Status"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewStatusBarHelpWhenIdle(t *testing.T) {
	m := newTestModel(&fakeGit{}, "a")

	if !strings.Contains(m.View(), "rebase marked") {
		t.Error("idle status bar should show key help")
	}
}

func TestViewStatusBarProgressWhileRebasing(t *testing.T) {
	m := newTestModel(&fakeGit{}, "a", "b", "c")
	m.rebasing = true
	m.batchSize = 3
	m.doneCount = 1

	if !strings.Contains(m.View(), "1/3") {
		t.Error("status bar should show batch progress")
	}
}

func TestViewShowsRowStatus(t *testing.T) {
	m := newTestModel(&fakeGit{}, "a")
	m.rows["a"].status = "Rebasing against upstream/master"
	m.rows["a"].state = rowRunning

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m = updated.(Model)

	if !strings.Contains(m.View(), "Rebasing against") {
		t.Error("row status text should render in the table")
	}
}

func TestClipTruncatesLongCells(t *testing.T) {
	long := strings.Repeat("x", 50)
	clipped := clip(long, 10)
	if len(clipped) > 13 { // 9 cells + multibyte ellipsis
		t.Errorf("clip result too long: %q", clipped)
	}
	if !strings.HasSuffix(clipped, "…") {
		t.Errorf("clip should end with ellipsis, got %q", clipped)
	}
}
