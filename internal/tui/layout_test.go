package tui

import "testing"

func TestComputeLayoutWithoutLogPanel(t *testing.T) {
	layout := ComputeLayout(100, 30, false)

	if layout.Header.Height != headerHeight {
		t.Errorf("header height = %d", layout.Header.Height)
	}
	if layout.Logs.Height != 0 {
		t.Errorf("logs height = %d, want 0", layout.Logs.Height)
	}

	total := layout.Header.Height + layout.Content.Height + layout.StatusBar.Height
	if total != 30 {
		t.Errorf("regions sum to %d, want 30", total)
	}
	if layout.StatusBar.Y != layout.Content.Y+layout.Content.Height {
		t.Error("status bar must sit directly under the table")
	}
}

func TestComputeLayoutWithLogPanel(t *testing.T) {
	layout := ComputeLayout(100, 30, true)

	if layout.Logs.Height == 0 {
		t.Fatal("log panel must get space when open")
	}
	if layout.Separator.Height != separatorHeight {
		t.Errorf("separator height = %d", layout.Separator.Height)
	}
	if layout.Content.Height >= ComputeLayout(100, 30, false).Content.Height {
		t.Error("table must shrink when the log panel opens")
	}

	total := layout.Header.Height + layout.Content.Height +
		layout.Separator.Height + layout.Logs.Height + layout.StatusBar.Height
	if total != 30 {
		t.Errorf("regions sum to %d, want 30", total)
	}
}

func TestComputeLayoutTinyTerminal(t *testing.T) {
	layout := ComputeLayout(20, 3, true)
	if layout.Content.Height < 1 {
		t.Errorf("content height = %d, want >= 1", layout.Content.Height)
	}
}

func TestComputeColumns(t *testing.T) {
	for _, width := range []int{40, 80, 120, 200} {
		columns := ComputeColumns(width)
		for name, w := range map[string]int{
			"name":   columns.Name,
			"path":   columns.Path,
			"repo":   columns.Repo,
			"status": columns.Status,
		} {
			if w < 1 {
				t.Errorf("width %d: %s column = %d, want >= 1", width, name, w)
			}
		}
		sum := columns.Name + columns.Path + columns.Repo + columns.Status
		if width >= 60 && sum+rowChromeWidth > width {
			t.Errorf("width %d: columns overflow: %d", width, sum+rowChromeWidth)
		}
	}
}
