package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mydehq/showtitle"
)

func TestScanDoneShowsPlan(t *testing.T) {
	m := NewModel(t.TempDir())
	m.state = stateScanning

	ops := []showtitle.RenameOperation{
		{SourcePath: "/in/Phish 2023-07-14.mkv", TargetPath: "/out/Phish/2023/Phish - 2023-07-14.mkv", Status: showtitle.StatusPending},
		{SourcePath: "/in/random clip.mkv", Status: showtitle.StatusSkipped, Reason: "no show date"},
	}
	next, _ := m.Update(scanDoneMsg{files: []string{"a", "b"}, ops: ops})
	got := next.(Model)

	if got.state != stateConfirmation {
		t.Fatalf("state = %v; want confirmation", got.state)
	}
	rows := got.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d; want 2", len(rows))
	}
	if rows[0][0] != "Phish 2023-07-14.mkv" {
		t.Errorf("rows[0] source = %q", rows[0][0])
	}
	if rows[1][1] != "(no show date)" {
		t.Errorf("rows[1] target = %q; want skip reason", rows[1][1])
	}
	if n := pendingCount(got.ops); n != 1 {
		t.Errorf("pendingCount() = %d; want 1", n)
	}
}

func TestScanErrorReturnsToStart(t *testing.T) {
	m := NewModel(t.TempDir())
	m.state = stateScanning

	next, _ := m.Update(scanDoneMsg{err: errors.New("boom")})
	got := next.(Model)
	if got.state != stateInitial || got.err == nil {
		t.Errorf("state = %v, err = %v; want initial with error", got.state, got.err)
	}
}

func TestRootInput(t *testing.T) {
	m := NewModel(t.TempDir())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = next.(Model)
	if m.state != stateRootInput {
		t.Fatalf("state = %v; want root input", m.state)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != stateInitial {
		t.Errorf("state after esc = %v; want initial", m.state)
	}
}

func TestView(t *testing.T) {
	m := NewModel(t.TempDir())
	if got := m.View(); got != "Starting..." {
		t.Errorf("View() before resize = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "SHOWTITLE") || !strings.Contains(view, "Press Enter to Scan Directory") {
		t.Errorf("View() = %q", view)
	}
}
