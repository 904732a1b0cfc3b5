// Package tui is a full screen front end that scans a directory, shows the
// planned moves and applies them.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/ui"
)

type state int

const (
	stateInitial state = iota
	stateScanning
	stateRootInput
	stateConfirmation
	stateRenaming
	stateFinished
)

var (
	titleStyle    = ui.StyleCommand
	subTitleStyle = ui.StyleDim

	infoStyle    = ui.StyleCommand
	successStyle = ui.StyleHeader
	warningStyle = ui.StylePattern
	errorStyle   = ui.StylePath

	actionBarMsgStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Background(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Padding(0, 1)

	actionBarKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "57", Dark: "57"}).
				Background(lipgloss.AdaptiveColor{Light: "229", Dark: "229"}).
				Padding(0, 1).
				Bold(true)
)

type scanDoneMsg struct {
	files   []string
	records []showtitle.Record
	ops     []showtitle.RenameOperation
	err     error
}

type eventMsg showtitle.Event

type renameDoneMsg struct {
	ops []showtitle.RenameOperation
	err error
}

type Model struct {
	state    state
	path     string
	opts     []showtitle.Option
	root     string
	err      error
	quitting bool

	table   table.Model
	input   textinput.Model
	files   []string
	records []showtitle.Record
	ops     []showtitle.RenameOperation

	events []string

	width     int
	height    int
	eventChan chan showtitle.Event
}

// NewModel returns the model for organizing the videos in path. opts are
// passed to every scan and rename.
func NewModel(path string, opts ...showtitle.Option) Model {
	absPath, _ := filepath.Abs(path)

	columns := []table.Column{
		{Title: "Source File", Width: 40},
		{Title: "Target", Width: 40},
		{Title: "Status", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "~/Concerts"
	ti.CharLimit = 512
	ti.Width = 50

	return Model{
		state: stateInitial,
		path:  absPath,
		opts:  opts,
		table: t,
		input: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateRootInput {
			switch msg.String() {
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				m.state = stateInitial
				return m, nil
			case "enter":
				m.root = strings.TrimSpace(m.input.Value())
				m.input.Blur()
				return m.startScan()
			}
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.state == stateInitial || m.state == stateConfirmation || m.state == stateFinished {
				m.quitting = true
				return m, tea.Quit
			}

		case "o":
			if m.state == stateInitial || m.state == stateConfirmation || m.state == stateFinished {
				m.state = stateRootInput
				m.input.SetValue(m.root)
				m.input.Focus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == stateInitial || m.state == stateFinished {
				return m.startScan()
			} else if m.state == stateConfirmation && pendingCount(m.ops) > 0 {
				m.state = stateRenaming
				m.err = nil
				m.events = nil
				m.eventChan = make(chan showtitle.Event)
				cmds = append(cmds, m.runRename(), m.listenForEvents())
			}

		case "backspace":
			if m.state == stateConfirmation {
				m.state = stateInitial
				return m, nil
			}
		}

	case scanDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateInitial
			return m, nil
		}
		m.files = msg.files
		m.records = msg.records
		m.ops = msg.ops
		m.state = stateConfirmation
		m.updateTable()

	case eventMsg:
		var styledMsg string
		switch msg.Type {
		case showtitle.EventSuccess:
			styledMsg = successStyle.Render(msg.Message)
		case showtitle.EventWarning:
			styledMsg = warningStyle.Render(msg.Message)
		case showtitle.EventError:
			styledMsg = errorStyle.Render(msg.Message)
		default:
			styledMsg = infoStyle.Render(msg.Message)
		}

		m.events = append(m.events, fmt.Sprintf("[%s] %s", msg.Type, styledMsg))
		if len(m.events) > 100 {
			m.events = m.events[len(m.events)-100:]
		}
		return m, m.listenForEvents()

	case renameDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateInitial
			return m, nil
		}
		m.ops = msg.ops
		m.state = stateFinished
		m.updateTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTable()

	case error:
		m.err = msg
		return m, nil
	}

	switch m.state {
	case stateConfirmation, stateFinished, stateRenaming:
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) startScan() (tea.Model, tea.Cmd) {
	m.state = stateScanning
	m.err = nil
	m.ops = nil
	m.updateTable()
	return m, m.scanDir()
}

// options returns the caller's options plus the output root override.
func (m Model) options(extra ...showtitle.Option) []showtitle.Option {
	opts := append([]showtitle.Option{}, m.opts...)
	if m.root != "" {
		opts = append(opts, showtitle.WithOutputRoot(m.root))
	}
	return append(opts, extra...)
}

func (m *Model) updateTable() {
	var rows []table.Row
	for _, op := range m.ops {
		status := "Pending"
		target := op.TargetPath
		switch op.Status {
		case showtitle.StatusSuccess:
			status = successStyle.Render("Moved")
		case showtitle.StatusFailed:
			status = errorStyle.Render("Failed")
		case showtitle.StatusSkipped:
			status = warningStyle.Render("Skipped")
			if target == "" {
				target = "(" + op.Reason + ")"
			}
		}
		rows = append(rows, table.Row{filepath.Base(op.SourcePath), target, status})
	}
	m.table.SetRows(rows)
}

func (m *Model) resizeTable() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	totalW := m.width - 4
	statusW := 10
	sourceW := (totalW - statusW) * 2 / 5
	if sourceW < 10 {
		sourceW = 10
	}
	targetW := totalW - statusW - sourceW
	if targetW < 10 {
		targetW = 10
	}

	m.table.SetColumns([]table.Column{
		{Title: "Source File", Width: sourceW},
		{Title: "Target", Width: targetW},
		{Title: "Status", Width: statusW},
	})

	headerH := 4
	footerH := 2
	contentH := m.height - headerH - footerH

	if m.state == stateRenaming {
		contentH = contentH / 2
	}
	if contentH < 5 {
		contentH = 5
	}

	m.table.SetHeight(contentH - 2)
}

func (m Model) scanDir() tea.Cmd {
	opts := m.options(showtitle.WithDryRun())
	path := m.path
	return func() tea.Msg {
		ctx := context.Background()
		files, records, err := showtitle.Inspect(path, opts...)
		if err != nil || len(files) == 0 {
			return scanDoneMsg{err: err}
		}
		ops, err := showtitle.Apply(ctx, files, records, opts...)
		return scanDoneMsg{files: files, records: records, ops: ops, err: err}
	}
}

func (m Model) listenForEvents() tea.Cmd {
	ch := m.eventChan
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(e)
	}
}

func (m Model) runRename() tea.Cmd {
	ch := m.eventChan
	files, records := m.files, m.records
	opts := m.options(showtitle.WithEvents(func(e showtitle.Event) {
		ch <- e
	}))
	return func() tea.Msg {
		defer close(ch)
		ops, err := showtitle.Apply(context.Background(), files, records, opts...)
		return renameDoneMsg{ops: ops, err: err}
	}
}

func pendingCount(ops []showtitle.RenameOperation) int {
	n := 0
	for _, op := range ops {
		if op.Status == showtitle.StatusPending {
			n++
		}
	}
	return n
}

func (m Model) renderActionBar(actions []string) string {
	var rendered []string
	for _, a := range actions {
		parts := strings.SplitN(a, " ", 2)
		if len(parts) == 2 {
			rendered = append(rendered, actionBarKeyStyle.Render(parts[0])+actionBarMsgStyle.Render(parts[1]))
		}
	}
	bar := strings.Join(rendered, lipgloss.NewStyle().Background(lipgloss.Color("57")).Render("  "))

	padW := m.width - lipgloss.Width(bar)
	if padW < 0 {
		padW = 0
	}
	padding := lipgloss.NewStyle().Background(lipgloss.Color("57")).Render(strings.Repeat(" ", padW))

	return bar + padding
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	if m.width <= 0 || m.height <= 0 {
		return "Starting..."
	}

	var s strings.Builder

	header := fmt.Sprintf("%s  %s", titleStyle.Render("SHOWTITLE"), subTitleStyle.Render("DIR: "+m.path))
	if m.root != "" {
		header += "  " + subTitleStyle.Render("OUT: "+m.root)
	}
	s.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(header))
	s.WriteString("\n")

	var contentView string
	var actionBarView string
	center := func(content string) string {
		return lipgloss.Place(m.width, m.height-6, lipgloss.Center, lipgloss.Center, content)
	}

	switch m.state {
	case stateInitial:
		if m.err != nil {
			contentView = center(errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Enter to try again.", m.err)))
		} else {
			contentView = center("Press Enter to Scan Directory")
		}
		actionBarView = m.renderActionBar([]string{"Enter Scan", "o Output", "q Quit"})

	case stateRootInput:
		prompt := lipgloss.NewStyle().Bold(true).Render("Output root (empty for the configured one):")
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(1, 2).
			Render(prompt + "\n\n" + m.input.View())
		contentView = center(box)
		actionBarView = m.renderActionBar([]string{"Enter Scan", "Esc Cancel"})

	case stateScanning:
		contentView = center(infoStyle.Render("Scanning directory and inferring shows..."))
		actionBarView = m.renderActionBar([]string{"ctrl+c Abort"})

	case stateConfirmation:
		if len(m.ops) == 0 {
			contentView = center("No video files found.")
			actionBarView = m.renderActionBar([]string{"Enter Rescan", "o Output", "q Quit"})
		} else {
			statStr := subTitleStyle.Render(fmt.Sprintf("%d of %d files ready to move.", pendingCount(m.ops), len(m.ops)))
			contentView = lipgloss.NewStyle().Padding(0, 2).Render(statStr + "\n\n" + m.table.View())
			actionBarView = m.renderActionBar([]string{"Enter Move Files", "Backspace Back", "o Output", "↑/↓ Scroll", "q Quit"})
		}

	case stateRenaming:
		statStr := infoStyle.Render("Moving files...")
		tableView := lipgloss.NewStyle().Padding(0, 2).Render(statStr + "\n\n" + m.table.View())

		logH := (m.height - 6) / 2
		if logH < 5 {
			logH = 5
		}
		maxLogs := logH - 2
		if maxLogs < 0 {
			maxLogs = 0
		}

		startIdx := 0
		if len(m.events) > maxLogs {
			startIdx = len(m.events) - maxLogs
		}
		var logBuilder strings.Builder
		if logLines := m.events[startIdx:]; len(logLines) == 0 {
			logBuilder.WriteString(subTitleStyle.Render("Waiting for events..."))
		} else {
			logBuilder.WriteString(strings.Join(logLines, "\n"))
		}

		logBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(m.width - 6).
			Height(maxLogs + 1).
			Render(titleStyle.Render("Event Logs") + "\n" + logBuilder.String())

		logView := lipgloss.NewStyle().Padding(1, 2).Render(logBox)

		contentView = lipgloss.JoinVertical(lipgloss.Left, tableView, logView)
		actionBarView = m.renderActionBar([]string{"ctrl+c Abort Operation"})

	case stateFinished:
		moved, failed := 0, 0
		for _, op := range m.ops {
			switch op.Status {
			case showtitle.StatusSuccess:
				moved++
			case showtitle.StatusFailed:
				failed++
			}
		}

		text := fmt.Sprintf("%s\nMoved %d files.", successStyle.Bold(true).Render("COMPLETED"), moved)
		if failed > 0 {
			text += "\n" + errorStyle.Render(fmt.Sprintf("%d files failed.", failed))
		}
		summary := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).BorderForeground(lipgloss.Color("34")).Render(text)

		contentView = center(summary)
		actionBarView = m.renderActionBar([]string{"Enter Rescan", "o Output", "q Quit"})
	}

	s.WriteString(contentView)

	// keep the action bar on the last line
	currentLines := strings.Count(s.String(), "\n")
	neededNewLines := (m.height - 2) - currentLines
	if neededNewLines > 0 {
		s.WriteString(strings.Repeat("\n", neededNewLines))
	} else {
		s.WriteString("\n")
	}
	s.WriteString(actionBarView)

	return s.String()
}
