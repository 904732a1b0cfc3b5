package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/tui"
)

func main() {
	path := "."
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// log output would corrupt the alt screen
	showtitle.SetLogger(log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel}))

	p := tea.NewProgram(tui.NewModel(path), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
