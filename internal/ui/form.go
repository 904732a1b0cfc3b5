package ui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mydehq/showtitle/internal/types"
)

// ErrUserBack is returned when the user presses esc to return to the previous step.
var ErrUserBack = types.ErrUserBack

// interceptedKey tracks the last key that triggered an abort (esc vs ctrl+c).
var interceptedKey string

// ShowTitleTheme returns the huh theme used by every form.
func ShowTitleTheme() *huh.Theme {
	return huh.ThemeCatppuccin()
}

// ShowTitleKeyMap maps esc to "back" and ctrl+c to "quit".
func ShowTitleKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()

	// Both quit the form; formFilter tells them apart
	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("ctrl+c", "quit")

	km.Select.Submit.SetHelp("enter", "choose • esc: back • ctrl+c: quit")
	km.MultiSelect.Submit.SetHelp("enter", "confirm • esc: back • ctrl+c: quit")
	km.Input.Next.SetHelp("enter", "next • esc: back • ctrl+c: quit")
	km.Input.Submit.SetHelp("enter", "submit • esc: back • ctrl+c: quit")
	km.Confirm.Submit.SetHelp("enter", "confirm • esc: back • ctrl+c: quit")
	km.Note.Next.SetHelp("enter", "next • esc: back • ctrl+c: quit")
	km.Note.Submit.SetHelp("enter", "submit • esc: back • ctrl+c: quit")

	return km
}

// formFilter is a Bubble Tea filter that records whether esc or ctrl+c ended a form.
func formFilter(m tea.Model, msg tea.Msg) tea.Msg {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			interceptedKey = "esc"
		case tea.KeyCtrlC:
			interceptedKey = "ctrl+c"
		}
	}
	return msg
}

// RunForm runs a huh form with the ShowTitle theme, key map and key interception.
func RunForm(f *huh.Form) error {
	interceptedKey = ""
	return f.WithTheme(ShowTitleTheme()).
		WithKeyMap(ShowTitleKeyMap()).
		WithProgramOptions(tea.WithFilter(formFilter)).
		Run()
}

// HandleAbort maps huh.ErrUserAborted to ErrUserBack for esc and exits
// cleanly for ctrl+c.
func HandleAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		if interceptedKey == "ctrl+c" {
			fmt.Println()
			if logger != nil {
				logger.Info(StyleDim.Render("Cancelled"))
			}
			os.Exit(0)
		}
		return ErrUserBack
	}
	return err
}
