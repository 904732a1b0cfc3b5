package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var logger *log.Logger

// SetLogger injects the application logger into the UI package.
func SetLogger(l *log.Logger) {
	logger = l
}

// levelBadges are fixed width so messages line up.
var levelBadges = []struct {
	level log.Level
	label string
	color string
}{
	{log.DebugLevel, "DEBUG", "63"},
	{log.InfoLevel, "INFO ", "86"},
	{log.WarnLevel, "WARN ", "192"},
	{log.ErrorLevel, "ERROR", "204"},
}

// fieldStyles colours the key/value pairs the show packages log, so a
// debug trace reads like the review form.
var fieldStyles = map[string]lipgloss.Style{
	"artist": StyleCommand,
	"venue":  StyleCommand,
	"city":   StyleCommand,
	"date":   StyleHeader,
	"scheme": StylePattern,
	"path":   StylePath,
	"file":   StylePath,
	"source": StylePath,
	"target": StylePath,
	"err":    lipgloss.NewStyle().Bold(true),
}

// LoggerStyles returns the level badges and field palette used by the CLI.
func LoggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for _, b := range levelBadges {
		styles.Levels[b.level] = lipgloss.NewStyle().
			SetString(b.label).
			Bold(true).
			Foreground(lipgloss.Color(b.color))
	}
	for key, value := range fieldStyles {
		styles.Keys[key] = StyleDim
		styles.Values[key] = value
	}
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	return styles
}

// ConfigureLoggerStyles applies LoggerStyles to the injected logger.
func ConfigureLoggerStyles() {
	if logger == nil {
		return
	}
	logger.SetStyles(LoggerStyles())
}
