package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mydehq/showtitle"
	"github.com/mydehq/showtitle/internal/ui"
)

// colorizeEvent adds CLI styling to known event message patterns.
func colorizeEvent(msg string) string {
	// "Moved: old.mkv → /out/Artist/2023/new.mkv"
	if parts := strings.SplitN(msg, " → ", 2); len(parts) == 2 {
		left := parts[0]
		right := parts[1]

		var label, oldName string
		if idx := strings.Index(left, ": "); idx >= 0 {
			label = ui.StyleHeader.Render(left[:idx+1]) + " "
			oldName = left[idx+2:]
		} else {
			oldName = left
		}

		return fmt.Sprintf("%s%s %s %s",
			label,
			ui.StyleDim.Render(oldName),
			ui.StyleDim.Render("→"),
			ui.StyleCommand.Render(right),
		)
	}

	// "Restored: /in/old.mkv"
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return fmt.Sprintf("%s %s", ui.StyleHeader.Render(msg[:idx+1]), ui.StylePath.Render(msg[idx+2:]))
	}
	return msg
}

// printEvent logs a progress event at the matching level.
func printEvent(e showtitle.Event) {
	switch e.Type {
	case showtitle.EventError:
		logger.Error(e.Message)
	case showtitle.EventWarning:
		logger.Warn(e.Message)
	default:
		logger.Info(colorizeEvent(e.Message))
	}
}

// summary counts operations per status and the bytes they cover.
type summary struct {
	moved, pending, skipped, failed int
	bytes                           uint64
}

func summarize(ops []showtitle.RenameOperation) summary {
	var s summary
	for _, op := range ops {
		switch op.Status {
		case showtitle.StatusSuccess:
			s.moved++
			s.bytes += uint64(op.Size)
		case showtitle.StatusPending:
			s.pending++
			s.bytes += uint64(op.Size)
		case showtitle.StatusSkipped:
			s.skipped++
		case showtitle.StatusFailed:
			s.failed++
		}
	}
	return s
}

func (s summary) String() string {
	var parts []string
	if s.moved > 0 {
		parts = append(parts, fmt.Sprintf("%d moved (%s)", s.moved, humanize.IBytes(s.bytes)))
	}
	if s.pending > 0 {
		parts = append(parts, fmt.Sprintf("%d planned (%s)", s.pending, humanize.IBytes(s.bytes)))
	}
	if s.skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.skipped))
	}
	if s.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.failed))
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// printPlan lists skipped and failed operations with their reason.
func printPlan(ops []showtitle.RenameOperation) {
	for _, op := range ops {
		switch op.Status {
		case showtitle.StatusSkipped:
			logger.Warn(fmt.Sprintf("%s %s", ui.StylePath.Render(baseName(op.SourcePath)), ui.StyleDim.Render("("+op.Reason+")")))
		case showtitle.StatusFailed:
			logger.Error(fmt.Sprintf("%s %s", ui.StylePath.Render(baseName(op.SourcePath)), op.Reason))
		}
	}
}
