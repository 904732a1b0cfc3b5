package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mydehq/showtitle/internal/metadata"
)

const (
	actionAccept    = "accept"
	actionEdit      = "edit"
	actionSkip      = "skip"
	actionAcceptAll = "accept-all"
)

// Suggestions feed the autocompletion of the edit form.
type Suggestions struct {
	Artists []string
	Venues  []string
	Cities  []string
}

// Reviewer walks the user through the inferred records one file at a
// time. Accepted records are returned unchanged, edited ones with the
// user's values and skipped ones as empty records.
type Reviewer struct {
	// Target previews where a file would go for a record
	Target      func(source string, rec metadata.Record) string
	Suggestions Suggestions
	DryRun      bool
}

// Review implements the interactive review. Pressing esc on the first
// file returns ErrUserBack.
func (rv *Reviewer) Review(ctx context.Context, files []string, records []metadata.Record) ([]metadata.Record, error) {
	out := make([]metadata.Record, len(records))
	copy(out, records)

	for i := 0; i < len(files); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ClearAndPrintBanner(rv.DryRun)

		action := actionAccept
		err := RunForm(huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title(fmt.Sprintf("%s  %s", StyleHeader.Render(filepath.Base(files[i])), StyleDim.Render(fmt.Sprintf("(%d/%d)", i+1, len(files))))).
					Description("\n"+rv.describe(files[i], out[i])),
				huh.NewSelect[string]().
					Title("Use this metadata?").
					Options(
						huh.NewOption("Accept", actionAccept),
						huh.NewOption("Edit...", actionEdit),
						huh.NewOption("Skip this file", actionSkip),
						huh.NewOption("Accept all remaining", actionAcceptAll),
					).
					Value(&action),
			),
		))
		if err != nil {
			if errors.Is(HandleAbort(err), ErrUserBack) {
				if i == 0 {
					return nil, ErrUserBack
				}
				i--
				out[i] = records[i]
				continue
			}
			return nil, err
		}

		switch action {
		case actionEdit:
			edited, err := rv.edit(out[i])
			if err != nil && !errors.Is(HandleAbort(err), ErrUserBack) {
				return nil, err
			}
			if err == nil {
				out[i] = edited
			}
			// show the file again with the edited values
		case actionSkip:
			out[i] = metadata.Record{}
			i++
		case actionAcceptAll:
			return out, nil
		default:
			i++
		}
	}
	return out, nil
}

// describe renders the fields of rec and the resulting target.
func (rv *Reviewer) describe(source string, rec metadata.Record) string {
	var b strings.Builder
	b.WriteString(describeRecord(rec))
	if rv.Target != nil {
		if target := rv.Target(source, rec); target != "" {
			fmt.Fprintf(&b, "\n%s\n  %s", StyleDim.Render("Target"), StylePath.Render(target))
		} else if rec.Date == "" {
			fmt.Fprintf(&b, "\n%s", StylePattern.Render("No show date, this file will be skipped"))
		}
	}
	return b.String()
}

// describeRecord lists the non-empty fields of rec, one per line.
func describeRecord(rec metadata.Record) string {
	fields := []struct{ label, value string }{
		{"Artist", rec.Artist},
		{"Date", rec.Date},
		{"Venue", rec.Venue},
		{"City", rec.City},
		{"Format", rec.Format},
		{"Additional", rec.Additional},
		{"Output folder", rec.OutputFolder},
	}
	var lines []string
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-14s %s", f.label, f.value))
	}
	if len(lines) == 0 {
		return "Nothing could be inferred"
	}
	return strings.Join(lines, "\n")
}

// edit opens the field editor for rec.
func (rv *Reviewer) edit(rec metadata.Record) (metadata.Record, error) {
	ClearAndPrintBanner(rv.DryRun)
	edited := rec
	err := RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Artist").Value(&edited.Artist).Suggestions(rv.Suggestions.Artists),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&edited.Date).Validate(validateDate),
			huh.NewInput().Title("Venue").Value(&edited.Venue).Suggestions(rv.Suggestions.Venues),
			huh.NewInput().Title("City").Placeholder("City, ST").Value(&edited.City).Suggestions(rv.Suggestions.Cities),
			huh.NewInput().Title("Format").Value(&edited.Format),
			huh.NewInput().Title("Additional").Value(&edited.Additional),
			huh.NewInput().
				Title("Output folder").
				Description("\nLeave empty to use the output root").
				Placeholder("(Root)").
				Value(&edited.OutputFolder),
		),
	))
	if err != nil {
		return rec, err
	}
	return normalizeEdited(rec, edited), nil
}

// normalizeEdited trims the edited fields and re-derives the date parts
// when the date changed.
func normalizeEdited(orig, edited metadata.Record) metadata.Record {
	for _, f := range []*string{&edited.Artist, &edited.Date, &edited.Venue, &edited.City, &edited.Format, &edited.Additional, &edited.OutputFolder} {
		*f = strings.TrimSpace(*f)
	}
	if edited.Date != orig.Date {
		edited.Year, edited.Month, edited.Day = "", "", ""
		edited = edited.WithDateParts()
	}
	return edited
}

// validateDate accepts an empty string or a YYYY-MM-DD calendar date.
func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("must be a date like 2023-07-14")
	}
	return nil
}
