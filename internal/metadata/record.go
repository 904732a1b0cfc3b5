// Package metadata defines the record that flows from the filename matcher,
// through user review, into the scheme evaluator.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Field names as they appear in %tokens% and as bare function arguments.
const (
	FieldArtist       = "artist"
	FieldDate         = "date"
	FieldVenue        = "venue"
	FieldCity         = "city"
	FieldFormat       = "format"
	FieldAdditional   = "additional"
	FieldFilename     = "filename"
	FieldYear         = "year"
	FieldMonth        = "month"
	FieldDay          = "day"
	FieldOutputFolder = "output_folder"
)

// Fields lists every known field name.
var Fields = []string{
	FieldArtist, FieldDate, FieldVenue, FieldCity, FieldFormat, FieldAdditional,
	FieldFilename, FieldYear, FieldMonth, FieldDay, FieldOutputFolder,
}

// Record is the metadata for one concert video. Records are passed by
// value and never modified by the matcher or the evaluator.
type Record struct {
	Artist     string `yaml:"artist" json:"artist"`
	Date       string `yaml:"date" json:"date"` // YYYY-MM-DD, YYYY-MM, YYYY or empty
	Venue      string `yaml:"venue" json:"venue"`
	City       string `yaml:"city" json:"city"`
	Format     string `yaml:"format" json:"format"`         // comma list, first is primary
	Additional string `yaml:"additional" json:"additional"` // comma list
	Year       string `yaml:"year,omitempty" json:"year,omitempty"`
	Month      string `yaml:"month,omitempty" json:"month,omitempty"`
	Day        string `yaml:"day,omitempty" json:"day,omitempty"`

	OutputFolder string `yaml:"output_folder,omitempty" json:"output_folder,omitempty"`

	// Filename is only set on the view used to render the folder scheme.
	Filename string `yaml:"-" json:"-"`
}

// IsKnownField reports whether name is a record field name.
func IsKnownField(name string) bool {
	switch name {
	case FieldArtist, FieldDate, FieldVenue, FieldCity, FieldFormat, FieldAdditional,
		FieldFilename, FieldYear, FieldMonth, FieldDay, FieldOutputFolder:
		return true
	}
	return false
}

// Get returns the value of a field and whether the name is known. Unknown
// names return "", false.
func (r Record) Get(name string) (string, bool) {
	switch name {
	case FieldArtist:
		return r.Artist, true
	case FieldDate:
		return r.Date, true
	case FieldVenue:
		return r.Venue, true
	case FieldCity:
		return r.City, true
	case FieldFormat:
		return r.Format, true
	case FieldAdditional:
		return r.Additional, true
	case FieldFilename:
		return r.Filename, true
	case FieldYear:
		return r.Year, true
	case FieldMonth:
		return r.Month, true
	case FieldDay:
		return r.Day, true
	case FieldOutputFolder:
		return r.OutputFolder, true
	}
	return "", false
}

// WithFilename returns a copy of r with Filename set.
func (r Record) WithFilename(name string) Record {
	r.Filename = name
	return r
}

// IsEmpty reports whether none of the inferred fields are set.
func (r Record) IsEmpty() bool {
	return r.Artist == "" && r.Date == "" && r.Venue == "" && r.City == "" &&
		r.Format == "" && r.Additional == ""
}

// WithDateParts returns a copy of r whose Year, Month and Day are filled
// from Date where they are empty.
func (r Record) WithDateParts() Record {
	parts := strings.SplitN(r.Date, "-", 3)
	if r.Year == "" && len(parts) >= 1 && len(parts[0]) == 4 {
		r.Year = parts[0]
	}
	if r.Month == "" && len(parts) >= 2 {
		r.Month = parts[1]
	}
	if r.Day == "" && len(parts) == 3 {
		r.Day = parts[2]
	}
	return r
}

// JoinDate builds a date string from year, month and day parts, dropping
// the trailing parts that are missing.
func JoinDate(year, month, day string) string {
	switch {
	case year == "":
		return ""
	case month == "":
		return year
	case day == "":
		return fmt.Sprintf("%s-%s", year, pad2(month))
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

// SplitList splits a comma list, trims entries and drops empty ones.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String renders the record as a one-line summary for logs.
func (r Record) String() string {
	return fmt.Sprintf("artist=%q date=%q venue=%q city=%q format=%q additional=%q",
		r.Artist, r.Date, r.Venue, r.City, r.Format, r.Additional)
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
