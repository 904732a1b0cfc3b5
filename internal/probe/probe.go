// Package probe reads tags embedded in media containers as a fallback
// source of show metadata.
package probe

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"

	"github.com/mydehq/showtitle/internal/metadata"
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Hint is what a container's tags say about the show.
type Hint struct {
	Artist string
	Title  string
	Date   string // YYYY-MM-DD when the tag carries a full date
	Year   string
}

// IsEmpty reports whether the hint carries anything usable.
func (h Hint) IsEmpty() bool {
	return h.Artist == "" && h.Date == "" && h.Year == ""
}

// Read returns the embedded tags of path. Files without recognizable
// tags yield an empty hint and no error.
func Read(path string) (Hint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Hint{}, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return Hint{}, nil
		}
		logger.Debug("Unreadable tags", "file", path, "err", err)
		return Hint{}, nil
	}

	h := Hint{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
	}
	if h.Artist == "" {
		h.Artist = strings.TrimSpace(m.AlbumArtist())
	}

	// MP4 keeps the full release date in the ©day atom, Year() only
	// exposes the year
	raw := m.Raw()
	for _, key := range []string{"\xa9day", "©day", "TDRC", "TDRL"} {
		if v, ok := raw[key].(string); ok && v != "" {
			h.Date, h.Year = parseDay(v)
			break
		}
	}
	if h.Year == "" && m.Year() > 0 {
		h.Year = strconv.Itoa(m.Year())
	}
	return h, nil
}

// parseDay splits a tag date such as "2023-07-14T00:00:00Z" or "2023".
func parseDay(v string) (date, year string) {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		if t, err := time.Parse(time.DateOnly, v[:10]); err == nil {
			return t.Format(time.DateOnly), t.Format("2006")
		}
	}
	if len(v) >= 4 {
		if _, err := strconv.Atoi(v[:4]); err == nil {
			return "", v[:4]
		}
	}
	return "", ""
}

// Fill completes the empty artist and date fields of rec from h. Fields
// inferred from the file name always win.
func Fill(rec metadata.Record, h Hint) metadata.Record {
	if rec.Artist == "" {
		rec.Artist = h.Artist
	}
	if rec.Date == "" && h.Date != "" {
		rec.Date = h.Date
		rec = rec.WithDateParts()
	}
	if rec.Year == "" && rec.Date == "" {
		rec.Year = h.Year
	}
	return rec
}
