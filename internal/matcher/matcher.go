// Package matcher infers concert metadata from free-form video filenames
// using the reference dictionaries of known artists, venues and cities.
package matcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/normalize"
	"github.com/mydehq/showtitle/internal/reference"
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Matcher holds the reference data and keyword vocabularies used to
// infer metadata. It is safe for concurrent use as long as the reference
// dictionaries are not modified while it runs.
type Matcher struct {
	refs       *reference.Set
	formats    []keyword
	additional []keyword
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithFormatKeywords replaces the default format keywords.
func WithFormatKeywords(list []string) Option {
	return func(m *Matcher) {
		if len(list) > 0 {
			m.formats = keywords(list)
		}
	}
}

// WithAdditionalKeywords replaces the default additional keywords.
func WithAdditionalKeywords(list []string) Option {
	return func(m *Matcher) {
		if len(list) > 0 {
			m.additional = keywords(list)
		}
	}
}

// New creates a Matcher. A nil set behaves as empty dictionaries.
func New(refs *reference.Set, opts ...Option) *Matcher {
	if refs == nil {
		refs = &reference.Set{}
	}
	m := &Matcher{
		refs:       refs,
		formats:    keywords(DefaultFormatKeywords),
		additional: keywords(DefaultAdditionalKeywords),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Infer is a convenience wrapper around New(refs).Infer(base).
func Infer(base string, refs *reference.Set) metadata.Record {
	return New(refs).Infer(base)
}

// Infer returns the best guess of artist, date, venue, city, format and
// additional tags for a bare filename (extension already removed). It
// never fails: on an internal error the empty record is returned.
func (m *Matcher) Infer(base string) (rec metadata.Record) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Failed to infer metadata", "name", base, "err", fmt.Sprint(r))
			rec = metadata.Record{}
		}
	}()

	if strings.TrimSpace(base) == "" {
		return metadata.Record{}
	}

	date, _ := ExtractDate(base)
	rec.Date = date
	rec.Venue = ExtractVenue(base, m.refs.Venues)
	rec.City = ExtractCity(base, m.refs.Cities)

	tokens := normalize.Tokenize(base)
	t := classify(tokens, m.formats, m.additional)
	rec.Format = strings.Join(t.formats, ", ")
	rec.Additional = strings.Join(t.additional, ", ")

	exclude := make(map[string]bool)
	for _, field := range []string{rec.Date, rec.Venue, rec.City, rec.Format, rec.Additional} {
		for _, tok := range normalize.Tokenize(field) {
			exclude[tok] = true
		}
	}
	rec.Artist = m.artist(base, tokens, exclude)

	logger.Debug("Inferred metadata", "name", base, "record", rec)
	return rec
}

// artist matches a known artist, then an alias, contained in the
// normalized name. Without a match the tokens left after removing the
// excluded ones are title-cased in their original order.
func (m *Matcher) artist(base string, tokens []string, exclude map[string]bool) string {
	key := normalize.Normalize(base)
	if a, ok := m.refs.Artists.Contained(key); ok {
		logger.Debug("Matched artist", "artist", a)
		return a
	}
	if a, ok := m.refs.Aliases.Contained(key); ok {
		logger.Debug("Matched artist alias", "artist", a)
		return a
	}

	var rest []string
	for _, tok := range tokens {
		if !exclude[tok] {
			rest = append(rest, tok)
		}
	}
	guess := normalize.TitleCase(strings.Join(rest, " "))
	logger.Debug("Fallback artist", "artist", guess)
	return guess
}
