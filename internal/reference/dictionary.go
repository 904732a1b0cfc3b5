// Package reference holds the known artists, venues and cities that the
// filename matcher recognises, keyed by their normalized form.
package reference

import (
	"slices"
	"strings"

	"github.com/mydehq/showtitle/internal/normalize"
)

// Dictionary maps normalized keys to canonical display strings. It keeps
// insertion order so that containment lookups have a stable tie-break.
//
// A Dictionary is read-only once built; concurrent lookups are safe as long
// as nobody calls Add or Set at the same time. The zero value and a nil
// *Dictionary both behave as empty dictionaries.
type Dictionary struct {
	keys   []string
	values map[string]string
}

// New builds a dictionary from reference lines. Lines are trimmed, blank
// lines and lines without any word characters are skipped.
func New(lines ...string) *Dictionary {
	d := &Dictionary{}
	for _, ln := range lines {
		d.Add(ln)
	}
	return d
}

// FromAliases builds a dictionary from alias → canonical artist pairs. Map
// iteration order is random, so aliases are inserted in sorted order.
func FromAliases(aliases map[string]string) *Dictionary {
	d := &Dictionary{}
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	slices.Sort(names)
	for _, alias := range names {
		d.Set(alias, aliases[alias])
	}
	return d
}

// Add inserts display under its own normalized key.
func (d *Dictionary) Add(display string) {
	display = strings.TrimSpace(display)
	d.Set(display, display)
}

// Set inserts value under the normalized form of name. Re-adding an
// existing key replaces the value but keeps the original position.
func (d *Dictionary) Set(name, value string) {
	key := normalize.Normalize(name)
	if key == "" {
		return
	}
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Lookup normalizes text and returns the entry stored under exactly that key.
func (d *Dictionary) Lookup(text string) (string, bool) {
	return d.LookupKey(normalize.Normalize(text))
}

// LookupKey returns the entry stored under an already normalized key.
func (d *Dictionary) LookupKey(key string) (string, bool) {
	if d == nil || key == "" {
		return "", false
	}
	v, ok := d.values[key]
	return v, ok
}

// Contained returns the entry whose key occurs as a substring of the
// normalized text. The longest key wins; equal lengths go to the key that
// was inserted first.
func (d *Dictionary) Contained(normalized string) (string, bool) {
	if d == nil || normalized == "" {
		return "", false
	}
	best := ""
	for _, k := range d.keys {
		if len(k) > len(best) && strings.Contains(normalized, k) {
			best = k
		}
	}
	if best == "" {
		return "", false
	}
	return d.values[best], true
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Values returns the display strings in insertion order.
func (d *Dictionary) Values() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.values[k]
	}
	return out
}
