package matcher

import (
	"regexp"
	"strings"

	"github.com/mydehq/showtitle/internal/normalize"
	"github.com/mydehq/showtitle/internal/reference"
)

const dashSeparator = " - "

var (
	windowSplit = regexp.MustCompile(`[.\s_\-]+`)

	// City words followed by a separator and a two letter state.
	cityStateRegex = regexp.MustCompile(`([A-Za-z][A-Za-z.'\-]*(?: [A-Za-z][A-Za-z.'\-]*)*)[,.\s\-]+([A-Za-z]{2})\b`)
)

// maxWindow is the widest run of tokens tried as a venue name.
const maxWindow = 4

// ExtractVenue finds the venue in a bare filename. The third " - " segment
// is tried first, then every run of up to four tokens (widest first,
// leftmost first), then any venue contained in the whole name.
func ExtractVenue(base string, venues *reference.Dictionary) string {
	if venues.Len() == 0 {
		return ""
	}

	if parts := strings.Split(base, dashSeparator); len(parts) >= 3 {
		if v, ok := venues.Lookup(strings.TrimSpace(parts[2])); ok {
			logger.Debug("Matched venue in dash slot", "venue", v)
			return v
		}
	}

	tokens := windowTokens(base)
	for w := min(maxWindow, len(tokens)); w >= 1; w-- {
		for i := 0; i+w <= len(tokens); i++ {
			if v, ok := venues.Lookup(strings.Join(tokens[i:i+w], " ")); ok {
				logger.Debug("Matched venue window", "venue", v, "width", w)
				return v
			}
		}
	}

	if v, ok := venues.Contained(normalize.Normalize(base)); ok {
		logger.Debug("Matched venue substring", "venue", v)
		return v
	}
	return ""
}

func windowTokens(base string) []string {
	var out []string
	for _, t := range windowSplit.Split(base, -1) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ExtractCity finds the city in a bare filename: the whole name may be a
// known city, otherwise a "City, ST" pair with a real state abbreviation
// is looked up as "City, ST" and then "City ST". When the captured city
// has several words, shorter trailing runs of them are tried as well.
func ExtractCity(base string, cities *reference.Dictionary) string {
	if cities.Len() == 0 {
		return ""
	}
	if v, ok := cities.Lookup(base); ok {
		logger.Debug("Matched city exactly", "city", v)
		return v
	}

	for _, m := range cityStateRegex.FindAllStringSubmatch(base, -1) {
		st := strings.ToUpper(m[2])
		if !StateAbbreviations[st] {
			continue
		}
		words := strings.Fields(m[1])
		for i := range words {
			city := normalize.TitleCase(strings.Join(words[i:], " "))
			for _, candidate := range []string{city + ", " + st, city + " " + st} {
				if v, ok := cities.Lookup(candidate); ok {
					logger.Debug("Matched city by state", "city", v, "state", st)
					return v
				}
			}
		}
		logger.Debug("Discarded city candidate", "candidate", m[0])
	}
	return ""
}
