package matcher

import "strings"

// DefaultFormatKeywords are the tokens classified as the video format.
var DefaultFormatKeywords = []string{
	"2160p", "1080p", "720p", "480p", "LQ", "4k", "WEBRIP", "STREAMRIP", "BLU-RAY", "DVD",
}

// DefaultAdditionalKeywords are the recording source and quality markers,
// matched as substrings of tokens in this order.
var DefaultAdditionalKeywords = []string{
	"FLAC16", "FLAC24", "SBD", "AUD", "MTX", "DAT", "FM",
}

// StateAbbreviations holds the USPS abbreviations of the fifty states.
var StateAbbreviations = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true,
	"DE": true, "FL": true, "GA": true, "HI": true, "ID": true, "IL": true, "IN": true,
	"IA": true, "KS": true, "KY": true, "LA": true, "ME": true, "MD": true, "MA": true,
	"MI": true, "MN": true, "MS": true, "MO": true, "MT": true, "NE": true, "NV": true,
	"NH": true, "NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true, "WI": true,
	"WY": true,
}

// keyword pairs a lowercase match key with its canonical spelling.
type keyword struct {
	lower     string
	canonical string
}

func keywords(list []string) []keyword {
	out := make([]keyword, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, k := range list {
		k = strings.TrimSpace(k)
		lower := strings.ToLower(k)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, keyword{lower: lower, canonical: k})
	}
	return out
}
