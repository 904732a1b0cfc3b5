package matcher

import (
	"regexp"
	"time"
)

// datePattern is one accepted date spelling and the order of its groups.
type datePattern struct {
	re     *regexp.Regexp
	layout string // time layout of the groups joined by "-"
}

// Tried in order. Only the first match of each pattern is considered; when
// it is not a real calendar date the next pattern is tried.
var datePatterns = []datePattern{
	{regexp.MustCompile(`(\d{4})[-./](\d{2})[-./](\d{2})`), "2006-01-02"},
	{regexp.MustCompile(`(\d{2})[-./](\d{2})[-./](\d{4})`), "01-02-2006"},
	{regexp.MustCompile(`(\d{2})[-./](\d{2})[-./](\d{2})`), "06-01-02"},
}

// ExtractDate finds the show date in text and returns it as YYYY-MM-DD
// together with the substring it was read from. Both are empty when no
// pattern yields a valid date.
func ExtractDate(text string) (date, raw string) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		t, err := time.Parse(p.layout, m[1]+"-"+m[2]+"-"+m[3])
		if err != nil {
			continue
		}
		return t.Format(time.DateOnly), m[0]
	}
	return "", ""
}
