package matcher

import (
	"regexp"
	"slices"
	"strings"
)

var resolutionRegex = regexp.MustCompile(`^\d{3,4}p$`)

// tags is the result of classifying filename tokens.
type tags struct {
	formats    []string
	additional []string
}

// classify sorts tokens into video formats and additional source tags.
// A resolution such as 1080p or a format keyword is a format. Any other
// token contributes the first additional keyword it contains. Both lists
// keep first-appearance order without repeats.
func classify(tokens []string, formats, additional []keyword) tags {
	var res tags
	for _, tok := range tokens {
		lower := strings.ToLower(tok)

		if resolutionRegex.MatchString(lower) {
			res.formats = appendUnique(res.formats, tok)
			continue
		}
		if i := slices.IndexFunc(formats, func(k keyword) bool { return k.lower == lower }); i >= 0 {
			res.formats = appendUnique(res.formats, formats[i].canonical)
			continue
		}
		for _, k := range additional {
			if strings.Contains(lower, k.lower) {
				res.additional = appendUnique(res.additional, k.canonical)
				break
			}
		}
	}
	return res
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
