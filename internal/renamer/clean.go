package renamer

import (
	"regexp"
	"strings"
)

var (
	repeatedDashes = regexp.MustCompile(`(?:\s*-\s*){2,}`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	emptyGroup     = regexp.MustCompile(`\[\s*\]|\(\s*\)|\{\s*\}`)
	illegalChars   = regexp.MustCompile(`[<>:"\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
)

// edgeSeparators are stripped from both ends of a name.
var edgeSeparators = []string{" - ", "--", "- -", "-"}

// CleanName tidies an evaluated name so that empty tokens leave no
// traces: empty bracket groups are dropped, separator runs collapse to a
// single " - ", whitespace collapses and separators at either end are
// removed. Characters illegal in file names become "_", and slashes are
// replaced as well so the result is always a single path component.
func CleanName(s string) string {
	s = strings.NewReplacer("/", "_").Replace(s)
	return cleanComponent(s)
}

func cleanComponent(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = illegalChars.ReplaceAllString(s, "_")
	for {
		next := emptyGroup.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	s = repeatedDashes.ReplaceAllString(s, " - ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	for trimmed := true; trimmed; {
		trimmed = false
		for _, sep := range edgeSeparators {
			if rest, ok := strings.CutPrefix(s, sep); ok {
				s, trimmed = strings.TrimSpace(rest), true
			}
			if rest, ok := strings.CutSuffix(s, sep); ok {
				s, trimmed = strings.TrimSpace(rest), true
			}
		}
	}

	s = trailingDots.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CleanPath cleans every component of a relative folder path, dropping
// components that end up empty.
func CleanPath(p string) []string {
	var parts []string
	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part = cleanComponent(part); part != "" && part != "." && part != ".." {
			parts = append(parts, part)
		}
	}
	return parts
}
