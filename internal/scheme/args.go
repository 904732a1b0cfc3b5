package scheme

import (
	"strings"
)

// arg is one function argument as written in the scheme.
type arg struct {
	text   string
	quoted bool
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// callHead reports whether a "$name(" call starts at s[i]. It returns the
// function name and the index just past the opening parenthesis.
func callHead(s string, i int) (name string, argsStart int, ok bool) {
	if i >= len(s) || s[i] != '$' {
		return "", 0, false
	}
	j := i + 1
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	if j == i+1 || j >= len(s) || s[j] != '(' {
		return "", 0, false
	}
	return s[i+1 : j], j + 1, true
}

// scanArgs scans the argument list starting at s[start] up to its closing
// parenthesis. Quotes protect their content and plain parentheses nest.
// innermost is false when another call starts inside the list; end is then
// meaningless. ok is false when the list is never closed.
func scanArgs(s string, start int) (end int, innermost, ok bool) {
	var quote byte
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '$':
			if _, _, isCall := callHead(s, i); isCall {
				return 0, false, true
			}
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i, true, true
			}
			depth--
		}
	}
	return 0, false, false
}

// callSpan returns the index just past the parenthesis that closes the call
// starting at s[i], counting nested calls.
func callSpan(s string, i int) (int, bool) {
	_, start, ok := callHead(s, i)
	if !ok {
		return 0, false
	}
	var quote byte
	depth := 0
	for j := start; j < len(s); j++ {
		c := s[j]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return j + 1, true
			}
			depth--
		}
	}
	return 0, false
}

// splitArgs splits a raw argument list on top-level commas. Quote
// characters toggle quoting and are dropped, so quoted text may contain
// commas. Whitespace outside quotes at either end of an argument is trimmed.
func splitArgs(raw string) []arg {
	var (
		out    []arg
		b      strings.Builder
		quote  byte
		quoted bool
		lo, hi = -1, -1
		depth  int
	)
	flush := func() {
		text := b.String()
		if quoted {
			text = strings.TrimLeft(text[:lo], " \t") + text[lo:hi] + strings.TrimRight(text[hi:], " \t")
		} else {
			text = strings.TrimSpace(text)
		}
		out = append(out, arg{text: text, quoted: quoted})
		b.Reset()
		quoted, lo, hi = false, -1, -1
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			if c == quote {
				quote = 0
				hi = b.Len()
				continue
			}
			b.WriteByte(c)
			continue
		}
		switch {
		case c == '"' || c == '\'':
			quote = c
			if !quoted {
				lo = b.Len()
			}
			quoted = true
			continue
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == ',' && depth == 0:
			flush()
			continue
		}
		b.WriteByte(c)
	}
	if quote != 0 {
		hi = b.Len()
	}
	flush()
	return out
}

// quoteValue wraps a nested call result so that the enclosing call reads it
// as a single literal argument. A value holding both quote characters is
// split at its double quotes into adjacent quoted runs, which splitArgs
// joins back into one argument.
func quoteValue(v string) string {
	switch {
	case !strings.ContainsRune(v, '"'):
		return `"` + v + `"`
	case !strings.ContainsRune(v, '\''):
		return "'" + v + "'"
	}
	parts := strings.Split(v, `"`)
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, `'"'`)
}
