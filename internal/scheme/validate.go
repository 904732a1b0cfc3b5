package scheme

import (
	"fmt"
	"strings"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/types"
)

// Validate reports the first problem that would leave part of template
// unevaluated: an unclosed call, an unknown function, a wrong argument
// count or an unknown %token%.
func Validate(template string) error {
	if reason := check(template); reason != "" {
		return types.ErrInvalidScheme{Scheme: template, Reason: reason}
	}
	return nil
}

func check(s string) string {
	for i := 0; i < len(s); i++ {
		name, start, ok := callHead(s, i)
		if !ok {
			continue
		}
		end, ok := callSpan(s, i)
		if !ok {
			return fmt.Sprintf("unclosed call $%s(", name)
		}

		fn, known := functions[strings.ToLower(name)]
		if !known {
			return fmt.Sprintf("unknown function $%s", name)
		}
		args := splitArgs(s[start : end-1])
		if fn.maxArgs == 0 && len(args) == 1 && args[0].text == "" {
			args = nil
		}
		if !fn.accepts(len(args)) {
			return fmt.Sprintf("$%s takes %s, got %d", name, arity(fn), len(args))
		}
		if reason := check(s[start : end-1]); reason != "" {
			return reason
		}
		i = end - 1
	}

	for _, m := range plainTokenRegex.FindAllStringSubmatch(s, -1) {
		name := strings.ToLower(m[1])
		if metadata.IsKnownField(name) || listTokenRegex.MatchString(m[0]) {
			continue
		}
		return fmt.Sprintf("unknown token %s", m[0])
	}
	return ""
}

func arity(fn function) string {
	switch {
	case fn.maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", fn.minArgs)
	case fn.minArgs == fn.maxArgs && fn.minArgs == 1:
		return "1 argument"
	case fn.minArgs == fn.maxArgs:
		return fmt.Sprintf("%d arguments", fn.minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", fn.minArgs, fn.maxArgs)
}
