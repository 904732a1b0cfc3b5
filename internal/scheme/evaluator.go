// Package scheme evaluates folder and filename schemes: templates made of
// literal text, %token% placeholders and $func(args) calls, rendered
// against a metadata record.
package scheme

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mydehq/showtitle/internal/metadata"
)

// MaxPasses bounds the number of call expansion passes.
const MaxPasses = 50

var (
	listTokenRegex  = regexp.MustCompile(`(?i)%(format|additional)N(\d*)%`)
	plainTokenRegex = regexp.MustCompile(`%(\w+)%`)
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Evaluator renders schemes. The zero value uses the local clock.
type Evaluator struct {
	// Now is used by $datetime(). Defaults to time.Now.
	Now func() time.Time
}

var defaultEvaluator = &Evaluator{}

// Evaluate renders template against rec with the default evaluator.
func Evaluate(template string, rec metadata.Record) string {
	return defaultEvaluator.Evaluate(template, rec)
}

// Evaluate renders template against rec. It never fails: unknown tokens,
// unknown functions and calls with the wrong number of arguments are left
// in the output as written.
func (e *Evaluator) Evaluate(template string, rec metadata.Record) string {
	rec = rec.WithDateParts()

	res := substituteOutsideCalls(template, func(text string) string {
		return substituteTokens(text, rec)
	})

	for pass := 0; ; pass++ {
		if pass == MaxPasses {
			logger.Warn("Scheme did not settle", "scheme", template, "passes", MaxPasses)
			break
		}
		next := e.expand(res, rec, false)
		if next == res {
			break
		}
		res = next
	}
	return res
}

// substituteTokens replaces numbered list tokens first, then plain tokens.
func substituteTokens(s string, rec metadata.Record) string {
	if !strings.Contains(s, "%") {
		return s
	}
	s = listTokenRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := listTokenRegex.FindStringSubmatch(m)
		return listToken(rec, strings.ToLower(sub[1]), sub[2])
	})
	return plainTokenRegex.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := rec.Get(strings.ToLower(m[1 : len(m)-1])); ok {
			return v
		}
		return m
	})
}

// listToken resolves %formatN% (whole list) and %formatN<k>% (k-th entry,
// 1-based).
func listToken(rec metadata.Record, field, index string) string {
	raw, _ := rec.Get(field)
	items := metadata.SplitList(raw)
	if index == "" {
		return strings.Join(items, ", ")
	}
	k, err := strconv.Atoi(index)
	if err != nil || k < 1 || k > len(items) {
		return ""
	}
	return items[k-1]
}

// substituteOutsideCalls applies fn to the text between call expressions.
// Call expressions are copied unchanged; their arguments resolve tokens
// when the call is evaluated, after they have been split.
func substituteOutsideCalls(s string, fn func(string) string) string {
	var b strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			continue
		}
		end, ok := callSpan(s, i)
		if !ok {
			continue
		}
		b.WriteString(fn(s[last:i]))
		b.WriteString(s[i:end])
		last = end
		i = end - 1
	}
	b.WriteString(fn(s[last:]))
	return b.String()
}

// expand performs one pass: every innermost call is evaluated and replaced
// by its result. Results of calls nested inside another call's arguments
// are quoted so the enclosing call sees them as one literal argument.
func (e *Evaluator) expand(s string, rec metadata.Record, nested bool) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		name, start, ok := callHead(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}

		end, innermost, closed := scanArgs(s, start)
		if !closed {
			b.WriteByte(s[i])
			i++
			continue
		}

		if innermost {
			if v, handled := e.call(name, s[start:end], rec); handled {
				if nested {
					v = quoteValue(v)
				}
				b.WriteString(v)
			} else {
				b.WriteString(s[i : end+1])
			}
			i = end + 1
			continue
		}

		spanEnd, ok := callSpan(s, i)
		if !ok {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString(s[i:start])
		b.WriteString(e.expand(s[start:spanEnd-1], rec, true))
		b.WriteByte(')')
		i = spanEnd
	}
	return b.String()
}

// call dispatches one function. handled is false for unknown functions and
// for argument counts outside the function's arity.
func (e *Evaluator) call(name, raw string, rec metadata.Record) (string, bool) {
	fn, ok := functions[strings.ToLower(name)]
	if !ok {
		logger.Debug("Unknown scheme function", "name", name)
		return "", false
	}

	args := splitArgs(raw)
	if fn.maxArgs == 0 && len(args) == 1 && args[0].text == "" && !args[0].quoted {
		args = nil
	}
	if !fn.accepts(len(args)) {
		logger.Debug("Wrong argument count", "function", name, "args", len(args))
		return "", false
	}

	c := &callCtx{eval: e, rec: rec, args: args}
	return fn.handler(c), true
}

func (e *Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
