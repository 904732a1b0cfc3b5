package scheme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/normalize"
)

// Infinity is returned by $div when the divisor is zero.
const Infinity = "∞"

const (
	trueString  = "True"
	falseString = "False"
)

// DateTimeLayout is the layout of $datetime().
const DateTimeLayout = "2006-01-02_15-04-05"

type function struct {
	minArgs int
	maxArgs int // -1 for variadic
	handler func(c *callCtx) string
}

func (f function) accepts(n int) bool {
	return n >= f.minArgs && (f.maxArgs < 0 || n <= f.maxArgs)
}

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

var functions map[string]function

func init() {
	functions = map[string]function{
		"upper": {1, 1, func(c *callCtx) string { return upperCaser.String(c.value(0)) }},
		"lower": {1, 1, func(c *callCtx) string { return lowerCaser.String(c.value(0)) }},
		"title": {1, 1, func(c *callCtx) string { return normalize.TitleCase(c.value(0)) }},
		"len":   {1, 1, func(c *callCtx) string { return strconv.Itoa(utf8.RuneCountInString(c.value(0))) }},

		"substr":  {2, 3, substr},
		"left":    {2, 2, left},
		"right":   {2, 2, right},
		"replace": {3, 3, replace},
		"pad":     {2, 3, pad},

		"datetime": {0, 0, func(c *callCtx) string { return c.eval.now().Format(DateTimeLayout) }},
		"year":     {1, 1, func(c *callCtx) string { return datePart(c.value(0), 0) }},
		"month":    {1, 1, func(c *callCtx) string { return datePart(c.value(0), 1) }},
		"day":      {1, 1, func(c *callCtx) string { return datePart(c.value(0), 2) }},

		"add": {2, 2, arithmetic(func(a, b float64) float64 { return a + b })},
		"sub": {2, 2, arithmetic(func(a, b float64) float64 { return a - b })},
		"mul": {2, 2, arithmetic(func(a, b float64) float64 { return a * b })},
		"div": {2, 2, div},

		"eq": {2, 2, compare(func(n int) bool { return n == 0 })},
		"lt": {2, 2, compare(func(n int) bool { return n < 0 })},
		"gt": {2, 2, compare(func(n int) bool { return n > 0 })},

		"and": {1, -1, and},
		"or":  {1, -1, or},
		"not": {1, 1, func(c *callCtx) string { return boolString(!truthy(c.value(0))) }},

		"if":  {3, 3, ifThenElse},
		"if2": {2, -1, ifNonEmpty},
	}
}

// Functions returns the names of the supported functions.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	return names
}

// callCtx carries the arguments of one call.
type callCtx struct {
	eval *Evaluator
	rec  metadata.Record
	args []arg
}

// value resolves argument i. An unquoted bare field name resolves to the
// field; otherwise tokens inside the argument are substituted.
func (c *callCtx) value(i int) string {
	if i >= len(c.args) {
		return ""
	}
	a := c.args[i]
	if !a.quoted && metadata.IsKnownField(a.text) {
		v, _ := c.rec.Get(a.text)
		return v
	}
	return substituteTokens(a.text, c.rec)
}

// literal returns argument i exactly as written, quotes removed.
func (c *callCtx) literal(i int) string {
	if i >= len(c.args) {
		return ""
	}
	return c.args[i].text
}

// number resolves argument i as a float. Non-numeric values are 0.
func (c *callCtx) number(i int) float64 {
	f, _ := parseNumber(c.value(i))
	return f
}

// integer resolves argument i as an int, truncating fractions.
func (c *callCtx) integer(i int) int {
	return int(c.number(i))
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// sliceIndex converts a possibly negative index into a rune offset clamped
// to [0, n].
func sliceIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}

func substr(c *callCtx) string {
	runes := []rune(c.value(0))
	start := sliceIndex(c.integer(1), len(runes))
	end := len(runes)
	if len(c.args) == 3 && strings.TrimSpace(c.value(2)) != "" {
		end = sliceIndex(c.integer(2), len(runes))
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func left(c *callCtx) string {
	runes := []rune(c.value(0))
	return string(runes[:sliceIndex(c.integer(1), len(runes))])
}

func right(c *callCtx) string {
	runes := []rune(c.value(0))
	n := c.integer(1)
	if n <= 0 {
		return ""
	}
	return string(runes[len(runes)-min(n, len(runes)):])
}

func replace(c *callCtx) string {
	old := c.value(1)
	if old == "" {
		return c.value(0)
	}
	return strings.ReplaceAll(c.value(0), old, c.value(2))
}

func pad(c *callCtx) string {
	text := c.value(0)
	width := c.integer(1)
	fill := " "
	if f := c.value(2); f != "" {
		r, _ := utf8.DecodeRuneInString(f)
		fill = string(r)
	}
	if n := width - utf8.RuneCountInString(text); n > 0 {
		return text + strings.Repeat(fill, n)
	}
	return text
}

// datePart returns the year (0), month (1) or day (2) of a date. Partial
// dates yield the parts they contain; anything else yields "".
func datePart(value string, part int) string {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return [...]string{
			fmt.Sprintf("%04d", t.Year()),
			fmt.Sprintf("%02d", int(t.Month())),
			fmt.Sprintf("%02d", t.Day()),
		}[part]
	}
	if t, err := time.Parse("2006-01", value); err == nil && part < 2 {
		if part == 0 {
			return fmt.Sprintf("%04d", t.Year())
		}
		return fmt.Sprintf("%02d", int(t.Month()))
	}
	if t, err := time.Parse("2006", value); err == nil && part == 0 {
		return fmt.Sprintf("%04d", t.Year())
	}
	return ""
}

func arithmetic(op func(a, b float64) float64) func(c *callCtx) string {
	return func(c *callCtx) string {
		return formatNumber(op(c.number(0), c.number(1)))
	}
}

func div(c *callCtx) string {
	d := c.number(1)
	if d == 0 {
		return Infinity
	}
	return formatNumber(c.number(0) / d)
}

// compare compares numerically when both sides are numbers and as strings
// otherwise.
func compare(test func(int) bool) func(c *callCtx) string {
	return func(c *callCtx) string {
		a, b := c.value(0), c.value(1)
		fa, okA := parseNumber(a)
		fb, okB := parseNumber(b)
		var n int
		switch {
		case okA && okB && fa < fb:
			n = -1
		case okA && okB && fa > fb:
			n = 1
		case okA && okB:
			n = 0
		default:
			n = strings.Compare(a, b)
		}
		return boolString(test(n))
	}
}

// truthy reports whether a value counts as true: anything except "", "0"
// and "false".
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "0" && !strings.EqualFold(s, "false")
}

func boolString(b bool) string {
	if b {
		return trueString
	}
	return falseString
}

func and(c *callCtx) string {
	for i := range c.args {
		if !truthy(c.value(i)) {
			return falseString
		}
	}
	return trueString
}

func or(c *callCtx) string {
	for i := range c.args {
		if truthy(c.value(i)) {
			return trueString
		}
	}
	return falseString
}

func ifThenElse(c *callCtx) string {
	if truthy(c.value(0)) {
		return c.value(1)
	}
	return c.value(2)
}

func ifNonEmpty(c *callCtx) string {
	last := len(c.args) - 1
	for i := 0; i < last; i++ {
		if v := c.value(i); v != "" {
			return v
		}
	}
	return c.value(last)
}
