package scheme_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/types"
)

var show = metadata.Record{
	Artist:     "Phish",
	Date:       "2023-07-14",
	Venue:      "Madison Square Garden",
	City:       "New York, NY",
	Format:     "2160p, WEBRIP",
	Additional: "SBD, FLAC24",
}

func TestEvaluateTokens(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"Plain tokens", "%artist%-%date%", "Phish-2023-07-14"},
		{"Format list whole", "%formatN%", "2160p, WEBRIP"},
		{"Format first", "%formatN1%", "2160p"},
		{"Format second", "%formatN2%", "WEBRIP"},
		{"Format out of range", "%formatN3%", ""},
		{"Format zero index", "%formatN0%", ""},
		{"List token case", "%FORMATn2%", "WEBRIP"},
		{"Additional second", "%additionalN2%", "FLAC24"},
		{"Format field", "[%format%]", "[2160p, WEBRIP]"},
		{"Date parts from date", "%year%/%month%/%day%", "2023/07/14"},
		{"Unknown token kept", "%artist% %unknown%", "Phish %unknown%"},
		{"Empty field", "%output_folder%", ""},
		{"Literal percent", "100% %artist%", "100% Phish"},
		{
			name:     "Default filename scheme",
			template: "%artist% - %date% - %venue% - %city% [%format%] [%additional%]",
			want:     "Phish - 2023-07-14 - Madison Square Garden - New York, NY [2160p, WEBRIP] [SBD, FLAC24]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scheme.Evaluate(tt.template, show); got != tt.want {
				t.Errorf("Evaluate(%q) = %q; want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEvaluateFunctions(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"Upper token", "$upper(%artist%)", "PHISH"},
		{"Upper bare key", "$upper(artist)", "PHISH"},
		{"Upper special casing", "$upper(straße)", "STRASSE"},
		{"Lower", "$lower(ABC)", "abc"},
		{"Title", "$title(the mighty band)", "The Mighty Band"},
		{"Len", "$len(%venue%)", "21"},
		{"Substr", "$substr(%artist%, 1, 3)", "hi"},
		{"Substr negative", "$substr(%artist%, -3)", "ish"},
		{"Substr empty range", "$substr(%artist%, 4, 2)", ""},
		{"Left", "$left(%venue%, 7)", "Madison"},
		{"Right", "$right(%date%, 2)", "14"},
		{"Right zero", "$right(abc, 0)", ""},
		{"Right too long", "$right(abc, 10)", "abc"},
		{"Replace", "$replace(%venue%, Square, Sq.)", "Madison Sq. Garden"},
		{"Replace quoted commas", `$replace("a, b", ",", ";")`, "a; b"},
		{"Replace with token", "$replace(%artist%, Ph, %day%)", "14ish"},
		{"Replace token needle", "$replace(%artist%, %artist%, X)", "X"},
		{"Replace bare key needle", "$replace(%venue% live, venue, at)", "at live"},
		{"Pad with char", "$pad(ab, 5, -)", "ab---"},
		{"Pad with token char", "$pad(ab, 5, %day%)", "ab111"},
		{"Pad default", "$pad(ab, 4)", "ab  "},
		{"Pad shorter width", "$pad(abcdef, 3)", "abcdef"},
		{"Year bare key", "$year(date)", "2023"},
		{"Month token", "$month(%date%)", "07"},
		{"Day unparsable", "$day(not-a-date)", ""},
		{"Day invalid calendar date", "$day(2023-02-30)", ""},
		{"Year partial date", "$year(2023)", "2023"},
		{"Month partial date", "$month(2023-05)", "05"},
		{"Add", "$add(2, 3)", "5"},
		{"Sub", "$sub(2, 3)", "-1"},
		{"Mul", "$mul(2.5, 2)", "5"},
		{"Div", "$div(7, 2)", "3.5"},
		{"Div by zero", "$div(5,0)", scheme.Infinity},
		{"Non-numeric is zero", "$add(abc, 2)", "2"},
		{"Eq strings", "$eq(a, a)", "True"},
		{"Eq numbers", "$eq(10, 10.0)", "True"},
		{"Lt numeric", "$lt(9, 10)", "True"},
		{"Gt strings", "$gt(b, a)", "True"},
		{"And true", "$and(1, x)", "True"},
		{"And false", "$and(1, 0)", "False"},
		{"Or all falsy", "$or(, 0)", "False"},
		{"Not", "$not(%city%)", "False"},
		{"Unknown function kept", "$nope(x) - %artist%", "$nope(x) - Phish"},
		{"Wrong arity kept", "$upper(a, b)", "$upper(a, b)"},
		{"Unclosed call kept", "$upper(%artist%", "$upper(Phish"},
		{"Plain parentheses in argument", "$upper(foo (live))", "FOO (LIVE)"},
		{"Comma inside token value", "$upper(%format%)", "2160P, WEBRIP"},
		{"Nested", "$upper($left(%artist%, 3))", "PHI"},
		{"Nested condition", "$if($eq(%year%, 2023), this year, other)", "this year"},
		{"Nested result with both quotes", `$len($replace('say "hi", ok', ok, "it's"))`, "14"},
		{"Deep nesting", "$len($upper($lower($title($left(%venue%, 7)))))", "7"},
		{"Function name case", "$UPPER(%artist%)", "PHISH"},
		{"Default folder scheme", "%artist%/$year(date)", "Phish/2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scheme.Evaluate(tt.template, show); got != tt.want {
				t.Errorf("Evaluate(%q) = %q; want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEvaluateConditionals(t *testing.T) {
	tests := []struct {
		name     string
		template string
		rec      metadata.Record
		want     string
	}{
		{"If without city", `$if(%city%, "has-city", "no-city")`, metadata.Record{}, "no-city"},
		{"If with city", `$if(%city%, "has-city", "no-city")`, metadata.Record{City: "Boston"}, "has-city"},
		{"If false literal", `$if(false, yes, no)`, metadata.Record{}, "no"},
		{"If2 fallback", "$if2(%venue%, %city%, Unknown)", metadata.Record{}, "Unknown"},
		{"If2 second", "$if2(%venue%, %city%, Unknown)", metadata.Record{City: "Boston"}, "Boston"},
		{"If2 first", "$if2(%venue%, %city%, Unknown)", metadata.Record{Venue: "MSG", City: "Boston"}, "MSG"},
		{"If branch with comma value", "$if(%city%, %city%, none)", metadata.Record{City: "Denver, CO"}, "Denver, CO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scheme.Evaluate(tt.template, tt.rec); got != tt.want {
				t.Errorf("Evaluate(%q) = %q; want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEvaluateDatetime(t *testing.T) {
	e := &scheme.Evaluator{Now: func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	}}

	if got := e.Evaluate("backup_$datetime()", show); got != "backup_2024-01-02_03-04-05" {
		t.Errorf("Evaluate($datetime()) = %q; want backup_2024-01-02_03-04-05", got)
	}
}

func TestEvaluateIdempotentTokens(t *testing.T) {
	template := "%artist% - %date% [%formatN1%] %venue%"

	once := scheme.Evaluate(template, show)
	twice := scheme.Evaluate(once, show)
	if once != twice {
		t.Errorf("Evaluate twice = %q; want %q", twice, once)
	}
}

func TestEvaluateRoundTrip(t *testing.T) {
	records := []metadata.Record{
		{},
		{Artist: "Goose"},
		{Date: "2021-10-31"},
		{Artist: "King Gizzard & The Lizard Wizard", Date: "2023"},
		{Artist: "Sigur Rós", Date: "2008-06"},
	}

	for _, rec := range records {
		want := fmt.Sprintf("%s-%s", rec.Artist, rec.Date)
		if got := scheme.Evaluate("%artist%-%date%", rec); got != want {
			t.Errorf("Evaluate(%%artist%%-%%date%%, %v) = %q; want %q", rec, got, want)
		}
	}
}

func TestEvaluateDoesNotModifyRecord(t *testing.T) {
	rec := metadata.Record{Date: "2023-07-14"}
	scheme.Evaluate("%year% $upper(%artist%)", rec)
	if rec.Year != "" {
		t.Errorf("Evaluate() modified the record: Year = %q", rec.Year)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{"Default folder scheme", "%artist%/$year(date)", false},
		{"Default filename scheme", "%artist% - %date% - %venue% - %city% [%format%] [%additional%]", false},
		{"Nested calls", "$if($eq(%year%, 2023), $upper(%artist%), %formatN2%)", false},
		{"Datetime", "$datetime()", false},
		{"Unclosed call", "$upper(%artist%", true},
		{"Unknown function", "$shout(%artist%)", true},
		{"Wrong arity", "$upper(a, b)", true},
		{"Nested wrong arity", "$upper($left(%artist%))", true},
		{"Unknown token", "%artst% - %date%", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scheme.Validate(tt.template)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v; wantErr %v", tt.template, err, tt.wantErr)
			}
			if err != nil {
				var invalid types.ErrInvalidScheme
				if !errors.As(err, &invalid) {
					t.Errorf("Validate(%q) error type = %T; want types.ErrInvalidScheme", tt.template, err)
				}
			}
		})
	}
}
