package matcher_test

import (
	"testing"

	"github.com/mydehq/showtitle/internal/matcher"
	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/reference"
)

func testRefs() *reference.Set {
	return &reference.Set{
		Artists: reference.New("Phish", "Goose"),
		Venues:  reference.New("Madison Square Garden", "Red Rocks Amphitheatre", "Ogden Theatre"),
		Cities:  reference.New("New York, NY", "Boston, MA", "Denver CO"),
		Aliases: reference.FromAliases(map[string]string{"KGLW": "King Gizzard & The Lizard Wizard"}),
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantRaw string
	}{
		{"ISO dashes", "Phish - 2023-07-14 - Boston - MA", "2023-07-14", "2023-07-14"},
		{"ISO dots", "Goose.2021.10.31.Halloween", "2021-10-31", "2021.10.31"},
		{"US order", "Goose 07.14.2023", "2023-07-14", "07.14.2023"},
		{"Two digit year", "Goose 23.07.14", "2023-07-14", "23.07.14"},
		{"Two digit year last century", "Phish 97-11-17", "1997-11-17", "97-11-17"},
		{"Invalid first match ends pattern", "Goose 2023-13-40 99.12.31", "", ""},
		{"Invalid match falls through to next pattern", "Goose 2023-13-40 07.14.2023", "2023-07-14", "07.14.2023"},
		{"No date", "Goose at the Fillmore", "", ""},
		{"Empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, raw := matcher.ExtractDate(tt.text)
			if got != tt.want || raw != tt.wantRaw {
				t.Errorf("ExtractDate(%q) = %q, %q; want %q, %q", tt.text, got, raw, tt.want, tt.wantRaw)
			}
		})
	}
}

func TestExtractVenue(t *testing.T) {
	venues := reference.New(
		"Square Garden New York",
		"Red Rocks",
		"Red Rocks Amphitheatre",
		"Madison Square Garden",
	)

	tests := []struct {
		name string
		base string
		want string
	}{
		{
			name: "Dash slot before window",
			base: "Artist - 2023-07-14 - Madison Square Garden - New York NY",
			want: "Madison Square Garden",
		},
		{
			name: "Widest window wins",
			base: "Goose.2023.07.14.Red.Rocks.Amphitheatre.1080p",
			want: "Red Rocks Amphitheatre",
		},
		{
			name: "Window when dash slot misses",
			base: "Goose - 2023-07-14 - Live - Red_Rocks",
			want: "Red Rocks",
		},
		{
			name: "Substring fallback",
			base: "GooseRedRocksAmphitheatre2023",
			want: "Red Rocks Amphitheatre",
		},
		{
			name: "No venue",
			base: "Goose - 2023-07-14 - Somewhere",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.ExtractVenue(tt.base, venues); got != tt.want {
				t.Errorf("ExtractVenue(%q) = %q; want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestExtractCity(t *testing.T) {
	cities := reference.New("New York, NY", "Boston, MA", "Denver CO")

	tests := []struct {
		name string
		base string
		want string
	}{
		{"Whole name", "Boston, MA", "Boston, MA"},
		{"Dash separated state", "Phish - 2023-07-14 - Boston - MA", "Boston, MA"},
		{"Space separated state", "Artist - 2023-07-14 - MSG - New York NY", "New York, NY"},
		{"Entry without comma", "Goose 2023 Denver, CO", "Denver CO"},
		{"Leading words dropped", "goose denver co 1080p", "Denver CO"},
		{"Unknown state", "Springfield XX", ""},
		{"Unknown city", "Phish - Portland - OR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.ExtractCity(tt.base, cities); got != tt.want {
				t.Errorf("ExtractCity(%q) = %q; want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestInferFormatAndAdditional(t *testing.T) {
	tests := []struct {
		name           string
		base           string
		wantFormat     string
		wantAdditional string
	}{
		{"Resolution is format", "Goose 1080p", "1080p", ""},
		{"Keyword is additional", "Goose sbdmatrix", "", "SBD"},
		{"Canonical keyword casing", "goose.webrip.flac24", "WEBRIP", "FLAC24"},
		{"First appearance order", "goose 720p dvd 720p aud sbd aud", "720p, DVD", "AUD, SBD"},
		{"One keyword per token", "goose flac16sbd", "", "FLAC16"},
		{"Nothing", "goose live", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Infer(tt.base, nil)
			if got.Format != tt.wantFormat || got.Additional != tt.wantAdditional {
				t.Errorf("Infer(%q) format, additional = %q, %q; want %q, %q",
					tt.base, got.Format, got.Additional, tt.wantFormat, tt.wantAdditional)
			}
		})
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		base string
		want metadata.Record
	}{
		{
			name: "Known artist",
			base: "Phish - 2023-07-14 - Madison Square Garden - New York NY",
			want: metadata.Record{
				Artist: "Phish",
				Date:   "2023-07-14",
				Venue:  "Madison Square Garden",
				City:   "New York, NY",
			},
		},
		{
			name: "Alias",
			base: "kglw.2022.10.14.red.rocks.amphitheatre.2160p.webrip",
			want: metadata.Record{
				Artist: "King Gizzard & The Lizard Wizard",
				Date:   "2022-10-14",
				Venue:  "Red Rocks Amphitheatre",
				Format: "2160p, WEBRIP",
			},
		},
		{
			name: "Fallback skips known fields",
			base: "The Mighty Band - 2022.05.01 - Ogden Theatre - Denver CO 1080p SBD",
			want: metadata.Record{
				Artist:     "The Mighty Band",
				Date:       "2022-05-01",
				Venue:      "Ogden Theatre",
				City:       "Denver CO",
				Format:     "1080p",
				Additional: "SBD",
			},
		},
		{
			name: "Fallback keeps two digit year",
			base: "Mighty Band 22.05.01",
			want: metadata.Record{Artist: "Mighty Band 22", Date: "2022-05-01"},
		},
		{
			name: "Fallback keeps tagged token",
			base: "Mighty Band sbdmatrix",
			want: metadata.Record{Artist: "Mighty Band Sbdmatrix", Additional: "SBD"},
		},
		{
			name: "Fallback drops exact tag token",
			base: "Mighty Band webrip sbd",
			want: metadata.Record{Artist: "Mighty Band", Format: "WEBRIP", Additional: "SBD"},
		},
		{
			name: "Fallback only",
			base: "the.mighty.band",
			want: metadata.Record{Artist: "The Mighty Band"},
		},
		{
			name: "Empty",
			base: "",
			want: metadata.Record{},
		},
		{
			name: "Only separators",
			base: " - . - ",
			want: metadata.Record{},
		},
	}

	m := matcher.New(testRefs())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Infer(tt.base); got != tt.want {
				t.Errorf("Infer(%q) =\n  %v\nwant\n  %v", tt.base, got, tt.want)
			}
		})
	}
}

func TestInferEmptyReferences(t *testing.T) {
	for _, refs := range []*reference.Set{nil, {}} {
		if got := matcher.Infer("", refs); got != (metadata.Record{}) {
			t.Errorf("Infer(\"\") = %v; want empty record", got)
		}
	}
}

func TestWithFormatKeywords(t *testing.T) {
	m := matcher.New(nil,
		matcher.WithFormatKeywords([]string{"HDTV"}),
		matcher.WithAdditionalKeywords([]string{"Matrix"}),
	)

	got := m.Infer("goose hdtv webrip ultramatrix")
	if got.Format != "HDTV" {
		t.Errorf("Format = %q; want HDTV", got.Format)
	}
	if got.Additional != "Matrix" {
		t.Errorf("Additional = %q; want Matrix", got.Additional)
	}
	if got.Artist != "Goose Webrip Ultramatrix" {
		t.Errorf("Artist = %q; want Goose Webrip Ultramatrix", got.Artist)
	}
}
