package ui

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/types"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"  ", false},
		{"2023-07-14", false},
		{"2023-02-30", true},
		{"07/14/2023", true},
		{"2023", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := validateDate(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("validateDate(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestDescribeRecord(t *testing.T) {
	got := describeRecord(metadata.Record{Artist: "Goose", Date: "2021-10-31"})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("describeRecord() = %q; want 2 lines", got)
	}
	if !strings.HasPrefix(lines[0], "Artist") || !strings.HasSuffix(lines[0], "Goose") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "2021-10-31") {
		t.Errorf("line 1 = %q", lines[1])
	}

	if got := describeRecord(metadata.Record{}); got != "Nothing could be inferred" {
		t.Errorf("describeRecord(empty) = %q", got)
	}
}

func TestNormalizeEdited(t *testing.T) {
	orig := metadata.Record{Artist: "Goose", Date: "2021-10-31", Year: "2021", Month: "10", Day: "31"}

	edited := orig
	edited.Artist = "  Goose  "
	edited.Date = " 2022-03-05 "
	got := normalizeEdited(orig, edited)

	want := metadata.Record{Artist: "Goose", Date: "2022-03-05", Year: "2022", Month: "03", Day: "05"}
	if got != want {
		t.Errorf("normalizeEdited() = %+v; want %+v", got, want)
	}

	unchanged := normalizeEdited(orig, orig)
	if unchanged != orig {
		t.Errorf("normalizeEdited(unchanged) = %+v; want %+v", unchanged, orig)
	}
}

func TestBuildSchemePreview(t *testing.T) {
	got := buildSchemePreview("%artist%/$year(date)", "%artist% - %date% [%format%]")
	want := filepath.Join("Phish", "2023", "Phish - 2023-07-14 [2160p].mkv")
	if got != want {
		t.Errorf("buildSchemePreview() = %q; want %q", got, want)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	got := parseCommaSeparated(" mkv, mp4 ,, webm ")
	want := []string{"mkv", "mp4", "webm"}
	if !slices.Equal(got, want) {
		t.Errorf("parseCommaSeparated() = %v; want %v", got, want)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	var cfg types.GlobalConfig
	applyOptions(&cfg, []string{optTagMKV, optPromote})

	if cfg.Rename.SetMtime || !cfg.Rename.TagMKV || cfg.Rename.Probe || !cfg.Reference.Promote {
		t.Errorf("applyOptions() = %+v", cfg)
	}
	if got := enabledOptions(cfg); !slices.Equal(got, []string{optTagMKV, optPromote}) {
		t.Errorf("enabledOptions() = %v", got)
	}
}

func TestReviewerDescribe(t *testing.T) {
	rv := &Reviewer{Target: func(string, metadata.Record) string { return "" }}
	got := rv.describe("a.mkv", metadata.Record{Artist: "Goose"})
	if !strings.Contains(got, "will be skipped") {
		t.Errorf("describe() = %q; want skip notice", got)
	}
}

func TestLoggerStyles(t *testing.T) {
	styles := LoggerStyles()
	for _, b := range levelBadges {
		if got := styles.Levels[b.level].String(); got == "" || !strings.Contains(got, strings.TrimSpace(b.label)) {
			t.Errorf("level %v badge = %q; want %q", b.level, got, b.label)
		}
	}
	for _, key := range []string{"artist", "venue", "city", "path", "err"} {
		if _, ok := styles.Values[key]; !ok {
			t.Errorf("no value style for %q", key)
		}
	}
}
