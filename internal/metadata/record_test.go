package metadata_test

import (
	"reflect"
	"testing"

	"github.com/mydehq/showtitle/internal/metadata"
)

func TestRecordGet(t *testing.T) {
	rec := metadata.Record{Artist: "Goose", City: "Denver, CO", OutputFolder: "/srv"}.WithFilename("x")

	tests := []struct {
		field  string
		want   string
		wantOK bool
	}{
		{metadata.FieldArtist, "Goose", true},
		{metadata.FieldCity, "Denver, CO", true},
		{metadata.FieldVenue, "", true},
		{metadata.FieldFilename, "x", true},
		{metadata.FieldOutputFolder, "/srv", true},
		{"tour", "", false},
	}

	for _, tt := range tests {
		got, ok := rec.Get(tt.field)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Get(%q) = %q, %v; want %q, %v", tt.field, got, ok, tt.want, tt.wantOK)
		}
	}

	for _, f := range metadata.Fields {
		if !metadata.IsKnownField(f) {
			t.Errorf("IsKnownField(%q) = false", f)
		}
	}
}

func TestWithDateParts(t *testing.T) {
	tests := []struct {
		date                     string
		wantYear, wantMon, wantD string
	}{
		{"2023-07-14", "2023", "07", "14"},
		{"2023-07", "2023", "07", ""},
		{"2023", "2023", "", ""},
		{"", "", "", ""},
		{"23", "", "", ""},
	}

	for _, tt := range tests {
		rec := metadata.Record{Date: tt.date}
		got := rec.WithDateParts()
		if got.Year != tt.wantYear || got.Month != tt.wantMon || got.Day != tt.wantD {
			t.Errorf("WithDateParts(%q) = %q/%q/%q; want %q/%q/%q",
				tt.date, got.Year, got.Month, got.Day, tt.wantYear, tt.wantMon, tt.wantD)
		}
		if rec.Year != "" {
			t.Errorf("WithDateParts(%q) modified the receiver", tt.date)
		}
	}

	rec := metadata.Record{Date: "2023-07-14", Year: "1999"}.WithDateParts()
	if rec.Year != "1999" {
		t.Errorf("WithDateParts() overwrote Year = %q", rec.Year)
	}
}

func TestJoinDate(t *testing.T) {
	tests := []struct {
		y, m, d string
		want    string
	}{
		{"2023", "7", "4", "2023-07-04"},
		{"2023", "07", "", "2023-07"},
		{"2023", "", "14", "2023"},
		{"", "07", "14", ""},
	}

	for _, tt := range tests {
		if got := metadata.JoinDate(tt.y, tt.m, tt.d); got != tt.want {
			t.Errorf("JoinDate(%q, %q, %q) = %q; want %q", tt.y, tt.m, tt.d, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := metadata.SplitList(" 2160p, ,WEBRIP ,")
	want := []string{"2160p", "WEBRIP"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList() = %q; want %q", got, want)
	}
	if got := metadata.SplitList(""); len(got) != 0 {
		t.Errorf("SplitList(\"\") = %q; want empty", got)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/videos/Phish - 2023-07-14.mp4", "Phish - 2023-07-14"},
		{"Goose.2023.07.14.mkv", "Goose.2023.07.14"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := metadata.BaseName(tt.in); got != tt.want {
			t.Errorf("BaseName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
