package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mydehq/showtitle/internal/metadata"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input    string
		wantDate string
		wantYear string
	}{
		{"2023-07-14", "2023-07-14", "2023"},
		{"2023-07-14T20:00:00Z", "2023-07-14", "2023"},
		{"2023", "", "2023"},
		{"2023-13-40", "", "2023"},
		{"live", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date, year := parseDay(tt.input)
			if date != tt.wantDate || year != tt.wantYear {
				t.Errorf("parseDay(%q) = (%q, %q); want (%q, %q)", tt.input, date, year, tt.wantDate, tt.wantYear)
			}
		})
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		name string
		rec  metadata.Record
		hint Hint
		want metadata.Record
	}{
		{
			name: "Empty record takes hint",
			rec:  metadata.Record{},
			hint: Hint{Artist: "Goose", Date: "2021-10-31", Year: "2021"},
			want: metadata.Record{Artist: "Goose", Date: "2021-10-31", Year: "2021", Month: "10", Day: "31"},
		},
		{
			name: "Inferred fields win",
			rec:  metadata.Record{Artist: "Phish", Date: "2023-07-14"},
			hint: Hint{Artist: "Goose", Date: "2021-10-31"},
			want: metadata.Record{Artist: "Phish", Date: "2023-07-14"},
		},
		{
			name: "Year only",
			rec:  metadata.Record{Artist: "Phish"},
			hint: Hint{Year: "1997"},
			want: metadata.Record{Artist: "Phish", Year: "1997"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fill(tt.rec, tt.hint); got != tt.want {
				t.Errorf("Fill() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing file", func(t *testing.T) {
		if _, err := Read(filepath.Join(dir, "missing.mp4")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("No tags", func(t *testing.T) {
		p := filepath.Join(dir, "plain.mkv")
		if err := os.WriteFile(p, []byte("not a tagged container"), 0644); err != nil {
			t.Fatal(err)
		}
		h, err := Read(p)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if !h.IsEmpty() {
			t.Errorf("Read() = %+v; want empty hint", h)
		}
	})
}
