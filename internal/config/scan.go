package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mydehq/showtitle/internal/matcher"
	"github.com/mydehq/showtitle/internal/metadata"
)

// ScanResult holds the results of directory scanning
type ScanResult struct {
	Files      []string // Absolute paths of video files, sorted
	TotalFiles int
	Undated    int // Video files without a recognisable date
}

// HasMedia reports whether any video file was found
func (r *ScanResult) HasMedia() bool {
	return len(r.Files) > 0
}

// Scan lists the video files directly inside dir. It uses the provided
// formats list (extensions without the dot) to identify relevant files.
func Scan(dir string, formats []string) (*ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		TotalFiles: len(entries),
	}

	for _, e := range entries {
		if e.IsDir() || !IsVideo(e.Name(), formats) {
			continue
		}
		if date, _ := matcher.ExtractDate(metadata.BaseName(e.Name())); date == "" {
			result.Undated++
		}
		result.Files = append(result.Files, filepath.Join(dir, e.Name()))
	}

	slices.Sort(result.Files)
	logger.Debug("Scanned directory", "dir", dir, "videos", len(result.Files), "entries", result.TotalFiles)
	return result, nil
}

// IsVideo reports whether name has one of the given extensions
func IsVideo(name string, formats []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && slices.Contains(formats, ext)
}
