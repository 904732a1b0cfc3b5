package renamer

import (
	"path/filepath"
	"strings"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/types"
)

// Layout describes where renamed files go.
type Layout struct {
	FolderScheme   string
	FilenameScheme string
	Root           string
}

// Render evaluates the layout for rec with the default evaluator.
func Render(l Layout, rec metadata.Record) (dir, base string) {
	return l.Render(scheme.Evaluate, rec)
}

// Render evaluates the filename scheme, then the folder scheme with the
// rendered filename available as %filename%. rec.Filename, when set, is
// the source file name offered to the filename scheme. The returned base
// has no extension.
//
// The record's output folder replaces Root unless it is empty or "(Root)".
// A folder scheme that evaluates to an absolute path is used as is,
// otherwise it is joined under the root.
func (l Layout) Render(eval func(string, metadata.Record) string, rec metadata.Record) (dir, base string) {
	base = CleanName(eval(l.FilenameScheme, rec))
	if base == "" {
		base = CleanName(rec.Artist)
	}
	view := rec.WithFilename(base)

	root := l.Root
	if out := strings.TrimSpace(rec.OutputFolder); out != "" && out != types.RootFolder {
		if v := strings.TrimSpace(eval(out, view)); v != "" && v != types.RootFolder {
			root = v
		}
	}

	folder := strings.TrimSpace(eval(l.FolderScheme, view))
	if folder == "" || folder == types.RootFolder {
		return filepath.Clean(root), base
	}
	if filepath.IsAbs(folder) {
		vol := filepath.VolumeName(folder)
		return filepath.Join(append([]string{vol + string(filepath.Separator)}, CleanPath(folder[len(vol):])...)...), base
	}
	return filepath.Join(append([]string{root}, CleanPath(folder)...)...), base
}
