// Package renamer turns confirmed metadata records into planned file
// moves and applies them.
package renamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/types"
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Operation is one planned move.
type Operation struct {
	SourcePath string
	TargetPath string
	Record     metadata.Record
	Status     types.OperationStatus
	Reason     string
	Size       int64
}

// Tagger writes metadata into a moved file.
type Tagger interface {
	Tag(ctx context.Context, path string, rec metadata.Record) error
}

// Renamer plans and executes moves for one layout.
type Renamer struct {
	layout   Layout
	eval     *scheme.Evaluator
	dryRun   bool
	events   types.EventHandler
	undoLog  string
	setMtime bool
	tagger   Tagger
}

// New creates a Renamer for the given layout.
func New(layout Layout) *Renamer {
	return &Renamer{
		layout: layout,
		eval:   &scheme.Evaluator{},
	}
}

// WithDryRun plans without touching the filesystem
func (r *Renamer) WithDryRun() *Renamer {
	r.dryRun = true
	return r
}

// WithEvents sets the progress event handler
func (r *Renamer) WithEvents(h types.EventHandler) *Renamer {
	r.events = h
	return r
}

// WithUndoLog appends every applied move to a CSV file
func (r *Renamer) WithUndoLog(path string) *Renamer {
	r.undoLog = path
	return r
}

// WithMtime sets the modification time of moved files to the show date
func (r *Renamer) WithMtime() *Renamer {
	r.setMtime = true
	return r
}

// WithTagger tags moved files
func (r *Renamer) WithTagger(t Tagger) *Renamer {
	r.tagger = t
	return r
}

// WithEvaluator replaces the scheme evaluator
func (r *Renamer) WithEvaluator(e *scheme.Evaluator) *Renamer {
	if e != nil {
		r.eval = e
	}
	return r
}

func (r *Renamer) emit(t types.EventType, format string, args ...any) {
	if r.events != nil {
		r.events(types.Event{Type: t, Message: fmt.Sprintf(format, args...)})
	}
}

// Target renders the destination of source for rec.
func (r *Renamer) Target(source string, rec metadata.Record) string {
	dir, base := r.layout.Render(r.eval.Evaluate, rec.WithFilename(metadata.BaseName(source)))
	if base == "" {
		return ""
	}
	return filepath.Join(dir, base+filepath.Ext(source))
}

// Plan computes the target of every file. records[i] belongs to files[i].
// Files with an empty record or no date, unchanged files and files whose
// target already exists are skipped; duplicate targets inside the plan get
// " - dupN".
func (r *Renamer) Plan(ctx context.Context, files []string, records []metadata.Record) ([]Operation, error) {
	if len(files) != len(records) {
		return nil, fmt.Errorf("got %d files but %d records", len(files), len(records))
	}

	resolver := newCollisionResolver()
	ops := make([]Operation, 0, len(files))

	for i, src := range files {
		if err := ctx.Err(); err != nil {
			return ops, err
		}

		op := Operation{SourcePath: src, Record: records[i], Status: types.StatusPending}
		ops = append(ops, r.planOne(op, resolver))
	}
	return ops, nil
}

func (r *Renamer) planOne(op Operation, resolver *collisionResolver) Operation {
	skip := func(reason string) Operation {
		op.Status = types.StatusSkipped
		op.Reason = reason
		logger.Debug("Skipping file", "file", filepath.Base(op.SourcePath), "reason", reason)
		return op
	}

	info, err := os.Stat(op.SourcePath)
	if err != nil {
		op.Status = types.StatusFailed
		op.Reason = err.Error()
		return op
	}
	op.Size = info.Size()

	if op.Record.IsEmpty() {
		return skip("no metadata")
	}
	if op.Record.Date == "" {
		return skip(types.ErrNoDate{Path: op.SourcePath}.Error())
	}

	target := r.Target(op.SourcePath, op.Record)
	if target == "" {
		return skip("empty target name")
	}
	if filepath.Clean(target) == filepath.Clean(op.SourcePath) {
		op.TargetPath = target
		return skip("unchanged")
	}

	target, dup := resolver.resolve(op.SourcePath, target)
	if dup {
		r.emit(types.EventWarning, "Duplicate target for %s, using %s", filepath.Base(op.SourcePath), filepath.Base(target))
	}
	op.TargetPath = target

	if ti, err := os.Stat(target); err == nil && !os.SameFile(info, ti) {
		return skip("target already exists")
	}
	return op
}

// Execute applies every pending operation. In dry-run mode operations stay
// pending. The returned error reports a failure to write the undo log.
func (r *Renamer) Execute(ctx context.Context, ops []Operation) ([]Operation, error) {
	var applied []Operation
	for i := range ops {
		op := &ops[i]
		if op.Status != types.StatusPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ops, err
		}

		if r.dryRun {
			r.emit(types.EventInfo, "Would move: %s → %s", filepath.Base(op.SourcePath), op.TargetPath)
			continue
		}

		if err := r.apply(ctx, op); err != nil {
			op.Status = types.StatusFailed
			op.Reason = err.Error()
			r.emit(types.EventError, "Failed to move %s: %v", filepath.Base(op.SourcePath), err)
			logger.Error("Move failed", "source", op.SourcePath, "err", err)
			continue
		}
		op.Status = types.StatusSuccess
		applied = append(applied, *op)
		r.emit(types.EventSuccess, "Moved: %s → %s", filepath.Base(op.SourcePath), op.TargetPath)
	}

	if r.undoLog != "" && len(applied) > 0 {
		if err := appendUndoLog(r.undoLog, applied); err != nil {
			return ops, fmt.Errorf("failed to write undo log: %w", err)
		}
	}
	return ops, nil
}

// Run plans and executes in one step.
func (r *Renamer) Run(ctx context.Context, files []string, records []metadata.Record) ([]Operation, error) {
	ops, err := r.Plan(ctx, files, records)
	if err != nil {
		return ops, err
	}
	return r.Execute(ctx, ops)
}

func (r *Renamer) apply(ctx context.Context, op *Operation) error {
	if err := os.MkdirAll(filepath.Dir(op.TargetPath), 0755); err != nil {
		return err
	}
	if err := moveFile(op.SourcePath, op.TargetPath); err != nil {
		return err
	}

	if r.setMtime {
		if t, err := time.ParseInLocation(time.DateOnly, op.Record.Date, time.Local); err == nil {
			if err := os.Chtimes(op.TargetPath, t, t); err != nil {
				r.emit(types.EventWarning, "Could not set date on %s: %v", filepath.Base(op.TargetPath), err)
			}
		}
	}

	if r.tagger != nil {
		if err := r.tagger.Tag(ctx, op.TargetPath, op.Record); err != nil {
			r.emit(types.EventWarning, "Could not tag %s: %v", filepath.Base(op.TargetPath), err)
		}
	}
	return nil
}

// moveFile renames src to dst, copying across filesystems when needed.
// dst must not exist unless it is src itself.
func moveFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil && !samePath(src, dst) {
		return fmt.Errorf("%s: %w", dst, fs.ErrExist)
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !isCrossDevice(linkErr.Err) {
		return err
	}
	logger.Debug("Cross-device move, copying", "source", src, "target", dst)
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// samePath reports whether a and b name the same existing file, which is
// the case for case-only renames on case-insensitive volumes.
func samePath(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
