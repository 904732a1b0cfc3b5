package renamer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mydehq/showtitle/internal/types"
)

var undoHeader = []string{"old_path", "new_path", "status", "moved_at"}

// appendUndoLog appends applied moves to the CSV at path, writing the
// header when the file is new.
func appendUndoLog(path string, ops []Operation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(undoHeader); err != nil {
			return err
		}
	}
	now := time.Now().Format(time.RFC3339)
	for _, op := range ops {
		if err := w.Write([]string{op.SourcePath, op.TargetPath, string(op.Status), now}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadUndoLog returns the successful moves recorded in an undo log.
// Source and target are as originally applied.
func ReadUndoLog(path string) ([]Operation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var ops []Operation
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read undo log: %w", err)
		}
		if line == 1 && slices.Equal(row, undoHeader) {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("undo log line %d: expected at least 3 fields, got %d", line, len(row))
		}
		if types.OperationStatus(row[2]) != types.StatusSuccess {
			continue
		}
		ops = append(ops, Operation{SourcePath: row[0], TargetPath: row[1], Status: types.StatusSuccess})
	}
	return ops, nil
}

// Undo moves files recorded in the undo log back, newest first. Entries
// whose file is gone or whose original path is taken again are skipped.
func (r *Renamer) Undo(ctx context.Context, logPath string) ([]Operation, error) {
	moves, err := ReadUndoLog(logPath)
	if err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, len(moves))
	for i := len(moves) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return ops, err
		}
		op := Operation{
			SourcePath: moves[i].TargetPath,
			TargetPath: moves[i].SourcePath,
			Status:     types.StatusPending,
		}

		switch info, err := os.Stat(op.SourcePath); {
		case err != nil:
			op.Status, op.Reason = types.StatusSkipped, "file no longer exists"
		case fileExists(op.TargetPath):
			op.Status, op.Reason = types.StatusSkipped, "original path is taken"
		default:
			op.Size = info.Size()
		}
		ops = append(ops, op)
	}

	if r.dryRun {
		for _, op := range ops {
			if op.Status == types.StatusPending {
				r.emit(types.EventInfo, "Would restore: %s", op.TargetPath)
			}
		}
		return ops, nil
	}

	for i := range ops {
		op := &ops[i]
		if op.Status != types.StatusPending {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(op.TargetPath), 0755); err != nil {
			op.Status, op.Reason = types.StatusFailed, err.Error()
			continue
		}
		if err := moveFile(op.SourcePath, op.TargetPath); err != nil {
			op.Status, op.Reason = types.StatusFailed, err.Error()
			r.emit(types.EventError, "Failed to restore %s: %v", op.TargetPath, err)
			continue
		}
		op.Status = types.StatusSuccess
		r.emit(types.EventSuccess, "Restored: %s", op.TargetPath)
	}
	return ops, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
