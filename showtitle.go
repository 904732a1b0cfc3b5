// Package showtitle infers concert metadata from video file names and
// files the videos into a folder layout built from user templates.
package showtitle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mydehq/showtitle/internal/config"
	"github.com/mydehq/showtitle/internal/matcher"
	"github.com/mydehq/showtitle/internal/metadata"
	"github.com/mydehq/showtitle/internal/probe"
	"github.com/mydehq/showtitle/internal/reference"
	"github.com/mydehq/showtitle/internal/renamer"
	"github.com/mydehq/showtitle/internal/scheme"
	"github.com/mydehq/showtitle/internal/tagger"
	"github.com/mydehq/showtitle/internal/types"
)

type (
	Record          = metadata.Record
	Event           = types.Event
	EventType       = types.EventType
	EventHandler    = types.EventHandler
	RenameOperation = renamer.Operation
	OperationStatus = types.OperationStatus
	Config          = types.GlobalConfig
)

const (
	EventInfo    = types.EventInfo
	EventSuccess = types.EventSuccess
	EventWarning = types.EventWarning
	EventError   = types.EventError

	StatusPending = types.StatusPending
	StatusSuccess = types.StatusSuccess
	StatusSkipped = types.StatusSkipped
	StatusFailed  = types.StatusFailed
)

// ReviewFunc lets the caller confirm or edit inferred records before
// anything is planned. It returns the records to use, one per file.
type ReviewFunc func(ctx context.Context, files []string, records []Record) ([]Record, error)

type options struct {
	dryRun     bool
	events     EventHandler
	config     *Config
	refs       *reference.Set
	review     ReviewFunc
	preset     string
	outputRoot string
}

// Option configures the package level operations.
type Option func(*options)

// WithDryRun plans renames without touching the filesystem
func WithDryRun() Option {
	return func(o *options) { o.dryRun = true }
}

// WithEvents receives progress events
func WithEvents(h EventHandler) Option {
	return func(o *options) { o.events = h }
}

// WithConfig uses cfg instead of loading the global config
func WithConfig(cfg Config) Option {
	return func(o *options) {
		c := cfg.Clone()
		o.config = &c
	}
}

// WithReferences uses refs instead of loading the reference files
func WithReferences(refs *reference.Set) Option {
	return func(o *options) { o.refs = refs }
}

// WithReview routes every inferred record through fn before planning
func WithReview(fn ReviewFunc) Option {
	return func(o *options) { o.review = fn }
}

// WithPreset renders with the named preset instead of the active one
func WithPreset(name string) Option {
	return func(o *options) { o.preset = name }
}

// WithOutputRoot overrides the configured output root
func WithOutputRoot(dir string) Option {
	return func(o *options) { o.outputRoot = dir }
}

// SetLogger injects l into every package that logs.
func SetLogger(l *log.Logger) {
	config.SetLogger(l)
	matcher.SetLogger(l)
	probe.SetLogger(l)
	reference.SetLogger(l)
	renamer.SetLogger(l)
	scheme.SetLogger(l)
}

func resolve(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) emit(t EventType, format string, args ...any) {
	if o.events != nil {
		o.events(Event{Type: t, Message: fmt.Sprintf(format, args...)})
	}
}

// loadConfig returns the effective configuration with preset and root
// overrides applied.
func (o *options) loadConfig() (Config, error) {
	var cfg Config
	if o.config != nil {
		cfg = o.config.Clone()
	} else {
		loaded, err := config.LoadGlobal()
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if o.preset != "" {
		if err := config.UsePreset(&cfg, o.preset); err != nil {
			return cfg, err
		}
	}
	if o.outputRoot != "" {
		cfg.OutputRoot = o.outputRoot
	}
	return cfg, nil
}

func (o *options) loadRefs(cfg Config) (*reference.Set, error) {
	if o.refs != nil {
		return o.refs, nil
	}
	refs, err := reference.LoadSet(config.ReferencePaths(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load reference lists: %w", err)
	}
	return refs, nil
}

func newMatcher(cfg Config, refs *reference.Set) *matcher.Matcher {
	return matcher.New(refs,
		matcher.WithFormatKeywords(cfg.Keywords.Format),
		matcher.WithAdditionalKeywords(cfg.Keywords.Additional),
	)
}

func layout(cfg Config) renamer.Layout {
	folder, filename := cfg.Schemes()
	return renamer.Layout{
		FolderScheme:   folder,
		FilenameScheme: filename,
		Root:           config.OutputRoot(cfg),
	}
}

// Infer returns the metadata inferred from the base name of path.
func Infer(path string, opts ...Option) (Record, error) {
	o := resolve(opts)
	cfg, err := o.loadConfig()
	if err != nil {
		return Record{}, err
	}
	refs, err := o.loadRefs(cfg)
	if err != nil {
		return Record{}, err
	}
	return newMatcher(cfg, refs).Infer(metadata.BaseName(path)), nil
}

// Render returns the target folder and file name (without extension) that
// the configured schemes produce for rec.
func Render(rec Record, opts ...Option) (dir, base string, err error) {
	cfg, err := resolve(opts).loadConfig()
	if err != nil {
		return "", "", err
	}
	dir, base = renamer.Render(layout(cfg), rec)
	return dir, base, nil
}

// Inspect lists the videos in dir and infers a record for each one.
// When tag probing is enabled, artist and date missing from the file name
// are taken from the container tags.
func Inspect(dir string, opts ...Option) (files []string, records []Record, err error) {
	o := resolve(opts)
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return o.inspect(cfg, dir)
}

func (o *options) inspect(cfg Config, dir string) ([]string, []Record, error) {
	refs, err := o.loadRefs(cfg)
	if err != nil {
		return nil, nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	scan, err := config.Scan(absDir, cfg.Formats)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	if !scan.HasMedia() {
		o.emit(EventWarning, "No video files found in %s", absDir)
		return nil, nil, nil
	}

	m := newMatcher(cfg, refs)
	records := make([]Record, len(scan.Files))
	for i, f := range scan.Files {
		records[i] = m.Infer(metadata.BaseName(f))
		if cfg.Rename.Probe && (records[i].Artist == "" || records[i].Date == "") {
			records[i] = fillFromTags(f, records[i])
		}
	}
	return scan.Files, records, nil
}

// Rename infers metadata for every video in dir and files each one under
// the configured output root.
func Rename(ctx context.Context, dir string, opts ...Option) ([]RenameOperation, error) {
	o := resolve(opts)
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	files, records, err := o.inspect(cfg, dir)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return o.apply(ctx, cfg, files, records)
}

// Apply plans and executes the moves of files, records[i] describing
// files[i]. Reference lists are updated with the names of successfully
// moved shows when promotion is enabled.
func Apply(ctx context.Context, files []string, records []Record, opts ...Option) ([]RenameOperation, error) {
	o := resolve(opts)
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return o.apply(ctx, cfg, files, records)
}

func (o *options) apply(ctx context.Context, cfg Config, files []string, records []Record) ([]RenameOperation, error) {
	if o.review != nil {
		reviewed, err := o.review(ctx, files, records)
		if err != nil {
			return nil, err
		}
		if len(reviewed) != len(files) {
			return nil, fmt.Errorf("review returned %d records for %d files", len(reviewed), len(files))
		}
		records = reviewed
	}

	r := renamer.New(layout(cfg)).WithEvents(o.events)
	if o.dryRun {
		r.WithDryRun()
	}
	if cfg.Rename.UndoLog != "" {
		r.WithUndoLog(cfg.Rename.UndoLog)
	}
	if cfg.Rename.SetMtime {
		r.WithMtime()
	}
	if cfg.Rename.TagMKV {
		if tagger.IsAvailable() {
			r.WithTagger(tagger.MKV{})
		} else {
			o.emit(EventWarning, "mkvpropedit not found, files will not be tagged")
		}
	}

	ops, err := r.Run(ctx, files, records)
	if err != nil {
		return ops, err
	}
	if !o.dryRun && cfg.Reference.Promote {
		refs, err := o.loadRefs(cfg)
		if err != nil {
			o.emit(EventWarning, "Could not update reference lists: %v", err)
			return ops, nil
		}
		promote(o, refs, config.ReferencePaths(cfg), ops)
	}
	return ops, nil
}

// Undo reverses the moves recorded in the configured undo log.
func Undo(ctx context.Context, opts ...Option) ([]RenameOperation, error) {
	o := resolve(opts)
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Rename.UndoLog == "" {
		return nil, fmt.Errorf("no undo log configured")
	}
	r := renamer.New(layout(cfg)).WithEvents(o.events)
	if o.dryRun {
		r.WithDryRun()
	}
	return r.Undo(ctx, cfg.Rename.UndoLog)
}

func fillFromTags(path string, rec Record) Record {
	h, err := probe.Read(path)
	if err != nil || h.IsEmpty() {
		return rec
	}
	return probe.Fill(rec, h)
}

// promote moves the names of moved shows to the top of their reference
// lists. Failures only produce warnings.
func promote(o *options, refs *reference.Set, paths reference.Paths, ops []RenameOperation) {
	seen := make(map[string]bool)
	for _, op := range ops {
		if op.Status != StatusSuccess {
			continue
		}
		for _, entry := range []struct {
			path  string
			dict  *reference.Dictionary
			value string
		}{
			{paths.Artists, refs.Artists, op.Record.Artist},
			{paths.Venues, refs.Venues, op.Record.Venue},
			{paths.Cities, refs.Cities, op.Record.City},
		} {
			key := entry.path + "\x00" + strings.ToLower(entry.value)
			if entry.value == "" || seen[key] {
				continue
			}
			seen[key] = true
			if err := reference.Promote(entry.path, entry.dict, entry.value); err != nil {
				o.emit(EventWarning, "Could not update %s: %v", filepath.Base(entry.path), err)
			}
		}
	}
}
