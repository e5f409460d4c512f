package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/presentai/presentai/internal/core/domain"
	"github.com/presentai/presentai/internal/core/ports/driving"
	"github.com/presentai/presentai/internal/logger"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// ErrMissingExportService is returned when no export service is provided.
var ErrMissingExportService = errors.New("watch: export service is required")

// Config describes what to watch and where to write.
type Config struct {
	// Input is the presentation JSON document.
	Input string

	// OutputDir receives the exported deck. Empty uses the input's directory.
	OutputDir string

	// Debounce is the quiet period before re-exporting. Zero uses DefaultDebounce.
	Debounce time.Duration

	// Options are passed to every export. An empty FileNameHint uses the
	// input file's base name.
	Options domain.ExportOptions
}

// Event reports the outcome of one export.
type Event struct {
	// Path is where the deck was written. Empty on failure.
	Path   string
	Result *domain.ExportResult
	Err    error
}

// Watcher exports a document file on every change.
type Watcher struct {
	exporter driving.ExportService
	cfg      Config
	input    string
}

// New creates a watcher for cfg.Input.
func New(exporter driving.ExportService, cfg Config) (*Watcher, error) {
	if exporter == nil {
		return nil, ErrMissingExportService
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("%w: input file is required", domain.ErrInvalidInput)
	}
	input, err := filepath.Abs(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("resolving input path: %w", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Dir(input)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Options.FileNameHint == "" {
		cfg.Options.FileNameHint = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	return &Watcher{exporter: exporter, cfg: cfg, input: input}, nil
}

// Input returns the absolute path of the watched document.
func (w *Watcher) Input() string {
	return w.input
}

// ExportOnce reads the document, exports it and writes the deck.
func (w *Watcher) ExportOnce(ctx context.Context) Event {
	start := time.Now()
	defer logger.Timed("watch export", start)

	data, err := os.ReadFile(w.input)
	if err != nil {
		return Event{Err: fmt.Errorf("reading %s: %w", w.input, err)}
	}
	p, err := domain.UnmarshalPresentation(data)
	if err != nil {
		return Event{Err: fmt.Errorf("decoding %s: %w", w.input, err)}
	}

	result, err := w.exporter.ExportDocument(ctx, p, w.cfg.Options)
	if err != nil {
		return Event{Err: err}
	}

	if err := os.MkdirAll(w.cfg.OutputDir, 0755); err != nil {
		return Event{Result: result, Err: fmt.Errorf("creating output directory: %w", err)}
	}
	path := filepath.Join(w.cfg.OutputDir, result.FileName)
	if err := os.WriteFile(path, result.Data, 0644); err != nil {
		return Event{Result: result, Err: fmt.Errorf("writing %s: %w", path, err)}
	}
	return Event{Path: path, Result: result}
}

// Watch exports the document immediately and again after every change
// until ctx is cancelled. The returned channel is closed when watching stops.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.input)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(w.input), err)
	}

	events := make(chan Event, 1)
	go w.loop(ctx, fsw, events)
	return events, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, events chan<- Event) {
	defer close(events)
	defer fsw.Close()

	send := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(w.ExportOnce(ctx)) {
		return
	}

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.handleFsEvent(ev) {
				logger.Debug("watch: %s %s", ev.Op, ev.Name)
				timer.Reset(w.cfg.Debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			if !send(w.ExportOnce(ctx)) {
				return
			}
		}
	}
}

// handleFsEvent reports whether ev should trigger a re-export.
// Only writes to, or replacements of, the watched file count.
func (w *Watcher) handleFsEvent(ev fsnotify.Event) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != w.input {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
