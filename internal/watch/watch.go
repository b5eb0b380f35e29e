// Package watch runs a long-lived directory watcher that splits PDF files as
// they appear.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jackzampolin/pdfchunk/internal/config"
	"github.com/jackzampolin/pdfchunk/internal/plan"
	"github.com/jackzampolin/pdfchunk/internal/split"
)

// settleInterval is how long a new file must keep a stable size before it is
// considered fully written. Scanners and downloads write PDFs incrementally.
const settleInterval = 500 * time.Millisecond

// settleAttempts bounds how long we wait for a file to stop growing.
const settleAttempts = 20

// Options configures a watch run.
type Options struct {
	Dir    string
	Config func() *config.Config // snapshot accessor, safe under hot reload
	Logger *slog.Logger
}

// Run watches opts.Dir until the context is cancelled, splitting every PDF
// that is created or moved into it. Files already present at startup are
// processed first. A failed document is logged and skipped; only watcher
// failures end the run.
func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", opts.Dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(opts.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.Dir, err)
	}
	log.Info("watching for PDFs", "dir", opts.Dir)

	done := make(map[string]bool)

	// Process anything already sitting in the directory.
	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		return fmt.Errorf("failed to list watch directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !IsPDF(e.Name()) {
			continue
		}
		path := filepath.Join(opts.Dir, e.Name())
		process(ctx, path, opts, log)
		done[path] = true
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch classify(event) {
			case actionForget:
				delete(done, event.Name)
			case actionProcess:
				if done[event.Name] || !waitSettled(ctx, event.Name) {
					continue
				}
				process(ctx, event.Name, opts, log)
				done[event.Name] = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}

// action is what the watch loop does with one filesystem event.
type action int

const (
	actionIgnore action = iota
	actionProcess
	actionForget
)

// classify maps a watcher event to an action. Rename and Remove events carry
// the departing path (a file moved into the directory arrives as Create), so
// they clear the processed mark rather than naming a new file to split.
func classify(event fsnotify.Event) action {
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		return actionForget
	case event.Has(fsnotify.Create) && IsPDF(event.Name):
		return actionProcess
	}
	return actionIgnore
}

func process(ctx context.Context, path string, opts Options, log *slog.Logger) {
	cfg := opts.Config()
	req := &split.Request{
		PDFPath:     path,
		OutputDir:   cfg.OutputDir,
		Mode:        plan.Mode(cfg.Mode),
		ChunkSize:   cfg.ChunkSize,
		SearchDepth: cfg.SearchDepth,
		PageOffset:  cfg.PageOffset,
		MaxFilename: cfg.MaxFilename,
		Logger:      log,
	}
	res, err := split.Run(ctx, req)
	if err != nil {
		log.Error("failed to split document", "file", filepath.Base(path), "error", err)
		return
	}
	log.Info("document split",
		"file", filepath.Base(path), "outcome", res.Outcome, "files", len(res.Files))
}

// waitSettled blocks until the file size stops changing or the context ends.
// Returns false when the file vanished or never settled.
func waitSettled(ctx context.Context, path string) bool {
	var lastSize int64 = -1
	for i := 0; i < settleAttempts; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(settleInterval):
		}
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() == lastSize && info.Size() > 0 {
			return true
		}
		lastSize = info.Size()
	}
	return false
}

// IsPDF reports whether name looks like a PDF file.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
