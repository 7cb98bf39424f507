// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch converts PDFs as they appear in a directory. PDFs already
// present are converted first; new or rewritten PDFs are converted once they
// have been quiet for the settle delay. Conversions run one at a time on the
// watcher's goroutine.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/pdf2md/internal/convert"
)

// DefaultSettle is how long a PDF must go without write events before it is
// converted.
const DefaultSettle = 2 * time.Second

// Watcher converts PDFs dropped into a single directory (non-recursive).
type Watcher struct {
	dir    string
	conv   *convert.Converter
	settle time.Duration
	out    io.Writer
}

// New creates a Watcher for dir. A non-positive settle uses DefaultSettle.
// Status lines go to out; nil discards them.
func New(dir string, conv *convert.Converter, settle time.Duration, out io.Writer) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	if out == nil {
		out = io.Discard
	}
	return &Watcher{dir: dir, conv: conv, settle: settle, out: out}
}

// Run watches the directory until ctx is cancelled. It returns an error only
// if the directory cannot be watched or listed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	// Watch before the initial scan so files created in between are seen.
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	existing, err := convert.FindPDFs(w.dir)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Fprintf(w.out, "Found %d PDF file(s):\n", len(existing))
		w.conv.ConvertBatch(ctx, existing)
	}
	fmt.Fprintf(w.out, "Watching %s for new PDF files\n", w.dir)

	tick := w.settle / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !convert.MatchesPDFGlob(ev.Name) {
				continue
			}
			slog.Debug("pdf event", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "dir", w.dir, "error", err)

		case now := <-ticker.C:
			w.flush(ctx, pending, now)
		}
	}
}

// flush converts every pending PDF that has settled, in name order.
func (w *Watcher) flush(ctx context.Context, pending map[string]time.Time, now time.Time) {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)

	for _, path := range ready {
		delete(pending, path)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			slog.Debug("pdf gone before conversion", "path", path)
			continue
		}
		w.conv.ConvertFile(ctx, path, convert.OutputPath(path))
	}
}
