package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/report"
)

// Watch rebuilds a material and prints its report each time the file changes.
type Watch struct {
	Settle time.Duration `default:"100ms" help:"Wait this long after the last change before rebuilding."`

	Source string `arg:"" help:"Source material file." name:"source" type:"existingfile"`
}

// Run executes the watch command. It returns when ctx is cancelled.
func (w *Watch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path, err := filepath.Abs(w.Source)
	if err != nil {
		return ErrWatch.With(slog.String("file", w.Source)).Wrap(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	// Editors often replace a file rather than write it in place, so the
	// parent directory is watched and events are filtered by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return ErrWatch.With(slog.String("dir", filepath.Dir(path))).Wrap(err)
	}

	logger := log.FromContext(ctx).With(slog.String("file", path))
	out := outputFrom(ctx)

	w.rebuild(ctx, out, path, logger)

	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != path ||
				!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			logger.TraceContext(ctx, "watch event", slog.String("op", ev.Op.String()))
			settle = time.After(w.Settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.WarnContext(ctx, "watch error", slog.Any("error", err))

		case <-settle:
			settle = nil
			w.rebuild(ctx, out, path, logger)
		}
	}
}

// rebuild prints a report of the material at path, or logs why it could not
// be built. A broken file does not stop the watch.
func (w *Watch) rebuild(
	ctx context.Context,
	out io.Writer,
	path string,
	logger log.Logger,
) {
	m, err := load(ctx, path)
	if err != nil {
		logger.ErrorContext(ctx, "rebuild failed", slog.Any("error", err))
		fmt.Fprintf(out, "error: %v\n\n", err)

		return
	}

	if err := report.Print(out, m); err != nil {
		logger.ErrorContext(ctx, "print failed", slog.Any("error", err))

		return
	}

	fmt.Fprintln(out)
	logger.DebugContext(ctx, "rebuilt", slog.String("shader", m.Shader))
}
