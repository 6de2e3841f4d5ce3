package templates

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce absorbs editor write bursts so a save triggers one reload.
const debounce = 250 * time.Millisecond

// Watcher reloads the catalog whenever a manifest in its directory changes.
// It is the development-mode counterpart of a process restart: the catalog is
// swapped in place while the server keeps running.
type Watcher struct {
	catalog *Catalog
	logger  *slog.Logger
	fsw     *fsnotify.Watcher
}

// NewWatcher starts watching the catalog's directory. It fails when the
// catalog has no directory configured.
func NewWatcher(catalog *Catalog, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(catalog.Dir()); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{catalog: catalog, logger: logger, fsw: fsw}, nil
}

// Run blocks until ctx is cancelled, reloading the catalog on changes.
// A failed reload keeps the previous catalog and is logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !isManifest(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("template watcher error", "error", err)
		case <-fire:
			timer = nil
			fire = nil
			if err := w.catalog.Load(); err != nil {
				w.logger.Error("template reload failed, keeping previous catalog", "error", err)
				continue
			}
			w.logger.Info("template catalog reloaded", "templates", len(w.catalog.List()))
		}
	}
}
