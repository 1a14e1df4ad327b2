package dump

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oneconcern/assetic/pkg/errors"
	"github.com/oneconcern/assetic/pkg/model"
	"go.uber.org/zap"
)

// ErrNothingToWatch is returned when none of the manifest directories can be watched
var ErrNothingToWatch = errors.New("no manifest directory to watch")

const (
	defaultDebounce = 300 * time.Millisecond
	tickInterval    = 50 * time.Millisecond
)

type watchSettings struct {
	debounce time.Duration
	onDump   func(model.Source, model.Stats, error)
}

// WatchOption for Watch
type WatchOption func(*watchSettings)

// WatchDebounce sets how long a manifest must stay untouched before it is dumped again
func WatchDebounce(d time.Duration) WatchOption {
	return func(s *watchSettings) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WatchNotify calls fn after every dump triggered by a change
func WatchNotify(fn func(model.Source, model.Stats, error)) WatchOption {
	return func(s *watchSettings) {
		s.onDump = fn
	}
}

// Watch dumps a source again whenever its manifest is written or created, until
// the context is done.
//
// Watching relies on the operating system's notifications: manifests must live
// on the local filesystem. A failed dump is reported and watching goes on.
func (d *Dumper) Watch(ctx context.Context, sources []model.Source, opts ...WatchOption) error {
	settings := watchSettings{debounce: defaultDebounce}
	for _, apply := range opts {
		apply(&settings)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(sources))
	dirs := make(map[string]bool, len(sources))
	for _, src := range sources {
		pth := filepath.Clean(src.Manifest)
		watched[pth] = true

		dir := filepath.Dir(pth)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			d.l.Warn("cannot watch manifest directory", zap.String("source", src.Name), zap.String("dir", dir), zap.Error(err))
			continue
		}
		dirs[dir] = true
		d.l.Debug("watching", zap.String("source", src.Name), zap.String("dir", dir))
	}
	if len(dirs) == 0 {
		return ErrNothingToWatch
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			pth := filepath.Clean(event.Name)
			if !model.IsManifestPath(pth) || !watched[pth] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			pending[pth] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.l.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			for _, src := range sources {
				pth := filepath.Clean(src.Manifest)
				last, ok := pending[pth]
				if !ok || now.Sub(last) < settings.debounce {
					continue
				}
				delete(pending, pth)

				stats, err := d.DumpSource(ctx, src)
				if err != nil {
					d.reporter.Warn(err.Error())
					d.l.Warn("dump failed", zap.String("source", src.Name), zap.Error(err))
				}
				if settings.onDump != nil {
					settings.onDump(src, stats, err)
				}
			}
		}
	}
}
