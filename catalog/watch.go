package catalog

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher keeps a schema snapshot in sync with a YAML fixture file on disk.
// Schema returns the current snapshot; when the file changes the snapshot is
// replaced wholesale, so resolvers bound to an earlier snapshot keep seeing
// it unchanged. This matches the verifier's contract: a single verification
// call never observes a schema mutation.
type Watcher struct {
	path string
	log  *zap.Logger
	fs   *fsnotify.Watcher

	mu     sync.RWMutex
	schema *Schema

	done chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithLogger sets the logger for reload events. The default discards
// everything.
func WithLogger(log *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// Watch loads the fixture at path and starts watching it for changes.
// Close releases the watcher.
func Watch(path string, opts ...WatchOption) (*Watcher, error) {
	w := &Watcher{path: path, log: zap.NewNop(), done: make(chan struct{})}
	for _, opt := range opts {
		opt(w)
	}
	schema, err := LoadYAML(path)
	if err != nil {
		return nil, err
	}
	w.schema = schema

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: starting schema watcher: %w", err)
	}
	// Watch the directory rather than the file: editors commonly replace
	// the file by rename, which drops a file-level watch.
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("catalog: watching %s: %w", filepath.Dir(path), err)
	}
	w.fs = fs
	go w.run()
	return w, nil
}

// Schema returns the current snapshot.
func (w *Watcher) Schema() *Schema {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.schema
}

// Close stops watching. It is safe to call Schema after Close; the last
// snapshot remains available.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("schema watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	schema, err := LoadYAML(w.path)
	if err != nil {
		// Keep serving the previous snapshot; a broken fixture on disk
		// must not take down running verifications.
		w.log.Warn("schema reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.mu.Lock()
	w.schema = schema
	w.mu.Unlock()
	w.log.Debug("schema reloaded",
		zap.String("path", w.path),
		zap.String("snapshot", schema.ID()),
		zap.Int("tables", schema.Tables()),
	)
}
