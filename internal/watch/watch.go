// Package watch re-runs validation when watched workspace files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher debounces filesystem events over a workspace and invokes a
// callback once changes settle. Rapid saves from editors collapse into a
// single callback run.
type Watcher struct {
	mu          sync.Mutex
	fsw         *fsnotify.Watcher
	root        string
	dirs        []string
	onSettle    func(context.Context)
	log         *zap.Logger
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// New creates a Watcher over the given workspace-relative dirs. onSettle
// runs on the watcher goroutine after events settle.
func New(root string, dirs []string, onSettle func(context.Context), log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:         fsw,
		root:        root,
		dirs:        dirs,
		onSettle:    onSettle,
		log:         log,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start registers the watch dirs and begins the event loop in a goroutine.
// Dirs that cannot be watched (usually not yet created) are skipped.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, dir := range w.dirs {
		abs := filepath.Join(w.root, dir)
		if err := w.fsw.Add(abs); err != nil {
			w.log.Debug("skipping unwatchable dir", zap.String("dir", abs), zap.Error(err))
			continue
		}
		w.log.Debug("watching", zap.String("dir", abs))
	}

	go w.run(ctx)
	return nil
}

// Stop shuts the event loop down and waits for it to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fsw.Close(); err != nil {
		w.log.Warn("closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	sweep := time.NewTicker(100 * time.Millisecond)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-sweep.C:
			w.processSettled(ctx)
		}
	}
}

// handleEvent records a change for debounced processing. Chmod-only events
// carry no content change and are dropped.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.log.Debug("fs event", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))

	w.mu.Lock()
	w.debounceMap[ev.Name] = time.Now()
	w.mu.Unlock()
}

// processSettled fires the callback once when at least one recorded change
// has been quiet for the debounce window.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	settled := 0
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			delete(w.debounceMap, path)
			settled++
		}
	}
	w.mu.Unlock()

	if settled > 0 {
		w.onSettle(ctx)
	}
}

// DirsFor returns the sorted unique parent directories of the given
// workspace-relative files. "." covers files at the root itself.
func DirsFor(files []string) []string {
	seen := map[string]bool{}
	for _, f := range files {
		seen[filepath.Dir(f)] = true
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}
