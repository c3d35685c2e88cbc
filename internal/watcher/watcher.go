// Package watcher reports settled changes to individual files using fsnotify.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned when Run is called twice.
var ErrAlreadyRunning = errors.New("watcher already running")

// Watcher watches individual files. Each file is watched through its parent
// directory so editors that replace the file by rename are still observed.
type Watcher struct {
	logger *slog.Logger
	opts   Options
	fs     *fsnotify.Watcher

	mu      sync.Mutex
	files   map[string]bool // path -> existed at last check
	pending map[string]*pendingEvent
	running bool

	settled chan Event
	done    chan struct{}
}

type pendingEvent struct {
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// New creates a watcher. Call Watch for each file, then Run.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts.setDefaults()

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		opts:    opts,
		fs:      fs,
		files:   make(map[string]bool),
		pending: make(map[string]*pendingEvent),
		settled: make(chan Event),
		done:    make(chan struct{}),
	}, nil
}

// Watch starts observing path. The file does not need to exist yet but its
// directory does.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if err := w.fs.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	_, statErr := os.Stat(abs)

	w.mu.Lock()
	w.files[abs] = statErr == nil
	w.mu.Unlock()

	w.logger.Debug("watching file", "path", abs)
	return nil
}

// Run delivers settled events to handle until ctx is done. handle is called
// from Run's goroutine, one event at a time. The watcher cannot be reused
// after Run returns.
func (w *Watcher) Run(ctx context.Context, handle func(Event)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleFS(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		case ev := <-w.settled:
			handle(ev)
		}
	}
}

func (w *Watcher) shutdown() {
	close(w.done)

	w.mu.Lock()
	for _, p := range w.pending {
		p.timer.Stop()
	}
	clear(w.pending)
	w.mu.Unlock()

	if err := w.fs.Close(); err != nil {
		w.logger.Warn("failed to close file watcher", "error", err)
	}
}

func (w *Watcher) handleFS(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	if w.opts.shouldIgnore(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, watched := w.files[path]; !watched {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.cancelLocked(path)
		w.files[path] = false
		w.emitAsync(Event{Type: EventRemoved, Path: path})
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		w.settleLocked(path)
	}
}

func (w *Watcher) settleLocked(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	if p, ok := w.pending[path]; ok {
		p.timer.Stop()
	}
	p := &pendingEvent{size: info.Size(), modTime: info.ModTime()}
	p.timer = time.AfterFunc(w.opts.SettleDelay, func() { w.checkSettled(path) })
	w.pending[path] = p
}

func (w *Watcher) checkSettled(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[path]
	if !ok {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		w.files[path] = false
		w.emitAsync(Event{Type: EventRemoved, Path: path})
		return
	}

	if info.Size() != p.size || !info.ModTime().Equal(p.modTime) {
		p.size = info.Size()
		p.modTime = info.ModTime()
		p.timer = time.AfterFunc(w.opts.SettleDelay, func() { w.checkSettled(path) })
		return
	}

	delete(w.pending, path)

	typ := EventModified
	if !w.files[path] {
		typ = EventAdded
	}
	w.files[path] = true

	w.emitAsync(Event{Type: typ, Path: path, Size: info.Size(), ModTime: info.ModTime()})
}

func (w *Watcher) cancelLocked(path string) {
	if p, ok := w.pending[path]; ok {
		p.timer.Stop()
		delete(w.pending, path)
	}
}

// emitAsync hands ev to Run without holding the lock while Run is busy.
func (w *Watcher) emitAsync(ev Event) {
	go func() {
		select {
		case w.settled <- ev:
		case <-w.done:
		}
	}()
}
