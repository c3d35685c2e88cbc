// Package copycount caches per-entry copy counters next to the render data.
package copycount

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultFetchTimeout bounds the one-time counter fetch.
const DefaultFetchTimeout = 5 * time.Second

// Fetcher loads the full counter mapping.
type Fetcher interface {
	FetchAll(ctx context.Context) (map[int]int, error)
}

// Recorder reports a copy to the counter service. It returns the stored count.
type Recorder interface {
	RecordCopy(ctx context.Context, id int) (int, error)
}

// Aggregator is a write-through counter cache: one background fetch provides
// the baseline and local copies are added on top immediately.
//
// With a Recorder, a copy stays pending until the recorder acknowledges it with
// the stored count; the acknowledged count then replaces the local increment.
// A fetched baseline for an entry with pending copies is held back until they
// settle, since the fetch may or may not include them. Each copy is therefore
// counted once whichever of the fetch and the recording lands first.
type Aggregator struct {
	fetcher  Fetcher
	recorder Recorder
	logger   *slog.Logger
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	once   sync.Once
	loaded chan struct{}
	wg     sync.WaitGroup

	mu      sync.RWMutex
	closed  bool
	base    map[int]int // fetched counts
	held    map[int]int // fetched counts waiting for pending copies
	acked   map[int]int // highest count returned by the recorder
	pending map[int]int // copies sent to the recorder, not yet answered
	local   map[int]int // copies only known locally
	failed  bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithRecorder reports every local increment to r in the background.
func WithRecorder(r Recorder) Option {
	return func(a *Aggregator) { a.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

// WithFetchTimeout bounds the initial fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New creates an aggregator. A nil fetcher behaves as an empty mapping.
func New(f Fetcher, opts ...Option) *Aggregator {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Aggregator{
		fetcher: f,
		logger:  slog.Default(),
		timeout: DefaultFetchTimeout,
		ctx:     ctx,
		cancel:  cancel,
		loaded:  make(chan struct{}),
		base:    make(map[int]int),
		held:    make(map[int]int),
		acked:   make(map[int]int),
		pending: make(map[int]int),
		local:   make(map[int]int),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start fetches the counters in the background. Only the first call has an effect.
func (a *Aggregator) Start(ctx context.Context) {
	a.once.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed {
			close(a.loaded)
			return
		}
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			defer close(a.loaded)
			a.fetch(ctx)
		}()
	})
}

func (a *Aggregator) fetch(parent context.Context) {
	if a.fetcher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, a.timeout)
	defer cancel()
	stop := context.AfterFunc(a.ctx, cancel)
	defer stop()

	counts, err := a.fetcher.FetchAll(ctx)
	if err != nil {
		a.logger.Warn("copy count fetch failed, showing zero counts", "error", err)
		a.mu.Lock()
		a.failed = true
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	for id, n := range counts {
		if n <= 0 {
			continue
		}
		if a.pending[id] > 0 {
			a.held[id] = n
		} else {
			a.base[id] = n
		}
	}
	a.mu.Unlock()

	a.logger.Debug("copy counts loaded", "entries", len(counts))
}

// Increment records one copy of id and returns the new local count.
// The count changes immediately; a configured Recorder is called in the background.
func (a *Aggregator) Increment(id int) int {
	a.mu.Lock()
	record := a.recorder != nil && !a.closed
	if record {
		a.pending[id]++
		a.wg.Add(1)
	} else {
		a.local[id]++
	}
	n := a.countLocked(id)
	a.mu.Unlock()

	if record {
		go a.record(id)
	}
	return n
}

func (a *Aggregator) record(id int) {
	defer a.wg.Done()

	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()
	stored, err := a.recorder.RecordCopy(ctx, id)

	a.mu.Lock()
	a.pending[id]--
	if a.pending[id] <= 0 {
		delete(a.pending, id)
	}
	switch {
	case err != nil:
		a.local[id]++
	case stored > a.acked[id]:
		a.acked[id] = stored
	}
	if n, ok := a.held[id]; ok && a.pending[id] == 0 {
		a.base[id] = n
		delete(a.held, id)
	}
	a.mu.Unlock()

	if err != nil {
		a.logger.Warn("failed to record copy", "entry_id", id, "error", err)
	}
}

func (a *Aggregator) countLocked(id int) int {
	return max(a.base[id], a.acked[id]) + a.pending[id] + a.local[id]
}

// Count returns the current count for id, zero when unknown.
func (a *Aggregator) Count(id int) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.countLocked(id)
}

// Snapshot returns a copy of all non-zero counts.
func (a *Aggregator) Snapshot() map[int]int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[int]int, len(a.base))
	for _, m := range []map[int]int{a.base, a.acked, a.pending, a.local} {
		for id := range m {
			if n := a.countLocked(id); n > 0 {
				out[id] = n
			}
		}
	}
	return out
}

// Loaded is closed once the initial fetch has finished, successfully or not.
func (a *Aggregator) Loaded() <-chan struct{} {
	return a.loaded
}

// Failed reports whether the initial fetch failed.
func (a *Aggregator) Failed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.failed
}

// Wait blocks until the fetch and all background recordings are done.
func (a *Aggregator) Wait() {
	a.wg.Wait()
}

// Close cancels background work and waits for it to stop.
// Copies made after Close are counted locally only.
func (a *Aggregator) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.wg.Wait()
}
