package catalog

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Source holds the current catalog snapshot. Readers always see a complete
// catalog; Reload swaps in a new one atomically or keeps the old one on error.
type Source struct {
	path    string
	current atomic.Pointer[Catalog]
	logger  *slog.Logger

	mu        sync.Mutex
	listeners []func(*Catalog)
}

// NewSource loads the catalog at path, or the embedded default when path is empty.
func NewSource(path string, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{path: path, logger: logger}

	c, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return s, nil
}

// NewStaticSource wraps an already built catalog. Reload is a no-op.
func NewStaticSource(c *Catalog) *Source {
	s := &Source{logger: slog.Default()}
	s.current.Store(c)
	return s
}

// Current returns the active catalog.
func (s *Source) Current() *Catalog {
	return s.current.Load()
}

// Path returns the backing file path, empty for embedded or static catalogs.
func (s *Source) Path() string {
	return s.path
}

// OnReload registers fn to be called with each newly loaded catalog.
func (s *Source) OnReload(fn func(*Catalog)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Reload re-reads the backing file. On failure the previous catalog stays active.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}

	c, err := s.load()
	if err != nil {
		s.logger.Warn("catalog reload failed, keeping previous catalog",
			"path", s.path,
			"error", err,
		)
		return err
	}
	s.current.Store(c)

	s.logger.Info("catalog reloaded",
		"path", s.path,
		"entries", c.Len(),
		"tags", c.Tags().Len(),
	)

	s.mu.Lock()
	listeners := make([]func(*Catalog), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
	return nil
}

func (s *Source) load() (*Catalog, error) {
	if s.path == "" {
		c, err := Default()
		if err != nil {
			return nil, fmt.Errorf("load embedded catalog: %w", err)
		}
		return c, nil
	}
	return Load(s.path)
}
