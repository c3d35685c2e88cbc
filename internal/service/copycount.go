package service

import (
	"context"
	"log/slog"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/copycount"
	domainerrors "github.com/aishort/showcase-server/internal/errors"
)

var (
	_ copycount.Fetcher  = (*CopyCountService)(nil)
	_ copycount.Recorder = (*CopyCountService)(nil)
)

// CopyCountService records and reports how often each prompt was copied.
type CopyCountService struct {
	store  CopyCountStore
	source *catalog.Source
	logger *slog.Logger
}

// NewCopyCountService creates a new copy count service.
func NewCopyCountService(s CopyCountStore, source *catalog.Source, logger *slog.Logger) *CopyCountService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CopyCountService{store: s, source: source, logger: logger}
}

// FetchAll returns every counter of an entry present in the current catalog.
func (s *CopyCountService) FetchAll(ctx context.Context) (map[int]int, error) {
	counts, err := s.store.CopyCounts(ctx)
	if err != nil {
		return nil, err
	}

	c := s.source.Current()
	for id := range counts {
		if !c.Has(id) {
			delete(counts, id)
		}
	}
	return counts, nil
}

// RecordCopy increments the counter of an entry and returns the new value.
func (s *CopyCountService) RecordCopy(ctx context.Context, entryID int) (int, error) {
	if !s.source.Current().Has(entryID) {
		return 0, domainerrors.NotFoundf("prompt %d not found", entryID)
	}

	n, err := s.store.IncrementCopyCount(ctx, entryID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("copy recorded", "entry_id", entryID, "count", n)
	return n, nil
}
