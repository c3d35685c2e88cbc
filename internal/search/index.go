// Package search keeps an in-memory Bleve index of catalog entries for tag facet counts.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/domain"
)

const batchSize = 500

// TagIndex answers "how many entries carry each tag" for the tag bar.
//
// All methods are safe for concurrent use. Rebuild swaps in a freshly built
// index, so readers never observe a partial catalog.
type TagIndex struct {
	mu      sync.RWMutex
	index   bleve.Index
	tagSize int
	logger  *slog.Logger
}

// NewTagIndex creates an empty index.
func NewTagIndex(logger *slog.Logger) (*TagIndex, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &TagIndex{index: idx, logger: logger}, nil
}

// Rebuild replaces the indexed documents with the entries of c.
func (t *TagIndex) Rebuild(c *catalog.Catalog) error {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	entries := c.Entries()
	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))

		batch := idx.NewBatch()
		for _, e := range entries[i:end] {
			if err := batch.Index(strconv.Itoa(e.ID), document(e)); err != nil {
				_ = idx.Close()
				return fmt.Errorf("batch index %d: %w", e.ID, err)
			}
		}
		if err := idx.Batch(batch); err != nil {
			_ = idx.Close()
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	t.mu.Lock()
	old := t.index
	t.index = idx
	t.tagSize = c.Tags().Len()
	t.mu.Unlock()

	if err := old.Close(); err != nil {
		t.logger.Warn("failed to close previous tag index", "error", err)
	}
	t.logger.Info("rebuilt tag index", "entries", len(entries), "tags", c.Tags().Len())
	return nil
}

func document(e domain.PromptEntry) map[string]any {
	tags := make([]string, len(e.Tags))
	for i, tag := range e.Tags {
		tags[i] = string(tag)
	}
	return map[string]any{
		fieldTags:   tags,
		fieldWeight: float64(e.Weight),
	}
}

// TagCounts returns, for each tag, the number of entries carrying it among the
// entries that carry every tag in within. An empty within counts across the
// whole catalog. Tags with no entries are absent from the result.
func (t *TagIndex) TagCounts(ctx context.Context, within ...domain.TagID) (map[domain.TagID]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := max(t.tagSize, 1)
	req := bleve.NewSearchRequestOptions(scope(within), 0, 0, false)
	req.AddFacet(fieldTags, bleve.NewFacetRequest(fieldTags, size))

	res, err := t.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tag facet search: %w", err)
	}

	counts := make(map[domain.TagID]int)
	if facet, ok := res.Facets[fieldTags]; ok && facet.Terms != nil {
		for _, term := range facet.Terms.Terms() {
			counts[domain.TagID(term.Term)] = term.Count
		}
	}
	return counts, nil
}

// DocumentCount returns the number of indexed entries.
func (t *TagIndex) DocumentCount() (uint64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.DocCount()
}

// Close releases the index.
func (t *TagIndex) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.Close()
}

func scope(within []domain.TagID) query.Query {
	if len(within) == 0 {
		return bleve.NewMatchAllQuery()
	}
	terms := make([]query.Query, len(within))
	for i, tag := range within {
		q := bleve.NewTermQuery(string(tag))
		q.SetField(fieldTags)
		terms[i] = q
	}
	return bleve.NewConjunctionQuery(terms...)
}
