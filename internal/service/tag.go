package service

import (
	"context"
	"log/slog"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/search"
)

// TagSummary is a selectable tag with the number of entries carrying it.
type TagSummary struct {
	domain.Tag
	Count    int  `json:"count"`
	Selected bool `json:"selected"`
}

// TagService builds the tag bar.
type TagService struct {
	source *catalog.Source
	index  *search.TagIndex
	logger *slog.Logger
}

// NewTagService creates a tag service and keeps index in sync with source.
func NewTagService(source *catalog.Source, index *search.TagIndex, logger *slog.Logger) (*TagService, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := index.Rebuild(source.Current()); err != nil {
		return nil, err
	}

	s := &TagService{source: source, index: index, logger: logger}
	source.OnReload(func(c *catalog.Catalog) {
		if err := index.Rebuild(c); err != nil {
			s.logger.Error("failed to rebuild tag index", "error", err)
		}
	})
	return s, nil
}

// Tags returns the selectable tags in registry order. With the AND operator
// counts are narrowed to entries carrying every selected tag, matching what
// selecting one more tag would leave.
func (s *TagService) Tags(ctx context.Context, state domain.FilterState) ([]TagSummary, error) {
	var within []domain.TagID
	if state.Operator == domain.OperatorAND {
		within = state.Tags
	}

	counts, err := s.index.TagCounts(ctx, within...)
	if err != nil {
		return nil, err
	}

	tags := s.source.Current().Tags().Selectable()
	out := make([]TagSummary, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagSummary{Tag: t, Count: counts[t.ID], Selected: state.HasTag(t.ID)})
	}
	return out, nil
}
