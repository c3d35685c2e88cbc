package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/copycount"
	"github.com/aishort/showcase-server/internal/domain"
	domainerrors "github.com/aishort/showcase-server/internal/errors"
	"github.com/aishort/showcase-server/internal/favorites"
	"github.com/aishort/showcase-server/internal/showcase"
	"github.com/aishort/showcase-server/internal/urlstate"
)

// ShowcaseConfig holds the rendering defaults.
type ShowcaseConfig struct {
	DefaultLocale domain.Locale
	PageSize      int
	Threshold     int
}

// ShowcaseService renders the showcase for one HTTP request. Each request is
// a navigation to its URL on an already mounted page.
type ShowcaseService struct {
	source *catalog.Source
	counts copycount.Fetcher
	cfg    ShowcaseConfig
	logger *slog.Logger
}

// NewShowcaseService creates a new showcase service.
func NewShowcaseService(source *catalog.Source, counts copycount.Fetcher, cfg ShowcaseConfig, logger *slog.Logger) *ShowcaseService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if !cfg.DefaultLocale.Valid() {
		cfg.DefaultLocale = domain.DefaultLocale
	}
	return &ShowcaseService{source: source, counts: counts, cfg: cfg, logger: logger}
}

// RenderRequest describes one showcase request.
type RenderRequest struct {
	// Query is the page URL query (tags, operator, name).
	Query url.Values
	// User is nil for anonymous visitors.
	User *domain.User
	// Locale is a UI locale such as "zh-Hans"; empty or unknown uses the default.
	Locale   string
	English  bool
	Expanded bool
}

// Render decodes the filter state from the query and renders the view.
func (s *ShowcaseService) Render(ctx context.Context, req RenderRequest) showcase.View {
	c := s.source.Current()
	state := urlstate.FromValues(req.Query, c.Tags())
	counts := s.fetchCounts(ctx)

	return showcase.Render(showcase.RenderInput{
		Catalog:   c,
		State:     state,
		Session:   favorites.FromUser(req.User),
		Locale:    domain.LocaleOrDefault(req.Locale, s.cfg.DefaultLocale),
		English:   req.English,
		Expanded:  req.Expanded,
		PageSize:  s.cfg.PageSize,
		Threshold: s.cfg.Threshold,
		Counts:    func(id int) int { return counts[id] },
	})
}

// Entry renders a single prompt card with the user's favorites overlay applied.
func (s *ShowcaseService) Entry(ctx context.Context, entryID int, user *domain.User, locale string, english bool) (showcase.Card, error) {
	e, ok := s.source.Current().Get(entryID)
	if !ok {
		return showcase.Card{}, domainerrors.NotFoundf("prompt %d not found", entryID)
	}

	loc := domain.LocaleOrDefault(locale, s.cfg.DefaultLocale)
	display := loc
	if english {
		display = domain.LocaleEn
	}

	counts := s.fetchCounts(ctx)
	return showcase.NewCard(favorites.Effective(e, favorites.FromUser(user)), display, loc, counts[entryID]), nil
}

// fetchCounts degrades to an empty mapping when the counter source fails.
func (s *ShowcaseService) fetchCounts(ctx context.Context) map[int]int {
	if s.counts == nil {
		return map[int]int{}
	}
	counts, err := s.counts.FetchAll(ctx)
	if err != nil {
		s.logger.Warn("copy counts unavailable", "error", err)
		return map[int]int{}
	}
	return counts
}
