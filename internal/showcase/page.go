package showcase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aishort/showcase-server/internal/catalog"
	"github.com/aishort/showcase-server/internal/copycount"
	"github.com/aishort/showcase-server/internal/domain"
	"github.com/aishort/showcase-server/internal/favorites"
	"github.com/aishort/showcase-server/internal/pagination"
	"github.com/aishort/showcase-server/internal/urlstate"
)

// Config configures a Page.
type Config struct {
	Locale         domain.Locale
	PageSize       int
	Threshold      int
	SearchDebounce time.Duration
	// AfterFunc replaces time.AfterFunc for the search debounce.
	AfterFunc urlstate.AfterFunc
	// Capture records scroll position and focus for each history entry.
	Capture urlstate.UserStateFunc
	Logger  *slog.Logger
}

// Page is the single rendering context of the showcase. It owns the filter
// state (through its syncer), the session, the pagination window and the
// copy counters. Every mutation goes through its methods.
type Page struct {
	source  *catalog.Source
	syncer  *urlstate.Syncer
	window  *pagination.Window
	counts  *copycount.Aggregator
	history urlstate.History
	logger  *slog.Logger

	mu      sync.Mutex
	session favorites.Session
	locale  domain.Locale
	english bool
}

// NewPage builds an unmounted page. Until Mount, View renders the unfiltered catalog.
func NewPage(source *catalog.Source, history urlstate.History, counts *copycount.Aggregator, cfg Config) *Page {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if !cfg.Locale.Valid() {
		cfg.Locale = domain.DefaultLocale
	}
	if counts == nil {
		counts = copycount.New(nil)
	}

	p := &Page{
		source:  source,
		window:  pagination.New(cfg.PageSize, cfg.Threshold),
		counts:  counts,
		history: history,
		logger:  cfg.Logger,
		session: favorites.Anonymous,
		locale:  cfg.Locale,
	}
	p.syncer = urlstate.NewSyncer(history, p.registry, urlstate.Options{
		Debounce:  cfg.SearchDebounce,
		AfterFunc: cfg.AfterFunc,
		Capture:   cfg.Capture,
		Logger:    cfg.Logger,
	})
	p.syncer.OnSwap(func(_, _ domain.FilterState) {
		p.window.Reset()
	})
	p.syncer.OnChange(func(_, next domain.FilterState) {
		p.logger.Debug("filter changed",
			"tags", next.Tags,
			"operator", next.Operator,
			"name", next.Search,
		)
	})
	return p
}

func (p *Page) registry() *domain.TagRegistry {
	return p.source.Current().Tags()
}

// Mount applies the URL state and starts the copy count fetch.
func (p *Page) Mount(ctx context.Context) {
	p.syncer.Mount()
	p.counts.Start(ctx)
}

// Close stops following navigation and waits for background work.
func (p *Page) Close() {
	p.syncer.Unmount()
	p.counts.Close()
}

// SetSession replaces the authentication state. A nil-user session is anonymous.
func (p *Page) SetSession(s favorites.Session) {
	p.mu.Lock()
	p.session = s
	p.mu.Unlock()
}

// SetUser is SetSession for an optional user record.
func (p *Page) SetUser(u *domain.User) {
	p.SetSession(favorites.FromUser(u))
}

// SetLocale changes the UI locale used for search and card text.
func (p *Page) SetLocale(l domain.Locale) {
	if !l.Valid() {
		return
	}
	p.mu.Lock()
	p.locale = l
	p.mu.Unlock()
}

// ToggleTag selects or deselects a tag.
func (p *Page) ToggleTag(t domain.TagID) {
	p.syncer.ToggleTag(t)
}

// SetOperator changes how selected tags combine.
func (p *Page) SetOperator(op domain.Operator) {
	p.syncer.SetOperator(op)
}

// ToggleOperator switches between OR and AND.
func (p *Page) ToggleOperator() {
	if p.syncer.State().Operator == domain.OperatorAND {
		p.syncer.SetOperator(domain.OperatorOR)
		return
	}
	p.syncer.SetOperator(domain.OperatorAND)
}

// Type records the search input value.
func (p *Page) Type(text string) {
	p.syncer.Input(text)
}

// LoadMore expands the pagination window for the current filter state.
func (p *Page) LoadMore() {
	p.syncer.Read(func(domain.FilterState, string) {
		p.window.Expand()
	})
}

// ToggleLanguage switches cards between the UI locale and English.
func (p *Page) ToggleLanguage() {
	p.mu.Lock()
	p.english = !p.english
	p.mu.Unlock()
}

// Copy records a copy of entry id. It returns false for unknown entries.
func (p *Page) Copy(id int) (int, bool) {
	if !p.source.Current().Has(id) {
		return 0, false
	}
	return p.counts.Increment(id), true
}

// Location returns the current history entry.
func (p *Page) Location() urlstate.Location {
	return p.history.Location()
}

// SearchPending reports whether typed text is waiting to be written to the URL.
func (p *Page) SearchPending() bool {
	return p.syncer.SearchPending()
}

// View renders the current frame.
func (p *Page) View() View {
	p.mu.Lock()
	session, locale, english := p.session, p.locale, p.english
	p.mu.Unlock()

	var (
		state    domain.FilterState
		input    string
		expanded bool
	)
	p.syncer.Read(func(st domain.FilterState, in string) {
		state, input = st, in
		expanded = p.window.Expanded()
	})

	v := Render(RenderInput{
		Catalog:   p.source.Current(),
		State:     state,
		Session:   session,
		Locale:    locale,
		English:   english,
		Expanded:  expanded,
		PageSize:  p.window.PageSize(),
		Threshold: p.window.Threshold(),
		Counts:    p.counts.Count,
	})
	v.InputValue = input
	return v
}
