package urlstate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aishort/showcase-server/internal/domain"
)

// RegistryFunc returns the tag registry that URL tags are validated against.
type RegistryFunc func() *domain.TagRegistry

// ChangeFunc is called after the filter state changed.
type ChangeFunc func(prev, next domain.FilterState)

// Options configures a Syncer.
type Options struct {
	// Debounce is the search text quiescence period. Zero means DefaultSearchDebounce.
	Debounce time.Duration
	// AfterFunc overrides the timer used by the debouncer.
	AfterFunc AfterFunc
	// Capture records the user state stored with each pushed entry.
	Capture UserStateFunc
	Logger  *slog.Logger
}

// Syncer owns the FilterState of one page and keeps it in sync with a History.
//
// Initialization is two-phase. Until Mount is called State returns the
// default state regardless of the URL, so the first frame always renders
// unfiltered. Mount applies the URL and starts following navigation.
type Syncer struct {
	history  History
	registry RegistryFunc
	capture  UserStateFunc
	debounce *Debouncer
	logger   *slog.Logger

	mu       sync.Mutex
	mounted  bool
	state    domain.FilterState
	input    string
	unlisten func()
	onChange []ChangeFunc
	onSwap   []ChangeFunc
}

// NewSyncer creates an unmounted syncer.
func NewSyncer(history History, registry RegistryFunc, opts Options) *Syncer {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultSearchDebounce
	}
	if opts.Capture == nil {
		opts.Capture = func() UserState { return UserState{} }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Syncer{
		history:  history,
		registry: registry,
		capture:  opts.Capture,
		debounce: NewDebouncer(opts.Debounce, opts.AfterFunc),
		logger:   opts.Logger,
		state:    domain.DefaultFilterState(),
	}
}

// OnChange registers fn for every filter state change.
func (s *Syncer) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// OnSwap registers fn to run inside the critical section that replaces the
// state, before any reader can observe the new value. fn must not call back
// into the Syncer.
func (s *Syncer) OnSwap(fn ChangeFunc) {
	s.mu.Lock()
	s.onSwap = append(s.onSwap, fn)
	s.mu.Unlock()
}

// Read calls fn with the state and input value while holding the syncer lock,
// so whatever fn reads alongside them is consistent with OnSwap hooks.
// fn must not call back into the Syncer.
func (s *Syncer) Read(fn func(state domain.FilterState, input string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state, s.input)
}

// Mount applies the current location and follows subsequent navigation.
// Calling Mount twice is a no-op.
func (s *Syncer) Mount() {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	unlisten := s.history.Listen(s.navigated)

	s.mu.Lock()
	s.unlisten = unlisten
	s.mu.Unlock()

	s.navigated(s.history.Location())
}

// Unmount stops following navigation and drops any pending search write-back.
func (s *Syncer) Unmount() {
	s.debounce.Cancel()

	s.mu.Lock()
	unlisten := s.unlisten
	s.unlisten = nil
	s.mounted = false
	s.mu.Unlock()

	if unlisten != nil {
		unlisten()
	}
}

// Mounted reports whether URL state is being applied.
func (s *Syncer) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

// State returns the applied filter state.
func (s *Syncer) State() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InputValue is the visible search input. It reflects every keystroke
// immediately, ahead of the debounced URL update.
func (s *Syncer) InputValue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// ToggleTag selects or deselects t and writes the URL immediately.
func (s *Syncer) ToggleTag(t domain.TagID) {
	s.mu.Lock()
	next := s.state.WithTagToggled(t, s.registry())
	s.mu.Unlock()

	s.push(next)
}

// SetTags replaces the selected tags and writes the URL immediately.
func (s *Syncer) SetTags(tags []domain.TagID) {
	s.mu.Lock()
	next := s.state
	next.Tags = s.registry().Canonical(tags)
	s.mu.Unlock()

	s.push(next)
}

// SetOperator changes the operator and writes the URL immediately.
func (s *Syncer) SetOperator(op domain.Operator) {
	s.mu.Lock()
	next := s.state
	next.Operator = domain.ParseOperator(string(op))
	s.mu.Unlock()

	s.push(next)
}

// Input records a keystroke. The input value changes now; the URL is written
// once no keystroke has arrived for the debounce period, using the location
// current at that moment.
func (s *Syncer) Input(text string) {
	s.mu.Lock()
	s.input = text
	s.mu.Unlock()

	s.debounce.Debounce(func() {
		loc := s.history.Location()
		q := loc.Values()
		if text == "" {
			q.Del(ParamName)
		} else {
			q.Set(ParamName, text)
		}
		s.history.Push(loc.Path, q.Encode(), s.captured())
		s.logger.Debug("search written to location", "name", text)
	})
}

// SearchPending reports whether a search write-back is scheduled.
func (s *Syncer) SearchPending() bool {
	return s.debounce.Pending()
}

func (s *Syncer) push(next domain.FilterState) {
	loc := s.history.Location()
	query := Encode(loc.Values(), next).Encode()
	s.history.Push(loc.Path, query, s.captured())
}

func (s *Syncer) captured() *UserState {
	us := s.capture()
	return &us
}

func (s *Syncer) navigated(loc Location) {
	next := FromValues(loc.Values(), s.registry())

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return
	}
	prev := s.state
	changed := !prev.Equal(next)
	if changed {
		for _, fn := range s.onSwap {
			fn(prev, next)
		}
	}
	s.state = next
	if !s.debounce.Pending() {
		s.input = next.Search
	}
	listeners := make([]ChangeFunc, len(s.onChange))
	copy(listeners, s.onChange)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(prev, next)
	}
}
