package urlstate

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aishort/showcase-server/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func registry() *domain.TagRegistry {
	return domain.NewTagRegistry(
		domain.Tag{ID: domain.TagFavorite},
		domain.Tag{ID: "writing"},
		domain.Tag{ID: "code"},
	)
}

func TestParse_RoundTrip(t *testing.T) {
	reg := registry()
	state := domain.FilterState{
		Tags:     []domain.TagID{"writing"},
		Operator: domain.OperatorAND,
		Search:   "poem",
	}

	query := Encode(nil, state).Encode()
	got := Parse(query, reg)
	assert.True(t, state.Equal(got), "got %+v from %q", got, query)
}

func TestReadTags(t *testing.T) {
	reg := registry()

	tests := []struct {
		name  string
		query string
		want  []domain.TagID
	}{
		{"repeated", "tags=code&tags=writing", []domain.TagID{"writing", "code"}},
		{"comma separated", "tags=code,writing", []domain.TagID{"writing", "code"}},
		{"unknown dropped", "tags=code&tags=<script>&tags=nope", []domain.TagID{"code"}},
		{"blank parts", "tags=,code,,", []domain.TagID{"code"}},
		{"duplicates", "tags=code&tags=code", []domain.TagID{"code"}},
		{"absent", "name=x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ReadTags(q, reg))
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	state := Parse("", registry())
	assert.Empty(t, state.Tags)
	assert.Equal(t, domain.OperatorOR, state.Operator)
	assert.Empty(t, state.Search)

	state = Parse("?operator=and&name=caf%C3%A9", registry())
	assert.Equal(t, domain.OperatorAND, state.Operator)
	assert.Equal(t, "café", state.Search)
}

func TestEncode(t *testing.T) {
	base := url.Values{"lang": {"en"}, ParamName: {"old"}, ParamOperator: {"AND"}}

	q := Encode(base, domain.FilterState{Tags: []domain.TagID{"code"}, Operator: domain.OperatorOR})
	assert.Equal(t, "en", q.Get("lang"), "unrelated parameters survive")
	assert.False(t, q.Has(ParamName), "empty search removes the parameter")
	assert.False(t, q.Has(ParamOperator), "OR is the absent default")
	assert.Equal(t, []string{"code"}, q[ParamTags])
	assert.Equal(t, "old", base.Get(ParamName), "base is not modified")
}

func TestMemoryHistory(t *testing.T) {
	h := NewMemoryHistory("/?tags=code")
	assert.Equal(t, "/", h.Location().Path)
	assert.Equal(t, "tags=code", h.Location().Query)

	var seen []string
	unlisten := h.Listen(func(l Location) { seen = append(seen, l.String()) })

	first := h.Location().Key
	h.Push("/", "name=a", &UserState{ScrollTopPosition: 10, FocusedElementID: "search"})
	assert.NotEqual(t, first, h.Location().Key)
	assert.Equal(t, 10, h.Location().State.ScrollTopPosition)

	require.True(t, h.Back())
	assert.Equal(t, "tags=code", h.Location().Query)
	assert.False(t, h.Back())

	h.Push("/", "name=b", nil)
	assert.False(t, h.Forward(), "push drops forward entries")
	assert.Equal(t, 2, h.Len())

	h.Replace("/", "name=c", nil)
	assert.Equal(t, 2, h.Len())

	unlisten()
	h.Push("/", "", nil)
	assert.Equal(t, []string{"/?name=a", "/?tags=code", "/?name=b", "/?name=c"}, seen)
}

func TestDebouncer_LastCallWins(t *testing.T) {
	clock := &fakeClock{}
	d := NewDebouncer(time.Second, clock.AfterFunc)

	var calls []string
	d.Debounce(func() { calls = append(calls, "a") })
	clock.Advance(200 * time.Millisecond)
	d.Debounce(func() { calls = append(calls, "ab") })
	clock.Advance(200 * time.Millisecond)
	d.Debounce(func() { calls = append(calls, "abc") })

	clock.Advance(999 * time.Millisecond)
	assert.Empty(t, calls)
	assert.True(t, d.Pending())

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"abc"}, calls)
	assert.False(t, d.Pending())
}

func TestDebouncer_SupersededTimerNeverRuns(t *testing.T) {
	var scheduled []func()
	after := func(_ time.Duration, f func()) Timer {
		scheduled = append(scheduled, f)
		return &fakeTimer{}
	}
	d := NewDebouncer(time.Second, after)

	var calls []string
	d.Debounce(func() { calls = append(calls, "old") })
	d.Debounce(func() { calls = append(calls, "new") })

	// The first timer fires late, after it was superseded.
	scheduled[0]()
	assert.Empty(t, calls)

	scheduled[1]()
	assert.Equal(t, []string{"new"}, calls)

	d.Debounce(func() { calls = append(calls, "cancelled") })
	d.Cancel()
	scheduled[2]()
	assert.Equal(t, []string{"new"}, calls)
}

func TestDebouncer_RealTimer(t *testing.T) {
	d := NewDebouncer(10*time.Millisecond, nil)
	done := make(chan string, 1)

	d.Debounce(func() { done <- "first" })
	d.Debounce(func() { done <- "second" })

	select {
	case got := <-done:
		assert.Equal(t, "second", got)
	case <-time.After(time.Second):
		t.Fatal("debounced function did not run")
	}
}

func newTestSyncer(t *testing.T, initial string) (*Syncer, *MemoryHistory, *fakeClock) {
	t.Helper()
	h := NewMemoryHistory(initial)
	clock := &fakeClock{}
	reg := registry()
	s := NewSyncer(h, func() *domain.TagRegistry { return reg }, Options{
		AfterFunc: clock.AfterFunc,
		Capture: func() UserState {
			return UserState{ScrollTopPosition: 120, FocusedElementID: "searchbar"}
		},
	})
	t.Cleanup(s.Unmount)
	return s, h, clock
}

func TestSyncer_HydrationIsTwoPhase(t *testing.T) {
	s, _, _ := newTestSyncer(t, "/?tags=writing&operator=AND&name=poem")

	assert.True(t, s.State().Equal(domain.DefaultFilterState()), "first frame is unfiltered")
	assert.Empty(t, s.InputValue())

	s.Mount()
	want := domain.FilterState{Tags: []domain.TagID{"writing"}, Operator: domain.OperatorAND, Search: "poem"}
	assert.True(t, s.State().Equal(want))
	assert.Equal(t, "poem", s.InputValue())
}

func TestSyncer_TagAndOperatorWriteImmediately(t *testing.T) {
	s, h, _ := newTestSyncer(t, "/?lang=en")
	s.Mount()

	var changes int
	s.OnChange(func(_, _ domain.FilterState) { changes++ })

	s.ToggleTag("code")
	assert.Equal(t, []domain.TagID{"code"}, s.State().Tags)
	assert.Equal(t, "code", h.Location().Values().Get(ParamTags))
	assert.Equal(t, "en", h.Location().Values().Get("lang"))
	require.NotNil(t, h.Location().State)
	assert.Equal(t, UserState{ScrollTopPosition: 120, FocusedElementID: "searchbar"}, *h.Location().State)

	s.SetOperator(domain.OperatorAND)
	assert.Equal(t, "AND", h.Location().Values().Get(ParamOperator))

	s.ToggleTag("bogus")
	assert.Equal(t, []domain.TagID{"code"}, s.State().Tags)

	s.SetTags([]domain.TagID{"writing", "nope"})
	assert.Equal(t, []domain.TagID{"writing"}, s.State().Tags)

	assert.Equal(t, 3, changes, "an unknown tag toggle does not change state")
}

func TestSyncer_OnSwapRunsBeforePublish(t *testing.T) {
	s, h, _ := newTestSyncer(t, "/")
	s.Mount()

	var (
		order   []string
		swapped []domain.FilterState
	)
	s.OnSwap(func(_, next domain.FilterState) {
		order = append(order, "swap")
		swapped = append(swapped, next)
	})
	s.OnChange(func(_, _ domain.FilterState) { order = append(order, "change") })

	s.ToggleTag("code")
	assert.Equal(t, []string{"swap", "change"}, order)
	require.Len(t, swapped, 1)
	assert.Equal(t, []domain.TagID{"code"}, swapped[0].Tags)

	loc := h.Location()
	h.Push(loc.Path, loc.Query, nil)
	assert.Len(t, order, 2, "navigation to an equal state runs no hooks")

	s.Read(func(state domain.FilterState, input string) {
		assert.Equal(t, []domain.TagID{"code"}, state.Tags)
		assert.Empty(t, input)
	})
}

func TestSyncer_SearchIsDebounced(t *testing.T) {
	s, h, clock := newTestSyncer(t, "/")
	s.Mount()
	before := h.Len()

	for _, text := range []string{"a", "ab", "abc"} {
		s.Input(text)
		assert.Equal(t, text, s.InputValue(), "input reflects every keystroke")
		clock.Advance(200 * time.Millisecond)
	}
	assert.Equal(t, before, h.Len())
	assert.Empty(t, s.State().Search)

	clock.Advance(799 * time.Millisecond)
	assert.Equal(t, before, h.Len())

	clock.Advance(time.Millisecond)
	assert.Equal(t, before+1, h.Len(), "exactly one write-back")
	assert.Equal(t, "abc", h.Location().Values().Get(ParamName))
	assert.Equal(t, "abc", s.State().Search)
}

func TestSyncer_SearchUsesLocationAtFireTime(t *testing.T) {
	s, h, clock := newTestSyncer(t, "/")
	s.Mount()

	s.Input("poem")
	s.ToggleTag("writing")
	clock.Advance(time.Second)

	q := h.Location().Values()
	assert.Equal(t, "writing", q.Get(ParamTags), "tag written between keystroke and flush is kept")
	assert.Equal(t, "poem", q.Get(ParamName))
}

func TestSyncer_EmptySearchRemovesParam(t *testing.T) {
	s, h, clock := newTestSyncer(t, "/?name=poem")
	s.Mount()

	s.Input("")
	clock.Advance(time.Second)
	assert.False(t, h.Location().Values().Has(ParamName))
	assert.Empty(t, s.State().Search)
}

func TestSyncer_FollowsBackNavigation(t *testing.T) {
	s, h, _ := newTestSyncer(t, "/")
	s.Mount()

	s.ToggleTag("code")
	require.True(t, h.Back())
	assert.Empty(t, s.State().Tags)

	require.True(t, h.Forward())
	assert.Equal(t, []domain.TagID{"code"}, s.State().Tags)
}

func TestSyncer_UnmountCancelsPendingSearch(t *testing.T) {
	s, h, clock := newTestSyncer(t, "/")
	s.Mount()
	before := h.Len()

	s.Input("abc")
	s.Unmount()
	clock.Advance(2 * time.Second)
	assert.Equal(t, before, h.Len())
	assert.False(t, s.Mounted())
}
