package urlstate

import (
	"net/url"
	"sync"

	"github.com/google/uuid"
)

// UserState is the auxiliary payload stored with each history entry so that
// back and forward navigation can restore scroll position and focus.
type UserState struct {
	ScrollTopPosition int    `json:"scrollTopPosition"`
	FocusedElementID  string `json:"focusedElementId"`
}

// UserStateFunc captures the current UserState at navigation time.
type UserStateFunc func() UserState

// Location is one history entry.
type Location struct {
	Path  string
	Query string
	State *UserState
	Key   string
}

// Values parses the query. Malformed pairs are skipped.
func (l Location) Values() url.Values {
	q, _ := url.ParseQuery(l.Query)
	return q
}

// String renders the location as path?query.
func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// History is the navigation stack the syncer reads from and writes to.
type History interface {
	Location() Location
	Push(path, query string, state *UserState) Location
	Replace(path, query string, state *UserState) Location
	Listen(fn func(Location)) (unlisten func())
}

// MemoryHistory is an in-process History with back and forward support.
// Listeners run synchronously after the history lock is released.
type MemoryHistory struct {
	mu        sync.Mutex
	entries   []Location
	index     int
	listeners map[int]func(Location)
	nextID    int
}

// NewMemoryHistory starts a history at the given URL, e.g. "/?tags=code".
func NewMemoryHistory(initial string) *MemoryHistory {
	path, query := splitURL(initial)
	return &MemoryHistory{
		entries:   []Location{newLocation(path, query, nil)},
		listeners: make(map[int]func(Location)),
	}
}

// Location returns the current entry.
func (h *MemoryHistory) Location() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push appends an entry after the current one, dropping any forward entries.
func (h *MemoryHistory) Push(path, query string, state *UserState) Location {
	h.mu.Lock()
	loc := newLocation(path, query, state)
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
	h.mu.Unlock()

	h.notify(loc)
	return loc
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(path, query string, state *UserState) Location {
	h.mu.Lock()
	loc := newLocation(path, query, state)
	h.entries[h.index] = loc
	h.mu.Unlock()

	h.notify(loc)
	return loc
}

// Back moves to the previous entry. It reports false at the start of history.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves to the next entry. It reports false at the end of history.
func (h *MemoryHistory) Forward() bool {
	return h.move(1)
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Listen registers fn for every navigation and returns a function removing it.
func (h *MemoryHistory) Listen(fn func(Location)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	loc := h.entries[next]
	h.mu.Unlock()

	h.notify(loc)
	return true
}

func (h *MemoryHistory) notify(loc Location) {
	h.mu.Lock()
	fns := make([]func(Location), 0, len(h.listeners))
	for i := 0; i < h.nextID; i++ {
		if fn, ok := h.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(loc)
	}
}

func newLocation(path, query string, state *UserState) Location {
	if path == "" {
		path = "/"
	}
	return Location{Path: path, Query: query, State: state, Key: uuid.NewString()}
}

func splitURL(raw string) (path, query string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "/", ""
	}
	return u.Path, u.RawQuery
}
