// Package tui is a terminal client for the showcase built on Bubble Tea.
// It drives a showcase.Page over an in-memory history, so the filter state
// lives in a URL exactly as it would in a browser.
package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aishort/showcase-server/internal/showcase"
	"github.com/aishort/showcase-server/internal/urlstate"
)

// refreshInterval re-renders while a debounced search or the count fetch is in flight.
const refreshInterval = 150 * time.Millisecond

// searchFieldID is the focus id recorded in history entries.
const searchFieldID = "search"

// Options configures the model.
type Options struct {
	Context context.Context
	Page    *showcase.Page
	History *urlstate.MemoryHistory
	Focus   *FocusState
	Styles  *Styles
}

// FocusState is the part of the UI recorded with each history entry. It is
// shared with the page's capture function, which may run on a timer goroutine.
type FocusState struct {
	cursor  atomic.Int64
	focused atomic.Bool
}

// Capture implements urlstate.UserStateFunc.
func (f *FocusState) Capture() urlstate.UserState {
	us := urlstate.UserState{ScrollTopPosition: int(f.cursor.Load())}
	if f.focused.Load() {
		us.FocusedElementID = searchFieldID
	}
	return us
}

type tickMsg time.Time

// mountMsg applies the URL state after the first frame was rendered unfiltered.
type mountMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	page    *showcase.Page
	history *urlstate.MemoryHistory
	focus   *FocusState
	styles  Styles

	input     textinput.Model
	mounted   bool
	tagCursor int
	cursor    int
	status    string
	width     int
	height    int
}

// New creates the model. The page must not be mounted yet; the model mounts it
// once the first frame is on screen.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	focus := opts.Focus
	if focus == nil {
		focus = &FocusState{}
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search by name"
	ti.CharLimit = 200

	return Model{
		ctx:     ctx,
		page:    opts.Page,
		history: opts.History,
		focus:   focus,
		styles:  styles,
		input:   ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, mount, tick())
}

func mount() tea.Msg {
	return mountMsg{}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case mountMsg:
		if !m.mounted {
			m.page.Mount(m.ctx)
			m.mounted = true
			m.syncInput()
		}
		return m, nil

	case tickMsg:
		if m.mounted {
			m.syncInput()
		}
		return m, tick()

	case tea.KeyMsg:
		if !m.mounted {
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.input.Focused() {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// syncInput shows URL-driven search text unless the user is typing.
func (m *Model) syncInput() {
	if m.input.Focused() || m.page.SearchPending() {
		return
	}
	if v := m.page.View().InputValue; v != m.input.Value() {
		m.input.SetValue(v)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.input.Blur()
		m.focus.focused.Store(false)
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.page.Type(after)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.page.View()
	cards := visibleCards(view)

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		m.focus.focused.Store(true)
		cmd := m.input.Focus()
		return m, cmd

	case "left", "h":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "right", "l":
		if m.tagCursor < len(view.Tags)-1 {
			m.tagCursor++
		}
	case " ", "t":
		if m.tagCursor < len(view.Tags) {
			m.page.ToggleTag(view.Tags[m.tagCursor].ID)
			m.setCursor(0)
		}
	case "o":
		m.page.ToggleOperator()
		m.setCursor(0)

	case "up", "k":
		if m.cursor > 0 {
			m.setCursor(m.cursor - 1)
		}
	case "down", "j":
		if m.cursor < len(cards)-1 {
			m.setCursor(m.cursor + 1)
		}

	case "m":
		if view.ShowLoadMore {
			m.page.LoadMore()
		}
	case "e":
		m.page.ToggleLanguage()

	case "c", "enter":
		if m.cursor < len(cards) {
			card := cards[m.cursor]
			if n, ok := m.page.Copy(card.ID); ok {
				m.status = fmt.Sprintf("Copied #%d %s (%d copies)", card.ID, card.Title, n)
			}
		}

	case "[", "backspace":
		if m.history.Back() {
			m.restore()
		}
	case "]":
		if m.history.Forward() {
			m.restore()
		}
	}
	return m, nil
}

// setCursor moves the card cursor and records it for the next history entry.
func (m *Model) setCursor(i int) {
	m.cursor = i
	m.focus.cursor.Store(int64(i))
}

// restore applies the user state stored with the current history entry.
func (m *Model) restore() {
	m.syncInput()
	state := m.history.Location().State
	if state == nil {
		m.setCursor(0)
		return
	}
	m.setCursor(state.ScrollTopPosition)
	if state.FocusedElementID == searchFieldID {
		m.focus.focused.Store(true)
		m.input.Focus()
	}
}

// visibleCards is the navigation order: favorites first, then the others bucket.
func visibleCards(v showcase.View) []showcase.Card {
	cards := make([]showcase.Card, 0, len(v.Favorites)+len(v.Others))
	cards = append(cards, v.Favorites...)
	return append(cards, v.Others...)
}
