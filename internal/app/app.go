// Package app is the root Bubble Tea model. It subscribes to the user store,
// triggers the initial load when the program starts, and renders whatever
// state the store holds.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/userdeck/userdeck/internal/theme"
	"github.com/userdeck/userdeck/internal/user"
	"github.com/userdeck/userdeck/internal/views/debug"
	"github.com/userdeck/userdeck/internal/views/detail"
	"github.com/userdeck/userdeck/internal/views/status"
	"github.com/userdeck/userdeck/internal/views/userlist"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayDetail
	OverlayDebug
)

// LoadRequestMsg asks the model to start a load.
type LoadRequestMsg struct{}

// LoadDoneMsg reports that a load finished. A non-nil Err means nothing was
// dispatched and the store is unchanged.
type LoadDoneMsg struct{ Err error }

// StateMsg delivers the store's latest state.
type StateMsg struct{ State *user.State }

// Option configures the root model.
type Option func(*Model)

// WithDetailOptions passes rendering options to the detail overlay.
func WithDetailOptions(opts ...detail.Option) Option {
	return func(m *Model) { m.detailOpts = opts }
}

// Model is the root Bubble Tea model.
type Model struct {
	store    *user.Store
	endpoint string
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc

	states      chan *user.State
	unsubscribe func()

	keys    KeyMap
	width   int
	height  int
	overlay Overlay

	statusBar  status.Model
	list       userlist.Model
	detail     detail.Model
	events     debug.Model
	detailOpts []detail.Option
}

// New creates the root model and subscribes it to store. Call Close once the
// program has exited.
func New(store *user.Store, endpoint string, log *zap.Logger, opts ...Option) Model {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	states := make(chan *user.State, 1)

	m := Model{
		store:     store,
		endpoint:  endpoint,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
		states:    states,
		keys:      DefaultKeyMap(),
		statusBar: status.New(endpoint),
		list:      userlist.New(),
		events:    debug.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.unsubscribe = store.Subscribe(latestOnly(states))
	m.applyState(store.State())
	return m
}

// latestOnly returns a subscriber that keeps only the newest state in ch.
// The store calls subscribers one at a time, so there is a single sender.
func latestOnly(ch chan *user.State) func(*user.State) {
	return func(st *user.State) {
		for {
			select {
			case ch <- st:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Close cancels in-flight loads and detaches from the store. A load that
// fails because of the cancellation dispatches nothing.
func (m Model) Close() {
	m.cancel()
	m.unsubscribe()
}

// Init starts the spinner, waits for store updates and requests the first
// load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusBar.Tick, m.waitForState(), requestLoad)
}

func requestLoad() tea.Msg { return LoadRequestMsg{} }

func (m Model) waitForState() tea.Cmd {
	ctx, states := m.ctx, m.states
	return func() tea.Msg {
		select {
		case st := <-states:
			return StateMsg{State: st}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) load() tea.Cmd {
	ctx, store, endpoint := m.ctx, m.store, m.endpoint
	return func() tea.Msg {
		return LoadDoneMsg{Err: store.Run(ctx, user.Load(endpoint))}
	}
}

func (m *Model) startLoad() tea.Cmd {
	m.statusBar.InFlight++
	m.events.Addf(debug.KindLoad, "GET %s", m.endpoint)
	m.log.Info("load requested", zap.String("url", m.endpoint), zap.Int("in_flight", m.statusBar.InFlight))
	return m.load()
}

func (m *Model) applyState(st *user.State) {
	m.list.SetState(st)
	m.statusBar.SetUsers(st.Loaded(), st.Len())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.list.Width = msg.Width
		m.list.Height = max(msg.Height-6, 0)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LoadRequestMsg:
		return m, m.startLoad()

	case LoadDoneMsg:
		m.statusBar.InFlight = max(m.statusBar.InFlight-1, 0)
		if msg.Err != nil {
			m.statusBar.LastError = msg.Err.Error()
			m.events.Add(debug.KindError, msg.Err.Error())
		} else {
			m.statusBar.LastError = ""
		}
		return m, nil

	case StateMsg:
		m.applyState(msg.State)
		if msg.State.Loaded() {
			m.events.Addf(debug.KindDispatch, "state %d users", msg.State.Len())
		} else {
			m.events.Add(debug.KindDispatch, "state not loaded")
		}
		return m, m.waitForState()
	}

	var cmd tea.Cmd
	m.statusBar, cmd = m.statusBar.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Close()
		return m, tea.Quit
	}

	switch m.overlay {
	case OverlayDetail:
		if key.Matches(msg, m.keys.Escape) {
			m.overlay = OverlayNone
		}
		return m, nil
	case OverlayDebug:
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Debug):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keys.Up):
			m.events.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.events.ScrollDown(1)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.list.Next()
	case key.Matches(msg, m.keys.Up):
		m.list.Prev()
	case key.Matches(msg, m.keys.Enter):
		if it, ok := m.list.Current(); ok {
			m.detail = detail.New(it.Profile, m.detailOpts...)
			m.overlay = OverlayDetail
			m.events.Addf(debug.KindNav, "detail %s", it.Key)
		}
	case key.Matches(msg, m.keys.Debug):
		m.overlay = OverlayDebug
	case key.Matches(msg, m.keys.Reload):
		return m, m.startLoad()
	}
	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.overlay {
	case OverlayDetail:
		body = lipgloss.Place(m.width, max(m.height-4, 1), lipgloss.Center, lipgloss.Center, m.detail.View())
	case OverlayDebug:
		body = m.events.View(m.width, max(m.height-4, 8))
	default:
		body = m.list.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.View(),
		body,
		theme.StyleDimmed.Render("  "+m.helpLine()),
	)
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s:%s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
