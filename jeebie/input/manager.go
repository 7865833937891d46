package input

import (
	"log/slog"
	"time"

	"github.com/valerio/go-jeebie-shell/jeebie/input/action"
	"github.com/valerio/go-jeebie-shell/jeebie/input/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	debounce      time.Duration
	now           func() time.Time
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithDebounce overrides the debounce window for Press and Release events.
// Zero disables debouncing.
func WithDebounce(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.debounce = d
	}
}

// WithClock replaces the time source, mostly useful in tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		debounce:      debounceDuration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}

	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type. It returns false when the
// event was debounced or nothing is registered for it.
func (m *Manager) Trigger(act action.Action, evt event.Type) bool {
	// Debounce Press and Release events
	if m.debounce > 0 && (evt == event.Press || evt == event.Release) {
		now := m.now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if lastTime, ok := m.lastTriggered[act][evt]; ok && now.Sub(lastTime) < m.debounce {
			slog.Debug("Input debounced", "action", act, "type", evt)
			return false
		}
		m.lastTriggered[act][evt] = now
	}

	callbacks := m.handlers[act][evt]
	if len(callbacks) == 0 {
		return false
	}
	for _, callback := range callbacks {
		callback()
	}
	return true
}

// Registered reports whether any callback is bound to the action and event type
func (m *Manager) Registered(act action.Action, evt event.Type) bool {
	return len(m.handlers[act][evt]) > 0
}
