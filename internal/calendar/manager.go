package calendar

import (
	"sync"

	"tripcal/internal/model"
)

// Manager owns the week window and selection state for one session and
// holds the immutable item list loaded at startup. All transitions go
// through Dispatch, so state changes are atomic; reads copy the state
// under the same lock. Consumers receive the Manager by injection rather
// than through any ambient lookup.
type Manager struct {
	mu     sync.Mutex
	bounds Bounds
	items  []model.Item
	state  State
}

// NewManager builds a Manager for the given trip bounds and item list,
// with the initial window derived from the reference date.
func NewManager(bounds Bounds, items []model.Item, reference model.Day) *Manager {
	return &Manager{
		bounds: bounds,
		items:  items,
		state:  Initial(bounds, reference),
	}
}

// Dispatch applies one action and returns the resulting state.
func (m *Manager) Dispatch(a Action) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.bounds, m.state, a)
	return m.state
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Bounds returns the trip bounds.
func (m *Manager) Bounds() Bounds {
	return m.bounds
}

// Items returns the full item list. The slice is shared and read-only
// after load.
func (m *Manager) Items() []model.Item {
	return m.items
}

// WeekDays returns the 7 days of the active window.
func (m *Manager) WeekDays() []model.Day {
	return WeekDays(m.State().WeekStart)
}

// WeekItems returns the items that fall on any day of the active window.
func (m *Manager) WeekItems() []model.Item {
	return ItemsForWeek(m.items, m.WeekDays())
}

// DayItems returns the items for one day of the active window.
func (m *Manager) DayItems(day model.Day) []model.Item {
	return ItemsForDay(m.items, day)
}

// CanGoPrev reports whether the window can move one week back.
func (m *Manager) CanGoPrev() bool {
	return CanGoPrev(m.bounds, m.State())
}

// CanGoNext reports whether the window can move one week forward.
func (m *Manager) CanGoNext() bool {
	return CanGoNext(m.bounds, m.State())
}
