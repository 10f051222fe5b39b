package calendar

import "tripcal/internal/model"

// Bounds is the valid trip range. The window may never leave the weeks
// touched by [TripStart, TripEnd].
type Bounds struct {
	TripStart model.Day
	TripEnd   model.Day
}

// FirstWeekStart is the Monday of the trip's first week.
func (b Bounds) FirstWeekStart() model.Day {
	return b.TripStart.WeekStart()
}

// LastWeekStart is the Monday of the week containing the trip's final
// day. A window is valid iff its Monday is between FirstWeekStart and
// LastWeekStart inclusive.
func (b Bounds) LastWeekStart() model.Day {
	return b.TripEnd.WeekStart()
}

// Clamp forces a week start into the valid range.
func (b Bounds) Clamp(weekStart model.Day) model.Day {
	if first := b.FirstWeekStart(); weekStart.Before(first) {
		return first
	}
	if last := b.LastWeekStart(); weekStart.After(last) {
		return last
	}
	return weekStart
}

// State is the full window/selection state. It is a value; Reduce never
// mutates its input.
type State struct {
	WeekStart        model.Day
	SelectedDayIndex int
	Selected         *model.Item
}

// ActionKind enumerates the window transitions.
type ActionKind int

const (
	ActionNextWeek ActionKind = iota
	ActionPrevWeek
	ActionGoToday
	ActionSelectDay
	ActionSelectItem
	ActionCloseItem
)

// Action is one dispatched transition. DayIndex applies to SelectDay,
// Item to SelectItem, Today to GoToday.
type Action struct {
	Kind     ActionKind
	DayIndex int
	Item     *model.Item
	Today    model.Day
}

// WeekDays returns the 7 consecutive calendar days starting at weekStart.
func WeekDays(weekStart model.Day) []model.Day {
	days := make([]model.Day, 7)
	for i := range days {
		days[i] = weekStart.AddDays(i)
	}
	return days
}

// dayIndexIn returns the offset of day within the week starting at
// weekStart, or 0 when the day is outside that week.
func dayIndexIn(weekStart, day model.Day) int {
	for i, d := range WeekDays(weekStart) {
		if d == day {
			return i
		}
	}
	return 0
}

// Initial computes the starting state from a reference date: the
// reference's week clamped into the trip range, with the reference day
// focused when it falls inside the chosen week. A reference after the
// trip lands on the last trip week, one before it on the first.
func Initial(b Bounds, reference model.Day) State {
	weekStart := b.Clamp(reference.WeekStart())
	return State{
		WeekStart:        weekStart,
		SelectedDayIndex: dayIndexIn(weekStart, reference),
	}
}

// Reduce is the pure transition function. Out-of-range week navigation
// returns the state unchanged; this is clamping, not an error.
func Reduce(b Bounds, s State, a Action) State {
	switch a.Kind {
	case ActionNextWeek:
		next := s.WeekStart.AddDays(7)
		if next.After(b.LastWeekStart()) {
			return s
		}
		s.WeekStart = next
		return s
	case ActionPrevWeek:
		prev := s.WeekStart.AddDays(-7)
		if prev.Before(b.FirstWeekStart()) {
			return s
		}
		s.WeekStart = prev
		return s
	case ActionGoToday:
		s.WeekStart = b.Clamp(a.Today.WeekStart())
		s.SelectedDayIndex = dayIndexIn(s.WeekStart, a.Today)
		return s
	case ActionSelectDay:
		s.SelectedDayIndex = a.DayIndex
		return s
	case ActionSelectItem:
		s.Selected = a.Item
		return s
	case ActionCloseItem:
		s.Selected = nil
		return s
	default:
		return s
	}
}

// CanGoPrev reports whether a PrevWeek transition would be accepted.
func CanGoPrev(b Bounds, s State) bool {
	return s.WeekStart.After(b.FirstWeekStart())
}

// CanGoNext reports whether a NextWeek transition would be accepted.
func CanGoNext(b Bounds, s State) bool {
	return !s.WeekStart.AddDays(7).After(b.LastWeekStart())
}
