package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tripcal/internal/model"
)

// tripBounds is the Aug 3-16 2026 trip used throughout these tests.
// Week starts: Aug 3 (first) and Aug 10 (last).
func tripBounds() Bounds {
	return Bounds{
		TripStart: model.NewDay(2026, time.August, 3),
		TripEnd:   model.NewDay(2026, time.August, 16),
	}
}

func TestBoundsWeekStarts(t *testing.T) {
	b := tripBounds()
	assert.Equal(t, model.NewDay(2026, time.August, 3), b.FirstWeekStart())
	assert.Equal(t, model.NewDay(2026, time.August, 10), b.LastWeekStart())
}

func TestInitial_ReferenceInsideSecondWeek(t *testing.T) {
	// Wednesday of the second trip week focuses that week and day.
	s := Initial(tripBounds(), model.NewDay(2026, time.August, 12))
	assert.Equal(t, model.NewDay(2026, time.August, 10), s.WeekStart)
	assert.Equal(t, 2, s.SelectedDayIndex)
}

func TestInitial_ReferenceBeforeTrip(t *testing.T) {
	s := Initial(tripBounds(), model.NewDay(2026, time.July, 20))
	assert.Equal(t, model.NewDay(2026, time.August, 3), s.WeekStart)
	assert.Equal(t, 0, s.SelectedDayIndex, "reference outside the chosen week defaults to day 0")
}

func TestInitial_ReferenceAfterTripSelectsLastWeek(t *testing.T) {
	// Aug 20 2026 is after the trip end; the window must clamp to the
	// last trip week, not an out-of-range week.
	s := Initial(tripBounds(), model.NewDay(2026, time.August, 20))
	assert.Equal(t, model.NewDay(2026, time.August, 10), s.WeekStart)
	assert.Equal(t, 0, s.SelectedDayIndex)
}

func TestReduce_NextThenPrevRoundTrips(t *testing.T) {
	b := tripBounds()
	start := Initial(b, b.TripStart)

	next := Reduce(b, start, Action{Kind: ActionNextWeek})
	assert.Equal(t, model.NewDay(2026, time.August, 10), next.WeekStart)

	back := Reduce(b, next, Action{Kind: ActionPrevWeek})
	assert.Equal(t, start.WeekStart, back.WeekStart, "NEXT then PREV returns to the origin")
}

func TestReduce_NextRejectedAtLastWeek(t *testing.T) {
	b := tripBounds()
	s := State{WeekStart: b.LastWeekStart()}

	got := Reduce(b, s, Action{Kind: ActionNextWeek})
	assert.Equal(t, s, got, "NEXT past the trip end is a silent no-op")
}

func TestReduce_PrevRejectedAtFirstWeek(t *testing.T) {
	b := tripBounds()
	s := State{WeekStart: b.FirstWeekStart()}

	got := Reduce(b, s, Action{Kind: ActionPrevWeek})
	assert.Equal(t, s, got, "PREV before the trip start is a silent no-op")
}

func TestReduce_GoTodayClampsAndFocuses(t *testing.T) {
	b := tripBounds()
	s := State{WeekStart: b.FirstWeekStart(), SelectedDayIndex: 3}

	got := Reduce(b, s, Action{Kind: ActionGoToday, Today: model.NewDay(2026, time.August, 14)})
	assert.Equal(t, model.NewDay(2026, time.August, 10), got.WeekStart)
	assert.Equal(t, 4, got.SelectedDayIndex, "Friday is index 4")

	// Today after the trip clamps to the last week.
	got = Reduce(b, s, Action{Kind: ActionGoToday, Today: model.NewDay(2026, time.September, 1)})
	assert.Equal(t, b.LastWeekStart(), got.WeekStart)
}

func TestReduce_Selection(t *testing.T) {
	b := tripBounds()
	item := model.Item{Type: model.TypeMarker, Date: "2026-08-03T08:00:00", Timezone: "Europe/Paris", Title: "Vuelo"}

	s := Initial(b, b.TripStart)
	s = Reduce(b, s, Action{Kind: ActionSelectDay, DayIndex: 5})
	assert.Equal(t, 5, s.SelectedDayIndex)

	s = Reduce(b, s, Action{Kind: ActionSelectItem, Item: &item})
	assert.Equal(t, &item, s.Selected)

	// Selection is independent of week navigation.
	s = Reduce(b, s, Action{Kind: ActionNextWeek})
	assert.Equal(t, &item, s.Selected)

	s = Reduce(b, s, Action{Kind: ActionCloseItem})
	assert.Nil(t, s.Selected)
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(model.NewDay(2026, time.August, 3))
	assert.Len(t, days, 7)
	assert.Equal(t, model.NewDay(2026, time.August, 3), days[0])
	assert.Equal(t, model.NewDay(2026, time.August, 9), days[6])
}

func TestGuards(t *testing.T) {
	b := tripBounds()

	first := State{WeekStart: b.FirstWeekStart()}
	assert.False(t, CanGoPrev(b, first))
	assert.True(t, CanGoNext(b, first))

	last := State{WeekStart: b.LastWeekStart()}
	assert.True(t, CanGoPrev(b, last))
	assert.False(t, CanGoNext(b, last))
}
