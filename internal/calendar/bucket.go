package calendar

import (
	"tripcal/internal/model"
	"tripcal/internal/tz"
)

// BelongsToDay reports whether the item falls on the candidate calendar
// day. The decision is made entirely in the item's own timezone: an
// event's start (or a marker's date) is interpreted against the item's
// zone and its calendar fields compared with the candidate day. Two items
// in different zones can share a day even though their absolute instants
// are hours apart, and the viewer's zone never participates.
func BelongsToDay(item model.Item, day model.Day) bool {
	return tz.SameDay(item.When(), item.Timezone, day)
}

// ItemsForDay filters items down to those that fall on day.
func ItemsForDay(items []model.Item, day model.Day) []model.Item {
	out := make([]model.Item, 0)
	for _, it := range items {
		if BelongsToDay(it, day) {
			out = append(out, it)
		}
	}
	return out
}

// ItemsForWeek filters items down to those that fall on any of the given
// days.
func ItemsForWeek(items []model.Item, days []model.Day) []model.Item {
	out := make([]model.Item, 0)
	for _, it := range items {
		for _, day := range days {
			if BelongsToDay(it, day) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Partition splits items into instantaneous markers and timed events.
func Partition(items []model.Item) (markers, events []model.Item) {
	markers = make([]model.Item, 0)
	events = make([]model.Item, 0)
	for _, it := range items {
		if it.IsMarker() {
			markers = append(markers, it)
		} else {
			events = append(events, it)
		}
	}
	return markers, events
}
