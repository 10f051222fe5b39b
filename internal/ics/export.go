// Package ics exports the loaded itinerary as an iCalendar feed so the
// trip can be subscribed from a phone calendar.
package ics

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	applog "tripcal/internal/log"
	"tripcal/internal/model"
	"tripcal/internal/tz"
)

// Export serializes items into an ICS document. Times are written as
// absolute UTC instants derived from each item's own timezone, so
// consumers render them correctly regardless of their zone settings.
//
// Markers become zero-length events. Items whose time fields fail to
// parse are logged and skipped, matching the loader's per-record policy.
func Export(items []model.Item, name string) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(name)

	for i, it := range items {
		start, err := tz.ParseInZone(it.When(), it.Timezone)
		if err != nil {
			applog.Error("ics export: skipping item with bad time", err, "index", i, "title", it.Title)
			continue
		}
		end := start
		if it.Type == model.TypeEvent {
			end, err = tz.ParseInZone(it.End, it.Timezone)
			if err != nil {
				applog.Error("ics export: skipping event with bad end", err, "index", i, "title", it.Title)
				continue
			}
		}

		ev := cal.AddEvent(itemUID(it, i))
		ev.SetDtStampTime(time.Now().UTC())
		ev.SetStartAt(start.UTC())
		ev.SetEndAt(end.UTC())
		ev.SetSummary(it.Title)
		if it.Location != "" {
			ev.SetLocation(it.Location)
		}
		if it.Notes != "" {
			ev.SetDescription(it.Notes)
		}
		if it.Coordinates != nil {
			ev.SetGeo(it.Coordinates.Lat, it.Coordinates.Lng)
		}
	}

	return cal.Serialize()
}

// itemUID derives a stable UID from the item's identity fields; the
// index disambiguates duplicate titles at the same instant.
func itemUID(it model.Item, index int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", it.Type, it.When(), it.Title, index)))
	return hex.EncodeToString(sum[:8]) + "@tripcal"
}
