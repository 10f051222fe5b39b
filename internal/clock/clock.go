// Package clock provides the "now" source for the current-time indicator
// and the departure countdown.
//
// The source supports a one-time debug override: when the UI is opened
// with a currentDate query parameter, the difference between that date and
// the real clock is captured once as a fixed offset, and every subsequent
// read returns real time shifted by that offset. Scheduling state is never
// driven from here; this is a display concern.
package clock

import (
	"time"

	applog "tripcal/internal/log"
)

// overrideLayouts are the accepted forms of the currentDate parameter.
var overrideLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Source yields the effective current time.
type Source struct {
	offset time.Duration
}

// NewSource builds a Source from an optional override string. An empty or
// unparseable override yields a zero offset, i.e. real time. Naive
// override forms are interpreted in loc.
func NewSource(override string, loc *time.Location) *Source {
	if loc == nil {
		loc = time.UTC
	}
	s := &Source{}
	if override == "" {
		return s
	}
	for _, layout := range overrideLayouts {
		if t, err := time.ParseInLocation(layout, override, loc); err == nil {
			s.offset = time.Until(t)
			applog.Info("current date override active", "override", override, "offset", s.offset.Round(time.Second))
			return s
		}
	}
	applog.Info("ignoring invalid current date override", "override", override)
	return s
}

// Now returns the effective current time.
func (s *Source) Now() time.Time {
	return time.Now().Add(s.offset)
}

// Countdown is the time remaining until a target instant, split into the
// display components the UI shows. Reached is true once the target has
// passed; the other fields are zero in that case.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Reached bool `json:"reached"`
}

// Until computes the countdown from the effective now to target.
func (s *Source) Until(target time.Time) Countdown {
	diff := target.Sub(s.Now())
	if diff <= 0 {
		return Countdown{Reached: true}
	}
	return Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff % (24 * time.Hour) / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}
}
