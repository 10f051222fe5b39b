// Package tz interprets the itinerary's naive date-time strings against
// IANA timezones.
//
// Every itinerary time field is a wall-clock string with no offset; its
// meaning comes entirely from the item's own zone. The host's local zone
// must never leak into this interpretation, so all parsing here goes
// through the named zone's location and nothing uses time.Local.
package tz

import (
	"fmt"
	"time"

	applog "tripcal/internal/log"
	"tripcal/internal/model"
)

// NaiveLayout is the wire format of all itinerary time fields.
const NaiveLayout = "2006-01-02T15:04:05"

// Clock is the wall-clock portion of a naive date-time, with the
// fractional hour used for vertical grid positioning (14.5 == 2:30 PM).
type Clock struct {
	Hour       int
	Minute     int
	Fractional float64
}

// zoneLabels maps the trip-relevant zones to short human labels.
// Unknown zones fall back to the raw identifier.
var zoneLabels = map[string]string{
	"Europe/Paris":     "🇫🇷 París",
	"Europe/London":    "🇬🇧 Londres",
	"Europe/Amsterdam": "🇳🇱 Ámsterdam",
}

var (
	spanishMonths = [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	spanishWeekdays = [...]string{
		"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
	}
)

// LocationOrUTC resolves an IANA zone name, falling back to UTC when the
// name is unknown. The itinerary is a trusted data file, so a bad name is
// logged and tolerated instead of failing the whole view.
func LocationOrUTC(zone string) *time.Location {
	if zone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		applog.Error("failed to load timezone; falling back to UTC", err, "zone", zone)
		return time.UTC
	}
	return loc
}

// ParseInZone returns the absolute instant whose wall clock in zone
// reproduces the naive string s exactly. The zone's UTC offset is taken
// from its rules for the target date, so DST transitions within the trip
// window resolve correctly.
func ParseInZone(s, zone string) (time.Time, error) {
	t, err := time.ParseInLocation(NaiveLayout, s, LocationOrUTC(zone))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q in zone %q: %w", s, zone, err)
	}
	return t, nil
}

// ClockParts extracts the wall-clock hour and minute of s in zone,
// ignoring the calendar date.
func ClockParts(s, zone string) (Clock, error) {
	t, err := ParseInZone(s, zone)
	if err != nil {
		return Clock{}, err
	}
	// Hour is always 0-23 out of the Go formatter; the modulo guards the
	// contract rather than an observed value.
	h := t.Hour() % 24
	m := t.Minute()
	return Clock{
		Hour:       h,
		Minute:     m,
		Fractional: float64(h) + float64(m)/60,
	}, nil
}

// DateParts extracts the calendar date of s as seen in zone.
func DateParts(s, zone string) (model.Day, error) {
	t, err := ParseInZone(s, zone)
	if err != nil {
		return model.Day{}, err
	}
	return model.DayOf(t), nil
}

// SameDay reports whether s, interpreted in zone, falls on the candidate
// calendar day. An unparseable value buckets nowhere.
func SameDay(s, zone string, day model.Day) bool {
	d, err := DateParts(s, zone)
	if err != nil {
		return false
	}
	return d == day
}

// FormatClock renders the wall-clock time of s in zone as a short
// 12-hour string, e.g. "3:45 PM".
func FormatClock(s, zone string) string {
	t, err := ParseInZone(s, zone)
	if err != nil {
		return ""
	}
	return t.Format("3:04 PM")
}

// FormatLongDate renders the full date of s in zone in Spanish,
// e.g. "lunes, 3 de agosto de 2026".
func FormatLongDate(s, zone string) string {
	t, err := ParseInZone(s, zone)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s, %d de %s de %d",
		spanishWeekdays[int(t.Weekday())],
		t.Day(),
		spanishMonths[int(t.Month())-1],
		t.Year(),
	)
}

// ZoneLabel returns the short flag+city label for a known zone, or the
// raw identifier for anything else.
func ZoneLabel(zone string) string {
	if label, ok := zoneLabels[zone]; ok {
		return label
	}
	return zone
}
