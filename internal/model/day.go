package model

import "time"

// Day is a pure calendar date: no time of day, no timezone. It is the
// "candidate day" used for bucketing; two Days compare equal iff their
// year/month/day fields match, so Day is usable as a map key.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDay builds a Day from calendar components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{Year: year, Month: month, Day: day}
}

// DayOf extracts the calendar date of t as seen in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a "2006-01-02" date string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// Time returns the day as midnight UTC. Only the calendar fields are
// meaningful; the instant itself is used for arithmetic, never display.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n calendar days later (earlier if negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Day) After(other Day) bool {
	return other.Before(d)
}

// Weekday returns the day of week.
func (d Day) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// WeekStart returns the Monday that begins the week containing d.
func (d Day) WeekStart() Day {
	diff := 1 - int(d.Weekday())
	if d.Weekday() == time.Sunday {
		diff = -6
	}
	return d.AddDays(diff)
}

// String renders the day as "2006-01-02".
func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}
