package model

import (
	"errors"
	"fmt"
)

// ItemType discriminates the two itinerary item variants.
type ItemType string

const (
	// TypeEvent is a timed span (museum visit, train ride, dinner).
	TypeEvent ItemType = "event"
	// TypeMarker is an instantaneous point in time (flight departure,
	// check-in deadline).
	TypeMarker ItemType = "marker"
)

// Coordinates is a geographic point attached to an item.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Item is a single itinerary entry, a tagged union over Type.
//
// All time fields are naive local date-time strings in the form
// "2006-01-02T15:04:05" with no offset. They encode wall-clock time in the
// item's own Timezone, never UTC and never the viewer's zone; any
// interpretation must go through internal/tz with the item's Timezone.
type Item struct {
	Type ItemType `json:"type"`

	// Start and End are set for events only.
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`

	// Date is set for markers only.
	Date string `json:"date,omitempty"`

	Timezone    string       `json:"timezone"`
	Title       string       `json:"title"`
	Color       string       `json:"color"`
	Location    string       `json:"location,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// IsMarker reports whether the item is an instantaneous marker.
func (it Item) IsMarker() bool {
	return it.Type == TypeMarker
}

// When returns the naive date-time string that decides which calendar day
// the item belongs to: Start for events, Date for markers.
func (it Item) When() string {
	if it.Type == TypeEvent {
		return it.Start
	}
	return it.Date
}

// Validate checks the variant-required fields. The itinerary is a trusted
// data file, so this is used to skip individual malformed records at load
// time rather than to reject user input.
func (it Item) Validate() error {
	switch it.Type {
	case TypeEvent:
		if it.Start == "" || it.End == "" {
			return errors.New("event is missing start or end")
		}
	case TypeMarker:
		if it.Date == "" {
			return errors.New("marker is missing date")
		}
	default:
		return fmt.Errorf("unknown item type %q", it.Type)
	}
	if it.Timezone == "" {
		return errors.New("missing timezone")
	}
	return nil
}
