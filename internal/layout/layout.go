// Package layout turns zone-local fractional hours into the pixel
// geometry of the time-grid view.
package layout

import (
	"fmt"
	"time"

	"tripcal/internal/model"
)

// Geometry constants of the grid, matching the UI stylesheet.
const (
	DefaultStartHour  = 4
	DefaultEndHour    = 24
	DefaultHourHeight = 60

	// BlockGapPx insets event blocks so adjacent blocks do not touch.
	BlockGapPx = 2
	// MinBlockHeightPx keeps very short events tappable.
	MinBlockHeightPx = 20
	// CompactHeightPx is the height at or below which an event renders
	// as a single compact line.
	CompactHeightPx = 35
	// DetailHeightPx is the height above which the zone label fits.
	DetailHeightPx = 55
)

// Grid is the visible hour range [StartHour, EndHour) and the vertical
// scale in pixels per hour.
type Grid struct {
	StartHour  int `yaml:"start_hour" json:"start_hour"`
	EndHour    int `yaml:"end_hour" json:"end_hour"`
	HourHeight int `yaml:"hour_height" json:"hour_height"`
}

// DefaultGrid returns the grid the UI ships with: 4 AM to midnight at
// 60px per hour.
func DefaultGrid() Grid {
	return Grid{
		StartHour:  DefaultStartHour,
		EndHour:    DefaultEndHour,
		HourHeight: DefaultHourHeight,
	}
}

// Normalize fills zero fields with the defaults.
func (g *Grid) Normalize() {
	if g.HourHeight <= 0 {
		g.HourHeight = DefaultHourHeight
	}
	if g.EndHour <= g.StartHour {
		g.StartHour = DefaultStartHour
		g.EndHour = DefaultEndHour
	}
}

// TotalHours is the number of rendered hour rows.
func (g Grid) TotalHours() int {
	return g.EndHour - g.StartHour
}

// Height is the total grid height in pixels.
func (g Grid) Height() float64 {
	return float64(g.TotalHours() * g.HourHeight)
}

// Top converts a fractional hour-of-day to a vertical pixel offset.
func (g Grid) Top(fractionalHour float64) float64 {
	return (fractionalHour - float64(g.StartHour)) * float64(g.HourHeight)
}

// Block is the computed geometry of one timed event.
type Block struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	// Compact marks blocks too short for a multi-line rendering; the
	// height is exposed so the decision is reproducible downstream.
	Compact bool `json:"compact"`
	// ShowZone marks blocks tall enough to carry the zone label line.
	ShowZone bool `json:"show_zone"`
}

// EventBlock computes geometry for an event spanning fractional hours
// [startHour, endHour).
func (g Grid) EventBlock(startHour, endHour float64) Block {
	height := (endHour-startHour)*float64(g.HourHeight) - BlockGapPx
	if height < MinBlockHeightPx {
		height = MinBlockHeightPx
	}
	return Block{
		Top:      g.Top(startHour),
		Height:   height,
		Compact:  height <= CompactHeightPx,
		ShowZone: height > DetailHeightPx,
	}
}

// MarkerTop computes the vertical center of an instantaneous marker.
func (g Grid) MarkerTop(fractionalHour float64) float64 {
	return g.Top(fractionalHour)
}

// NowLine is the position of the current-time indicator.
type NowLine struct {
	Top      float64 `json:"top"`
	DayIndex int     `json:"day_index"`
	Visible  bool    `json:"visible"`
}

// NowIndicator computes the indicator for the viewer's real current
// time. Unlike item positioning this uses the viewer's own clock, and
// the line only shows when today is inside the visible week and the
// current fractional hour is within [StartHour, EndHour].
func (g Grid) NowIndicator(now time.Time, weekDays []model.Day) NowLine {
	today := model.DayOf(now)
	dayIndex := -1
	for i, d := range weekDays {
		if d == today {
			dayIndex = i
			break
		}
	}

	fractional := float64(now.Hour()) + float64(now.Minute())/60
	visible := dayIndex >= 0 &&
		fractional >= float64(g.StartHour) &&
		fractional <= float64(g.EndHour)

	return NowLine{
		Top:      g.Top(fractional),
		DayIndex: dayIndex,
		Visible:  visible,
	}
}

// HourLabel renders a grid row label, e.g. "12 AM", "3 PM".
func HourLabel(hour int) string {
	h := hour % 24
	switch {
	case h == 0:
		return "12 AM"
	case h == 12:
		return "12 PM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}
