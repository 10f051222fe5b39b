package web

import (
	"fmt"
	"time"

	"tripcal/internal/calendar"
	"tripcal/internal/clock"
	"tripcal/internal/colors"
	"tripcal/internal/layout"
	applog "tripcal/internal/log"
	"tripcal/internal/model"
	"tripcal/internal/tz"
)

// spanishMonthTitles are the capitalized month names used in the week
// header ("Agosto 2026").
var spanishMonthTitles = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// spanishWeekdayShort are the abbreviated weekday names of the day
// header row, indexed by time.Weekday.
var spanishWeekdayShort = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

// itemView is the JSON view of one itinerary item placed on the grid.
type itemView struct {
	Index    int            `json:"index"`
	Type     model.ItemType `json:"type"`
	Title    string         `json:"title"`
	Location string         `json:"location,omitempty"`
	Notes    string         `json:"notes,omitempty"`

	Coordinates *model.Coordinates `json:"coordinates,omitempty"`

	Timezone  string `json:"timezone"`
	ZoneLabel string `json:"zone_label"`

	// Clock strings are rendered in the item's own zone.
	Clock    string `json:"clock"`
	EndClock string `json:"end_clock,omitempty"`
	LongDate string `json:"long_date"`

	ColorTag string       `json:"color"`
	Style    colors.Style `json:"style"`

	// Top is the marker center position; Block is event geometry.
	Top   float64       `json:"top"`
	Block *layout.Block `json:"block,omitempty"`
}

// dayView is one column of the week grid.
type dayView struct {
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	DayNum  int        `json:"day_num"`
	Events  []itemView `json:"events"`
	Markers []itemView `json:"markers"`
}

// weekView is the full /api/week response.
type weekView struct {
	Title            string          `json:"title"`
	WeekStart        string          `json:"week_start"`
	Days             []dayView       `json:"days"`
	SelectedDayIndex int             `json:"selected_day_index"`
	Selected         *itemView       `json:"selected,omitempty"`
	CanPrev          bool            `json:"can_prev"`
	CanNext          bool            `json:"can_next"`
	HourLabels       []string        `json:"hour_labels"`
	HourHeight       int             `json:"hour_height"`
	GridHeight       float64         `json:"grid_height"`
	Countdown        clock.Countdown `json:"countdown"`
	Now              layout.NowLine  `json:"now"`
}

// today is the viewer's current calendar day in the home zone.
func (s *Server) today(clk *clock.Source) model.Day {
	return model.DayOf(clk.Now().In(s.homeLoc))
}

// zoneLabel resolves a zone label, preferring config overrides over the
// built-in table.
func (s *Server) zoneLabel(zone string) string {
	if label, ok := s.cfg.ZoneLabels[zone]; ok {
		return label
	}
	return tz.ZoneLabel(zone)
}

// buildWeekView assembles the active window into its JSON view.
func (s *Server) buildWeekView(clk *clock.Source) weekView {
	grid := s.cfg.Grid
	state := s.manager.State()
	days := calendar.WeekDays(state.WeekStart)
	items := s.manager.Items()

	view := weekView{
		Title:            weekTitle(state.WeekStart),
		WeekStart:        state.WeekStart.String(),
		Days:             make([]dayView, 0, len(days)),
		SelectedDayIndex: state.SelectedDayIndex,
		CanPrev:          s.manager.CanGoPrev(),
		CanNext:          s.manager.CanGoNext(),
		HourHeight:       grid.HourHeight,
		GridHeight:       grid.Height(),
		Countdown:        clk.Until(s.departure()),
	}

	for h := grid.StartHour; h < grid.EndHour; h++ {
		view.HourLabels = append(view.HourLabels, layout.HourLabel(h))
	}

	for _, day := range days {
		dv := dayView{
			Date:    day.String(),
			Weekday: spanishWeekdayShort[int(day.Weekday())],
			DayNum:  day.Day,
			Events:  make([]itemView, 0),
			Markers: make([]itemView, 0),
		}
		for i, it := range items {
			if !calendar.BelongsToDay(it, day) {
				continue
			}
			iv, err := s.itemView(i, it, grid)
			if err != nil {
				// Trusted input went bad: drop this item's rendering,
				// keep the rest of the view.
				applog.Error("item rendering failed", err, "index", i, "title", it.Title)
				continue
			}
			if it.IsMarker() {
				dv.Markers = append(dv.Markers, iv)
			} else {
				dv.Events = append(dv.Events, iv)
			}
		}
		view.Days = append(view.Days, dv)
	}

	if state.Selected != nil {
		if iv, err := s.itemView(-1, *state.Selected, grid); err == nil {
			view.Selected = &iv
		}
	}

	view.Now = grid.NowIndicator(clk.Now().In(s.homeLoc), days)

	return view
}

// itemView computes the geometry and formatted strings for one item.
func (s *Server) itemView(index int, it model.Item, grid layout.Grid) (itemView, error) {
	iv := itemView{
		Index:       index,
		Type:        it.Type,
		Title:       it.Title,
		Location:    it.Location,
		Notes:       it.Notes,
		Coordinates: it.Coordinates,
		Timezone:    it.Timezone,
		ZoneLabel:   s.zoneLabel(it.Timezone),
		Clock:       tz.FormatClock(it.When(), it.Timezone),
		LongDate:    tz.FormatLongDate(it.When(), it.Timezone),
		ColorTag:    it.Color,
		Style:       colors.For(it.Color),
	}

	start, err := tz.ClockParts(it.When(), it.Timezone)
	if err != nil {
		return itemView{}, err
	}

	if it.IsMarker() {
		iv.Top = grid.MarkerTop(start.Fractional)
		return iv, nil
	}

	end, err := tz.ClockParts(it.End, it.Timezone)
	if err != nil {
		return itemView{}, err
	}
	iv.EndClock = tz.FormatClock(it.End, it.Timezone)
	block := grid.EventBlock(start.Fractional, end.Fractional)
	iv.Top = block.Top
	iv.Block = &block
	return iv, nil
}

// departure is the countdown target: midnight of the trip's first day in
// the home timezone.
func (s *Server) departure() time.Time {
	start := s.manager.Bounds().TripStart
	return time.Date(start.Year, start.Month, start.Day, 0, 0, 0, 0, s.homeLoc)
}

// weekTitle renders the header title for a week, collapsing to a single
// month when the week does not cross a month boundary:
// "Agosto 2026", "Julio – Agosto 2026", "Diciembre 2026 – Enero 2027".
func weekTitle(weekStart model.Day) string {
	weekEnd := weekStart.AddDays(6)
	startMonth := spanishMonthTitles[int(weekStart.Month)-1]
	endMonth := spanishMonthTitles[int(weekEnd.Month)-1]

	switch {
	case weekStart.Year != weekEnd.Year:
		return fmt.Sprintf("%s %d – %s %d", startMonth, weekStart.Year, endMonth, weekEnd.Year)
	case weekStart.Month != weekEnd.Month:
		return fmt.Sprintf("%s – %s %d", startMonth, endMonth, weekStart.Year)
	default:
		return fmt.Sprintf("%s %d", startMonth, weekStart.Year)
	}
}
