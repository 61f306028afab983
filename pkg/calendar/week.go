// Package calendar holds the week arithmetic behind the booking grid.
//
// Weeks start on Monday. Days are indexed 0 (Monday) through 6 (Sunday),
// which is not the time.Weekday convention.
package calendar

import (
	"fmt"
	"time"
)

// DaysPerWeek is the number of columns in the grid.
const DaysPerWeek = 7

// DateLayout is the ISO date format used for week anchors.
const DateLayout = "2006-01-02"

var (
	dayNames      = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	dayShortNames = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// DayName returns the full Monday-first day name for index day.
func DayName(day int) string {
	if !ValidDay(day) {
		return ""
	}
	return dayNames[day]
}

// DayShortName returns the three-letter label for index day.
func DayShortName(day int) string {
	if !ValidDay(day) {
		return ""
	}
	return dayShortNames[day]
}

// ValidDay reports whether day is a Monday-first index.
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// DayIndex converts a time.Weekday (Sunday=0) into the Monday-first index.
func DayIndex(w time.Weekday) int {
	return (int(w) + 6) % DaysPerWeek
}

// WeekStartOf returns midnight of the Monday that starts the week containing t,
// in t's location.
func WeekStartOf(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -DayIndex(t.Weekday()))
}

// WeekDates returns the seven calendar dates of the week starting at monday.
func WeekDates(monday time.Time) [DaysPerWeek]time.Time {
	var dates [DaysPerWeek]time.Time
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// ParseWeekAnchor parses an ISO date and normalises it to its week's Monday.
func ParseWeekAnchor(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse week anchor %q: %w", raw, err)
	}
	return WeekStartOf(t), nil
}

// Week is the anchor of the displayed week. Moving between weeks never
// touches slot data: slots are keyed by weekday and time only.
type Week struct {
	Start time.Time
}

// WeekOf returns the week containing t.
func WeekOf(t time.Time) Week {
	return Week{Start: WeekStartOf(t)}
}

// Previous moves the anchor back seven days.
func (w Week) Previous() Week {
	return Week{Start: w.Start.AddDate(0, 0, -DaysPerWeek)}
}

// Next moves the anchor forward seven days.
func (w Week) Next() Week {
	return Week{Start: w.Start.AddDate(0, 0, DaysPerWeek)}
}

// Shift moves the anchor by n weeks; negative n moves back.
func (w Week) Shift(n int) Week {
	return Week{Start: w.Start.AddDate(0, 0, n*DaysPerWeek)}
}

// Today resets the anchor to the week containing now.
func (w Week) Today(now time.Time) Week {
	return WeekOf(now)
}

// Dates returns the seven dates of the week.
func (w Week) Dates() [DaysPerWeek]time.Time {
	return WeekDates(w.Start)
}

// String returns the ISO date of the anchor Monday.
func (w Week) String() string {
	return w.Start.Format(DateLayout)
}
