package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// DayKeyLayout is the layout of dayKeys and weekStart strings
const DayKeyLayout = "2006-01-02"

// WorkingDaysPerWeek is the number of working days, Monday through Saturday
const WorkingDaysPerWeek = 6

// ErrInvalidWeekStart is returned when a weekStart cannot be parsed or is not a Monday
var ErrInvalidWeekStart = errors.New("invalid week start")

// WorkDay is a single working day of a week
type WorkDay struct {
	// Key identifies the day in grids and payloads (YYYY-MM-DD)
	Key string

	// Date is midnight UTC of the day
	Date time.Time
}

// Name returns the weekday name, e.g. "Monday"
func (d WorkDay) Name() string {
	return d.Date.Weekday().String()
}

// Display returns the human-readable date
func (d WorkDay) Display() string {
	return d.Date.Format("Mon 02 Jan 2006")
}

// WeekWindow is a single schedulable week anchored on its Monday
type WeekWindow struct {
	WeekStart time.Time
	days      []WorkDay
}

// NewWeekWindow builds the week starting at weekStart, which must be a Monday
func NewWeekWindow(weekStart time.Time) (WeekWindow, error) {
	normalized := normalize(weekStart)
	if normalized.Weekday() != time.Monday {
		return WeekWindow{}, fmt.Errorf("%w: %s is a %s", ErrInvalidWeekStart, normalized.Format(DayKeyLayout), normalized.Weekday())
	}
	return WeekWindow{
		WeekStart: normalized,
		days:      WorkingDaysOf(normalized),
	}, nil
}

// Key returns the weekStart as YYYY-MM-DD
func (w WeekWindow) Key() string {
	return w.WeekStart.Format(DayKeyLayout)
}

// WorkingDays returns the six working days in order. The slice is a copy.
func (w WeekWindow) WorkingDays() []WorkDay {
	days := make([]WorkDay, len(w.days))
	copy(days, w.days)
	return days
}

// Day returns the working day with the given key
func (w WeekWindow) Day(dayKey string) (WorkDay, bool) {
	for _, day := range w.days {
		if day.Key == dayKey {
			return day, true
		}
	}
	return WorkDay{}, false
}

// DayByName resolves a weekday name ("monday", "Mon") to a working day of this week
func (w WeekWindow) DayByName(name string) (WorkDay, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return WorkDay{}, false
	}
	for _, day := range w.days {
		dayName := strings.ToLower(day.Name())
		if dayName == name || (len(name) >= 3 && strings.HasPrefix(dayName, name)) {
			return day, true
		}
	}
	return WorkDay{}, false
}

// ResolveDay accepts either a dayKey or a weekday name
func (w WeekWindow) ResolveDay(value string) (WorkDay, bool) {
	if day, ok := w.Day(value); ok {
		return day, true
	}
	return w.DayByName(value)
}

// ComputeMonday returns the Monday of the week containing date.
// Sunday belongs to the week that started six days earlier.
func ComputeMonday(date time.Time) time.Time {
	normalized := normalize(date)

	// Monday is 1, Sunday is 0: back up (weekday+6)%7 days
	daysSinceMonday := (int(normalized.Weekday()) + 6) % 7
	return normalized.AddDate(0, 0, -daysSinceMonday)
}

// NextAllowedMonday returns the Monday of the week after today's week.
// This is the earliest weekStart that may be scheduled.
func NextAllowedMonday(today time.Time) time.Time {
	return ComputeMonday(today).AddDate(0, 0, 7)
}

// WorkingDaysOf returns Monday through Saturday of the week starting at weekStart
func WorkingDaysOf(weekStart time.Time) []WorkDay {
	monday := ComputeMonday(weekStart)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   monday,
		Count:     WorkingDaysPerWeek,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA},
	})
	if err != nil {
		// Constant option set; only reachable through a broken rrule build
		panic(fmt.Sprintf("calendar: invalid working week rule: %v", err))
	}

	occurrences := rule.All()
	days := make([]WorkDay, 0, len(occurrences))
	for _, occurrence := range occurrences {
		date := normalize(occurrence)
		days = append(days, WorkDay{
			Key:  date.Format(DayKeyLayout),
			Date: date,
		})
	}
	return days
}

// ResolveWeekStart corrects a requested weekStart into a schedulable week.
// A non-Monday is moved back to its Monday, and anything before NextAllowedMonday(today)
// is moved up to it. Each correction is reported as a warning rather than an error.
func ResolveWeekStart(requested, today time.Time) (WeekWindow, []string) {
	var warnings []string

	requested = normalize(requested)
	weekStart := ComputeMonday(requested)
	if !weekStart.Equal(requested) {
		warnings = append(warnings, fmt.Sprintf("week start %s is a %s; using Monday %s",
			requested.Format(DayKeyLayout), requested.Weekday(), weekStart.Format(DayKeyLayout)))
	}

	floor := NextAllowedMonday(today)
	if weekStart.Before(floor) {
		warnings = append(warnings, fmt.Sprintf("week starting %s is not schedulable (current or past week); using %s",
			weekStart.Format(DayKeyLayout), floor.Format(DayKeyLayout)))
		weekStart = floor
	}

	return WeekWindow{
		WeekStart: weekStart,
		days:      WorkingDaysOf(weekStart),
	}, warnings
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DayKeyLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidWeekStart, value)
	}
	return parsed, nil
}

// Today returns the current date in loc as midnight UTC
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return normalize(now)
}

// normalize drops the time of day, keeping the calendar date in UTC
func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
