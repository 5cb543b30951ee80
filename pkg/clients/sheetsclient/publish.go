package sheetsclient

import (
	"context"
	"fmt"
	"time"
)

// PublishedWeekRow is one assignment line of a published week
type PublishedWeekRow struct {
	Date       string // Format: "Mon 02 Jan 2006"
	Shift      string
	Time       string // "08:00-11:00"
	Clinic     string
	Department string
	Doctor     string
	Room       string // Blank when the doctor has no default room
}

// PublishedWeek is a confirmed week laid out for a spreadsheet tab
type PublishedWeek struct {
	WeekStart string // Format: "2006-01-02"
	Note      string
	Rows      []PublishedWeekRow
}

var weekHeader = []interface{}{"Date", "Shift", "Time", "Clinic", "Department", "Doctor", "Room"}

// PublishWeek writes a confirmed week to its own tab, creating the tab on first publish and
// overwriting it on later ones. Returns the tab title.
func (c *Client) PublishWeek(ctx context.Context, spreadsheetID string, week *PublishedWeek) (string, error) {
	title, err := weekTabTitle(week.WeekStart)
	if err != nil {
		return "", fmt.Errorf("failed to generate tab title: %w", err)
	}

	exists, err := c.SheetExists(ctx, spreadsheetID, title)
	if err != nil {
		return "", err
	}
	if !exists {
		if _, err := c.CreateSheet(ctx, spreadsheetID, title); err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.ReplaceValues(ctx, spreadsheetID, title, weekSheetRows(week)); err != nil {
		return "", fmt.Errorf("failed to publish week: %w", err)
	}

	return title, nil
}

// weekTabTitle creates a tab title in the format "Week of Mon 19 Oct 2026"
func weekTabTitle(weekStart string) (string, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return "", fmt.Errorf("invalid week start: %w", err)
	}
	return "Week of " + start.Format("Mon 02 Jan 2006"), nil
}

// weekSheetRows lays out the tab: the note (possibly blank) in row 1, a gap, then the header
// at row 3 followed by one row per assignment
func weekSheetRows(week *PublishedWeek) [][]interface{} {
	rows := [][]interface{}{
		{week.Note},
		{},
		weekHeader,
	}
	for _, row := range week.Rows {
		rows = append(rows, []interface{}{row.Date, row.Shift, row.Time, row.Clinic, row.Department, row.Doctor, row.Room})
	}
	return rows
}
