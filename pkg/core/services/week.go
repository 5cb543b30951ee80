package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
)

// WeekResult is a resolved, schedulable week
type WeekResult struct {
	Week     calendar.WeekWindow
	Note     string   // default note from weekNotes
	Warnings []string // corrections applied to the requested week start
}

// ResolveWeek turns a requested week start (YYYY-MM-DD, or empty for the next schedulable
// week) into a schedulable week. Corrections are logged and returned as warnings.
func ResolveWeek(requested string, now time.Time, cfg *config.Config, logger *zap.Logger) (*WeekResult, error) {
	logger.Debug("Resolving week", zap.String("requested", requested))

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	today := calendar.Today(now, loc)

	requestedDate := calendar.NextAllowedMonday(today)
	if requested != "" {
		requestedDate, err = calendar.ParseDate(requested)
		if err != nil {
			return nil, err
		}
	}

	week, warnings := calendar.ResolveWeekStart(requestedDate, today)
	for _, warning := range warnings {
		logger.Warn("Week start corrected", zap.String("warning", warning))
	}

	note, err := cfg.NoteForWeek(week)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve week note: %w", err)
	}

	logger.Debug("Week resolved", zap.String("week_start", week.Key()), zap.String("note", note))

	return &WeekResult{
		Week:     week,
		Note:     note,
		Warnings: warnings,
	}, nil
}
