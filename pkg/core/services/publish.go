package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/db"
)

// WeekStore defines the database operations needed to read back a confirmed week
type WeekStore interface {
	GetWeekAssignments(ctx context.Context, weekStart string) ([]model.AssignmentRecord, error)
	GetSubmissions(ctx context.Context) ([]db.Submission, error)
}

// WeekPublisher writes a published week to a spreadsheet
type WeekPublisher interface {
	PublishWeek(ctx context.Context, spreadsheetID string, week *sheetsclient.PublishedWeek) (string, error)
}

// PublishResult describes a published week
type PublishResult struct {
	WeekStart   string
	TabTitle    string
	Assignments int
}

// PublishRoster writes the latest confirmed submission of a week to the publish spreadsheet
func PublishRoster(
	ctx context.Context,
	store WeekStore,
	publisher WeekPublisher,
	directory *model.Directory,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*PublishResult, error) {
	logger.Debug("Starting publishRoster", zap.String("week_start", weekStart))

	if cfg.PublishSheetID == "" {
		return nil, fmt.Errorf("publishSheetID is not configured")
	}

	catalog, err := cfg.ShiftCatalog()
	if err != nil {
		return nil, err
	}

	records, err := store.GetWeekAssignments(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("week %s has no confirmed roster", weekStart)
	}

	submission, err := latestSubmission(ctx, store, weekStart)
	if err != nil {
		return nil, err
	}

	week, err := buildPublishedWeek(weekStart, submission.Note, records, directory, catalog)
	if err != nil {
		return nil, err
	}

	title, err := publisher.PublishWeek(ctx, cfg.PublishSheetID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to publish week %s: %w", weekStart, err)
	}

	logger.Info("Roster published",
		zap.String("week_start", weekStart),
		zap.String("tab", title),
		zap.Int("assignments", len(week.Rows)))

	return &PublishResult{
		WeekStart:   weekStart,
		TabTitle:    title,
		Assignments: len(week.Rows),
	}, nil
}

// latestSubmission returns the most recent submission for a week
func latestSubmission(ctx context.Context, store WeekStore, weekStart string) (*db.Submission, error) {
	submissions, err := store.GetSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	var latest *db.Submission
	for i := range submissions {
		s := &submissions[i]
		if s.WeekStart != weekStart {
			continue
		}
		if latest == nil || s.SubmittedAt > latest.SubmittedAt {
			latest = s
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("week %s has no submission", weekStart)
	}
	return latest, nil
}

func buildPublishedWeek(
	weekStart, note string,
	records []model.AssignmentRecord,
	directory *model.Directory,
	catalog model.ShiftCatalog,
) (*sheetsclient.PublishedWeek, error) {
	views, err := viewAssignments(records, directory, catalog)
	if err != nil {
		return nil, err
	}

	week := &sheetsclient.PublishedWeek{
		WeekStart: weekStart,
		Note:      note,
		Rows:      make([]sheetsclient.PublishedWeekRow, 0, len(views)),
	}
	for _, view := range views {
		week.Rows = append(week.Rows, sheetsclient.PublishedWeekRow{
			Date:       view.DateDisplay(),
			Shift:      view.Shift,
			Time:       view.TimeRange(),
			Clinic:     view.Clinic,
			Department: view.Department,
			Doctor:     view.Doctor,
			Room:       view.Room,
		})
	}
	return week, nil
}
