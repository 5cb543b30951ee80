package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/core/roster"
)

// OpenRosterFile loads a roster file into a fresh editing session for the corrected week.
// A file without a note takes the default note of its week.
func OpenRosterFile(path string, now time.Time, cfg *config.Config, logger *zap.Logger) (*roster.OpenedFile, error) {
	logger.Debug("Opening roster file", zap.String("path", path))

	file, err := roster.LoadFile(path)
	if err != nil {
		return nil, err
	}

	catalog, err := cfg.ShiftCatalog()
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opened := file.Open(calendar.Today(now, loc), catalog)
	for _, warning := range opened.Warnings {
		logger.Warn("Week start corrected", zap.String("warning", warning))
	}

	if opened.Session != nil && opened.Session.Note() == "" {
		note, err := cfg.NoteForWeek(opened.Session.Week())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve week note: %w", err)
		}
		opened.Session.SetNote(note)
	}

	logger.Debug("Roster file opened",
		zap.Int("cells", len(file.Cells)),
		zap.Int("file_errors", len(opened.Errors)))

	return opened, nil
}

// ValidateRoster runs a dry-run validation of an opened roster file.
// Structural problems found while opening the file are reported instead of coverage.
func ValidateRoster(opened *roster.OpenedFile, directory *model.Directory, cfg *config.Config, logger *zap.Logger) (model.ValidateResponse, error) {
	if len(opened.Errors) > 0 || opened.Session == nil {
		logger.Debug("Roster file has structural errors", zap.Int("errors", len(opened.Errors)))
		return model.ValidateResponse{IsValid: false, Errors: roster.Messages(opened.Errors)}, nil
	}

	rule, err := roster.RuleForPolicy(cfg.CoveragePolicy)
	if err != nil {
		return model.ValidateResponse{}, err
	}

	result, err := opened.Session.Validate(directory, rule)
	if err != nil {
		return model.ValidateResponse{}, err
	}

	logger.Debug("Roster validated",
		zap.String("week_start", opened.Session.Week().Key()),
		zap.String("rule", rule.Name()),
		zap.Bool("valid", result.IsValid),
		zap.Int("errors", len(result.Errors)))

	return result.Response(), nil
}

// SubmitRoster re-validates an opened roster file and persists it only when clean
func SubmitRoster(
	ctx context.Context,
	opened *roster.OpenedFile,
	directory *model.Directory,
	persister roster.Persister,
	cfg *config.Config,
	logger *zap.Logger,
) (*roster.SubmitResult, error) {
	if len(opened.Errors) > 0 || opened.Session == nil {
		logger.Debug("Roster file has structural errors, not submitting", zap.Int("errors", len(opened.Errors)))
		return &roster.SubmitResult{OK: false, Errors: opened.Errors}, nil
	}

	return SubmitSession(ctx, opened.Session, directory, persister, cfg, logger)
}

// SubmitSession submits an editing session
func SubmitSession(
	ctx context.Context,
	session *roster.Session,
	directory *model.Directory,
	persister roster.Persister,
	cfg *config.Config,
	logger *zap.Logger,
) (*roster.SubmitResult, error) {
	rule, err := roster.RuleForPolicy(cfg.CoveragePolicy)
	if err != nil {
		return nil, err
	}

	weekStart := session.Week().Key()
	logger.Debug("Submitting roster", zap.String("week_start", weekStart), zap.String("rule", rule.Name()))

	result, err := session.Submit(ctx, directory, rule, persister)
	if err != nil {
		return nil, err
	}

	if !result.OK {
		logger.Info("Roster rejected", zap.String("week_start", weekStart), zap.Int("errors", len(result.Errors)))
		return result, nil
	}

	for _, doctorID := range unroomedDoctors(result.Submission.DailyAssignments) {
		doctor, _ := directory.DoctorByID(doctorID)
		logger.Warn("Doctor has no default room, assignments stored with room 0",
			zap.Int64("doctor_id", doctorID),
			zap.String("doctor", doctor.FullName))
	}

	logger.Info("Roster submitted",
		zap.String("week_start", weekStart),
		zap.Int("assignments", len(result.Records)))

	return result, nil
}

// unroomedDoctors returns the ids of doctors with any assignment lacking a room, ascending
func unroomedDoctors(daily model.DailyAssignments) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, assignments := range daily {
		for _, assignment := range assignments {
			if assignment.RoomID == 0 && !seen[assignment.DoctorID] {
				seen[assignment.DoctorID] = true
				ids = append(ids, assignment.DoctorID)
			}
		}
	}
	slices.Sort(ids)
	return ids
}
