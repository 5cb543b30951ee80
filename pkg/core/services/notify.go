package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// Emailer sends a plain text email
type Emailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// NotifyResult reports which doctors were emailed their week
type NotifyResult struct {
	Sent    []string // doctor names
	NoEmail []string // doctors skipped because the directory has no email for them
	Failed  []string // doctors whose email could not be sent
}

// NotifyRoster emails every assigned doctor their shifts for a confirmed week.
// A failed send is logged and does not stop the remaining emails.
func NotifyRoster(
	ctx context.Context,
	emailer Emailer,
	weekStart string,
	note string,
	records []model.AssignmentRecord,
	directory *model.Directory,
	catalog model.ShiftCatalog,
	logger *zap.Logger,
) (*NotifyResult, error) {
	logger.Debug("Starting notifyRoster", zap.String("week_start", weekStart), zap.Int("records", len(records)))

	views, err := viewAssignments(records, directory, catalog)
	if err != nil {
		return nil, err
	}

	// Group per doctor, keeping the first-seen doctor order
	var order []int64
	byDoctor := make(map[int64][]assignmentView)
	for _, view := range views {
		if _, ok := byDoctor[view.DoctorID]; !ok {
			order = append(order, view.DoctorID)
		}
		byDoctor[view.DoctorID] = append(byDoctor[view.DoctorID], view)
	}

	result := &NotifyResult{}
	subject := fmt.Sprintf("Your clinic roster for the week of %s", weekStart)

	for _, doctorID := range order {
		doctorViews := byDoctor[doctorID]
		doctor := doctorViews[0]

		if doctor.Email == "" {
			logger.Warn("Doctor has no email, skipping notification", zap.Int64("doctor_id", doctorID))
			result.NoEmail = append(result.NoEmail, doctor.Doctor)
			continue
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := emailer.SendEmail(ctx, doctor.Email, subject, rosterEmailBody(doctor.Doctor, weekStart, note, doctorViews)); err != nil {
			logger.Error("Failed to send roster email",
				zap.Int64("doctor_id", doctorID),
				zap.String("email", doctor.Email),
				zap.Error(err))
			result.Failed = append(result.Failed, doctor.Doctor)
			continue
		}

		logger.Debug("Roster email sent", zap.Int64("doctor_id", doctorID), zap.String("email", doctor.Email))
		result.Sent = append(result.Sent, doctor.Doctor)
	}

	logger.Info("Roster notifications finished",
		zap.Int("sent", len(result.Sent)),
		zap.Int("no_email", len(result.NoEmail)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

func rosterEmailBody(name, weekStart, note string, views []assignmentView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "Your shifts for the week of %s:\n\n", weekStart)
	for _, view := range views {
		fmt.Fprintf(&b, "  %s  %s %s  %s", view.DateDisplay(), view.Shift, view.TimeRange(), view.Clinic)
		if view.Room != "" {
			fmt.Fprintf(&b, ", room %s", view.Room)
		}
		b.WriteString("\n")
	}
	if note != "" {
		fmt.Fprintf(&b, "\nNote: %s\n", note)
	}
	return b.String()
}

// NotifyWeek emails every assigned doctor the latest confirmed roster of a stored week
func NotifyWeek(
	ctx context.Context,
	store WeekStore,
	emailer Emailer,
	directory *model.Directory,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*NotifyResult, error) {
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

	return NotifyRoster(ctx, emailer, weekStart, submission.Note, records, directory, catalog, logger)
}
