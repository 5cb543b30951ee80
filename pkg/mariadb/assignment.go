package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/db"
)

// PersistWeek stores a confirmed week and all of its assignments in one transaction
func (d *DB) PersistWeek(ctx context.Context, submission model.WeekSubmission) ([]model.AssignmentRecord, error) {
	submissionID := db.NewSubmissionID()
	records := db.NewWeekRecords(submission)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO roster_submission (id, week_start, note)
		VALUES (?, ?, ?)
	`, submissionID, submission.WeekStart, nullString(submission.Note))
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roster_assignment
			(id, submission_id, shift_date, shift_id, doctor_id, clinic_id, room_id, chair_id, start_time, end_time, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx, r.ID, submissionID, r.Date, r.ShiftID, r.DoctorID, r.ClinicID,
			r.RoomID, r.ChairID, r.StartTime, r.EndTime, nullString(r.Note))
		if err != nil {
			return nil, fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return records, nil
}

// GetWeekAssignments retrieves the assignments of the most recent submission for a week.
// Returns nil if the week has never been submitted.
func (d *DB) GetWeekAssignments(ctx context.Context, weekStart string) ([]model.AssignmentRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT a.id, a.shift_date, a.shift_id, a.doctor_id, a.clinic_id, a.room_id, a.chair_id,
			a.start_time, a.end_time, a.note
		FROM roster_assignment a
		WHERE a.submission_id = (
			SELECT id FROM roster_submission
			WHERE week_start = ?
			ORDER BY submitted_at DESC
			LIMIT 1
		)
		ORDER BY a.shift_date, a.doctor_id, a.start_time
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var records []model.AssignmentRecord
	for rows.Next() {
		var r model.AssignmentRecord
		var shiftDate time.Time
		var note sql.NullString
		if err := rows.Scan(&r.ID, &shiftDate, &r.ShiftID, &r.DoctorID, &r.ClinicID, &r.RoomID, &r.ChairID,
			&r.StartTime, &r.EndTime, &note); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		r.Date = shiftDate.Format("2006-01-02")
		r.DayKey = r.Date
		r.Note = note.String
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return records, nil
}

// GetSubmissions retrieves every stored submission, newest first
func (d *DB) GetSubmissions(ctx context.Context) ([]db.Submission, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT s.id, s.week_start, s.note, s.submitted_at, COUNT(a.id)
		FROM roster_submission s
		LEFT JOIN roster_assignment a ON a.submission_id = s.id
		GROUP BY s.id, s.week_start, s.note, s.submitted_at
		ORDER BY s.submitted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []db.Submission
	for rows.Next() {
		var s db.Submission
		var weekStart, submittedAt time.Time
		var note sql.NullString
		if err := rows.Scan(&s.ID, &weekStart, &note, &submittedAt, &s.Assignments); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.WeekStart = weekStart.Format("2006-01-02")
		s.SubmittedAt = submittedAt.UTC().Format(time.RFC3339)
		s.Note = note.String
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}

	return submissions, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
