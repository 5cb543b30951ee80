package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
	"github.com/jakechorley/clinic-roster/pkg/db"
)

// Wednesday before the week of 2026-10-19
var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

// rosterDirectory has active clinics North(1) and South(2), inactive clinic Old(3),
// Ortho doctors 10 and 11 (11 has no room or email) and Dental doctor 20
func rosterDirectory() *model.Directory {
	return &model.Directory{
		Doctors: []model.Doctor{
			{ID: 10, FullName: "Dr. Adi", DepartmentID: 1, DefaultRoomID: 101, Email: "adi@clinic.test"},
			{ID: 11, FullName: "Dr. Bea", DepartmentID: 1},
			{ID: 20, FullName: "Dr. Cy", DepartmentID: 2, DefaultRoomID: 201, Email: "cy@clinic.test"},
		},
		Departments: []model.Department{
			{ID: 1, Name: "Ortho"},
			{ID: 2, Name: "Dental"},
		},
		Clinics: []model.Clinic{
			{ID: 1, Name: "North", Active: true},
			{ID: 2, Name: "South", Active: true},
			{ID: 3, Name: "Old", Active: false},
		},
	}
}

func writeRosterFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

type fakeDirectoryStore struct {
	directory *model.Directory
	err       error
}

func (f *fakeDirectoryStore) ListActiveDoctors(ctx context.Context) ([]model.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.directory.Doctors, nil
}

func (f *fakeDirectoryStore) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return f.directory.Departments, nil
}

func (f *fakeDirectoryStore) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	return f.directory.Clinics, nil
}

// fakeAssignmentStore keeps submissions in memory
type fakeAssignmentStore struct {
	submitted   []model.WeekSubmission
	records     map[string][]model.AssignmentRecord
	submissions []db.Submission
	persistErr  error
}

func (f *fakeAssignmentStore) PersistWeek(ctx context.Context, submission model.WeekSubmission) ([]model.AssignmentRecord, error) {
	if f.persistErr != nil {
		return nil, f.persistErr
	}
	records := db.NewWeekRecords(submission)
	f.submitted = append(f.submitted, submission)
	if f.records == nil {
		f.records = make(map[string][]model.AssignmentRecord)
	}
	f.records[submission.WeekStart] = records
	f.submissions = append(f.submissions, db.Submission{
		ID:          db.NewSubmissionID(),
		WeekStart:   submission.WeekStart,
		Note:        submission.Note,
		SubmittedAt: time.Date(2026, 10, 15, 9, len(f.submissions), 0, 0, time.UTC).Format(time.RFC3339),
		Assignments: len(records),
	})
	return records, nil
}

func (f *fakeAssignmentStore) GetWeekAssignments(ctx context.Context, weekStart string) ([]model.AssignmentRecord, error) {
	return f.records[weekStart], nil
}

func (f *fakeAssignmentStore) GetSubmissions(ctx context.Context) ([]db.Submission, error) {
	out := make([]db.Submission, len(f.submissions))
	copy(out, f.submissions)
	return out, nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

type fakeEmailer struct {
	sent   []sentEmail
	failTo map[string]error
}

func (f *fakeEmailer) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := f.failTo[to]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}
