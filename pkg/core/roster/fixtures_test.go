package roster

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/clinic-roster/pkg/core/calendar"
	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

const (
	monday    = "2026-10-19"
	tuesday   = "2026-10-20"
	wednesday = "2026-10-21"
	saturday  = "2026-10-24"

	north int64 = 1
	south int64 = 2
)

func testWeek(t *testing.T) calendar.WeekWindow {
	t.Helper()
	week, err := calendar.NewWeekWindow(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return week
}

// testDirectory has clinics North(1) and South(2), departments Ortho(1) and Dental(2),
// Ortho doctors 7 and 8, Dental doctors 11 and 12 (12 has no default room)
func testDirectory() *model.Directory {
	return &model.Directory{
		Doctors: []model.Doctor{
			{ID: 7, FullName: "Dr. Adi", DepartmentID: 1, DefaultRoomID: 101},
			{ID: 8, FullName: "Dr. Budi", DepartmentID: 1, DefaultRoomID: 102},
			{ID: 11, FullName: "Dr. Citra", DepartmentID: 2, DefaultRoomID: 201},
			{ID: 12, FullName: "Dr. Dewi", DepartmentID: 2},
		},
		Departments: []model.Department{
			{ID: 1, Name: "Ortho"},
			{ID: 2, Name: "Dental"},
		},
		Clinics: []model.Clinic{
			{ID: north, Name: "North", Active: true},
			{ID: south, Name: "South", Active: true},
		},
	}
}

func testInput(t *testing.T, grid *Grid) Input {
	t.Helper()
	return Input{
		Grid:      grid,
		Week:      testWeek(t),
		Catalog:   model.DefaultShiftCatalog(),
		Directory: testDirectory(),
		Rule:      PairwiseRule{},
	}
}

// fakePersister records submissions
type fakePersister struct {
	submissions []model.WeekSubmission
	err         error
}

func (p *fakePersister) PersistWeek(ctx context.Context, submission model.WeekSubmission) ([]model.AssignmentRecord, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.submissions = append(p.submissions, submission)

	var records []model.AssignmentRecord
	for dayKey, assignments := range submission.DailyAssignments {
		for i, assignment := range assignments {
			records = append(records, model.AssignmentRecord{
				ID:              fmt.Sprintf("%s-%d", dayKey, i),
				ShiftAssignment: assignment,
				Date:            dayKey,
			})
		}
	}
	return records, nil
}
