package db

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

// NewSubmissionID returns a fresh id for a stored submission
func NewSubmissionID() string {
	return uuid.New().String()
}

// NewWeekRecords assigns an id to every assignment of a submission.
// Records are ordered by day, then by their order within the day.
func NewWeekRecords(submission model.WeekSubmission) []model.AssignmentRecord {
	dayKeys := make([]string, 0, len(submission.DailyAssignments))
	for dayKey := range submission.DailyAssignments {
		dayKeys = append(dayKeys, dayKey)
	}
	sort.Strings(dayKeys)

	records := make([]model.AssignmentRecord, 0, submission.DailyAssignments.Count())
	for _, dayKey := range dayKeys {
		for _, assignment := range submission.DailyAssignments[dayKey] {
			if assignment.DayKey == "" {
				assignment.DayKey = dayKey
			}
			records = append(records, model.AssignmentRecord{
				ID:              uuid.New().String(),
				ShiftAssignment: assignment,
				Date:            dayKey,
			})
		}
	}
	return records
}

// GroupByDay rebuilds DailyAssignments from stored records
func GroupByDay(records []model.AssignmentRecord) model.DailyAssignments {
	daily := make(model.DailyAssignments)
	for _, record := range records {
		daily[record.Date] = append(daily[record.Date], record.ShiftAssignment)
	}
	return daily
}
