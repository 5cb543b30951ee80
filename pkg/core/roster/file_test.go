package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

var fileToday = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

func TestParseFile(t *testing.T) {
	data := []byte(`
weekStart: "2026-10-19"
note: Saturday is a half day
cells:
  - doctorId: 7
    day: Monday
    shift: morning
    clinicId: 1
  - doctorId: 8
    day: "2026-10-19"
    shift: afternoon
    clinicId: 2
`)

	file, err := ParseFile(data)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-19", file.WeekStart)
	assert.Equal(t, "Saturday is a half day", file.Note)
	require.Len(t, file.Cells, 2)
	assert.Equal(t, FileCell{DoctorID: 8, Day: "2026-10-19", Shift: "afternoon", ClinicID: 2}, file.Cells[1])
}

func TestParseFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing week", "cells: []"},
		{"missing clinic", "weekStart: \"2026-10-19\"\ncells:\n  - doctorId: 7\n    day: Monday\n    shift: morning\n"},
		{"negative doctor", "weekStart: \"2026-10-19\"\ncells:\n  - doctorId: -1\n    day: Monday\n    shift: morning\n    clinicId: 1\n"},
		{"not yaml", "weekStart: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestFileOpen_ReplaysCells(t *testing.T) {
	file := &File{
		WeekStart: monday,
		Note:      "note",
		Cells: []FileCell{
			{DoctorID: 7, Day: "Monday", Shift: model.ShiftMorning, ClinicID: north},
			{DoctorID: 7, Day: monday, Shift: model.ShiftAfternoon, ClinicID: south},
		},
	}

	opened := file.Open(fileToday, model.DefaultShiftCatalog())
	require.NotNil(t, opened.Session)
	assert.Empty(t, opened.Errors)
	assert.Empty(t, opened.Warnings)

	assert.Equal(t, "note", opened.Session.Note())
	assert.Equal(t, StatePopulated, opened.Session.State())
	assert.Equal(t, map[string]int64{
		model.ShiftMorning:   north,
		model.ShiftAfternoon: south,
	}, opened.Session.ReadDay(7, monday))
}

func TestFileOpen_CorrectsWeekStart(t *testing.T) {
	// A Wednesday inside the current week moves to the next schedulable Monday
	file := &File{
		WeekStart: "2026-10-14",
		Cells:     []FileCell{{DoctorID: 7, Day: "Tuesday", Shift: model.ShiftMorning, ClinicID: north}},
	}

	opened := file.Open(fileToday, model.DefaultShiftCatalog())
	require.NotNil(t, opened.Session)

	assert.Equal(t, monday, opened.Session.Week().Key())
	assert.Len(t, opened.Warnings, 2)
	assert.Equal(t, map[string]int64{model.ShiftMorning: north}, opened.Session.ReadDay(7, tuesday))
}

func TestFileOpen_StructuralErrors(t *testing.T) {
	file := &File{
		WeekStart: monday,
		Cells: []FileCell{
			{DoctorID: 7, Day: "Sunday", Shift: model.ShiftMorning, ClinicID: north},
			{DoctorID: 7, Day: "Monday", Shift: "night", ClinicID: north},
			{DoctorID: 8, Day: "Monday", Shift: model.ShiftMorning, ClinicID: north},
			{DoctorID: 8, Day: monday, Shift: model.ShiftMorning, ClinicID: south},
		},
	}

	opened := file.Open(fileToday, model.DefaultShiftCatalog())
	require.NotNil(t, opened.Session)
	require.Len(t, opened.Errors, 3)
	for _, e := range opened.Errors {
		assert.Equal(t, KindStructural, e.Kind)
	}
	assert.Contains(t, opened.Errors[0].Message, "Cell 1")
	assert.Contains(t, opened.Errors[1].Message, "unknown shift \"night\"")
	assert.Contains(t, opened.Errors[2].Message, "(cell 3)")

	// The first of the duplicate cells wins
	assert.Equal(t, map[string]int64{model.ShiftMorning: north}, opened.Session.ReadDay(8, monday))
}

func TestFileOpen_MalformedWeekStart(t *testing.T) {
	file := &File{WeekStart: "19/10/2026"}

	opened := file.Open(fileToday, model.DefaultShiftCatalog())
	assert.Nil(t, opened.Session)
	require.Len(t, opened.Errors, 1)
	assert.Equal(t, KindStructural, opened.Errors[0].Kind)
}

func TestFileFromSession(t *testing.T) {
	session := newTestSession(t)
	session.SetNote("handover")
	require.NoError(t, session.UpdateCell(11, "Tuesday", model.ShiftMorning, clinic(south)))
	require.NoError(t, session.UpdateCell(7, "Monday", model.ShiftMorning, clinic(north)))

	file := FileFromSession(session)
	assert.Equal(t, monday, file.WeekStart)
	assert.Equal(t, "handover", file.Note)
	assert.Equal(t, []FileCell{
		{DoctorID: 7, Day: monday, Shift: model.ShiftMorning, ClinicID: north},
		{DoctorID: 11, Day: tuesday, Shift: model.ShiftMorning, ClinicID: south},
	}, file.Cells)

	data, err := file.Marshal()
	require.NoError(t, err)

	reopened, err := ParseFile(data)
	require.NoError(t, err)
	opened := reopened.Open(fileToday, model.DefaultShiftCatalog())
	assert.Empty(t, opened.Errors)
	assert.Equal(t, session.Cells(), opened.Session.Cells())
}

func TestFileOpen_DoctorMissingFromDirectoryIsCorrectable(t *testing.T) {
	file := &File{
		WeekStart: monday,
		Cells: []FileCell{
			{DoctorID: 7, Day: "Monday", Shift: model.ShiftMorning, ClinicID: north},
			{DoctorID: 8, Day: "Monday", Shift: model.ShiftAfternoon, ClinicID: south},
			{DoctorID: 99, Day: "Monday", Shift: model.ShiftMorning, ClinicID: north},
		},
	}

	opened := file.Open(fileToday, model.DefaultShiftCatalog())
	require.Empty(t, opened.Errors)
	require.NotNil(t, opened.Session)

	result, err := opened.Session.Validate(testDirectory(), PairwiseRule{})
	require.NoError(t, err, "a removed doctor is reported, not raised")
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, KindStructural, result.Errors[0].Kind)
	assert.Equal(t, "Doctor 99 on Monday (Morning) is not an active doctor; clear the cell or restore the doctor.", result.Errors[0].Message)
	assert.Equal(t, monday, result.Errors[0].DayKey)

	require.NoError(t, opened.Session.UpdateCell(99, "Monday", model.ShiftMorning, nil))

	result, err = opened.Session.Validate(testDirectory(), PairwiseRule{})
	require.NoError(t, err)
	assert.True(t, result.IsValid, "%v", Messages(result.Errors))
}
