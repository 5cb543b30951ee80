package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

func TestExpand_OneAssignmentPerCell(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftMorning, north)
	grid.SetCell(7, monday, model.ShiftAfternoon, south)
	grid.SetCell(11, monday, model.ShiftMorning, south)
	grid.SetCell(8, wednesday, model.ShiftAfternoon, north)
	grid.SetCell(12, saturday, model.ShiftMorning, north)

	result, err := Expand(grid, testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	require.NoError(t, err)

	assert.Equal(t, grid.Len(), result.Count())
	assert.Len(t, result[monday], 3)
	assert.Len(t, result[wednesday], 1)
	assert.Len(t, result[saturday], 1)
	_, hasTuesday := result[tuesday]
	assert.False(t, hasTuesday, "days without assignments have no key")
}

func TestExpand_AssignmentFields(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftAfternoon, south)
	grid.SetCell(12, monday, model.ShiftMorning, north)

	result, err := Expand(grid, testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	require.NoError(t, err)
	require.Len(t, result[monday], 2)

	assert.Equal(t, model.ShiftAssignment{
		DoctorID:  7,
		ClinicID:  south,
		RoomID:    101,
		ChairID:   model.UnassignedChair,
		DayKey:    monday,
		ShiftID:   model.ShiftAfternoon,
		StartTime: "13:00",
		EndTime:   "18:00",
	}, result[monday][0])

	// Doctor without a default room keeps room 0
	assert.Equal(t, int64(12), result[monday][1].DoctorID)
	assert.Equal(t, int64(0), result[monday][1].RoomID)
	assert.Equal(t, "08:00", result[monday][1].StartTime)
	assert.Equal(t, "11:00", result[monday][1].EndTime)
}

func TestExpand_OrderIsDoctorThenCatalog(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(11, monday, model.ShiftAfternoon, north)
	grid.SetCell(7, monday, model.ShiftAfternoon, south)
	grid.SetCell(7, monday, model.ShiftMorning, north)

	result, err := Expand(grid, testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	require.NoError(t, err)
	require.Len(t, result[monday], 3)

	assert.Equal(t, int64(7), result[monday][0].DoctorID)
	assert.Equal(t, model.ShiftMorning, result[monday][0].ShiftID)
	assert.Equal(t, int64(7), result[monday][1].DoctorID)
	assert.Equal(t, model.ShiftAfternoon, result[monday][1].ShiftID)
	assert.Equal(t, int64(11), result[monday][2].DoctorID)
}

func TestExpand_EmptyGrid(t *testing.T) {
	result, err := Expand(NewGrid(), testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count())
}

func TestExpand_UnknownDoctorIsMisuse(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(99, monday, model.ShiftMorning, north)

	_, err := Expand(grid, testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDoctor))
}

func TestExpand_CellOutsideWeekOrCatalogIsMisuse(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, "2026-10-25", model.ShiftMorning, north) // Sunday

	_, err := Expand(grid, testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	assert.True(t, errors.Is(err, ErrDayOutsideWeek))

	grid = NewGrid()
	grid.SetCell(7, monday, "night", north)

	_, err = Expand(grid, testWeek(t), model.DefaultShiftCatalog(), testDirectory().Doctors)
	assert.True(t, errors.Is(err, ErrUnknownShift))
}
