package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/clinic-roster/pkg/core/model"
)

func TestGrid_SetThenClearRemovesShift(t *testing.T) {
	grid := NewGrid()
	clinic := int64(5)

	grid.UpdateCell(7, monday, model.ShiftMorning, &clinic)
	grid.UpdateCell(7, monday, model.ShiftMorning, nil)

	day := grid.ReadDay(7, monday)
	_, ok := day[model.ShiftMorning]
	assert.False(t, ok, "cleared shift should not be a key")
}

func TestGrid_ClearingLastShiftRemovesDay(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftMorning, north)
	grid.SetCell(7, monday, model.ShiftAfternoon, south)

	grid.ClearCell(7, monday, model.ShiftMorning)
	assert.True(t, grid.HasDay(7, monday), "day still has the afternoon shift")

	grid.ClearCell(7, monday, model.ShiftAfternoon)
	assert.False(t, grid.HasDay(7, monday), "empty day entries are removed")
	assert.True(t, grid.IsEmpty())
	assert.Equal(t, 0, grid.Len())
}

func TestGrid_OverwriteKeepsOneClinicPerSlot(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftMorning, north)
	grid.SetCell(7, monday, model.ShiftMorning, south)

	assert.Equal(t, 1, grid.Len())
	assert.Equal(t, map[string]int64{model.ShiftMorning: south}, grid.ReadDay(7, monday))
}

func TestGrid_MorningAndAfternoonMayDiffer(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftMorning, north)
	grid.SetCell(7, monday, model.ShiftAfternoon, south)

	assert.Equal(t, map[string]int64{
		model.ShiftMorning:   north,
		model.ShiftAfternoon: south,
	}, grid.ReadDay(7, monday))
}

func TestGrid_ReadDayMissingIsEmptyNotNil(t *testing.T) {
	grid := NewGrid()

	day := grid.ReadDay(99, monday)
	require.NotNil(t, day)
	assert.Empty(t, day)
	assert.True(t, grid.IsEmpty(), "reading must not create entries")
}

func TestGrid_ReadDayReturnsCopy(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftMorning, north)

	day := grid.ReadDay(7, monday)
	day[model.ShiftAfternoon] = south

	assert.Equal(t, 1, grid.Len(), "mutating the returned map must not change the grid")
}

func TestGrid_ClearMissingCellIsNoop(t *testing.T) {
	grid := NewGrid()
	grid.ClearCell(7, monday, model.ShiftMorning)

	assert.True(t, grid.IsEmpty())
}

func TestGrid_CellsOrdered(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(11, tuesday, model.ShiftMorning, south)
	grid.SetCell(8, monday, model.ShiftMorning, north)
	grid.SetCell(7, monday, model.ShiftMorning, north)
	grid.SetCell(7, monday, model.ShiftAfternoon, south)

	cells := grid.Cells()
	require.Len(t, cells, 4)
	assert.Equal(t, Cell{DoctorID: 7, DayKey: monday, ShiftID: model.ShiftAfternoon, ClinicID: south}, cells[0])
	assert.Equal(t, Cell{DoctorID: 7, DayKey: monday, ShiftID: model.ShiftMorning, ClinicID: north}, cells[1])
	assert.Equal(t, int64(8), cells[2].DoctorID)
	assert.Equal(t, tuesday, cells[3].DayKey)

	assert.Equal(t, []int64{7, 8}, grid.DoctorsOn(monday))
	assert.Empty(t, grid.DoctorsOn(wednesday))
}

func TestGrid_VersionChangesOnMutation(t *testing.T) {
	grid := NewGrid()
	v0 := grid.Version()

	grid.SetCell(7, monday, model.ShiftMorning, north)
	v1 := grid.Version()
	assert.Greater(t, v1, v0)

	grid.ReadDay(7, monday)
	grid.Cells()
	assert.Equal(t, v1, grid.Version(), "reads do not change the version")

	grid.ClearCell(7, monday, model.ShiftMorning)
	assert.Greater(t, grid.Version(), v1)
}

func TestGrid_NoOpUpdatesKeepVersion(t *testing.T) {
	grid := NewGrid()
	grid.SetCell(7, monday, model.ShiftMorning, north)
	v := grid.Version()

	grid.ClearCell(7, monday, model.ShiftAfternoon)
	grid.ClearCell(8, tuesday, model.ShiftMorning)
	grid.SetCell(7, monday, model.ShiftMorning, north)
	assert.Equal(t, v, grid.Version())

	grid.SetCell(7, monday, model.ShiftMorning, south)
	assert.Greater(t, grid.Version(), v)
}
