package roster

import (
	"sort"
)

// doctorDay keys the per-day shift selections of one doctor
type doctorDay struct {
	doctorID int64
	dayKey   string
}

// Cell is a single non-empty grid entry
type Cell struct {
	DoctorID int64
	DayKey   string
	ShiftID  string
	ClinicID int64
}

// Grid is the sparse (doctor, day, shift) -> clinic mapping edited during a session.
// A missing entry means the doctor does not work that shift that day. The grid never
// holds a doctor/day entry without at least one shift.
//
// A Grid is owned by a single editing session and is not safe for concurrent use.
type Grid struct {
	days    map[doctorDay]map[string]int64
	version uint64
}

// NewGrid creates an empty grid
func NewGrid() *Grid {
	return &Grid{
		days: make(map[doctorDay]map[string]int64),
	}
}

// UpdateCell sets the clinic for a doctor/day/shift, or deletes the cell when clinicID is nil.
// Deleting the last shift of a doctor/day removes the day entry entirely. The version only
// changes when the grid does.
func (g *Grid) UpdateCell(doctorID int64, dayKey, shiftID string, clinicID *int64) {
	key := doctorDay{doctorID: doctorID, dayKey: dayKey}

	if clinicID == nil {
		shifts, ok := g.days[key]
		if !ok {
			return
		}
		if _, ok := shifts[shiftID]; !ok {
			return
		}
		delete(shifts, shiftID)
		if len(shifts) == 0 {
			delete(g.days, key)
		}
		g.version++
		return
	}

	shifts, ok := g.days[key]
	if !ok {
		shifts = make(map[string]int64)
		g.days[key] = shifts
	}
	if current, ok := shifts[shiftID]; ok && current == *clinicID {
		return
	}
	shifts[shiftID] = *clinicID
	g.version++
}

// SetCell is UpdateCell with a clinic
func (g *Grid) SetCell(doctorID int64, dayKey, shiftID string, clinicID int64) {
	g.UpdateCell(doctorID, dayKey, shiftID, &clinicID)
}

// ClearCell is UpdateCell without a clinic
func (g *Grid) ClearCell(doctorID int64, dayKey, shiftID string) {
	g.UpdateCell(doctorID, dayKey, shiftID, nil)
}

// ReadDay returns a copy of the shift -> clinic selections for a doctor on a day.
// The map is empty, never nil, when the doctor has no entry for that day.
func (g *Grid) ReadDay(doctorID int64, dayKey string) map[string]int64 {
	shifts := g.days[doctorDay{doctorID: doctorID, dayKey: dayKey}]
	result := make(map[string]int64, len(shifts))
	for shiftID, clinicID := range shifts {
		result[shiftID] = clinicID
	}
	return result
}

// HasDay returns true if the doctor has any shift on the day
func (g *Grid) HasDay(doctorID int64, dayKey string) bool {
	_, ok := g.days[doctorDay{doctorID: doctorID, dayKey: dayKey}]
	return ok
}

// DoctorsOn returns the ids of doctors with any entry on the day, ascending
func (g *Grid) DoctorsOn(dayKey string) []int64 {
	var doctorIDs []int64
	for key := range g.days {
		if key.dayKey == dayKey {
			doctorIDs = append(doctorIDs, key.doctorID)
		}
	}
	sort.Slice(doctorIDs, func(i, j int) bool {
		return doctorIDs[i] < doctorIDs[j]
	})
	return doctorIDs
}

// Cells returns every non-empty cell ordered by day, doctor, then shift id
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Len())
	for key, shifts := range g.days {
		for shiftID, clinicID := range shifts {
			cells = append(cells, Cell{
				DoctorID: key.doctorID,
				DayKey:   key.dayKey,
				ShiftID:  shiftID,
				ClinicID: clinicID,
			})
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].DayKey != cells[j].DayKey {
			return cells[i].DayKey < cells[j].DayKey
		}
		if cells[i].DoctorID != cells[j].DoctorID {
			return cells[i].DoctorID < cells[j].DoctorID
		}
		return cells[i].ShiftID < cells[j].ShiftID
	})
	return cells
}

// Len returns the number of non-empty cells
func (g *Grid) Len() int {
	count := 0
	for _, shifts := range g.days {
		count += len(shifts)
	}
	return count
}

// IsEmpty returns true if the grid has no cells
func (g *Grid) IsEmpty() bool {
	return len(g.days) == 0
}

// Version increases on every change to the cells. Sessions use it to detect stale validation results.
func (g *Grid) Version() uint64 {
	return g.version
}
