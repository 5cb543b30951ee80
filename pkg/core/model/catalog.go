package model

// Shift ids used by the default catalog
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
)

// ShiftCatalog is the ordered set of shifts worked each day
type ShiftCatalog []ShiftDefinition

// DefaultShiftCatalog returns the two-shift daily template
func DefaultShiftCatalog() ShiftCatalog {
	return ShiftCatalog{
		{ID: ShiftMorning, Name: "Morning", StartTime: "08:00", EndTime: "11:00"},
		{ID: ShiftAfternoon, Name: "Afternoon", StartTime: "13:00", EndTime: "18:00"},
	}
}

// Lookup returns the shift with the given id
func (c ShiftCatalog) Lookup(id string) (ShiftDefinition, bool) {
	for _, shift := range c {
		if shift.ID == id {
			return shift, true
		}
	}
	return ShiftDefinition{}, false
}
