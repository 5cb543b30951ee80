package model

// ShiftDefinition is a fixed daily time window from the shift catalog
type ShiftDefinition struct {
	ID        string
	Name      string
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// Department represents a clinical department
type Department struct {
	ID   int64
	Name string
}

// Doctor represents an active doctor from the directory
type Doctor struct {
	ID            int64
	FullName      string
	DepartmentID  int64
	DefaultRoomID int64  // 0 if the doctor has no default room
	Email         string // Empty string if unknown
}

// Clinic represents a clinic site
type Clinic struct {
	ID     int64
	Name   string
	Active bool
}

// UnassignedChair is the placeholder chair id carried by every expanded assignment.
// Chair selection happens at a later stage.
const UnassignedChair int64 = 0

// ShiftAssignment is one concrete shift for one doctor at one clinic on one day
type ShiftAssignment struct {
	DoctorID  int64  `json:"doctorId" yaml:"doctorId"`
	ClinicID  int64  `json:"clinicId" yaml:"clinicId"`
	RoomID    int64  `json:"roomId" yaml:"roomId"`
	ChairID   int64  `json:"chairId" yaml:"chairId"`
	DayKey    string `json:"-" yaml:"-"`
	ShiftID   string `json:"-" yaml:"-"`
	StartTime string `json:"startTime" yaml:"startTime"`
	EndTime   string `json:"endTime" yaml:"endTime"`
	Note      string `json:"note,omitempty" yaml:"note,omitempty"`
}

// DailyAssignments groups expanded assignments by dayKey
type DailyAssignments map[string][]ShiftAssignment

// Count returns the total number of assignments across all days
func (d DailyAssignments) Count() int {
	total := 0
	for _, assignments := range d {
		total += len(assignments)
	}
	return total
}

// WeekSubmission is the payload handed to the persistence collaborator
type WeekSubmission struct {
	WeekStart        string           `json:"weekStart"`
	DailyAssignments DailyAssignments `json:"dailyAssignments"`
	Note             string           `json:"note,omitempty"`
}

// AssignmentRecord is a persisted ShiftAssignment with its assigned id
type AssignmentRecord struct {
	ID string `json:"id"`
	ShiftAssignment
	Date string `json:"date"`
}

// ValidateResponse is the dry-run validation response shape
type ValidateResponse struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}
