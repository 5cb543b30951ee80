package db

// Submission is one confirmed week as stored by an AssignmentStore
type Submission struct {
	ID          string
	WeekStart   string // YYYY-MM-DD
	Note        string
	SubmittedAt string // RFC3339, UTC
	Assignments int
}
