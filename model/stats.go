package model

import "time"

type DeadlineBucket string

const (
	BucketDanger  DeadlineBucket = "danger"
	BucketWarning DeadlineBucket = "warning"
	BucketNeutral DeadlineBucket = "neutral"
)

// DocumentProgress aggregates checklist completion, either for a single
// program or across all of a user's programs.
type DocumentProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type TrackerStats struct {
	TotalPrograms int                       `json:"total_programs"`
	ByStatus      map[ApplicationStatus]int `json:"by_status"`
	ByPriority    map[Priority]int          `json:"by_priority"`

	AcceptedCount int `json:"accepted_count"`
	RejectedCount int `json:"rejected_count"`
	// Pending covers submitted, interview and waitlisted programs.
	PendingCount int `json:"pending_count"`

	UpcomingDeadlines int              `json:"upcoming_deadlines"`
	DocumentProgress  DocumentProgress `json:"document_progress"`
}

// DeadlineEntry is one row of the dashboard's upcoming-deadline list.
type DeadlineEntry struct {
	ProgramID      string            `json:"id"`
	ProgramName    string            `json:"program_name"`
	UniversityName string            `json:"university_name"`
	Deadline       time.Time         `json:"deadline"`
	DaysUntil      int               `json:"days_until"`
	Bucket         DeadlineBucket    `json:"bucket"`
	Status         ApplicationStatus `json:"status"`
}
