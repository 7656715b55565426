package model

import "time"

type ApplicationStatus string
type Priority string
type IntakePeriod string

const (
	StatusResearching ApplicationStatus = "researching"
	StatusPreparing   ApplicationStatus = "preparing"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusInterview   ApplicationStatus = "interview"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusWaitlisted  ApplicationStatus = "waitlisted"
	StatusWithdrawn   ApplicationStatus = "withdrawn"

	PrioritySafety Priority = "safety"
	PriorityTarget Priority = "target"
	PriorityDream  Priority = "dream"

	IntakeFall2025   IntakePeriod = "fall_2025"
	IntakeSpring2026 IntakePeriod = "spring_2026"
	IntakeFall2026   IntakePeriod = "fall_2026"
	IntakeSpring2027 IntakePeriod = "spring_2027"
	IntakeFall2027   IntakePeriod = "fall_2027"
)

// AllStatuses returns every application status in display order. Dashboard
// tiles rely on stats enumerating all of them, including zero counts.
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusResearching,
		StatusPreparing,
		StatusSubmitted,
		StatusInterview,
		StatusAccepted,
		StatusRejected,
		StatusWaitlisted,
		StatusWithdrawn,
	}
}

func AllPriorities() []Priority {
	return []Priority{PrioritySafety, PriorityTarget, PriorityDream}
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusResearching, StatusPreparing, StatusSubmitted, StatusInterview,
		StatusAccepted, StatusRejected, StatusWaitlisted, StatusWithdrawn:
		return true
	}
	return false
}

// CanonicalPriority normalizes a user-supplied priority. Some UI variants
// send "reach" instead of "dream"; both collapse to the same value.
func CanonicalPriority(raw string) (Priority, bool) {
	switch Priority(raw) {
	case PrioritySafety, PriorityTarget, PriorityDream:
		return Priority(raw), true
	}
	if raw == "reach" {
		return PriorityDream, true
	}
	return "", false
}

func (i IntakePeriod) Valid() bool {
	switch i {
	case IntakeFall2025, IntakeSpring2026, IntakeFall2026, IntakeSpring2027, IntakeFall2027:
		return true
	}
	return false
}

// ChecklistItem is one document requirement in a program's application
// packet. Items seeded at program creation carry no id; an id is assigned
// the first time the checklist is written back.
type ChecklistItem struct {
	ItemID    string `bson:"item_id,omitempty" json:"id,omitempty"`
	Name      string `bson:"name" json:"name" binding:"required"`
	Required  bool   `bson:"required" json:"required"`
	Completed bool   `bson:"completed" json:"completed"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DefaultChecklist returns the seed checklist applied when a program is
// created without an explicit one.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Name: "SOP", Required: true},
		{Name: "CV", Required: true},
		{Name: "Transcript", Required: true},
		{Name: "Letter of Recommendation", Required: true},
		{Name: "Portfolio"},
		{Name: "Test Score"},
	}
}

// TrackedProgram is one student's tracked instance of a degree program,
// either linked to a catalog course (denormalized copies resolved at
// add-time) or a fully custom entry. The checklist and note entries are
// embedded; they share the program's lifecycle.
type TrackedProgram struct {
	ProgramID string `bson:"_id,omitempty" json:"id"`
	UserID    string `bson:"user_id" json:"user_id"`

	// Catalog-linked provenance
	CourseID       string `bson:"course_id,omitempty" json:"course_id,omitempty"`
	ProgramName    string `bson:"program_name,omitempty" json:"program_name,omitempty"`
	UniversityName string `bson:"university_name,omitempty" json:"university_name,omitempty"`
	Country        string `bson:"country,omitempty" json:"country,omitempty"`
	DegreeLevel    string `bson:"degree_level,omitempty" json:"degree_level,omitempty"`

	// Custom provenance
	CustomProgramName    string     `bson:"custom_program_name,omitempty" json:"custom_program_name,omitempty"`
	CustomUniversityName string     `bson:"custom_university_name,omitempty" json:"custom_university_name,omitempty"`
	CustomCountry        string     `bson:"custom_country,omitempty" json:"custom_country,omitempty"`
	CustomDegreeLevel    string     `bson:"custom_degree_level,omitempty" json:"custom_degree_level,omitempty"`
	CustomDeadline       *time.Time `bson:"custom_deadline,omitempty" json:"custom_deadline,omitempty"`

	Status   ApplicationStatus `bson:"status" json:"status"`
	Priority Priority          `bson:"priority" json:"priority"`
	Intake   IntakePeriod      `bson:"intake,omitempty" json:"intake,omitempty"`

	Deadline      *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	SubmittedDate *time.Time `bson:"submitted_date,omitempty" json:"submitted_date,omitempty"`
	ResultDate    *time.Time `bson:"result_date,omitempty" json:"result_date,omitempty"`
	InterviewDate *time.Time `bson:"interview_date,omitempty" json:"interview_date,omitempty"`

	// MatchScore is computed by the recommendation engine and only stored
	// here; never derived locally.
	MatchScore *float64 `bson:"match_score,omitempty" json:"match_score,omitempty"`

	// Notes is the free-text "main notes" field. A pointer so that an
	// explicitly cleared value ("") stays distinct from never-set.
	Notes        *string     `bson:"notes,omitempty" json:"notes,omitempty"`
	NotesEntries []NoteEntry `bson:"notes_entries,omitempty" json:"notes_entries,omitempty"`

	DocumentChecklist []ChecklistItem `bson:"document_checklist" json:"document_checklist"`
	// ChecklistVersion guards whole-array checklist replaces against
	// concurrent writers.
	ChecklistVersion int64 `bson:"checklist_version" json:"checklist_version"`

	ApplicationPortalURL string `bson:"application_portal_url,omitempty" json:"application_portal_url,omitempty"`
	ApplicationRef       string `bson:"application_ref,omitempty" json:"application_ref,omitempty"`

	ScholarshipOffered bool   `bson:"scholarship_offered,omitempty" json:"scholarship_offered"`
	ScholarshipAmount  *int   `bson:"scholarship_amount,omitempty" json:"scholarship_amount,omitempty"`
	ScholarshipNotes   string `bson:"scholarship_notes,omitempty" json:"scholarship_notes,omitempty"`

	// Owned by the experience-sharing collaborator; read-only here.
	SharedAsExperience bool `bson:"shared_as_experience,omitempty" json:"shared_as_experience"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DisplayProgramName resolves the denormalized catalog copy or the custom
// entry, whichever provenance the program has.
func (p *TrackedProgram) DisplayProgramName() string {
	if p.ProgramName != "" {
		return p.ProgramName
	}
	return p.CustomProgramName
}

func (p *TrackedProgram) DisplayUniversityName() string {
	if p.UniversityName != "" {
		return p.UniversityName
	}
	return p.CustomUniversityName
}

func (p *TrackedProgram) DisplayCountry() string {
	if p.Country != "" {
		return p.Country
	}
	return p.CustomCountry
}

func (p *TrackedProgram) DisplayDegreeLevel() string {
	if p.DegreeLevel != "" {
		return p.DegreeLevel
	}
	return p.CustomDegreeLevel
}
