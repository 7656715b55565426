package dto

import (
	"fmt"
	"time"

	"main/model"
	"main/usecase"
)

// DateLayout is the wire format for all date fields. Dates are calendar
// days, not instants; parsing pins them to midnight UTC.
const DateLayout = "2006-01-02"

func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", model.ErrValidation, field)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// CreateProgramRequest starts tracking a program. Either course_id or the
// custom_* fields must be set, never both.
type CreateProgramRequest struct {
	CourseID string `json:"course_id"`

	CustomProgramName    string  `json:"custom_program_name"`
	CustomUniversityName string  `json:"custom_university_name"`
	CustomCountry        string  `json:"custom_country"`
	CustomDegreeLevel    string  `json:"custom_degree_level"`
	CustomDeadline       *string `json:"custom_deadline"`

	Priority   string   `json:"priority" binding:"omitempty,apppriority"`
	Intake     string   `json:"intake" binding:"omitempty,intake"`
	Deadline   *string  `json:"deadline"`
	MatchScore *float64 `json:"match_score"`
	Notes      *string  `json:"notes"`

	// DocumentChecklist overrides the default seed when non-empty.
	DocumentChecklist []model.ChecklistItem `json:"document_checklist"`
}

func (r *CreateProgramRequest) ToInput() (usecase.CreateProgramInput, error) {
	var input usecase.CreateProgramInput

	hasCustom := r.CustomProgramName != "" || r.CustomUniversityName != "" || r.CustomCountry != ""
	switch {
	case r.CourseID != "" && hasCustom:
		return input, fmt.Errorf("%w: course_id and custom program details are mutually exclusive", model.ErrValidation)
	case r.CourseID != "":
		input.Provenance = usecase.CatalogProvenance(r.CourseID)
	case hasCustom:
		customDeadline, err := parseDate("custom_deadline", r.CustomDeadline)
		if err != nil {
			return input, err
		}
		input.Provenance = usecase.CustomProvenance(
			r.CustomProgramName,
			r.CustomUniversityName,
			r.CustomCountry,
			r.CustomDegreeLevel,
			customDeadline,
		)
	default:
		return input, fmt.Errorf("%w: either course_id or custom program details are required", model.ErrValidation)
	}

	deadline, err := parseDate("deadline", r.Deadline)
	if err != nil {
		return input, err
	}

	input.Priority = r.Priority
	input.Intake = r.Intake
	input.Deadline = deadline
	input.MatchScore = r.MatchScore
	input.Notes = r.Notes
	input.Checklist = r.DocumentChecklist
	return input, nil
}

// UpdateProgramRequest patches a tracked program. Absent fields stay
// untouched; provenance, checklist, match score and the experience flag
// are not writable through this request.
type UpdateProgramRequest struct {
	Status               *string `json:"status" binding:"omitempty"`
	Priority             *string `json:"priority" binding:"omitempty"`
	Intake               *string `json:"intake" binding:"omitempty"`
	Deadline             *string `json:"deadline"`
	SubmittedDate        *string `json:"submitted_date"`
	ResultDate           *string `json:"result_date"`
	InterviewDate        *string `json:"interview_date"`
	Notes                *string `json:"notes"`
	ApplicationPortalURL *string `json:"application_portal_url"`
	ApplicationRef       *string `json:"application_ref"`
	ScholarshipOffered   *bool   `json:"scholarship_offered"`
	ScholarshipAmount    *int    `json:"scholarship_amount"`
	ScholarshipNotes     *string `json:"scholarship_notes"`
}

func (r *UpdateProgramRequest) ToInput() (usecase.UpdateProgramInput, error) {
	var input usecase.UpdateProgramInput
	var err error

	if input.Deadline, err = parseDate("deadline", r.Deadline); err != nil {
		return input, err
	}
	if input.SubmittedDate, err = parseDate("submitted_date", r.SubmittedDate); err != nil {
		return input, err
	}
	if input.ResultDate, err = parseDate("result_date", r.ResultDate); err != nil {
		return input, err
	}
	if input.InterviewDate, err = parseDate("interview_date", r.InterviewDate); err != nil {
		return input, err
	}

	input.Status = r.Status
	input.Priority = r.Priority
	input.Intake = r.Intake
	input.Notes = r.Notes
	input.ApplicationPortalURL = r.ApplicationPortalURL
	input.ApplicationRef = r.ApplicationRef
	input.ScholarshipOffered = r.ScholarshipOffered
	input.ScholarshipAmount = r.ScholarshipAmount
	input.ScholarshipNotes = r.ScholarshipNotes
	return input, nil
}

// ProgramResponse is the wire shape of one tracked program. Name fields
// are pre-resolved across the two provenances so clients never pick.
type ProgramResponse struct {
	ID             string `json:"id"`
	CourseID       string `json:"course_id,omitempty"`
	IsCustom       bool   `json:"is_custom"`
	ProgramName    string `json:"program_name"`
	UniversityName string `json:"university_name"`
	Country        string `json:"country"`
	DegreeLevel    string `json:"degree_level,omitempty"`

	Status   model.ApplicationStatus `json:"status"`
	Priority model.Priority          `json:"priority"`
	Intake   model.IntakePeriod      `json:"intake,omitempty"`

	Deadline      *string `json:"deadline"`
	SubmittedDate *string `json:"submitted_date,omitempty"`
	ResultDate    *string `json:"result_date,omitempty"`
	InterviewDate *string `json:"interview_date,omitempty"`

	MatchScore *float64 `json:"match_score,omitempty"`
	Notes      string   `json:"notes"`

	DocumentChecklist []model.ChecklistItem  `json:"document_checklist"`
	ChecklistVersion  int64                  `json:"checklist_version"`
	DocumentProgress  model.DocumentProgress `json:"document_progress"`

	NotesEntries []model.NoteEntry `json:"notes_entries"`

	ApplicationPortalURL string `json:"application_portal_url,omitempty"`
	ApplicationRef       string `json:"application_ref,omitempty"`

	ScholarshipOffered bool   `json:"scholarship_offered"`
	ScholarshipAmount  *int   `json:"scholarship_amount,omitempty"`
	ScholarshipNotes   string `json:"scholarship_notes,omitempty"`

	SharedAsExperience bool `json:"shared_as_experience"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProgramResponse(p *model.TrackedProgram) *ProgramResponse {
	resp := &ProgramResponse{
		ID:                   p.ProgramID,
		CourseID:             p.CourseID,
		IsCustom:             p.CourseID == "",
		ProgramName:          p.DisplayProgramName(),
		UniversityName:       p.DisplayUniversityName(),
		Country:              p.DisplayCountry(),
		DegreeLevel:          p.DisplayDegreeLevel(),
		Status:               p.Status,
		Priority:             p.Priority,
		Intake:               p.Intake,
		Deadline:             formatDate(p.Deadline),
		SubmittedDate:        formatDate(p.SubmittedDate),
		ResultDate:           formatDate(p.ResultDate),
		InterviewDate:        formatDate(p.InterviewDate),
		MatchScore:           p.MatchScore,
		DocumentChecklist:    p.DocumentChecklist,
		ChecklistVersion:     p.ChecklistVersion,
		DocumentProgress:     usecase.ChecklistProgress(p.DocumentChecklist),
		NotesEntries:         usecase.SortNoteEntries(p.NotesEntries),
		ApplicationPortalURL: p.ApplicationPortalURL,
		ApplicationRef:       p.ApplicationRef,
		ScholarshipOffered:   p.ScholarshipOffered,
		ScholarshipAmount:    p.ScholarshipAmount,
		ScholarshipNotes:     p.ScholarshipNotes,
		SharedAsExperience:   p.SharedAsExperience,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.Notes != nil {
		resp.Notes = *p.Notes
	}
	if resp.DocumentChecklist == nil {
		resp.DocumentChecklist = []model.ChecklistItem{}
	}
	if resp.NotesEntries == nil {
		resp.NotesEntries = []model.NoteEntry{}
	}
	return resp
}

func NewProgramListResponse(programs []*model.TrackedProgram) []*ProgramResponse {
	responses := make([]*ProgramResponse, 0, len(programs))
	for _, p := range programs {
		responses = append(responses, NewProgramResponse(p))
	}
	return responses
}
