package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Provenance says where a tracked program came from: either a course picked
// out of the catalog, or a custom entry the user typed in themselves. The
// two are mutually exclusive, and the unexported arms keep callers from
// building a value that is both or neither.
type Provenance struct {
	catalog *catalogProvenance
	custom  *customProvenance
}

type catalogProvenance struct {
	CourseID string
}

type customProvenance struct {
	ProgramName    string
	UniversityName string
	Country        string
	DegreeLevel    string
	Deadline       *time.Time
}

func CatalogProvenance(courseID string) Provenance {
	return Provenance{catalog: &catalogProvenance{CourseID: courseID}}
}

func CustomProvenance(programName, universityName, country, degreeLevel string, deadline *time.Time) Provenance {
	return Provenance{custom: &customProvenance{
		ProgramName:    programName,
		UniversityName: universityName,
		Country:        country,
		DegreeLevel:    degreeLevel,
		Deadline:       deadline,
	}}
}

func (p Provenance) IsCatalog() bool { return p.catalog != nil }

// CreateProgramInput carries everything needed to start tracking a program.
// Provenance is required; the rest is optional and defaulted. An empty
// Checklist means the default document set is seeded.
type CreateProgramInput struct {
	Provenance Provenance
	Priority   string
	Intake     string
	Deadline   *time.Time
	MatchScore *float64
	Notes      *string
	Checklist  []model.ChecklistItem
}

type ProgramsService struct {
	ProgramsRepo *repository.ProgramsRepo
	CatalogRepo  *repository.CatalogRepo
	Cache        *services.TrackerCache
}

func NewProgramsService(programsRepo *repository.ProgramsRepo, catalogRepo *repository.CatalogRepo, cache *services.TrackerCache) *ProgramsService {
	return &ProgramsService{
		ProgramsRepo: programsRepo,
		CatalogRepo:  catalogRepo,
		Cache:        cache,
	}
}

func (s *ProgramsService) CreateProgram(ctx context.Context, userID string, input CreateProgramInput) (*model.TrackedProgram, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", model.ErrValidation)
	}
	if input.Provenance.catalog == nil && input.Provenance.custom == nil {
		return nil, fmt.Errorf("%w: either course_id or custom program details are required", model.ErrValidation)
	}

	priority := model.PriorityTarget
	if input.Priority != "" {
		p, ok := model.CanonicalPriority(input.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, input.Priority)
		}
		priority = p
	}
	if input.Intake != "" && !model.IntakePeriod(input.Intake).Valid() {
		return nil, fmt.Errorf("%w: invalid intake %q", model.ErrValidation, input.Intake)
	}
	if input.MatchScore != nil && (*input.MatchScore < 0 || *input.MatchScore > 100) {
		return nil, fmt.Errorf("%w: match_score must be between 0 and 100", model.ErrValidation)
	}

	checklist := model.DefaultChecklist()
	if len(input.Checklist) > 0 {
		checklist = make([]model.ChecklistItem, 0, len(input.Checklist))
		for _, item := range input.Checklist {
			item.Name = strings.TrimSpace(item.Name)
			if item.Name == "" {
				return nil, fmt.Errorf("%w: checklist item name is required", model.ErrValidation)
			}
			if item.ItemID == "" {
				item.ItemID = uuid.New().String()
			}
			checklist = append(checklist, item)
		}
	}

	program := &model.TrackedProgram{
		ProgramID:         uuid.New().String(),
		UserID:            userID,
		Status:            model.StatusResearching,
		Priority:          priority,
		Intake:            model.IntakePeriod(input.Intake),
		Deadline:          input.Deadline,
		MatchScore:        input.MatchScore,
		DocumentChecklist: checklist,
	}
	if input.Notes != nil {
		program.Notes = input.Notes
	}

	if input.Provenance.catalog != nil {
		courseID := strings.TrimSpace(input.Provenance.catalog.CourseID)
		if courseID == "" {
			return nil, fmt.Errorf("%w: course_id is required", model.ErrValidation)
		}

		course, err := s.CatalogRepo.FindCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, fmt.Errorf("%w: %s", model.ErrCourseNotFound, courseID)
		}

		exists, err := s.ProgramsRepo.ExistsByCourse(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: course %s is already tracked", model.ErrDuplicateProgram, courseID)
		}

		program.CourseID = courseID
		program.ProgramName = course.Name
		program.UniversityName = course.UniversityName
		program.Country = course.Country
		program.DegreeLevel = course.DegreeLevel
		if program.Deadline == nil {
			program.Deadline = course.Deadline
		}
	} else {
		custom := input.Provenance.custom
		name := strings.TrimSpace(custom.ProgramName)
		university := strings.TrimSpace(custom.UniversityName)
		country := strings.TrimSpace(custom.Country)
		if name == "" || university == "" || country == "" {
			return nil, fmt.Errorf("%w: custom programs need a name, university and country", model.ErrValidation)
		}

		exists, err := s.ProgramsRepo.ExistsByCustomName(ctx, userID, name, university)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s at %s is already tracked", model.ErrDuplicateProgram, name, university)
		}

		program.CustomProgramName = name
		program.CustomUniversityName = university
		program.CustomCountry = country
		program.CustomDegreeLevel = strings.TrimSpace(custom.DegreeLevel)
		program.CustomDeadline = custom.Deadline
		if program.Deadline == nil {
			program.Deadline = custom.Deadline
		}
	}

	if err := s.ProgramsRepo.CreateProgram(ctx, program); err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("create_program")
	s.Cache.Invalidate(ctx, userID, program.ProgramID)
	return program, nil
}

// ListPrograms returns the user's tracked programs, newest first. Only the
// unfiltered list goes through the cache; filtered reads are cheap enough
// and keeping filter permutations out of Redis keeps invalidation simple.
func (s *ProgramsService) ListPrograms(ctx context.Context, userID, status, priority string) ([]*model.TrackedProgram, error) {
	if status != "" && !model.ApplicationStatus(status).Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", model.ErrValidation, status)
	}
	if priority != "" {
		p, ok := model.CanonicalPriority(priority)
		if !ok {
			return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, priority)
		}
		priority = string(p)
	}

	unfiltered := status == "" && priority == ""
	if unfiltered {
		if programs, ok := s.Cache.GetProgramList(ctx, userID); ok {
			return programs, nil
		}
	}

	programs, err := s.ProgramsRepo.GetUserPrograms(ctx, userID, model.ApplicationStatus(status), model.Priority(priority))
	if err != nil {
		return nil, err
	}

	if unfiltered {
		s.Cache.SetProgramList(ctx, userID, programs)
	}
	return programs, nil
}

func (s *ProgramsService) GetProgram(ctx context.Context, userID, programID string) (*model.TrackedProgram, error) {
	if cached, ok := s.Cache.GetProgram(ctx, userID, programID); ok {
		return cached, nil
	}

	program, err := s.ProgramsRepo.GetProgram(ctx, programID, userID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrProgramNotFound, programID)
	}

	s.Cache.SetProgram(ctx, userID, program)
	return program, nil
}

// UpdateProgramInput holds the optional per-field updates for a tracked
// program. Nil means "leave as is"; for Notes a pointer to the empty string
// clears the field.
type UpdateProgramInput struct {
	Status               *string
	Priority             *string
	Intake               *string
	Deadline             *time.Time
	SubmittedDate        *time.Time
	ResultDate           *time.Time
	InterviewDate        *time.Time
	Notes                *string
	ApplicationPortalURL *string
	ApplicationRef       *string
	ScholarshipOffered   *bool
	ScholarshipAmount    *int
	ScholarshipNotes     *string
}

func (s *ProgramsService) UpdateProgram(ctx context.Context, userID, programID string, input UpdateProgramInput) (*model.TrackedProgram, error) {
	set := bson.M{}

	if input.Status != nil {
		status := model.ApplicationStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", model.ErrValidation, *input.Status)
		}
		set["status"] = status
	}
	if input.Priority != nil {
		priority, ok := model.CanonicalPriority(*input.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, *input.Priority)
		}
		set["priority"] = priority
	}
	if input.Intake != nil {
		if *input.Intake != "" && !model.IntakePeriod(*input.Intake).Valid() {
			return nil, fmt.Errorf("%w: invalid intake %q", model.ErrValidation, *input.Intake)
		}
		set["intake"] = *input.Intake
	}
	if input.Deadline != nil {
		set["deadline"] = *input.Deadline
	}
	if input.SubmittedDate != nil {
		set["submitted_date"] = *input.SubmittedDate
	}
	if input.ResultDate != nil {
		set["result_date"] = *input.ResultDate
	}
	if input.InterviewDate != nil {
		set["interview_date"] = *input.InterviewDate
	}
	if input.Notes != nil {
		if len(*input.Notes) > MaxMainNotesLength {
			return nil, fmt.Errorf("%w: notes must be at most %d characters", model.ErrValidation, MaxMainNotesLength)
		}
		set["notes"] = *input.Notes
	}
	if input.ApplicationPortalURL != nil {
		set["application_portal_url"] = *input.ApplicationPortalURL
	}
	if input.ApplicationRef != nil {
		set["application_ref"] = *input.ApplicationRef
	}
	if input.ScholarshipOffered != nil {
		set["scholarship_offered"] = *input.ScholarshipOffered
	}
	if input.ScholarshipAmount != nil {
		set["scholarship_amount"] = *input.ScholarshipAmount
	}
	if input.ScholarshipNotes != nil {
		set["scholarship_notes"] = *input.ScholarshipNotes
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", model.ErrValidation)
	}

	program, err := s.ProgramsRepo.UpdateProgramFields(ctx, programID, userID, set)
	if err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("update_program")
	s.Cache.Invalidate(ctx, userID, programID)
	return program, nil
}

func (s *ProgramsService) DeleteProgram(ctx context.Context, userID, programID string) error {
	if err := s.ProgramsRepo.DeleteProgram(ctx, programID, userID); err != nil {
		return err
	}

	utils.TrackTrackerOperation("delete_program")
	s.Cache.Invalidate(ctx, userID, programID)
	return nil
}
