package dto

import (
	"errors"
	"testing"
	"time"

	"main/model"
)

func TestCreateProgramRequestToInput(t *testing.T) {
	t.Run("CatalogAndCustomAreExclusive", func(t *testing.T) {
		req := CreateProgramRequest{
			CourseID:          "course-1",
			CustomProgramName: "MSc AI",
		}
		_, err := req.ToInput()
		if !errors.Is(err, model.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("NeitherProvenanceRejected", func(t *testing.T) {
		req := CreateProgramRequest{Priority: "target"}
		_, err := req.ToInput()
		if !errors.Is(err, model.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("DateParsing", func(t *testing.T) {
		deadline := "2026-01-15"
		req := CreateProgramRequest{CourseID: "course-1", Deadline: &deadline}
		input, err := req.ToInput()
		if err != nil {
			t.Fatal("expected valid input, got", err)
		}
		want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		if input.Deadline == nil || !input.Deadline.Equal(want) {
			t.Fatalf("deadline parsed wrong: %v", input.Deadline)
		}
	})

	t.Run("BadDateRejected", func(t *testing.T) {
		deadline := "15/01/2026"
		req := CreateProgramRequest{CourseID: "course-1", Deadline: &deadline}
		_, err := req.ToInput()
		if !errors.Is(err, model.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestNewProgramResponse(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	notes := "ask about funding"

	t.Run("CustomProgramResolvesDisplayFields", func(t *testing.T) {
		resp := NewProgramResponse(&model.TrackedProgram{
			ProgramID:            "p1",
			CustomProgramName:    "MSc AI",
			CustomUniversityName: "TU Delft",
			CustomCountry:        "Netherlands",
			Status:               model.StatusResearching,
			Priority:             model.PriorityTarget,
			Deadline:             &deadline,
			Notes:                &notes,
			CreatedAt:            now,
			UpdatedAt:            now,
		})

		if !resp.IsCustom {
			t.Fatal("program without course_id should be custom")
		}
		if resp.ProgramName != "MSc AI" || resp.UniversityName != "TU Delft" {
			t.Fatal("custom fields should resolve into display fields")
		}
		if resp.Deadline == nil || *resp.Deadline != "2026-01-15" {
			t.Fatalf("deadline formatted wrong: %v", resp.Deadline)
		}
		if resp.Notes != notes {
			t.Fatal("notes lost")
		}
		if resp.DocumentChecklist == nil || resp.NotesEntries == nil {
			t.Fatal("collections must serialize as [], never null")
		}
	})

	t.Run("CatalogFieldsWinOverCustom", func(t *testing.T) {
		resp := NewProgramResponse(&model.TrackedProgram{
			ProgramID:         "p2",
			CourseID:          "course-1",
			ProgramName:       "MSc Data Science",
			UniversityName:    "KU Leuven",
			Country:           "Belgium",
			CustomProgramName: "stale",
		})

		if resp.IsCustom {
			t.Fatal("catalog-linked program is not custom")
		}
		if resp.ProgramName != "MSc Data Science" {
			t.Fatal("catalog name should win:", resp.ProgramName)
		}
	})
}
