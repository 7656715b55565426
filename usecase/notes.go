package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MaxMainNotesLength caps the free-text main notes field.
const MaxMainNotesLength = 5000

type NotesService struct {
	ProgramsRepo *repository.ProgramsRepo
	Cache        *services.TrackerCache
}

func NewNotesService(programsRepo *repository.ProgramsRepo, cache *services.TrackerCache) *NotesService {
	return &NotesService{ProgramsRepo: programsRepo, Cache: cache}
}

// ProgramNotes is the combined notes view for one program: the legacy
// free-text field plus the categorized entries in display order. The style
// map is shipped alongside so clients render icons without hardcoding them.
type ProgramNotes struct {
	MainNotes      string                                     `json:"main_notes"`
	Entries        []model.NoteEntry                          `json:"entries"`
	CategoryStyles map[model.NoteCategory]model.CategoryStyle `json:"category_styles"`
}

// SortNoteEntries orders entries for display: pinned first, then newest
// first within each tier. The sort is stable so equal timestamps keep
// their stored order.
func SortNoteEntries(entries []model.NoteEntry) []model.NoteEntry {
	sorted := make([]model.NoteEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pinned != sorted[j].Pinned {
			return sorted[i].Pinned
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

func (s *NotesService) GetNotes(ctx context.Context, userID, programID string) (*ProgramNotes, error) {
	program, err := s.ProgramsRepo.GetProgram(ctx, programID, userID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrProgramNotFound, programID)
	}

	notes := &ProgramNotes{
		Entries:        SortNoteEntries(program.NotesEntries),
		CategoryStyles: model.NoteCategoryStyles,
	}
	if program.Notes != nil {
		notes.MainNotes = *program.Notes
	}
	return notes, nil
}

// UpdateMainNotes overwrites the free-text field. Empty is a valid value
// and clears it.
func (s *NotesService) UpdateMainNotes(ctx context.Context, userID, programID, text string) error {
	if len(text) > MaxMainNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", model.ErrValidation, MaxMainNotesLength)
	}

	if err := s.ProgramsRepo.SetMainNotes(ctx, programID, userID, text); err != nil {
		return err
	}

	utils.TrackTrackerOperation("update_main_notes")
	s.Cache.Invalidate(ctx, userID, programID)
	return nil
}

func (s *NotesService) AddEntry(ctx context.Context, userID, programID, content, category string, pinned bool) (*model.NoteEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: note content is required", model.ErrValidation)
	}

	now := time.Now().UTC()
	entry := model.NoteEntry{
		EntryID:   uuid.New().String(),
		Content:   content,
		Category:  model.CanonicalCategory(category),
		Pinned:    pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.ProgramsRepo.PushNoteEntry(ctx, programID, userID, entry); err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("add_note_entry")
	s.Cache.Invalidate(ctx, userID, programID)
	return &entry, nil
}

// UpdateEntryInput carries the optional per-field updates for one entry.
type UpdateEntryInput struct {
	Content  *string
	Category *string
	Pinned   *bool
}

// UpdateEntry patches one entry and returns the program's full entry list
// in display order, since pinning or editing can reshuffle it.
func (s *NotesService) UpdateEntry(ctx context.Context, userID, programID, entryID string, input UpdateEntryInput) ([]model.NoteEntry, error) {
	set := bson.M{}
	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, fmt.Errorf("%w: note content is required", model.ErrValidation)
		}
		set["content"] = content
	}
	if input.Category != nil {
		set["category"] = model.CanonicalCategory(*input.Category)
	}
	if input.Pinned != nil {
		set["pinned"] = *input.Pinned
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", model.ErrValidation)
	}
	set["updated_at"] = time.Now().UTC()

	program, err := s.ProgramsRepo.UpdateNoteEntry(ctx, programID, userID, entryID, set)
	if err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("update_note_entry")
	s.Cache.Invalidate(ctx, userID, programID)
	return SortNoteEntries(program.NotesEntries), nil
}

// DeleteEntry removes one entry. Deleting an entry that is already gone is
// a no-op, not an error; the program itself must still exist.
func (s *NotesService) DeleteEntry(ctx context.Context, userID, programID, entryID string) error {
	removed, err := s.ProgramsRepo.PullNoteEntry(ctx, programID, userID, entryID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	utils.TrackTrackerOperation("delete_note_entry")
	s.Cache.Invalidate(ctx, userID, programID)
	return nil
}
