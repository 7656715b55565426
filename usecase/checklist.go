package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
)

// toggleRetries bounds the read-modify-write loop in ToggleItem when two
// writers race on the same checklist.
const toggleRetries = 3

type ChecklistService struct {
	ProgramsRepo *repository.ProgramsRepo
	Cache        *services.TrackerCache
}

func NewChecklistService(programsRepo *repository.ProgramsRepo, cache *services.TrackerCache) *ChecklistService {
	return &ChecklistService{ProgramsRepo: programsRepo, Cache: cache}
}

// ReplaceChecklist swaps the whole checklist in one write. A non-negative
// expectedVersion makes the write conditional on nobody else having written
// since the caller read; -1 skips the guard for clients that do not send a
// version yet.
func (s *ChecklistService) ReplaceChecklist(ctx context.Context, userID, programID string, items []model.ChecklistItem, expectedVersion int64) (*model.TrackedProgram, error) {
	normalized := make([]model.ChecklistItem, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, fmt.Errorf("%w: checklist item name is required", model.ErrValidation)
		}
		if item.ItemID == "" {
			item.ItemID = uuid.New().String()
		}
		normalized = append(normalized, item)
	}

	program, err := s.ProgramsRepo.ReplaceChecklist(ctx, programID, userID, normalized, expectedVersion)
	if err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("replace_checklist")
	s.Cache.Invalidate(ctx, userID, programID)
	return program, nil
}

func (s *ChecklistService) AddItem(ctx context.Context, userID, programID, name string, required bool, notes string) (*model.TrackedProgram, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: checklist item name is required", model.ErrValidation)
	}

	item := model.ChecklistItem{
		ItemID:   uuid.New().String(),
		Name:     name,
		Required: required,
		Notes:    notes,
	}

	program, err := s.ProgramsRepo.PushChecklistItem(ctx, programID, userID, item)
	if err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("add_checklist_item")
	s.Cache.Invalidate(ctx, userID, programID)
	return program, nil
}

func (s *ChecklistService) RemoveItem(ctx context.Context, userID, programID, itemID string) (*model.TrackedProgram, error) {
	program, err := s.ProgramsRepo.PullChecklistItem(ctx, programID, userID, itemID)
	if err != nil {
		return nil, err
	}

	utils.TrackTrackerOperation("remove_checklist_item")
	s.Cache.Invalidate(ctx, userID, programID)
	return program, nil
}

// ToggleItem flips one item's completed flag. itemRef is normally the item
// id; id-less seeded items may be addressed by positional index or by name
// until their first write-back assigns ids. Runs as a versioned
// read-modify-write so a concurrent replace never gets silently overwritten;
// on a version conflict it rereads and retries a few times before giving up.
func (s *ChecklistService) ToggleItem(ctx context.Context, userID, programID, itemRef string) (*model.TrackedProgram, error) {
	var lastErr error
	for attempt := 0; attempt < toggleRetries; attempt++ {
		program, err := s.ProgramsRepo.GetProgram(ctx, programID, userID)
		if err != nil {
			return nil, err
		}
		if program == nil {
			return nil, fmt.Errorf("%w: %s", model.ErrProgramNotFound, programID)
		}

		items := make([]model.ChecklistItem, len(program.DocumentChecklist))
		copy(items, program.DocumentChecklist)

		idx := -1
		for i := range items {
			if items[i].ItemID == itemRef || (items[i].ItemID == "" && items[i].Name == itemRef) {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Positional fallback for id-less seeded checklists.
			if n, err := strconv.Atoi(itemRef); err == nil && n >= 0 && n < len(items) {
				idx = n
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", model.ErrItemNotFound, itemRef)
		}
		items[idx].Completed = !items[idx].Completed

		for i := range items {
			if items[i].ItemID == "" {
				items[i].ItemID = uuid.New().String()
			}
		}

		updated, err := s.ProgramsRepo.ReplaceChecklist(ctx, programID, userID, items, program.ChecklistVersion)
		if err == nil {
			utils.TrackTrackerOperation("toggle_checklist_item")
			s.Cache.Invalidate(ctx, userID, programID)
			return updated, nil
		}
		if !errors.Is(err, model.ErrChecklistConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// ChecklistProgress counts completed items over total. An empty checklist
// reports zero percent, not a division error.
func ChecklistProgress(items []model.ChecklistItem) model.DocumentProgress {
	progress := model.DocumentProgress{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			progress.Completed++
		}
	}
	if progress.Total > 0 {
		progress.Percent = int(math.Round(float64(progress.Completed) / float64(progress.Total) * 100))
	}
	return progress
}
