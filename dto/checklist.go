package dto

import "main/model"

// ReplaceChecklistRequest swaps the whole checklist. ExpectedVersion guards
// against concurrent edits; omit it (or send -1) to write unconditionally.
type ReplaceChecklistRequest struct {
	Items           []model.ChecklistItem `json:"items" binding:"required"`
	ExpectedVersion *int64                `json:"expected_version"`
}

func (r *ReplaceChecklistRequest) Version() int64 {
	if r.ExpectedVersion == nil {
		return -1
	}
	return *r.ExpectedVersion
}

type AddChecklistItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Required bool   `json:"required"`
	Notes    string `json:"notes"`
}

// ChecklistResponse returns the checklist with its version and progress so
// the client can render and make its next conditional write in one trip.
type ChecklistResponse struct {
	Items    []model.ChecklistItem  `json:"items"`
	Version  int64                  `json:"version"`
	Progress model.DocumentProgress `json:"progress"`
}
