package dto

// UpdateMainNotesRequest overwrites the free-text notes field; empty
// content clears it, so the field itself is required but may be "".
type UpdateMainNotesRequest struct {
	Content *string `json:"content" binding:"required"`
}

// AddNoteEntryRequest creates one entry. Unknown categories are coerced to
// general downstream rather than rejected here.
type AddNoteEntryRequest struct {
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Pinned   bool   `json:"pinned"`
}

type UpdateNoteEntryRequest struct {
	Content  *string `json:"content"`
	Category *string `json:"category" binding:"omitempty"`
	Pinned   *bool   `json:"pinned"`
}
