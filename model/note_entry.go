package model

import "time"

type NoteCategory string

const (
	CategoryImportant NoteCategory = "important"
	CategoryContact   NoteCategory = "contact"
	CategoryLink      NoteCategory = "link"
	CategoryReminder  NoteCategory = "reminder"
	CategoryGeneral   NoteCategory = "general"
)

// CategoryStyle is the single icon/color definition per category; entries
// never carry per-entry styling.
type CategoryStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var NoteCategoryStyles = map[NoteCategory]CategoryStyle{
	CategoryImportant: {Icon: "star", Color: "#e8590c"},
	CategoryContact:   {Icon: "user", Color: "#1971c2"},
	CategoryLink:      {Icon: "link", Color: "#2f9e44"},
	CategoryReminder:  {Icon: "bell", Color: "#f08c00"},
	CategoryGeneral:   {Icon: "note", Color: "#495057"},
}

// CanonicalCategory coerces unknown categories to general rather than
// rejecting them.
func CanonicalCategory(raw string) NoteCategory {
	c := NoteCategory(raw)
	if _, ok := NoteCategoryStyles[c]; ok {
		return c
	}
	return CategoryGeneral
}

// NoteEntry is one timestamped journal entry attached to a program.
// Storage order is not significant; display sorts pinned first, newest
// first within each tier.
type NoteEntry struct {
	EntryID   string       `bson:"entry_id" json:"id"`
	Content   string       `bson:"content" json:"content"`
	Category  NoteCategory `bson:"category" json:"category"`
	Pinned    bool         `bson:"pinned" json:"pinned"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}
