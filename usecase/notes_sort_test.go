package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestSortNoteEntries(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	entries := []model.NoteEntry{
		{EntryID: "old-unpinned", CreatedAt: base.Add(1 * time.Hour)},
		{EntryID: "old-pinned", Pinned: true, CreatedAt: base.Add(2 * time.Hour)},
		{EntryID: "new-pinned", Pinned: true, CreatedAt: base.Add(5 * time.Hour)},
		{EntryID: "new-unpinned", CreatedAt: base.Add(4 * time.Hour)},
	}

	sorted := SortNoteEntries(entries)

	want := []string{"new-pinned", "old-pinned", "new-unpinned", "old-unpinned"}
	for i, id := range want {
		if sorted[i].EntryID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, sorted[i].EntryID)
		}
	}

	// Input order must be untouched.
	if entries[0].EntryID != "old-unpinned" {
		t.Fatal("input slice was mutated")
	}
}

func TestSortNoteEntriesStable(t *testing.T) {
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	entries := []model.NoteEntry{
		{EntryID: "first", CreatedAt: ts},
		{EntryID: "second", CreatedAt: ts},
	}

	sorted := SortNoteEntries(entries)
	if sorted[0].EntryID != "first" || sorted[1].EntryID != "second" {
		t.Fatal("equal timestamps should keep stored order")
	}
}
