package repository

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"main/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func newMongoClient() *mongo.Client {
	mongoTestClient, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		log.Fatal("error while connecting to database", err)
	}

	err = mongoTestClient.Ping(context.Background(), readpref.Primary())
	if err != nil {
		log.Fatal("mongodb ping failed", err)
	}

	return mongoTestClient
}

func TestProgramsRepoOperations(t *testing.T) {
	client := newMongoClient()
	defer client.Disconnect(context.Background())

	ctx := context.Background()
	coll := client.Database("tracker_test").Collection("testPrograms")
	repo := ProgramsRepo{MongoCollection: coll}

	userID := uuid.New().String()
	programID := uuid.New().String()

	defer func() {
		if _, err := coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
			t.Log("cleanup failed:", err)
		}
	}()

	deadline := time.Now().AddDate(0, 0, 30).Truncate(time.Second)

	t.Run("CreateProgram", func(t *testing.T) {
		program := &model.TrackedProgram{
			ProgramID:            programID,
			UserID:               userID,
			CustomProgramName:    "MSc Artificial Intelligence",
			CustomUniversityName: "University of Amsterdam",
			CustomCountry:        "Netherlands",
			Status:               model.StatusResearching,
			Priority:             model.PriorityTarget,
			Deadline:             &deadline,
			DocumentChecklist:    model.DefaultChecklist(),
		}

		if err := repo.CreateProgram(ctx, program); err != nil {
			t.Fatal("create program failed", err)
		}
		if program.CreatedAt.IsZero() || program.UpdatedAt.IsZero() {
			t.Fatal("timestamps not set on create")
		}
	})

	t.Run("CreateProgramWithoutUser", func(t *testing.T) {
		err := repo.CreateProgram(ctx, &model.TrackedProgram{ProgramID: uuid.New().String()})
		if !errors.Is(err, model.ErrValidation) {
			t.Fatal("expected validation error, got", err)
		}
	})

	t.Run("GetProgram", func(t *testing.T) {
		program, err := repo.GetProgram(ctx, programID, userID)
		if err != nil {
			t.Fatal("get program failed", err)
		}
		if program == nil {
			t.Fatal("program not found after create")
		}
		if program.CustomProgramName != "MSc Artificial Intelligence" {
			t.Fatal("wrong program returned:", program.CustomProgramName)
		}
		if len(program.DocumentChecklist) != 6 {
			t.Fatal("default checklist not stored, got", len(program.DocumentChecklist))
		}
	})

	t.Run("GetProgramWrongUser", func(t *testing.T) {
		program, err := repo.GetProgram(ctx, programID, uuid.New().String())
		if err != nil {
			t.Fatal("get program failed", err)
		}
		if program != nil {
			t.Fatal("program must not be visible to another user")
		}
	})

	t.Run("ExistsByCustomName", func(t *testing.T) {
		exists, err := repo.ExistsByCustomName(ctx, userID, "MSc Artificial Intelligence", "University of Amsterdam")
		if err != nil {
			t.Fatal("exists check failed", err)
		}
		if !exists {
			t.Fatal("duplicate guard should find the program")
		}
	})

	t.Run("UpdateProgramFields", func(t *testing.T) {
		updated, err := repo.UpdateProgramFields(ctx, programID, userID, bson.M{
			"status":   model.StatusSubmitted,
			"priority": model.PriorityDream,
		})
		if err != nil {
			t.Fatal("update failed", err)
		}
		if updated.Status != model.StatusSubmitted || updated.Priority != model.PriorityDream {
			t.Fatal("update not applied:", updated.Status, updated.Priority)
		}
	})

	t.Run("UpdateMissingProgram", func(t *testing.T) {
		_, err := repo.UpdateProgramFields(ctx, uuid.New().String(), userID, bson.M{"status": model.StatusSubmitted})
		if !errors.Is(err, model.ErrProgramNotFound) {
			t.Fatal("expected not-found, got", err)
		}
	})

	t.Run("ListSortedNewestFirst", func(t *testing.T) {
		second := &model.TrackedProgram{
			ProgramID:            uuid.New().String(),
			UserID:               userID,
			CustomProgramName:    "MSc Robotics",
			CustomUniversityName: "ETH Zurich",
			CustomCountry:        "Switzerland",
			Status:               model.StatusResearching,
			Priority:             model.PrioritySafety,
		}
		if err := repo.CreateProgram(ctx, second); err != nil {
			t.Fatal("create second program failed", err)
		}

		programs, err := repo.GetUserPrograms(ctx, userID, "", "")
		if err != nil {
			t.Fatal("list failed", err)
		}
		if len(programs) != 2 {
			t.Fatal("expected 2 programs, got", len(programs))
		}
		if programs[0].ProgramID != second.ProgramID {
			t.Fatal("newest program should come first")
		}

		filtered, err := repo.GetUserPrograms(ctx, userID, model.StatusSubmitted, "")
		if err != nil {
			t.Fatal("filtered list failed", err)
		}
		if len(filtered) != 1 || filtered[0].ProgramID != programID {
			t.Fatal("status filter returned wrong programs")
		}
	})

	t.Run("ChecklistVersionGuard", func(t *testing.T) {
		program, err := repo.GetProgram(ctx, programID, userID)
		if err != nil || program == nil {
			t.Fatal("reread failed", err)
		}

		items := []model.ChecklistItem{{ItemID: uuid.New().String(), Name: "SOP", Completed: true}}
		updated, err := repo.ReplaceChecklist(ctx, programID, userID, items, program.ChecklistVersion)
		if err != nil {
			t.Fatal("versioned replace failed", err)
		}
		if updated.ChecklistVersion != program.ChecklistVersion+1 {
			t.Fatal("version should increment on replace")
		}

		// A second write with the stale version must conflict.
		_, err = repo.ReplaceChecklist(ctx, programID, userID, items, program.ChecklistVersion)
		if !errors.Is(err, model.ErrChecklistConflict) {
			t.Fatal("expected version conflict, got", err)
		}

		// Legacy unversioned write still goes through.
		if _, err = repo.ReplaceChecklist(ctx, programID, userID, items, -1); err != nil {
			t.Fatal("unversioned replace failed", err)
		}
	})

	t.Run("PushAndPullChecklistItem", func(t *testing.T) {
		item := model.ChecklistItem{ItemID: uuid.New().String(), Name: "IELTS", Required: true}
		updated, err := repo.PushChecklistItem(ctx, programID, userID, item)
		if err != nil {
			t.Fatal("push item failed", err)
		}
		before := len(updated.DocumentChecklist)

		updated, err = repo.PullChecklistItem(ctx, programID, userID, item.ItemID)
		if err != nil {
			t.Fatal("pull item failed", err)
		}
		if len(updated.DocumentChecklist) != before-1 {
			t.Fatal("item not removed")
		}

		_, err = repo.PullChecklistItem(ctx, programID, userID, item.ItemID)
		if !errors.Is(err, model.ErrItemNotFound) {
			t.Fatal("expected item-not-found, got", err)
		}
	})

	t.Run("NoteEntryLifecycle", func(t *testing.T) {
		entry := model.NoteEntry{
			EntryID:   uuid.New().String(),
			Content:   "Emailed the admissions office",
			Category:  model.CategoryContact,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := repo.PushNoteEntry(ctx, programID, userID, entry); err != nil {
			t.Fatal("push entry failed", err)
		}

		updated, err := repo.UpdateNoteEntry(ctx, programID, userID, entry.EntryID, bson.M{"pinned": true})
		if err != nil {
			t.Fatal("update entry failed", err)
		}
		if len(updated.NotesEntries) != 1 || !updated.NotesEntries[0].Pinned {
			t.Fatal("entry not pinned")
		}

		removed, err := repo.PullNoteEntry(ctx, programID, userID, entry.EntryID)
		if err != nil {
			t.Fatal("pull entry failed", err)
		}
		if !removed {
			t.Fatal("entry should have been removed")
		}

		// Pulling again is a no-op, not an error.
		removed, err = repo.PullNoteEntry(ctx, programID, userID, entry.EntryID)
		if err != nil {
			t.Fatal("second pull failed", err)
		}
		if removed {
			t.Fatal("nothing should remain to remove")
		}
	})

	t.Run("SetMainNotes", func(t *testing.T) {
		if err := repo.SetMainNotes(ctx, programID, userID, "Ask about scholarships"); err != nil {
			t.Fatal("set notes failed", err)
		}
		program, err := repo.GetProgram(ctx, programID, userID)
		if err != nil || program == nil {
			t.Fatal("reread failed", err)
		}
		if program.Notes == nil || *program.Notes != "Ask about scholarships" {
			t.Fatal("notes not stored")
		}

		if err := repo.SetMainNotes(ctx, programID, userID, ""); err != nil {
			t.Fatal("clearing notes failed", err)
		}
	})

	t.Run("DeleteProgram", func(t *testing.T) {
		if err := repo.DeleteProgram(ctx, programID, userID); err != nil {
			t.Fatal("delete failed", err)
		}

		err := repo.DeleteProgram(ctx, programID, userID)
		if !errors.Is(err, model.ErrProgramNotFound) {
			t.Fatal("second delete should report not-found, got", err)
		}

		program, err := repo.GetProgram(ctx, programID, userID)
		if err != nil {
			t.Fatal("get after delete failed", err)
		}
		if program != nil {
			t.Fatal("program still present after delete")
		}
	})
}
