package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgramsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for tracked programs
func GetProgramsRepo(client *mongo.Client) *ProgramsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("PROGRAMS_COLLECTION", "tracked_programs")
	return &ProgramsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Inserts a new tracked program
func (r *ProgramsRepo) CreateProgram(ctx context.Context, program *model.TrackedProgram) error {
	timer := utils.TrackDBOperation("insert", "tracked_programs")
	defer timer.ObserveDuration()

	if program.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return model.ErrValidation
	}

	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt

	_, err := r.MongoCollection.InsertOne(ctx, program)
	if err != nil {
		utils.TrackError("database", "program_creation_failed")
		return err
	}
	return nil
}

// Retrieves all programs for a user, newest first. Empty filter values are
// ignored; the backend ordering is what the dashboard renders.
func (r *ProgramsRepo) GetUserPrograms(ctx context.Context, userID string, status model.ApplicationStatus, priority model.Priority) ([]*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("find", "tracked_programs")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	if priority != "" {
		filter["priority"] = priority
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "program_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []*model.TrackedProgram
	if err = cursor.All(ctx, &programs); err != nil {
		utils.TrackError("database", "program_decode_failed")
		return nil, err
	}
	return programs, nil
}

// Retrieves a single program owned by the user; nil when it does not exist
// (or belongs to someone else, which callers must not distinguish).
func (r *ProgramsRepo) GetProgram(ctx context.Context, programID, userID string) (*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("find_one", "tracked_programs")
	defer timer.ObserveDuration()

	var program model.TrackedProgram
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": programID, "user_id": userID}).Decode(&program)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "program_fetch_failed")
		return nil, err
	}
	return &program, nil
}

// Checks whether the user already tracks the given catalog course.
func (r *ProgramsRepo) ExistsByCourse(ctx context.Context, userID, courseID string) (bool, error) {
	timer := utils.TrackDBOperation("count", "tracked_programs")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "course_id": courseID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Checks whether the user already tracks a custom entry with the same
// program and university names.
func (r *ProgramsRepo) ExistsByCustomName(ctx context.Context, userID, programName, universityName string) (bool, error) {
	timer := utils.TrackDBOperation("count", "tracked_programs")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":                userID,
		"custom_program_name":    programName,
		"custom_university_name": universityName,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Applies a partial update. Only the supplied fields are written; omitted
// ones are never nulled. Returns the updated program.
func (r *ProgramsRepo) UpdateProgramFields(ctx context.Context, programID, userID string, set bson.M) (*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	set["updated_at"] = time.Now()

	filter := bson.M{"_id": programID, "user_id": userID}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.TrackedProgram
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "program_not_found")
			return nil, model.ErrProgramNotFound
		}
		utils.TrackError("database", "program_update_failed")
		return nil, err
	}
	return &updated, nil
}

// Removes a program and, with it, the embedded checklist and note entries.
// Not idempotent: a second delete reports not-found.
func (r *ProgramsRepo) DeleteProgram(ctx context.Context, programID, userID string) error {
	timer := utils.TrackDBOperation("delete", "tracked_programs")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": programID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "program_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "program_not_found")
		return model.ErrProgramNotFound
	}
	return nil
}

// ReplaceChecklist swaps the whole checklist array. When expectedVersion is
// non-negative the write only applies if the stored checklist_version still
// matches (optimistic concurrency); -1 keeps the legacy last-writer-wins
// contract. Returns the updated program.
func (r *ProgramsRepo) ReplaceChecklist(ctx context.Context, programID, userID string, items []model.ChecklistItem, expectedVersion int64) (*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": programID, "user_id": userID}
	if expectedVersion >= 0 {
		filter["checklist_version"] = expectedVersion
	}

	update := bson.M{
		"$set": bson.M{
			"document_checklist": items,
			"updated_at":         time.Now(),
		},
		"$inc": bson.M{"checklist_version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.TrackedProgram
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Either the program is gone or the version guard tripped.
			existing, lookupErr := r.GetProgram(ctx, programID, userID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing == nil {
				utils.TrackError("database", "program_not_found")
				return nil, model.ErrProgramNotFound
			}
			utils.TrackError("database", "checklist_version_conflict")
			return nil, model.ErrChecklistConflict
		}
		utils.TrackError("database", "checklist_update_failed")
		return nil, err
	}
	return &updated, nil
}

// Appends one checklist item and returns the updated program.
func (r *ProgramsRepo) PushChecklistItem(ctx context.Context, programID, userID string, item model.ChecklistItem) (*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": programID, "user_id": userID}
	update := bson.M{
		"$push": bson.M{"document_checklist": item},
		"$set":  bson.M{"updated_at": time.Now()},
		"$inc":  bson.M{"checklist_version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.TrackedProgram
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "program_not_found")
			return nil, model.ErrProgramNotFound
		}
		utils.TrackError("database", "checklist_update_failed")
		return nil, err
	}
	return &updated, nil
}

// Removes the checklist item with the given id and returns the updated
// program. Reports ErrItemNotFound when no item matched.
func (r *ProgramsRepo) PullChecklistItem(ctx context.Context, programID, userID, itemID string) (*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":                        programID,
		"user_id":                    userID,
		"document_checklist.item_id": itemID,
	}
	update := bson.M{
		"$pull": bson.M{"document_checklist": bson.M{"item_id": itemID}},
		"$set":  bson.M{"updated_at": time.Now()},
		"$inc":  bson.M{"checklist_version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.TrackedProgram
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			existing, lookupErr := r.GetProgram(ctx, programID, userID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing == nil {
				utils.TrackError("database", "program_not_found")
				return nil, model.ErrProgramNotFound
			}
			utils.TrackError("database", "checklist_item_not_found")
			return nil, model.ErrItemNotFound
		}
		utils.TrackError("database", "checklist_update_failed")
		return nil, err
	}
	return &updated, nil
}

// Replaces the free-text main notes field. Empty string is a legitimate
// value; it clears the notes without unsetting them.
func (r *ProgramsRepo) SetMainNotes(ctx context.Context, programID, userID, text string) error {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": programID, "user_id": userID},
		bson.M{"$set": bson.M{"notes": text, "updated_at": time.Now()}})
	if err != nil {
		utils.TrackError("database", "notes_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "program_not_found")
		return model.ErrProgramNotFound
	}
	return nil
}

// Appends one note entry.
func (r *ProgramsRepo) PushNoteEntry(ctx context.Context, programID, userID string, entry model.NoteEntry) error {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": programID, "user_id": userID},
		bson.M{
			"$push": bson.M{"notes_entries": entry},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		utils.TrackError("database", "note_entry_create_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "program_not_found")
		return model.ErrProgramNotFound
	}
	return nil
}

// Patches fields of one note entry via the positional operator and returns
// the updated program. set keys must be entry-relative ("content", ...).
func (r *ProgramsRepo) UpdateNoteEntry(ctx context.Context, programID, userID, entryID string, set bson.M) (*model.TrackedProgram, error) {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	positional := bson.M{"updated_at": time.Now()}
	for key, value := range set {
		positional["notes_entries.$."+key] = value
	}

	filter := bson.M{
		"_id":                    programID,
		"user_id":                userID,
		"notes_entries.entry_id": entryID,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.TrackedProgram
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, bson.M{"$set": positional}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			existing, lookupErr := r.GetProgram(ctx, programID, userID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing == nil {
				utils.TrackError("database", "program_not_found")
				return nil, model.ErrProgramNotFound
			}
			utils.TrackError("database", "note_entry_not_found")
			return nil, model.ErrEntryNotFound
		}
		utils.TrackError("database", "note_entry_update_failed")
		return nil, err
	}
	return &updated, nil
}

// Removes one note entry. Returns whether an entry was actually removed;
// a vanished entry is not an error here, callers decide.
func (r *ProgramsRepo) PullNoteEntry(ctx context.Context, programID, userID, entryID string) (bool, error) {
	timer := utils.TrackDBOperation("update", "tracked_programs")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": programID, "user_id": userID},
		bson.M{
			"$pull": bson.M{"notes_entries": bson.M{"entry_id": entryID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		utils.TrackError("database", "note_entry_delete_failed")
		return false, err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "program_not_found")
		return false, model.ErrProgramNotFound
	}
	return result.ModifiedCount > 0, nil
}
