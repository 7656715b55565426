package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	programsCollection := db.Collection("tracked_programs")
	catalogCollection := db.Collection("catalog_courses")

	programIndexes := []mongo.IndexModel{
		// List queries: per-user, newest first
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_programs_date").
				SetUnique(false),
		},
		// Duplicate guard for catalog-linked programs
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "course_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_course").
				SetUnique(false),
		},
		// Deadline window scans
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "deadline", Value: 1},
			},
			Options: options.Index().
				SetName("user_deadlines"),
		},
		// Filtered list queries
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().
				SetName("user_status"),
		},
	}

	catalogIndexes := []mongo.IndexModel{
		// Text search for the add-program flow
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "university_name", Value: "text"},
			},
			Options: options.Index().
				SetName("catalog_text_search").
				SetDefaultLanguage("english"),
		},
		{
			Keys: bson.D{{Key: "country", Value: 1}},
			Options: options.Index().
				SetName("catalog_country"),
		},
	}

	if _, err := programsCollection.Indexes().CreateMany(ctx, programIndexes); err != nil {
		return fmt.Errorf("failed to create program indexes: %v", err)
	}
	if _, err := catalogCollection.Indexes().CreateMany(ctx, catalogIndexes); err != nil {
		return fmt.Errorf("failed to create catalog indexes: %v", err)
	}

	log.Println("MongoDB indexes created successfully")
	return nil
}
