package repository

import (
	"context"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CatalogRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for the course catalog. The catalog is
// owned by the ingestion pipeline; the tracker only reads it.
func GetCatalogRepo(client *mongo.Client) *CatalogRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("CATALOG_COLLECTION", "catalog_courses")
	return &CatalogRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// FindCourse looks up one catalog course; nil when unknown.
func (r *CatalogRepo) FindCourse(ctx context.Context, courseID string) (*model.CatalogCourse, error) {
	timer := utils.TrackDBOperation("find_one", "catalog_courses")
	defer timer.ObserveDuration()

	var course model.CatalogCourse
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": courseID}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "course_fetch_failed")
		return nil, err
	}
	return &course, nil
}

// SearchCourses runs a text search over course and university names,
// best matches first.
func (r *CatalogRepo) SearchCourses(ctx context.Context, query string, limit int) ([]*model.CatalogCourse, error) {
	timer := utils.TrackDBOperation("find", "catalog_courses")
	defer timer.ObserveDuration()

	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "course_search_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []*model.CatalogCourse
	if err = cursor.All(ctx, &courses); err != nil {
		utils.TrackError("database", "course_decode_failed")
		return nil, err
	}
	return courses, nil
}
