package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressCollectionName = "progresses"

// mongoProgressRepository implements repository.ProgressRepository
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new Progress repository backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Create inserts a new progress entry.
func (r *mongoProgressRepository) Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	if progress.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("progress user ID is required")
	}

	progress.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, progress)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// GetByID retrieves an entry owned by userID.
func (r *mongoProgressRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Progress, error) {
	return findOne[domain.Progress](ctx, r.collection, bson.M{"_id": id, "user": userID})
}

// List returns a page of the user's entries sorted by date, newest first.
func (r *mongoProgressRepository) List(ctx context.Context, userID primitive.ObjectID, photosOnly bool, page domain.PageRequest) ([]domain.Progress, int64, error) {
	filter := bson.M{"user": userID}
	if photosOnly {
		// Excludes missing, null and empty photo URLs
		filter["photoUrl"] = bson.M{"$nin": bson.A{nil, ""}}
	}
	sort := bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}
	return findPage[domain.Progress](ctx, r.collection, filter, sort, page)
}

// Latest returns the user's most recent entry by date.
func (r *mongoProgressRepository) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error) {
	var progress domain.Progress
	findOptions := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, bson.M{"user": userID}, findOptions).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

// ListAllByUser returns every entry the user owns, used when cascading deletes.
func (r *mongoProgressRepository) ListAllByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	return findAll[domain.Progress](ctx, r.collection, bson.M{"user": userID})
}

// Update replaces the mutable fields of an entry. The owner cannot change.
func (r *mongoProgressRepository) Update(ctx context.Context, progress *domain.Progress) error {
	if progress.ID == primitive.NilObjectID {
		return errors.New("progress ID is required for update")
	}

	progress.UpdatedAt = time.Now().UTC()
	filter := bson.M{"_id": progress.ID, "user": progress.UserID}
	update := bson.M{
		"$set": bson.M{
			"date":         progress.Date,
			"photoUrl":     progress.PhotoURL,
			"weight":       progress.Weight,
			"measurements": progress.Measurements,
			"notes":        progress.Notes,
			"updatedAt":    progress.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an entry owned by userID.
func (r *mongoProgressRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUser removes every entry the user owns.
func (r *mongoProgressRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureProgressIndexes creates the per-user timeline index.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
