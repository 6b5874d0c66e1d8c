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

const yogaCollectionName = "yogas"

// mongoYogaRepository implements repository.YogaRepository
type mongoYogaRepository struct {
	collection *mongo.Collection
}

// NewMongoYogaRepository creates a new Yoga repository backed by MongoDB.
func NewMongoYogaRepository(db *mongo.Database) repository.YogaRepository {
	return &mongoYogaRepository{
		collection: db.Collection(yogaCollectionName),
	}
}

// Create inserts a new yoga/workout video.
func (r *mongoYogaRepository) Create(ctx context.Context, yoga *domain.Yoga) (primitive.ObjectID, error) {
	if yoga.Title == "" {
		return primitive.NilObjectID, errors.New("yoga title is required")
	}

	yoga.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	yoga.CreatedAt = now
	yoga.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, yoga)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// GetByID retrieves a video by its ID.
func (r *mongoYogaRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Yoga, error) {
	return findOne[domain.Yoga](ctx, r.collection, bson.M{"_id": id})
}

// List returns a page of videos, newest first.
func (r *mongoYogaRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Yoga, int64, error) {
	return findPage[domain.Yoga](ctx, r.collection, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, page)
}

// Update replaces every content field of the video, keeping its id and creation time.
func (r *mongoYogaRepository) Update(ctx context.Context, yoga *domain.Yoga) error {
	if yoga.ID == primitive.NilObjectID {
		return errors.New("yoga ID is required for update")
	}

	yoga.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":            yoga.Title,
			"description":      yoga.Description,
			"image":            yoga.Image,
			"duration":         yoga.Duration,
			"type":             yoga.Type,
			"tags":             yoga.Tags,
			"youtubeId":        yoga.YoutubeID,
			"instructions":     yoga.Instructions,
			"notes":            yoga.Notes,
			"isPeriodFriendly": yoga.IsPeriodFriendly,
			"updatedAt":        yoga.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": yoga.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a video.
func (r *mongoYogaRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetSummaries loads the populated projection for the given ids.
func (r *mongoYogaRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.YogaSummary, error) {
	summaries := make(map[primitive.ObjectID]domain.YogaSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	projection := options.Find().SetProjection(bson.M{
		"title":            1,
		"duration":         1,
		"image":            1,
		"youtubeId":        1,
		"isPeriodFriendly": 1,
	})
	items, err := findAll[domain.YogaSummary](ctx, r.collection, byIDs(ids), projection)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		summaries[item.ID] = item
	}
	return summaries, nil
}
