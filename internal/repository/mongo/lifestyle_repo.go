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

const (
	suggestionCollectionName    = "lifestylesuggestions"
	userLifestyleCollectionName = "userlifestyleroutines"
)

// mongoSuggestionRepository implements repository.LifestyleSuggestionRepository
type mongoSuggestionRepository struct {
	collection *mongo.Collection
}

// NewMongoLifestyleSuggestionRepository creates a new suggestion repository backed by MongoDB.
func NewMongoLifestyleSuggestionRepository(db *mongo.Database) repository.LifestyleSuggestionRepository {
	return &mongoSuggestionRepository{
		collection: db.Collection(suggestionCollectionName),
	}
}

func (r *mongoSuggestionRepository) Create(ctx context.Context, suggestion *domain.LifestyleSuggestion) (primitive.ObjectID, error) {
	if suggestion.Title == "" {
		return primitive.NilObjectID, errors.New("suggestion title is required")
	}

	suggestion.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	suggestion.CreatedAt = now
	suggestion.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, suggestion)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

func (r *mongoSuggestionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.LifestyleSuggestion, error) {
	return findOne[domain.LifestyleSuggestion](ctx, r.collection, bson.M{"_id": id})
}

func (r *mongoSuggestionRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.LifestyleSuggestion, error) {
	found := make(map[primitive.ObjectID]domain.LifestyleSuggestion, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	items, err := findAll[domain.LifestyleSuggestion](ctx, r.collection, byIDs(ids))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		found[item.ID] = item
	}
	return found, nil
}

// List returns a page of suggestions in insertion order.
func (r *mongoSuggestionRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.LifestyleSuggestion, int64, error) {
	return findPage[domain.LifestyleSuggestion](ctx, r.collection, bson.M{}, bson.D{{Key: "_id", Value: 1}}, page)
}

func (r *mongoSuggestionRepository) Update(ctx context.Context, suggestion *domain.LifestyleSuggestion) error {
	if suggestion.ID == primitive.NilObjectID {
		return errors.New("suggestion ID is required for update")
	}

	suggestion.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":           suggestion.Title,
			"description":     suggestion.Description,
			"image":           suggestion.Image,
			"repeat":          suggestion.Repeat,
			"recommendedTime": suggestion.RecommendedTime,
			"updatedAt":       suggestion.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": suggestion.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoSuggestionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// mongoUserLifestyleRepository implements repository.UserLifestyleRepository
type mongoUserLifestyleRepository struct {
	collection *mongo.Collection
}

// NewMongoUserLifestyleRepository creates a new routine repository backed by MongoDB.
func NewMongoUserLifestyleRepository(db *mongo.Database) repository.UserLifestyleRepository {
	return &mongoUserLifestyleRepository{
		collection: db.Collection(userLifestyleCollectionName),
	}
}

// Create inserts a routine. The unique (userId, lifestyleSuggestionId) index turns a
// second insert of the same pair into repository.ErrConflict, active or not.
func (r *mongoUserLifestyleRepository) Create(ctx context.Context, routine *domain.UserLifestyleRoutine) (primitive.ObjectID, error) {
	if routine.UserID == primitive.NilObjectID || routine.SuggestionID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("routine user ID and suggestion ID are required")
	}

	routine.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return insertedID(result)
}

func (r *mongoUserLifestyleRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.UserLifestyleRoutine, error) {
	return findOne[domain.UserLifestyleRoutine](ctx, r.collection, bson.M{"_id": id, "userId": userID})
}

func (r *mongoUserLifestyleRepository) ListActive(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) ([]domain.UserLifestyleRoutine, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "preferredTime", Value: 1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))
	return findAll[domain.UserLifestyleRoutine](ctx, r.collection, bson.M{"userId": userID, "isActive": true}, findOptions)
}

func (r *mongoUserLifestyleRepository) Update(ctx context.Context, routine *domain.UserLifestyleRoutine) error {
	if routine.ID == primitive.NilObjectID {
		return errors.New("routine ID is required for update")
	}

	routine.UpdatedAt = time.Now().UTC()
	filter := bson.M{"_id": routine.ID, "userId": routine.UserID}
	update := bson.M{
		"$set": bson.M{
			"repeat":            routine.Repeat,
			"preferredTime":     routine.PreferredTime,
			"preferredTimeSlot": routine.PreferredTimeSlot,
			"duration":          routine.Duration,
			"isActive":          routine.IsActive,
			"reminderEnabled":   routine.ReminderEnabled,
			"updatedAt":         routine.UpdatedAt,
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

func (r *mongoUserLifestyleRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureUserLifestyleIndexes creates the unique (user, suggestion) index.
func EnsureUserLifestyleIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "lifestyleSuggestionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
