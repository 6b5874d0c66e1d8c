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

const dailyPlanCollectionName = "dailyplans"

// mongoDailyPlanRepository implements repository.DailyPlanRepository
type mongoDailyPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyPlanRepository creates a new DailyPlan repository backed by MongoDB.
func NewMongoDailyPlanRepository(db *mongo.Database) repository.DailyPlanRepository {
	return &mongoDailyPlanRepository{
		collection: db.Collection(dailyPlanCollectionName),
	}
}

// Create inserts a plan. A second plan for the same day fails with repository.ErrConflict.
func (r *mongoDailyPlanRepository) Create(ctx context.Context, plan *domain.DailyPlan) (primitive.ObjectID, error) {
	if plan.Day < 1 {
		return primitive.NilObjectID, errors.New("daily plan day must be at least 1")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, mapWriteError(err)
	}
	return insertedID(result)
}

// GetByID retrieves a plan by its ID.
func (r *mongoDailyPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DailyPlan, error) {
	return findOne[domain.DailyPlan](ctx, r.collection, bson.M{"_id": id})
}

// GetByDay retrieves the plan for a day number.
func (r *mongoDailyPlanRepository) GetByDay(ctx context.Context, day int) (*domain.DailyPlan, error) {
	return findOne[domain.DailyPlan](ctx, r.collection, bson.M{"day": day})
}

// List returns a page of plans ordered by day.
func (r *mongoDailyPlanRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.DailyPlan, int64, error) {
	return findPage[domain.DailyPlan](ctx, r.collection, bson.M{}, bson.D{{Key: "day", Value: 1}}, page)
}

// Update replaces the content of the plan with the same ID.
func (r *mongoDailyPlanRepository) Update(ctx context.Context, plan *domain.DailyPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("daily plan ID is required for update")
	}

	plan.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"day":       plan.Day,
			"meals":     plan.Meals,
			"workouts":  plan.Workouts,
			"quote":     plan.Quote,
			"updatedAt": plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, update)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan.
func (r *mongoDailyPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDailyPlanIndexes creates the unique day index.
func EnsureDailyPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
