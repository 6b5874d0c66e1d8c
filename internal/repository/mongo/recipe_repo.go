package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recipeCollectionName = "recipes"

// mongoRecipeRepository implements repository.RecipeRepository
type mongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new Recipe repository backed by MongoDB.
func NewMongoRecipeRepository(db *mongo.Database) repository.RecipeRepository {
	return &mongoRecipeRepository{
		collection: db.Collection(recipeCollectionName),
	}
}

// Create inserts a new recipe into the database.
func (r *mongoRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (primitive.ObjectID, error) {
	if recipe.Title == "" {
		return primitive.NilObjectID, errors.New("recipe title is required")
	}

	recipe.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(result)
}

// GetByID retrieves a recipe by its ID.
func (r *mongoRecipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Recipe, error) {
	return findOne[domain.Recipe](ctx, r.collection, bson.M{"_id": id})
}

// List returns a page of recipes, newest first.
func (r *mongoRecipeRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Recipe, int64, error) {
	return findPage[domain.Recipe](ctx, r.collection, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, page)
}

// Search matches the query as a case-insensitive substring of the title or any tag.
func (r *mongoRecipeRepository) Search(ctx context.Context, query string, page domain.PageRequest) ([]domain.Recipe, int64, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"tags": pattern},
		},
	}
	return findPage[domain.Recipe](ctx, r.collection, filter, bson.D{{Key: "createdAt", Value: -1}}, page)
}

// GetSummaries loads the populated projection for the given ids. Unknown ids are absent from the map.
func (r *mongoRecipeRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.RecipeSummary, error) {
	summaries := make(map[primitive.ObjectID]domain.RecipeSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	projection := options.Find().SetProjection(bson.M{"title": 1, "image": 1})
	items, err := findAll[domain.RecipeSummary](ctx, r.collection, byIDs(ids), projection)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		summaries[item.ID] = item
	}
	return summaries, nil
}

// EnsureRecipeIndexes creates the tag index used by search and filtering.
func EnsureRecipeIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
