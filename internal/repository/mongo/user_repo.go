package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository" // Import the repository interfaces package

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	// Basic sanity check; payload validation happens before the service gets here
	if user.EmailID == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// Unique index on emailId
		return primitive.NilObjectID, mapWriteError(err)
	}
	return insertedID(result)
}

// GetByEmail retrieves a user by their (lowercased) email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.collection, bson.M{"emailId": email})
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return findOne[domain.User](ctx, r.collection, bson.M{"_id": id})
}

// Update writes the user's stable profile fields and password hash.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == primitive.NilObjectID {
		return errors.New("user ID is required for update")
	}

	user.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":      user.Name,
			"emailId":   user.EmailID,
			"password":  user.PasswordHash,
			"dob":       user.DOB,
			"photoUrl":  user.PhotoURL,
			"height":    user.Height,
			"resetPlan": user.ResetPlan,
			"updatedAt": user.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return mapWriteError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the user document.
func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "emailId", Value: 1}},
			Options: options.Index().SetUnique(true), // Make email unique
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
