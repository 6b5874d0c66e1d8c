package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping against the primary.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connection can succeed while the server is unresponsive.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on. The unique
// indexes back the conflict errors returned by the repositories, so a failure
// here is returned rather than ignored.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Collection) error
		coll string
	}{
		{"users", EnsureUserIndexes, userCollectionName},
		{"progress", EnsureProgressIndexes, progressCollectionName},
		{"recipes", EnsureRecipeIndexes, recipeCollectionName},
		{"daily plans", EnsureDailyPlanIndexes, dailyPlanCollectionName},
		{"user lifestyle routines", EnsureUserLifestyleIndexes, userLifestyleCollectionName},
	}
	for _, step := range steps {
		if err := step.fn(ctx, db.Collection(step.coll)); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", step.name, err)
		}
	}
	return nil
}
