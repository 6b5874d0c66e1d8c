package mongo

import (
	"context"
	"errors"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findOne decodes the first document matching filter, mapping a miss to repository.ErrNotFound.
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// findPage runs a skip/limit query and a count over the same filter.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter any, sort bson.D, page domain.PageRequest) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(sort).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))

	items, err := findAll[T](ctx, coll, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// findAll decodes every document matching filter. The result is never nil.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, cursor.Err()
}

// insertedID asserts the type of an InsertOne result id.
func insertedID(result *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return id, nil
}

// mapWriteError converts duplicate key failures into repository.ErrConflict.
func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	return err
}

// byIDs builds an $in filter over _id.
func byIDs(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}
