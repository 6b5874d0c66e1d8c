package mongo

import (
	"context"
	"testing"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNS = "wellness.test"

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{
		Index:   0,
		Code:    11000,
		Message: "E11000 duplicate key error",
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &domain.User{Name: "Asha", EmailID: "asha@example.com", PasswordHash: "hash"}
		id, err := repo.Create(ctx, user)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
		assert.Equal(mt, id, user.ID)
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("create duplicate email is a conflict", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse())

		_, err := repo.Create(ctx, &domain.User{EmailID: "asha@example.com", PasswordHash: "hash"})
		assert.ErrorIs(mt, err, repository.ErrConflict)
	})

	mt.Run("get by email decodes", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Asha"},
			{Key: "emailId", Value: "asha@example.com"},
			{Key: "password", Value: "hash"},
		}))

		user, err := repo.GetByEmail(ctx, "asha@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "hash", user.PasswordHash)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		_, err := repo.GetByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.Update(ctx, &domain.User{ID: primitive.NewObjectID()})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("delete unmatched", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		err := repo.Delete(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestDailyPlanRepositoryDuplicateDay(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second plan for the same day conflicts", func(mt *mtest.T) {
		repo := NewMongoDailyPlanRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), duplicateKeyResponse())

		_, err := repo.Create(context.Background(), &domain.DailyPlan{Day: 1})
		require.NoError(mt, err)
		_, err = repo.Create(context.Background(), &domain.DailyPlan{Day: 1})
		assert.ErrorIs(mt, err, repository.ErrConflict)
	})

	mt.Run("day below one is refused before the write", func(mt *mtest.T) {
		repo := NewMongoDailyPlanRepository(mt.DB)
		_, err := repo.Create(context.Background(), &domain.DailyPlan{Day: 0})
		assert.Error(mt, err)
	})
}

func TestUserLifestyleRepositoryDuplicatePair(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate pair conflicts", func(mt *mtest.T) {
		repo := NewMongoUserLifestyleRepository(mt.DB)
		mt.AddMockResponses(duplicateKeyResponse())

		_, err := repo.Create(context.Background(), &domain.UserLifestyleRoutine{
			UserID:       primitive.NewObjectID(),
			SuggestionID: primitive.NewObjectID(),
		})
		assert.ErrorIs(mt, err, repository.ErrConflict)
	})
}

func TestProgressRepositoryList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns page and total", func(mt *mtest.T) {
		repo := NewMongoProgressRepository(mt.DB)
		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
			mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user", Value: userID}, {Key: "weight", Value: 61.5}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "user", Value: userID}, {Key: "weight", Value: 62.0}},
			),
		)

		items, total, err := repo.List(context.Background(), userID, false, domain.PageRequest{Page: 1, Limit: 2})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), total)
		require.Len(mt, items, 2)
		assert.Equal(mt, 61.5, *items[0].Weight)
	})
}

func TestRecipeRepositorySummaries(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("maps found ids", func(mt *mtest.T) {
		repo := NewMongoRecipeRepository(mt.DB)
		known, unknown := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: known}, {Key: "title", Value: "Oats"}, {Key: "image", Value: "https://x.com/o.jpg"}},
		))

		summaries, err := repo.GetSummaries(context.Background(), []primitive.ObjectID{known, unknown})
		require.NoError(mt, err)
		assert.Equal(mt, "Oats", summaries[known].Title)
		_, ok := summaries[unknown]
		assert.False(mt, ok)
	})

	mt.Run("no ids skips the query", func(mt *mtest.T) {
		repo := NewMongoRecipeRepository(mt.DB)
		summaries, err := repo.GetSummaries(context.Background(), nil)
		require.NoError(mt, err)
		assert.Empty(mt, summaries)
	})
}
