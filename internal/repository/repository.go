package repository

import (
	"alcyxob/wellness-app/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for the repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) // ErrConflict on duplicate email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error // ErrConflict on duplicate email
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgressRepository stores progress entries. Every lookup is scoped to the owning user.
type ProgressRepository interface {
	Create(ctx context.Context, progress *domain.Progress) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Progress, error)
	// List returns a page of the user's entries, newest date first, and the total count.
	// When photosOnly is set, entries without a photo URL are skipped.
	List(ctx context.Context, userID primitive.ObjectID, photosOnly bool, page domain.PageRequest) ([]domain.Progress, int64, error)
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error)
	ListAllByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error)
	Update(ctx context.Context, progress *domain.Progress) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// RecipeRepository stores catalog recipes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Recipe, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Recipe, int64, error)
	// Search matches query case-insensitively against title and tags.
	Search(ctx context.Context, query string, page domain.PageRequest) ([]domain.Recipe, int64, error)
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.RecipeSummary, error)
}

// YogaRepository stores catalog yoga, meditation and workout videos.
type YogaRepository interface {
	Create(ctx context.Context, yoga *domain.Yoga) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Yoga, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Yoga, int64, error)
	Update(ctx context.Context, yoga *domain.Yoga) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.YogaSummary, error)
}

// DailyPlanRepository stores day-numbered plans. Day is unique.
type DailyPlanRepository interface {
	Create(ctx context.Context, plan *domain.DailyPlan) (primitive.ObjectID, error) // ErrConflict on duplicate day
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DailyPlan, error)
	GetByDay(ctx context.Context, day int) (*domain.DailyPlan, error)
	// List returns plans sorted by day ascending.
	List(ctx context.Context, page domain.PageRequest) ([]domain.DailyPlan, int64, error)
	Update(ctx context.Context, plan *domain.DailyPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LifestyleSuggestionRepository stores catalog lifestyle habits.
type LifestyleSuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.LifestyleSuggestion) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.LifestyleSuggestion, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.LifestyleSuggestion, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.LifestyleSuggestion, int64, error)
	Update(ctx context.Context, suggestion *domain.LifestyleSuggestion) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserLifestyleRepository stores user routines. The (user, suggestion) pair is unique
// and stays taken after a routine is deactivated.
type UserLifestyleRepository interface {
	Create(ctx context.Context, routine *domain.UserLifestyleRoutine) (primitive.ObjectID, error) // ErrConflict on duplicate pair
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.UserLifestyleRoutine, error)
	// ListActive returns active routines sorted by preferred time, then newest first.
	ListActive(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) ([]domain.UserLifestyleRoutine, error)
	Update(ctx context.Context, routine *domain.UserLifestyleRoutine) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
