// Package memory keeps every repository in process memory. It backs the
// "memory" database driver for local runs and the service and API tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"alcyxob/wellness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds the collections shared by the in-memory repositories.
type Store struct {
	mu          sync.RWMutex
	users       map[primitive.ObjectID]domain.User
	progress    map[primitive.ObjectID]domain.Progress
	recipes     map[primitive.ObjectID]domain.Recipe
	yoga        map[primitive.ObjectID]domain.Yoga
	plans       map[primitive.ObjectID]domain.DailyPlan
	suggestions map[primitive.ObjectID]domain.LifestyleSuggestion
	routines    map[primitive.ObjectID]domain.UserLifestyleRoutine
	now         func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:       map[primitive.ObjectID]domain.User{},
		progress:    map[primitive.ObjectID]domain.Progress{},
		recipes:     map[primitive.ObjectID]domain.Recipe{},
		yoga:        map[primitive.ObjectID]domain.Yoga{},
		plans:       map[primitive.ObjectID]domain.DailyPlan{},
		suggestions: map[primitive.ObjectID]domain.LifestyleSuggestion{},
		routines:    map[primitive.ObjectID]domain.UserLifestyleRoutine{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// values returns the map's values sorted by less.
func values[T any](m map[primitive.ObjectID]T, less func(a, b T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// paginate applies a skip/limit window.
func paginate[T any](items []T, page domain.PageRequest) []T {
	skip := page.Skip()
	if skip < 0 || skip >= len(items) {
		return []T{}
	}
	end := skip + page.Limit
	if page.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// idLess orders by ObjectID, i.e. by insertion time.
func idLess(a, b primitive.ObjectID) bool {
	return a.Hex() < b.Hex()
}
