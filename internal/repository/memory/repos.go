package memory

import (
	"context"
	"regexp"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Users ---

type userRepository struct{ s *Store }

// NewUserRepository returns a repository.UserRepository over s.
func NewUserRepository(s *Store) repository.UserRepository { return &userRepository{s} }

func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.EmailID == user.EmailID {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	now := r.s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.EmailID == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.EmailID == user.EmailID {
			return repository.ErrConflict
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// --- Progress ---

type progressRepository struct{ s *Store }

// NewProgressRepository returns a repository.ProgressRepository over s.
func NewProgressRepository(s *Store) repository.ProgressRepository { return &progressRepository{s} }

func (r *progressRepository) Create(_ context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	progress.ID = primitive.NewObjectID()
	now := r.s.now()
	progress.CreatedAt = now
	progress.UpdatedAt = now
	r.s.progress[progress.ID] = *progress
	return progress.ID, nil
}

func (r *progressRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Progress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.progress[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *progressRepository) byUser(userID primitive.ObjectID, photosOnly bool) []domain.Progress {
	all := values(r.s.progress, func(a, b domain.Progress) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	out := make([]domain.Progress, 0, len(all))
	for _, p := range all {
		if p.UserID != userID || (photosOnly && !p.HasPhoto()) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *progressRepository) List(_ context.Context, userID primitive.ObjectID, photosOnly bool, page domain.PageRequest) ([]domain.Progress, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.byUser(userID, photosOnly)
	return paginate(all, page), int64(len(all)), nil
}

func (r *progressRepository) Latest(_ context.Context, userID primitive.ObjectID) (*domain.Progress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.byUser(userID, false)
	if len(all) == 0 {
		return nil, repository.ErrNotFound
	}
	return &all[0], nil
}

func (r *progressRepository) ListAllByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.byUser(userID, false), nil
}

func (r *progressRepository) Update(_ context.Context, progress *domain.Progress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.progress[progress.ID]
	if !ok || existing.UserID != progress.UserID {
		return repository.ErrNotFound
	}
	progress.CreatedAt = existing.CreatedAt
	progress.UpdatedAt = r.s.now()
	r.s.progress[progress.ID] = *progress
	return nil
}

func (r *progressRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.progress[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.s.progress, id)
	return nil
}

func (r *progressRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, p := range r.s.progress {
		if p.UserID == userID {
			delete(r.s.progress, id)
			n++
		}
	}
	return n, nil
}

// --- Recipes ---

type recipeRepository struct{ s *Store }

// NewRecipeRepository returns a repository.RecipeRepository over s.
func NewRecipeRepository(s *Store) repository.RecipeRepository { return &recipeRepository{s} }

func (r *recipeRepository) Create(_ context.Context, recipe *domain.Recipe) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	recipe.ID = primitive.NewObjectID()
	now := r.s.now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	r.s.recipes[recipe.ID] = *recipe
	return recipe.ID, nil
}

func (r *recipeRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Recipe, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	recipe, ok := r.s.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &recipe, nil
}

func (r *recipeRepository) newestFirst() []domain.Recipe {
	return values(r.s.recipes, func(a, b domain.Recipe) bool { return idLess(b.ID, a.ID) })
}

func (r *recipeRepository) List(_ context.Context, page domain.PageRequest) ([]domain.Recipe, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.newestFirst()
	return paginate(all, page), int64(len(all)), nil
}

func (r *recipeRepository) Search(_ context.Context, query string, page domain.PageRequest) ([]domain.Recipe, int64, error) {
	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matches []domain.Recipe
	for _, recipe := range r.newestFirst() {
		if pattern.MatchString(recipe.Title) || matchesAny(pattern, recipe.Tags) {
			matches = append(matches, recipe)
		}
	}
	return paginate(matches, page), int64(len(matches)), nil
}

func matchesAny(pattern *regexp.Regexp, values []string) bool {
	for _, v := range values {
		if pattern.MatchString(v) {
			return true
		}
	}
	return false
}

func (r *recipeRepository) GetSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.RecipeSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[primitive.ObjectID]domain.RecipeSummary, len(ids))
	for _, id := range ids {
		if recipe, ok := r.s.recipes[id]; ok {
			out[id] = recipe.Summary()
		}
	}
	return out, nil
}

// --- Yoga ---

type yogaRepository struct{ s *Store }

// NewYogaRepository returns a repository.YogaRepository over s.
func NewYogaRepository(s *Store) repository.YogaRepository { return &yogaRepository{s} }

func (r *yogaRepository) Create(_ context.Context, yoga *domain.Yoga) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	yoga.ID = primitive.NewObjectID()
	now := r.s.now()
	yoga.CreatedAt = now
	yoga.UpdatedAt = now
	r.s.yoga[yoga.ID] = *yoga
	return yoga.ID, nil
}

func (r *yogaRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Yoga, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	y, ok := r.s.yoga[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &y, nil
}

func (r *yogaRepository) List(_ context.Context, page domain.PageRequest) ([]domain.Yoga, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := values(r.s.yoga, func(a, b domain.Yoga) bool { return idLess(b.ID, a.ID) })
	return paginate(all, page), int64(len(all)), nil
}

func (r *yogaRepository) Update(_ context.Context, yoga *domain.Yoga) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.yoga[yoga.ID]
	if !ok {
		return repository.ErrNotFound
	}
	yoga.CreatedAt = existing.CreatedAt
	yoga.UpdatedAt = r.s.now()
	r.s.yoga[yoga.ID] = *yoga
	return nil
}

func (r *yogaRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.yoga[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.yoga, id)
	return nil
}

func (r *yogaRepository) GetSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.YogaSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[primitive.ObjectID]domain.YogaSummary, len(ids))
	for _, id := range ids {
		if y, ok := r.s.yoga[id]; ok {
			out[id] = y.Summary()
		}
	}
	return out, nil
}

// --- Daily plans ---

type dailyPlanRepository struct{ s *Store }

// NewDailyPlanRepository returns a repository.DailyPlanRepository over s.
func NewDailyPlanRepository(s *Store) repository.DailyPlanRepository { return &dailyPlanRepository{s} }

func (r *dailyPlanRepository) dayTaken(day int, except primitive.ObjectID) bool {
	for id, p := range r.s.plans {
		if id != except && p.Day == day {
			return true
		}
	}
	return false
}

func (r *dailyPlanRepository) Create(_ context.Context, plan *domain.DailyPlan) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.dayTaken(plan.Day, primitive.NilObjectID) {
		return primitive.NilObjectID, repository.ErrConflict
	}
	plan.ID = primitive.NewObjectID()
	now := r.s.now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.s.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *dailyPlanRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DailyPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *dailyPlanRepository) GetByDay(_ context.Context, day int) (*domain.DailyPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.plans {
		if p.Day == day {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *dailyPlanRepository) List(_ context.Context, page domain.PageRequest) ([]domain.DailyPlan, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := values(r.s.plans, func(a, b domain.DailyPlan) bool { return a.Day < b.Day })
	return paginate(all, page), int64(len(all)), nil
}

func (r *dailyPlanRepository) Update(_ context.Context, plan *domain.DailyPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.plans[plan.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.dayTaken(plan.Day, plan.ID) {
		return repository.ErrConflict
	}
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = r.s.now()
	r.s.plans[plan.ID] = *plan
	return nil
}

func (r *dailyPlanRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.plans, id)
	return nil
}

// --- Lifestyle suggestions ---

type suggestionRepository struct{ s *Store }

// NewLifestyleSuggestionRepository returns a repository.LifestyleSuggestionRepository over s.
func NewLifestyleSuggestionRepository(s *Store) repository.LifestyleSuggestionRepository {
	return &suggestionRepository{s}
}

func (r *suggestionRepository) Create(_ context.Context, suggestion *domain.LifestyleSuggestion) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	suggestion.ID = primitive.NewObjectID()
	now := r.s.now()
	suggestion.CreatedAt = now
	suggestion.UpdatedAt = now
	r.s.suggestions[suggestion.ID] = *suggestion
	return suggestion.ID, nil
}

func (r *suggestionRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.LifestyleSuggestion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.suggestions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *suggestionRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.LifestyleSuggestion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[primitive.ObjectID]domain.LifestyleSuggestion, len(ids))
	for _, id := range ids {
		if s, ok := r.s.suggestions[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (r *suggestionRepository) List(_ context.Context, page domain.PageRequest) ([]domain.LifestyleSuggestion, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := values(r.s.suggestions, func(a, b domain.LifestyleSuggestion) bool { return idLess(a.ID, b.ID) })
	return paginate(all, page), int64(len(all)), nil
}

func (r *suggestionRepository) Update(_ context.Context, suggestion *domain.LifestyleSuggestion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.suggestions[suggestion.ID]
	if !ok {
		return repository.ErrNotFound
	}
	suggestion.CreatedAt = existing.CreatedAt
	suggestion.UpdatedAt = r.s.now()
	r.s.suggestions[suggestion.ID] = *suggestion
	return nil
}

func (r *suggestionRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suggestions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.suggestions, id)
	return nil
}

// --- User lifestyle routines ---

type userLifestyleRepository struct{ s *Store }

// NewUserLifestyleRepository returns a repository.UserLifestyleRepository over s.
func NewUserLifestyleRepository(s *Store) repository.UserLifestyleRepository {
	return &userLifestyleRepository{s}
}

func (r *userLifestyleRepository) Create(_ context.Context, routine *domain.UserLifestyleRoutine) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.routines {
		if existing.UserID == routine.UserID && existing.SuggestionID == routine.SuggestionID {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	routine.ID = primitive.NewObjectID()
	now := r.s.now()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	r.s.routines[routine.ID] = *routine
	return routine.ID, nil
}

func (r *userLifestyleRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.UserLifestyleRoutine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	routine, ok := r.s.routines[id]
	if !ok || routine.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &routine, nil
}

func (r *userLifestyleRepository) ListActive(_ context.Context, userID primitive.ObjectID, page domain.PageRequest) ([]domain.UserLifestyleRoutine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := values(r.s.routines, func(a, b domain.UserLifestyleRoutine) bool {
		if a.PreferredTime != b.PreferredTime {
			return a.PreferredTime < b.PreferredTime
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return idLess(b.ID, a.ID)
	})
	active := make([]domain.UserLifestyleRoutine, 0, len(all))
	for _, routine := range all {
		if routine.UserID == userID && routine.IsActive {
			active = append(active, routine)
		}
	}
	return paginate(active, page), nil
}

func (r *userLifestyleRepository) Update(_ context.Context, routine *domain.UserLifestyleRoutine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.routines[routine.ID]
	if !ok || existing.UserID != routine.UserID {
		return repository.ErrNotFound
	}
	routine.CreatedAt = existing.CreatedAt
	routine.UpdatedAt = r.s.now()
	r.s.routines[routine.ID] = *routine
	return nil
}

func (r *userLifestyleRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, routine := range r.s.routines {
		if routine.UserID == userID {
			delete(r.s.routines, id)
			n++
		}
	}
	return n, nil
}
