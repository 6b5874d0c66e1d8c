package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LifestyleService manages the lifestyle suggestion catalog and the routines users adopt from it.
type LifestyleService interface {
	CreateSuggestion(ctx context.Context, in *validation.SuggestionInput) (*domain.LifestyleSuggestion, error)
	ListSuggestions(ctx context.Context, page domain.PageRequest) (*Page[domain.LifestyleSuggestion], error)
	GetSuggestion(ctx context.Context, id string) (*domain.LifestyleSuggestion, error)
	UpdateSuggestion(ctx context.Context, id string, in *validation.SuggestionInput) (*domain.LifestyleSuggestion, error)
	DeleteSuggestion(ctx context.Context, id string) (*domain.LifestyleSuggestion, error)

	AddRoutine(ctx context.Context, userID primitive.ObjectID, in *validation.RoutineInput) (*domain.UserLifestyleRoutine, error)
	// ListRoutines returns the user's active routines with their suggestions.
	ListRoutines(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) ([]domain.RoutineWithSuggestion, error)
	UpdateRoutine(ctx context.Context, userID primitive.ObjectID, id string, in *validation.RoutinePatch) (*domain.UserLifestyleRoutine, error)
	// RemoveRoutine deactivates a routine. The record is kept, so the same
	// suggestion cannot be added again.
	RemoveRoutine(ctx context.Context, userID primitive.ObjectID, id string) (*domain.UserLifestyleRoutine, error)
}

type lifestyleService struct {
	suggestionRepo repository.LifestyleSuggestionRepository
	routineRepo    repository.UserLifestyleRepository
	now            func() time.Time
}

// NewLifestyleService creates a new LifestyleService.
func NewLifestyleService(suggestionRepo repository.LifestyleSuggestionRepository, routineRepo repository.UserLifestyleRepository) LifestyleService {
	return &lifestyleService{
		suggestionRepo: suggestionRepo,
		routineRepo:    routineRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// --- Suggestions ---

func (s *lifestyleService) CreateSuggestion(ctx context.Context, in *validation.SuggestionInput) (*domain.LifestyleSuggestion, error) {
	suggestion := in.ToDomain(s.now())
	id, err := s.suggestionRepo.Create(ctx, suggestion)
	if err != nil {
		return nil, err
	}
	suggestion.ID = id
	return suggestion, nil
}

func (s *lifestyleService) ListSuggestions(ctx context.Context, page domain.PageRequest) (*Page[domain.LifestyleSuggestion], error) {
	items, total, err := s.suggestionRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, page), nil
}

func (s *lifestyleService) GetSuggestion(ctx context.Context, id string) (*domain.LifestyleSuggestion, error) {
	suggestionID, err := parseID(id, "suggestion")
	if err != nil {
		return nil, err
	}
	suggestion, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Suggestion not found")
	}
	return suggestion, err
}

func (s *lifestyleService) UpdateSuggestion(ctx context.Context, id string, in *validation.SuggestionInput) (*domain.LifestyleSuggestion, error) {
	suggestion, err := s.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(suggestion)
	if err := s.suggestionRepo.Update(ctx, suggestion); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Suggestion not found")
		}
		return nil, err
	}
	return suggestion, nil
}

func (s *lifestyleService) DeleteSuggestion(ctx context.Context, id string) (*domain.LifestyleSuggestion, error) {
	suggestion, err := s.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.suggestionRepo.Delete(ctx, suggestion.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Suggestion not found")
		}
		return nil, err
	}
	return suggestion, nil
}

// --- User routines ---

func (s *lifestyleService) AddRoutine(ctx context.Context, userID primitive.ObjectID, in *validation.RoutineInput) (*domain.UserLifestyleRoutine, error) {
	routine := in.ToDomain(userID, s.now())

	// The suggestion must exist
	if _, err := s.suggestionRepo.GetByID(ctx, routine.SuggestionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Lifestyle suggestion not found")
		}
		return nil, err
	}

	id, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflict("This routine already exists for the user")
		}
		return nil, err
	}
	routine.ID = id
	return routine, nil
}

func (s *lifestyleService) ListRoutines(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) ([]domain.RoutineWithSuggestion, error) {
	routines, err := s.routineRepo.ListActive(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(routines))
	for _, r := range routines {
		ids = append(ids, r.SuggestionID)
	}
	suggestions := map[primitive.ObjectID]domain.LifestyleSuggestion{}
	if len(ids) > 0 {
		if suggestions, err = s.suggestionRepo.GetByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	out := make([]domain.RoutineWithSuggestion, 0, len(routines))
	for _, r := range routines {
		item := domain.RoutineWithSuggestion{UserLifestyleRoutine: r}
		if suggestion, ok := suggestions[r.SuggestionID]; ok {
			item.Suggestion = &suggestion
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *lifestyleService) UpdateRoutine(ctx context.Context, userID primitive.ObjectID, id string, in *validation.RoutinePatch) (*domain.UserLifestyleRoutine, error) {
	routine, err := s.getRoutine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	in.ApplyTo(routine)
	if err := s.routineRepo.Update(ctx, routine); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Routine not found")
		}
		return nil, err
	}
	return routine, nil
}

func (s *lifestyleService) RemoveRoutine(ctx context.Context, userID primitive.ObjectID, id string) (*domain.UserLifestyleRoutine, error) {
	routine, err := s.getRoutine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	routine.IsActive = false
	if err := s.routineRepo.Update(ctx, routine); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Routine not found")
		}
		return nil, err
	}
	return routine, nil
}

func (s *lifestyleService) getRoutine(ctx context.Context, userID primitive.ObjectID, id string) (*domain.UserLifestyleRoutine, error) {
	routineID, err := parseID(id, "routine")
	if err != nil {
		return nil, err
	}
	routine, err := s.routineRepo.GetByID(ctx, routineID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Routine not found")
	}
	return routine, err
}
