package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyPlanService manages day-numbered plans and resolves their recipe and video references.
type DailyPlanService interface {
	Create(ctx context.Context, in *validation.DailyPlanInput) (*domain.PopulatedDailyPlan, error)
	List(ctx context.Context, page domain.PageRequest) (*Page[domain.PopulatedDailyPlan], error)
	GetByDay(ctx context.Context, day int) (*domain.PopulatedDailyPlan, error)
	// Replace overwrites meals, workouts and quote of the plan for in.Day.
	Replace(ctx context.Context, in *validation.DailyPlanInput) (*domain.PopulatedDailyPlan, error)
	// Delete removes a plan addressed by its id or its day number.
	Delete(ctx context.Context, ref string) (*domain.DailyPlan, error)
}

type dailyPlanService struct {
	planRepo   repository.DailyPlanRepository
	recipeRepo repository.RecipeRepository
	yogaRepo   repository.YogaRepository
	now        func() time.Time
}

// NewDailyPlanService creates a new DailyPlanService.
func NewDailyPlanService(planRepo repository.DailyPlanRepository, recipeRepo repository.RecipeRepository, yogaRepo repository.YogaRepository) DailyPlanService {
	return &dailyPlanService{
		planRepo:   planRepo,
		recipeRepo: recipeRepo,
		yogaRepo:   yogaRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *dailyPlanService) Create(ctx context.Context, in *validation.DailyPlanInput) (*domain.PopulatedDailyPlan, error) {
	plan := in.ToDomain(s.now())
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflict("Daily plan for day %d already exists", plan.Day)
		}
		return nil, err
	}
	plan.ID = id
	return s.populateOne(ctx, plan)
}

func (s *dailyPlanService) List(ctx context.Context, page domain.PageRequest) (*Page[domain.PopulatedDailyPlan], error) {
	plans, total, err := s.planRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	populated, err := s.populate(ctx, plans...)
	if err != nil {
		return nil, err
	}
	return newPage(populated, total, page), nil
}

func (s *dailyPlanService) GetByDay(ctx context.Context, day int) (*domain.PopulatedDailyPlan, error) {
	plan, err := s.planRepo.GetByDay(ctx, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Daily plan not found for this day")
		}
		return nil, err
	}
	return s.populateOne(ctx, plan)
}

func (s *dailyPlanService) Replace(ctx context.Context, in *validation.DailyPlanInput) (*domain.PopulatedDailyPlan, error) {
	existing, err := s.planRepo.GetByDay(ctx, in.Day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Daily plan for day %d not found", in.Day)
		}
		return nil, err
	}
	plan := in.ToDomain(s.now())
	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	if err := s.planRepo.Update(ctx, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("Daily plan for day %d not found", in.Day)
		case errors.Is(err, repository.ErrConflict):
			return nil, conflict("Daily plan for day %d already exists", plan.Day)
		}
		return nil, err
	}
	return s.populateOne(ctx, plan)
}

func (s *dailyPlanService) Delete(ctx context.Context, ref string) (*domain.DailyPlan, error) {
	ref = strings.TrimSpace(ref)
	var (
		plan *domain.DailyPlan
		err  error
	)
	if primitive.IsValidObjectID(ref) {
		id, _ := primitive.ObjectIDFromHex(ref)
		plan, err = s.planRepo.GetByID(ctx, id)
	} else {
		day, dayErr := validation.ParseDay(ref)
		if dayErr != nil {
			return nil, newError(ErrInvalidID, "Invalid daily plan ID or day")
		}
		plan, err = s.planRepo.GetByDay(ctx, day)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Daily plan not found")
		}
		return nil, err
	}
	if err := s.planRepo.Delete(ctx, plan.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Daily plan not found")
		}
		return nil, err
	}
	return plan, nil
}

func (s *dailyPlanService) populateOne(ctx context.Context, plan *domain.DailyPlan) (*domain.PopulatedDailyPlan, error) {
	populated, err := s.populate(ctx, *plan)
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// populate resolves the references of all plans with one lookup per catalog.
func (s *dailyPlanService) populate(ctx context.Context, plans ...domain.DailyPlan) ([]domain.PopulatedDailyPlan, error) {
	var recipeIDs, videoIDs []primitive.ObjectID
	for i := range plans {
		recipeIDs = append(recipeIDs, plans[i].RecipeIDs()...)
		videoIDs = append(videoIDs, plans[i].WorkoutIDs()...)
	}

	recipes := map[primitive.ObjectID]domain.RecipeSummary{}
	if len(recipeIDs) > 0 {
		var err error
		if recipes, err = s.recipeRepo.GetSummaries(ctx, recipeIDs); err != nil {
			return nil, err
		}
	}
	videos := map[primitive.ObjectID]domain.YogaSummary{}
	if len(videoIDs) > 0 {
		var err error
		if videos, err = s.yogaRepo.GetSummaries(ctx, videoIDs); err != nil {
			return nil, err
		}
	}

	out := make([]domain.PopulatedDailyPlan, 0, len(plans))
	for i := range plans {
		out = append(out, plans[i].Populate(recipes, videos))
	}
	return out, nil
}
