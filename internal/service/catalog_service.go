package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/validation"
)

// RecipeService manages the recipe catalog.
type RecipeService interface {
	Create(ctx context.Context, in *validation.RecipeInput) (*domain.Recipe, error)
	List(ctx context.Context, page domain.PageRequest) (*Page[domain.Recipe], error)
	// Search matches query case-insensitively against titles and tags.
	Search(ctx context.Context, query string, page domain.PageRequest) (*Page[domain.Recipe], error)
	Get(ctx context.Context, id string) (*domain.Recipe, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	now        func() time.Time
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(recipeRepo repository.RecipeRepository) RecipeService {
	return &recipeService{recipeRepo: recipeRepo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *recipeService) Create(ctx context.Context, in *validation.RecipeInput) (*domain.Recipe, error) {
	recipe := in.ToDomain(s.now())
	id, err := s.recipeRepo.Create(ctx, recipe)
	if err != nil {
		return nil, err
	}
	recipe.ID = id
	return recipe, nil
}

func (s *recipeService) List(ctx context.Context, page domain.PageRequest) (*Page[domain.Recipe], error) {
	items, total, err := s.recipeRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, page), nil
}

func (s *recipeService) Search(ctx context.Context, query string, page domain.PageRequest) (*Page[domain.Recipe], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &validation.Error{Field: "query", Message: "Search query is required"}
	}
	items, total, err := s.recipeRepo.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, page), nil
}

func (s *recipeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	recipeID, err := parseID(id, "recipe")
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Recipe not found")
	}
	return recipe, err
}

// YogaService manages the yoga, meditation and workout video catalog.
type YogaService interface {
	Create(ctx context.Context, in *validation.YogaInput) (*domain.Yoga, error)
	List(ctx context.Context, page domain.PageRequest) (*Page[domain.Yoga], error)
	Get(ctx context.Context, id string) (*domain.Yoga, error)
	// Update replaces every field of the video.
	Update(ctx context.Context, id string, in *validation.YogaInput) (*domain.Yoga, error)
	Delete(ctx context.Context, id string) (*domain.Yoga, error)
}

type yogaService struct {
	yogaRepo repository.YogaRepository
	now      func() time.Time
}

// NewYogaService creates a new YogaService.
func NewYogaService(yogaRepo repository.YogaRepository) YogaService {
	return &yogaService{yogaRepo: yogaRepo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *yogaService) Create(ctx context.Context, in *validation.YogaInput) (*domain.Yoga, error) {
	yoga := in.ToDomain(s.now())
	id, err := s.yogaRepo.Create(ctx, yoga)
	if err != nil {
		return nil, err
	}
	yoga.ID = id
	return yoga, nil
}

func (s *yogaService) List(ctx context.Context, page domain.PageRequest) (*Page[domain.Yoga], error) {
	items, total, err := s.yogaRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, page), nil
}

func (s *yogaService) Get(ctx context.Context, id string) (*domain.Yoga, error) {
	yogaID, err := parseID(id, "yoga")
	if err != nil {
		return nil, err
	}
	yoga, err := s.yogaRepo.GetByID(ctx, yogaID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Yoga not found")
	}
	return yoga, err
}

func (s *yogaService) Update(ctx context.Context, id string, in *validation.YogaInput) (*domain.Yoga, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	yoga := in.ToDomain(s.now())
	yoga.ID = existing.ID
	yoga.CreatedAt = existing.CreatedAt
	if err := s.yogaRepo.Update(ctx, yoga); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Yoga not found")
		}
		return nil, err
	}
	return yoga, nil
}

func (s *yogaService) Delete(ctx context.Context, id string) (*domain.Yoga, error) {
	yoga, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.yogaRepo.Delete(ctx, yoga.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Yoga not found")
		}
		return nil, err
	}
	return yoga, nil
}
