package validation

import (
	"strings"
	"time"

	"alcyxob/wellness-app/internal/domain"
)

// RecipeInput is the body of POST /recipes.
type RecipeInput struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Image       string   `json:"image" validate:"omitempty,imageurl"`
	Video       string   `json:"video" validate:"omitempty,httpurl"`
	Tags        []string `json:"tags" validate:"omitempty,dive,notblank"`
	PrepTime    string   `json:"prepTime" validate:"notblank"`
	CookTime    string   `json:"cookTime" validate:"notblank"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,notblank"`
	Steps       []string `json:"steps" validate:"required,min=1,dive,notblank"`
}

// ToDomain builds a new recipe stamped with now.
func (in *RecipeInput) ToDomain(now time.Time) *domain.Recipe {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Recipe{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Video:       in.Video,
		Tags:        tags,
		PrepTime:    in.PrepTime,
		CookTime:    in.CookTime,
		Ingredients: in.Ingredients,
		Steps:       in.Steps,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Recipe validates a recipe payload.
func (v *Validator) Recipe(body []byte) (*RecipeInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	var in RecipeInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.PrepTime = strings.TrimSpace(in.PrepTime)
	in.CookTime = strings.TrimSpace(in.CookTime)
	in.Image = strings.TrimSpace(in.Image)
	in.Video = strings.TrimSpace(in.Video)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// YogaInput is the body of yoga create and full-replace update.
type YogaInput struct {
	Title            string   `json:"title" validate:"notblank,min=2,max=80"`
	Description      string   `json:"description" validate:"notblank"`
	Image            string   `json:"image" validate:"required,imageurl"`
	Duration         string   `json:"duration" validate:"notblank"`
	Type             string   `json:"type" validate:"omitempty,oneof=Yoga Meditation Workout"`
	Tags             []string `json:"tags" validate:"omitempty,dive,notblank"`
	YoutubeID        string   `json:"youtubeId" validate:"notblank"`
	Instructions     []string `json:"instructions" validate:"omitempty,min=1,dive,notblank"`
	Notes            *string  `json:"notes" validate:"omitnil,notblank"`
	IsPeriodFriendly *bool    `json:"isPeriodFriendly"`
}

// ToDomain builds a yoga entry stamped with now.
func (in *YogaInput) ToDomain(now time.Time) *domain.Yoga {
	y := &domain.Yoga{
		Title:        in.Title,
		Description:  in.Description,
		Image:        in.Image,
		Duration:     in.Duration,
		Type:         domain.YogaType(in.Type),
		Tags:         in.Tags,
		YoutubeID:    in.YoutubeID,
		Instructions: in.Instructions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Notes != nil {
		y.Notes = *in.Notes
	}
	if in.IsPeriodFriendly != nil {
		y.IsPeriodFriendly = *in.IsPeriodFriendly
	}
	return y
}

// Yoga validates a yoga/workout payload.
func (v *Validator) Yoga(body []byte) (*YogaInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	var in YogaInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}
