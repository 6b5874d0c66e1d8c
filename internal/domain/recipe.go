package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe is a catalog entry referenced by daily plan meal items.
type Recipe struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Video       string             `bson:"video,omitempty" json:"video,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	PrepTime    string             `bson:"prepTime" json:"prepTime"`
	CookTime    string             `bson:"cookTime" json:"cookTime"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	Steps       []string           `bson:"steps" json:"steps"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecipeSummary is the projection embedded when a daily plan is populated.
type RecipeSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Summary projects the recipe down to the populated fields.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{ID: r.ID, Title: r.Title, Image: r.Image}
}
