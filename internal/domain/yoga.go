package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// YogaType classifies a catalog video.
type YogaType string

const (
	YogaTypeYoga       YogaType = "Yoga"
	YogaTypeMeditation YogaType = "Meditation"
	YogaTypeWorkout    YogaType = "Workout"
)

// Yoga is a workout or meditation video in the catalog.
type Yoga struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	Image            string             `bson:"image" json:"image"`
	Duration         string             `bson:"duration" json:"duration"` // Free text, e.g. "20 mins"
	Type             YogaType           `bson:"type,omitempty" json:"type,omitempty"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	YoutubeID        string             `bson:"youtubeId" json:"youtubeId"`
	Instructions     []string           `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsPeriodFriendly bool               `bson:"isPeriodFriendly" json:"isPeriodFriendly"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// YogaSummary is the projection embedded when a daily plan is populated.
type YogaSummary struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Duration         string             `bson:"duration" json:"duration"`
	Image            string             `bson:"image" json:"image"`
	YoutubeID        string             `bson:"youtubeId" json:"youtubeId"`
	IsPeriodFriendly bool               `bson:"isPeriodFriendly" json:"isPeriodFriendly"`
}

// Summary projects the video down to the populated fields.
func (y *Yoga) Summary() YogaSummary {
	return YogaSummary{
		ID:               y.ID,
		Title:            y.Title,
		Duration:         y.Duration,
		Image:            y.Image,
		YoutubeID:        y.YoutubeID,
		IsPeriodFriendly: y.IsPeriodFriendly,
	}
}
