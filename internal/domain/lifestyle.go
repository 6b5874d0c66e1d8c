package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repeat is how often a lifestyle habit recurs.
type Repeat string

const (
	RepeatDaily      Repeat = "daily"
	RepeatWeekly     Repeat = "weekly"
	RepeatTwiceWeek  Repeat = "twice_week"
	RepeatThriceWeek Repeat = "thrice_week"
	RepeatTwiceDay   Repeat = "twice_day"
	RepeatThriceDay  Repeat = "thrice_day"
	RepeatMorning    Repeat = "morning"
	RepeatEvening    Repeat = "evening"
	RepeatNight      Repeat = "night"
	RepeatAfterMeal  Repeat = "after_meal"
	RepeatBeforeMeal Repeat = "before_meal"
	RepeatCustom     Repeat = "custom"
)

// PreferredTime is the user's comfortable part of the day for a routine.
type PreferredTime string

const (
	PreferredMorning   PreferredTime = "morning"
	PreferredAfternoon PreferredTime = "afternoon"
	PreferredEvening   PreferredTime = "evening"
	PreferredNight     PreferredTime = "night"
	PreferredAnytime   PreferredTime = "anytime"
)

// LifestyleSuggestion is a catalog habit users can adopt.
type LifestyleSuggestion struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Repeat          Repeat             `bson:"repeat" json:"repeat"`
	RecommendedTime string             `bson:"recommendedTime,omitempty" json:"recommendedTime,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserLifestyleRoutine is a user's adopted instance of a suggestion.
// The (UserID, SuggestionID) pair is unique; deactivated routines keep the pair taken.
type UserLifestyleRoutine struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	SuggestionID      primitive.ObjectID `bson:"lifestyleSuggestionId" json:"lifestyleSuggestionId"`
	Repeat            Repeat             `bson:"repeat" json:"repeat"`
	PreferredTime     PreferredTime      `bson:"preferredTime" json:"preferredTime"`
	PreferredTimeSlot string             `bson:"preferredTimeSlot,omitempty" json:"preferredTimeSlot,omitempty"` // e.g. "07:30"
	Duration          string             `bson:"duration,omitempty" json:"duration,omitempty"`
	IsActive          bool               `bson:"isActive" json:"isActive"`
	ReminderEnabled   bool               `bson:"reminderEnabled" json:"reminderEnabled"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoutineWithSuggestion is a routine with its suggestion populated.
type RoutineWithSuggestion struct {
	UserLifestyleRoutine `bson:",inline"`
	Suggestion           *LifestyleSuggestion `bson:"-" json:"lifestyleSuggestion"`
}
