package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPhotoURL is the avatar assigned when a user or progress entry has no photo of its own.
const DefaultPhotoURL = "https://cdn-icons-png.flaticon.com/512/149/149071.png"

// ResetPlan tracks when the user (re)started the day-numbered plan.
type ResetPlan struct {
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
}

// User represents an account holder. Body measurements and weight live in
// Progress entries, not on the user document.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	EmailID      string             `bson:"emailId" json:"emailId"` // Unique, stored lowercase
	PasswordHash string             `bson:"password" json:"-"`      // Never expose this via JSON
	DOB          string             `bson:"dob" json:"dob"`
	PhotoURL     string             `bson:"photoUrl" json:"photoUrl"`
	Height       *float64           `bson:"height,omitempty" json:"height,omitempty"` // cm
	ResetPlan    ResetPlan          `bson:"resetPlan" json:"resetPlan"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
