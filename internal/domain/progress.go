package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurements is the six-field body measurement set, all in cm.
// A nil field means "not recorded".
type Measurements struct {
	Chest *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hip   *float64 `bson:"hip,omitempty" json:"hip,omitempty"`
	Thigh *float64 `bson:"thigh,omitempty" json:"thigh,omitempty"`
	Arm   *float64 `bson:"arm,omitempty" json:"arm,omitempty"`
	Neck  *float64 `bson:"neck,omitempty" json:"neck,omitempty"`
}

// Merge copies every field that is set in patch onto m, leaving the rest untouched.
func (m *Measurements) Merge(patch Measurements) {
	if patch.Chest != nil {
		m.Chest = patch.Chest
	}
	if patch.Waist != nil {
		m.Waist = patch.Waist
	}
	if patch.Hip != nil {
		m.Hip = patch.Hip
	}
	if patch.Thigh != nil {
		m.Thigh = patch.Thigh
	}
	if patch.Arm != nil {
		m.Arm = patch.Arm
	}
	if patch.Neck != nil {
		m.Neck = patch.Neck
	}
}

// IsEmpty reports whether no measurement is recorded.
func (m Measurements) IsEmpty() bool {
	return m.Chest == nil && m.Waist == nil && m.Hip == nil &&
		m.Thigh == nil && m.Arm == nil && m.Neck == nil
}

// Progress is a dated snapshot of a user's weight, measurements and optional photo.
type Progress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	Date         time.Time          `bson:"date" json:"date"`
	PhotoURL     *string            `bson:"photoUrl" json:"photoUrl"` // Nullable: entries without a photo are excluded from the visual journey
	Weight       *float64           `bson:"weight" json:"weight"`     // kg
	Measurements Measurements       `bson:"measurements" json:"measurements"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasPhoto reports whether the entry references a photo.
func (p *Progress) HasPhoto() bool {
	return p.PhotoURL != nil && *p.PhotoURL != ""
}
