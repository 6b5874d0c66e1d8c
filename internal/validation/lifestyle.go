package validation

import (
	"strings"
	"time"

	"alcyxob/wellness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SuggestionInput is the body of lifestyle suggestion create and update.
// On update, nil fields are left unchanged.
type SuggestionInput struct {
	Title           *string `json:"title" validate:"omitnil,notblank,min=2,max=80"`
	Description     *string `json:"description" validate:"omitnil,notblank"`
	Image           *string `json:"image" validate:"omitnil,imageurl"`
	Repeat          *string `json:"repeat" validate:"omitnil,oneof=daily weekly twice_week thrice_week twice_day thrice_day morning evening night after_meal before_meal custom"`
	RecommendedTime *string `json:"recommendedTime"`
}

var suggestionFields = FieldsOf(SuggestionInput{})

// ToDomain builds a new suggestion; repeat defaults to daily.
func (in *SuggestionInput) ToDomain(now time.Time) *domain.LifestyleSuggestion {
	s := &domain.LifestyleSuggestion{Repeat: domain.RepeatDaily, CreatedAt: now, UpdatedAt: now}
	in.ApplyTo(s)
	return s
}

// ApplyTo copies the provided fields onto s.
func (in *SuggestionInput) ApplyTo(s *domain.LifestyleSuggestion) {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.Image != nil {
		s.Image = *in.Image
	}
	if in.Repeat != nil {
		s.Repeat = domain.Repeat(*in.Repeat)
	}
	if in.RecommendedTime != nil {
		s.RecommendedTime = *in.RecommendedTime
	}
}

// Suggestion validates a lifestyle suggestion payload. When partial is false
// title and description are required.
func (v *Validator) Suggestion(body []byte, partial bool) (*SuggestionInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	if err := p.OnlyKeys(suggestionFields, "lifestyle suggestion"); err != nil {
		return nil, err
	}
	var in SuggestionInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	trimPtr(in.Title)
	trimPtr(in.Description)
	trimPtr(in.Image)
	trimPtr(in.RecommendedTime)
	if !partial {
		if in.Title == nil {
			return nil, newError("title", "title is required")
		}
		if in.Description == nil {
			return nil, newError("description", "description is required")
		}
	} else if p.IsEmpty() {
		return nil, newError("", "No fields to update")
	}
	if in.Image != nil && *in.Image == "" {
		in.Image = nil
	}
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// RoutineInput is the body of POST /userLifestyle.
type RoutineInput struct {
	SuggestionID      string `json:"lifestyleSuggestionId" validate:"required,objectid"`
	Repeat            string `json:"repeat" validate:"required,oneof=daily weekly twice_week thrice_week twice_day thrice_day custom"`
	PreferredTime     string `json:"preferredTime" validate:"required,oneof=morning afternoon evening night anytime"`
	PreferredTimeSlot string `json:"preferredTimeSlot"`
	Duration          string `json:"duration" validate:"max=30"`
	ReminderEnabled   *bool  `json:"reminderEnabled"`
	IsActive          *bool  `json:"isActive"`
}

// ToDomain builds a routine for userID; the routine starts active.
func (in *RoutineInput) ToDomain(userID primitive.ObjectID, now time.Time) *domain.UserLifestyleRoutine {
	suggestionID, _ := primitive.ObjectIDFromHex(in.SuggestionID)
	r := &domain.UserLifestyleRoutine{
		UserID:            userID,
		SuggestionID:      suggestionID,
		Repeat:            domain.Repeat(in.Repeat),
		PreferredTime:     domain.PreferredTime(in.PreferredTime),
		PreferredTimeSlot: in.PreferredTimeSlot,
		Duration:          in.Duration,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if in.ReminderEnabled != nil {
		r.ReminderEnabled = *in.ReminderEnabled
	}
	return r
}

// Routine validates a routine creation payload.
func (v *Validator) Routine(body []byte) (*RoutineInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	var in RoutineInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	in.SuggestionID = strings.TrimSpace(in.SuggestionID)
	in.PreferredTimeSlot = strings.TrimSpace(in.PreferredTimeSlot)
	in.Duration = strings.TrimSpace(in.Duration)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// RoutinePatch is the body of PATCH /userLifestyle/:id.
type RoutinePatch struct {
	Repeat            *string `json:"repeat" validate:"omitnil,oneof=daily weekly twice_week thrice_week twice_day thrice_day custom"`
	PreferredTime     *string `json:"preferredTime" validate:"omitnil,oneof=morning afternoon evening night anytime"`
	PreferredTimeSlot *string `json:"preferredTimeSlot"`
	Duration          *string `json:"duration" validate:"omitnil,max=30"`
	IsActive          *bool   `json:"isActive"`
	ReminderEnabled   *bool   `json:"reminderEnabled"`
}

var routinePatchFields = FieldsOf(RoutinePatch{})

// ApplyTo copies the provided fields onto r.
func (in *RoutinePatch) ApplyTo(r *domain.UserLifestyleRoutine) {
	if in.Repeat != nil {
		r.Repeat = domain.Repeat(*in.Repeat)
	}
	if in.PreferredTime != nil {
		r.PreferredTime = domain.PreferredTime(*in.PreferredTime)
	}
	if in.PreferredTimeSlot != nil {
		r.PreferredTimeSlot = *in.PreferredTimeSlot
	}
	if in.Duration != nil {
		r.Duration = *in.Duration
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if in.ReminderEnabled != nil {
		r.ReminderEnabled = *in.ReminderEnabled
	}
}

// RoutinePatch validates a routine update payload.
func (v *Validator) RoutinePatch(body []byte) (*RoutinePatch, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	if err := p.OnlyKeys(routinePatchFields, "routine"); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, newError("", "No fields to update")
	}
	var in RoutinePatch
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	trimPtr(in.PreferredTimeSlot)
	trimPtr(in.Duration)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
