package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealBuckets lists the time-of-day buckets of a daily plan, in display order.
var MealBuckets = []string{
	"emptyStomach",
	"breakfast",
	"midMorning",
	"lunch",
	"evening",
	"dinner",
	"beforeBed",
}

// MealItem is one suggested meal inside a bucket.
type MealItem struct {
	Title            string               `bson:"title" json:"title"`
	Recipes          []primitive.ObjectID `bson:"recipes" json:"recipes"`
	AlternateRecipes []primitive.ObjectID `bson:"alternateRecipes" json:"alternateRecipes"`
	Notes            string               `bson:"notes" json:"notes"`
}

// Meals groups meal items by time of day.
type Meals struct {
	EmptyStomach []MealItem `bson:"emptyStomach" json:"emptyStomach"`
	Breakfast    []MealItem `bson:"breakfast" json:"breakfast"`
	MidMorning   []MealItem `bson:"midMorning" json:"midMorning"`
	Lunch        []MealItem `bson:"lunch" json:"lunch"`
	Evening      []MealItem `bson:"evening" json:"evening"`
	Dinner       []MealItem `bson:"dinner" json:"dinner"`
	BeforeBed    []MealItem `bson:"beforeBed" json:"beforeBed"`
}

// Buckets returns pointers to every bucket keyed by its JSON name.
func (m *Meals) Buckets() map[string]*[]MealItem {
	return map[string]*[]MealItem{
		"emptyStomach": &m.EmptyStomach,
		"breakfast":    &m.Breakfast,
		"midMorning":   &m.MidMorning,
		"lunch":        &m.Lunch,
		"evening":      &m.Evening,
		"dinner":       &m.Dinner,
		"beforeBed":    &m.BeforeBed,
	}
}

// Normalize replaces nil buckets and reference lists with empty slices so
// documents and responses always carry arrays.
func (m *Meals) Normalize() {
	for _, bucket := range m.Buckets() {
		if *bucket == nil {
			*bucket = []MealItem{}
		}
		for i := range *bucket {
			item := &(*bucket)[i]
			if item.Recipes == nil {
				item.Recipes = []primitive.ObjectID{}
			}
			if item.AlternateRecipes == nil {
				item.AlternateRecipes = []primitive.ObjectID{}
			}
		}
	}
}

// SubVideo is one segment of a workout block.
type SubVideo struct {
	Title     string              `bson:"title" json:"title"`
	WorkoutID *primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	Duration  string              `bson:"duration,omitempty" json:"duration,omitempty"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutBlock is a titled group of videos for the day.
type WorkoutBlock struct {
	Title                string              `bson:"title" json:"title"`
	FollowAlongFullVideo *primitive.ObjectID `bson:"followAlongFullVideo,omitempty" json:"followAlongFullVideo,omitempty"`
	SubVideos            []SubVideo          `bson:"subVideos" json:"subVideos"`
	Notes                string              `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DailyPlan bundles the meal and workout recommendations for one day number.
type DailyPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Day       int                `bson:"day" json:"day"` // Unique, >= 1
	Meals     Meals              `bson:"meals" json:"meals"`
	Workouts  []WorkoutBlock     `bson:"workouts" json:"workouts"`
	Quote     string             `bson:"quote,omitempty" json:"quote,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecipeIDs returns every recipe referenced by the plan, without duplicates.
func (p *DailyPlan) RecipeIDs() []primitive.ObjectID {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, name := range MealBuckets {
		for _, item := range *p.Meals.Buckets()[name] {
			for _, id := range item.Recipes {
				add(id)
			}
			for _, id := range item.AlternateRecipes {
				add(id)
			}
		}
	}
	return ids
}

// WorkoutIDs returns every yoga/workout video referenced by the plan, without duplicates.
func (p *DailyPlan) WorkoutIDs() []primitive.ObjectID {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	add := func(id *primitive.ObjectID) {
		if id == nil {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	for _, block := range p.Workouts {
		add(block.FollowAlongFullVideo)
		for _, sub := range block.SubVideos {
			add(sub.WorkoutID)
		}
	}
	return ids
}

// --- Populated view ---

// PopulatedMealItem is a MealItem whose recipe references are replaced by summaries.
// References that no longer resolve are dropped.
type PopulatedMealItem struct {
	Title            string          `json:"title"`
	Recipes          []RecipeSummary `json:"recipes"`
	AlternateRecipes []RecipeSummary `json:"alternateRecipes"`
	Notes            string          `json:"notes"`
}

type PopulatedMeals struct {
	EmptyStomach []PopulatedMealItem `json:"emptyStomach"`
	Breakfast    []PopulatedMealItem `json:"breakfast"`
	MidMorning   []PopulatedMealItem `json:"midMorning"`
	Lunch        []PopulatedMealItem `json:"lunch"`
	Evening      []PopulatedMealItem `json:"evening"`
	Dinner       []PopulatedMealItem `json:"dinner"`
	BeforeBed    []PopulatedMealItem `json:"beforeBed"`
}

type PopulatedSubVideo struct {
	Title     string       `json:"title"`
	WorkoutID *YogaSummary `json:"workoutId"`
	Duration  string       `json:"duration,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

type PopulatedWorkoutBlock struct {
	Title                string              `json:"title"`
	FollowAlongFullVideo *YogaSummary        `json:"followAlongFullVideo"`
	SubVideos            []PopulatedSubVideo `json:"subVideos"`
	Notes                string              `json:"notes,omitempty"`
}

// PopulatedDailyPlan is the response shape of daily plan reads.
type PopulatedDailyPlan struct {
	ID        primitive.ObjectID      `json:"id"`
	Day       int                     `json:"day"`
	Meals     PopulatedMeals          `json:"meals"`
	Workouts  []PopulatedWorkoutBlock `json:"workouts"`
	Quote     string                  `json:"quote,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// Populate resolves the plan's references using the given lookup tables.
func (p *DailyPlan) Populate(recipes map[primitive.ObjectID]RecipeSummary, videos map[primitive.ObjectID]YogaSummary) PopulatedDailyPlan {
	resolveRecipes := func(ids []primitive.ObjectID) []RecipeSummary {
		out := make([]RecipeSummary, 0, len(ids))
		for _, id := range ids {
			if r, ok := recipes[id]; ok {
				out = append(out, r)
			}
		}
		return out
	}
	resolveVideo := func(id *primitive.ObjectID) *YogaSummary {
		if id == nil {
			return nil
		}
		if v, ok := videos[*id]; ok {
			return &v
		}
		return nil
	}
	mapBucket := func(items []MealItem) []PopulatedMealItem {
		out := make([]PopulatedMealItem, 0, len(items))
		for _, item := range items {
			out = append(out, PopulatedMealItem{
				Title:            item.Title,
				Recipes:          resolveRecipes(item.Recipes),
				AlternateRecipes: resolveRecipes(item.AlternateRecipes),
				Notes:            item.Notes,
			})
		}
		return out
	}

	workouts := make([]PopulatedWorkoutBlock, 0, len(p.Workouts))
	for _, block := range p.Workouts {
		subs := make([]PopulatedSubVideo, 0, len(block.SubVideos))
		for _, sub := range block.SubVideos {
			subs = append(subs, PopulatedSubVideo{
				Title:     sub.Title,
				WorkoutID: resolveVideo(sub.WorkoutID),
				Duration:  sub.Duration,
				Notes:     sub.Notes,
			})
		}
		workouts = append(workouts, PopulatedWorkoutBlock{
			Title:                block.Title,
			FollowAlongFullVideo: resolveVideo(block.FollowAlongFullVideo),
			SubVideos:            subs,
			Notes:                block.Notes,
		})
	}

	return PopulatedDailyPlan{
		ID:  p.ID,
		Day: p.Day,
		Meals: PopulatedMeals{
			EmptyStomach: mapBucket(p.Meals.EmptyStomach),
			Breakfast:    mapBucket(p.Meals.Breakfast),
			MidMorning:   mapBucket(p.Meals.MidMorning),
			Lunch:        mapBucket(p.Meals.Lunch),
			Evening:      mapBucket(p.Meals.Evening),
			Dinner:       mapBucket(p.Meals.Dinner),
			BeforeBed:    mapBucket(p.Meals.BeforeBed),
		},
		Workouts:  workouts,
		Quote:     p.Quote,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
