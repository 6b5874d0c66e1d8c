package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"alcyxob/wellness-app/internal/domain"

	"github.com/tidwall/gjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealItemInput is one meal inside a bucket.
type MealItemInput struct {
	Title            string   `json:"title" validate:"notblank"`
	Recipes          []string `json:"recipes" validate:"omitempty,dive,notblank,objectid"`
	AlternateRecipes []string `json:"alternateRecipes" validate:"omitempty,dive,notblank,objectid"`
	Notes            string   `json:"notes" validate:"max=1000"`
}

// MealsInput holds the seven time-of-day buckets.
type MealsInput struct {
	EmptyStomach []MealItemInput `json:"emptyStomach" validate:"dive"`
	Breakfast    []MealItemInput `json:"breakfast" validate:"dive"`
	MidMorning   []MealItemInput `json:"midMorning" validate:"dive"`
	Lunch        []MealItemInput `json:"lunch" validate:"dive"`
	Evening      []MealItemInput `json:"evening" validate:"dive"`
	Dinner       []MealItemInput `json:"dinner" validate:"dive"`
	BeforeBed    []MealItemInput `json:"beforeBed" validate:"dive"`
}

var mealBucketFields = FieldsOf(MealsInput{})

// SubVideoInput is one segment of a workout block.
type SubVideoInput struct {
	Title     string  `json:"title" validate:"notblank"`
	WorkoutID *string `json:"workoutId" validate:"omitnil,objectid"`
	Duration  string  `json:"duration"`
	Notes     string  `json:"notes"`
}

// WorkoutBlockInput is a titled group of videos.
type WorkoutBlockInput struct {
	Title                string          `json:"title" validate:"notblank"`
	FollowAlongFullVideo *string         `json:"followAlongFullVideo" validate:"omitnil,objectid"`
	SubVideos            []SubVideoInput `json:"subVideos" validate:"dive"`
	Notes                string          `json:"notes"`
}

// DailyPlanInput is the body of daily plan create (POST) and replace (PUT).
type DailyPlanInput struct {
	Day      int                 `json:"-"`
	Meals    MealsInput          `json:"meals"`
	Workouts []WorkoutBlockInput `json:"workouts" validate:"dive"`
	Quote    *string             `json:"quote" validate:"omitnil,notblank,max=1000"`
}

var dailyPlanFields = FieldsOf(DailyPlanInput{}, "day", "qoute")

// UnmarshalJSON accepts the legacy "qoute" spelling when "quote" is absent.
func (in *DailyPlanInput) UnmarshalJSON(data []byte) error {
	type plain DailyPlanInput
	aux := struct {
		*plain
		LegacyQuote *string `json:"qoute"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if in.Quote == nil {
		in.Quote = aux.LegacyQuote
	}
	return nil
}

// ToDomain converts the validated input into a plan stamped with now.
func (in *DailyPlanInput) ToDomain(now time.Time) *domain.DailyPlan {
	plan := &domain.DailyPlan{
		Day:       in.Day,
		Workouts:  make([]domain.WorkoutBlock, 0, len(in.Workouts)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	meals := map[string][]MealItemInput{
		"emptyStomach": in.Meals.EmptyStomach,
		"breakfast":    in.Meals.Breakfast,
		"midMorning":   in.Meals.MidMorning,
		"lunch":        in.Meals.Lunch,
		"evening":      in.Meals.Evening,
		"dinner":       in.Meals.Dinner,
		"beforeBed":    in.Meals.BeforeBed,
	}
	buckets := plan.Meals.Buckets()
	for name, items := range meals {
		out := make([]domain.MealItem, 0, len(items))
		for _, item := range items {
			out = append(out, domain.MealItem{
				Title:            strings.TrimSpace(item.Title),
				Recipes:          toObjectIDs(item.Recipes),
				AlternateRecipes: toObjectIDs(item.AlternateRecipes),
				Notes:            item.Notes,
			})
		}
		*buckets[name] = out
	}
	plan.Meals.Normalize()

	for _, block := range in.Workouts {
		subs := make([]domain.SubVideo, 0, len(block.SubVideos))
		for _, sub := range block.SubVideos {
			subs = append(subs, domain.SubVideo{
				Title:     strings.TrimSpace(sub.Title),
				WorkoutID: toObjectIDPtr(sub.WorkoutID),
				Duration:  sub.Duration,
				Notes:     sub.Notes,
			})
		}
		plan.Workouts = append(plan.Workouts, domain.WorkoutBlock{
			Title:                strings.TrimSpace(block.Title),
			FollowAlongFullVideo: toObjectIDPtr(block.FollowAlongFullVideo),
			SubVideos:            subs,
			Notes:                block.Notes,
		})
	}
	if in.Quote != nil {
		plan.Quote = *in.Quote
	}
	return plan
}

// DailyPlan validates a daily plan payload. pathDay is the day taken from the
// URL on replace; zero means the day must come from the body.
func (v *Validator) DailyPlan(body []byte, pathDay int) (*DailyPlanInput, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}
	if err := p.OnlyKeys(dailyPlanFields, "daily plan"); err != nil {
		return nil, err
	}

	day := pathDay
	if dayRes := p.Get("day"); pathDay == 0 || dayRes.Exists() {
		bodyDay, err := parseDay(dayRes)
		if err != nil {
			return nil, err
		}
		if pathDay != 0 && bodyDay != pathDay {
			return nil, newError("day", "day in body (%d) does not match day in path (%d)", bodyDay, pathDay)
		}
		day = bodyDay
	}

	if err := checkMealsShape(p.Get("meals")); err != nil {
		return nil, err
	}
	if w := p.Get("workouts"); w.Exists() && w.Type != gjson.Null && !w.IsArray() {
		return nil, newError("workouts", "workouts must be an array of workout blocks")
	}

	var in DailyPlanInput
	if err := p.Decode(&in); err != nil {
		return nil, err
	}
	in.Day = day
	normalizeRefs(&in)
	if err := v.check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseDay validates a day number taken from a URL segment. Only plain
// decimal digits without a leading zero are accepted.
func ParseDay(raw string) (int, error) {
	if raw == "" || raw[0] < '1' || raw[0] > '9' || strings.Trim(raw, "0123456789") != "" {
		return 0, newError("day", "day must be an integer greater than or equal to 1")
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day > math.MaxInt32 {
		return 0, newError("day", "day must be an integer greater than or equal to 1")
	}
	return day, nil
}

func parseDay(res gjson.Result) (int, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return 0, newError("day", "day is required")
	}
	if res.Type != gjson.Number {
		return 0, newError("day", "day must be an integer greater than or equal to 1")
	}
	f := res.Float()
	if f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return 0, newError("day", "day must be an integer greater than or equal to 1")
	}
	return int(f), nil
}

func checkMealsShape(meals gjson.Result) error {
	if !meals.Exists() || !meals.IsObject() {
		return newError("meals", "meals must be an object of meal buckets")
	}
	var shapeErr error
	meals.ForEach(func(key, bucket gjson.Result) bool {
		// Unrecognized buckets are dropped, not rejected.
		if !mealBucketFields.Has(key.String()) || bucket.Type == gjson.Null {
			return true
		}
		name := "meals." + key.String()
		if !bucket.IsArray() {
			shapeErr = newError(name, "%s must be an array of meal objects", name)
			return false
		}
		for i, item := range bucket.Array() {
			if !item.IsObject() {
				shapeErr = newError(name, "each item in %s must be an object (index %d is %s)", name, i, typeName(item))
				return false
			}
		}
		return true
	})
	return shapeErr
}

// normalizeRefs trims id strings and treats empty optional video refs as absent.
func normalizeRefs(in *DailyPlanInput) {
	for _, items := range []*[]MealItemInput{
		&in.Meals.EmptyStomach, &in.Meals.Breakfast, &in.Meals.MidMorning,
		&in.Meals.Lunch, &in.Meals.Evening, &in.Meals.Dinner, &in.Meals.BeforeBed,
	} {
		for i := range *items {
			item := &(*items)[i]
			for j := range item.Recipes {
				item.Recipes[j] = strings.TrimSpace(item.Recipes[j])
			}
			for j := range item.AlternateRecipes {
				item.AlternateRecipes[j] = strings.TrimSpace(item.AlternateRecipes[j])
			}
		}
	}
	for i := range in.Workouts {
		block := &in.Workouts[i]
		block.FollowAlongFullVideo = blankToNil(block.FollowAlongFullVideo)
		for j := range block.SubVideos {
			block.SubVideos[j].WorkoutID = blankToNil(block.SubVideos[j].WorkoutID)
		}
	}
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toObjectIDs(hexes []string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, err := primitive.ObjectIDFromHex(h); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func toObjectIDPtr(hex *string) *primitive.ObjectID {
	if hex == nil {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		return nil
	}
	return &id
}
