package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(Options{Now: func() time.Time { return fixedNow }})
}

func requireValidationError(t *testing.T, err error, field string) *Error {
	t.Helper()
	require.Error(t, err)
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	if field != "" {
		assert.Equal(t, field, vErr.Field, vErr.Message)
	}
	return vErr
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, StrongPassword("Secret#123"))
	assert.False(t, StrongPassword("Sh0rt!"))
	assert.False(t, StrongPassword("alllowercase1!"))
	assert.False(t, StrongPassword("NoDigitsHere!"))
	assert.False(t, StrongPassword("NoSymbols123"))
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{"2026-03-15", "2026-03-15T10:30", "2026-03-15T10:30:00", "2026-03-15T10:30:00.000Z", "2026-03-15T10:30:00+05:30"} {
		_, err := ParseDate(raw)
		assert.NoError(t, err, raw)
	}
	_, err := ParseDate("15/03/2026")
	assert.Error(t, err)
}

func TestSignup(t *testing.T) {
	v := newTestValidator()

	t.Run("valid", func(t *testing.T) {
		in, err := v.Signup([]byte(`{"name":"  Asha  ","emailId":"Asha@Example.com","password":"Secret#123","dob":"1995-04-01","weight":62.5,"measurements":{"waist":"70","chest":""}}`))
		require.NoError(t, err)
		assert.Equal(t, "Asha", in.Name)
		assert.Equal(t, "asha@example.com", in.EmailID)
		require.NotNil(t, in.Measurements)
		assert.Equal(t, 70.0, *in.Measurements.Waist)
		assert.Nil(t, in.Measurements.Chest)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short name", `{"name":"Al","emailId":"a@b.co","password":"Secret#123","dob":"1995-04-01"}`, "name"},
		{"long name", fmt.Sprintf(`{"name":"%051d","emailId":"a@b.co","password":"Secret#123","dob":"1995-04-01"}`, 0), "name"},
		{"bad email", `{"name":"Asha","emailId":"not-an-email","password":"Secret#123","dob":"1995-04-01"}`, "emailId"},
		{"weak password", `{"name":"Asha","emailId":"a@b.co","password":"password","dob":"1995-04-01"}`, "password"},
		{"future dob", `{"name":"Asha","emailId":"a@b.co","password":"Secret#123","dob":"2027-01-01"}`, "dob"},
		{"weight out of range", `{"name":"Asha","emailId":"a@b.co","password":"Secret#123","dob":"1995-04-01","weight":10}`, "weight"},
		{"unknown measurement", `{"name":"Asha","emailId":"a@b.co","password":"Secret#123","dob":"1995-04-01","measurements":{"bicep":30}}`, "measurements.bicep"},
		{"wrong type", `{"name":42,"emailId":"a@b.co","password":"Secret#123","dob":"1995-04-01"}`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Signup([]byte(tt.body))
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestSignupUsesInjectedPasswordPolicy(t *testing.T) {
	v := New(Options{PasswordPolicy: func(string) bool { return true }, Now: func() time.Time { return fixedNow }})
	_, err := v.Signup([]byte(`{"name":"Asha","emailId":"a@b.co","password":"x","dob":"1995-04-01"}`))
	assert.NoError(t, err)
}

func TestProfileEdit(t *testing.T) {
	v := newTestValidator()

	in, err := v.ProfileEdit([]byte(`{"name":"Asha K","height":165,"weight":61,"measurements":{"arm":28}}`))
	require.NoError(t, err)
	assert.True(t, in.HasStableUpdates())
	assert.True(t, in.HasProgressUpdates())

	in, err = v.ProfileEdit([]byte(`{"weight":61}`))
	require.NoError(t, err)
	assert.False(t, in.HasStableUpdates())

	_, err = v.ProfileEdit([]byte(`{"name":"Asha","password":"x"}`))
	vErr := requireValidationError(t, err, "password")
	assert.Contains(t, vErr.Message, "Unexpected fields in profile payload")

	_, err = v.ProfileEdit([]byte(`{"measurements":{"waist":500}}`))
	requireValidationError(t, err, "measurements.waist")

	_, err = v.ProfileEdit([]byte(`{"weight":0}`))
	requireValidationError(t, err, "weight")
}

func TestPasswordChange(t *testing.T) {
	v := newTestValidator()

	_, err := v.PasswordChange([]byte(`{"existingPassword":"Old#12345","newPassword":"New#12345"}`))
	require.NoError(t, err)

	_, err = v.PasswordChange([]byte(`{"existingPassword":"Old#12345","newPassword":"New#12345","emailId":"x@y.z"}`))
	requireValidationError(t, err, "emailId")

	_, err = v.PasswordChange([]byte(`{"existingPassword":"Old#12345","newPassword":"weak"}`))
	requireValidationError(t, err, "newPassword")
}

func TestProgressWeightBoundaries(t *testing.T) {
	v := newTestValidator()
	for _, tt := range []struct {
		weight string
		ok     bool
	}{
		{"29", false},
		{"30", true},
		{"200", true},
		{"201", false},
	} {
		t.Run(tt.weight, func(t *testing.T) {
			_, err := v.Progress([]byte(`{"date":"2026-03-10","weight":`+tt.weight+`}`), false)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			requireValidationError(t, err, "weight")
		})
	}
}

func TestProgressDate(t *testing.T) {
	v := newTestValidator()

	_, err := v.Progress([]byte(`{"date":"2026-03-15"}`), false)
	assert.NoError(t, err, "today is accepted")

	_, err = v.Progress([]byte(`{"date":"2026-03-16"}`), false)
	vErr := requireValidationError(t, err, "date")
	assert.Equal(t, "date cannot be in the future", vErr.Message)

	_, err = v.Progress([]byte(`{"weight":60}`), false)
	requireValidationError(t, err, "date")

	_, err = v.Progress([]byte(`{"weight":60}`), true)
	assert.NoError(t, err, "date is optional on update")

	_, err = v.Progress([]byte(`{"date":"yesterday-ish"}`), false)
	requireValidationError(t, err, "date")
}

func TestProgressFields(t *testing.T) {
	v := newTestValidator()

	_, err := v.Progress([]byte(`{"date":"2026-03-10","mood":"great"}`), false)
	vErr := requireValidationError(t, err, "mood")
	assert.Contains(t, vErr.Message, "Unexpected fields in progress payload")

	_, err = v.Progress([]byte(`{"date":"2026-03-10","photoUrl":"not a url"}`), false)
	requireValidationError(t, err, "photoUrl")

	_, err = v.Progress([]byte(fmt.Sprintf(`{"date":"2026-03-10","notes":"%0201d"}`, 0)), false)
	requireValidationError(t, err, "notes")

	in, err := v.Progress([]byte(`{"date":"2026-03-10","photoUrl":"https://cdn.example.com/p.jpg","measurements":{"hip":"95.5","neck":null}}`), false)
	require.NoError(t, err)
	assert.Equal(t, 95.5, *in.Measurements.Hip)
	assert.Nil(t, in.Measurements.Neck)
	date, ok := in.ParsedDate()
	assert.True(t, ok)
	assert.Equal(t, 10, date.Day())
}

func TestRecipe(t *testing.T) {
	v := newTestValidator()
	valid := `{"title":"Oats","description":"Warm oats","prepTime":"5 mins","cookTime":"10 mins","ingredients":["oats"],"steps":["boil"],"tags":["breakfast"]}`

	in, err := v.Recipe([]byte(valid))
	require.NoError(t, err)
	recipe := in.ToDomain(fixedNow)
	assert.Equal(t, []string{"breakfast"}, recipe.Tags)

	for _, tt := range []struct {
		name, body, field string
	}{
		{"no ingredients", `{"title":"Oats","description":"d","prepTime":"5","cookTime":"5","ingredients":[],"steps":["boil"]}`, "ingredients"},
		{"missing steps", `{"title":"Oats","description":"d","prepTime":"5","cookTime":"5","ingredients":["oats"]}`, "steps"},
		{"blank title", `{"title":"  ","description":"d","prepTime":"5","cookTime":"5","ingredients":["oats"],"steps":["boil"]}`, "title"},
		{"bad image", `{"title":"Oats","description":"d","prepTime":"5","cookTime":"5","ingredients":["oats"],"steps":["boil"],"image":"https://x.com/a.bmp"}`, "image"},
		{"bad video", `{"title":"Oats","description":"d","prepTime":"5","cookTime":"5","ingredients":["oats"],"steps":["boil"],"video":"ftp://x.com/v"}`, "video"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Recipe([]byte(tt.body))
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestYoga(t *testing.T) {
	v := newTestValidator()
	valid := `{"title":"Sun salutation","description":"Flow","image":"https://cdn.example.com/sun.PNG","duration":"20 mins","youtubeId":"abc123","isPeriodFriendly":true,"type":"Yoga"}`

	in, err := v.Yoga([]byte(valid))
	require.NoError(t, err)
	assert.True(t, in.ToDomain(fixedNow).IsPeriodFriendly)

	for _, tt := range []struct {
		name, body, field string
	}{
		{"image pattern", `{"title":"Flow","description":"d","image":"https://cdn.example.com/sun","duration":"20 mins","youtubeId":"a"}`, "image"},
		{"numeric duration", `{"title":"Flow","description":"d","image":"https://x.com/a.jpg","duration":20,"youtubeId":"a"}`, "duration"},
		{"empty instructions", `{"title":"Flow","description":"d","image":"https://x.com/a.jpg","duration":"20","youtubeId":"a","instructions":[]}`, "instructions"},
		{"blank instruction", `{"title":"Flow","description":"d","image":"https://x.com/a.jpg","duration":"20","youtubeId":"a","instructions":["breathe"," "]}`, "instructions[1]"},
		{"blank notes", `{"title":"Flow","description":"d","image":"https://x.com/a.jpg","duration":"20","youtubeId":"a","notes":""}`, "notes"},
		{"bad type", `{"title":"Flow","description":"d","image":"https://x.com/a.jpg","duration":"20","youtubeId":"a","type":"Dance"}`, "type"},
		{"non-bool flag", `{"title":"Flow","description":"d","image":"https://x.com/a.jpg","duration":"20","youtubeId":"a","isPeriodFriendly":"yes"}`, "isPeriodFriendly"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Yoga([]byte(tt.body))
			requireValidationError(t, err, tt.field)
		})
	}
}

const planRecipeID = "65f1c0a2b3c4d5e6f7a8b9c0"

func TestDailyPlanDay(t *testing.T) {
	v := newTestValidator()
	for _, tt := range []struct {
		day string
		ok  bool
	}{
		{"0", false},
		{"-1", false},
		{"1.5", false},
		{`"1"`, false},
		{"null", false},
		{"1", true},
		{"30", true},
	} {
		t.Run(tt.day, func(t *testing.T) {
			_, err := v.DailyPlan([]byte(`{"day":`+tt.day+`,"meals":{}}`), 0)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			requireValidationError(t, err, "day")
		})
	}
}

func TestDailyPlanRejectsUnknownKeys(t *testing.T) {
	v := newTestValidator()
	for _, body := range []string{
		`{"day":1,"meals":{},"extra":true}`,
		`{"day":1,"meals":{},"workoutIds":[]}`,
	} {
		_, err := v.DailyPlan([]byte(body), 0)
		vErr := requireValidationError(t, err, "")
		assert.Contains(t, vErr.Message, "Unexpected fields")
	}
}

func TestDailyPlanIgnoresUnknownMealBuckets(t *testing.T) {
	v := newTestValidator()

	in, err := v.DailyPlan([]byte(`{"day":1,"meals":{"brunch":"anything","lunch":[{"title":"Dal"}]}}`), 0)
	require.NoError(t, err)
	require.Len(t, in.Meals.Lunch, 1)
	assert.Equal(t, "Dal", in.Meals.Lunch[0].Title)

	plan := in.ToDomain(fixedNow)
	_, ok := plan.Meals.Buckets()["brunch"]
	assert.False(t, ok)
}

func TestDailyPlanStructure(t *testing.T) {
	v := newTestValidator()

	body := `{
		"day": 3,
		"meals": {
			"breakfast": [{"title":"Oats","recipes":["` + planRecipeID + `"],"alternateRecipes":[]}],
			"beforeBed": [{"title":"Warm milk"}]
		},
		"workouts": [{"title":"Morning","followAlongFullVideo":"` + planRecipeID + `","subVideos":[{"title":"Warmup","workoutId":""}]}],
		"qoute": "Keep going"
	}`
	in, err := v.DailyPlan([]byte(body), 0)
	require.NoError(t, err)
	plan := in.ToDomain(fixedNow)
	assert.Equal(t, 3, plan.Day)
	assert.Equal(t, "Keep going", plan.Quote)
	require.Len(t, plan.Meals.Breakfast, 1)
	assert.Equal(t, planRecipeID, plan.Meals.Breakfast[0].Recipes[0].Hex())
	assert.NotNil(t, plan.Meals.Lunch)
	assert.NotNil(t, plan.Workouts[0].FollowAlongFullVideo)
	assert.Nil(t, plan.Workouts[0].SubVideos[0].WorkoutID)

	for _, tt := range []struct {
		name, body, field string
	}{
		{"meals missing", `{"day":1}`, "meals"},
		{"meals array", `{"day":1,"meals":[]}`, "meals"},
		{"bucket not array", `{"day":1,"meals":{"lunch":{}}}`, "meals.lunch"},
		{"item not object", `{"day":1,"meals":{"lunch":["rice"]}}`, "meals.lunch"},
		{"blank meal title", `{"day":1,"meals":{"lunch":[{"title":" "}]}}`, "meals.lunch[0].title"},
		{"blank recipe id", `{"day":1,"meals":{"lunch":[{"title":"Rice","recipes":[""]}]}}`, "meals.lunch[0].recipes[0]"},
		{"malformed recipe id", `{"day":1,"meals":{"lunch":[{"title":"Rice","recipes":["abc"]}]}}`, "meals.lunch[0].recipes[0]"},
		{"numeric recipe id", `{"day":1,"meals":{"lunch":[{"title":"Rice","recipes":[5]}]}}`, ""},
		{"workouts object", `{"day":1,"meals":{},"workouts":{}}`, "workouts"},
		{"blank workout title", `{"day":1,"meals":{},"workouts":[{"title":""}]}`, "workouts[0].title"},
		{"blank sub video title", `{"day":1,"meals":{},"workouts":[{"title":"A","subVideos":[{"title":""}]}]}`, "workouts[0].subVideos[0].title"},
		{"blank quote", `{"day":1,"meals":{},"quote":"  "}`, "quote"},
		{"long quote", fmt.Sprintf(`{"day":1,"meals":{},"quote":"%01001d"}`, 0), "quote"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.DailyPlan([]byte(tt.body), 0)
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestDailyPlanQuoteAlias(t *testing.T) {
	v := newTestValidator()

	in, err := v.DailyPlan([]byte(`{"day":1,"meals":{},"quote":"new","qoute":"old"}`), 0)
	require.NoError(t, err)
	assert.Equal(t, "new", *in.Quote)

	in, err = v.DailyPlan([]byte(`{"day":1,"meals":{},"qoute":"old"}`), 0)
	require.NoError(t, err)
	assert.Equal(t, "old", *in.Quote)
}

func TestDailyPlanPathDay(t *testing.T) {
	v := newTestValidator()

	in, err := v.DailyPlan([]byte(`{"meals":{}}`), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, in.Day)

	_, err = v.DailyPlan([]byte(`{"day":5,"meals":{}}`), 4)
	requireValidationError(t, err, "day")

	day, err := ParseDay("7")
	require.NoError(t, err)
	assert.Equal(t, 7, day)
	for _, raw := range []string{"0", "abc", "2.5", "", "1e1", "1 2", "2.0", "01", "+3", "-1", " 4", "1abc", "99999999999999999999"} {
		_, err := ParseDay(raw)
		assert.Error(t, err, raw)
	}
}

func TestSuggestion(t *testing.T) {
	v := newTestValidator()

	in, err := v.Suggestion([]byte(`{"title":"Walk","description":"After dinner","image":""}`), false)
	require.NoError(t, err)
	s := in.ToDomain(fixedNow)
	assert.Equal(t, "daily", string(s.Repeat))
	assert.Empty(t, s.Image)

	_, err = v.Suggestion([]byte(`{"title":"W","description":"d"}`), false)
	requireValidationError(t, err, "title")

	_, err = v.Suggestion([]byte(`{"description":"d"}`), false)
	requireValidationError(t, err, "title")

	_, err = v.Suggestion([]byte(`{"title":"Walk","description":"d","repeat":"hourly"}`), false)
	requireValidationError(t, err, "repeat")

	_, err = v.Suggestion([]byte(`{"repeat":"night"}`), true)
	assert.NoError(t, err)

	_, err = v.Suggestion([]byte(`{}`), true)
	assert.Error(t, err)
}

func TestRoutine(t *testing.T) {
	v := newTestValidator()

	in, err := v.Routine([]byte(`{"lifestyleSuggestionId":"` + planRecipeID + `","repeat":"daily","preferredTime":"morning","duration":"5-10 mins"}`))
	require.NoError(t, err)
	assert.Equal(t, planRecipeID, in.SuggestionID)

	for _, tt := range []struct {
		name, body, field string
	}{
		{"bad suggestion id", `{"lifestyleSuggestionId":"nope","repeat":"daily","preferredTime":"morning"}`, "lifestyleSuggestionId"},
		{"suggestion-only repeat", `{"lifestyleSuggestionId":"` + planRecipeID + `","repeat":"after_meal","preferredTime":"morning"}`, "repeat"},
		{"bad preferred time", `{"lifestyleSuggestionId":"` + planRecipeID + `","repeat":"daily","preferredTime":"noon"}`, "preferredTime"},
		{"long duration", fmt.Sprintf(`{"lifestyleSuggestionId":"%s","repeat":"daily","preferredTime":"night","duration":"%031d"}`, planRecipeID, 0), "duration"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Routine([]byte(tt.body))
			requireValidationError(t, err, tt.field)
		})
	}
}

func TestRoutinePatch(t *testing.T) {
	v := newTestValidator()

	patch, err := v.RoutinePatch([]byte(`{"isActive":false,"preferredTime":"evening"}`))
	require.NoError(t, err)
	require.NotNil(t, patch.IsActive)
	assert.False(t, *patch.IsActive)

	_, err = v.RoutinePatch([]byte(`{"userId":"x"}`))
	requireValidationError(t, err, "userId")

	_, err = v.RoutinePatch([]byte(`{}`))
	assert.Error(t, err)
}

func TestPayloadRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[]`, `"x"`, `{"a":`} {
		_, err := ParsePayload([]byte(body))
		assert.True(t, IsValidationError(err), body)
	}
	p, err := ParsePayload(nil)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}
