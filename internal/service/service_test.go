package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository/memory"
	"alcyxob/wellness-app/internal/service"
	"alcyxob/wellness-app/internal/session"
	"alcyxob/wellness-app/internal/storage"
	"alcyxob/wellness-app/internal/validation"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const strongPassword = "Str0ng!Passw0rd"

// flakyPhotos fails the first deletion of a photo it hosts.
type flakyPhotos struct {
	*storage.Photos
	failed bool
}

func (f *flakyPhotos) Delete(ctx context.Context, url string) (string, error) {
	if f.Owns(url) && !f.failed {
		f.failed = true
		return "progress_photos/unknown", errors.New("storage unavailable")
	}
	return f.Photos.Delete(ctx, url)
}

type fixture struct {
	v         *validation.Validator
	files     *storage.MemoryStorage
	photos    *flakyPhotos
	logs      *logtest.Hook
	denylist  *session.MemoryDenylist
	auth      service.AuthService
	profile   service.ProfileService
	progress  service.ProgressService
	recipes   service.RecipeService
	yoga      service.YogaService
	plans     service.DailyPlanService
	lifestyle service.LifestyleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	progressRepo := memory.NewProgressRepository(store)
	recipeRepo := memory.NewRecipeRepository(store)
	yogaRepo := memory.NewYogaRepository(store)
	planRepo := memory.NewDailyPlanRepository(store)
	suggestionRepo := memory.NewLifestyleSuggestionRepository(store)
	routineRepo := memory.NewUserLifestyleRepository(store)

	files := storage.NewMemoryStorage()
	hosted, err := storage.NewPhotos(files, "https://photos.example.com", "progress_photos")
	require.NoError(t, err)
	photos := &flakyPhotos{Photos: hosted, failed: true} // only armed by tests that need it

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	denylist := session.NewMemoryDenylist()

	progress := service.NewProgressService(progressRepo, photos, logger)
	return &fixture{
		v:         validation.New(validation.Options{}),
		files:     files,
		photos:    photos,
		logs:      hook,
		denylist:  denylist,
		auth:      service.NewAuthService(users, progress, service.NewTokenManager("test-secret", 0), denylist, logger),
		profile:   service.NewProfileService(users, progressRepo, routineRepo, progress, photos, logger),
		progress:  progress,
		recipes:   service.NewRecipeService(recipeRepo),
		yoga:      service.NewYogaService(yogaRepo),
		plans:     service.NewDailyPlanService(planRepo, recipeRepo, yogaRepo),
		lifestyle: service.NewLifestyleService(suggestionRepo, routineRepo),
	}
}

func (f *fixture) signup(t *testing.T, email string) *service.SignupResult {
	t.Helper()
	in, err := f.v.Signup([]byte(`{
		"name": "Asha Rao",
		"emailId": "` + email + `",
		"password": "` + strongPassword + `",
		"dob": "1994-05-17",
		"height": 165,
		"weight": 68.5,
		"measurements": {"waist": 80, "hip": "96"}
	}`))
	require.NoError(t, err)
	res, err := f.auth.Signup(context.Background(), in)
	require.NoError(t, err)
	return res
}

func (f *fixture) progressInput(t *testing.T, body string, partial bool) *validation.ProgressInput {
	t.Helper()
	in, err := f.v.Progress([]byte(body), partial)
	require.NoError(t, err)
	return in
}

func jpeg(content string) *service.PhotoUpload {
	return &service.PhotoUpload{Body: strings.NewReader(content), Size: int64(len(content)), ContentType: "image/jpeg"}
}

func TestSignupCreatesUserAndInitialProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.signup(t, "Asha@Example.com")
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "asha@example.com", res.User.EmailID)
	assert.Equal(t, domain.DefaultPhotoURL, res.User.PhotoURL)
	require.NotNil(t, res.User.ResetPlan.StartDate)

	require.NotNil(t, res.InitialProgress)
	assert.Equal(t, res.User.ID, res.InitialProgress.UserID)
	assert.Equal(t, "Initial measurements from signup", res.InitialProgress.Notes)
	assert.Equal(t, 68.5, *res.InitialProgress.Weight)
	assert.Equal(t, 80.0, *res.InitialProgress.Measurements.Waist)
	assert.Equal(t, 96.0, *res.InitialProgress.Measurements.Hip)

	user, err := f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)

	in, err := f.v.Signup([]byte(`{"name":"Someone Else","emailId":"asha@example.com","password":"` + strongPassword + `","dob":"1990-01-01"}`))
	require.NoError(t, err)
	_, err = f.auth.Signup(ctx, in)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestLoginAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "asha@example.com")

	_, _, err := f.auth.Login(ctx, "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "nobody@example.com", strongPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	token, user, err := f.auth.Login(ctx, "asha@example.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.EmailID)

	_, err = f.auth.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, token))
	_, err = f.auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	// Garbage tokens are ignored on logout but rejected on access
	assert.NoError(t, f.auth.Logout(ctx, "not-a-token"))
	_, err = f.auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAuthenticateRejectsTokenOfDeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")

	_, err := f.profile.DeleteAccount(ctx, res.User)
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestProfileEditSplitsStableAndProgressFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")
	other := f.signup(t, "ravi@example.com")

	in, err := f.v.ProfileEdit([]byte(`{"name":"Asha R","weight":66,"measurements":{"waist":78}}`))
	require.NoError(t, err)
	edit, err := f.profile.Edit(ctx, res.User, in)
	require.NoError(t, err)
	assert.True(t, edit.UserUpdated)
	assert.True(t, edit.ProgressUpdated)
	assert.Equal(t, "Asha R", edit.User.Name)

	// Unsent measurements carry over from the latest snapshot
	assert.Equal(t, 66.0, *edit.Progress.Weight)
	assert.Equal(t, 78.0, *edit.Progress.Measurements.Waist)
	assert.Equal(t, 96.0, *edit.Progress.Measurements.Hip)

	view, err := f.profile.View(ctx, edit.User)
	require.NoError(t, err)
	assert.Equal(t, "Asha R", view.Name)
	assert.Equal(t, 66.0, *view.Weight)
	assert.Equal(t, 78.0, *view.Measurements.Waist)

	in, err = f.v.ProfileEdit([]byte(`{"emailId":"ravi@example.com"}`))
	require.NoError(t, err)
	_, err = f.profile.Edit(ctx, edit.User, in)
	assert.ErrorIs(t, err, service.ErrConflict)

	in, err = f.v.ProfileEdit([]byte(`{"height":170}`))
	require.NoError(t, err)
	edit, err = f.profile.Edit(ctx, other.User, in)
	require.NoError(t, err)
	assert.True(t, edit.UserUpdated)
	assert.False(t, edit.ProgressUpdated)
	assert.Nil(t, edit.Progress)
}

func TestProfileEditSkipsEmptyMeasurements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")

	for _, body := range []string{`{"measurements":{}}`, `{"measurements":{"chest":""}}`, `{"name":"Asha R","measurements":{}}`} {
		in, err := f.v.ProfileEdit([]byte(body))
		require.NoError(t, err, body)
		edit, err := f.profile.Edit(ctx, res.User, in)
		require.NoError(t, err, body)
		assert.False(t, edit.ProgressUpdated, body)
		assert.Nil(t, edit.Progress, body)
	}

	page, err := f.progress.List(ctx, res.User.ID, domain.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount, "only the signup snapshot")
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")

	in, err := f.v.PasswordChange([]byte(`{"existingPassword":"nope","newPassword":"N3w!Passw0rd"}`))
	require.NoError(t, err)
	err = f.profile.ChangePassword(ctx, res.User, in)
	assert.True(t, validation.IsValidationError(err))

	in, err = f.v.PasswordChange([]byte(`{"existingPassword":"` + strongPassword + `","newPassword":"N3w!Passw0rd"}`))
	require.NoError(t, err)
	require.NoError(t, f.profile.ChangePassword(ctx, res.User, in))

	_, _, err = f.auth.Login(ctx, "asha@example.com", strongPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "asha@example.com", "N3w!Passw0rd")
	assert.NoError(t, err)
}

func TestDeleteAccountContinuesPastPhotoFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")
	other := f.signup(t, "ravi@example.com")

	for _, date := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		_, err := f.progress.Create(ctx, res.User.ID, f.progressInput(t, `{"date":"`+date+`","weight":67}`, false), jpeg("photo "+date))
		require.NoError(t, err)
	}
	otherEntry, err := f.progress.Create(ctx, other.User.ID, f.progressInput(t, `{"date":"2024-01-10"}`, false), jpeg("other"))
	require.NoError(t, err)
	require.Len(t, f.files.Keys(), 4)

	suggestion, err := f.lifestyle.CreateSuggestion(ctx, &validation.SuggestionInput{Title: ptr("Walk"), Description: ptr("Ten minutes")})
	require.NoError(t, err)
	_, err = f.lifestyle.AddRoutine(ctx, res.User.ID, &validation.RoutineInput{
		SuggestionID: suggestion.ID.Hex(), Repeat: "daily", PreferredTime: "morning",
	})
	require.NoError(t, err)

	f.photos.failed = false // fail the next owned deletion
	deletion, err := f.profile.DeleteAccount(ctx, res.User)
	require.NoError(t, err)

	assert.Equal(t, int64(4), deletion.ProgressDeleted) // three entries plus the signup snapshot
	assert.Equal(t, int64(1), deletion.RoutinesDeleted)
	assert.Equal(t, 2, deletion.PhotoCleanup.Deleted)
	require.Len(t, deletion.PhotoCleanup.Failed, 1)
	assert.Equal(t, "storage unavailable", deletion.PhotoCleanup.Failed[0].Error)

	// The failed photo stays behind alongside the other user's photo
	assert.Len(t, f.files.Keys(), 2)
	var warned int
	for _, entry := range f.logs.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned++
		}
	}
	assert.Equal(t, 1, warned)

	_, _, err = f.auth.Login(ctx, "asha@example.com", strongPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	page, err := f.progress.List(ctx, other.User.ID, domain.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Contains(t, []primitive.ObjectID{page.Items[0].ID, page.Items[1].ID}, otherEntry.ID)
}

func TestProgressPhotoReplacementDeletesOldPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")

	entry, err := f.progress.Create(ctx, res.User.ID, f.progressInput(t, `{"date":"2024-01-10","measurements":{"chest":90}}`, false), jpeg("first"))
	require.NoError(t, err)
	require.True(t, entry.HasPhoto())
	oldKeys := f.files.Keys()
	require.Len(t, oldKeys, 1)

	update, err := f.progress.Update(ctx, res.User.ID, entry.ID.Hex(), f.progressInput(t, `{"notes":"week 2","measurements":{"waist":79}}`, true), jpeg("second"))
	require.NoError(t, err)
	require.NotNil(t, update.PhotoCleanup)
	assert.Equal(t, 1, update.PhotoCleanup.Deleted)
	assert.Equal(t, "week 2", update.Progress.Notes)
	assert.Equal(t, 90.0, *update.Progress.Measurements.Chest)
	assert.Equal(t, 79.0, *update.Progress.Measurements.Waist)

	newKeys := f.files.Keys()
	require.Len(t, newKeys, 1)
	assert.NotEqual(t, oldKeys[0], newKeys[0])

	// Updating without a photo leaves it alone
	update, err = f.progress.Update(ctx, res.User.ID, entry.ID.Hex(), f.progressInput(t, `{"weight":65}`, true), nil)
	require.NoError(t, err)
	assert.Nil(t, update.PhotoCleanup)
	assert.Len(t, f.files.Keys(), 1)

	id, cleanup, err := f.progress.Delete(ctx, res.User.ID, entry.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, entry.ID, id)
	assert.Equal(t, 1, cleanup.Deleted)
	assert.Empty(t, f.files.Keys())
}

func TestProgressScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")
	other := f.signup(t, "ravi@example.com")

	entry, err := f.progress.Create(ctx, res.User.ID, f.progressInput(t, `{"date":"2024-01-10"}`, false), nil)
	require.NoError(t, err)
	assert.False(t, entry.HasPhoto())

	_, _, err = f.progress.Delete(ctx, other.User.ID, entry.ID.Hex())
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = f.progress.Update(ctx, other.User.ID, entry.ID.Hex(), f.progressInput(t, `{"weight":70}`, true), nil)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, _, err = f.progress.Delete(ctx, res.User.ID, "not-an-id")
	assert.ErrorIs(t, err, service.ErrInvalidID)

	// Only the signup snapshot carries a photo
	journey, err := f.progress.VisualJourney(ctx, res.User.ID, domain.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, journey.Items, 1)
	assert.Equal(t, domain.DefaultPhotoURL, *journey.Items[0].PhotoURL)
}

func TestDailyPlanDuplicateDayConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	recipeIn, err := f.v.Recipe([]byte(`{"title":"Poha","description":"Flattened rice","prepTime":"5 min","cookTime":"10 min","ingredients":["poha"],"steps":["cook"]}`))
	require.NoError(t, err)
	recipe, err := f.recipes.Create(ctx, recipeIn)
	require.NoError(t, err)

	body := `{"day":1,"meals":{"breakfast":[{"title":"Breakfast","recipes":["` + recipe.ID.Hex() + `"]}]},"workouts":[],"qoute":"Begin"}`
	in, err := f.v.DailyPlan([]byte(body), 0)
	require.NoError(t, err)

	plan, err := f.plans.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Day)
	assert.Equal(t, "Begin", plan.Quote)
	require.Len(t, plan.Meals.Breakfast[0].Recipes, 1)
	assert.Equal(t, "Poha", plan.Meals.Breakfast[0].Recipes[0].Title)

	_, err = f.plans.Create(ctx, in)
	assert.ErrorIs(t, err, service.ErrConflict)

	replace, err := f.v.DailyPlan([]byte(`{"meals":{},"quote":"Again"}`), 1)
	require.NoError(t, err)
	replaced, err := f.plans.Replace(ctx, replace)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, replaced.ID)
	assert.Equal(t, "Again", replaced.Quote)
	assert.Empty(t, replaced.Meals.Breakfast)

	missing, err := f.v.DailyPlan([]byte(`{"meals":{}}`), 9)
	require.NoError(t, err)
	_, err = f.plans.Replace(ctx, missing)
	assert.ErrorIs(t, err, service.ErrNotFound)

	deleted, err := f.plans.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, deleted.ID)
	_, err = f.plans.GetByDay(ctx, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = f.plans.Delete(ctx, "first")
	assert.ErrorIs(t, err, service.ErrInvalidID)
}

func TestRoutineStaysTakenAfterRemoval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res := f.signup(t, "asha@example.com")

	suggestion, err := f.lifestyle.CreateSuggestion(ctx, &validation.SuggestionInput{Title: ptr("Drink water"), Description: ptr("Two glasses")})
	require.NoError(t, err)
	assert.Equal(t, domain.RepeatDaily, suggestion.Repeat)

	in := &validation.RoutineInput{SuggestionID: suggestion.ID.Hex(), Repeat: "daily", PreferredTime: "morning"}
	routine, err := f.lifestyle.AddRoutine(ctx, res.User.ID, in)
	require.NoError(t, err)
	assert.True(t, routine.IsActive)

	_, err = f.lifestyle.AddRoutine(ctx, res.User.ID, in)
	assert.ErrorIs(t, err, service.ErrConflict)

	listed, err := f.lifestyle.ListRoutines(ctx, res.User.ID, domain.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Suggestion)
	assert.Equal(t, "Drink water", listed[0].Suggestion.Title)

	removed, err := f.lifestyle.RemoveRoutine(ctx, res.User.ID, routine.ID.Hex())
	require.NoError(t, err)
	assert.False(t, removed.IsActive)

	listed, err = f.lifestyle.ListRoutines(ctx, res.User.ID, domain.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = f.lifestyle.AddRoutine(ctx, res.User.ID, in)
	assert.ErrorIs(t, err, service.ErrConflict)

	missing := &validation.RoutineInput{SuggestionID: primitive.NewObjectID().Hex(), Repeat: "daily", PreferredTime: "night"}
	_, err = f.lifestyle.AddRoutine(ctx, res.User.ID, missing)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListingsClampLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		_, err := f.lifestyle.CreateSuggestion(ctx, &validation.SuggestionInput{Title: ptr("Habit"), Description: ptr("Do it")})
		require.NoError(t, err)
	}

	req := domain.NewPageRequest("1", "1000", service.DefaultSuggestionLimit)
	page, err := f.lifestyle.ListSuggestions(ctx, req)
	require.NoError(t, err)
	assert.Len(t, page.Items, 50)
	assert.Equal(t, int64(60), page.TotalCount)
	assert.Equal(t, int64(2), page.TotalPages())

	page, err = f.lifestyle.ListSuggestions(ctx, domain.NewPageRequest("2", "1000", service.DefaultSuggestionLimit))
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
}

func TestYogaUpdateReplacesAndDeleteRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in, err := f.v.Yoga([]byte(`{"title":"Sun salutation","description":"Flow","image":"https://img.example.com/sun.jpg","duration":"20 mins","youtubeId":"abc","tags":["morning"]}`))
	require.NoError(t, err)
	yoga, err := f.yoga.Create(ctx, in)
	require.NoError(t, err)

	in, err = f.v.Yoga([]byte(`{"title":"Moon flow","description":"Evening flow","image":"https://img.example.com/moon.png","duration":"15 mins","youtubeId":"def","isPeriodFriendly":true}`))
	require.NoError(t, err)
	updated, err := f.yoga.Update(ctx, yoga.ID.Hex(), in)
	require.NoError(t, err)
	assert.Equal(t, yoga.ID, updated.ID)
	assert.Equal(t, "Moon flow", updated.Title)
	assert.Empty(t, updated.Tags)
	assert.True(t, updated.IsPeriodFriendly)

	_, err = f.yoga.Delete(ctx, yoga.ID.Hex())
	require.NoError(t, err)
	_, err = f.yoga.Get(ctx, yoga.ID.Hex())
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = f.yoga.Get(ctx, "123")
	assert.ErrorIs(t, err, service.ErrInvalidID)
}

func TestRecipeSearchRequiresQuery(t *testing.T) {
	f := newFixture(t)
	_, err := f.recipes.Search(context.Background(), "  ", domain.PageRequest{Page: 1, Limit: 10})
	assert.True(t, validation.IsValidationError(err))
}

func ptr(s string) *string { return &s }
