package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ProfileView is the user's stable fields plus the latest weight and measurements.
type ProfileView struct {
	Name         string              `json:"name"`
	EmailID      string              `json:"emailId"`
	DOB          string              `json:"dob"`
	PhotoURL     string              `json:"photoUrl"`
	Height       *float64            `json:"height"`
	Weight       *float64            `json:"weight"`
	Measurements domain.Measurements `json:"measurements"`
}

// ProfileEditResult reports which parts of a profile edit were applied.
type ProfileEditResult struct {
	User            *domain.User
	Progress        *domain.Progress
	UserUpdated     bool
	ProgressUpdated bool
}

// AccountDeletion summarizes what a deleted account took with it.
type AccountDeletion struct {
	ProgressDeleted int64         `json:"progressDeleted"`
	RoutinesDeleted int64         `json:"routinesDeleted"`
	PhotoCleanup    *PhotoCleanup `json:"photoCleanup"`
}

// ProfileService reads and changes the authenticated user's account.
type ProfileService interface {
	View(ctx context.Context, user *domain.User) (*ProfileView, error)
	Edit(ctx context.Context, user *domain.User, in *validation.ProfileEditInput) (*ProfileEditResult, error)
	ChangePassword(ctx context.Context, user *domain.User, in *validation.PasswordChangeInput) error
	// DeleteAccount removes the user's progress history, hosted photos and
	// routines, then the user. Photo deletion failures do not stop it.
	DeleteAccount(ctx context.Context, user *domain.User) (*AccountDeletion, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	routineRepo  repository.UserLifestyleRepository
	progress     ProgressService
	photos       PhotoHost
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	routineRepo repository.UserLifestyleRepository,
	progress ProgressService,
	photos PhotoHost,
	log logrus.FieldLogger,
) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		routineRepo:  routineRepo,
		progress:     progress,
		photos:       photos,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *profileService) View(ctx context.Context, user *domain.User) (*ProfileView, error) {
	view := &ProfileView{
		Name:     user.Name,
		EmailID:  user.EmailID,
		DOB:      user.DOB,
		PhotoURL: user.PhotoURL,
		Height:   user.Height,
	}
	latest, err := s.progress.Latest(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		view.Weight = latest.Weight
		view.Measurements = latest.Measurements
	}
	return view, nil
}

// Edit applies stable fields to the user and records weight and measurements
// as a new progress snapshot. Values not sent are carried over from the latest
// snapshot so the history stays complete.
func (s *profileService) Edit(ctx context.Context, user *domain.User, in *validation.ProfileEditInput) (*ProfileEditResult, error) {
	result := &ProfileEditResult{User: user}

	if in.HasStableUpdates() {
		updated := *user
		if in.Name != nil {
			updated.Name = *in.Name
		}
		if in.EmailID != nil {
			updated.EmailID = *in.EmailID
		}
		if in.DOB != nil {
			updated.DOB = *in.DOB
		}
		if in.PhotoURL != nil {
			updated.PhotoURL = *in.PhotoURL
		}
		if in.Height != nil {
			updated.Height = in.Height
		}
		if err := s.userRepo.Update(ctx, &updated); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, conflict("User with this email already exists")
			}
			if errors.Is(err, repository.ErrNotFound) {
				return nil, notFound("User not found")
			}
			return nil, err
		}
		result.User = &updated
		result.UserUpdated = true
	}

	if in.HasProgressUpdates() {
		snap := Snapshot{Date: s.now()}
		latest, err := s.progress.Latest(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			snap.Weight = latest.Weight
			snap.Measurements = latest.Measurements
		}
		if in.Weight != nil {
			snap.Weight = in.Weight
		}
		if in.Measurements != nil {
			snap.Measurements.Merge(in.Measurements.ToDomain())
		}
		progress, err := s.progress.AppendSnapshot(ctx, user.ID, snap)
		if err != nil {
			return nil, err
		}
		result.Progress = progress
		result.ProgressUpdated = true
	}
	return result, nil
}

func (s *profileService) ChangePassword(ctx context.Context, user *domain.User, in *validation.PasswordChangeInput) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.ExistingPassword)); err != nil {
		return &validation.Error{Field: "existingPassword", Message: "Existing password is incorrect"}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), PasswordCost)
	if err != nil {
		return ErrHashingFailed
	}
	updated := *user
	updated.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("User not found")
		}
		return err
	}
	user.PasswordHash = updated.PasswordHash
	return nil
}

func (s *profileService) DeleteAccount(ctx context.Context, user *domain.User) (*AccountDeletion, error) {
	entries, err := s.progressRepo.ListAllByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(entries)+1)
	for _, entry := range entries {
		if entry.HasPhoto() {
			urls = append(urls, *entry.PhotoURL)
		}
	}
	urls = append(urls, user.PhotoURL)

	result := &AccountDeletion{PhotoCleanup: deletePhotos(ctx, s.photos, s.log, urls...)}

	if result.ProgressDeleted, err = s.progressRepo.DeleteByUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if result.RoutinesDeleted, err = s.routineRepo.DeleteByUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"userId":          user.ID.Hex(),
		"progressDeleted": result.ProgressDeleted,
		"photosDeleted":   result.PhotoCleanup.Deleted,
		"photosFailed":    len(result.PhotoCleanup.Failed),
	}).Info("Account deleted")
	return result, nil
}
