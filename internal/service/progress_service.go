package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/validation"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is a new progress entry appended outside the progress endpoints
// (signup and profile edit).
type Snapshot struct {
	Date         time.Time
	Weight       *float64
	Measurements domain.Measurements
	PhotoURL     *string
	Notes        string
}

// ProgressUpdate is the result of an update; PhotoCleanup is set when a replaced photo was deleted.
type ProgressUpdate struct {
	Progress     *domain.Progress
	PhotoCleanup *PhotoCleanup
}

// ProgressService manages a user's progress history.
type ProgressService interface {
	AppendSnapshot(ctx context.Context, userID primitive.ObjectID, snap Snapshot) (*domain.Progress, error)
	Create(ctx context.Context, userID primitive.ObjectID, in *validation.ProgressInput, photo *PhotoUpload) (*domain.Progress, error)
	List(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) (*Page[domain.Progress], error)
	// VisualJourney lists only entries that carry a photo.
	VisualJourney(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) (*Page[domain.Progress], error)
	Update(ctx context.Context, userID primitive.ObjectID, id string, in *validation.ProgressInput, photo *PhotoUpload) (*ProgressUpdate, error)
	Delete(ctx context.Context, userID primitive.ObjectID, id string) (primitive.ObjectID, *PhotoCleanup, error)
	Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	photos       PhotoHost
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progressRepo repository.ProgressRepository, photos PhotoHost, log logrus.FieldLogger) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		photos:       photos,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) AppendSnapshot(ctx context.Context, userID primitive.ObjectID, snap Snapshot) (*domain.Progress, error) {
	if snap.Date.IsZero() {
		snap.Date = s.now()
	}
	progress := &domain.Progress{
		UserID:       userID,
		Date:         snap.Date,
		PhotoURL:     snap.PhotoURL,
		Weight:       snap.Weight,
		Measurements: snap.Measurements,
		Notes:        snap.Notes,
	}
	id, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, err
	}
	progress.ID = id
	return progress, nil
}

func (s *progressService) Create(ctx context.Context, userID primitive.ObjectID, in *validation.ProgressInput, photo *PhotoUpload) (*domain.Progress, error) {
	date, ok := in.ParsedDate()
	if !ok {
		return nil, &validation.Error{Field: "date", Message: "date is required"}
	}

	snap := Snapshot{
		Date:         date,
		Weight:       in.Weight,
		Measurements: in.Measurements.ToDomain(),
		PhotoURL:     in.PhotoURL,
	}
	if in.Notes != nil {
		snap.Notes = *in.Notes
	}
	if photo != nil {
		url, err := s.upload(ctx, photo)
		if err != nil {
			return nil, err
		}
		snap.PhotoURL = &url
	}

	progress, err := s.AppendSnapshot(ctx, userID, snap)
	if err != nil && snap.PhotoURL != nil && photo != nil {
		// Don't leave the fresh upload orphaned
		deletePhotos(ctx, s.photos, s.log, *snap.PhotoURL)
	}
	return progress, err
}

func (s *progressService) List(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) (*Page[domain.Progress], error) {
	items, total, err := s.progressRepo.List(ctx, userID, false, page)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, page), nil
}

func (s *progressService) VisualJourney(ctx context.Context, userID primitive.ObjectID, page domain.PageRequest) (*Page[domain.Progress], error) {
	items, total, err := s.progressRepo.List(ctx, userID, true, page)
	if err != nil {
		return nil, err
	}
	return newPage(items, total, page), nil
}

func (s *progressService) Update(ctx context.Context, userID primitive.ObjectID, id string, in *validation.ProgressInput, photo *PhotoUpload) (*ProgressUpdate, error) {
	progressID, err := parseID(id, "progress")
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.GetByID(ctx, progressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Progress entry not found")
		}
		return nil, err
	}

	// --- Update fields ---
	if date, ok := in.ParsedDate(); ok {
		progress.Date = date
	}
	if in.Weight != nil {
		progress.Weight = in.Weight
	}
	if in.Notes != nil {
		progress.Notes = *in.Notes
	}
	if in.Measurements != nil {
		progress.Measurements.Merge(in.Measurements.ToDomain())
	}

	// --- Handle photo update ---
	var oldPhoto string
	if progress.HasPhoto() {
		oldPhoto = *progress.PhotoURL
	}
	newPhoto := in.PhotoURL
	if photo != nil {
		url, err := s.upload(ctx, photo)
		if err != nil {
			return nil, err
		}
		newPhoto = &url
	}
	if newPhoto != nil {
		progress.PhotoURL = newPhoto
	}

	if err := s.progressRepo.Update(ctx, progress); err != nil {
		if photo != nil {
			deletePhotos(ctx, s.photos, s.log, *newPhoto)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Progress entry not found")
		}
		return nil, err
	}

	result := &ProgressUpdate{Progress: progress}
	if oldPhoto != "" && newPhoto != nil && *newPhoto != oldPhoto {
		result.PhotoCleanup = deletePhotos(ctx, s.photos, s.log, oldPhoto)
	}
	return result, nil
}

func (s *progressService) Delete(ctx context.Context, userID primitive.ObjectID, id string) (primitive.ObjectID, *PhotoCleanup, error) {
	progressID, err := parseID(id, "progress")
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	progress, err := s.progressRepo.GetByID(ctx, progressID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, nil, notFound("Progress entry not found")
		}
		return primitive.NilObjectID, nil, err
	}
	if err := s.progressRepo.Delete(ctx, progressID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, nil, notFound("Progress entry not found")
		}
		return primitive.NilObjectID, nil, err
	}

	var cleanup *PhotoCleanup
	if progress.HasPhoto() {
		cleanup = deletePhotos(ctx, s.photos, s.log, *progress.PhotoURL)
	}
	return progress.ID, cleanup, nil
}

func (s *progressService) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.Progress, error) {
	progress, err := s.progressRepo.Latest(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return progress, err
}

func (s *progressService) upload(ctx context.Context, photo *PhotoUpload) (string, error) {
	if s.photos == nil {
		return "", fmt.Errorf("%w: no photo storage configured", ErrPhotoUpload)
	}
	url, err := s.photos.Upload(ctx, photo.Body, photo.Size, photo.ContentType)
	if err != nil {
		s.log.WithError(err).Error("Photo upload failed")
		return "", fmt.Errorf("%w: %v", ErrPhotoUpload, err)
	}
	return url, nil
}
