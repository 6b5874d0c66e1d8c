package service

import (
	"context"
	"errors"
	"io"

	"alcyxob/wellness-app/internal/storage"

	"github.com/sirupsen/logrus"
)

// PhotoHost uploads and deletes hosted photos. *storage.Photos implements it.
type PhotoHost interface {
	Upload(ctx context.Context, body io.Reader, size int64, contentType string) (string, error)
	// Delete removes the photo behind url and returns the storage key it derived.
	// URLs the host does not serve yield storage.ErrForeignURL.
	Delete(ctx context.Context, url string) (string, error)
}

// PhotoUpload is a photo received with a request.
type PhotoUpload struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// PhotoFailure is one hosted photo that could not be deleted.
type PhotoFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// PhotoCleanup reports the outcome of a best-effort photo deletion.
type PhotoCleanup struct {
	Deleted int            `json:"deleted"`
	Failed  []PhotoFailure `json:"failed,omitempty"`
}

// HasFailures reports whether any deletion failed.
func (p *PhotoCleanup) HasFailures() bool {
	return p != nil && len(p.Failed) > 0
}

// deletePhotos removes every hosted photo in urls, continuing past failures.
// Empty and foreign URLs (e.g. the default avatar) are skipped.
func deletePhotos(ctx context.Context, host PhotoHost, log logrus.FieldLogger, urls ...string) *PhotoCleanup {
	cleanup := &PhotoCleanup{}
	if host == nil {
		return cleanup
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		key, err := host.Delete(ctx, url)
		switch {
		case err == nil:
			cleanup.Deleted++
		case errors.Is(err, storage.ErrForeignURL):
			// not ours to delete
		default:
			log.WithError(err).WithFields(logrus.Fields{"url": url, "key": key}).Warn("Failed to delete hosted photo")
			cleanup.Failed = append(cleanup.Failed, PhotoFailure{URL: url, Error: err.Error()})
		}
	}
	return cleanup
}
