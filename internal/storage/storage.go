package storage

import (
	"context"
	"errors"
	"io"
)

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// PutObject uploads body under objectKey.
	PutObject(ctx context.Context, objectKey string, body io.Reader, size int64, contentType string) error

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// Error constants for storage layer
var (
	ErrObjectNotFound = errors.New("object not found in storage")
	// ErrForeignURL means the URL is not served by this photo host, so there is nothing to delete.
	ErrForeignURL = errors.New("url is not hosted by this photo storage")
	ErrInvalidURL = errors.New("cannot derive an object key from url")
)
