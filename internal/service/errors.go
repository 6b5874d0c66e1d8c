package service

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidID          = errors.New("invalid id")
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
	ErrPhotoUpload        = errors.New("failed to upload photo")
)

// Error attaches a caller-facing message to one of the sentinel errors above.
// errors.Is matches it against its Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func unauthorized(format string, args ...any) error {
	return newError(ErrUnauthorized, format, args...)
}

// parseID converts a path id into an ObjectID. what names the entity in the
// error message, e.g. "suggestion" -> "Invalid suggestion ID".
func parseID(raw, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, newError(ErrInvalidID, "Invalid %s ID", what)
	}
	return id, nil
}
