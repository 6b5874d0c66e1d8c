package validation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error reports a malformed, missing or forbidden field in a request payload.
type Error struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a *Error.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// fromDecodeError turns an encoding/json failure into a field-level Error.
func fromDecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "payload"
		}
		return newError(field, "%s must be of type %s", field, jsonTypeName(typeErr.Type.Kind().String()))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newError("", "Invalid payload: malformed JSON")
	}
	return newError("", "Invalid payload: %v", err)
}

func jsonTypeName(kind string) string {
	switch kind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "slice", "array":
		return "array"
	case "struct", "map":
		return "object"
	case "ptr":
		return "value"
	default:
		return "number"
	}
}
