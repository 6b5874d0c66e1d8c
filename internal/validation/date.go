package validation

import (
	"errors"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errInvalidDate = errors.New("invalid date")

// ParseDate accepts RFC 3339 timestamps and plain calendar dates. Values
// without a zone are read as UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate
}
