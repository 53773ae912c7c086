package repository

import (
	"errors"
	"time"

	"github.com/forgo/clubhub/api/internal/database"
)

// affectedOrNotFound turns a zero-row mutation into database.ErrNotFound
func affectedOrNotFound(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}

// notFoundAsNil maps database.ErrNotFound to a nil error for lookups
// that report absence with a nil result.
func notFoundAsNil(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	return err
}

// getString extracts a string value from a row
func getString(row database.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a row
func getStringPtr(row database.Row, key string) *string {
	if v, ok := row[key].(string); ok {
		return &v
	}
	return nil
}

// getInt64 extracts an integer value from a row
func getInt64(row database.Row, key string) int64 {
	switch v := row[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// getInt64Ptr extracts an optional integer value from a row
func getInt64Ptr(row database.Row, key string) *int64 {
	if row[key] == nil {
		return nil
	}
	v := getInt64(row, key)
	return &v
}

// getTime extracts a timestamp from a row
func getTime(row database.Row, key string) time.Time {
	switch v := row[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
