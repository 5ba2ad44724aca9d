package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02", RFC3339, or SQLite
// CURRENT_TIMESTAMP ("2006-01-02 15:04:05") format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// formatDate renders a date-only column value.
func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// formatDateTime renders a datetime column value.
func formatDateTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// nullDate renders an optional date-only column value.
func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}

// nullDateTime renders an optional datetime column value.
func nullDateTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDateTime(*t)
}

// parseNullTime converts a scanned nullable date column into *time.Time.
func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullString renders an optional text column value so empty strings store as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
