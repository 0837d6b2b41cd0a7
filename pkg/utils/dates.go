package utils

import (
	"strings"
	"time"
)

// Date layouts accepted from the backend and from persisted records
const (
	DATE_LAYOUT          = "2006-01-02"
	LOCAL_MINUTE_LAYOUT  = "2006-01-02T15:04"
	LOCAL_SECOND_LAYOUT  = "2006-01-02T15:04:05"
	SPACED_MINUTE_LAYOUT = "2006-01-02 15:04"
	SPACED_SECOND_LAYOUT = "2006-01-02 15:04:05"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	LOCAL_SECOND_LAYOUT,
	LOCAL_MINUTE_LAYOUT,
	SPACED_SECOND_LAYOUT,
	SPACED_MINUTE_LAYOUT,
	DATE_LAYOUT,
}

// DateOnly reduces a timestamp or date string to its YYYY-MM-DD date component.
// Offsets are not converted, so the date stays the one the timestamp was written in.
// Empty input yields an empty string.
func DateOnly(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DATE_LAYOUT)
		}
	}

	// Unknown layout: keep whatever precedes the time separator
	if i := strings.IndexAny(value, "T "); i > 0 {
		return value[:i]
	}
	return value
}

// ParseDate parses a YYYY-MM-DD date or any accepted timestamp layout
func ParseDate(value string) (time.Time, bool) {
	d := DateOnly(value)
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DATE_LAYOUT, d)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FirstNonEmpty returns the first argument that is not blank
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
