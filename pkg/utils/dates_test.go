package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "blank", input: "   ", want: ""},
		{name: "date", input: "2025-09-10", want: "2025-09-10"},
		{name: "local minutes", input: "2025-09-10T09:30", want: "2025-09-10"},
		{name: "local seconds", input: "2025-09-10T23:59:59", want: "2025-09-10"},
		{name: "spaced", input: "2025-09-10 09:30", want: "2025-09-10"},
		{name: "rfc3339 keeps own offset", input: "2025-09-10T23:30:00+09:00", want: "2025-09-10"},
		{name: "rfc3339 utc", input: "2025-09-10T01:00:00Z", want: "2025-09-10"},
		{name: "fractional seconds", input: "2025-09-10T01:00:00.123Z", want: "2025-09-10"},
		{name: "unknown layout with separator", input: "10/09/2025T09:30", want: "10/09/2025"},
		{name: "unknown layout", input: "tomorrow", want: "tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateOnly(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-09-12T18:00")
	assert.True(t, ok)
	assert.Equal(t, 12, d.Day())

	_, ok = ParseDate("")
	assert.False(t, ok)

	_, ok = ParseDate("not a date")
	assert.False(t, ok)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty("", " "))
}
