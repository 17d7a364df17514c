package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "Alice", v)
	Required("email", "   ", v)
	assert.True(t, len(v) == 1)
	assert.Equal(t, "required", v["email"])
	assert.False(t, v.Empty())
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		bad   bool
	}{
		{"valid", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"trimmed", " 2024-03-01 ", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"wrong format", "01/03/2024", time.Time{}, true},
		{"garbage", "not-a-date", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Violations)
			got := Date("date", tt.input, v)
			if tt.bad {
				assert.Equal(t, "invalid_date", v["date"])
				return
			}
			assert.True(t, v.Empty(), "unexpected violations: %v", v)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		viol  string
	}{
		{"45", 45, ""},
		{"1", 1, ""},
		{"0", 0, "must_be_positive"},
		{"-3", 0, "must_be_positive"},
		{"abc", 0, "invalid_number"},
		{"", 0, "invalid_number"},
	}
	for _, tt := range tests {
		v := make(Violations)
		got := PositiveInt("duration", tt.input, v)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.viol, v["duration"], "input %q", tt.input)
	}
}

func TestMinInt(t *testing.T) {
	v := make(Violations)
	assert.Equal(t, 0, MinInt("min_duration", "0", v))
	assert.True(t, v.Empty())

	MinInt("min_duration", "-1", v)
	assert.Equal(t, "must_not_be_negative", v["min_duration"])
}
