package validation

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar format accepted by all date form fields.
const DateLayout = "2006-01-02"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Date parses an ISO calendar date, recording a violation on failure.
func Date(field, value string, v Violations) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		v[field] = "invalid_date"
		return time.Time{}
	}
	return t
}

// Int parses an integer, recording a violation on failure.
func Int(field, value string, v Violations) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v[field] = "invalid_number"
		return 0
	}
	return n
}

// PositiveInt parses an integer that must be > 0.
func PositiveInt(field, value string, v Violations) int {
	n := Int(field, value, v)
	if _, bad := v[field]; bad {
		return 0
	}
	if n <= 0 {
		v[field] = "must_be_positive"
		return 0
	}
	return n
}

// MinInt parses an integer that must be >= 0.
func MinInt(field, value string, v Violations) int {
	n := Int(field, value, v)
	if _, bad := v[field]; bad {
		return 0
	}
	if n < 0 {
		v[field] = "must_not_be_negative"
		return 0
	}
	return n
}
