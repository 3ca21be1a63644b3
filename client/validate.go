package client

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// validator collects violations for one group of checks.
type validator struct {
	violations []string
}

func (v *validator) add(format string, args ...any) {
	v.violations = append(v.violations, fmt.Sprintf(format, args...))
}

func (v *validator) notBlank(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add("%s must not be blank", field)
	}
}

func (v *validator) notNil(field string, isNil bool) {
	if isNil {
		v.add("%s must not be null", field)
	}
}

func (v *validator) notZeroTime(field string, t time.Time) {
	if t.IsZero() {
		v.add("%s must not be null", field)
	}
}

func (v *validator) notEmpty(field string, n int) {
	if n == 0 {
		v.add("%s must not be empty", field)
	}
}

func (v *validator) noBlanks(field string, values []string) {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			v.add("%s must not contain blank values", field)
			return
		}
	}
}

func (v *validator) pattern(field, value string, re *regexp.Regexp) {
	if !re.MatchString(value) {
		v.add("%s must conform to the pattern %s", field, re.String())
	}
}

func (v *validator) between(field string, value, lo, hi int) {
	if value < lo || value > hi {
		v.add("%s must be between %d and %d", field, lo, hi)
	}
}

func (v *validator) err() error {
	if len(v.violations) == 0 {
		return nil
	}

	return &ValidationError{Violations: v.violations}
}
