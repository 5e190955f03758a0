// Package validate holds construction-time checks for primitive values.
// Every failure is an errs.InvalidInput error naming the offending field.
package validate

import (
	"slices"
	"strings"

	"github.com/TFMV/lazywalk/internal/errs"
)

const op = "validate"

// NonEmpty fails when s is empty or only whitespace.
func NonEmpty(name, s string) error {
	if strings.TrimSpace(s) == "" {
		return errs.Invalidf(op, "", "%s must not be empty", name)
	}
	return nil
}

// NonNegative fails when n < 0.
func NonNegative(name string, n int) error {
	if n < 0 {
		return errs.Invalidf(op, "", "%s must not be negative, got %d", name, n)
	}
	return nil
}

// InRange fails unless lo <= v <= hi.
func InRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return errs.Invalidf(op, "", "%s must be within [%g, %g], got %g", name, lo, hi, v)
	}
	return nil
}

// OneOf fails unless s is one of allowed.
func OneOf(name, s string, allowed ...string) error {
	if !slices.Contains(allowed, s) {
		return errs.Invalidf(op, "", "%s must be one of %s, got %q", name, strings.Join(allowed, "|"), s)
	}
	return nil
}
