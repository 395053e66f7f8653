package smartimport

import (
	"regexp"
	"unicode/utf8"
)

var emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Valid reports whether a candidate is worth keeping. A malformed email
// voids the whole candidate, not just the field: half-garbage contact rows
// are worse than none.
func Valid(c Candidate) bool {
	if c.Name == "" && c.Company == "" {
		return false
	}
	if c.Name != "" {
		if n := utf8.RuneCountInString(c.Name); n < 2 || n > 100 {
			return false
		}
	}
	if c.Email != "" && !emailShapeRe.MatchString(c.Email) {
		return false
	}
	return true
}
