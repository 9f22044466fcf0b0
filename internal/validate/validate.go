// Package validate holds the pure input checks shared by the public
// submission workflow and the admin CRUD surface.
package validate

import "regexp"

// emailPattern accepts local@domain.tld shapes: non-whitespace local
// part, non-whitespace domain with at least one dot. No deliverability
// checking.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidRating reports whether n is an allowed star rating (1..5).
func IsValidRating(n int) bool {
	return n >= 1 && n <= 5
}
