// Package normalize provides the string clean-up applied to form input
// before it is validated or stored.
package normalize

import "strings"

// Email trims and lowercases an email address. Registered emails double as
// login ids, so both go through here.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person or employer name.
// Use text.Fold() for case-insensitive comparison keys.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Line trims s and collapses runs of internal whitespace (including
// newlines pasted into single-line inputs) to one space.
func Line(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status trims and lowercases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
