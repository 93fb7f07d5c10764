package util

import "strings"

// Truthy reports whether an env style flag value is on. Case and
// surrounding spaces are ignored; anything but true, 1, yes or on is off.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
