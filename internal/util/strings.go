// Package util provides shared utility functions used across the application.
package util

import "strings"

// StripHash removes the # prefix from a hex colour string.
// This is useful for formats that don't expect the hash prefix.
func StripHash(hex string) string {
	return strings.TrimPrefix(hex, "#")
}

// DisplayHex renders a hex colour the way it is shown to users: upper case
// with a leading '#'.
func DisplayHex(hex string) string {
	return "#" + strings.ToUpper(StripHash(hex))
}
