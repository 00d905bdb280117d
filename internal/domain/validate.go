package domain

import "regexp"

var hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a "#RRGGBB" 6-digit hex color.
func IsHexColor(s string) bool {
	return hexColorRE.MatchString(s)
}
