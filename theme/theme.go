// Package theme keeps the light/dark theme selection in a persisted
// key-value slot and shares it with the components mounted below it.
package theme

import "strings"

// Theme is the site color theme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is the theme used when nothing valid is stored.
const Default = Light

// Parse accepts "light" or "dark", ignoring case and surrounding space.
func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return Default, false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == Dark }

func (t Theme) String() string { return string(t) }
