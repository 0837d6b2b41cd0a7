// Package theme resolves the effective color theme and remaps palette colors.
// Every function takes the theme explicitly; there is no process-wide
// current theme.
package theme

import (
	"strings"
)

// Preference is the user's stored theme choice
type Preference string

const (
	PreferenceSystem Preference = "system"
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
)

// Theme is the effective theme after resolving the preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParsePreference parses a stored value, falling back to system
func ParsePreference(value string) Preference {
	switch Preference(strings.ToLower(strings.TrimSpace(value))) {
	case PreferenceLight:
		return PreferenceLight
	case PreferenceDark:
		return PreferenceDark
	default:
		return PreferenceSystem
	}
}

// Valid reports whether p is one of the known preferences
func (p Preference) Valid() bool {
	return p == PreferenceSystem || p == PreferenceLight || p == PreferenceDark
}

// Resolve picks the effective theme; systemDark is the platform setting
func Resolve(pref Preference, systemDark bool) Theme {
	switch pref {
	case PreferenceLight:
		return Light
	case PreferenceDark:
		return Dark
	}
	if systemDark {
		return Dark
	}
	return Light
}

// darkPalette maps light palette colors to their dark counterparts
var darkPalette = map[string]string{
	"#ffffff": "#121212",
	"#f5f5f5": "#1e1e1e",
	"#f0f4f8": "#1f2933",
	"#e0e0e0": "#333333",
	"#000000": "#ffffff",
	"#111111": "#eeeeee",
	"#333333": "#e0e0e0",
	"#666666": "#b0b0b0",
	"#999999": "#8a8a8a",
	"#007aff": "#0a84ff",
	"#34c759": "#30d158",
	"#ff3b30": "#ff453a",
	"white":   "#121212",
	"black":   "#ffffff",
}

// colorKeys are the style properties that carry colors
var colorKeys = map[string]bool{
	"color":             true,
	"backgroundColor":   true,
	"borderColor":       true,
	"borderBottomColor": true,
	"borderTopColor":    true,
	"shadowColor":       true,
	"tintColor":         true,
	"placeholderColor":  true,
}

// RemapColor returns the color to use for c under t.
// Light leaves colors untouched; unknown colors pass through.
func RemapColor(t Theme, c string) string {
	if t != Dark {
		return c
	}
	if mapped, ok := darkPalette[strings.ToLower(strings.TrimSpace(c))]; ok {
		return mapped
	}
	return c
}

// PatchStyle returns a copy of style with its color properties remapped for t
func PatchStyle(t Theme, style map[string]string) map[string]string {
	patched := make(map[string]string, len(style))
	for k, v := range style {
		if colorKeys[k] {
			patched[k] = RemapColor(t, v)
			continue
		}
		patched[k] = v
	}
	return patched
}
