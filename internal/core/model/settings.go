package model

import "fmt"

// Theme selects the color scheme used by renderers.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for value, or false if it is unknown.
func ParseTheme(value string) (Theme, bool) {
	switch Theme(value) {
	case ThemeLight, ThemeDark:
		return Theme(value), true
	default:
		return ThemeDark, false
	}
}

// Settings defines the persisted user preferences.
type Settings struct {
	Durations     DurationConfig
	Theme         Theme
	Muted         bool
	PauseWhenIdle bool
}

// DefaultSettings returns default settings for Hourglass.
func DefaultSettings() Settings {
	return Settings{
		Durations:     DefaultDurations(),
		Theme:         ThemeDark,
		Muted:         false,
		PauseWhenIdle: false,
	}
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
