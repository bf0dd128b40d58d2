package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWorkMinutes      = 25
	DefaultBreakMinutes     = 5
	DefaultLongBreakMinutes = 15

	// LongBreakEvery is the number of completed work intervals that earn a long break.
	LongBreakEvery = 4

	// MaxMinutes caps every interval at one day.
	MaxMinutes = 24 * 60
)

// DurationKind names one of the three configurable interval lengths.
type DurationKind int

const (
	DurationWork DurationKind = iota
	DurationBreak
	DurationLongBreak
)

func (kind DurationKind) String() string {
	switch kind {
	case DurationWork:
		return "work"
	case DurationBreak:
		return "break"
	case DurationLongBreak:
		return "long_break"
	default:
		return "unknown"
	}
}

// DurationConfig holds interval lengths in whole minutes.
type DurationConfig struct {
	WorkMinutes      int
	BreakMinutes     int
	LongBreakMinutes int
}

// DefaultDurations returns the 25/5/15 schedule.
func DefaultDurations() DurationConfig {
	return DurationConfig{
		WorkMinutes:      DefaultWorkMinutes,
		BreakMinutes:     DefaultBreakMinutes,
		LongBreakMinutes: DefaultLongBreakMinutes,
	}
}

// Minutes returns the configured value for kind.
func (config DurationConfig) Minutes(kind DurationKind) int {
	switch kind {
	case DurationWork:
		return config.WorkMinutes
	case DurationBreak:
		return config.BreakMinutes
	case DurationLongBreak:
		return config.LongBreakMinutes
	default:
		return 0
	}
}

// Seconds returns the configured value for kind in seconds.
func (config DurationConfig) Seconds(kind DurationKind) int {
	return config.Minutes(kind) * 60
}

// Duration returns the configured value for kind as a time.Duration.
func (config DurationConfig) Duration(kind DurationKind) time.Duration {
	return time.Duration(config.Minutes(kind)) * time.Minute
}

// With returns a copy with kind set to minutes.
func (config DurationConfig) With(kind DurationKind, minutes int) DurationConfig {
	switch kind {
	case DurationWork:
		config.WorkMinutes = minutes
	case DurationBreak:
		config.BreakMinutes = minutes
	case DurationLongBreak:
		config.LongBreakMinutes = minutes
	}
	return config
}

// ValidMinutes reports whether minutes is an accepted interval length.
func ValidMinutes(minutes int) bool {
	return minutes >= 1 && minutes <= MaxMinutes
}

// Valid reports whether every field is within 1..MaxMinutes.
func (config DurationConfig) Valid() bool {
	return ValidMinutes(config.WorkMinutes) && ValidMinutes(config.BreakMinutes) && ValidMinutes(config.LongBreakMinutes)
}

// Sanitized replaces each invalid field with its default.
func (config DurationConfig) Sanitized() DurationConfig {
	defaults := DefaultDurations()
	if !ValidMinutes(config.WorkMinutes) {
		config.WorkMinutes = defaults.WorkMinutes
	}
	if !ValidMinutes(config.BreakMinutes) {
		config.BreakMinutes = defaults.BreakMinutes
	}
	if !ValidMinutes(config.LongBreakMinutes) {
		config.LongBreakMinutes = defaults.LongBreakMinutes
	}
	return config
}

// ParseMinutes parses user input as a whole number of minutes in 1..MaxMinutes.
func ParseMinutes(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !ValidMinutes(parsed) {
		return 0, false
	}
	return parsed, true
}
