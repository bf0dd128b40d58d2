package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDurations(t *testing.T) {
	defaults := DefaultDurations()
	assert.Equal(t, 25, defaults.WorkMinutes)
	assert.Equal(t, 5, defaults.BreakMinutes)
	assert.Equal(t, 15, defaults.LongBreakMinutes)
	assert.True(t, defaults.Valid())
	assert.Equal(t, 1500, defaults.Seconds(DurationWork))
	assert.Equal(t, 15*time.Minute, defaults.Duration(DurationLongBreak))
}

func TestDurationConfigWith(t *testing.T) {
	config := DefaultDurations().With(DurationBreak, 7)
	assert.Equal(t, 7, config.BreakMinutes)
	assert.Equal(t, 25, config.WorkMinutes)
	assert.Equal(t, 15, config.LongBreakMinutes)
}

func TestDurationConfigSanitized(t *testing.T) {
	config := DurationConfig{WorkMinutes: 50, BreakMinutes: 0, LongBreakMinutes: -3}
	assert.False(t, config.Valid())

	sanitized := config.Sanitized()
	assert.Equal(t, DurationConfig{WorkMinutes: 50, BreakMinutes: 5, LongBreakMinutes: 15}, sanitized)
}

func TestDurationConfigBoundsMinutes(t *testing.T) {
	assert.True(t, ValidMinutes(1))
	assert.True(t, ValidMinutes(MaxMinutes))
	assert.False(t, ValidMinutes(0))
	assert.False(t, ValidMinutes(MaxMinutes+1))

	config := DurationConfig{WorkMinutes: math.MaxInt / 30, BreakMinutes: MaxMinutes, LongBreakMinutes: MaxMinutes + 1}
	assert.False(t, config.Valid())

	sanitized := config.Sanitized()
	assert.Equal(t, DurationConfig{WorkMinutes: 25, BreakMinutes: MaxMinutes, LongBreakMinutes: 15}, sanitized)
	assert.True(t, sanitized.Valid())
	assert.Equal(t, 24*time.Hour, sanitized.Duration(DurationBreak))
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"25", 25, true},
		{" 3 ", 3, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"2.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1440", 1440, true},
		{"1441", 0, false},
		{"307445734561825861", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseMinutes(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMinutes(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModeNextAndLabel(t *testing.T) {
	assert.Equal(t, ModeBreak, ModeWork.Next())
	assert.Equal(t, ModeWork, ModeBreak.Next())
	assert.Equal(t, "Focus", ModeWork.Label(true))
	assert.Equal(t, "Break", ModeBreak.Label(false))
	assert.Equal(t, "Long Break", ModeBreak.Label(true))

	mode, err := ParseMode("break")
	assert.NoError(t, err)
	assert.Equal(t, ModeBreak, mode)

	_, err = ParseMode("nap")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "00:59", FormatClock(59))
	assert.Equal(t, "00:00", FormatClock(-4))
	assert.Equal(t, "120:05", FormatClock(7205))
}
