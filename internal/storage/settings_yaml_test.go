package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourglass/internal/core/model"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFileName))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFileName)
	want := model.Settings{
		Durations:     model.DurationConfig{WorkMinutes: 50, BreakMinutes: 10, LongBreakMinutes: 30},
		Theme:         model.ThemeLight,
		Muted:         true,
		PauseWhenIdle: true,
	}

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSettings_InvalidFieldsFallBackIndividually(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	raw := `work_minutes: 40
break_minutes: 0
long_break_minutes: -3
theme: neon
muted: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DurationConfig{WorkMinutes: 40, BreakMinutes: 5, LongBreakMinutes: 15}, settings.Durations)
	assert.Equal(t, model.ThemeDark, settings.Theme)
	assert.True(t, settings.Muted)
	assert.False(t, settings.PauseWhenIdle)
}

func TestLoadSettings_OversizedMinutesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	raw := `work_minutes: 307445734561825861
break_minutes: 1440
long_break_minutes: 1441
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DurationConfig{WorkMinutes: 25, BreakMinutes: 1440, LongBreakMinutes: 15}, settings.Durations)
}

func TestLoadSettings_CorruptFileReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	settings, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestRemoveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, SaveSettings(path, model.DefaultSettings()))

	require.NoError(t, RemoveSettings(path))
	require.NoError(t, RemoveSettings(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
