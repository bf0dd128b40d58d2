package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"hourglass/internal/core/model"
)

// SettingsFileName is the name of the user settings file inside the data directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes      int    `yaml:"work_minutes"`
	BreakMinutes     int    `yaml:"break_minutes"`
	LongBreakMinutes int    `yaml:"long_break_minutes"`
	Theme            string `yaml:"theme"`
	Muted            bool   `yaml:"muted"`
	PauseWhenIdle    bool   `yaml:"pause_when_idle"`
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	durations := settings.Durations.Sanitized()
	fileData := yamlSettings{
		WorkMinutes:      durations.WorkMinutes,
		BreakMinutes:     durations.BreakMinutes,
		LongBreakMinutes: durations.LongBreakMinutes,
		Theme:            string(settings.Theme),
		Muted:            settings.Muted,
		PauseWhenIdle:    settings.PauseWhenIdle,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	// Write then rename so watchers never observe a half-written file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

// RemoveSettings deletes the settings file. A missing file is not an error.
func RemoveSettings(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if model.ValidMinutes(fileData.WorkMinutes) {
		settings.Durations.WorkMinutes = fileData.WorkMinutes
	}
	if model.ValidMinutes(fileData.BreakMinutes) {
		settings.Durations.BreakMinutes = fileData.BreakMinutes
	}
	if model.ValidMinutes(fileData.LongBreakMinutes) {
		settings.Durations.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if theme, ok := model.ParseTheme(fileData.Theme); ok {
		settings.Theme = theme
	}

	settings.Muted = fileData.Muted
	settings.PauseWhenIdle = fileData.PauseWhenIdle
}
