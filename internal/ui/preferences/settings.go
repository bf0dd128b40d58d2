package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"hourglass/internal/core/model"
)

// Fields holds the raw values of the preferences form.
type Fields struct {
	Work          string
	Break         string
	LongBreak     string
	Theme         model.Theme
	Muted         bool
	PauseWhenIdle bool
}

// FieldsFrom fills the form from saved settings.
func FieldsFrom(settings model.Settings) Fields {
	durations := settings.Durations.Sanitized()
	return Fields{
		Work:          strconv.Itoa(durations.WorkMinutes),
		Break:         strconv.Itoa(durations.BreakMinutes),
		LongBreak:     strconv.Itoa(durations.LongBreakMinutes),
		Theme:         settings.Theme,
		Muted:         settings.Muted,
		PauseWhenIdle: settings.PauseWhenIdle,
	}
}

// Apply returns base updated with the form values. Durations that are not
// positive whole minutes keep their base value and are named in the error.
func (fields Fields) Apply(base model.Settings) (model.Settings, error) {
	settings := base
	var invalid []string

	entries := []struct {
		kind  model.DurationKind
		label string
		value string
	}{
		{kind: model.DurationWork, label: "focus", value: fields.Work},
		{kind: model.DurationBreak, label: "break", value: fields.Break},
		{kind: model.DurationLongBreak, label: "long break", value: fields.LongBreak},
	}
	for _, entry := range entries {
		minutes, ok := model.ParseMinutes(entry.value)
		if !ok {
			invalid = append(invalid, entry.label)
			continue
		}
		settings.Durations = settings.Durations.With(entry.kind, minutes)
	}

	if theme, ok := model.ParseTheme(string(fields.Theme)); ok {
		settings.Theme = theme
	}
	settings.Muted = fields.Muted
	settings.PauseWhenIdle = fields.PauseWhenIdle

	if len(invalid) > 0 {
		return settings, fmt.Errorf("invalid minutes for %s", strings.Join(invalid, ", "))
	}
	return settings, nil
}
