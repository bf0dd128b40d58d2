package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"hourglass/internal/core/model"
	"hourglass/internal/ui/preferences"
)

var settingsFlagNames = []string{"work", "break", "long-break", "theme", "muted", "pause-when-idle"}

func newSettingsCmd() *cobra.Command {
	var (
		work          int
		breakMinutes  int
		longBreak     int
		themeName     string
		muted         bool
		pauseWhenIdle bool
		edit          bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change durations, theme and notification preferences",
		Long: `Show or change saved preferences.

Without flags the current settings are printed. Pass flags to change single
values, or --edit to fill in an interactive form. A running desktop app picks
up the new values immediately.`,
		Aliases: []string{"config", "prefs"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			current, err := s.store.Settings()
			if err != nil {
				s.logger.Warn("load settings, using defaults", "error", err)
			}

			fields := preferences.FieldsFrom(current)
			switch {
			case edit:
				if err := runSettingsForm(&fields); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "No changes saved.")
						return nil
					}
					return fmt.Errorf("settings form: %w", err)
				}
			case anyFlagChanged(cmd, settingsFlagNames):
				flags := cmd.Flags()
				if flags.Changed("work") {
					fields.Work = strconv.Itoa(work)
				}
				if flags.Changed("break") {
					fields.Break = strconv.Itoa(breakMinutes)
				}
				if flags.Changed("long-break") {
					fields.LongBreak = strconv.Itoa(longBreak)
				}
				if flags.Changed("theme") {
					theme, ok := model.ParseTheme(themeName)
					if !ok {
						return fmt.Errorf("unknown theme %q (use dark or light)", themeName)
					}
					fields.Theme = theme
				}
				if flags.Changed("muted") {
					fields.Muted = muted
				}
				if flags.Changed("pause-when-idle") {
					fields.PauseWhenIdle = pauseWhenIdle
				}
			default:
				writeSettings(cmd.OutOrStdout(), current)
				return nil
			}

			updated, err := fields.Apply(current)
			if err != nil {
				return err
			}
			saved, err := s.store.UpdateSettings(func(settings *model.Settings) {
				*settings = updated
			})
			if err != nil {
				return err
			}
			s.logger.Debug("settings saved", "path", s.store.SettingsPath())
			writeSettings(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	cmd.Flags().IntVar(&work, "work", model.DefaultWorkMinutes, "Focus interval length in minutes")
	cmd.Flags().IntVar(&breakMinutes, "break", model.DefaultBreakMinutes, "Break length in minutes")
	cmd.Flags().IntVar(&longBreak, "long-break", model.DefaultLongBreakMinutes, "Long break length in minutes")
	cmd.Flags().StringVar(&themeName, "theme", string(model.ThemeDark), "Color theme (dark or light)")
	cmd.Flags().BoolVar(&muted, "muted", false, "Suppress completion notifications")
	cmd.Flags().BoolVar(&pauseWhenIdle, "pause-when-idle", false, "Pause focus intervals while you are away")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Edit settings in an interactive form")

	return cmd
}

func runSettingsForm(fields *preferences.Fields) error {
	themeValue := string(fields.Theme)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus minutes").
				Value(&fields.Work).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Break minutes").
				Value(&fields.Break).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Long break minutes").
				Description(fmt.Sprintf("Every %d focus intervals", model.LongBreakEvery)).
				Value(&fields.LongBreak).
				Validate(validateMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", string(model.ThemeDark)),
					huh.NewOption("Light", string(model.ThemeLight)),
				).
				Value(&themeValue),
			huh.NewConfirm().
				Title("Mute completion notifications?").
				Value(&fields.Muted),
			huh.NewConfirm().
				Title("Pause focus while you are away?").
				Value(&fields.PauseWhenIdle),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}
	fields.Theme = model.Theme(themeValue)
	return nil
}

func validateMinutes(value string) error {
	if _, ok := model.ParseMinutes(value); !ok {
		return fmt.Errorf("enter a whole number of minutes from 1 to %d", model.MaxMinutes)
	}
	return nil
}

func writeSettings(w io.Writer, settings model.Settings) {
	durations := settings.Durations
	fmt.Fprintf(w, "%s%d min\n", padRight("focus", 18), durations.WorkMinutes)
	fmt.Fprintf(w, "%s%d min\n", padRight("break", 18), durations.BreakMinutes)
	fmt.Fprintf(w, "%s%d min\n", padRight("long break", 18), durations.LongBreakMinutes)
	fmt.Fprintf(w, "%s%s\n", padRight("theme", 18), settings.Theme)
	fmt.Fprintf(w, "%s%t\n", padRight("muted", 18), settings.Muted)
	fmt.Fprintf(w, "%s%t\n", padRight("pause when idle", 18), settings.PauseWhenIdle)
}

func anyFlagChanged(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
