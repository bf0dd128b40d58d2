package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against an isolated data directory.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, name := range []string{"HOURGLASS_CONFIG_PATH", "HOURGLASS_DATA_DIR", "HOURGLASS_DB_PATH", "HOURGLASS_LOG_LEVEL", "HOURGLASS_TICK"} {
		t.Setenv(name, "")
	}

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, expected := range []string{
		"Hourglass counts down focus intervals",
		"Available Commands:",
		"autostart",
		"gui",
		"history",
		"reset",
		"settings",
		"tui",
		"--data-dir",
		"--log-level",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestRootCmd_InvalidCommand(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"invalid-command"})

	assert.Error(t, cmd.Execute())
}

func TestAutostartSubcommands(t *testing.T) {
	var autostart []string
	for _, cmd := range NewRootCmd().Commands() {
		if cmd.Name() != "autostart" {
			continue
		}
		for _, sub := range cmd.Commands() {
			autostart = append(autostart, sub.Name())
		}
	}
	assert.ElementsMatch(t, []string{"enable", "disable", "status"}, autostart)
}

func TestSettingsCmd_ShowsDefaults(t *testing.T) {
	output, err := runCLI(t, t.TempDir(), "settings")
	require.NoError(t, err)

	assert.Contains(t, output, "focus             25 min")
	assert.Contains(t, output, "long break        15 min")
	assert.Contains(t, output, "theme             dark")
}

func TestSettingsCmd_UpdatesSelectedValues(t *testing.T) {
	dir := t.TempDir()

	output, err := runCLI(t, dir, "settings", "--work", "50", "--theme", "light", "--muted")
	require.NoError(t, err)
	assert.Contains(t, output, "focus             50 min")
	assert.Contains(t, output, "break             5 min")
	assert.Contains(t, output, "muted             true")

	output, err = runCLI(t, dir, "settings")
	require.NoError(t, err)
	assert.Contains(t, output, "focus             50 min")
	assert.Contains(t, output, "theme             light")
}

func TestSettingsCmd_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "settings", "--break", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid minutes for break")

	_, err = runCLI(t, dir, "settings", "--theme", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "sepia"`)

	output, err := runCLI(t, dir, "settings")
	require.NoError(t, err)
	assert.Contains(t, output, "break             5 min")
}

func TestResetCmd_RestoresDurations(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "settings", "--work", "45", "--theme", "light")
	require.NoError(t, err)

	output, err := runCLI(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, output, "Durations restored to 25/5/15 min.")

	output, err = runCLI(t, dir, "settings")
	require.NoError(t, err)
	assert.Contains(t, output, "focus             25 min")
	assert.Contains(t, output, "theme             light", "reset keeps the theme")
}

func TestHistoryCmd_Empty(t *testing.T) {
	output, err := runCLI(t, t.TempDir(), "history")
	require.NoError(t, err)
	assert.Contains(t, output, "No completed intervals yet.")
}
