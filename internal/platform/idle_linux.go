//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hourglass/internal/core/timekeeper"
)

// idleProbe is an external command that prints the idle time in milliseconds.
type idleProbe struct {
	name string
	args []string
}

var (
	xprintidleProbe = idleProbe{name: "xprintidle"}
	// GNOME exposes the idle time over D-Bus on both X11 and Wayland.
	mutterProbe = idleProbe{
		name: "gdbus",
		args: []string{
			"call", "--session",
			"--dest", "org.gnome.Mutter.IdleMonitor",
			"--object-path", "/org/gnome/Mutter/IdleMonitor/Core",
			"--method", "org.gnome.Mutter.IdleMonitor.GetIdletime",
		},
	}
)

var idleMillisPattern = regexp.MustCompile(`(\d+)`)

type idleProvider struct {
	probes []idleProbe
}

func newIdleProvider() IdleProvider {
	candidates := []idleProbe{mutterProbe}
	if !strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		// xprintidle only sees X11 input.
		candidates = append([]idleProbe{xprintidleProbe}, candidates...)
	}

	provider := &idleProvider{}
	for _, probe := range candidates {
		path, err := exec.LookPath(probe.name)
		if err != nil {
			continue
		}
		provider.probes = append(provider.probes, idleProbe{name: path, args: probe.args})
	}
	return provider
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if len(provider.probes) == 0 {
		return 0, timekeeper.ErrIdleUnsupported
	}

	var lastErr error
	for _, probe := range provider.probes {
		output, err := exec.Command(probe.name, probe.args...).Output()
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", probe.name, err)
			continue
		}
		idle, err := parseIdleMillis(string(output))
		if err != nil {
			lastErr = err
			continue
		}
		return idle, nil
	}
	return 0, lastErr
}

// parseIdleMillis reads the first number in output, e.g. "1234" from
// xprintidle or "(uint64 1234,)" from gdbus.
func parseIdleMillis(output string) (time.Duration, error) {
	// Drop the gdbus type tag so its 64 is not taken for the value.
	trimmed := strings.TrimPrefix(strings.TrimSpace(output), "(uint64 ")
	match := idleMillisPattern.FindString(trimmed)
	if match == "" {
		return 0, fmt.Errorf("parse idle milliseconds: no number in %q", output)
	}
	idleMillis, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
