//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"hourglass/internal/core/timekeeper"
)

var hidIdlePattern = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

type idleProvider struct {
	ioregPath string
}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return &idleProvider{}
	}
	return &idleProvider{ioregPath: path}
}

// IdleDuration reads HIDIdleTime, reported by IOKit in nanoseconds.
func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	if provider.ioregPath == "" {
		return 0, timekeeper.ErrIdleUnsupported
	}

	output, err := exec.Command(provider.ioregPath, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	match := hidIdlePattern.FindSubmatch(output)
	if match == nil {
		return 0, timekeeper.ErrIdleUnsupported
	}
	nanos, err := strconv.ParseInt(string(match[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}
