//go:build linux

package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourglass/internal/core/timekeeper"
)

func TestParseIdleMillis(t *testing.T) {
	idle, err := parseIdleMillis("1234\n")
	require.NoError(t, err)
	assert.Equal(t, 1234*time.Millisecond, idle)

	idle, err = parseIdleMillis("(uint64 90000,)\n")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, idle)

	_, err = parseIdleMillis("Error: no such interface")
	assert.Error(t, err)
}

func TestIdleProvider_NoProbes(t *testing.T) {
	provider := &idleProvider{}
	_, err := provider.IdleDuration()
	assert.ErrorIs(t, err, timekeeper.ErrIdleUnsupported)
}
