package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromName(t *testing.T) {
	port := portFromName("Hourglass")
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
	assert.Equal(t, port, portFromName(" hourglass "))
	assert.NotEqual(t, port, portFromName("hourglass-test"))
}

func TestAcquireSingleInstance(t *testing.T) {
	name := "hourglass-single-instance-" + t.Name()

	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("loopback port unavailable: %v", err)
	}
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(name)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
