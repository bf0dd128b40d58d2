package platform

import "time"

const (
	// DefaultIdleAfter is how long input must be absent before a focus interval pauses.
	DefaultIdleAfter = 3 * time.Minute
	// IdlePollInterval is how often the idle provider is consulted.
	IdlePollInterval = 5 * time.Second
)

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}
