package animation

import "time"

// DefaultConfig returns the timings used by the desktop window.
func DefaultConfig() Config {
	return Config{
		FrameDuration: Range{
			Min: 60 * time.Millisecond,
			Max: 80 * time.Millisecond,
		},
		FlipRepeats: 2,
		PulseBright: Range{
			Min: 900 * time.Millisecond,
			Max: 1100 * time.Millisecond,
		},
		PulseDim: Range{
			Min: 400 * time.Millisecond,
			Max: 500 * time.Millisecond,
		},
	}
}
