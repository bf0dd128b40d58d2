package animation

import "fyne.io/fyne/v2"

// FlipSpec defines the frames played when an interval runs out. Frames are
// shown in order; Final stays up once the sequence ends.
type FlipSpec struct {
	Frames []fyne.Resource
	Final  fyne.Resource
}

// PulseSpec defines sprites alternated while the timer is paused.
type PulseSpec struct {
	Bright fyne.Resource
	Dim    fyne.Resource
}
