package timekeeper

import (
	"time"

	"hourglass/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventTick            EventType = "tick"
	EventCompleted       EventType = "completed"
	EventStartPause      EventType = "start_pause"
	EventReset           EventType = "reset"
	EventRestart         EventType = "restart"
	EventDurationChanged EventType = "duration_changed"
)

// Snapshot is everything a renderer needs to draw the timer.
type Snapshot struct {
	Mode      model.Mode
	Remaining int
	Total     int
	Running   bool
	Fraction  float64
	Urgency   float64
	LongBreak bool
	WorkCount int
	History   []model.SessionRecord
	Durations model.DurationConfig
}

// Label returns the display name of the current interval.
func (snapshot Snapshot) Label() string {
	return snapshot.Mode.Label(snapshot.LongBreak)
}

// Title returns a window title such as "24:59 · Focus".
func (snapshot Snapshot) Title() string {
	return model.FormatClock(snapshot.Remaining) + " · " + snapshot.Label()
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Finished is the mode that just ran out; set on EventCompleted only.
	Finished model.Mode
	At       time.Time
}
