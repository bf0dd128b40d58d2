package model

import (
	"fmt"
	"time"
)

// Mode is the kind of interval currently counting down.
type Mode int

const (
	ModeWork Mode = iota
	ModeBreak
)

func (mode Mode) String() string {
	switch mode {
	case ModeWork:
		return "work"
	case ModeBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Label is the user-facing name of the mode.
func (mode Mode) Label(longBreak bool) string {
	switch mode {
	case ModeWork:
		return "Focus"
	case ModeBreak:
		if longBreak {
			return "Long Break"
		}
		return "Break"
	default:
		return ""
	}
}

// Next returns the mode that follows this one.
func (mode Mode) Next() Mode {
	switch mode {
	case ModeWork:
		return ModeBreak
	case ModeBreak:
		return ModeWork
	default:
		return ModeWork
	}
}

// ParseMode converts a stored mode name back to a Mode.
func ParseMode(value string) (Mode, error) {
	switch value {
	case "work":
		return ModeWork, nil
	case "break":
		return ModeBreak, nil
	default:
		return ModeWork, fmt.Errorf("unknown mode %q", value)
	}
}

// SessionRecord is one completed interval.
type SessionRecord struct {
	ID             string
	Kind           Mode
	PlannedSeconds int
	CompletedAt    time.Time
}
