package desktop

import (
	"fyne.io/fyne/v2"

	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
)

var durationKinds = []model.DurationKind{
	model.DurationWork,
	model.DurationBreak,
	model.DurationLongBreak,
}

// DurationChanger is the part of the timer that accepts new interval lengths.
type DurationChanger interface {
	Durations() model.DurationConfig
	ChangeDuration(kind model.DurationKind, minutes int) (accepted, reset bool)
}

// ApplyDurations pushes every length in durations that differs from the
// timer's current one and returns the kinds that changed. Equal values are
// skipped so a reload triggered by our own save does not pause the countdown.
func ApplyDurations(keeper DurationChanger, durations model.DurationConfig) []model.DurationKind {
	current := keeper.Durations()
	var changed []model.DurationKind
	for _, kind := range durationKinds {
		minutes := durations.Minutes(kind)
		if minutes == current.Minutes(kind) {
			continue
		}
		if accepted, _ := keeper.ChangeDuration(kind, minutes); accepted {
			changed = append(changed, kind)
		}
	}
	return changed
}

// CompletionNotification describes the finished interval and next, the one that follows it.
func CompletionNotification(finished model.Mode, next timekeeper.Snapshot) *fyne.Notification {
	if finished == model.ModeWork {
		return fyne.NewNotification(
			"Focus complete",
			"Time for a "+lowerLabel(next)+": "+model.FormatClock(next.Total)+".",
		)
	}
	return fyne.NewNotification(
		"Break over",
		"Back to focus for "+model.FormatClock(next.Total)+".",
	)
}

func lowerLabel(snapshot timekeeper.Snapshot) string {
	if snapshot.LongBreak {
		return "long break"
	}
	return "break"
}
