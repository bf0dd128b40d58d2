package timekeeper

import (
	"context"
	"errors"
	"time"

	"hourglass/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// WatchIdle pauses a running focus interval once the user has been idle for
// at least after. It polls every interval until ctx is done, and returns
// ErrIdleUnsupported straight away if the checker cannot measure idleness.
func (keeper *TimeKeeper) WatchIdle(ctx context.Context, checker IdleChecker, after, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		snapshot := keeper.Snapshot()
		if !snapshot.Running || snapshot.Mode != model.ModeWork {
			continue
		}

		idleDuration, err := checker.IdleDuration()
		if err != nil {
			if errors.Is(err, ErrIdleUnsupported) {
				return err
			}
			keeper.logger.Debug("idle check failed", "error", err)
			continue
		}
		if idleDuration >= after && keeper.Pause() {
			keeper.logger.Info("paused focus interval after idle", "idle", idleDuration.Round(time.Second))
		}
	}
}
