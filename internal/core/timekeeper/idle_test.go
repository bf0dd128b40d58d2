package timekeeper_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
)

type fakeIdle struct {
	idle  atomic.Int64
	err   error
	calls atomic.Int32
}

func (checker *fakeIdle) IdleDuration() (time.Duration, error) {
	checker.calls.Add(1)
	return time.Duration(checker.idle.Load()), checker.err
}

func TestWatchIdle_PausesRunningFocus(t *testing.T) {
	keeper, _ := newKeeper(t, model.DefaultDurations())
	keeper.Start()

	checker := &fakeIdle{}
	checker.idle.Store(int64(10 * time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- keeper.WatchIdle(ctx, checker, 5*time.Minute, time.Millisecond)
	}()

	require.Eventually(t, func() bool { return !keeper.Snapshot().Running }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatchIdle_IgnoresShortIdle(t *testing.T) {
	keeper, _ := newKeeper(t, model.DefaultDurations())
	keeper.Start()

	checker := &fakeIdle{}
	checker.idle.Store(int64(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := keeper.WatchIdle(ctx, checker, 5*time.Minute, time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, checker.calls.Load())
	assert.True(t, keeper.Snapshot().Running)
}

func TestWatchIdle_SkipsWhenPaused(t *testing.T) {
	keeper, _ := newKeeper(t, model.DefaultDurations())

	checker := &fakeIdle{}
	checker.idle.Store(int64(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := keeper.WatchIdle(ctx, checker, time.Minute, time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, checker.calls.Load())
}

func TestWatchIdle_StopsWhenUnsupported(t *testing.T) {
	keeper, _ := newKeeper(t, model.DefaultDurations())
	keeper.Start()

	checker := &fakeIdle{err: timekeeper.ErrIdleUnsupported}
	err := keeper.WatchIdle(context.Background(), checker, time.Minute, time.Millisecond)

	assert.True(t, errors.Is(err, timekeeper.ErrIdleUnsupported))
	assert.True(t, keeper.Snapshot().Running)
}
