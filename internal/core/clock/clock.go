// Package clock provides tick sources for the timer.
//
// A Source delivers ticks to a single callback until the returned Stop is
// called. Ticker is backed by time.Ticker; Manual fires only when told to and
// is meant for tests.
package clock

import (
	"sync"
	"time"
)

// Stop cancels a running tick subscription. Calling it more than once is safe.
type Stop func()

// Source starts a tick subscription.
type Source interface {
	Start(onTick func(time.Time)) Stop
}

// Ticker is a Source that fires every Interval.
type Ticker struct {
	Interval time.Duration
}

// NewTicker creates a Ticker, defaulting to one second.
func NewTicker(interval time.Duration) Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return Ticker{Interval: interval}
}

// Start launches a goroutine that calls onTick on every tick.
func (source Ticker) Start(onTick func(time.Time)) Stop {
	interval := source.Interval
	if interval <= 0 {
		interval = time.Second
	}

	stopCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case tickTime := <-ticker.C:
				onTick(tickTime)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

// Manual is a Source driven by Fire.
type Manual struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(time.Time)
	now      time.Time
}

// NewManual creates a Manual source whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		handlers: make(map[int]func(time.Time)),
		now:      start,
	}
}

// Start registers onTick until the returned Stop is called.
func (source *Manual) Start(onTick func(time.Time)) Stop {
	source.mu.Lock()
	id := source.nextID
	source.nextID++
	source.handlers[id] = onTick
	source.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			source.mu.Lock()
			delete(source.handlers, id)
			source.mu.Unlock()
		})
	}
}

// Fire advances the clock by one second and delivers one tick to every active subscription.
func (source *Manual) Fire() {
	source.mu.Lock()
	source.now = source.now.Add(time.Second)
	now := source.now
	handlers := make([]func(time.Time), 0, len(source.handlers))
	for _, handler := range source.handlers {
		handlers = append(handlers, handler)
	}
	source.mu.Unlock()

	for _, handler := range handlers {
		handler(now)
	}
}

// FireN calls Fire n times.
func (source *Manual) FireN(n int) {
	for i := 0; i < n; i++ {
		source.Fire()
	}
}

// Active returns the number of live subscriptions.
func (source *Manual) Active() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return len(source.handlers)
}
