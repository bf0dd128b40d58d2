package timekeeper

import (
	"log/slog"
	"sync"
	"time"

	"hourglass/internal/core/clock"
	"hourglass/internal/core/easing"
	"hourglass/internal/core/ledger"
	"hourglass/internal/core/model"
)

// Store persists durations and history. Loads return usable defaults
// alongside any error; saves are best-effort.
type Store interface {
	LoadConfig() (model.DurationConfig, error)
	SaveConfig(config model.DurationConfig) error
	ClearConfig() error
	LoadLedger() ([]model.SessionRecord, error)
	SaveLedger(records []model.SessionRecord) error
	ClearLedger() error
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	Source clock.Source
	Store  Store
	Logger *slog.Logger
	Now    func() time.Time
}

// TimeKeeper is the work/break state machine.
type TimeKeeper struct {
	mu         sync.Mutex
	options    Config
	logger     *slog.Logger
	durations  model.DurationConfig
	ledger     *ledger.Ledger
	mode       model.Mode
	remaining  int
	running    bool
	closed     bool
	generation uint64
	stopTick   clock.Stop
	events     []chan Event
}

// New creates a paused TimeKeeper at the start of a work interval.
func New(durations model.DurationConfig, history []model.SessionRecord, options Config) *TimeKeeper {
	if options.Source == nil {
		options.Source = clock.NewTicker(time.Second)
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	keeper := &TimeKeeper{
		options:   options,
		logger:    logger,
		durations: durations.Sanitized(),
		ledger:    ledger.New(history...),
		mode:      model.ModeWork,
	}
	keeper.remaining = keeper.totalLocked()
	return keeper
}

// Load creates a TimeKeeper from whatever the store holds, falling back to
// defaults for anything missing or unreadable.
func Load(store Store, options Config) *TimeKeeper {
	options.Store = store
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	durations, err := store.LoadConfig()
	if err != nil {
		logger.Warn("load durations, using defaults", "error", err)
	}
	history, err := store.LoadLedger()
	if err != nil {
		logger.Warn("load session history, starting empty", "error", err)
		history = nil
	}

	return New(durations, history, options)
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Close stops ticking and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.pauseLocked()
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start resumes the countdown. It reports false if already running.
func (keeper *TimeKeeper) Start() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if !keeper.startLocked() {
		return false
	}
	keeper.emitLocked(EventStartPause, keeper.options.Now())
	return true
}

// Pause freezes the countdown. It reports false if already paused.
func (keeper *TimeKeeper) Pause() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if !keeper.pauseLocked() {
		return false
	}
	keeper.emitLocked(EventStartPause, keeper.options.Now())
	return true
}

// Toggle starts a paused timer or pauses a running one and returns the new running state.
func (keeper *TimeKeeper) Toggle() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	var changed bool
	if keeper.running {
		changed = keeper.pauseLocked()
	} else {
		changed = keeper.startLocked()
	}
	if changed {
		keeper.emitLocked(EventStartPause, keeper.options.Now())
	}
	return keeper.running
}

// Reset pauses, clears history and restores default durations.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.pauseLocked()
	keeper.ledger.Clear()
	keeper.durations = model.DefaultDurations()
	keeper.mode = model.ModeWork
	keeper.remaining = keeper.totalLocked()

	if store := keeper.options.Store; store != nil {
		if err := store.ClearConfig(); err != nil {
			keeper.logger.Warn("clear saved durations", "error", err)
		}
		if err := store.ClearLedger(); err != nil {
			keeper.logger.Warn("clear saved history", "error", err)
		}
	}

	keeper.emitLocked(EventReset, keeper.options.Now())
}

// Restart pauses and refills the current interval. History and durations are kept.
func (keeper *TimeKeeper) Restart() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.pauseLocked()
	keeper.remaining = keeper.totalLocked()
	keeper.emitLocked(EventRestart, keeper.options.Now())
}

// ChangeDuration sets the length of kind in minutes. Values outside
// 1..model.MaxMinutes are ignored. When kind is the interval currently counting down, the timer
// is paused and refilled with the new length and reset is true.
func (keeper *TimeKeeper) ChangeDuration(kind model.DurationKind, minutes int) (accepted, reset bool) {
	if !model.ValidMinutes(minutes) {
		return false, false
	}
	switch kind {
	case model.DurationWork, model.DurationBreak, model.DurationLongBreak:
	default:
		return false, false
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.durations = keeper.durations.With(kind, minutes)
	if keeper.activeKindLocked() == kind {
		keeper.pauseLocked()
		keeper.remaining = minutes * 60
		reset = true
	}

	if store := keeper.options.Store; store != nil {
		if err := store.SaveConfig(keeper.durations); err != nil {
			keeper.logger.Warn("save durations", "kind", kind.String(), "error", err)
		}
	}

	keeper.emitLocked(EventDurationChanged, keeper.options.Now())
	return true, reset
}

// Snapshot returns the current state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Durations returns the configured interval lengths.
func (keeper *TimeKeeper) Durations() model.DurationConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.durations
}

func (keeper *TimeKeeper) tick(generation uint64, tickTime time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if !keeper.running || generation != keeper.generation {
		return
	}

	keeper.remaining--
	if keeper.remaining <= 0 {
		keeper.remaining = 0
		finished := keeper.mode
		keeper.emitEventLocked(Event{
			Type:     EventCompleted,
			Snapshot: keeper.snapshotLocked(),
			Finished: finished,
			At:       tickTime,
		})

		keeper.ledger.Append(finished, keeper.totalLocked(), tickTime)
		if store := keeper.options.Store; store != nil {
			if err := store.SaveLedger(keeper.ledger.Records()); err != nil {
				keeper.logger.Warn("save session history", "error", err)
			}
		}

		keeper.mode = finished.Next()
		keeper.remaining = keeper.totalLocked()
		keeper.logger.Debug("interval completed",
			"finished", finished.String(),
			"next", keeper.mode.String(),
			"work_count", keeper.ledger.WorkCount(),
			"long_break", keeper.longBreakLocked(),
		)
	}

	keeper.emitLocked(EventTick, tickTime)
}

func (keeper *TimeKeeper) startLocked() bool {
	if keeper.running || keeper.closed {
		return false
	}
	keeper.running = true
	keeper.generation++
	generation := keeper.generation
	keeper.stopTick = keeper.options.Source.Start(func(tickTime time.Time) {
		keeper.tick(generation, tickTime)
	})
	return true
}

func (keeper *TimeKeeper) pauseLocked() bool {
	if !keeper.running {
		return false
	}
	if keeper.stopTick != nil {
		keeper.stopTick()
		keeper.stopTick = nil
	}
	keeper.running = false
	return true
}

func (keeper *TimeKeeper) activeKindLocked() model.DurationKind {
	switch keeper.mode {
	case model.ModeBreak:
		if keeper.ledger.LongBreakDue() {
			return model.DurationLongBreak
		}
		return model.DurationBreak
	default:
		return model.DurationWork
	}
}

func (keeper *TimeKeeper) longBreakLocked() bool {
	return keeper.mode == model.ModeBreak && keeper.ledger.LongBreakDue()
}

func (keeper *TimeKeeper) totalLocked() int {
	return keeper.durations.Seconds(keeper.activeKindLocked())
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	total := keeper.totalLocked()
	return Snapshot{
		Mode:      keeper.mode,
		Remaining: keeper.remaining,
		Total:     total,
		Running:   keeper.running,
		Fraction:  easing.Fraction(keeper.remaining, total),
		Urgency:   easing.Urgency(keeper.remaining, total),
		LongBreak: keeper.longBreakLocked(),
		WorkCount: keeper.ledger.WorkCount(),
		History:   keeper.ledger.Records(),
		Durations: keeper.durations,
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType, at time.Time) {
	keeper.emitEventLocked(Event{
		Type:     eventType,
		Snapshot: keeper.snapshotLocked(),
		At:       at,
	})
}

func (keeper *TimeKeeper) emitEventLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
