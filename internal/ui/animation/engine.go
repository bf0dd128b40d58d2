package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	FrameDuration Range
	FlipRepeats   int

	PulseBright Range
	PulseDim    Range
}

// Engine plays sprite sequences through updateSprite. Only one sequence runs
// at a time; starting another cancels the previous one.
type Engine struct {
	mu           sync.Mutex
	config       Config
	updateSprite func(fyne.Resource)
	onDone       func()
	cancel       context.CancelFunc
	sequence     uint64
	rngMu        sync.Mutex
	rng          *rand.Rand
}

// New creates a new animation engine.
func New(config Config, updateSprite func(fyne.Resource)) *Engine {
	return &Engine{
		config:       config,
		updateSprite: updateSprite,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetOnDone sets a callback fired when a flip sequence finishes on its own.
func (engine *Engine) SetOnDone(handler func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onDone = handler
}

// StartFlip plays the flip frames FlipRepeats times and settles on the final sprite.
func (engine *Engine) StartFlip(ctx context.Context, spec FlipSpec) {
	engine.start(ctx, func(runCtx context.Context) {
		repeats := engine.config.FlipRepeats
		if repeats < 1 {
			repeats = 1
		}
		for i := 0; i < repeats; i++ {
			for _, frame := range spec.Frames {
				engine.updateSprite(frame)
				if !sleepWithContext(runCtx, engine.sample(engine.config.FrameDuration)) {
					return
				}
			}
		}
		if spec.Final != nil {
			engine.updateSprite(spec.Final)
		}
		engine.notifyDone()
	})
}

// StartPulse alternates between the bright and dim sprites until stopped.
func (engine *Engine) StartPulse(ctx context.Context, spec PulseSpec) {
	engine.start(ctx, func(runCtx context.Context) {
		for {
			engine.updateSprite(spec.Bright)
			if !sleepWithContext(runCtx, engine.sample(engine.config.PulseBright)) {
				return
			}
			engine.updateSprite(spec.Dim)
			if !sleepWithContext(runCtx, engine.sample(engine.config.PulseDim)) {
				return
			}
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Running reports whether a sequence is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.sequence++
	sequence := engine.sequence
	engine.mu.Unlock()

	go func() {
		run(runCtx)
		cancel()
		engine.finish(sequence)
	}()
}

// finish forgets the cancel func if no newer sequence replaced it.
func (engine *Engine) finish(sequence uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.sequence == sequence {
		engine.cancel = nil
	}
}

func (engine *Engine) sample(value Range) time.Duration {
	engine.rngMu.Lock()
	defer engine.rngMu.Unlock()
	return value.Random(engine.rng)
}

func (engine *Engine) notifyDone() {
	engine.mu.Lock()
	handler := engine.onDone
	engine.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
