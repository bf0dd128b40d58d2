package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spriteLog struct {
	mu    sync.Mutex
	names []string
}

func (log *spriteLog) update(resource fyne.Resource) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.names = append(log.names, resource.Name())
}

func (log *spriteLog) snapshot() []string {
	log.mu.Lock()
	defer log.mu.Unlock()
	return append([]string(nil), log.names...)
}

func sprite(name string) fyne.Resource {
	return fyne.NewStaticResource(name, []byte(name))
}

func fastConfig() Config {
	return Config{
		FrameDuration: Range{Min: time.Millisecond, Max: time.Millisecond},
		FlipRepeats:   2,
		PulseBright:   Range{Min: time.Millisecond, Max: time.Millisecond},
		PulseDim:      Range{Min: time.Millisecond, Max: time.Millisecond},
	}
}

func TestRange_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))

	inverted := Range{Min: 2 * time.Second, Max: time.Second}
	assert.Equal(t, 2*time.Second, inverted.Random(rng))

	spread := Range{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for i := 0; i < 100; i++ {
		value := spread.Random(rng)
		require.GreaterOrEqual(t, value, spread.Min)
		require.Less(t, value, spread.Max)
	}
}

func TestEngine_FlipPlaysFramesThenFinal(t *testing.T) {
	log := &spriteLog{}
	engine := New(fastConfig(), log.update)
	done := make(chan struct{})
	engine.SetOnDone(func() { close(done) })

	engine.StartFlip(context.Background(), FlipSpec{
		Frames: []fyne.Resource{sprite("a"), sprite("b")},
		Final:  sprite("final"),
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("flip did not finish")
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "final"}, log.snapshot())
	require.Eventually(t, func() bool { return !engine.Running() }, time.Second, time.Millisecond)
}

func TestEngine_StopCancelsPulse(t *testing.T) {
	log := &spriteLog{}
	engine := New(fastConfig(), log.update)

	engine.StartPulse(context.Background(), PulseSpec{Bright: sprite("bright"), Dim: sprite("dim")})
	require.Eventually(t, func() bool { return len(log.snapshot()) >= 4 }, 2*time.Second, time.Millisecond)
	assert.True(t, engine.Running())

	engine.Stop()
	assert.False(t, engine.Running())

	names := log.snapshot()
	assert.Equal(t, "bright", names[0])
	assert.Equal(t, "dim", names[1])
}

func TestEngine_StartReplacesRunningSequence(t *testing.T) {
	log := &spriteLog{}
	config := fastConfig()
	config.PulseBright = Range{Min: time.Hour, Max: time.Hour}
	engine := New(config, log.update)
	done := make(chan struct{})
	engine.SetOnDone(func() { close(done) })

	engine.StartPulse(context.Background(), PulseSpec{Bright: sprite("bright"), Dim: sprite("dim")})
	require.Eventually(t, func() bool { return len(log.snapshot()) == 1 }, time.Second, time.Millisecond)

	engine.StartFlip(context.Background(), FlipSpec{Frames: []fyne.Resource{sprite("f")}, Final: sprite("end")})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("flip did not finish")
	}

	assert.Equal(t, []string{"bright", "f", "f", "end"}, log.snapshot())
}

func TestEngine_ParentContextCancels(t *testing.T) {
	log := &spriteLog{}
	engine := New(fastConfig(), log.update)
	ctx, cancel := context.WithCancel(context.Background())

	engine.StartPulse(ctx, PulseSpec{Bright: sprite("bright"), Dim: sprite("dim")})
	cancel()

	require.Eventually(t, func() bool { return !engine.Running() }, time.Second, time.Millisecond)
}
