package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNow returns a time source that advances one second per call.
func fakeNow(start time.Time) (func() time.Time, *atomic.Int64) {
	var calls atomic.Int64
	return func() time.Time {
		n := calls.Add(1) - 1
		return start.Add(time.Duration(n) * time.Second)
	}, &calls
}

func TestTicker_StartResetsTimestamp(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now, _ := fakeNow(start)
	tk := New(time.Hour, time.UTC, WithNow(now))

	assert.True(t, tk.Now().IsZero())
	tk.Start(context.Background())
	defer tk.Stop()

	assert.Equal(t, start, tk.Now())
	assert.True(t, tk.Running())
}

func TestTicker_TicksReplaceTimestamp(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now, _ := fakeNow(start)

	var ticks atomic.Int64
	tk := New(5*time.Millisecond, time.UTC, WithNow(now), WithOnTick(func(time.Time) { ticks.Add(1) }))
	tk.Start(context.Background())
	defer tk.Stop()

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	assert.True(t, tk.Now().After(start))
}

func TestTicker_StopCancelsTicks(t *testing.T) {
	var ticks atomic.Int64
	tk := New(2*time.Millisecond, nil, WithOnTick(func(time.Time) { ticks.Add(1) }))
	tk.Start(context.Background())

	require.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	tk.Stop()
	assert.False(t, tk.Running())

	stopped := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load(), "no ticks after Stop")

	// A second Stop is harmless.
	tk.Stop()
}

func TestTicker_ParentContextCancelsLoop(t *testing.T) {
	var ticks atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	tk := New(2*time.Millisecond, nil, WithOnTick(func(time.Time) { ticks.Add(1) }))
	tk.Start(ctx)

	cancel()
	time.Sleep(10 * time.Millisecond)
	stopped := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())

	tk.Stop()
}

func TestTicker_StartTwiceIsNoop(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now, calls := fakeNow(start)
	tk := New(time.Hour, time.UTC, WithNow(now))

	tk.Start(context.Background())
	tk.Start(context.Background())
	defer tk.Stop()

	assert.Equal(t, int64(1), calls.Load())
}

func TestTicker_NowUsesLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tk := New(time.Hour, loc, WithNow(func() time.Time { return start }))
	tk.Start(context.Background())
	defer tk.Stop()

	assert.Equal(t, 15, tk.Now().Hour())
	assert.Equal(t, "MSK", tk.Now().Location().String())
}
