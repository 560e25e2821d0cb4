package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives the scheduler without real timers: every timer wait
// advances the clock by the waited duration and fires immediately.
type fakeClock struct {
	now   time.Time
	waits []time.Duration
}

func (f *fakeClock) nowFn() time.Time { return f.now }

func (f *fakeClock) timerFn(d time.Duration) (<-chan time.Time, func()) {
	f.waits = append(f.waits, d)
	f.now = f.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- f.now
	return ch, func() {}
}

func newFakeScheduler(ctx context.Context, interval time.Duration, clk *fakeClock) *FixedIntervalScheduler {
	s := NewFixedIntervalScheduler(ctx, interval)
	s.nowFn = clk.nowFn
	s.timerFn = clk.timerFn
	return s
}

func TestScheduler_FiresAtFixedInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := newFakeScheduler(ctx, time.Minute, clk)

	ticks := 0
	s.Start(func() {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})

	assert.Equal(t, 3, ticks)
	for _, w := range clk.waits[:3] {
		assert.Equal(t, time.Minute, w)
	}
}

func TestScheduler_RunImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := newFakeScheduler(ctx, time.Minute, clk)
	s.RunImmediately = true

	ticks := 0
	s.Start(func() {
		ticks++
		cancel()
	})

	// The immediate run happened before any timer wait.
	assert.Equal(t, 1, ticks)
	assert.Empty(t, clk.waits)
}

func TestScheduler_OverrunningTickDefersNextFire(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: start}
	s := newFakeScheduler(ctx, time.Minute, clk)

	var fireTimes []time.Time
	ticks := 0
	s.Start(func() {
		ticks++
		fireTimes = append(fireTimes, clk.now)
		if ticks == 1 {
			// Simulate a tick outliving two full intervals.
			clk.now = clk.now.Add(2*time.Minute + 30*time.Second)
		}
		if ticks == 2 {
			cancel()
		}
	})

	assert.Equal(t, 2, ticks)
	// First fire at 12:01; tick runs until 12:03:30; the skipped 12:02 and
	// 12:03 grid points are dropped, next fire lands on 12:04.
	assert.Equal(t, start.Add(time.Minute), fireTimes[0])
	assert.Equal(t, start.Add(4*time.Minute), fireTimes[1])
}

func TestScheduler_InvalidIntervalReturnsWithoutFiring(t *testing.T) {
	s := NewFixedIntervalScheduler(context.Background(), 0)
	ran := false
	s.Start(func() { ran = true })
	assert.False(t, ran)
}

func TestScheduler_CancelledContextStopsBeforeNextTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewFixedIntervalScheduler(ctx, time.Minute)
	s.nowFn = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	// A timer that never fires: only ctx cancellation can unblock the wait.
	s.timerFn = func(d time.Duration) (<-chan time.Time, func()) {
		return make(chan time.Time), func() {}
	}

	ticks := 0
	done := make(chan struct{})
	go func() {
		s.Start(func() { ticks++ })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancelled context")
	}
	assert.Equal(t, 0, ticks)
}

func TestNextFireAfter(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"at anchor", anchor, anchor.Add(time.Minute)},
		{"mid interval", anchor.Add(30 * time.Second), anchor.Add(time.Minute)},
		{"exactly on grid", anchor.Add(time.Minute), anchor.Add(2 * time.Minute)},
		{"after long stall", anchor.Add(5*time.Minute + time.Second), anchor.Add(6 * time.Minute)},
		{"before anchor", anchor.Add(-time.Second), anchor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nextFireAfter(anchor, time.Minute, tc.now))
		})
	}
}
