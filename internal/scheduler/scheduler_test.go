package scheduler

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/matjam/smoothshow/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// pending returns the timers that have been armed and not stopped or fired.
func (c *fakeClock) pending() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the single pending timer.
func (c *fakeClock) fire(t *testing.T) {
	t.Helper()
	p := c.pending()
	require.Len(t, p, 1, "expected exactly one pending timer")
	p[0].stopped = true
	p[0].fn()
}

type fakeRenderer struct {
	paths []string
	err   error
}

func (r *fakeRenderer) Render(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

func testCatalog(n int) catalog.Catalog {
	c := make(catalog.Catalog, n)
	for i := range c {
		c[i] = fmt.Sprintf("/images/%03d.jpg", i)
	}
	return c
}

func newTest(n int) (*Scheduler, *fakeClock, *fakeRenderer) {
	clock := &fakeClock{}
	r := &fakeRenderer{}
	s := New(testCatalog(n), 3*time.Second, r, clock, WithRand(rand.New(rand.NewPCG(1, 2))))
	return s, clock, r
}

func TestStart(t *testing.T) {
	s, clock, r := newTest(5)
	assert.Equal(t, Idle, s.State())

	s.Start()
	assert.Equal(t, Showing, s.State())
	require.Len(t, r.paths, 1)
	assert.Equal(t, s.Current(), r.paths[0])

	p := clock.pending()
	require.Len(t, p, 1)
	assert.Equal(t, 3*time.Second, p[0].d)

	// a second start is ignored
	s.Start()
	assert.Len(t, r.paths, 1)
	assert.Len(t, clock.pending(), 1)
}

func TestTimerAdvances(t *testing.T) {
	s, clock, r := newTest(5)
	s.Start()

	for i := 0; i < 10; i++ {
		clock.fire(t)
	}

	assert.Len(t, r.paths, 11)
	assert.Len(t, clock.pending(), 1, "timer is re-armed after every fire")
	assert.GreaterOrEqual(t, s.Index(), 0)
	assert.Less(t, s.Index(), 5)
}

func TestAdvanceWhileIdle(t *testing.T) {
	s, clock, r := newTest(3)
	s.Advance()
	assert.Empty(t, r.paths)
	assert.Empty(t, clock.timers)
}

func TestUniformSelection(t *testing.T) {
	const (
		k       = 8
		samples = 80000
	)
	s, clock, _ := newTest(k)
	s.Start()

	counts := make([]int, k)
	repeats := 0
	prev := -1
	for i := 0; i < samples; i++ {
		clock.fire(t)
		counts[s.Index()]++
		if s.Index() == prev {
			repeats++
		}
		prev = s.Index()
	}

	// chi-square with k-1 = 7 degrees of freedom; 24.32 is the 0.999 quantile
	expected := float64(samples) / k
	chi := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi += d * d / expected
	}
	assert.Less(t, chi, 24.32, "counts %v", counts)

	// immediate repeats are expected roughly 1/k of the time
	assert.InDelta(t, float64(samples)/k, float64(repeats), float64(samples)/k*0.1)
}

func TestSingleImage(t *testing.T) {
	s, clock, r := newTest(1)
	s.Start()
	clock.fire(t)
	clock.fire(t)
	assert.Equal(t, []string{"/images/000.jpg", "/images/000.jpg", "/images/000.jpg"}, r.paths)
}

func TestRenderErrorKeepsRunning(t *testing.T) {
	s, clock, r := newTest(4)
	r.err = errors.New("decode failed")

	s.Start()
	clock.fire(t)

	assert.Equal(t, Showing, s.State())
	assert.Len(t, r.paths, 2)
	assert.Len(t, clock.pending(), 1)
}

func TestHoldDefersFire(t *testing.T) {
	s, clock, r := newTest(4)
	s.Start()

	s.Hold()
	clock.fire(t)
	assert.Len(t, r.paths, 1, "no render while held")
	assert.Empty(t, clock.pending(), "timer is not re-armed while held")

	s.Release()
	assert.Len(t, r.paths, 2, "due fire is delivered on release")
	assert.Len(t, clock.pending(), 1)
}

func TestHoldWithoutFire(t *testing.T) {
	s, clock, r := newTest(4)
	s.Start()
	index := s.Index()
	pending := clock.pending()

	s.Hold()
	s.Release()

	assert.Len(t, r.paths, 1)
	assert.Equal(t, index, s.Index())
	assert.Equal(t, pending, clock.pending(), "pending timer is untouched")
}

func TestStop(t *testing.T) {
	s, clock, r := newTest(4)
	s.Start()
	timer := clock.pending()[0]

	s.Stop()
	assert.Equal(t, Idle, s.State())
	assert.True(t, timer.stopped)
	assert.Empty(t, clock.pending())

	// a fire racing the stop is ignored
	timer.fn()
	assert.Len(t, r.paths, 1)
	assert.Empty(t, clock.pending())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "showing", Showing.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestStaleFireIsDropped(t *testing.T) {
	s, clock, r := newTest(4)
	s.Start()
	stale := clock.pending()[0]

	// a manual advance replaces the timer, the old callback may still be queued
	s.Advance()
	require.True(t, stale.stopped)
	require.Len(t, r.paths, 2)

	stale.fn()
	assert.Len(t, r.paths, 2)
	assert.Len(t, clock.pending(), 1)

	clock.fire(t)
	assert.Len(t, r.paths, 3)
}
