package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeTimers records scheduled callbacks so tests can fire them
type fakeTimers struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (ft *fakeTimers) afterFunc(d time.Duration, f func()) Timer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	ft.pending = append(ft.pending, t)
	return t
}

func (ft *fakeTimers) fire(i int) {
	ft.mu.Lock()
	t := ft.pending[i]
	ft.mu.Unlock()
	if !t.stopped {
		t.f()
	}
}

func newTestCenter() (*Center, *fakeTimers) {
	ft := &fakeTimers{}
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return New(WithAfterFunc(ft.afterFunc), WithClock(func() time.Time { return fixed })), ft
}

func TestCenter_DefaultDurations(t *testing.T) {
	c, ft := newTestCenter()

	c.Success("saved", 0)
	c.Info("heads up", 0)
	c.Error("failed", 0)
	c.Success("custom", 1500*time.Millisecond)

	require.Len(t, ft.pending, 4)
	assert.Equal(t, DefaultDuration, ft.pending[0].d)
	assert.Equal(t, DefaultDuration, ft.pending[1].d)
	assert.Equal(t, DefaultErrorDuration, ft.pending[2].d)
	assert.Equal(t, 1500*time.Millisecond, ft.pending[3].d)

	list := c.List()
	require.Len(t, list, 4)
	assert.Equal(t, KindSuccess, list[0].Kind)
	assert.Equal(t, KindInfo, list[1].Kind)
	assert.Equal(t, KindError, list[2].Kind)
	assert.Equal(t, 2024, list[0].CreatedAt.Year())
}

func TestCenter_NegativeDurationIsSticky(t *testing.T) {
	c, ft := newTestCenter()

	id := c.Error("connection lost", -time.Second)
	assert.Empty(t, ft.pending, "no dismissal is scheduled")

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, -time.Second, list[0].Duration)

	c.Remove(id)
	assert.Empty(t, c.List())
}

func TestCenter_IDsIncrease(t *testing.T) {
	c, _ := newTestCenter()
	assert.Equal(t, 1, c.Success("a", 0))
	assert.Equal(t, 2, c.Info("b", 0))
	c.Remove(1)
	assert.Equal(t, 3, c.Error("c", 0))
}

func TestCenter_AutoDismiss(t *testing.T) {
	c, ft := newTestCenter()
	c.Success("first", 0)
	c.Success("second", 0)

	ft.fire(0)

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Message)
}

func TestCenter_RemoveStopsTimer(t *testing.T) {
	c, ft := newTestCenter()
	id := c.Info("bye", 0)

	c.Remove(id)
	assert.Empty(t, c.List())
	assert.True(t, ft.pending[0].stopped)

	c.Remove(id)
	c.Remove(42)
	assert.Empty(t, c.List())
}

func TestCenter_ListIsCopy(t *testing.T) {
	c, _ := newTestCenter()
	c.Info("x", 0)
	list := c.List()
	list[0].Message = "changed"
	assert.Equal(t, "x", c.List()[0].Message)
}

func TestCenter_Subscribe(t *testing.T) {
	c, ft := newTestCenter()

	var lens []int
	cancel := c.Subscribe(func(list []Notification) {
		lens = append(lens, len(list))
	})

	c.Success("a", 0)
	c.Success("b", 0)
	ft.fire(0)
	cancel()
	c.Success("c", 0)

	assert.Equal(t, []int{1, 2, 1}, lens)
}

func TestCenter_Close(t *testing.T) {
	c, ft := newTestCenter()
	c.Success("a", 0)
	c.Error("b", 0)

	c.Close()

	assert.Empty(t, c.List())
	for _, tm := range ft.pending {
		assert.True(t, tm.stopped)
	}
	assert.Equal(t, 0, c.Info("late", 0))
	assert.Empty(t, c.List())
}

func TestCenter_RealTimers(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := New()
	c.Success("quick", 10*time.Millisecond)
	c.Error("slow", time.Hour)

	require.Eventually(t, func() bool { return len(c.List()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "slow", c.List()[0].Message)

	c.Close()
}
