// Package notify keeps the short-lived messages (toasts) shown to the user
// after an action: success, error or info. A toast is dismissed after its
// duration; a negative duration keeps it until Remove.
package notify

import (
	"slices"
	"sync"
	"time"
)

// Kind is the severity of a notification
type Kind string

// Notification kinds
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Default display durations
const (
	DefaultDuration      = 3 * time.Second
	DefaultErrorDuration = 5 * time.Second
)

// Notification is one visible message
type Notification struct {
	ID        int
	Kind      Kind
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// Timer is the part of *time.Timer the center uses
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Center holds the visible notifications in creation order
type Center struct {
	afterFunc AfterFunc
	now       func() time.Time

	mu     sync.Mutex
	items  []Notification
	timers map[int]Timer
	lastID int
	closed bool

	subs    map[int]func([]Notification)
	nextSub int
}

// Option configures a Center
type Option func(*Center)

// WithAfterFunc replaces the timer source
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Center) {
		if f != nil {
			c.afterFunc = f
		}
	}
}

// WithClock replaces the creation-time clock
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty notification center
func New(opts ...Option) *Center {
	c := &Center{
		afterFunc: realAfterFunc,
		now:       time.Now,
		timers:    make(map[int]Timer),
		subs:      make(map[int]func([]Notification)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Success shows a success message. A zero duration selects the default,
// a negative one never expires.
func (c *Center) Success(msg string, d time.Duration) int {
	return c.add(KindSuccess, msg, d, DefaultDuration)
}

// Info shows an informational message
func (c *Center) Info(msg string, d time.Duration) int {
	return c.add(KindInfo, msg, d, DefaultDuration)
}

// Error shows an error message, kept longer by default
func (c *Center) Error(msg string, d time.Duration) int {
	return c.add(KindError, msg, d, DefaultErrorDuration)
}

func (c *Center) add(kind Kind, msg string, d, def time.Duration) int {
	if d == 0 {
		d = def
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.lastID++
	id := c.lastID
	c.items = append(c.items, Notification{
		ID:        id,
		Kind:      kind,
		Message:   msg,
		Duration:  d,
		CreatedAt: c.now(),
	})
	if d > 0 {
		c.timers[id] = c.afterFunc(d, func() { c.Remove(id) })
	}
	snap := c.listLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	publish(subs, snap)
	return id
}

// Remove dismisses a notification. Unknown ids are ignored.
func (c *Center) Remove(id int) {
	c.mu.Lock()
	i := slices.IndexFunc(c.items, func(n Notification) bool { return n.ID == id })
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.items = slices.Delete(c.items, i, i+1)
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	snap := c.listLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	publish(subs, snap)
}

// List returns the visible notifications, oldest first
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listLocked()
}

// Subscribe registers fn to receive the list after every change
func (c *Center) Subscribe(fn func([]Notification)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Close stops all pending timers and drops the visible notifications.
// Notifications added after Close are ignored.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
	c.closed = true
}

func (c *Center) listLocked() []Notification {
	return slices.Clone(c.items)
}

func (c *Center) subscribersLocked() []func([]Notification) {
	fns := make([]func([]Notification), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return fns
}

func publish(fns []func([]Notification), list []Notification) {
	for _, fn := range fns {
		fn(list)
	}
}
