// Package counter tracks press-to-release charge sessions in logical ticks.
package counter

import (
	"errors"
	"time"
)

// ErrOutOfOrderEdge reports a sequencing violation: an edge arrived at a tick
// earlier than the open session's start tick. The active session is discarded
// rather than closed with a fabricated count.
var ErrOutOfOrderEdge = errors.New("edge out of logical tick order")

// Status describes the state of a charge session.
type Status int

// Session statuses.
const (
	Idle Status = iota
	Charging
	Completed
)

// Session is one press-to-release interval measured in logical ticks.
// Frames is only meaningful once Status is Completed.
type Session struct {
	Status    Status
	StartTick uint64
	EndTick   uint64
	Frames    uint64
	StartedAt time.Time
	EndedAt   time.Time
	Source    string
}

// Counter is the Idle/Charging state machine. The frame count of a charge is
// always derived as a tick difference at release time, never by incrementing
// a parallel counter, so it cannot drift from the clock.
type Counter struct {
	active   *Session
	lastTick uint64
}

// New constructs an idle counter.
func New() *Counter {
	return &Counter{}
}

// Press opens a charge session at the given tick. A press while a session is
// already open is ignored. A press at a tick earlier than a previously
// observed edge returns ErrOutOfOrderEdge.
func (c *Counter) Press(tick uint64, at time.Time, source string) error {
	if err := c.checkOrder(tick); err != nil {
		return err
	}
	if c.active != nil {
		return nil // charge already open
	}
	c.active = &Session{
		Status:    Charging,
		StartTick: tick,
		StartedAt: at,
		Source:    source,
	}
	return nil
}

// Release closes the open session at the given tick and returns it as
// Completed. A release with no open session is ignored (mid-session start);
// a release at a tick earlier than the session's start tick discards the
// session and returns ErrOutOfOrderEdge.
func (c *Counter) Release(tick uint64, at time.Time) (*Session, error) {
	if err := c.checkOrder(tick); err != nil {
		return nil, err
	}
	if c.active == nil {
		return nil, nil // release with nothing to close
	}
	s := c.active
	c.active = nil
	s.Status = Completed
	s.EndTick = tick
	s.EndedAt = at
	s.Frames = s.EndTick - s.StartTick
	return s, nil
}

// Active returns the open session, or nil while idle.
func (c *Counter) Active() *Session { return c.active }

// ActiveFrames returns the running frame count of the open session at the
// given tick, and whether a session is open.
func (c *Counter) ActiveFrames(tick uint64) (uint64, bool) {
	if c.active == nil {
		return 0, false
	}
	if tick < c.active.StartTick {
		return 0, true
	}
	return tick - c.active.StartTick, true
}

// Reset discards any open session and returns the machine to Idle. An open
// session is never reported as completed.
func (c *Counter) Reset() {
	c.active = nil
	c.lastTick = 0
}

func (c *Counter) checkOrder(tick uint64) error {
	if tick < c.lastTick {
		c.active = nil
		return ErrOutOfOrderEdge
	}
	c.lastTick = tick
	return nil
}
