// Package clock implements the fixed-step logical clock.
// One tick is exactly 1/60 s of simulated time, independent of how often the
// display refreshes. Not thread-safe; the driving loop owns the instance.
package clock

import (
	"errors"
	"math"

	"github.com/odesza/chargehud/internal/model"
)

// ErrInvalidInterval reports a negative or non-finite elapsed time. The call
// that produced it has no effect on the clock.
var ErrInvalidInterval = errors.New("invalid elapsed interval")

// Defaults for stall handling. A quarter second covers vsync hiccups and
// short window stalls; anything longer is a backgrounded process and gets
// clamped rather than replayed.
const (
	DefaultMaxElapsedClamp = 0.25
	DefaultMaxCatchUpTicks = 15
)

// Clock accumulates real elapsed time and converts it into whole logical
// ticks. The accumulator residue stays below one frame duration, so rounding
// error never compounds across refreshes.
type Clock struct {
	frameDuration   float64
	maxElapsedClamp float64
	maxCatchUpTicks int

	tick        uint64
	accumulator float64
}

// Option configures a Clock.
type Option func(*Clock)

// WithMaxElapsedClamp sets the ceiling applied to a single elapsed interval
// before accumulation.
func WithMaxElapsedClamp(seconds float64) Option {
	return func(c *Clock) { c.maxElapsedClamp = seconds }
}

// WithMaxCatchUpTicks bounds how many ticks a single Advance may emit.
func WithMaxCatchUpTicks(n int) Option {
	return func(c *Clock) { c.maxCatchUpTicks = n }
}

// New constructs a clock at tick zero with an empty accumulator.
func New(opts ...Option) *Clock {
	c := &Clock{
		frameDuration:   model.FrameDuration,
		maxElapsedClamp: DefaultMaxElapsedClamp,
		maxCatchUpTicks: DefaultMaxCatchUpTicks,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Advance feeds one wall-clock delta into the accumulator and returns how
// many logical ticks it produced. A negative, NaN, or infinite delta returns
// ErrInvalidInterval and leaves both the tick counter and the accumulator
// untouched, so one bad sample from the host cannot corrupt the clock.
func (c *Clock) Advance(elapsedSeconds float64) (int, error) {
	if elapsedSeconds < 0 || math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) {
		return 0, ErrInvalidInterval
	}
	if elapsedSeconds > c.maxElapsedClamp {
		elapsedSeconds = c.maxElapsedClamp
	}
	c.accumulator += elapsedSeconds

	produced := 0
	for c.accumulator >= c.frameDuration && produced < c.maxCatchUpTicks {
		c.accumulator -= c.frameDuration
		c.tick++
		produced++
	}
	// A clamped stall can still leave more than maxCatchUpTicks worth of
	// residue; shed it so the next refresh starts inside one frame.
	if c.accumulator >= c.frameDuration {
		c.accumulator = math.Mod(c.accumulator, c.frameDuration)
	}
	return produced, nil
}

// Tick returns the current logical tick. It never decreases within a run.
func (c *Clock) Tick() uint64 { return c.tick }

// Residue returns the accumulated sub-frame time in seconds.
func (c *Clock) Residue() float64 { return c.accumulator }

// FrameDuration returns the length of one tick in seconds.
func (c *Clock) FrameDuration() float64 { return c.frameDuration }

// Reset returns the clock to tick zero with an empty accumulator.
func (c *Clock) Reset() {
	c.tick = 0
	c.accumulator = 0
}
