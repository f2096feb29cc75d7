// Package engine composes the clock, input mux, and charge counter into one
// frame accounting instance driven by the display refresh loop.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/odesza/chargehud/internal/clock"
	"github.com/odesza/chargehud/internal/counter"
	"github.com/odesza/chargehud/internal/inputmux"
	"github.com/odesza/chargehud/internal/model"
)

// CompletedFunc receives each finished charge session. The HUD uses it to
// archive charges; a nil sink drops them after the snapshot is updated.
type CompletedFunc func(*counter.Session)

// Engine owns the tick counter and accumulator; nothing else writes them.
// It is a plain handle, not a singleton: tests and the HUD construct their
// own instances. Not thread-safe; the driving loop owns the instance.
type Engine struct {
	clock   *clock.Clock
	mux     *inputmux.Mux
	counter *counter.Counter

	lastFrames  *uint64
	onCompleted CompletedFunc
	log         zerolog.Logger
}

// New constructs an engine at tick zero.
func New(log zerolog.Logger, clockOpts ...clock.Option) *Engine {
	return &Engine{
		clock:   clock.New(clockOpts...),
		mux:     inputmux.New(),
		counter: counter.New(),
		log:     log,
	}
}

// OnCompleted installs the completed-session sink.
func (e *Engine) OnCompleted(fn CompletedFunc) { e.onCompleted = fn }

// Mux exposes the input normalizer so the host can feed per-source held
// state before each Frame call.
func (e *Engine) Mux() *inputmux.Mux { return e.mux }

// Frame runs one driving-loop iteration: the queued edges are applied at the
// current tick, then the clock advances by the elapsed real time. Edges
// before advance, advance before sampling; sampling stale state would show a
// wrong frame count.
func (e *Engine) Frame(elapsedSeconds float64, edges []inputmux.Edge) {
	for _, edge := range edges {
		e.applyEdge(edge)
	}
	if _, err := e.clock.Advance(elapsedSeconds); err != nil {
		// One bad host sample must not corrupt the clock or stop the loop.
		e.log.Warn().Err(err).Float64("elapsed", elapsedSeconds).Msg("elapsed interval rejected")
	}
	// While the button is held the released edge may land on a later frame;
	// the running count needs no per-tick work because it is always derived
	// from the tick difference at read time.
}

func (e *Engine) applyEdge(edge inputmux.Edge) {
	tick := e.clock.Tick()
	switch edge.Kind {
	case inputmux.Press:
		if err := e.counter.Press(tick, edge.At, edge.Source.String()); err != nil {
			e.log.Error().Err(err).Uint64("tick", tick).Msg("press edge discarded")
		}
	case inputmux.Release:
		s, err := e.counter.Release(tick, edge.At)
		if err != nil {
			e.log.Error().Err(err).Uint64("tick", tick).Msg("release edge discarded")
			return
		}
		if s == nil {
			return
		}
		frames := s.Frames
		e.lastFrames = &frames
		if e.onCompleted != nil {
			e.onCompleted(s)
		}
	}
}

// Sample returns an immutable snapshot of the current accounting state. It
// reads only the authoritative tick arithmetic, never an interpolated value,
// and is idempotent between frames.
func (e *Engine) Sample() model.Snapshot {
	snap := model.Snapshot{CurrentTick: e.clock.Tick()}
	if frames, ok := e.counter.ActiveFrames(snap.CurrentTick); ok {
		f := frames
		snap.ActiveFrames = &f
	}
	if e.lastFrames != nil {
		f := *e.lastFrames
		snap.LastFrames = &f
	}
	return snap
}

// Reset returns the engine to tick zero and Idle, discarding any open
// session without reporting it.
func (e *Engine) Reset() {
	e.clock.Reset()
	e.counter.Reset()
	e.lastFrames = nil
}
