package clock

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/odesza/chargehud/internal/model"
)

func TestAdvanceEmitsWholeFrames(t *testing.T) {
	c := New()
	ticks, err := c.Advance(model.FrameDuration * 3)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
	if c.Tick() != 3 {
		t.Fatalf("expected tick 3, got %d", c.Tick())
	}
}

func TestAdvanceCarriesResidue(t *testing.T) {
	c := New()
	half := model.FrameDuration / 2
	if ticks, _ := c.Advance(half); ticks != 0 {
		t.Fatalf("half frame produced %d ticks", ticks)
	}
	if ticks, _ := c.Advance(half); ticks != 1 {
		t.Fatalf("second half frame produced %d ticks, want 1", ticks)
	}
	if c.Residue() >= model.FrameDuration {
		t.Fatalf("residue %v not below frame duration", c.Residue())
	}
}

func TestTickSumMatchesElapsedTotal(t *testing.T) {
	// For any sequence of valid deltas under the clamp, total ticks must
	// equal floor(total elapsed / frame duration) within one tick.
	c := New()
	rng := rand.New(rand.NewSource(42))
	total := 0.0
	ticks := 0
	for i := 0; i < 10000; i++ {
		dt := rng.Float64() * 0.040 // irregular refresh intervals up to 40ms
		total += dt
		n, err := c.Advance(dt)
		if err != nil {
			t.Fatalf("advance(%v): %v", dt, err)
		}
		ticks += n
	}
	want := int(total / model.FrameDuration)
	if diff := ticks - want; diff < -1 || diff > 1 {
		t.Fatalf("emitted %d ticks for %.3fs elapsed, want %d±1", ticks, total, want)
	}
	if uint64(ticks) != c.Tick() {
		t.Fatalf("per-call tick sum %d disagrees with counter %d", ticks, c.Tick())
	}
}

func TestAdvanceClampsStalls(t *testing.T) {
	c := New() // clamp 0.25s, catch-up cap 15
	ticks, err := c.Advance(5.0)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if ticks != DefaultMaxCatchUpTicks {
		t.Fatalf("stall emitted %d ticks, want %d", ticks, DefaultMaxCatchUpTicks)
	}
	if c.Residue() >= model.FrameDuration {
		t.Fatalf("residue %v not shed below one frame", c.Residue())
	}
}

func TestAdvanceRejectsInvalidIntervals(t *testing.T) {
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		c := New()
		if _, err := c.Advance(0.010); err != nil {
			t.Fatalf("seed advance: %v", err)
		}
		tick, residue := c.Tick(), c.Residue()
		ticks, err := c.Advance(dt)
		if !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("advance(%v): err = %v, want ErrInvalidInterval", dt, err)
		}
		if ticks != 0 {
			t.Fatalf("advance(%v) emitted %d ticks", dt, ticks)
		}
		if c.Tick() != tick || c.Residue() != residue {
			t.Fatalf("advance(%v) mutated clock state", dt)
		}
	}
}

func TestReset(t *testing.T) {
	c := New()
	if _, err := c.Advance(1.0 / 30.0); err != nil {
		t.Fatalf("advance: %v", err)
	}
	c.Reset()
	if c.Tick() != 0 || c.Residue() != 0 {
		t.Fatalf("reset left tick=%d residue=%v", c.Tick(), c.Residue())
	}
}

func TestOptions(t *testing.T) {
	c := New(WithMaxElapsedClamp(0.1), WithMaxCatchUpTicks(2))
	ticks, err := c.Advance(1.0)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if ticks != 2 {
		t.Fatalf("expected catch-up cap of 2, got %d ticks", ticks)
	}
}
