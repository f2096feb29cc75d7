package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/odesza/chargehud/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func TestBigNumberRendersFiveRows(t *testing.T) {
	out := bigNumber("120")
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if line == "" {
			t.Fatalf("row %d empty", i)
		}
	}
}

func TestBigNumberSkipsUnknownRunes(t *testing.T) {
	if bigNumber("x") != bigNumber("") {
		t.Fatalf("unknown rune produced glyphs")
	}
}

func TestReadoutStates(t *testing.T) {
	m := &Model{}
	_, status := m.readout()
	if !strings.Contains(status, "READY") {
		t.Fatalf("fresh readout status: %q", status)
	}

	m.snapshot = model.Snapshot{ActiveFrames: u64(37)}
	readout, status := m.readout()
	if !strings.Contains(status, "CHARGING") {
		t.Fatalf("charging status: %q", status)
	}
	if !strings.Contains(readout, "█") {
		t.Fatalf("charging readout has no glyphs: %q", readout)
	}

	m.snapshot = model.Snapshot{LastFrames: u64(120)}
	_, status = m.readout()
	if !strings.Contains(status, "READY") {
		t.Fatalf("post-charge status: %q", status)
	}
}

func TestRenderBarScalesWithCharge(t *testing.T) {
	m := &Model{}
	empty := m.renderBar()
	m.snapshot = model.Snapshot{ActiveFrames: u64(barSpanFrames)}
	full := m.renderBar()
	if strings.Count(full, "█") <= strings.Count(empty, "█") {
		t.Fatalf("full bar not fuller than empty bar")
	}
	// Overcharge clamps to the bar width instead of overflowing.
	m.snapshot = model.Snapshot{ActiveFrames: u64(barSpanFrames * 10)}
	over := m.renderBar()
	if strings.Count(over, "█") != strings.Count(full, "█") {
		t.Fatalf("overcharged bar overflowed")
	}
}

func TestRenderFooter(t *testing.T) {
	m := &Model{
		snapshot:    model.Snapshot{CurrentTick: 420},
		chargeCount: 4,
		frameSum:    200,
	}
	out := m.renderFooter()
	for _, want := range []string{"tick 420", "4 charges", "50.0 mean frames"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}

func TestFrameDrivesEngine(t *testing.T) {
	m := NewModel(model.Config{RefreshHz: 60}, nil, nil, zerolog.Nop())
	start := time.Unix(100, 0)
	m.frame(start) // first frame establishes the baseline, no elapsed time
	if m.snapshot.CurrentTick != 0 {
		t.Fatalf("first frame advanced the clock to %d", m.snapshot.CurrentTick)
	}
	m.frame(start.Add(time.Second))
	// One second under the default 250ms clamp and catch-up cap.
	if m.snapshot.CurrentTick == 0 {
		t.Fatalf("clock did not advance")
	}
	if m.snapshot.CurrentTick > 15 {
		t.Fatalf("stall was not clamped: tick %d", m.snapshot.CurrentTick)
	}
}

func TestRefreshInterval(t *testing.T) {
	if refreshInterval(60) != time.Second/60 {
		t.Fatalf("60 Hz interval: %v", refreshInterval(60))
	}
	if refreshInterval(0) != time.Second/60 {
		t.Fatalf("zero rate did not default to 60 Hz: %v", refreshInterval(0))
	}
}
