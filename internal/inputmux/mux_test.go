package inputmux

import (
	"testing"
	"time"
)

func TestOverlappingSourcesMergeToOneHold(t *testing.T) {
	m := New()
	// keyboard down, gamepad joins, keyboard up, gamepad up
	edge, ok := m.Set(Keyboard, true, time.Unix(0, 0))
	if !ok || edge.Kind != Press {
		t.Fatalf("keyboard down: edge=%+v ok=%v, want press", edge, ok)
	}
	if _, ok := m.Set(Gamepad, true, time.Unix(1, 0)); ok {
		t.Fatalf("second source down emitted an edge")
	}
	if _, ok := m.Set(Keyboard, false, time.Unix(2, 0)); ok {
		t.Fatalf("release with gamepad still held emitted an edge")
	}
	edge, ok = m.Set(Gamepad, false, time.Unix(3, 0))
	if !ok || edge.Kind != Release {
		t.Fatalf("last source up: edge=%+v ok=%v, want release", edge, ok)
	}
}

func TestRepeatedStateIsQuiet(t *testing.T) {
	m := New()
	if _, ok := m.Set(Mouse, true, time.Time{}); !ok {
		t.Fatalf("first press emitted no edge")
	}
	if _, ok := m.Set(Mouse, true, time.Time{}); ok {
		t.Fatalf("repeated held state emitted an edge")
	}
	if _, ok := m.Set(Keyboard, false, time.Time{}); ok {
		t.Fatalf("release of a never-held source emitted an edge")
	}
}

func TestDropActsAsReleaseForThatSourceOnly(t *testing.T) {
	m := New()
	m.Set(Gamepad, true, time.Time{})
	m.Set(Keyboard, true, time.Time{})
	if _, ok := m.Drop(Gamepad, time.Time{}); ok {
		t.Fatalf("drop with keyboard still held emitted an edge")
	}
	if !m.Held() {
		t.Fatalf("merged state released by a single-source drop")
	}
	edge, ok := m.Set(Keyboard, false, time.Time{})
	if !ok || edge.Kind != Release {
		t.Fatalf("final release: edge=%+v ok=%v", edge, ok)
	}
}

func TestSourceLabels(t *testing.T) {
	if Keyboard.String() != "keyboard" || Mouse.String() != "mouse" || Gamepad.String() != "gamepad" {
		t.Fatalf("unexpected source labels: %s %s %s", Keyboard, Mouse, Gamepad)
	}
}
