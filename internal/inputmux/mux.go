// Package inputmux merges keyboard, mouse, and gamepad held-state into one
// abstract charge-button signal with press/release edges.
package inputmux

import "time"

// Source identifies a physical input source bound to the charge action.
type Source int

// The closed set of sources.
const (
	Keyboard Source = iota
	Mouse
	Gamepad
)

// String returns the source label used in logs and the history archive.
func (s Source) String() string {
	switch s {
	case Keyboard:
		return "keyboard"
	case Mouse:
		return "mouse"
	case Gamepad:
		return "gamepad"
	default:
		return "unknown"
	}
}

// EdgeKind is a press or release transition of the merged signal.
type EdgeKind int

// Edge kinds.
const (
	Press EdgeKind = iota
	Release
)

// Edge is an immutable transition event of the merged charge button.
type Edge struct {
	Kind   EdgeKind
	At     time.Time
	Source Source
}

// Mux tracks per-source held state and emits edges only on transitions of
// the OR of all sources: a Press when the first source goes down, a Release
// when the last one comes up. Overlapping sources never double-count.
type Mux struct {
	held map[Source]bool
}

// New constructs a mux with all sources released.
func New() *Mux {
	return &Mux{held: make(map[Source]bool, 3)}
}

// Set records the held state of one source. It returns the merged edge this
// transition produced, if any.
func (m *Mux) Set(source Source, held bool, at time.Time) (Edge, bool) {
	before := m.anyHeld()
	m.held[source] = held
	after := m.anyHeld()
	switch {
	case !before && after:
		return Edge{Kind: Press, At: at, Source: source}, true
	case before && !after:
		return Edge{Kind: Release, At: at, Source: source}, true
	default:
		return Edge{}, false
	}
}

// Drop handles a source that vanished (gamepad unplugged mid-charge): it is
// treated as a release for that source only.
func (m *Mux) Drop(source Source, at time.Time) (Edge, bool) {
	return m.Set(source, false, at)
}

// Held reports the merged held state.
func (m *Mux) Held() bool { return m.anyHeld() }

func (m *Mux) anyHeld() bool {
	for _, h := range m.held {
		if h {
			return true
		}
	}
	return false
}
