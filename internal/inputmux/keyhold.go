package inputmux

import "time"

// DefaultHoldTimeout is the longest gap between key-repeat events that still
// counts as a continuous hold. Terminal key repeat typically fires every
// 30-80ms once it kicks in; the initial repeat delay is the constraint here.
const DefaultHoldTimeout = 550 * time.Millisecond

// KeyHold converts a terminal key-repeat stream into held/not-held state.
// Terminals deliver repeated press events while a key is down and no release
// event at all, so a hold ends when repeats stop arriving for longer than
// the timeout. The time source is injectable for deterministic tests.
type KeyHold struct {
	timeout time.Duration
	now     func() time.Time

	held   bool
	lastAt time.Time
}

// NewKeyHold constructs a tracker with the given repeat-gap timeout. A zero
// or negative timeout falls back to DefaultHoldTimeout.
func NewKeyHold(timeout time.Duration) *KeyHold {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &KeyHold{timeout: timeout, now: time.Now}
}

// SetNow replaces the time source. Tests use this to drive the tracker with
// synthetic time.
func (k *KeyHold) SetNow(now func() time.Time) { k.now = now }

// SetTimeout replaces the repeat-gap timeout, keeping current hold state.
func (k *KeyHold) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		k.timeout = timeout
	}
}

// Keypress records one press (or key-repeat) event. It returns true when
// this event started a new hold.
func (k *KeyHold) Keypress() bool {
	k.lastAt = k.now()
	if k.held {
		return false
	}
	k.held = true
	return true
}

// Held reports whether the key is still considered down, expiring the hold
// if repeats have stopped for longer than the timeout. Called once per
// driving-loop iteration.
func (k *KeyHold) Held() bool {
	if k.held && k.now().Sub(k.lastAt) > k.timeout {
		k.held = false
	}
	return k.held
}
