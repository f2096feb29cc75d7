package inputmux

import (
	"testing"
	"time"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time          { return f.t }
func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestKeypressStartsHold(t *testing.T) {
	clk := &fakeNow{t: time.Unix(100, 0)}
	k := NewKeyHold(100 * time.Millisecond)
	k.SetNow(clk.now)

	if !k.Keypress() {
		t.Fatalf("first keypress did not start a hold")
	}
	if k.Keypress() {
		t.Fatalf("repeat keypress restarted the hold")
	}
	if !k.Held() {
		t.Fatalf("hold not reported while repeats are fresh")
	}
}

func TestHoldExpiresAfterRepeatGap(t *testing.T) {
	clk := &fakeNow{t: time.Unix(100, 0)}
	k := NewKeyHold(100 * time.Millisecond)
	k.SetNow(clk.now)

	k.Keypress()
	clk.advance(90 * time.Millisecond)
	if !k.Held() {
		t.Fatalf("hold expired before the timeout")
	}
	clk.advance(20 * time.Millisecond)
	if k.Held() {
		t.Fatalf("hold survived past the repeat-gap timeout")
	}
	// The next press starts a fresh hold.
	if !k.Keypress() {
		t.Fatalf("keypress after expiry did not start a hold")
	}
}

func TestRepeatsExtendHold(t *testing.T) {
	clk := &fakeNow{t: time.Unix(100, 0)}
	k := NewKeyHold(100 * time.Millisecond)
	k.SetNow(clk.now)

	k.Keypress()
	for i := 0; i < 10; i++ {
		clk.advance(80 * time.Millisecond)
		if !k.Held() {
			t.Fatalf("hold dropped between repeats at step %d", i)
		}
		k.Keypress()
	}
}

func TestZeroTimeoutFallsBackToDefault(t *testing.T) {
	k := NewKeyHold(0)
	if k.timeout != DefaultHoldTimeout {
		t.Fatalf("timeout = %v, want %v", k.timeout, DefaultHoldTimeout)
	}
}
