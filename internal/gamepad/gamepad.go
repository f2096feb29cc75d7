// Package gamepad polls a joystick device for charge-button held state.
// Joysticks deliver no press/release events to a terminal program, so the
// HUD polls the device once per driving-loop iteration and the input mux
// synthesizes edges from state transitions.
package gamepad

import "encoding/binary"

// DefaultDevice is the first joystick node on Linux.
const DefaultDevice = "/dev/input/js0"

// DefaultButton is the primary face button (A on most pads).
const DefaultButton = 0

// event mirrors the kernel's struct js_event.
type event struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

const (
	eventSize = 8

	typeButton = 0x01
	typeInit   = 0x80
)

// decodeEvent parses one js_event record. Joystick events are always
// little-endian on the wire regardless of host order in practice, matching
// the kernel struct layout.
func decodeEvent(buf []byte) (event, bool) {
	if len(buf) < eventSize {
		return event{}, false
	}
	return event{
		Time:   binary.LittleEndian.Uint32(buf[0:4]),
		Value:  int16(binary.LittleEndian.Uint16(buf[4:6])),
		Type:   buf[6],
		Number: buf[7],
	}, true
}

// isButton reports whether the event is a button transition (including the
// synthetic init events sent right after open, which seed current state).
func (e event) isButton() bool {
	return e.Type&^typeInit == typeButton
}
