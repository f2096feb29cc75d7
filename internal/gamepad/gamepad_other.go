//go:build !linux

package gamepad

import "fmt"

// Device is unavailable off Linux; the HUD runs keyboard/mouse only.
type Device struct{}

// Open always fails on this platform.
func Open(path string, button int) (*Device, error) {
	return nil, fmt.Errorf("gamepad input is not supported on this platform")
}

// Poll is never reachable on this platform.
func (d *Device) Poll() (bool, error) { return false, nil }

// Close is never reachable on this platform.
func (d *Device) Close() error { return nil }
