//go:build linux

package gamepad

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Device reads held state for one button from a joystick node. Reads are
// non-blocking; Poll drains whatever events are pending and keeps the last
// known state between polls.
type Device struct {
	fd     int
	path   string
	button int
	held   bool
	buf    []byte
}

// Open opens the joystick node in non-blocking mode.
func Open(path string, button int) (*Device, error) {
	if path == "" {
		path = DefaultDevice
	}
	if button < 0 {
		button = DefaultButton
	}
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open joystick %s: %w", path, err)
	}
	return &Device{fd: fd, path: path, button: button, buf: make([]byte, eventSize*32)}, nil
}

// Poll drains pending joystick events and returns the current held state of
// the configured button. A read error other than "no data yet" means the
// device is gone; the caller drops the source.
func (d *Device) Poll() (held bool, err error) {
	for {
		n, rerr := unix.Read(d.fd, d.buf)
		if rerr != nil {
			if errors.Is(rerr, unix.EAGAIN) || errors.Is(rerr, unix.EINTR) {
				return d.held, nil
			}
			return false, fmt.Errorf("joystick %s read: %w", d.path, rerr)
		}
		if n == 0 {
			return false, fmt.Errorf("joystick %s: %w", d.path, io.EOF)
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			ev, ok := decodeEvent(d.buf[off : off+eventSize])
			if !ok {
				continue
			}
			if ev.isButton() && int(ev.Number) == d.button {
				d.held = ev.Value != 0
			}
		}
		if n < len(d.buf) {
			return d.held, nil
		}
	}
}

// Close releases the device.
func (d *Device) Close() error {
	return unix.Close(d.fd)
}
