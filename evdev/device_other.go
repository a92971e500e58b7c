//go:build !linux

package evdev

import "errors"

// Device is only functional on Linux; other platforms get a stub so the
// rest of the module still builds.
type Device struct{}

func Open(path string) (*Device, error) {
	return nil, errors.New("evdev input devices are only supported on linux")
}

func (d *Device) Name() string                 { return "" }
func (d *Device) Path() string                 { return "" }
func (d *Device) PullEvents() ([]Event, error) { return nil, errors.New("not supported") }
func (d *Device) Close() error                 { return nil }
