//go:build linux

package evdev

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// EVIOCGNAME(len) = _IOC(_IOC_READ, 'E', 0x06, len); see the _IOC macro
// in linux/ioctl.h.
func eviocgname(length int) uintptr {
	const iocRead = 2
	return uintptr(iocRead<<30 | uint(length)<<16 | 'E'<<8 | 0x06)
}

// Device is an open /dev/input/eventN handle implementing Source.
type Device struct {
	fd   int
	path string
	name string
	buf  []byte
}

// Open opens an event device for reading. The returned Device blocks in
// PullEvents until the kernel has at least one pending event.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	d := &Device{
		fd:   fd,
		path: path,
		buf:  make([]byte, 64*inputEventSize),
	}

	var name [128]byte
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL,
		uintptr(fd),
		eviocgname(len(name)),
		uintptr(unsafe.Pointer(&name[0])),
	); errno == 0 {
		for i, b := range name {
			if b == 0 {
				d.name = string(name[:i])
				break
			}
		}
	}

	return d, nil
}

// Name returns the kernel-reported device name, if it could be read.
func (d *Device) Name() string { return d.name }

// Path returns the device node this handle reads from.
func (d *Device) Path() string { return d.path }

// PullEvents blocks until the device reports events, then returns the
// decoded batch. The batch may be empty when a read yields only sync
// frames or codes outside the gamepad tables.
func (d *Device) PullEvents() ([]Event, error) {
	n, err := unix.Read(d.fd, d.buf)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	return decodeEvents(d.buf[:n]), nil
}

// Close releases the device handle. A blocked PullEvents returns an error
// once the descriptor is closed.
func (d *Device) Close() error {
	return unix.Close(d.fd)
}
