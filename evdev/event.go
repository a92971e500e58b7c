// Package evdev reads raw gamepad events from Linux input devices and
// exposes them under their kernel code names.
package evdev

import "fmt"

// EventType discriminates the raw event variants this layer reports.
type EventType uint8

const (
	// EventKey is a binary press/release edge (value 1 = pressed).
	EventKey EventType = iota
	// EventAbsolute is a sampled axis value in its device-native range.
	EventAbsolute
)

func (t EventType) String() string {
	switch t {
	case EventKey:
		return "Key"
	case EventAbsolute:
		return "Absolute"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event is one hardware-reported sample. Code is the kernel name of the
// button or axis ("BTN_SOUTH", "ABS_X", ...). Events are consumed once and
// never retained.
type Event struct {
	Type  EventType
	Code  string
	Value int32
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s = %d", e.Type, e.Code, e.Value)
}

// Source is a blocking pull of pending hardware events. One call may yield
// zero or more events (sync frames and unknown codes are dropped). Errors
// are transient read failures; callers decide the retry policy.
type Source interface {
	PullEvents() ([]Event, error)
}

// Kernel input-event type codes (linux/input-event-codes.h).
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03
)

// keyNames covers the gamepad button range (BTN_GAMEPAD block).
var keyNames = map[uint16]string{
	0x130: "BTN_SOUTH",
	0x131: "BTN_EAST",
	0x133: "BTN_NORTH",
	0x134: "BTN_WEST",
	0x136: "BTN_TL",
	0x137: "BTN_TR",
	0x138: "BTN_TL2",
	0x139: "BTN_TR2",
	0x13a: "BTN_SELECT",
	0x13b: "BTN_START",
	0x13c: "BTN_MODE",
	0x13d: "BTN_THUMBL",
	0x13e: "BTN_THUMBR",
}

// absNames covers the absolute axes a gamepad reports.
var absNames = map[uint16]string{
	0x00: "ABS_X",
	0x01: "ABS_Y",
	0x02: "ABS_Z",
	0x03: "ABS_RX",
	0x04: "ABS_RY",
	0x05: "ABS_RZ",
	0x10: "ABS_HAT0X",
	0x11: "ABS_HAT0Y",
}
