// Package procon models the input state of an emulated Nintendo Switch
// Pro Controller as pushed to a virtual controller session.
package procon

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Button bitmasks for the Switch Pro Controller.
type Button uint32

const (
	ButtonB         Button = 0x0001
	ButtonA         Button = 0x0002
	ButtonX         Button = 0x0004
	ButtonY         Button = 0x0008
	ButtonL         Button = 0x0010
	ButtonR         Button = 0x0020
	ButtonZL        Button = 0x0040
	ButtonZR        Button = 0x0080
	ButtonPlus      Button = 0x0100
	ButtonMinus     Button = 0x0200
	ButtonHome      Button = 0x0400
	ButtonCapture   Button = 0x0800
	ButtonLStick    Button = 0x1000 // Left stick click
	ButtonRStick    Button = 0x2000 // Right stick click
	ButtonDPadUp    Button = 0x4000
	ButtonDPadDown  Button = 0x8000
	ButtonDPadLeft  Button = 0x10000
	ButtonDPadRight Button = 0x20000
)

var buttonNames = map[Button]string{
	ButtonB:         "B",
	ButtonA:         "A",
	ButtonX:         "X",
	ButtonY:         "Y",
	ButtonL:         "L",
	ButtonR:         "R",
	ButtonZL:        "ZL",
	ButtonZR:        "ZR",
	ButtonPlus:      "PLUS",
	ButtonMinus:     "MINUS",
	ButtonHome:      "HOME",
	ButtonCapture:   "CAPTURE",
	ButtonLStick:    "L_STICK",
	ButtonRStick:    "R_STICK",
	ButtonDPadUp:    "DPAD_UP",
	ButtonDPadDown:  "DPAD_DOWN",
	ButtonDPadLeft:  "DPAD_LEFT",
	ButtonDPadRight: "DPAD_RIGHT",
}

var buttonsByName = func() map[string]Button {
	m := make(map[string]Button, len(buttonNames))
	for b, n := range buttonNames {
		m[n] = b
	}
	return m
}()

// String returns the canonical name of a single button, or the pipe-joined
// names of a combination.
func (b Button) String() string {
	if n, ok := buttonNames[b]; ok {
		return n
	}
	var parts []string
	for mask := Button(1); mask != 0 && mask <= b; mask <<= 1 {
		if b&mask != 0 {
			if n, ok := buttonNames[mask]; ok {
				parts = append(parts, n)
			}
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Button(0x%x)", uint32(b))
	}
	return strings.Join(parts, "|")
}

// ParseButton resolves a canonical button name ("B", "DPAD_UP", ...).
func ParseButton(name string) (Button, error) {
	if b, ok := buttonsByName[name]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown button name %q", name)
}

// Stick is a normalized analog stick position. Both axes are in [-100, 100]
// with 0 centered; positive Y is up.
type Stick struct {
	X, Y int8
}

// Snapshot is the full controller state. The zero value is a valid state:
// every button released and both sticks centered.
type Snapshot struct {
	Buttons    Button
	LeftStick  Stick
	RightStick Stick
}

// SetButton sets or clears one button. Returns true if the stored state
// actually changed.
func (s *Snapshot) SetButton(b Button, pressed bool) bool {
	prev := s.Buttons
	if pressed {
		s.Buttons |= b
	} else {
		s.Buttons &^= b
	}
	return s.Buttons != prev
}

// Pressed reports whether all buttons in b are currently pressed.
func (s *Snapshot) Pressed(b Button) bool {
	return s.Buttons&b == b
}

// MarshalBinary encodes the snapshot into the 8-byte session wire form:
// buttons as little-endian u32 followed by LX, LY, RX, RY as signed bytes.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[0:4], uint32(s.Buttons))
	b[4] = byte(s.LeftStick.X)
	b[5] = byte(s.LeftStick.Y)
	b[6] = byte(s.RightStick.X)
	b[7] = byte(s.RightStick.Y)
	return b, nil
}

// UnmarshalBinary decodes 8 bytes into the snapshot.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return io.ErrUnexpectedEOF
	}
	s.Buttons = Button(binary.LittleEndian.Uint32(data[0:4]))
	s.LeftStick = Stick{X: int8(data[4]), Y: int8(data[5])}
	s.RightStick = Stick{X: int8(data[6]), Y: int8(data[7])}
	return nil
}
