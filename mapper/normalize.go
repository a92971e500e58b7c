package mapper

import (
	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/procon"
)

// Device-native value ranges.
const (
	triggerMax = 255   // unsigned 8-bit trigger travel
	stickMax   = 32767 // signed 16-bit stick deflection
)

// triggerThreshold is the normalized travel (0..100) beyond which a trigger
// counts as pressed. 50 itself is released: half depressed is not a pull.
const triggerThreshold = 50

// UpdateKind discriminates what field of the snapshot an Update assigns.
type UpdateKind uint8

const (
	UpdateButton UpdateKind = iota
	UpdateStickAxis
)

// Update is one normalized field assignment produced from a raw event.
type Update struct {
	Kind UpdateKind

	// Kind == UpdateButton
	Button  procon.Button
	Pressed bool

	// Kind == UpdateStickAxis
	Stick StickID
	Axis  AxisID
	Value int8
}

func buttonUpdate(b procon.Button, pressed bool) Update {
	return Update{Kind: UpdateButton, Button: b, Pressed: pressed}
}

func stickUpdate(sa StickAxis, v int8) Update {
	return Update{Kind: UpdateStickAxis, Stick: sa.Stick, Axis: sa.Axis, Value: v}
}

// Normalize converts one raw event into zero or more snapshot field
// assignments. Events whose code appears in no table yield nil; that is
// not an error. Normalize does no I/O and never fails.
func Normalize(t Tables, ev evdev.Event) []Update {
	switch ev.Type {
	case evdev.EventKey:
		if b, ok := t.Buttons[ev.Code]; ok {
			return []Update{buttonUpdate(b, ev.Value == 1)}
		}
	case evdev.EventAbsolute:
		if b, ok := t.Triggers[ev.Code]; ok {
			return []Update{buttonUpdate(b, scaleTrigger(ev.Value) > triggerThreshold)}
		}
		switch ev.Code {
		case HatXCode:
			return []Update{
				buttonUpdate(procon.ButtonDPadLeft, ev.Value == -1),
				buttonUpdate(procon.ButtonDPadRight, ev.Value == 1),
			}
		case HatYCode:
			return []Update{
				buttonUpdate(procon.ButtonDPadUp, ev.Value == -1),
				buttonUpdate(procon.ButtonDPadDown, ev.Value == 1),
			}
		}
		if sa, ok := t.Axes[ev.Code]; ok {
			v := scaleStick(ev.Value)
			// Hardware reports up as negative; the snapshot wants up
			// positive.
			if sa.Axis == AxisY {
				v = -v
			}
			return []Update{stickUpdate(sa, v)}
		}
	}
	return nil
}

// scaleTrigger maps 0..255 to 0..100, rounding to nearest.
func scaleTrigger(v int32) int32 {
	return roundScale(v, 100, triggerMax)
}

// scaleStick maps -32768..32767 to -100..100, rounding to nearest and
// clamping (only -32768 scales out of range).
func scaleStick(v int32) int8 {
	s := roundScale(v, 100, stickMax)
	if s > 100 {
		s = 100
	} else if s < -100 {
		s = -100
	}
	return int8(s)
}

// roundScale computes round(v*num/den) with ties away from zero. The
// rounding rule is observable at the trigger threshold (127 -> 50,
// released; 129 -> 51, pressed) and is fixed by the tests.
func roundScale(v, num, den int32) int32 {
	n := v * num
	if n >= 0 {
		return (n + den/2) / den
	}
	return (n - den/2) / den
}
