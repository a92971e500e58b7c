package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/mapper"
	"github.com/Alia5/nxbridge/procon"
)

func TestNormalizeButtons(t *testing.T) {
	tables := mapper.DefaultTables()

	cases := []struct {
		name    string
		event   evdev.Event
		button  procon.Button
		pressed bool
	}{
		{"south press", evdev.Event{Type: evdev.EventKey, Code: "BTN_SOUTH", Value: 1}, procon.ButtonB, true},
		{"south release", evdev.Event{Type: evdev.EventKey, Code: "BTN_SOUTH", Value: 0}, procon.ButtonB, false},
		{"east press", evdev.Event{Type: evdev.EventKey, Code: "BTN_EAST", Value: 1}, procon.ButtonA, true},
		{"north press", evdev.Event{Type: evdev.EventKey, Code: "BTN_NORTH", Value: 1}, procon.ButtonX, true},
		{"west press", evdev.Event{Type: evdev.EventKey, Code: "BTN_WEST", Value: 1}, procon.ButtonY, true},
		{"start press", evdev.Event{Type: evdev.EventKey, Code: "BTN_START", Value: 1}, procon.ButtonPlus, true},
		{"select press", evdev.Event{Type: evdev.EventKey, Code: "BTN_SELECT", Value: 1}, procon.ButtonMinus, true},
		{"mode press", evdev.Event{Type: evdev.EventKey, Code: "BTN_MODE", Value: 1}, procon.ButtonHome, true},
		{"thumbl press", evdev.Event{Type: evdev.EventKey, Code: "BTN_THUMBL", Value: 1}, procon.ButtonLStick, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			ups := mapper.Normalize(tables, tt.event)
			assert.Len(t, ups, 1)
			assert.Equal(t, mapper.UpdateButton, ups[0].Kind)
			assert.Equal(t, tt.button, ups[0].Button)
			assert.Equal(t, tt.pressed, ups[0].Pressed)
		})
	}
}

func TestNormalizeSticks(t *testing.T) {
	tables := mapper.DefaultTables()

	cases := []struct {
		name  string
		code  string
		value int32
		stick mapper.StickID
		axis  mapper.AxisID
		want  int8
	}{
		{"center", "ABS_X", 0, mapper.LeftStick, mapper.AxisX, 0},
		{"full right", "ABS_X", 32767, mapper.LeftStick, mapper.AxisX, 100},
		{"full left clamps", "ABS_X", -32768, mapper.LeftStick, mapper.AxisX, -100},
		{"half right", "ABS_X", 16384, mapper.LeftStick, mapper.AxisX, 50},
		{"y inverted up", "ABS_Y", -32767, mapper.LeftStick, mapper.AxisY, 100},
		{"y inverted down", "ABS_Y", 32767, mapper.LeftStick, mapper.AxisY, -100},
		{"y center", "ABS_Y", 0, mapper.LeftStick, mapper.AxisY, 0},
		{"right stick x", "ABS_RX", -16384, mapper.RightStick, mapper.AxisX, -50},
		{"right stick y", "ABS_RY", 16384, mapper.RightStick, mapper.AxisY, -50},
		{"rounds to nearest", "ABS_X", 164, mapper.LeftStick, mapper.AxisX, 1},
		{"rounds down below half", "ABS_X", 163, mapper.LeftStick, mapper.AxisX, 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			ups := mapper.Normalize(tables, evdev.Event{Type: evdev.EventAbsolute, Code: tt.code, Value: tt.value})
			assert.Len(t, ups, 1)
			assert.Equal(t, mapper.UpdateStickAxis, ups[0].Kind)
			assert.Equal(t, tt.stick, ups[0].Stick)
			assert.Equal(t, tt.axis, ups[0].Axis)
			assert.Equal(t, tt.want, ups[0].Value)
		})
	}
}

func TestNormalizeTriggerThreshold(t *testing.T) {
	tables := mapper.DefaultTables()

	// 127 and 128 both scale to 50, which is not past halfway; 129 scales
	// to 51 and counts as a pull.
	cases := []struct {
		value   int32
		pressed bool
	}{
		{0, false},
		{64, false},
		{127, false},
		{128, false},
		{129, true},
		{200, true},
		{255, true},
	}

	for _, tt := range cases {
		ups := mapper.Normalize(tables, evdev.Event{Type: evdev.EventAbsolute, Code: "ABS_Z", Value: tt.value})
		assert.Len(t, ups, 1)
		assert.Equal(t, procon.ButtonZL, ups[0].Button)
		assert.Equal(t, tt.pressed, ups[0].Pressed, "trigger value %d", tt.value)
	}

	ups := mapper.Normalize(tables, evdev.Event{Type: evdev.EventAbsolute, Code: "ABS_RZ", Value: 255})
	assert.Len(t, ups, 1)
	assert.Equal(t, procon.ButtonZR, ups[0].Button)
	assert.True(t, ups[0].Pressed)
}

func TestNormalizeDPadMutualExclusion(t *testing.T) {
	tables := mapper.DefaultTables()

	cases := []struct {
		name         string
		code         string
		value        int32
		neg, pos     procon.Button
		negOn, posOn bool
	}{
		{"hat x left", "ABS_HAT0X", -1, procon.ButtonDPadLeft, procon.ButtonDPadRight, true, false},
		{"hat x center", "ABS_HAT0X", 0, procon.ButtonDPadLeft, procon.ButtonDPadRight, false, false},
		{"hat x right", "ABS_HAT0X", 1, procon.ButtonDPadLeft, procon.ButtonDPadRight, false, true},
		{"hat y up", "ABS_HAT0Y", -1, procon.ButtonDPadUp, procon.ButtonDPadDown, true, false},
		{"hat y center", "ABS_HAT0Y", 0, procon.ButtonDPadUp, procon.ButtonDPadDown, false, false},
		{"hat y down", "ABS_HAT0Y", 1, procon.ButtonDPadUp, procon.ButtonDPadDown, false, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			ups := mapper.Normalize(tables, evdev.Event{Type: evdev.EventAbsolute, Code: tt.code, Value: tt.value})
			assert.Len(t, ups, 2)
			assert.Equal(t, tt.neg, ups[0].Button)
			assert.Equal(t, tt.negOn, ups[0].Pressed)
			assert.Equal(t, tt.pos, ups[1].Button)
			assert.Equal(t, tt.posOn, ups[1].Pressed)
			assert.False(t, ups[0].Pressed && ups[1].Pressed, "opposing d-pad directions both pressed")
		})
	}
}

func TestNormalizeUnmapped(t *testing.T) {
	tables := mapper.DefaultTables()

	for _, ev := range []evdev.Event{
		{Type: evdev.EventKey, Code: "BTN_TRIGGER_HAPPY1", Value: 1},
		{Type: evdev.EventAbsolute, Code: "ABS_MISC", Value: 123},
	} {
		assert.Nil(t, mapper.Normalize(tables, ev))
	}
}
