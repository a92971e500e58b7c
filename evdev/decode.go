package evdev

import "encoding/binary"

// inputEventSize is the size of struct input_event on 64-bit kernels:
// two 8-byte timeval fields, u16 type, u16 code, s32 value.
const inputEventSize = 24

// decodeEvents parses a buffer of raw input_event records into Events.
// Sync frames, key/abs codes outside the gamepad tables, and any trailing
// partial record are dropped.
func decodeEvents(buf []byte) []Event {
	var out []Event
	for len(buf) >= inputEventSize {
		typ := binary.LittleEndian.Uint16(buf[16:18])
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))
		buf = buf[inputEventSize:]

		switch typ {
		case evKey:
			if name, ok := keyNames[code]; ok {
				out = append(out, Event{Type: EventKey, Code: name, Value: value})
			}
		case evAbs:
			if name, ok := absNames[code]; ok {
				out = append(out, Event{Type: EventAbsolute, Code: name, Value: value})
			}
		case evSyn:
			// Frame boundary, nothing to report.
		}
	}
	return out
}
