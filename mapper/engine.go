package mapper

import (
	"log/slog"

	"github.com/Alia5/nxbridge/evdev"
	"github.com/Alia5/nxbridge/procon"
)

// Sink receives the full controller state whenever it changes. The
// implementation must be safe for repeated calls from a single producer
// goroutine.
type Sink interface {
	Push(procon.Snapshot) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(procon.Snapshot) error

func (f SinkFunc) Push(s procon.Snapshot) error { return f(s) }

// Engine owns the live snapshot. Exactly one goroutine may call Apply; the
// snapshot is never shared outside the engine (the sink receives copies).
type Engine struct {
	tables Tables
	snap   procon.Snapshot
	sink   Sink
	logger *slog.Logger
}

// NewEngine creates an engine with a fresh snapshot: all buttons released,
// both sticks centered.
func NewEngine(tables Tables, sink Sink, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{tables: tables, sink: sink, logger: logger}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() procon.Snapshot { return e.snap }

// Apply normalizes one raw event, assigns the resulting field updates to
// the snapshot by overwrite, and pushes a copy downstream if anything
// changed. Unmapped events are no-ops. The only error Apply can return is
// a failed push; normalization itself never fails.
func (e *Engine) Apply(ev evdev.Event) error {
	changed := false
	for _, up := range Normalize(e.tables, ev) {
		if e.assign(up) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return e.sink.Push(e.snap)
}

func (e *Engine) assign(up Update) bool {
	switch up.Kind {
	case UpdateStickAxis:
		stick := &e.snap.LeftStick
		if up.Stick == RightStick {
			stick = &e.snap.RightStick
		}
		axis := &stick.X
		if up.Axis == AxisY {
			axis = &stick.Y
		}
		if *axis == up.Value {
			return false
		}
		*axis = up.Value
		e.logger.Debug("stick update",
			"stick", up.Stick.String(), "axis", up.Axis.String(), "value", up.Value)
		return true
	default:
		if !e.snap.SetButton(up.Button, up.Pressed) {
			return false
		}
		e.logger.Debug("button update",
			"button", up.Button.String(), "pressed", up.Pressed)
		return true
	}
}
