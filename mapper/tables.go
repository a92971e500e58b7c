// Package mapper translates raw gamepad events into Pro Controller state.
//
// The mapping tables route kernel event codes to their semantic targets;
// the normalizer converts device-native values into the snapshot domain;
// the engine owns the live snapshot and pushes it downstream on change.
package mapper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/nxbridge/procon"
)

// StickID selects one of the two analog sticks.
type StickID uint8

const (
	LeftStick StickID = iota
	RightStick
)

func (s StickID) String() string {
	if s == RightStick {
		return "right"
	}
	return "left"
}

// AxisID selects an axis within a stick.
type AxisID uint8

const (
	AxisX AxisID = iota
	AxisY
)

func (a AxisID) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// StickAxis is the target of a mapped absolute axis.
type StickAxis struct {
	Stick StickID
	Axis  AxisID
}

// D-pad hat axes are routed specially and may not be remapped.
const (
	HatXCode = "ABS_HAT0X"
	HatYCode = "ABS_HAT0Y"
)

// Tables holds the static event-code routing. Immutable once built; the
// three domains must be disjoint so an event routes one way only.
type Tables struct {
	Buttons  map[string]procon.Button
	Axes     map[string]StickAxis
	Triggers map[string]procon.Button
}

// DefaultTables returns the routing for a standard X-input style pad.
func DefaultTables() Tables {
	return Tables{
		Buttons: map[string]procon.Button{
			"BTN_SOUTH":  procon.ButtonB,
			"BTN_EAST":   procon.ButtonA,
			"BTN_NORTH":  procon.ButtonX,
			"BTN_WEST":   procon.ButtonY,
			"BTN_TL":     procon.ButtonL,
			"BTN_TR":     procon.ButtonR,
			"BTN_TL2":    procon.ButtonZL,
			"BTN_TR2":    procon.ButtonZR,
			"BTN_START":  procon.ButtonPlus,
			"BTN_SELECT": procon.ButtonMinus,
			"BTN_MODE":   procon.ButtonHome,
			"BTN_THUMBL": procon.ButtonLStick,
			"BTN_THUMBR": procon.ButtonRStick,
		},
		Axes: map[string]StickAxis{
			"ABS_X":  {Stick: LeftStick, Axis: AxisX},
			"ABS_Y":  {Stick: LeftStick, Axis: AxisY},
			"ABS_RX": {Stick: RightStick, Axis: AxisX},
			"ABS_RY": {Stick: RightStick, Axis: AxisY},
		},
		Triggers: map[string]procon.Button{
			"ABS_Z":  procon.ButtonZL,
			"ABS_RZ": procon.ButtonZR,
		},
	}
}

// Validate checks that the absolute-axis domains are disjoint and that no
// entry shadows the reserved hat codes.
func (t Tables) Validate() error {
	for code := range t.Axes {
		if _, ok := t.Triggers[code]; ok {
			return fmt.Errorf("code %s mapped as both axis and trigger", code)
		}
	}
	for code := range t.Buttons {
		if _, ok := t.Axes[code]; ok {
			return fmt.Errorf("code %s mapped as both button and axis", code)
		}
		if _, ok := t.Triggers[code]; ok {
			return fmt.Errorf("code %s mapped as both button and trigger", code)
		}
	}
	for _, code := range []string{HatXCode, HatYCode} {
		if _, ok := t.Axes[code]; ok {
			return fmt.Errorf("code %s is reserved for the d-pad", code)
		}
		if _, ok := t.Triggers[code]; ok {
			return fmt.Errorf("code %s is reserved for the d-pad", code)
		}
	}
	return nil
}

// FileTables is the on-disk override form. Axis targets are spelled
// "left.x", "right.y".
type FileTables struct {
	Buttons  map[string]string `json:"buttons" yaml:"buttons" toml:"buttons"`
	Axes     map[string]string `json:"axes" yaml:"axes" toml:"axes"`
	Triggers map[string]string `json:"triggers" yaml:"triggers" toml:"triggers"`
}

// LoadTables reads a mapping override file. The format is chosen by file
// extension (.json, .yaml/.yml, .toml). Omitted sections fall back to the
// defaults; a present section replaces its default entirely.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, err
	}

	var ft FileTables
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &ft)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ft)
	case ".toml":
		err = toml.Unmarshal(data, &ft)
	default:
		return Tables{}, fmt.Errorf("unsupported mapping file extension %q", ext)
	}
	if err != nil {
		return Tables{}, fmt.Errorf("parse %s: %w", path, err)
	}

	t := DefaultTables()
	if ft.Buttons != nil {
		t.Buttons, err = parseButtonMap(ft.Buttons)
		if err != nil {
			return Tables{}, fmt.Errorf("buttons: %w", err)
		}
	}
	if ft.Triggers != nil {
		t.Triggers, err = parseButtonMap(ft.Triggers)
		if err != nil {
			return Tables{}, fmt.Errorf("triggers: %w", err)
		}
	}
	if ft.Axes != nil {
		axes := make(map[string]StickAxis, len(ft.Axes))
		for code, target := range ft.Axes {
			sa, err := parseStickAxis(target)
			if err != nil {
				return Tables{}, fmt.Errorf("axes: %s: %w", code, err)
			}
			axes[code] = sa
		}
		t.Axes = axes
	}

	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func parseButtonMap(m map[string]string) (map[string]procon.Button, error) {
	out := make(map[string]procon.Button, len(m))
	for code, name := range m {
		b, err := procon.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", code, err)
		}
		out[code] = b
	}
	return out, nil
}

func parseStickAxis(s string) (StickAxis, error) {
	stick, axis, ok := strings.Cut(s, ".")
	if !ok {
		return StickAxis{}, fmt.Errorf("invalid axis target %q, want \"left.x\" style", s)
	}
	var sa StickAxis
	switch stick {
	case "left":
		sa.Stick = LeftStick
	case "right":
		sa.Stick = RightStick
	default:
		return StickAxis{}, fmt.Errorf("unknown stick %q", stick)
	}
	switch axis {
	case "x":
		sa.Axis = AxisX
	case "y":
		sa.Axis = AxisY
	default:
		return StickAxis{}, fmt.Errorf("unknown axis %q", axis)
	}
	return sa, nil
}

// FileForm converts tables back to the override-file representation, used
// for template generation.
func (t Tables) FileForm() FileTables {
	buttons := make(map[string]string, len(t.Buttons))
	for code, b := range t.Buttons {
		buttons[code] = b.String()
	}
	axes := make(map[string]string, len(t.Axes))
	for code, sa := range t.Axes {
		axes[code] = sa.Stick.String() + "." + sa.Axis.String()
	}
	triggers := make(map[string]string, len(t.Triggers))
	for code, b := range t.Triggers {
		triggers[code] = b.String()
	}
	return FileTables{Buttons: buttons, Axes: axes, Triggers: triggers}
}
