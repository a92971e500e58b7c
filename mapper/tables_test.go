package mapper_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/nxbridge/mapper"
	"github.com/Alia5/nxbridge/procon"
)

func TestDefaultTablesValid(t *testing.T) {
	assert.NoError(t, mapper.DefaultTables().Validate())
}

func TestValidateRejectsOverlap(t *testing.T) {
	tables := mapper.DefaultTables()
	tables.Triggers["ABS_X"] = procon.ButtonZL
	assert.Error(t, tables.Validate())
}

func TestValidateRejectsHatRemap(t *testing.T) {
	tables := mapper.DefaultTables()
	tables.Axes[mapper.HatXCode] = mapper.StickAxis{Stick: mapper.LeftStick, Axis: mapper.AxisX}
	assert.Error(t, tables.Validate())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTablesFormats(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "map.yaml",
			content: "buttons:\n  BTN_SOUTH: A\n  BTN_EAST: B\n",
		},
		{
			name: "json",
			file: "map.json",
			content: `{"buttons": {"BTN_SOUTH": "A", "BTN_EAST": "B"}}`,
		},
		{
			name: "toml",
			file: "map.toml",
			content: "[buttons]\nBTN_SOUTH = \"A\"\nBTN_EAST = \"B\"\n",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			tables, err := mapper.LoadTables(path)
			require.NoError(t, err)

			// Swapped face buttons replace the default button section...
			assert.Equal(t, procon.ButtonA, tables.Buttons["BTN_SOUTH"])
			assert.Equal(t, procon.ButtonB, tables.Buttons["BTN_EAST"])
			assert.NotContains(t, tables.Buttons, "BTN_NORTH")
			// ...while untouched sections keep their defaults.
			assert.Equal(t, mapper.StickAxis{Stick: mapper.LeftStick, Axis: mapper.AxisX}, tables.Axes["ABS_X"])
			assert.Equal(t, procon.ButtonZL, tables.Triggers["ABS_Z"])
		})
	}
}

func TestLoadTablesAxisTargets(t *testing.T) {
	path := writeFile(t, "map.yaml", "axes:\n  ABS_X: right.y\n")
	tables, err := mapper.LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, mapper.StickAxis{Stick: mapper.RightStick, Axis: mapper.AxisY}, tables.Axes["ABS_X"])
}

func TestLoadTablesErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown button", "map.yaml", "buttons:\n  BTN_SOUTH: FROB\n"},
		{"bad axis target", "map.yaml", "axes:\n  ABS_X: middle.x\n"},
		{"axis without dot", "map.yaml", "axes:\n  ABS_X: leftx\n"},
		{"hat remap", "map.yaml", "axes:\n  ABS_HAT0X: left.x\n"},
		{"unsupported extension", "map.ini", "buttons = none"},
		{"broken yaml", "map.yaml", "buttons: ["},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapper.LoadTables(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestFileFormRoundTrip(t *testing.T) {
	ff := mapper.DefaultTables().FileForm()
	assert.Equal(t, "B", ff.Buttons["BTN_SOUTH"])
	assert.Equal(t, "left.y", ff.Axes["ABS_Y"])
	assert.Equal(t, "ZR", ff.Triggers["ABS_RZ"])
}
