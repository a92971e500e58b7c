package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/nxbridge/internal/configpaths"
	"github.com/Alia5/nxbridge/mapper"
)

// MappingsCommand groups mapping-file subcommands.
type MappingsCommand struct {
	Init MappingsInit `cmd:"" help:"Write a mapping override template with the default routing"`
}

// MappingsInit scaffolds a mapping override file.
type MappingsInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to mappings.<format>)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run writes the default tables in the chosen format so users can edit
// them for their pad.
func (c *MappingsInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root := mapper.DefaultTables().FileForm()

	dest := c.Output
	if dest == "" {
		dest = "mappings." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}
