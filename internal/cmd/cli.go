// Package cmd holds the kong command structs behind the nxbridge CLI.
package cmd

// LogConfig groups the global logging flags.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" enum:"trace,debug,info,warn,error" default:"info" env:"NXBRIDGE_LOG_LEVEL"`
	File    string `help:"Write logs to a file instead of the console" env:"NXBRIDGE_LOG_FILE"`
	RawFile string `help:"Dump every raw input event to a file" env:"NXBRIDGE_LOG_RAW_FILE"`
}

// CLI is the root command tree parsed by kong.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file" env:"NXBRIDGE_CONFIG"`
	Debug  bool      `help:"Shortcut for --log.level=debug"`

	Run      Run             `cmd:"" default:"withargs" help:"Bridge a physical gamepad to a virtual Switch controller"`
	Mappings MappingsCommand `cmd:"" help:"Manage mapping override files"`
}
