// Package config defines the command line and configuration file surface.
package config

import "github.com/cflee/planck/internal/cmd"

// CLI is the root command. Flags may also come from JSON, YAML or TOML
// configuration files and PLANCK_* environment variables.
type CLI struct {
	ConfigFile string  `name:"config" help:"Configuration file (json, yaml or toml)" env:"PLANCK_CONFIG" type:"path"`
	Log        cmd.Log `embed:"" prefix:"log."`

	Replay cmd.Replay        `cmd:"" default:"withargs" help:"Replay a transition script through a keymap"`
	Layout cmd.Layout        `cmd:"" help:"Print the layer tables of a keymap"`
	Check  cmd.Check         `cmd:"" help:"Validate keymaps"`
	Keymap cmd.KeymapCommand `cmd:"" help:"Manage keymaps"`
	Config cmd.ConfigCommand `cmd:"" help:"Manage configuration files"`
}
