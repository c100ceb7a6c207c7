// Package keymap loads keyboard keymaps from configuration files and builds
// them into a ready dispatcher.
//
// A keymap names its layers in priority order (the first is Base), gives
// each layer a table of keycode names, and declares the control keys that
// switch layers and the tri-layer bindings that derive them.
package keymap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Config is the file representation of a keymap.
type Config struct {
	Name      string            `json:"name" yaml:"name" toml:"name"`
	Rows      int               `json:"rows" yaml:"rows" toml:"rows"`
	Cols      int               `json:"cols" yaml:"cols" toml:"cols"`
	Layers    []LayerConfig     `json:"layers" yaml:"layers" toml:"layers"`
	TriLayers []TriLayerConfig  `json:"triLayers,omitempty" yaml:"triLayers,omitempty" toml:"triLayers,omitempty"`
	Momentary []MomentaryConfig `json:"momentary,omitempty" yaml:"momentary,omitempty" toml:"momentary,omitempty"`
	Toggles   []ToggleConfig    `json:"toggles,omitempty" yaml:"toggles,omitempty" toml:"toggles,omitempty"`
}

// LayerConfig is one layer. Keys holds Rows rows of Cols keycode names; an
// empty Keys makes the whole layer transparent.
type LayerConfig struct {
	Name string     `json:"name" yaml:"name" toml:"name"`
	Keys [][]string `json:"keys,omitempty" yaml:"keys,omitempty" toml:"keys,omitempty"`
}

// TriLayerConfig activates Derived while both A and B are active.
type TriLayerConfig struct {
	A       string `json:"a" yaml:"a" toml:"a"`
	B       string `json:"b" yaml:"b" toml:"b"`
	Derived string `json:"derived" yaml:"derived" toml:"derived"`
}

// MomentaryConfig declares a control key that holds Layer active while it
// is down. With Parent set, the key only works while Parent is active.
type MomentaryConfig struct {
	Keycode string `json:"keycode" yaml:"keycode" toml:"keycode"`
	Layer   string `json:"layer" yaml:"layer" toml:"layer"`
	Parent  string `json:"parent,omitempty" yaml:"parent,omitempty" toml:"parent,omitempty"`
}

// ToggleConfig declares a control key that latches Layer on and off.
// Children are forced off when the latch opens. Empty songs use the default
// cues; Tempo defaults to audio.DefaultTempo.
type ToggleConfig struct {
	Keycode  string   `json:"keycode" yaml:"keycode" toml:"keycode"`
	Layer    string   `json:"layer" yaml:"layer" toml:"layer"`
	Children []string `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
	OnSong   []string `json:"onSong,omitempty" yaml:"onSong,omitempty" toml:"onSong,omitempty"`
	OffSong  []string `json:"offSong,omitempty" yaml:"offSong,omitempty" toml:"offSong,omitempty"`
	Tempo    int      `json:"tempo,omitempty" yaml:"tempo,omitempty" toml:"tempo,omitempty"`
}

// NormalizeFormat maps a format name or file extension to "json", "yaml" or
// "toml". It returns "" for anything else.
func NormalizeFormat(f string) string {
	switch strings.ToLower(strings.TrimPrefix(f, ".")) {
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

// Decode reads a keymap in the given format.
func Decode(r io.Reader, format string) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch NormalizeFormat(format) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case "yaml":
		err = yaml.Unmarshal(data, &cfg)
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported keymap format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s keymap: %w", NormalizeFormat(format), err)
	}
	return &cfg, nil
}

// Encode writes cfg in the given format.
func Encode(w io.Writer, cfg *Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch NormalizeFormat(format) {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported keymap format: %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Load reads a keymap file, choosing the format by extension.
func Load(path string) (*Config, error) {
	format := NormalizeFormat(filepath.Ext(path))
	if format == "" {
		return nil, fmt.Errorf("unsupported keymap file extension: %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns the built-in keymap called name, or loads name as a file
// when no built-in has that name.
func Resolve(name string) (*Config, error) {
	if cfg, ok := Builtin(name); ok {
		return cfg, nil
	}
	return Load(name)
}
