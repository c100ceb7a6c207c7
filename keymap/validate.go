package keymap

import (
	"errors"
	"fmt"

	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/layer"
)

// ErrInvalid is returned for keymaps that are structurally wrong.
var ErrInvalid = errors.New("invalid keymap")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the references inside cfg: layer names, control keycode
// names and the roles layers play. Keycode names inside the tables are
// checked by Build.
func (cfg *Config) Validate() error {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return invalid("matrix size %dx%d", cfg.Rows, cfg.Cols)
	}
	if len(cfg.Layers) == 0 {
		return invalid("no layers")
	}
	if len(cfg.Layers) > layer.MaxLayers {
		return invalid("%d layers, at most %d supported", len(cfg.Layers), layer.MaxLayers)
	}

	layers, err := cfg.layerIndex()
	if err != nil {
		return err
	}
	lookup := func(what, name string) (layer.Layer, error) {
		l, ok := layers[name]
		if !ok {
			return 0, invalid("%s: unknown layer %q", what, name)
		}
		return l, nil
	}

	var bindings []layer.Binding
	for i, t := range cfg.TriLayers {
		what := fmt.Sprintf("tri-layer %d", i)
		a, err := lookup(what, t.A)
		if err != nil {
			return err
		}
		b, err := lookup(what, t.B)
		if err != nil {
			return err
		}
		d, err := lookup(what, t.Derived)
		if err != nil {
			return err
		}
		bindings = append(bindings, layer.Binding{A: a, B: b, Derived: d})
	}
	if err := layer.ValidateBindings(bindings); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	derived := layer.Mask(0)
	for _, b := range bindings {
		derived = derived.With(b.Derived)
	}

	// Controls must drive a switchable layer: never Base and never a layer
	// the tri-layer bindings own.
	switchable := func(what, name string) error {
		l, err := lookup(what, name)
		if err != nil {
			return err
		}
		if l == layer.Base {
			return invalid("%s: base layer %q cannot be switched", what, name)
		}
		if derived.Has(l) {
			return invalid("%s: layer %q is derived by a tri-layer binding", what, name)
		}
		return nil
	}

	names := make(map[string]bool)
	claim := func(what, name string) error {
		if name == "" {
			return invalid("%s: missing keycode name", what)
		}
		if names[name] {
			return invalid("%s: keycode %q declared twice", what, name)
		}
		if _, err := keycode.Parse(name, nil); err == nil {
			return invalid("%s: keycode %q shadows a standard keycode", what, name)
		}
		names[name] = true
		return nil
	}

	for _, m := range cfg.Momentary {
		what := "momentary " + m.Keycode
		if err := claim(what, m.Keycode); err != nil {
			return err
		}
		if err := switchable(what, m.Layer); err != nil {
			return err
		}
		if m.Parent != "" {
			if _, err := lookup(what, m.Parent); err != nil {
				return err
			}
		}
	}
	for _, t := range cfg.Toggles {
		what := "toggle " + t.Keycode
		if err := claim(what, t.Keycode); err != nil {
			return err
		}
		if err := switchable(what, t.Layer); err != nil {
			return err
		}
		for _, c := range t.Children {
			if err := switchable(what, c); err != nil {
				return err
			}
		}
		if t.Tempo < 0 {
			return invalid("%s: negative tempo", what)
		}
	}
	if n := len(names); n > int(keycode.SafeRangeMax-keycode.SafeRange)+1 {
		return invalid("%d control keycodes, too many", n)
	}
	return nil
}

func (cfg *Config) layerIndex() (map[string]layer.Layer, error) {
	idx := make(map[string]layer.Layer, len(cfg.Layers))
	for i, l := range cfg.Layers {
		if l.Name == "" {
			return nil, invalid("layer %d has no name", i)
		}
		if _, dup := idx[l.Name]; dup {
			return nil, invalid("layer %q declared twice", l.Name)
		}
		idx[l.Name] = layer.Layer(i)
	}
	return idx, nil
}
