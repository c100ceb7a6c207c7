package keymap

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/cflee/planck/audio"
	"github.com/cflee/planck/control"
	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/layer"
)

// Options carries the collaborators a built keymap talks to. Every field is
// optional.
type Options struct {
	Logger *slog.Logger
	// Player receives the toggle cues. It sits behind the AU_ON/AU_OFF gate.
	Player audio.Player
	// Swapper is told about AG_NORM and AG_SWAP.
	Swapper control.AltGUISwapper
	// Reset and Debug run on RESET and DEBUG. When nil the request is logged.
	Reset func()
	Debug func()
}

// Board is a keymap built into live state.
type Board struct {
	Name       string
	Keymap     *layer.Keymap
	State      *layer.State
	Dispatcher *control.Dispatcher
	Gate       *audio.Gate
	// Controls maps control keycode names to the keycodes assigned to them.
	Controls map[string]keycode.Keycode
}

// KeycodeName names kc, using the control names of the board.
func (b *Board) KeycodeName(kc keycode.Keycode) string {
	for name, c := range b.Controls {
		if c == kc {
			return name
		}
	}
	return keycode.Name(kc)
}

// ControlNames lists the control keycode names in keycode order.
func (b *Board) ControlNames() []string {
	names := make([]string, 0, len(b.Controls))
	for n := range b.Controls {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return b.Controls[names[i]] < b.Controls[names[j]] })
	return names
}

// Build validates cfg and turns it into a board ready to process
// transitions. Control keycodes are assigned from keycode.SafeRange upwards,
// momentary controls first, in declaration order.
func Build(cfg *Config, opts Options) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	layers, _ := cfg.layerIndex()

	controls := make(map[string]keycode.Keycode, len(cfg.Momentary)+len(cfg.Toggles))
	assign := func(name string) error {
		kc, err := keycode.Custom(len(controls))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		controls[name] = kc
		return nil
	}
	for _, m := range cfg.Momentary {
		if err := assign(m.Keycode); err != nil {
			return nil, err
		}
	}
	for _, t := range cfg.Toggles {
		if err := assign(t.Keycode); err != nil {
			return nil, err
		}
	}

	tables := make([]layer.Table, len(cfg.Layers))
	names := make([]string, len(cfg.Layers))
	for i, lc := range cfg.Layers {
		names[i] = lc.Name
		t, err := parseTable(cfg, lc, controls)
		if err != nil {
			return nil, err
		}
		tables[i] = t
	}
	km, err := layer.NewKeymap(cfg.Rows, cfg.Cols, tables, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	bindings := make([]layer.Binding, 0, len(cfg.TriLayers))
	for _, t := range cfg.TriLayers {
		bindings = append(bindings, layer.Binding{A: layers[t.A], B: layers[t.B], Derived: layers[t.Derived]})
	}
	state := layer.NewState(bindings...)
	state.OnChange(func(l layer.Layer, active bool) {
		logger.Debug("layer changed", "layer", km.Name(l), "active", active)
	})

	gate := audio.NewGate(opts.Player)
	d := control.NewDispatcher(km, state, logger)

	for _, m := range cfg.Momentary {
		h := control.NewMomentary(state, layers[m.Layer], logger).WithNames(km.Name)
		if m.Parent != "" {
			h.WithParent(layers[m.Parent])
		}
		d.Register(controls[m.Keycode], h)
	}
	for _, t := range cfg.Toggles {
		h := control.NewToggle(state, layers[t.Layer], gate, logger).WithNames(km.Name)
		for _, c := range t.Children {
			h.WithChildren(layers[c])
		}
		on, off, err := toggleSongs(t)
		if err != nil {
			return nil, err
		}
		h.WithSongs(on, off)
		d.Register(controls[t.Keycode], h)
	}

	d.Register(keycode.AudioOn, control.AudioSwitch(gate, true, logger))
	d.Register(keycode.AudioOff, control.AudioSwitch(gate, false, logger))
	if opts.Swapper != nil {
		d.Register(keycode.AltGUINorm, control.AltGUISwitch(opts.Swapper, false, logger))
		d.Register(keycode.AltGUISwap, control.AltGUISwitch(opts.Swapper, true, logger))
	}
	d.Register(keycode.Reset, control.Command("reset", opts.Reset, logger))
	d.Register(keycode.Debug, control.Command("debug", opts.Debug, logger))

	logger.Debug("built keymap",
		"name", cfg.Name,
		"layers", len(cfg.Layers),
		"bindings", len(bindings),
		"controls", len(controls))

	return &Board{
		Name:       cfg.Name,
		Keymap:     km,
		State:      state,
		Dispatcher: d,
		Gate:       gate,
		Controls:   controls,
	}, nil
}

func parseTable(cfg *Config, lc LayerConfig, controls map[string]keycode.Keycode) (layer.Table, error) {
	if len(lc.Keys) == 0 {
		return nil, nil
	}
	if len(lc.Keys) != cfg.Rows {
		return nil, invalid("layer %q has %d rows, want %d", lc.Name, len(lc.Keys), cfg.Rows)
	}
	t := make(layer.Table, cfg.Rows)
	for r, row := range lc.Keys {
		if len(row) != cfg.Cols {
			return nil, invalid("layer %q row %d has %d columns, want %d", lc.Name, r, len(row), cfg.Cols)
		}
		t[r] = make([]keycode.Keycode, cfg.Cols)
		for c, name := range row {
			kc, err := keycode.Parse(name, controls)
			if err != nil {
				return nil, fmt.Errorf("%w: layer %q r%dc%d: %w", ErrInvalid, lc.Name, r, c, err)
			}
			t[r][c] = kc
		}
	}
	return t, nil
}

func toggleSongs(t ToggleConfig) (on, off audio.Song, err error) {
	on, off = audio.LatchOn, audio.LatchOff
	tempo := t.Tempo
	if tempo == 0 {
		tempo = audio.DefaultTempo
	}
	if len(t.OnSong) > 0 {
		if on, err = audio.ParseSong(tempo, t.OnSong); err != nil {
			return on, off, fmt.Errorf("%w: toggle %s: %w", ErrInvalid, t.Keycode, err)
		}
	}
	if len(t.OffSong) > 0 {
		if off, err = audio.ParseSong(tempo, t.OffSong); err != nil {
			return on, off, fmt.Errorf("%w: toggle %s: %w", ErrInvalid, t.Keycode, err)
		}
	}
	return on, off, nil
}
