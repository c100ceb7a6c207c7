package keymap

import "sort"

const (
	planckRows = 4
	planckCols = 12
)

var builtins = map[string]func() *Config{
	"cflee":        cflee,
	"cflee-simple": cfleeSimple,
}

// Builtin returns a fresh copy of the built-in keymap called name.
func Builtin(name string) (*Config, bool) {
	f, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// BuiltinNames lists the built-in keymaps in alphabetical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// cflee is a 4x12 Planck layout with Lower and Raise, an Adjust layer
// reached by holding both, and a latched game layer whose own lower key
// also reaches Adjust together with Raise.
func cflee() *Config {
	const ____ = "_______"
	return &Config{
		Name: "cflee",
		Rows: planckRows,
		Cols: planckCols,
		Layers: []LayerConfig{
			{Name: "qwerty", Keys: [][]string{
				{"KC_TAB", "KC_Q", "KC_W", "KC_E", "KC_R", "KC_T", "KC_Y", "KC_U", "KC_I", "KC_O", "KC_P", "KC_BSPC"},
				{"KC_GESC", "KC_A", "KC_S", "KC_D", "KC_F", "KC_G", "KC_H", "KC_J", "KC_K", "KC_L", "KC_SCLN", "KC_QUOT"},
				{"KC_LSFT", "KC_Z", "KC_X", "KC_C", "KC_V", "KC_B", "KC_N", "KC_M", "KC_COMM", "KC_DOT", "KC_SLSH", "KC_ENT"},
				{"KC_NO", "KC_LCTL", "KC_LALT", "KC_LGUI", "LOWER", "KC_SPC", "KC_SPC", "RAISE", "KC_LEFT", "KC_DOWN", "KC_UP", "KC_RGHT"},
			}},
			{Name: "lower", Keys: [][]string{
				{"KC_TILD", "KC_EXLM", "KC_AT", "KC_HASH", "KC_DLR", "KC_PERC", "KC_CIRC", "KC_AMPR", "KC_ASTR", "KC_LPRN", "KC_RPRN", "KC_BSPC"},
				{"KC_DEL", "KC_F1", "KC_F2", "KC_F3", "KC_F4", "KC_F5", "KC_F6", "KC_UNDS", "KC_PLUS", "KC_LCBR", "KC_RCBR", "KC_PIPE"},
				{____, "KC_F7", "KC_F8", "KC_F9", "KC_F10", "KC_F11", "KC_F12", ____, ____, "KC_HOME", "KC_END", ____},
				{____, ____, ____, ____, ____, ____, ____, ____, "KC_MNXT", "KC_VOLD", "KC_VOLU", "KC_MPLY"},
			}},
			{Name: "raise", Keys: [][]string{
				{"KC_GRV", "KC_1", "KC_2", "KC_3", "KC_4", "KC_5", "KC_6", "KC_7", "KC_8", "KC_9", "KC_0", "KC_BSPC"},
				{"KC_DEL", "KC_F1", "KC_F2", "KC_F3", "KC_F4", "KC_F5", "KC_F6", "KC_MINS", "KC_EQL", "KC_LBRC", "KC_RBRC", "KC_BSLS"},
				{____, "KC_F7", "KC_F8", "KC_F9", "KC_F10", "KC_F11", "KC_F12", ____, ____, "KC_PGDN", "KC_PGUP", ____},
				{____, ____, ____, ____, ____, ____, ____, ____, "KC_MNXT", "KC_VOLD", "KC_VOLU", "KC_MPLY"},
			}},
			{Name: "game1", Keys: [][]string{
				{____, ____, ____, ____, ____, "KC_1", "KC_2", "KC_3", "KC_4", ____, "KC_F4", ____},
				{____, ____, ____, ____, ____, "KC_5", "KC_6", "KC_7", "KC_8", ____, ____, ____},
				{____, ____, ____, ____, "KC_M", "KC_9", "KC_0", "KC_MINS", "KC_EQL", ____, ____, ____},
				{____, ____, ____, ____, ____, "GAME1_L", ____, ____, ____, ____, ____, ____},
			}},
			{Name: "game1_lower", Keys: [][]string{
				{____, "KC_1", "KC_2", "KC_3", "KC_4", ____, ____, ____, ____, ____, ____, ____},
				{____, "KC_5", "KC_6", "KC_7", "KC_8", ____, ____, ____, ____, ____, ____, ____},
				{____, "KC_9", "KC_0", "KC_MINS", "KC_EQL", ____, ____, ____, ____, ____, ____, ____},
				{____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____},
			}},
			{Name: "adjust", Keys: [][]string{
				{____, "RESET", "DEBUG", "AU_ON", "AU_OFF", "AG_NORM", "AG_SWAP", "T_GAME1", ____, ____, ____, "KC_DEL"},
				// macOS screenshots, then the password manager shortcuts
				{____, "LGUI(LSFT(KC_3))", "LGUI(LSFT(KC_4))", "LGUI(LCTL(LSFT(KC_3)))", "LGUI(LCTL(LSFT(KC_4)))", ____, ____,
					"LGUI(KC_BSLS)", "LGUI(LALT(KC_BSLS))", ____, ____, ____},
				{____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____},
				{____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____, ____},
			}},
		},
		TriLayers: []TriLayerConfig{
			{A: "lower", B: "raise", Derived: "adjust"},
			{A: "game1_lower", B: "raise", Derived: "adjust"},
		},
		Momentary: []MomentaryConfig{
			{Keycode: "LOWER", Layer: "lower"},
			{Keycode: "RAISE", Layer: "raise"},
			{Keycode: "GAME1_L", Layer: "game1_lower", Parent: "game1"},
		},
		Toggles: []ToggleConfig{
			{
				Keycode:  "T_GAME1",
				Layer:    "game1",
				Children: []string{"game1_lower"},
				OnSong:   []string{"Q:B5", "Q:D6", "Q:G6", "Q:B6"},
				OffSong:  []string{"Q:B6", "Q:G6", "Q:D6", "Q:B5"},
			},
		},
	}
}

// cfleeSimple is cflee without the game lower binding: holding the game
// lower key and Raise gives Raise over game lower rather than Adjust.
func cfleeSimple() *Config {
	cfg := cflee()
	cfg.Name = "cflee-simple"
	cfg.TriLayers = cfg.TriLayers[:1]
	return cfg
}
