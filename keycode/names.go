package keycode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknown is returned when a keycode name cannot be parsed.
var ErrUnknown = errors.New("unknown keycode")

type entry struct {
	name string
	code Keycode
}

// canonical lists every named keycode. The first name listed for a code is
// the one Name returns.
var canonical = []entry{
	{"KC_NO", No}, {"KC_TRNS", Transparent},

	{"KC_A", KeyA}, {"KC_B", KeyB}, {"KC_C", KeyC}, {"KC_D", KeyD}, {"KC_E", KeyE},
	{"KC_F", KeyF}, {"KC_G", KeyG}, {"KC_H", KeyH}, {"KC_I", KeyI}, {"KC_J", KeyJ},
	{"KC_K", KeyK}, {"KC_L", KeyL}, {"KC_M", KeyM}, {"KC_N", KeyN}, {"KC_O", KeyO},
	{"KC_P", KeyP}, {"KC_Q", KeyQ}, {"KC_R", KeyR}, {"KC_S", KeyS}, {"KC_T", KeyT},
	{"KC_U", KeyU}, {"KC_V", KeyV}, {"KC_W", KeyW}, {"KC_X", KeyX}, {"KC_Y", KeyY},
	{"KC_Z", KeyZ},

	{"KC_1", Key1}, {"KC_2", Key2}, {"KC_3", Key3}, {"KC_4", Key4}, {"KC_5", Key5},
	{"KC_6", Key6}, {"KC_7", Key7}, {"KC_8", Key8}, {"KC_9", Key9}, {"KC_0", Key0},

	{"KC_ENT", KeyEnter}, {"KC_ENTER", KeyEnter},
	{"KC_ESC", KeyEscape}, {"KC_ESCAPE", KeyEscape},
	{"KC_BSPC", KeyBackspace}, {"KC_BSPACE", KeyBackspace},
	{"KC_TAB", KeyTab},
	{"KC_SPC", KeySpace}, {"KC_SPACE", KeySpace},
	{"KC_MINS", KeyMinus}, {"KC_MINUS", KeyMinus},
	{"KC_EQL", KeyEqual}, {"KC_EQUAL", KeyEqual},
	{"KC_LBRC", KeyLeftBrace}, {"KC_LBRACKET", KeyLeftBrace},
	{"KC_RBRC", KeyRightBrace}, {"KC_RBRACKET", KeyRightBrace},
	{"KC_BSLS", KeyBackslash}, {"KC_BSLASH", KeyBackslash},
	{"KC_SCLN", KeySemicolon}, {"KC_SCOLON", KeySemicolon},
	{"KC_QUOT", KeyApostrophe}, {"KC_QUOTE", KeyApostrophe},
	{"KC_GRV", KeyGrave}, {"KC_GRAVE", KeyGrave},
	{"KC_COMM", KeyComma}, {"KC_COMMA", KeyComma},
	{"KC_DOT", KeyPeriod},
	{"KC_SLSH", KeySlash}, {"KC_SLASH", KeySlash},
	{"KC_CAPS", KeyCapsLock},

	{"KC_F1", KeyF1}, {"KC_F2", KeyF2}, {"KC_F3", KeyF3}, {"KC_F4", KeyF4},
	{"KC_F5", KeyF5}, {"KC_F6", KeyF6}, {"KC_F7", KeyF7}, {"KC_F8", KeyF8},
	{"KC_F9", KeyF9}, {"KC_F10", KeyF10}, {"KC_F11", KeyF11}, {"KC_F12", KeyF12},

	{"KC_PSCR", KeyPrintScreen}, {"KC_SLCK", KeyScrollLock}, {"KC_PAUS", KeyPause},
	{"KC_INS", KeyInsert}, {"KC_HOME", KeyHome}, {"KC_PGUP", KeyPageUp},
	{"KC_DEL", KeyDelete}, {"KC_DELETE", KeyDelete}, {"KC_END", KeyEnd},
	{"KC_PGDN", KeyPageDown},

	{"KC_RGHT", KeyRight}, {"KC_RIGHT", KeyRight}, {"KC_LEFT", KeyLeft},
	{"KC_DOWN", KeyDown}, {"KC_UP", KeyUp},

	{"KC_APP", KeyApplication},
	{"KC_MUTE", KeyMute}, {"KC_VOLU", KeyVolumeUp}, {"KC_VOLD", KeyVolumeDown},

	{"KC_LCTL", KeyLeftCtrl}, {"KC_LCTRL", KeyLeftCtrl},
	{"KC_LSFT", KeyLeftShift}, {"KC_LSHIFT", KeyLeftShift},
	{"KC_LALT", KeyLeftAlt},
	{"KC_LGUI", KeyLeftGUI},
	{"KC_RCTL", KeyRightCtrl}, {"KC_RCTRL", KeyRightCtrl},
	{"KC_RSFT", KeyRightShift}, {"KC_RSHIFT", KeyRightShift},
	{"KC_RALT", KeyRightAlt},
	{"KC_RGUI", KeyRightGUI},

	{"KC_MPLY", KeyMediaPlayPause}, {"KC_MSTP", KeyMediaStop},
	{"KC_MNXT", KeyMediaNext}, {"KC_MPRV", KeyMediaPrevious},

	{"KC_TILD", KeyTilde}, {"KC_EXLM", KeyExclaim}, {"KC_AT", KeyAt},
	{"KC_HASH", KeyHash}, {"KC_DLR", KeyDollar}, {"KC_PERC", KeyPercent},
	{"KC_CIRC", KeyCircumflex}, {"KC_AMPR", KeyAmpersand}, {"KC_ASTR", KeyAsterisk},
	{"KC_LPRN", KeyLeftParen}, {"KC_RPRN", KeyRightParen}, {"KC_UNDS", KeyUnderscore},
	{"KC_PLUS", KeyPlus}, {"KC_LCBR", KeyLeftCurly}, {"KC_RCBR", KeyRightCurly},
	{"KC_PIPE", KeyPipe}, {"KC_COLN", KeyColon}, {"KC_DQUO", KeyDoubleQuot},

	{"RESET", Reset}, {"DEBUG", Debug},
	{"KC_GESC", GraveEscape},
	{"AU_ON", AudioOn}, {"AU_OFF", AudioOff},
	{"AG_NORM", AltGUINorm}, {"AG_SWAP", AltGUISwap},
}

// Short aliases accepted by Parse only.
var aliases = map[string]Keycode{
	"_______":        Transparent,
	"XXXXXXX":        No,
	"KC_TRANSPARENT": Transparent,
}

var wrappers = map[string]func(Keycode) Keycode{
	"LCTL": LCTL, "LSFT": LSFT, "LALT": LALT, "LGUI": LGUI,
	"RCTL": RCTL, "RSFT": RSFT, "RALT": RALT, "RGUI": RGUI,
}

var byName, byCode = buildTables()

func buildTables() (map[string]Keycode, map[Keycode]string) {
	names := make(map[string]Keycode, len(canonical)+len(aliases))
	codes := make(map[Keycode]string, len(canonical))
	for _, e := range canonical {
		names[e.name] = e.code
		if _, ok := codes[e.code]; !ok {
			codes[e.code] = e.name
		}
	}
	for n, c := range aliases {
		names[n] = c
	}
	return names, codes
}

// Name returns the canonical name of k. Modified keycodes without a name of
// their own are rendered as nested wrappers, unknown codes as hex.
func Name(k Keycode) string {
	if n, ok := byCode[k]; ok {
		return n
	}
	if k.IsModified() {
		inner := Name(k &^ modMask)
		right := k&ModRight != 0
		for _, w := range []struct {
			bit         Keycode
			left, right string
		}{
			{ModCtrl, "LCTL", "RCTL"},
			{ModShift, "LSFT", "RSFT"},
			{ModAlt, "LALT", "RALT"},
			{ModGUI, "LGUI", "RGUI"},
		} {
			if k&w.bit == 0 {
				continue
			}
			if right {
				inner = w.right + "(" + inner + ")"
			} else {
				inner = w.left + "(" + inner + ")"
			}
		}
		return inner
	}
	return fmt.Sprintf("0x%04X", uint16(k))
}

// Parse resolves a keycode name. extra is consulted first and holds keymap
// defined control names; it may be nil.
func Parse(s string, extra map[string]Keycode) (Keycode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return No, fmt.Errorf("%w: empty name", ErrUnknown)
	}
	if k, ok := extra[s]; ok {
		return k, nil
	}
	if k, ok := byName[strings.ToUpper(s)]; ok {
		return k, nil
	}
	if open := strings.IndexByte(s, '('); open > 0 && strings.HasSuffix(s, ")") {
		wrap, ok := wrappers[strings.ToUpper(s[:open])]
		if !ok {
			return No, fmt.Errorf("%w: wrapper %q", ErrUnknown, s[:open])
		}
		inner, err := Parse(s[open+1:len(s)-1], extra)
		if err != nil {
			return No, err
		}
		if inner > basicMax {
			return No, fmt.Errorf("%w: %s cannot wrap %s", ErrUnknown, s[:open], Name(inner))
		}
		return wrap(inner), nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 16)
		if err != nil {
			return No, fmt.Errorf("%w: %q", ErrUnknown, s)
		}
		return Keycode(v), nil
	}
	if near := Suggest(s); near != "" {
		return No, fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknown, s, near)
	}
	return No, fmt.Errorf("%w: %q", ErrUnknown, s)
}

// Suggest returns the known keycode name closest to s, or "" when nothing
// is within two edits.
func Suggest(s string) string {
	s = strings.ToUpper(s)
	best, bestDist := "", 3
	for _, e := range canonical {
		if d := levenshtein.ComputeDistance(s, e.name); d < bestDist {
			best, bestDist = e.name, d
		}
	}
	return best
}
