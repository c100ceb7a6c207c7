// Package keycode defines the 16-bit logical keycodes stored in layer tables.
//
// The low byte of a basic keycode is a USB HID usage from the Keyboard/Keypad
// page. Bits 8-12 carry modifiers that are sent together with the usage
// (LGUI(LSFT(Key3)) is Cmd-Shift-3). Codes from QuantumRange upwards never
// reach the host as HID usages: they are interpreted by the keymap engine.
package keycode

import "fmt"

// Keycode is a logical keycode as stored in a layer table.
type Keycode uint16

const (
	// No is an explicitly empty key.
	No Keycode = 0x0000
	// Transparent defers to the next lower active layer.
	Transparent Keycode = 0x0001
)

// Modifier bits of a wrapped keycode.
const (
	ModCtrl  Keycode = 0x0100
	ModShift Keycode = 0x0200
	ModAlt   Keycode = 0x0400
	ModGUI   Keycode = 0x0800
	// ModRight selects the right-hand variant of every modifier in the code.
	ModRight Keycode = 0x1000

	modMask   Keycode = 0x1F00
	basicMask Keycode = 0x00FF
	basicMax  Keycode = 0x1FFF
)

// Ranges of engine-interpreted keycodes.
const (
	// QuantumRange starts the block of fixed engine keycodes.
	QuantumRange Keycode = 0x7C00
	// SafeRange is the first keycode available for keymap defined controls.
	SafeRange Keycode = 0x7E00
	// SafeRangeMax is the last keycode available for keymap defined controls.
	SafeRangeMax Keycode = 0x7EFF
)

// Quantum keycodes.
const (
	Reset       Keycode = QuantumRange + 0x00 // jump to bootloader
	Debug       Keycode = QuantumRange + 0x02 // toggle debug output
	GraveEscape Keycode = QuantumRange + 0x16 // Escape, or Grave with Shift/GUI held
	AudioOn     Keycode = QuantumRange + 0x80
	AudioOff    Keycode = QuantumRange + 0x81
	AltGUINorm  Keycode = QuantumRange + 0x90 // restore Alt and GUI
	AltGUISwap  Keycode = QuantumRange + 0x91 // swap Alt and GUI
)

// Custom returns the i-th keymap defined control keycode.
func Custom(i int) (Keycode, error) {
	if i < 0 || SafeRange+Keycode(i) > SafeRangeMax {
		return No, fmt.Errorf("custom keycode index %d out of range", i)
	}
	return SafeRange + Keycode(i), nil
}

// IsBasic reports whether k is a plain HID usage without modifier bits.
func (k Keycode) IsBasic() bool {
	return k > Transparent && k <= basicMask
}

// IsHID reports whether k is sent to the host: a usage, possibly with modifiers.
func (k Keycode) IsHID() bool {
	return k > Transparent && k <= basicMax && k&basicMask != 0
}

// IsModified reports whether k carries modifier bits.
func (k Keycode) IsModified() bool {
	return k <= basicMax && k&modMask != 0
}

// IsQuantum reports whether k belongs to the fixed engine block.
func (k Keycode) IsQuantum() bool {
	return k >= QuantumRange && k < SafeRange
}

// IsCustom reports whether k is a keymap defined control keycode.
func (k Keycode) IsCustom() bool {
	return k >= SafeRange && k <= SafeRangeMax
}

// Usage returns the HID usage of a basic or modified keycode, 0 otherwise.
func (k Keycode) Usage() uint8 {
	if !k.IsHID() {
		return 0
	}
	return uint8(k & basicMask)
}

// Mods returns the HID modifier byte implied by the wrapped modifier bits.
func (k Keycode) Mods() uint8 {
	if !k.IsModified() {
		return 0
	}
	m := uint8((k & (ModCtrl | ModShift | ModAlt | ModGUI)) >> 8)
	if k&ModRight != 0 {
		return m << 4
	}
	return m
}

// IsModifierKey reports whether k is one of the eight modifier usages.
func (k Keycode) IsModifierKey() bool {
	return k >= KeyLeftCtrl && k <= KeyRightGUI
}

// ModifierBit returns the report bit of a modifier usage.
func (k Keycode) ModifierBit() uint8 {
	if !k.IsModifierKey() {
		return 0
	}
	return 1 << (k - KeyLeftCtrl)
}

func (k Keycode) String() string {
	return Name(k)
}

func LCTL(k Keycode) Keycode { return k | ModCtrl }
func LSFT(k Keycode) Keycode { return k | ModShift }
func LALT(k Keycode) Keycode { return k | ModAlt }
func LGUI(k Keycode) Keycode { return k | ModGUI }
func RCTL(k Keycode) Keycode { return k | ModCtrl | ModRight }
func RSFT(k Keycode) Keycode { return k | ModShift | ModRight }
func RALT(k Keycode) Keycode { return k | ModAlt | ModRight }
func RGUI(k Keycode) Keycode { return k | ModGUI | ModRight }
