package report

import (
	"github.com/cflee/planck/keycode"
)

// Builder accumulates pressed keycodes and produces the current report.
//
// Keycodes outside the HID range are ignored, except GraveEscape which is
// sent as Grave while Shift or GUI is held and as Escape otherwise. The same
// keycode may be held from several positions; it is released when the last
// one lets go. GraveEscape releases undo its presses oldest first.
type Builder struct {
	held    map[keycode.Keycode]int
	order   []keycode.Keycode
	gesc    []keycode.Keycode
	swapAG  bool
	changed bool
}

func NewBuilder() *Builder {
	return &Builder{held: make(map[keycode.Keycode]int)}
}

// SetSwapAltGUI exchanges Alt and GUI in every following report.
func (b *Builder) SetSwapAltGUI(swap bool) {
	if b.swapAG != swap {
		b.changed = true
	}
	b.swapAG = swap
}

// SwapAltGUI reports whether Alt and GUI are exchanged.
func (b *Builder) SwapAltGUI() bool { return b.swapAG }

// Press registers a press of kc. It returns false when kc has no effect on
// the report.
func (b *Builder) Press(kc keycode.Keycode) bool {
	if kc == keycode.GraveEscape {
		sent := keycode.KeyEscape
		if b.State().Modifiers&(ModLeftShift|ModRightShift|ModLeftGUI|ModRightGUI) != 0 {
			sent = keycode.KeyGrave
		}
		b.gesc = append(b.gesc, sent)
		kc = sent
	}
	if !kc.IsHID() {
		return false
	}
	if b.held[kc] == 0 {
		b.order = append(b.order, kc)
	}
	b.held[kc]++
	b.changed = true
	return true
}

// Release registers a release of kc.
func (b *Builder) Release(kc keycode.Keycode) bool {
	if kc == keycode.GraveEscape {
		if len(b.gesc) == 0 {
			return false
		}
		kc = b.gesc[0]
		b.gesc = b.gesc[1:]
	}
	n, ok := b.held[kc]
	if !ok {
		return false
	}
	if n > 1 {
		b.held[kc] = n - 1
		return true
	}
	delete(b.held, kc)
	for i, k := range b.order {
		if k == kc {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.changed = true
	return true
}

// Apply feeds one transition's keycode into the builder.
func (b *Builder) Apply(kc keycode.Keycode, pressed bool) bool {
	if pressed {
		return b.Press(kc)
	}
	return b.Release(kc)
}

// Changed reports whether the report changed since the last call.
func (b *Builder) Changed() bool {
	c := b.changed
	b.changed = false
	return c
}

// Held returns the held keycodes in press order.
func (b *Builder) Held() []keycode.Keycode {
	return append([]keycode.Keycode(nil), b.order...)
}

// State computes the current input state.
func (b *Builder) State() InputState {
	var st InputState
	for _, kc := range b.order {
		st.Modifiers |= kc.Mods()
		if kc.IsModifierKey() {
			st.Modifiers |= kc.ModifierBit()
			continue
		}
		st.set(kc.Usage())
	}
	if b.swapAG {
		st.Modifiers = swapAltGUI(st.Modifiers)
	}
	return st
}

// BuildReport returns the encoded current report.
func (b *Builder) BuildReport() []byte {
	return b.State().BuildReport()
}

// Reset releases everything.
func (b *Builder) Reset() {
	if len(b.order) > 0 {
		b.changed = true
	}
	b.held = make(map[keycode.Keycode]int)
	b.gesc = nil
	b.order = nil
}

func swapAltGUI(m uint8) uint8 {
	const alt = ModLeftAlt | ModRightAlt
	const gui = ModLeftGUI | ModRightGUI
	out := m &^ (alt | gui)
	out |= (m & alt) << 1
	out |= (m & gui) >> 1
	return out
}
