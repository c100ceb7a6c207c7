// Package layer holds the active layer set of a keymap, the tri-layer
// bindings that derive layers from pairs of other layers, and resolution of a
// key position to a keycode through the stack of active layers.
package layer

import (
	"math/bits"
	"strconv"
)

// Layer identifies a keymap layer. Higher values take precedence.
type Layer uint8

// Base is the bottom layer. It is always active.
const Base Layer = 0

// MaxLayers is the number of layers a Mask can hold.
const MaxLayers = 32

func (l Layer) String() string {
	return "layer" + strconv.Itoa(int(l))
}

// Mask is a set of layers.
type Mask uint32

func MaskOf(ls ...Layer) Mask {
	var m Mask
	for _, l := range ls {
		m = m.With(l)
	}
	return m
}

func (m Mask) Has(l Layer) bool {
	return l < MaxLayers && m&(1<<l) != 0
}

func (m Mask) With(l Layer) Mask {
	if l >= MaxLayers {
		return m
	}
	return m | 1<<l
}

func (m Mask) Without(l Layer) Mask {
	if l >= MaxLayers {
		return m
	}
	return m &^ (1 << l)
}

// Highest returns the highest layer in m. ok is false for the empty mask.
func (m Mask) Highest() (l Layer, ok bool) {
	if m == 0 {
		return 0, false
	}
	return Layer(31 - bits.LeadingZeros32(uint32(m))), true
}

// Layers returns the members of m from highest to lowest priority.
func (m Mask) Layers() []Layer {
	out := make([]Layer, 0, bits.OnesCount32(uint32(m)))
	for rest := m; rest != 0; {
		l, _ := rest.Highest()
		out = append(out, l)
		rest = rest.Without(l)
	}
	return out
}
