package layer

import (
	"errors"
	"fmt"
)

// ErrBinding is returned by ValidateBindings.
var ErrBinding = errors.New("invalid tri-layer binding")

// Binding makes Derived active exactly while both A and B are active. Several
// bindings may name the same Derived layer; it is then active while any of
// its pairs is satisfied.
type Binding struct {
	A, B    Layer
	Derived Layer
}

func (b Binding) String() string {
	return fmt.Sprintf("%s+%s=>%s", b.A, b.B, b.Derived)
}

func (b Binding) satisfied(m Mask) bool {
	return m.Has(b.A) && m.Has(b.B)
}

// ValidateBindings checks that no derived layer is Base, a source of any
// binding, or out of range. Under these rules every derived layer depends
// only on non-derived layers, so evaluation order cannot matter.
func ValidateBindings(bs []Binding) error {
	var derived, sources Mask
	for _, b := range bs {
		for _, l := range []Layer{b.A, b.B, b.Derived} {
			if l >= MaxLayers {
				return fmt.Errorf("%w: %s: layer %d out of range", ErrBinding, b, l)
			}
		}
		if b.Derived == Base {
			return fmt.Errorf("%w: %s: base layer cannot be derived", ErrBinding, b)
		}
		if b.A == b.Derived || b.B == b.Derived {
			return fmt.Errorf("%w: %s: derived layer is its own source", ErrBinding, b)
		}
		derived = derived.With(b.Derived)
		sources = sources.With(b.A).With(b.B)
	}
	if both := derived & sources; both != 0 {
		l, _ := both.Highest()
		return fmt.Errorf("%w: %s is both derived and a source", ErrBinding, l)
	}
	return nil
}

// Recompute brings every derived layer in line with its bindings. Derived
// layers are flipped only when their desired state differs, so calling it
// repeatedly is harmless.
func (s *State) Recompute() {
	want := Mask(0)
	for _, b := range s.bindings {
		if b.satisfied(s.active) {
			want = want.With(b.Derived)
		}
	}
	for _, l := range s.derived.Layers() {
		s.set(l, want.Has(l))
	}
}
