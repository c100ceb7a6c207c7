package layer

import (
	"fmt"

	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/matrix"
)

// State is the set of active layers. The zero value is not usable; create
// one with NewState.
//
// State is not safe for concurrent use: transitions are processed one at a
// time by a single owner.
type State struct {
	active   Mask
	bindings []Binding
	derived  Mask
	onChange []func(l Layer, active bool)
}

// NewState returns a state with only Base active. The bindings must have been
// checked with ValidateBindings; NewState panics otherwise.
func NewState(bindings ...Binding) *State {
	if err := ValidateBindings(bindings); err != nil {
		panic(fmt.Sprintf("layer: %v", err))
	}
	s := &State{
		active:   MaskOf(Base),
		bindings: append([]Binding(nil), bindings...),
	}
	for _, b := range bindings {
		s.derived = s.derived.With(b.Derived)
	}
	return s
}

// OnChange registers f to be called after every membership change, derived
// layers included.
func (s *State) OnChange(f func(l Layer, active bool)) {
	s.onChange = append(s.onChange, f)
}

// Activate adds l to the active set and recomputes derived layers. It is a
// no-op when l is already active.
func (s *State) Activate(l Layer) {
	mustNotBeBase(l)
	if !s.set(l, true) {
		return
	}
	s.Recompute()
}

// Deactivate removes l from the active set and recomputes derived layers. It
// is a no-op when l is not active.
func (s *State) Deactivate(l Layer) {
	mustNotBeBase(l)
	if !s.set(l, false) {
		return
	}
	s.Recompute()
}

// IsActive reports whether l is in the active set.
func (s *State) IsActive(l Layer) bool {
	return s.active.Has(l)
}

// Mask returns the active set.
func (s *State) Mask() Mask {
	return s.active
}

// Active returns the active layers from highest to lowest priority.
func (s *State) Active() []Layer {
	return s.active.Layers()
}

// Bindings returns a copy of the registered tri-layer bindings.
func (s *State) Bindings() []Binding {
	return append([]Binding(nil), s.bindings...)
}

// IsDerived reports whether l is the target of a tri-layer binding.
func (s *State) IsDerived(l Layer) bool {
	return s.derived.Has(l)
}

// Reset deactivates everything but Base.
func (s *State) Reset() {
	for _, l := range s.active.Layers() {
		if l != Base {
			s.set(l, false)
		}
	}
	s.Recompute()
}

// Resolve returns the keycode at pos through the currently active layers.
func (s *State) Resolve(km *Keymap, pos matrix.Position) keycode.Keycode {
	return km.Resolve(s.active, pos)
}

func (s *State) set(l Layer, on bool) bool {
	if l >= MaxLayers || s.active.Has(l) == on {
		return false
	}
	if on {
		s.active = s.active.With(l)
	} else {
		s.active = s.active.Without(l)
	}
	for _, f := range s.onChange {
		f(l, on)
	}
	return true
}

func mustNotBeBase(l Layer) {
	if l == Base {
		panic("layer: base layer membership is fixed")
	}
}
