package control

import (
	"log/slog"

	"github.com/cflee/planck/layer"
)

// Momentary keeps a layer active while its key is held.
type Momentary struct {
	state  *layer.State
	layer  layer.Layer
	parent *layer.Layer
	names  LayerNamer
	logger *slog.Logger
}

// NewMomentary returns a hold-to-activate handler for l.
func NewMomentary(s *layer.State, l layer.Layer, logger *slog.Logger) *Momentary {
	return &Momentary{state: s, layer: l, logger: orDiscard(logger)}
}

// WithParent restricts activation to times when parent is active. The
// release edge always deactivates.
func (m *Momentary) WithParent(parent layer.Layer) *Momentary {
	m.parent = &parent
	return m
}

// WithNames makes log output use names for layers.
func (m *Momentary) WithNames(names LayerNamer) *Momentary {
	m.names = names
	return m
}

// Layer returns the controlled layer.
func (m *Momentary) Layer() layer.Layer { return m.layer }

// Active reports whether the controlled layer is active.
func (m *Momentary) Active() bool { return m.state.IsActive(m.layer) }

func (m *Momentary) Handle(pressed bool) {
	if !pressed {
		m.state.Deactivate(m.layer)
		m.logger.Debug("momentary layer released", "layer", m.names.name(m.layer))
		return
	}
	if m.parent != nil && !m.state.IsActive(*m.parent) {
		m.logger.Debug("momentary layer ignored, parent inactive", "layer", m.names.name(m.layer), "parent", m.names.name(*m.parent))
		return
	}
	m.state.Activate(m.layer)
	m.logger.Debug("momentary layer held", "layer", m.names.name(m.layer))
}
