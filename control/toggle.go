package control

import (
	"log/slog"

	"github.com/cflee/planck/audio"
	"github.com/cflee/planck/layer"
)

// Toggle latches a layer on one press and off on the next. Releases are
// ignored, so holding and tapping behave the same.
type Toggle struct {
	state    *layer.State
	layer    layer.Layer
	children []layer.Layer
	player   audio.Player
	onSong   audio.Song
	offSong  audio.Song
	names    LayerNamer
	logger   *slog.Logger
}

// NewToggle returns a latch handler for l that plays audio.LatchOn and
// audio.LatchOff through player. player may be nil.
func NewToggle(s *layer.State, l layer.Layer, player audio.Player, logger *slog.Logger) *Toggle {
	return &Toggle{
		state:   s,
		layer:   l,
		player:  player,
		onSong:  audio.LatchOn,
		offSong: audio.LatchOff,
		logger:  orDiscard(logger),
	}
}

// WithSongs replaces the entered and exited cues.
func (t *Toggle) WithSongs(on, off audio.Song) *Toggle {
	t.onSong, t.offSong = on, off
	return t
}

// WithChildren names layers nested under the toggle layer. They are
// deactivated whenever the toggle layer latches off.
func (t *Toggle) WithChildren(ls ...layer.Layer) *Toggle {
	t.children = append(t.children, ls...)
	return t
}

// WithNames makes log output use names for layers.
func (t *Toggle) WithNames(names LayerNamer) *Toggle {
	t.names = names
	return t
}

// Layer returns the controlled layer.
func (t *Toggle) Layer() layer.Layer { return t.layer }

// On reports whether the layer is latched.
func (t *Toggle) On() bool { return t.state.IsActive(t.layer) }

func (t *Toggle) Handle(pressed bool) {
	if !pressed {
		return
	}
	if t.On() {
		t.state.Deactivate(t.layer)
		for _, c := range t.children {
			t.state.Deactivate(c)
		}
		t.logger.Info("latched layer off", "layer", t.names.name(t.layer))
		t.cue(t.offSong)
		return
	}
	t.state.Activate(t.layer)
	t.logger.Info("latched layer on", "layer", t.names.name(t.layer))
	t.cue(t.onSong)
}

// cue plays s without letting a misbehaving player disturb the caller.
func (t *Toggle) cue(s audio.Song) {
	if t.player == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.logger.Debug("audio cue failed", "panic", r)
		}
	}()
	t.player.Play(s)
}
