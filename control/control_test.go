package control_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/cflee/planck/audio"
	"github.com/cflee/planck/control"
	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/layer"
	"github.com/cflee/planck/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	base layer.Layer = iota
	lower
	raise
	game
	gameLower
	adjust
)

const (
	kcLower = keycode.SafeRange + iota
	kcRaise
	kcGameToggle
	kcGameLower
)

const ___ = keycode.Transparent

// 2x4 test board:
//
//	row 0: A      B      C      D
//	row 1: LOWER  RAISE  X      SPACE
//
// The game layer turns (1,3) into the game lower key; the game toggle lives
// on the adjust layer at (0,2).
var tables = []layer.Table{
	base: {
		{keycode.KeyA, keycode.KeyB, keycode.KeyC, keycode.KeyD},
		{kcLower, kcRaise, keycode.KeyX, keycode.KeySpace},
	},
	lower: {
		{keycode.Key1, ___, ___, ___},
		{___, ___, ___, ___},
	},
	raise: {
		{___, keycode.Key2, ___, ___},
		{___, ___, ___, ___},
	},
	game: {
		{keycode.KeyQ, ___, ___, ___},
		{___, ___, ___, kcGameLower},
	},
	gameLower: {
		{keycode.Key5, ___, ___, ___},
		{___, ___, ___, ___},
	},
	adjust: {
		{___, ___, kcGameToggle, ___},
		{___, ___, ___, ___},
	},
}

var (
	posA         = matrix.Position{Row: 0, Col: 0}
	posB         = matrix.Position{Row: 0, Col: 1}
	posToggle    = matrix.Position{Row: 0, Col: 2}
	posLower     = matrix.Position{Row: 1, Col: 0}
	posRaise     = matrix.Position{Row: 1, Col: 1}
	posGameLower = matrix.Position{Row: 1, Col: 3}
)

type recorder struct {
	songs []audio.Song
}

func (r *recorder) Play(s audio.Song) { r.songs = append(r.songs, s) }

type rig struct {
	d      *control.Dispatcher
	s      *layer.State
	audio  *recorder
	toggle *control.Toggle
}

func newRig(t *testing.T, bindings ...layer.Binding) *rig {
	t.Helper()
	km, err := layer.NewKeymap(2, 4, tables, nil)
	require.NoError(t, err)
	if bindings == nil {
		bindings = []layer.Binding{
			{A: lower, B: raise, Derived: adjust},
			{A: gameLower, B: raise, Derived: adjust},
		}
	}
	s := layer.NewState(bindings...)
	r := &recorder{}
	d := control.NewDispatcher(km, s, nil)
	tg := control.NewToggle(s, game, r, nil).WithChildren(gameLower)
	d.Register(kcLower, control.NewMomentary(s, lower, nil))
	d.Register(kcRaise, control.NewMomentary(s, raise, nil))
	d.Register(kcGameToggle, tg)
	d.Register(kcGameLower, control.NewMomentary(s, gameLower, nil).WithParent(game))
	return &rig{d: d, s: s, audio: r, toggle: tg}
}

func (r *rig) press(p matrix.Position) control.Result {
	return r.d.Process(matrix.Transition{Pos: p, Pressed: true})
}

func (r *rig) release(p matrix.Position) control.Result {
	return r.d.Process(matrix.Transition{Pos: p})
}

func TestMomentaryConsumesBothEdges(t *testing.T) {
	r := newRig(t)

	res := r.press(posLower)
	assert.True(t, res.Handled)
	assert.Equal(t, kcLower, res.Keycode)
	assert.True(t, r.s.IsActive(lower))

	res = r.release(posLower)
	assert.True(t, res.Handled)
	assert.False(t, r.s.IsActive(lower))
}

func TestLowerAndRaiseReachAdjust(t *testing.T) {
	r := newRig(t)

	r.press(posLower)
	r.press(posRaise)
	assert.True(t, r.s.IsActive(adjust))
	assert.Equal(t, keycode.Key1, r.press(posA).Keycode)
	r.release(posA)

	r.release(posLower)
	assert.False(t, r.s.IsActive(adjust))
	assert.True(t, r.s.IsActive(raise))
	r.release(posRaise)
	assert.Equal(t, []layer.Layer{base}, r.s.Active())
}

func TestAdjustInvariantUnderRandomHolds(t *testing.T) {
	r := newRig(t)
	rnd := rand.New(rand.NewPCG(7, 11))
	held := map[matrix.Position]bool{}

	for i := 0; i < 2000; i++ {
		p := posLower
		if rnd.IntN(2) == 1 {
			p = posRaise
		}
		// The scanner alternates edges per position.
		if held[p] {
			r.release(p)
		} else {
			r.press(p)
		}
		held[p] = !held[p]

		assert.True(t, r.s.IsActive(base))
		assert.Equal(t, r.s.IsActive(lower) && r.s.IsActive(raise), r.s.IsActive(adjust), "step %d", i)
	}
}

func TestOrdinaryKeysResolveThroughLayers(t *testing.T) {
	r := newRig(t)

	res := r.press(posA)
	assert.False(t, res.Handled)
	assert.Equal(t, keycode.KeyA, res.Keycode)
	r.release(posA)

	r.press(posRaise)
	assert.Equal(t, keycode.Key2, r.press(posB).Keycode)
	assert.Equal(t, keycode.KeyA, r.press(posA).Keycode, "transparent raise entry falls through")
}

func TestReleaseUsesKeycodeFromPress(t *testing.T) {
	r := newRig(t)

	r.press(posLower)
	assert.Equal(t, keycode.Key1, r.press(posA).Keycode)
	r.release(posLower)

	res := r.release(posA)
	assert.False(t, res.Handled)
	assert.Equal(t, keycode.Key1, res.Keycode, "release must match the press")
	assert.Equal(t, 0, r.d.Held())

	// An unmatched release resolves against the current state.
	assert.Equal(t, keycode.KeyB, r.release(posB).Keycode)
}

func TestTogglePressParity(t *testing.T) {
	r := newRig(t)
	toggle := r.toggle
	rnd := rand.New(rand.NewPCG(3, 5))

	presses := 0
	for i := 0; i < 500; i++ {
		if rnd.IntN(3) == 0 {
			toggle.Handle(false)
		} else {
			toggle.Handle(true)
			presses++
		}
		assert.Equal(t, presses%2 == 1, toggle.On(), "after %d presses", presses)
	}
	assert.Len(t, r.audio.songs, presses)
}

func TestToggleReleaseIsNoop(t *testing.T) {
	r := newRig(t)
	r.toggle.Handle(false)
	assert.False(t, r.toggle.On())
	assert.Empty(t, r.audio.songs)
}

func TestGameToggleScenario(t *testing.T) {
	r := newRig(t)

	// Reach adjust and latch the game layer.
	r.press(posLower)
	r.press(posRaise)
	res := r.press(posToggle)
	assert.True(t, res.Handled)
	assert.Equal(t, kcGameToggle, res.Keycode)
	assert.True(t, r.s.IsActive(game))
	require.Len(t, r.audio.songs, 1)
	assert.Equal(t, audio.LatchOn, r.audio.songs[0])

	assert.True(t, r.release(posToggle).Handled)
	r.release(posRaise)
	r.release(posLower)
	assert.True(t, r.s.IsActive(game), "release does not unlatch")

	// Hold the nested sub-layer key.
	assert.True(t, r.press(posGameLower).Handled)
	assert.True(t, r.s.IsActive(gameLower))
	assert.Equal(t, keycode.Key5, r.press(posA).Keycode)
	r.release(posA)
	r.release(posGameLower)
	assert.False(t, r.s.IsActive(gameLower))
	assert.True(t, r.s.IsActive(game))

	// Game lower + raise also reaches adjust; unlatch from there while the
	// sub-layer key is still held.
	r.press(posGameLower)
	r.press(posRaise)
	require.True(t, r.s.IsActive(adjust))
	r.press(posToggle)
	assert.False(t, r.s.IsActive(game))
	assert.False(t, r.s.IsActive(gameLower), "sub-layer is forced off with its parent")
	assert.False(t, r.s.IsActive(adjust))
	require.Len(t, r.audio.songs, 2)
	assert.Equal(t, audio.LatchOff, r.audio.songs[1])

	r.release(posToggle)
	assert.True(t, r.release(posGameLower).Handled, "held control key is released through its handler")
	r.release(posRaise)
	assert.Equal(t, []layer.Layer{base}, r.s.Active())
	assert.Equal(t, 0, r.d.Held())
}

func TestSubLayerWithoutBinding(t *testing.T) {
	r := newRig(t, layer.Binding{A: lower, B: raise, Derived: adjust})
	r.toggle.Handle(true)

	r.press(posGameLower)
	r.press(posRaise)
	assert.True(t, r.s.IsActive(gameLower))
	assert.False(t, r.s.IsActive(adjust), "sub-layer only activates itself")
}

func TestNestedMomentaryNeedsParent(t *testing.T) {
	r := newRig(t)
	m := control.NewMomentary(r.s, gameLower, nil).WithParent(game)

	m.Handle(true)
	assert.False(t, m.Active())
	m.Handle(false)

	r.toggle.Handle(true)
	m.Handle(true)
	assert.True(t, m.Active())
	assert.Equal(t, gameLower, m.Layer())
}

type panicPlayer struct{}

func (panicPlayer) Play(audio.Song) { panic("no speaker") }

func TestToggleSurvivesAudioFailure(t *testing.T) {
	s := layer.NewState()
	tg := control.NewToggle(s, game, panicPlayer{}, nil)
	assert.NotPanics(t, func() { tg.Handle(true) })
	assert.True(t, s.IsActive(game))
	assert.NotPanics(t, func() { tg.Handle(true) })
	assert.False(t, s.IsActive(game))

	silent := control.NewToggle(s, game, nil, nil)
	silent.Handle(true)
	assert.True(t, silent.On())
	assert.Equal(t, game, silent.Layer())
}

func TestToggleCustomSongs(t *testing.T) {
	s := layer.NewState()
	r := &recorder{}
	on := audio.MustParseSong(0, "C4")
	off := audio.MustParseSong(0, "C3")
	tg := control.NewToggle(s, game, r, nil).WithSongs(on, off)
	tg.Handle(true)
	tg.Handle(true)
	assert.Equal(t, []audio.Song{on, off}, r.songs)
}

func TestHandlersLogLayerNames(t *testing.T) {
	names := []string{"base", "lower", "raise", "game", "game_lower", "adjust"}
	namer := control.LayerNamer(func(l layer.Layer) string { return names[l] })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := layer.NewState()
	control.NewToggle(s, game, nil, logger).WithNames(namer).Handle(true)
	m := control.NewMomentary(s, gameLower, logger).WithParent(game).WithNames(namer)
	m.Handle(true)
	m.Handle(false)

	out := buf.String()
	assert.Contains(t, out, "layer=game\n")
	assert.Contains(t, out, "layer=game_lower")
	assert.NotContains(t, out, "layer=layer")

	buf.Reset()
	control.NewMomentary(s, lower, logger).Handle(true)
	assert.Contains(t, buf.String(), "layer="+lower.String())
}

func TestDispatcherReset(t *testing.T) {
	r := newRig(t, layer.Binding{A: lower, B: raise, Derived: adjust})
	r.press(posLower)
	r.press(posRaise)
	r.press(posA)
	require.Equal(t, 3, r.d.Held())
	require.True(t, r.s.IsActive(adjust))

	r.d.Reset()
	assert.Zero(t, r.d.Held())
	assert.Equal(t, []layer.Layer{base}, r.s.Active())

	// A release after the reset resolves against the fresh state.
	res := r.release(posA)
	assert.Equal(t, keycode.KeyA, res.Keycode)
}

func TestUnboundAndOutOfMatrixFallThrough(t *testing.T) {
	r := newRig(t)
	res := r.press(matrix.Position{Row: 5, Col: 5})
	assert.False(t, res.Handled)
	assert.Equal(t, keycode.No, res.Keycode)

	_, ok := r.d.Handler(keycode.KeyA)
	assert.False(t, ok)
	_, ok = r.d.Handler(kcLower)
	assert.True(t, ok)
}

func TestRun(t *testing.T) {
	r := newRig(t)
	src := matrix.NewSliceSource(
		matrix.Press(1, 0),
		matrix.Press(0, 0),
		matrix.Release(0, 0),
		matrix.Release(1, 0),
	)

	var results []control.Result
	err := r.d.Run(context.Background(), src, func(res control.Result) error {
		results = append(results, res)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.True(t, results[0].Handled)
	assert.Equal(t, keycode.Key1, results[1].Keycode)
	assert.Equal(t, keycode.Key1, results[2].Keycode)
	assert.True(t, results[3].Handled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.d.Run(ctx, matrix.NewSliceSource(matrix.Press(0, 0)), func(control.Result) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

type swapper struct{ swapped bool }

func (s *swapper) SetSwapAltGUI(swap bool) { s.swapped = swap }

func TestSwitches(t *testing.T) {
	g := audio.NewGate(audio.Nop{})
	control.AudioSwitch(g, false, nil).Handle(true)
	assert.False(t, g.Enabled())
	control.AudioSwitch(g, true, nil).Handle(false)
	assert.False(t, g.Enabled(), "release is ignored")
	control.AudioSwitch(g, true, nil).Handle(true)
	assert.True(t, g.Enabled())

	sw := &swapper{}
	control.AltGUISwitch(sw, true, nil).Handle(true)
	assert.True(t, sw.swapped)
	control.AltGUISwitch(sw, false, nil).Handle(true)
	assert.False(t, sw.swapped)

	called := 0
	control.Command("reset", func() { called++ }, nil).Handle(true)
	control.Command("reset", func() { called++ }, nil).Handle(false)
	assert.Equal(t, 1, called)
	assert.NotPanics(t, func() { control.Command("debug", nil, nil).Handle(true) })
}
