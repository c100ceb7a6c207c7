package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/layer"
	"github.com/cflee/planck/matrix"
)

// Result is the outcome of one transition.
type Result struct {
	Transition matrix.Transition
	// Keycode is the keycode the transition resolved to.
	Keycode keycode.Keycode
	// Handled is true when a control handler consumed the transition. Handled
	// results must not be reported to the host.
	Handled bool
}

// Dispatcher resolves transitions against the layer state and routes control
// keycodes to their handlers.
//
// The keycode a position resolved to when pressed is remembered and reused
// for its release, so a layer change while a key is held cannot strand the
// key or its control handler.
//
// A Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	keymap   *layer.Keymap
	state    *layer.State
	controls map[keycode.Keycode]Handler
	held     map[matrix.Position]keycode.Keycode
	logger   *slog.Logger
}

func NewDispatcher(km *layer.Keymap, s *layer.State, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		keymap:   km,
		state:    s,
		controls: make(map[keycode.Keycode]Handler),
		held:     make(map[matrix.Position]keycode.Keycode),
		logger:   orDiscard(logger),
	}
}

// Register routes kc to h, replacing any previous handler.
func (d *Dispatcher) Register(kc keycode.Keycode, h Handler) {
	d.controls[kc] = h
}

// Handler returns the handler registered for kc.
func (d *Dispatcher) Handler(kc keycode.Keycode) (Handler, bool) {
	h, ok := d.controls[kc]
	return h, ok
}

func (d *Dispatcher) State() *layer.State   { return d.state }
func (d *Dispatcher) Keymap() *layer.Keymap { return d.keymap }

// Held returns the number of positions currently held down.
func (d *Dispatcher) Held() int { return len(d.held) }

// Reset forgets every held position and returns the layer state to Base
// without running any handler.
func (d *Dispatcher) Reset() {
	clear(d.held)
	d.state.Reset()
	d.logger.Debug("dispatcher reset")
}

// Process handles a single transition to completion.
func (d *Dispatcher) Process(t matrix.Transition) Result {
	var kc keycode.Keycode
	if t.Pressed {
		kc = d.state.Resolve(d.keymap, t.Pos)
		d.held[t.Pos] = kc
	} else if prev, ok := d.held[t.Pos]; ok {
		kc = prev
		delete(d.held, t.Pos)
	} else {
		kc = d.state.Resolve(d.keymap, t.Pos)
	}

	res := Result{Transition: t, Keycode: kc}
	if h, ok := d.controls[kc]; ok {
		h.Handle(t.Pressed)
		res.Handled = true
	}
	d.logger.Debug("transition",
		"pos", t.Pos,
		"pressed", t.Pressed,
		"keycode", kc,
		"handled", res.Handled,
		"layers", d.state.Mask())
	return res
}

// Run processes transitions from src until it is exhausted or ctx is done,
// passing every result to sink. Exhaustion is not an error.
func (d *Dispatcher) Run(ctx context.Context, src matrix.Source, sink func(Result) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read transition: %w", err)
		}
		if err := sink(d.Process(t)); err != nil {
			return err
		}
	}
}
