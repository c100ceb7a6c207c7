// Package control implements the handlers behind reserved control keycodes
// and the dispatcher that routes key transitions to them.
//
// Control keycodes are always consumed: they change layer or engine state
// and never reach the host report.
package control

import (
	"log/slog"

	"github.com/cflee/planck/layer"
)

// Handler reacts to both edges of a control key.
type Handler interface {
	Handle(pressed bool)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(pressed bool)

func (f HandlerFunc) Handle(pressed bool) { f(pressed) }

// OnPress returns a handler that calls f on the press edge only.
func OnPress(f func()) Handler {
	return HandlerFunc(func(pressed bool) {
		if pressed {
			f()
		}
	})
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// LayerNamer names layers in log output. layer.Keymap.Name satisfies it.
type LayerNamer func(layer.Layer) string

func (n LayerNamer) name(l layer.Layer) string {
	if n == nil {
		return l.String()
	}
	return n(l)
}
