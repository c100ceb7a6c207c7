package control

import (
	"log/slog"

	"github.com/cflee/planck/audio"
)

// AudioSwitch enables or disables audio cues on press.
func AudioSwitch(g *audio.Gate, on bool, logger *slog.Logger) Handler {
	logger = orDiscard(logger)
	return OnPress(func() {
		g.SetEnabled(on)
		logger.Info("audio cues", "enabled", on)
	})
}

// AltGUISwapper is implemented by report stages that can exchange the Alt
// and GUI modifiers.
type AltGUISwapper interface {
	SetSwapAltGUI(swap bool)
}

// AltGUISwitch sets the Alt/GUI swap on press.
func AltGUISwitch(s AltGUISwapper, swap bool, logger *slog.Logger) Handler {
	logger = orDiscard(logger)
	return OnPress(func() {
		s.SetSwapAltGUI(swap)
		logger.Info("alt/gui swap", "swapped", swap)
	})
}

// Command runs f on press. With a nil f the request is only logged, which is
// what happens to bootloader and debug requests when no firmware host is
// attached.
func Command(name string, f func(), logger *slog.Logger) Handler {
	logger = orDiscard(logger)
	return OnPress(func() {
		if f == nil {
			logger.Warn("command not available", "command", name)
			return
		}
		logger.Info("command", "command", name)
		f()
	})
}
