package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cflee/planck/keymap"
)

// Check validates keymaps without running them.
type Check struct {
	Keymaps []string `arg:"" optional:"" help:"Built-in keymap names or keymap files (default all built-ins)"`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	return c.Execute(logger, os.Stdout)
}

// Execute checks every keymap and reports all failures together.
func (c *Check) Execute(logger *slog.Logger, out io.Writer) error {
	refs := c.Keymaps
	if len(refs) == 0 {
		refs = keymap.BuiltinNames()
	}
	var errs []error
	for _, ref := range refs {
		cfg, err := loadKeymap(ref)
		if err == nil {
			var board *keymap.Board
			board, err = keymap.Build(cfg, keymap.Options{Logger: logger})
			if err == nil {
				fmt.Fprintf(out, "ok   %s: %d layers, %d bindings, %d controls\n",
					ref, board.Keymap.Len(), len(board.State.Bindings()), len(board.Controls))
				continue
			}
		}
		fmt.Fprintf(out, "FAIL %s: %v\n", ref, err)
		errs = append(errs, fmt.Errorf("%s: %w", ref, err))
	}
	if len(errs) > 0 {
		logger.Error("keymap check failed", "failed", len(errs), "checked", len(refs))
	}
	return errors.Join(errs...)
}
