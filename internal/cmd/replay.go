package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cflee/planck/audio"
	"github.com/cflee/planck/control"
	"github.com/cflee/planck/internal/log"
	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/keymap"
	"github.com/cflee/planck/matrix"
	"github.com/cflee/planck/report"

	"golang.org/x/term"
)

// Replay feeds a transition script through a keymap and prints the host
// reports it produces.
type Replay struct {
	Script   string `arg:"" optional:"" help:"Transition script; reads stdin when empty or '-'"`
	Keymap   string `help:"Built-in keymap name or keymap file" default:"cflee" env:"PLANCK_KEYMAP"`
	Audio    bool   `help:"Log audio cues" default:"true" negatable:"" env:"PLANCK_AUDIO"`
	Realtime bool   `help:"Let audio cues take their full duration" default:"false" env:"PLANCK_AUDIO_REALTIME"`
	Queue    int    `help:"Audio cue queue length" default:"8" env:"PLANCK_AUDIO_QUEUE"`
	Hex      bool   `help:"Print raw report bytes instead of key names" default:"false"`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger, trace log.TraceLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := io.Reader(os.Stdin)
	if r.Script != "" && r.Script != "-" {
		f, err := os.Open(r.Script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "reading transitions from the terminal: 'press R C', 'release R C' or 'tap R C', Ctrl-D to finish")
	}
	return r.Execute(ctx, logger, trace, in, os.Stdout)
}

// Execute replays the script read from in and writes one line per changed
// report to out.
func (r *Replay) Execute(ctx context.Context, logger *slog.Logger, trace log.TraceLogger, in io.Reader, out io.Writer) error {
	cfg, err := loadKeymap(r.Keymap)
	if err != nil {
		return err
	}

	builder := report.NewBuilder()
	var player audio.Player
	if r.Audio {
		async := audio.NewAsync(audio.LogSink{Logger: logger, Realtime: r.Realtime}, r.Queue, logger)
		defer async.Close()
		player = async
	}

	board, err := keymap.Build(cfg, keymap.Options{
		Logger:  logger,
		Player:  player,
		Swapper: builder,
	})
	if err != nil {
		return err
	}
	if trace == nil {
		trace = log.NewTrace(nil, nil)
	}
	trace = trace.Named(board.KeycodeName)

	logger.Info("replaying transitions", "keymap", board.Name, "layers", board.Keymap.Len())

	var processed, reports int
	src := matrix.NewScriptSource(in)
	err = board.Dispatcher.Run(ctx, src, func(res control.Result) error {
		processed++
		if !res.Handled {
			builder.Apply(res.Keycode, res.Transition.Pressed)
		}
		var rep []byte
		if builder.Changed() {
			reports++
			rep = builder.BuildReport()
			line := describe(builder.State(), board)
			if r.Hex {
				line = fmt.Sprintf("% x", rep)
			}
			if _, err := fmt.Fprintf(out, "%-14s %s\n", res.Transition, line); err != nil {
				return err
			}
		}
		trace.Log(res, board.State.Mask(), rep)
		return nil
	})
	if err != nil {
		return err
	}

	if n := board.Dispatcher.Held(); n > 0 {
		logger.Warn("script ended with keys still held, releasing them", "held", n)
		board.Dispatcher.Reset()
		builder.Reset()
		if builder.Changed() {
			reports++
			line := describe(builder.State(), board)
			if r.Hex {
				line = fmt.Sprintf("% x", builder.BuildReport())
			}
			if _, err := fmt.Fprintf(out, "%-14s %s\n", "end", line); err != nil {
				return err
			}
		}
	}
	logger.Info("replay finished", "transitions", processed, "reports", reports)
	return nil
}

// describe renders a report as modifier and key names.
func describe(st report.InputState, board *keymap.Board) string {
	var parts []string
	for i, name := range []string{"LCTL", "LSFT", "LALT", "LGUI", "RCTL", "RSFT", "RALT", "RGUI"} {
		if st.Modifiers&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	for _, k := range st.Keys() {
		parts = append(parts, board.KeycodeName(keycode.Keycode(k)))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " ")
}
