package audio

import (
	"context"
	"log/slog"
	"time"
)

// LogSink renders songs as log lines. With Realtime set it waits out each
// note so playback takes as long as it would on a speaker.
type LogSink struct {
	Logger   *slog.Logger
	Realtime bool
}

func (l LogSink) Render(ctx context.Context, s Song) error {
	for i, n := range s.Notes {
		d := n.Duration(s.Tempo)
		l.Logger.Info("tone", "index", i, "freq", n.Freq, "duration", d)
		if !l.Realtime {
			continue
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
