package audio

import (
	"context"
	"log/slog"
	"sync"
)

// Sink renders a song, blocking until it has finished or ctx is done.
type Sink interface {
	Render(ctx context.Context, s Song) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s Song) error

func (f SinkFunc) Render(ctx context.Context, s Song) error { return f(ctx, s) }

// Async is a Player that hands songs to a single worker goroutine. Play never
// blocks: when the queue is full the song is dropped. Sink errors are logged
// and otherwise ignored.
type Async struct {
	sink   Sink
	logger *slog.Logger
	queue  chan Song

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewAsync starts a worker rendering to sink. queue is the number of songs
// that may wait while one is playing.
func NewAsync(sink Sink, queue int, logger *slog.Logger) *Async {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if queue < 1 {
		queue = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &Async{
		sink:   sink,
		logger: logger,
		queue:  make(chan Song, queue),
		ctx:    ctx,
		cancel: cancel,
	}
	a.wg.Add(1)
	go a.run()
	return a
}

// Play queues s.
func (a *Async) Play(s Song) {
	if a.ctx.Err() != nil {
		return
	}
	select {
	case a.queue <- s:
	default:
		a.logger.Debug("audio queue full, dropping song", "notes", len(s.Notes))
	}
}

// Close stops the worker, abandoning queued songs and interrupting the one
// playing.
func (a *Async) Close() error {
	a.once.Do(func() {
		a.cancel()
		a.wg.Wait()
	})
	return nil
}

func (a *Async) run() {
	defer a.wg.Done()
	for {
		select {
		case <-a.ctx.Done():
			return
		case s := <-a.queue:
			if err := a.render(s); err != nil {
				a.logger.Debug("audio playback failed", "error", err)
			}
		}
	}
}

func (a *Async) render(s Song) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Debug("audio sink panicked", "panic", r)
			err = nil
		}
	}()
	return a.sink.Render(a.ctx, s)
}
