package audio_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cflee/planck/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote(t *testing.T) {

	type testCase struct {
		name  string
		input string
		freq  float64
		beats float64
		err   bool
	}

	testCases := []testCase{
		{name: "a4", input: "A4", freq: 440, beats: 1},
		{name: "quarter b5", input: "Q:B5", freq: 987.77, beats: 1},
		{name: "d6", input: "D6", freq: 1174.66, beats: 1},
		{name: "g6", input: "g6", freq: 1567.98, beats: 1},
		{name: "eighth sharp", input: "E:F#4", freq: 369.99, beats: 0.5},
		{name: "flat", input: "Bb3", freq: 233.08, beats: 1},
		{name: "half rest", input: "H:REST", freq: 0, beats: 2},
		{name: "bad pitch", input: "X4", err: true},
		{name: "bad octave", input: "C", err: true},
		{name: "bad length", input: "Z:C4", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := audio.ParseNote(tc.input)
			if tc.err {
				assert.ErrorIs(t, err, audio.ErrNote)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.freq, n.Freq, 0.01)
			assert.Equal(t, tc.beats, n.Beats)
		})
	}
}

func TestSongDuration(t *testing.T) {
	assert.Equal(t, 2*time.Second, audio.LatchOn.Duration())
	assert.Len(t, audio.LatchOff.Notes, 4)
	assert.Equal(t, audio.LatchOn.Notes[0].Freq, audio.LatchOff.Notes[3].Freq)

	s := audio.Song{Notes: []audio.Note{{Freq: 440, Beats: 2}}}
	assert.Equal(t, time.Second, s.Duration(), "zero tempo falls back to the default")
}

type recorder struct {
	mu    sync.Mutex
	songs []audio.Song
}

func (r *recorder) Play(s audio.Song) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.songs = append(r.songs, s)
}

func TestGate(t *testing.T) {
	r := &recorder{}
	g := audio.NewGate(r)
	g.Play(audio.LatchOn)
	g.SetEnabled(false)
	assert.False(t, g.Enabled())
	g.Play(audio.LatchOff)
	g.SetEnabled(true)
	g.Play(audio.LatchOff)
	assert.Equal(t, []audio.Song{audio.LatchOn, audio.LatchOff}, r.songs)

	audio.NewGate(nil).Play(audio.LatchOn)
	audio.Nop{}.Play(audio.LatchOn)
}

func TestAsyncPlaysInOrder(t *testing.T) {
	done := make(chan audio.Song, 2)
	a := audio.NewAsync(audio.SinkFunc(func(ctx context.Context, s audio.Song) error {
		done <- s
		return nil
	}), 4, nil)
	defer a.Close()

	a.Play(audio.LatchOn)
	a.Play(audio.LatchOff)

	for _, want := range []audio.Song{audio.LatchOn, audio.LatchOff} {
		select {
		case got := <-done:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatal("song was not rendered")
		}
	}
}

func TestAsyncNeverBlocks(t *testing.T) {
	release := make(chan struct{})
	a := audio.NewAsync(audio.SinkFunc(func(ctx context.Context, s audio.Song) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return errors.New("speaker unplugged")
	}), 1, nil)

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			a.Play(audio.LatchOn)
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Play blocked on a busy sink")
	}
	close(release)
	assert.NoError(t, a.Close())
	assert.NoError(t, a.Close())
	a.Play(audio.LatchOff)
}

func TestAsyncSurvivesPanickingSink(t *testing.T) {
	calls := make(chan struct{}, 2)
	a := audio.NewAsync(audio.SinkFunc(func(ctx context.Context, s audio.Song) error {
		calls <- struct{}{}
		panic("driver crashed")
	}), 2, nil)
	defer a.Close()

	a.Play(audio.LatchOn)
	a.Play(audio.LatchOn)
	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatal("worker died after a sink panic")
		}
	}
}

func TestLogSinkHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := audio.LogSink{Logger: discardLogger(), Realtime: true}
	err := s.Render(ctx, audio.LatchOn)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, audio.LogSink{Logger: discardLogger()}.Render(context.Background(), audio.LatchOn))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
