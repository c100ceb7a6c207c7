// Package audio models the tone playback capability used for layer cues.
//
// Playback is fire-and-forget: a Player never blocks its caller and never
// reports failure. Keymap logic only ever sees the Player interface.
package audio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNote is returned for unparsable note names.
var ErrNote = errors.New("invalid note")

// DefaultTempo is the tempo of a song that does not set one, in beats per minute.
const DefaultTempo = 120

// Note is a single tone.
type Note struct {
	// Freq is the pitch in Hz. 0 is a rest.
	Freq float64
	// Beats is the length in quarter notes.
	Beats float64
}

// Song is a sequence of notes played at Tempo beats per minute.
type Song struct {
	Tempo int
	Notes []Note
}

// Duration returns the length of a note at tempo.
func (n Note) Duration(tempo int) time.Duration {
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	return time.Duration(n.Beats * float64(time.Minute) / float64(tempo))
}

// Duration returns the total length of s.
func (s Song) Duration() time.Duration {
	var d time.Duration
	for _, n := range s.Notes {
		d += n.Duration(s.Tempo)
	}
	return d
}

// Player plays songs without blocking.
type Player interface {
	Play(s Song)
}

// Nop discards every song.
type Nop struct{}

func (Nop) Play(Song) {}

// Gate forwards songs to a Player while enabled.
type Gate struct {
	p       Player
	enabled bool
}

// NewGate returns an enabled gate in front of p.
func NewGate(p Player) *Gate {
	return &Gate{p: p, enabled: true}
}

func (g *Gate) Play(s Song) {
	if g.enabled && g.p != nil {
		g.p.Play(s)
	}
}

func (g *Gate) SetEnabled(on bool) { g.enabled = on }
func (g *Gate) Enabled() bool      { return g.enabled }

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var lengths = map[string]float64{"W": 4, "H": 2, "Q": 1, "E": 0.5, "S": 0.25}

// ParseNote parses a note such as "B5", "Q:B5", "E:F#4" or "H:REST".
// The optional prefix selects whole, half, quarter, eighth or sixteenth;
// quarter is the default.
func ParseNote(s string) (Note, error) {
	beats := 1.0
	if i := strings.IndexByte(s, ':'); i >= 0 {
		b, ok := lengths[strings.ToUpper(s[:i])]
		if !ok {
			return Note{}, fmt.Errorf("%w: length %q", ErrNote, s[:i])
		}
		beats, s = b, s[i+1:]
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "REST" {
		return Note{Beats: beats}, nil
	}
	if len(s) < 2 {
		return Note{}, fmt.Errorf("%w: %q", ErrNote, s)
	}
	semi, ok := semitones[s[0]]
	if !ok {
		return Note{}, fmt.Errorf("%w: pitch %q", ErrNote, s[:1])
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		semi++
		rest = rest[1:]
	case 'B':
		semi--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave < 0 || octave > 9 {
		return Note{}, fmt.Errorf("%w: octave in %q", ErrNote, s)
	}
	midi := (octave+1)*12 + semi
	return Note{Freq: 440 * math.Pow(2, float64(midi-69)/12), Beats: beats}, nil
}

// ParseSong parses a list of notes; see ParseNote.
func ParseSong(tempo int, notes []string) (Song, error) {
	s := Song{Tempo: tempo, Notes: make([]Note, 0, len(notes))}
	for _, n := range notes {
		note, err := ParseNote(n)
		if err != nil {
			return Song{}, err
		}
		s.Notes = append(s.Notes, note)
	}
	return s, nil
}

// MustParseSong is ParseSong for package level songs.
func MustParseSong(tempo int, notes ...string) Song {
	s, err := ParseSong(tempo, notes)
	if err != nil {
		panic(err)
	}
	return s
}

// Layer latch cues: a rising and a falling G major arpeggio.
var (
	LatchOn  = MustParseSong(DefaultTempo, "Q:B5", "Q:D6", "Q:G6", "Q:B6")
	LatchOff = MustParseSong(DefaultTempo, "Q:B6", "Q:G6", "Q:D6", "Q:B5")
)
