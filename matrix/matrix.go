// Package matrix describes physical key transitions as delivered by a key
// matrix scanner, and provides a scripted scanner for driving the keymap
// engine without hardware.
package matrix

import "fmt"

// Position is a physical key position in the switch matrix.
type Position struct {
	Row int `json:"row" yaml:"row" toml:"row"`
	Col int `json:"col" yaml:"col" toml:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("r%dc%d", p.Row, p.Col)
}

// Transition is a single edge of a physical key.
type Transition struct {
	Pos     Position
	Pressed bool
}

func (t Transition) String() string {
	if t.Pressed {
		return "press " + t.Pos.String()
	}
	return "release " + t.Pos.String()
}

// Press returns a press transition at row, col.
func Press(row, col int) Transition {
	return Transition{Pos: Position{Row: row, Col: col}, Pressed: true}
}

// Release returns a release transition at row, col.
func Release(row, col int) Transition {
	return Transition{Pos: Position{Row: row, Col: col}}
}

// Tap returns a press followed by a release at row, col.
func Tap(row, col int) []Transition {
	return []Transition{Press(row, col), Release(row, col)}
}

// Source delivers transitions in order. Next returns io.EOF when exhausted.
type Source interface {
	Next() (Transition, error)
}

// SliceSource replays a fixed list of transitions.
type SliceSource struct {
	ts []Transition
}

func NewSliceSource(ts ...Transition) *SliceSource {
	return &SliceSource{ts: ts}
}
