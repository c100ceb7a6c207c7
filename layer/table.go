package layer

import (
	"errors"
	"fmt"

	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/matrix"
)

// ErrTable is returned when layer tables do not form a valid keymap.
var ErrTable = errors.New("invalid layer table")

// Table is one layer's keycodes, indexed by row then column.
type Table [][]keycode.Keycode

// At returns the entry at pos, or Transparent when pos lies outside t.
func (t Table) At(pos matrix.Position) keycode.Keycode {
	if pos.Row < 0 || pos.Row >= len(t) || pos.Col < 0 || pos.Col >= len(t[pos.Row]) {
		return keycode.Transparent
	}
	return t[pos.Row][pos.Col]
}

// Keymap is the static set of layer tables of one keyboard.
type Keymap struct {
	rows, cols int
	tables     []Table
	names      []string
}

// NewKeymap checks the tables and builds a keymap. tables[i] belongs to
// Layer(i); names may be nil. A nil table is an entirely transparent layer.
// Every table must be rows x cols and Base may hold no transparent entries.
func NewKeymap(rows, cols int, tables []Table, names []string) (*Keymap, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: matrix size %dx%d", ErrTable, rows, cols)
	}
	if len(tables) == 0 || tables[Base] == nil {
		return nil, fmt.Errorf("%w: missing base layer", ErrTable)
	}
	if len(tables) > MaxLayers {
		return nil, fmt.Errorf("%w: %d layers, at most %d supported", ErrTable, len(tables), MaxLayers)
	}
	if names != nil && len(names) != len(tables) {
		return nil, fmt.Errorf("%w: %d names for %d layers", ErrTable, len(names), len(tables))
	}
	for i, t := range tables {
		if t == nil {
			continue
		}
		if len(t) != rows {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrTable, i, len(t), rows)
		}
		for r, row := range t {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: layer %d row %d has %d columns, want %d", ErrTable, i, r, len(row), cols)
			}
		}
	}
	for r, row := range tables[Base] {
		for c, k := range row {
			if k == keycode.Transparent {
				return nil, fmt.Errorf("%w: base layer is transparent at %s", ErrTable, matrix.Position{Row: r, Col: c})
			}
		}
	}
	return &Keymap{rows: rows, cols: cols, tables: tables, names: names}, nil
}

// Rows returns the number of matrix rows.
func (k *Keymap) Rows() int { return k.rows }

// Cols returns the number of matrix columns.
func (k *Keymap) Cols() int { return k.cols }

// Len returns the number of layers.
func (k *Keymap) Len() int { return len(k.tables) }

// Table returns the table of l, nil for a transparent or unknown layer.
func (k *Keymap) Table(l Layer) Table {
	if int(l) >= len(k.tables) {
		return nil
	}
	return k.tables[l]
}

// Name returns the name of l, falling back to its number.
func (k *Keymap) Name(l Layer) string {
	if int(l) < len(k.names) && k.names[l] != "" {
		return k.names[l]
	}
	return l.String()
}

// Lookup finds a layer by name.
func (k *Keymap) Lookup(name string) (Layer, bool) {
	for i, n := range k.names {
		if n == name {
			return Layer(i), true
		}
	}
	return 0, false
}

// Contains reports whether pos lies inside the matrix.
func (k *Keymap) Contains(pos matrix.Position) bool {
	return pos.Row >= 0 && pos.Row < k.rows && pos.Col >= 0 && pos.Col < k.cols
}

// Resolve scans the layers in active from highest to lowest and returns the
// first entry that is not transparent. Base is always consulted last, so the
// result is never Transparent. Positions outside the matrix resolve to No.
func (k *Keymap) Resolve(active Mask, pos matrix.Position) keycode.Keycode {
	if !k.Contains(pos) {
		return keycode.No
	}
	for _, l := range active.With(Base).Layers() {
		if kc := k.Table(l).At(pos); kc != keycode.Transparent {
			return kc
		}
	}
	return keycode.No
}
