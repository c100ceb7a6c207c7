package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/keymap"
	"github.com/cflee/planck/layer"
	"github.com/cflee/planck/matrix"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Layout prints the layer tables of a keymap as grids.
type Layout struct {
	Keymap string   `help:"Built-in keymap name or keymap file" default:"cflee" env:"PLANCK_KEYMAP"`
	Layers []string `arg:"" optional:"" help:"Layers to print (default all)"`
	Active []string `help:"Print the keycodes seen with these layers held instead of the raw tables" sep:","`
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	transparentStyle = lipgloss.NewStyle().Faint(true)
	controlStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Run is called by Kong when the layout command is executed.
func (l *Layout) Run(logger *slog.Logger) error {
	return l.Execute(logger, os.Stdout)
}

// Execute renders the requested layers to out.
func (l *Layout) Execute(logger *slog.Logger, out io.Writer) error {
	cfg, err := loadKeymap(l.Keymap)
	if err != nil {
		return err
	}
	board, err := keymap.Build(cfg, keymap.Options{Logger: logger})
	if err != nil {
		return err
	}
	km := board.Keymap

	if len(l.Active) > 0 {
		for _, name := range l.Active {
			ly, ok := km.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown layer %q", name)
			}
			if ly != layer.Base && !board.State.IsDerived(ly) {
				board.State.Activate(ly)
			}
		}
		title := "effective: " + strings.Join(l.Active, "+")
		if _, err := fmt.Fprintln(out, titleStyle.Render(title)); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, renderGrid(board, func(pos matrix.Position) keycode.Keycode {
			return board.State.Resolve(km, pos)
		}))
		return err
	}

	layers := make([]layer.Layer, 0, km.Len())
	if len(l.Layers) == 0 {
		for i := 0; i < km.Len(); i++ {
			layers = append(layers, layer.Layer(i))
		}
	}
	for _, name := range l.Layers {
		ly, ok := km.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown layer %q", name)
		}
		layers = append(layers, ly)
	}

	for _, ly := range layers {
		title := fmt.Sprintf("%d: %s", ly, km.Name(ly))
		if board.State.IsDerived(ly) {
			title += " (derived)"
		}
		if _, err := fmt.Fprintln(out, titleStyle.Render(title)); err != nil {
			return err
		}
		t := km.Table(ly)
		if _, err := fmt.Fprintln(out, renderGrid(board, t.At)); err != nil {
			return err
		}
	}

	for _, b := range board.State.Bindings() {
		if _, err := fmt.Fprintf(out, "%s + %s -> %s\n", km.Name(b.A), km.Name(b.B), km.Name(b.Derived)); err != nil {
			return err
		}
	}
	return nil
}

func renderGrid(board *keymap.Board, at func(matrix.Position) keycode.Keycode) string {
	km := board.Keymap
	headers := make([]string, km.Cols()+1)
	headers[0] = ""
	for c := 0; c < km.Cols(); c++ {
		headers[c+1] = strconv.Itoa(c)
	}
	rows := make([][]string, km.Rows())
	for r := 0; r < km.Rows(); r++ {
		row := make([]string, km.Cols()+1)
		row[0] = strconv.Itoa(r)
		for c := 0; c < km.Cols(); c++ {
			row[c+1] = shortName(board, at(matrix.Position{Row: r, Col: c}))
		}
		rows[r] = row
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || col == 0 {
				return s.Faint(true)
			}
			kc := at(matrix.Position{Row: row, Col: col - 1})
			switch {
			case kc == keycode.Transparent:
				return transparentStyle.Padding(0, 1)
			case kc.IsCustom():
				return controlStyle.Padding(0, 1)
			}
			return s
		}).
		String()
}

// shortName drops the KC_ prefix and marks transparent and empty entries.
func shortName(board *keymap.Board, kc keycode.Keycode) string {
	switch kc {
	case keycode.Transparent:
		return "▽"
	case keycode.No:
		return "·"
	}
	return strings.TrimPrefix(board.KeycodeName(kc), "KC_")
}
