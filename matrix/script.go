package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is returned for malformed script lines.
var ErrSyntax = errors.New("script syntax error")

// Next implements Source.
func (s *SliceSource) Next() (Transition, error) {
	if len(s.ts) == 0 {
		return Transition{}, io.EOF
	}
	t := s.ts[0]
	s.ts = s.ts[1:]
	return t, nil
}

// ScriptSource reads transitions from a line based script:
//
//	# comment
//	press 3 4
//	release 3 4
//	tap 0 1      # press and release
//
// "down" and "up" are accepted for press and release.
type ScriptSource struct {
	sc      *bufio.Scanner
	line    int
	pending []Transition
}

func NewScriptSource(r io.Reader) *ScriptSource {
	return &ScriptSource{sc: bufio.NewScanner(r)}
}

// Line returns the number of the last line read.
func (s *ScriptSource) Line() int {
	return s.line
}

// Next implements Source.
func (s *ScriptSource) Next() (Transition, error) {
	for len(s.pending) == 0 {
		if !s.sc.Scan() {
			if err := s.sc.Err(); err != nil {
				return Transition{}, err
			}
			return Transition{}, io.EOF
		}
		s.line++
		ts, err := ParseLine(s.sc.Text())
		if err != nil {
			return Transition{}, fmt.Errorf("line %d: %w", s.line, err)
		}
		s.pending = ts
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t, nil
}

// ParseLine parses one script line. Blank and comment lines yield no
// transitions.
func ParseLine(line string) ([]Transition, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected <verb> <row> <col>, got %q", ErrSyntax, strings.TrimSpace(line))
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil || row < 0 {
		return nil, fmt.Errorf("%w: bad row %q", ErrSyntax, fields[1])
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil || col < 0 {
		return nil, fmt.Errorf("%w: bad column %q", ErrSyntax, fields[2])
	}

	switch strings.ToLower(fields[0]) {
	case "press", "down":
		return []Transition{Press(row, col)}, nil
	case "release", "up":
		return []Transition{Release(row, col)}, nil
	case "tap":
		return Tap(row, col), nil
	default:
		return nil, fmt.Errorf("%w: unknown verb %q", ErrSyntax, fields[0])
	}
}
