package matrix_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cflee/planck/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptSource(t *testing.T) {
	script := `
# hold lower, tap q, release
press 3 4
tap 0 1   # q
release 3 4
DOWN 1 2
up 1 2
`
	src := matrix.NewScriptSource(strings.NewReader(script))

	var got []matrix.Transition
	for {
		tr, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, tr)
	}

	want := []matrix.Transition{
		matrix.Press(3, 4),
		matrix.Press(0, 1),
		matrix.Release(0, 1),
		matrix.Release(3, 4),
		matrix.Press(1, 2),
		matrix.Release(1, 2),
	}
	assert.Equal(t, want, got)
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "missing column", line: "press 1"},
		{name: "negative row", line: "press -1 2"},
		{name: "bad column", line: "tap 1 x"},
		{name: "unknown verb", line: "hold 1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matrix.ParseLine(tt.line)
			assert.ErrorIs(t, err, matrix.ErrSyntax)
		})
	}
}

func TestScriptSourceReportsLine(t *testing.T) {
	src := matrix.NewScriptSource(strings.NewReader("press 0 0\nbogus\n"))
	_, err := src.Next()
	require.NoError(t, err)
	_, err = src.Next()
	assert.ErrorIs(t, err, matrix.ErrSyntax)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSliceSource(t *testing.T) {
	src := matrix.NewSliceSource(matrix.Press(0, 0))
	tr, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "press r0c0", tr.String())
	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}
