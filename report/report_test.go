package report_test

import (
	"io"
	"testing"

	"github.com/cflee/planck/keycode"
	"github.com/cflee/planck/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {

	type testCase struct {
		name      string
		press     []keycode.Keycode
		modifiers uint8
		keys      []uint8
	}

	testCases := []testCase{
		{name: "nothing"},
		{name: "single key", press: []keycode.Keycode{keycode.KeyQ}, keys: []uint8{0x14}},
		{
			name:      "modifier key",
			press:     []keycode.Keycode{keycode.KeyLeftShift, keycode.KeyA},
			modifiers: report.ModLeftShift,
			keys:      []uint8{0x04},
		},
		{
			name:      "wrapped screenshot shortcut",
			press:     []keycode.Keycode{keycode.LGUI(keycode.LSFT(keycode.Key3))},
			modifiers: report.ModLeftGUI | report.ModLeftShift,
			keys:      []uint8{0x20},
		},
		{
			name:      "shifted alias",
			press:     []keycode.Keycode{keycode.KeyTilde},
			modifiers: report.ModLeftShift,
			keys:      []uint8{0x35},
		},
		{
			name:  "non hid codes are ignored",
			press: []keycode.Keycode{keycode.Transparent, keycode.No, keycode.Reset, keycode.SafeRange},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := report.NewBuilder()
			for _, kc := range tc.press {
				b.Press(kc)
			}
			st := b.State()
			assert.Equal(t, tc.modifiers, st.Modifiers)
			assert.Equal(t, tc.keys, st.Keys())

			r := b.BuildReport()
			require.Len(t, r, report.ReportLen)
			assert.Equal(t, tc.modifiers, r[0])
			assert.Equal(t, uint8(0), r[1])
			for _, k := range tc.keys {
				assert.NotZero(t, r[2+k/8]&(1<<(k%8)))
			}
		})
	}
}

func TestReleaseAfterDoublePress(t *testing.T) {
	b := report.NewBuilder()
	assert.True(t, b.Press(keycode.KeySpace))
	assert.True(t, b.Press(keycode.KeySpace))
	assert.True(t, b.Changed())

	assert.True(t, b.Release(keycode.KeySpace))
	assert.False(t, b.Changed(), "space still held by the second position")
	assert.True(t, b.State().Pressed(uint8(keycode.KeySpace)))

	assert.True(t, b.Release(keycode.KeySpace))
	assert.True(t, b.Changed())
	assert.Empty(t, b.State().Keys())
	assert.False(t, b.Release(keycode.KeySpace))
}

func TestGraveEscape(t *testing.T) {
	b := report.NewBuilder()
	b.Press(keycode.GraveEscape)
	assert.Equal(t, []uint8{uint8(keycode.KeyEscape)}, b.State().Keys())
	b.Release(keycode.GraveEscape)
	assert.Empty(t, b.State().Keys())

	b.Apply(keycode.KeyLeftGUI, true)
	b.Apply(keycode.GraveEscape, true)
	assert.Equal(t, []uint8{uint8(keycode.KeyGrave)}, b.State().Keys())

	// Releasing GUI first must still release the grave that was sent.
	b.Apply(keycode.KeyLeftGUI, false)
	b.Apply(keycode.GraveEscape, false)
	assert.Empty(t, b.Held())
	assert.False(t, b.Release(keycode.GraveEscape))
}

func TestGraveEscapeFromTwoPositions(t *testing.T) {
	b := report.NewBuilder()
	b.Apply(keycode.GraveEscape, true)
	b.Apply(keycode.KeyLeftShift, true)
	b.Apply(keycode.GraveEscape, true)
	assert.Equal(t, []keycode.Keycode{keycode.KeyEscape, keycode.KeyLeftShift, keycode.KeyGrave}, b.Held())

	assert.True(t, b.Apply(keycode.GraveEscape, false))
	assert.Equal(t, []keycode.Keycode{keycode.KeyLeftShift, keycode.KeyGrave}, b.Held())
	assert.True(t, b.Apply(keycode.GraveEscape, false))
	assert.True(t, b.Apply(keycode.KeyLeftShift, false))
	assert.Empty(t, b.Held())
	assert.Empty(t, b.State().Keys())
	assert.False(t, b.Apply(keycode.GraveEscape, false))
}

func TestSwapAltGUI(t *testing.T) {
	b := report.NewBuilder()
	b.SetSwapAltGUI(true)
	assert.True(t, b.SwapAltGUI())
	b.Press(keycode.KeyLeftAlt)
	b.Press(keycode.RGUI(keycode.KeyA))
	assert.Equal(t, uint8(report.ModLeftGUI|report.ModRightAlt), b.State().Modifiers)

	b.SetSwapAltGUI(false)
	assert.Equal(t, uint8(report.ModLeftAlt|report.ModRightGUI), b.State().Modifiers)
}

func TestHeldOrderAndReset(t *testing.T) {
	b := report.NewBuilder()
	b.Press(keycode.KeyB)
	b.Press(keycode.KeyA)
	b.Press(keycode.GraveEscape)
	assert.Equal(t, []keycode.Keycode{keycode.KeyB, keycode.KeyA, keycode.KeyEscape}, b.Held())
	b.Changed()
	b.Reset()
	assert.True(t, b.Changed())
	assert.Empty(t, b.Held())
	assert.False(t, b.Release(keycode.GraveEscape), "reset forgets grave escape presses")
}

func TestWireFormat(t *testing.T) {
	b := report.NewBuilder()
	b.Press(keycode.LCTL(keycode.KeyC))
	b.Press(keycode.KeyV)
	st := b.State()

	data, err := st.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{report.ModLeftCtrl, 2, 0x06, 0x19}, data)

	var back report.InputState
	require.NoError(t, back.UnmarshalBinary(data))
	assert.Equal(t, st, back)

	assert.Equal(t, io.ErrUnexpectedEOF, back.UnmarshalBinary([]byte{0}))
	assert.Equal(t, io.ErrUnexpectedEOF, back.UnmarshalBinary([]byte{0, 3, 4}))
}
