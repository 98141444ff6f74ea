package canvas

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/hexmap/pkg/style"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, opts Options) (*Canvas, *bytes.Buffer, *style.Writer) {
	t.Helper()
	var buf bytes.Buffer
	w := style.NewWriter(&buf, termenv.Ascii)
	return New(w, opts), &buf, w
}

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimSuffix(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestPushByte_FullLineFlushes(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 16})

	for i := 0; i < 16; i++ {
		c.PushByte(uint8(i), 7, 232)
	}
	c.Flush()

	got := lines(buf)
	require.Len(t, got, 1)
	assert.Equal(t,
		"0x00000000 | 00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f  | ................ | ",
		got[0])
	assert.Equal(t, uint64(0x10), c.LineAddress())
	assert.Equal(t, Stats{Lines: 1}, c.Stats())
}

func TestColumnGrouping(t *testing.T) {
	t.Run("fifteen columns have no extra space", func(t *testing.T) {
		c, buf, _ := newTestCanvas(t, Options{Columns: 15})

		for i := 0; i < 15; i++ {
			c.PushByte('A', 7, 232)
		}

		got := lines(buf)
		require.Len(t, got, 1)
		assert.Equal(t,
			"0x00000000 | "+strings.Repeat("41 ", 15)+"| "+strings.Repeat("A", 15)+" | ",
			got[0])
		assert.NotContains(t, got[0], "  ")
	})

	t.Run("eight columns group once per line", func(t *testing.T) {
		c, buf, _ := newTestCanvas(t, Options{Columns: 8})

		for i := 0; i < 8; i++ {
			c.PushByte('z', 7, 232)
		}

		assert.Equal(t, "0x00000000 | "+strings.Repeat("7a ", 8)+" | zzzzzzzz | \n", buf.String())
	})
}

func TestAsciiColumn(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 4})

	c.PushByte(' ', 7, 232)
	c.PushByte('~', 7, 232)
	c.PushByte(0x7f, 7, 232)
	c.PushByte('!', 7, 232)

	assert.Equal(t, "0x00000000 | 20 7e 7f 21 | .~.! | \n", buf.String())
}

func TestSetAddress_PadsLeadingColumns(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 8})

	c.SetAddress(0x13)
	c.PushByte('H', 7, 232)
	c.PushByte('i', 7, 232)
	c.Flush()

	assert.Equal(t, "0x00000010 |          48 69           |    Hi    | \n", buf.String())
}

func TestSetAddress_GapMarker(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 4})

	c.SetAddress(0)
	for i := 0; i < 4; i++ {
		c.PushByte(0, 7, 232)
	}
	c.SetAddress(0x100)
	for i := 0; i < 4; i++ {
		c.PushByte(0, 7, 232)
	}

	assert.Equal(t, []string{
		"0x00000000 | 00 00 00 00 | .... | ",
		"...",
		"0x00000100 | 00 00 00 00 | .... | ",
	}, lines(buf))
	assert.Equal(t, Stats{Lines: 2, Gaps: 1}, c.Stats())
}

func TestSetAddress_NextLineHasNoGap(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 4})

	c.PushByte(1, 7, 232)
	c.SetAddress(0x4)
	c.PushByte(2, 7, 232)
	c.Flush()

	assert.Equal(t, []string{
		"0x00000000 | 01          | .    | ",
		"0x00000004 | 02          | .    | ",
	}, lines(buf))
}

func TestSetAddress_NoGapBeforeFirstLine(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 4})

	c.SetAddress(0x400000)
	c.PushByte(0xff, 7, 232)
	c.Flush()

	assert.Equal(t, []string{"0x00400000 | ff          | .    | "}, lines(buf))
}

func TestSetAddress_OverlappingPassRepeatsLineWithBlankAddress(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 4})

	c.SetAddress(0x10)
	c.PushByte('a', 7, 232)
	c.PushByte('b', 7, 232)
	c.PushByte('c', 7, 232)

	// back to a column already written
	c.SetAddress(0x11)
	c.AddLabel("[sym]", style.Plain)
	c.PushByte('b', 1, 232)
	c.Flush()

	assert.Equal(t, []string{
		"0x00000010 | 61 62 63    | abc  | ",
		"           |    62       |  b   | [sym] ",
	}, lines(buf))
}

func TestLabels(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Columns: 4})

	c.AddLabel("[.text]", style.Plain.Foreground(1))
	c.AddLabel("0x00000000+0x4: main", style.Plain.Foreground(2))
	require.True(t, c.HasData())
	c.Flush()

	assert.Equal(t, "0x00000000 |             |      | [.text] 0x00000000+0x4: main \n", buf.String())
	assert.False(t, c.HasData())
}

func TestFlush(t *testing.T) {
	t.Run("empty line is not written", func(t *testing.T) {
		c, buf, _ := newTestCanvas(t, Options{Columns: 4})

		c.Flush()
		c.SetAddress(2)
		c.Flush()

		assert.Empty(t, buf.String())
	})

	t.Run("force writes an empty line", func(t *testing.T) {
		c, buf, _ := newTestCanvas(t, Options{Columns: 4})

		c.FlushForce()

		assert.Equal(t, "0x00000000 |             |      | \n", buf.String())
	})
}

func TestBound(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		c, buf, _ := newTestCanvas(t, Options{Columns: 4})

		c.PushByte(1, 7, 232)
		c.Bound()

		assert.Empty(t, buf.String())
		assert.True(t, c.HasData())
	})

	t.Run("enabled breaks the line", func(t *testing.T) {
		c, buf, _ := newTestCanvas(t, Options{Columns: 4, BreakOnBounds: true})

		c.PushByte(1, 7, 232)
		c.Bound()
		c.SetAddress(1)
		c.PushByte(2, 7, 232)
		c.Flush()

		assert.Equal(t, []string{
			"0x00000000 | 01          | .    | ",
			"           |    02       |  .   | ",
		}, lines(buf))
	})
}

func TestOptionsDefaults(t *testing.T) {
	c, buf, _ := newTestCanvas(t, Options{Placeholder: '?', GapMarker: "~~"})

	assert.Equal(t, DefaultColumns, c.Columns())

	c.PushByte(0, 7, 232)
	c.SetAddress(0x100)
	c.PushByte(0, 7, 232)
	c.Flush()

	got := lines(buf)
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "| ?")
	assert.Equal(t, "~~", got[1])
	assert.Equal(t, "0x00000100 | 00 ", got[2][:16])
	assert.Equal(t, Stats{Lines: 2, Gaps: 1}, c.Stats())
}

func TestStyledOutput(t *testing.T) {
	var buf bytes.Buffer
	w := style.NewWriter(&buf, termenv.ANSI256)
	c := New(w, Options{Columns: 1})

	c.PushByte('A', 1, 232)
	require.NoError(t, w.Close())

	assert.Equal(t,
		"0x00000000 | \x1b[0;38;5;1;48;5;232m41 \x1b[0m| \x1b[0;1;38;5;1;48;5;232mA\x1b[0m | \n",
		buf.String())
}
