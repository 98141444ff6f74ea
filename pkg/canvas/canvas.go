package canvas

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/hexmap/pkg/style"
)

// DefaultColumns is the number of bytes per line unless configured otherwise
const DefaultColumns = 16

// DefaultGapMarker is written once when the address jumps over whole lines
const DefaultGapMarker = "..."

// Options configures a Canvas. It is read once at construction.
type Options struct {
	// Columns is the number of bytes per line. Values below 1 mean DefaultColumns.
	Columns int
	// BreakOnBounds makes Bound write the current line even if it is not full
	BreakOnBounds bool
	// GapMarker replaces DefaultGapMarker when set
	GapMarker string
	// Placeholder is shown in the ASCII column for non-graphic bytes; '.' when zero
	Placeholder byte
}

// Cell is one column of the current line
type Cell struct {
	Value   uint8
	Fg      uint8
	Bg      uint8
	Present bool
}

// Label is a piece of annotation text attached to the current line
type Label struct {
	Text  string
	Style style.Style
}

// Stats counts what a canvas has written
type Stats struct {
	Lines int
	Gaps  int
}

// Canvas is the single in-flight output line of a render pass
type Canvas struct {
	out           *style.Writer
	cols          uint64
	breakOnBounds bool
	gapMarker     string
	placeholder   string

	cells    []Cell
	labels   []Label
	lineAddr uint64
	hasData  bool

	lastLineAddr uint64
	written      bool
	stats        Stats
}

// New creates a Canvas writing to out
func New(out *style.Writer, opts Options) *Canvas {
	cols := opts.Columns
	if cols < 1 {
		cols = DefaultColumns
	}
	gap := opts.GapMarker
	if gap == "" {
		gap = DefaultGapMarker
	}
	placeholder := opts.Placeholder
	if placeholder == 0 {
		placeholder = '.'
	}
	return &Canvas{
		out:           out,
		cols:          uint64(cols),
		breakOnBounds: opts.BreakOnBounds,
		gapMarker:     gap,
		placeholder:   string(placeholder),
		cells:         make([]Cell, 0, cols),
	}
}

// Columns returns the configured line width
func (c *Canvas) Columns() int {
	return int(c.cols)
}

// LineAddress returns the base address of the current line
func (c *Canvas) LineAddress() uint64 {
	return c.lineAddr
}

// HasData reports whether the current line holds a byte or a label
func (c *Canvas) HasData() bool {
	return c.hasData
}

// Stats returns the number of lines and gap markers written so far
func (c *Canvas) Stats() Stats {
	return c.stats
}

// SetAddress aligns the canvas to the line containing addr and pads the
// current line with empty cells up to addr's column.
func (c *Canvas) SetAddress(addr uint64) {
	base := addr / c.cols * c.cols
	col := int(addr % c.cols)

	if base != c.lineAddr {
		c.Flush()
		c.cells = c.cells[:0]
		if c.written && base > c.lineAddr && base-c.lineAddr > c.cols {
			c.writeGap()
		}
		c.lineAddr = base
	}

	// Re-entering a written column starts an overlapping pass over the same bytes
	if col < len(c.cells) {
		c.Flush()
		c.cells = c.cells[:0]
	}

	for len(c.cells) < col {
		c.cells = append(c.cells, Cell{})
	}
}

// PushByte appends a byte to the current line. A full line is written and
// the canvas moves on to the next line address.
func (c *Canvas) PushByte(value, fg, bg uint8) {
	c.cells = append(c.cells, Cell{Value: value, Fg: fg, Bg: bg, Present: true})
	c.hasData = true
	if uint64(len(c.cells)) >= c.cols {
		c.Flush()
		c.lineAddr += c.cols
	}
}

// AddLabel attaches a label to the current line
func (c *Canvas) AddLabel(text string, st style.Style) {
	c.labels = append(c.labels, Label{Text: text, Style: st})
	c.hasData = true
}

// Bound writes the current line early when breaking on boundaries is enabled
func (c *Canvas) Bound() {
	if c.breakOnBounds {
		c.Flush()
	}
}

// Flush writes the current line if it holds any data
func (c *Canvas) Flush() {
	if !c.hasData {
		return
	}
	c.FlushForce()
}

// FlushForce writes the current line unconditionally and resets it
func (c *Canvas) FlushForce() {
	for uint64(len(c.cells)) < c.cols {
		c.cells = append(c.cells, Cell{})
	}

	addr := fmt.Sprintf("0x%08x", c.lineAddr)
	if c.written && c.lineAddr == c.lastLineAddr {
		addr = strings.Repeat(" ", len(addr))
	}
	c.out.Print(addr+" | ", style.Plain)
	c.lastLineAddr = c.lineAddr

	group := c.cols%8 == 0
	for i, cell := range c.cells {
		if cell.Present {
			c.out.Print(fmt.Sprintf("%02x ", cell.Value), cellStyle(cell))
		} else {
			c.out.Print("   ", style.Plain)
		}
		if group && (i+1)%8 == 0 {
			c.out.Print(" ", style.Plain)
		}
	}

	c.out.Print("| ", style.Plain)
	for _, cell := range c.cells {
		if !cell.Present {
			c.out.Print(" ", style.Plain)
			continue
		}
		ch := c.placeholder
		if isGraphic(cell.Value) {
			ch = string(rune(cell.Value))
		}
		c.out.Print(ch, cellStyle(cell).Emphasis())
	}

	c.out.Print(" | ", style.Plain)
	for _, l := range c.labels {
		c.out.Print(l.Text, l.Style)
		c.out.Print(" ", style.Plain)
	}
	c.out.Newline()

	c.cells = c.cells[:0]
	c.labels = c.labels[:0]
	c.hasData = false
	c.written = true
	c.stats.Lines++
}

func (c *Canvas) writeGap() {
	c.out.Print(c.gapMarker, style.Plain)
	c.out.Newline()
	c.stats.Gaps++
}

func cellStyle(cell Cell) style.Style {
	return style.Plain.Foreground(cell.Fg).Background(cell.Bg)
}

// isGraphic reports printable ASCII excluding space
func isGraphic(b uint8) bool {
	return b > 0x20 && b < 0x7f
}
