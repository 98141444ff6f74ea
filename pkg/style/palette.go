package style

import (
	"github.com/arthur-debert/hexmap/pkg/errors"
)

// Palette maps range indices to terminal colours. Colours are a pure function
// of index modulo palette size, so the same input always renders the same.
type Palette struct {
	// Foreground colours for symbols and labels. Low-contrast indices are left out.
	Foreground []uint8
	// Background colours for sections; two low-contrast shades by default.
	Background []uint8
	// DefaultForeground is used for bytes outside every foreground range
	DefaultForeground uint8
}

// DefaultPalette returns the built-in palette
func DefaultPalette() Palette {
	return Palette{
		Foreground:        []uint8{1, 2, 3, 4, 5, 6, 7},
		Background:        []uint8{232, 236},
		DefaultForeground: 8,
	}
}

// Validate checks that both colour lists are usable
func (p Palette) Validate() error {
	if len(p.Foreground) == 0 {
		return errors.New(errors.ErrConfigValid, "foreground palette is empty")
	}
	if len(p.Background) == 0 {
		return errors.New(errors.ErrConfigValid, "background palette is empty")
	}
	return nil
}

// Fg returns the foreground colour for a range index
func (p Palette) Fg(index int) uint8 {
	return p.Foreground[index%len(p.Foreground)]
}

// Bg returns the background colour for a range index
func (p Palette) Bg(index int) uint8 {
	return p.Background[index%len(p.Background)]
}

// Label returns the style of the label announcing the range with this index
func (p Palette) Label(index int) Style {
	return Plain.Foreground(p.Fg(index))
}
