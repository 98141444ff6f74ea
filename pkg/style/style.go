package style

// Color is an optional 256-colour palette index
type Color struct {
	Index uint8
	Set   bool
}

// Fixed returns a set colour for the given palette index
func Fixed(index uint8) Color {
	return Color{Index: index, Set: true}
}

// Style is the attribute set of one run of text. It is comparable, which is
// what lets the Writer coalesce consecutive runs.
type Style struct {
	Fg   Color
	Bg   Color
	Bold bool
}

// Plain is the terminal's default style
var Plain = Style{}

// Foreground returns a copy of s with the given foreground index
func (s Style) Foreground(index uint8) Style {
	s.Fg = Fixed(index)
	return s
}

// Background returns a copy of s with the given background index
func (s Style) Background(index uint8) Style {
	s.Bg = Fixed(index)
	return s
}

// Emphasis returns a bold copy of s
func (s Style) Emphasis() Style {
	s.Bold = true
	return s
}

// IsPlain reports whether s carries no attributes
func (s Style) IsPlain() bool {
	return s == Plain
}
