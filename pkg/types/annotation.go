package types

import (
	"cmp"
	"slices"
)

// AnnotationRange is a named span overlaid on the dump, such as a section or
// a symbol. Size may be zero. Ranges may overlap or nest freely.
type AnnotationRange struct {
	Start uint64
	Size  uint64
	Name  string
}

// End returns Start+Size. The addition wraps like any uint64 arithmetic.
func (r AnnotationRange) End() uint64 {
	return r.Start + r.Size
}

// Contains reports whether addr lies in [Start, End)
func (r AnnotationRange) Contains(addr uint64) bool {
	return r.Start <= addr && addr < r.End()
}

// SortRanges orders ranges by (Start, Size)
func SortRanges(ranges []AnnotationRange) {
	slices.SortStableFunc(ranges, func(a, b AnnotationRange) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Size, b.Size)
	})
}

// DropEmpty returns ranges without the zero-size entries. The input slice is
// reused.
func DropEmpty(ranges []AnnotationRange) []AnnotationRange {
	return slices.DeleteFunc(ranges, func(r AnnotationRange) bool {
		return r.Size == 0
	})
}

// Layer identifies one of the two overlay layers
type Layer int

const (
	// LayerBackground holds container structure (sections, chunks), labelled compactly
	LayerBackground Layer = iota
	// LayerForeground holds symbols, labelled with address and size
	LayerForeground
)

// String returns the string representation of the layer
func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerForeground:
		return "foreground"
	default:
		return "unknown"
	}
}
