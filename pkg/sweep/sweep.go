package sweep

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arthur-debert/hexmap/pkg/style"
	"github.com/arthur-debert/hexmap/pkg/types"
)

// Sink receives the side effects of a sweep. The line canvas implements it.
type Sink interface {
	// Bound requests a line break at an annotation boundary
	Bound()
	// SetAddress moves the output position to addr
	SetAddress(addr uint64)
	// AddLabel attaches a label to the current line
	AddLabel(text string, st style.Style)
}

// Options configures a Sweep
type Options struct {
	// Verbose selects the "0x00001000+0x20: name" label form instead of "[name]"
	Verbose bool
	// Palette colours the labels
	Palette style.Palette
}

type event struct {
	addr  uint64
	index int
	start bool
}

// Sweep walks the enter/exit events of a fixed set of ranges. It is scratch
// state for a single render pass and is not safe for concurrent use.
type Sweep struct {
	ranges  []types.AnnotationRange
	events  []event
	cursor  int
	active  activeSet
	verbose bool
	palette style.Palette
}

// New builds the sorted event list for ranges. The ranges slice is retained
// and must not change while the sweep is in use.
func New(ranges []types.AnnotationRange, opts Options) *Sweep {
	events := make([]event, 0, 2*len(ranges))
	for i, r := range ranges {
		end := r.End()
		if end < r.Start {
			// Wrapped or malformed: close immediately
			end = r.Start
		}
		events = append(events,
			event{addr: r.Start, index: i, start: true},
			event{addr: end, index: i, start: false},
		)
	}
	slices.SortFunc(events, compareEvents)

	palette := opts.Palette
	if palette.Validate() != nil {
		palette = style.DefaultPalette()
	}

	return &Sweep{
		ranges:  ranges,
		events:  events,
		verbose: opts.Verbose,
		palette: palette,
	}
}

// compareEvents orders by address, then enters before exits, then index
func compareEvents(a, b event) int {
	if c := cmp.Compare(a.addr, b.addr); c != 0 {
		return c
	}
	if a.start != b.start {
		if a.start {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.index, b.index)
}

// Advance processes every pending event at or below addr. Events are never
// processed twice, so calling Advance again with the same address does
// nothing. Advance(math.MaxUint64) closes every range still open.
func (s *Sweep) Advance(addr uint64, sink Sink) {
	var lastBreak uint64
	broke := false

	for s.cursor < len(s.events) {
		ev := s.events[s.cursor]
		if ev.addr > addr {
			break
		}
		if !broke || lastBreak != ev.addr {
			sink.Bound()
			sink.SetAddress(ev.addr)
			lastBreak = ev.addr
			broke = true
		}
		s.cursor++

		if ev.start {
			s.active.insert(ev.index)
			sink.AddLabel(s.label(ev.index), s.palette.Label(ev.index))
		} else {
			s.active.remove(ev.index)
		}
	}
}

// Get returns the index of the winning active range: the highest
// declaration index among the ranges containing the current address.
func (s *Sweep) Get() (int, bool) {
	return s.active.max()
}

// Active returns the indices of the active ranges in ascending order
func (s *Sweep) Active() []int {
	return slices.Clone(s.active.items)
}

// Range returns the range with the given declaration index
func (s *Sweep) Range(index int) types.AnnotationRange {
	return s.ranges[index]
}

// Len returns the number of ranges
func (s *Sweep) Len() int {
	return len(s.ranges)
}

// Pending returns the number of events not yet processed
func (s *Sweep) Pending() int {
	return len(s.events) - s.cursor
}

func (s *Sweep) label(index int) string {
	r := s.ranges[index]
	if s.verbose {
		return fmt.Sprintf("0x%08x+%#x: %s", r.Start, r.Size, r.Name)
	}
	return "[" + r.Name + "]"
}
