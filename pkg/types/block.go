package types

import (
	"cmp"
	"slices"
)

// ContentBlock is one contiguous run of file bytes mapped to an address,
// such as a loadable segment or a firmware chunk. Data is a view into the
// loaded file buffer and must not be modified.
type ContentBlock struct {
	Address uint64
	Name    string
	Data    []byte
}

// End returns the first address after the block
func (b ContentBlock) End() uint64 {
	return b.Address + uint64(len(b.Data))
}

// SortBlocks orders blocks by (Address, length)
func SortBlocks(blocks []ContentBlock) {
	slices.SortStableFunc(blocks, func(a, b ContentBlock) int {
		if c := cmp.Compare(a.Address, b.Address); c != 0 {
			return c
		}
		return cmp.Compare(len(a.Data), len(b.Data))
	})
}
