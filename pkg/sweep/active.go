package sweep

import "slices"

// activeSet is an ordered set of range indices
type activeSet struct {
	items []int
}

func (a *activeSet) insert(i int) {
	pos, found := slices.BinarySearch(a.items, i)
	if found {
		return
	}
	a.items = slices.Insert(a.items, pos, i)
}

// remove is a no-op when i is absent
func (a *activeSet) remove(i int) {
	pos, found := slices.BinarySearch(a.items, i)
	if !found {
		return
	}
	a.items = slices.Delete(a.items, pos, pos+1)
}

func (a *activeSet) max() (int, bool) {
	if len(a.items) == 0 {
		return 0, false
	}
	return a.items[len(a.items)-1], true
}
