package types

// Image is everything one render pass consumes: the content blocks and the
// two annotation layers extracted from a binary.
type Image struct {
	Format     string
	Blocks     []ContentBlock
	Background []AnnotationRange
	Foreground []AnnotationRange
}

// Layer returns the ranges of the given layer
func (img *Image) Layer(l Layer) []AnnotationRange {
	if l == LayerForeground {
		return img.Foreground
	}
	return img.Background
}

// AddRanges appends ranges to a layer
func (img *Image) AddRanges(l Layer, ranges ...AnnotationRange) {
	if l == LayerForeground {
		img.Foreground = append(img.Foreground, ranges...)
		return
	}
	img.Background = append(img.Background, ranges...)
}

// Normalize sorts blocks and both layers into the order the renderer expects
func (img *Image) Normalize() {
	SortBlocks(img.Blocks)
	SortRanges(img.Background)
	SortRanges(img.Foreground)
}

// TotalBytes returns the number of content bytes across all blocks
func (img *Image) TotalBytes() int {
	n := 0
	for _, b := range img.Blocks {
		n += len(b.Data)
	}
	return n
}
