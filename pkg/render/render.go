// Package render drives one pass over an image: it walks the content blocks
// byte by byte, advances a background and a foreground sweep to each byte's
// address and feeds the resulting colours and labels into the line canvas.
package render

import (
	"io"
	"math"

	"github.com/arthur-debert/hexmap/pkg/canvas"
	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/logging"
	"github.com/arthur-debert/hexmap/pkg/style"
	"github.com/arthur-debert/hexmap/pkg/sweep"
	"github.com/arthur-debert/hexmap/pkg/types"
	"github.com/muesli/termenv"
)

// Options configures a render pass
type Options struct {
	Columns         int
	BreakOnBounds   bool
	Palette         style.Palette
	Profile         termenv.Profile
	SkipZeroAddress bool
}

// Stats summarises a finished pass
type Stats struct {
	Blocks        int
	SkippedBlocks int
	Bytes         int
	Lines         int
	Gaps          int
}

// Run renders img to w. Blocks and ranges must already be sorted (see
// types.Image.Normalize); Run does not re-validate them. The only error
// it returns is a write failure on w.
func Run(w io.Writer, img *types.Image, opts Options) (Stats, error) {
	logger := logging.GetLogger("render")
	done := logging.LogOperationStart(logger, "render")
	defer done()

	palette := opts.Palette
	if err := palette.Validate(); err != nil {
		palette = style.DefaultPalette()
	}

	out := style.NewWriter(w, opts.Profile)
	cv := canvas.New(out, canvas.Options{
		Columns:       opts.Columns,
		BreakOnBounds: opts.BreakOnBounds,
	})
	background := sweep.New(img.Background, sweep.Options{Palette: palette})
	foreground := sweep.New(img.Foreground, sweep.Options{Palette: palette, Verbose: true})

	logger.Debug().
		Int("blocks", len(img.Blocks)).
		Int("background", background.Len()).
		Int("foreground", foreground.Len()).
		Int("columns", cv.Columns()).
		Msg("Starting render pass")

	var stats Stats
	for _, block := range img.Blocks {
		if opts.SkipZeroAddress && block.Address == 0 {
			stats.SkippedBlocks++
			logger.Trace().Str("block", block.Name).Msg("Skipping block without address")
			continue
		}

		// Close ranges ending right at the block start before its first byte
		if block.Address > 0 {
			background.Advance(block.Address-1, cv)
			foreground.Advance(block.Address-1, cv)
		}
		cv.SetAddress(block.Address)

		for i, b := range block.Data {
			addr := block.Address + uint64(i)
			background.Advance(addr, cv)
			foreground.Advance(addr, cv)
			cv.PushByte(b, foregroundColor(foreground, palette), backgroundColor(background, palette))
		}
		cv.Bound()

		stats.Blocks++
		stats.Bytes += len(block.Data)
	}

	background.Advance(math.MaxUint64, cv)
	foreground.Advance(math.MaxUint64, cv)
	cv.Flush()

	cs := cv.Stats()
	stats.Lines = cs.Lines
	stats.Gaps = cs.Gaps

	if err := out.Close(); err != nil {
		return stats, errors.Wrap(err, errors.ErrRender, "failed to write dump")
	}

	logger.Debug().
		Int("bytes", stats.Bytes).
		Int("lines", stats.Lines).
		Int("gaps", stats.Gaps).
		Msg("Render pass finished")
	return stats, nil
}

func foregroundColor(s *sweep.Sweep, p style.Palette) uint8 {
	if i, ok := s.Get(); ok {
		return p.Fg(i)
	}
	return p.DefaultForeground
}

func backgroundColor(s *sweep.Sweep, p style.Palette) uint8 {
	i, _ := s.Get()
	return p.Bg(i)
}
