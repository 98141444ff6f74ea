package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hexmap/pkg/style"
	"github.com/arthur-debert/hexmap/pkg/types"
	"github.com/pterm/pterm"
)

// InfoOptions controls the info output
type InfoOptions struct {
	// Limit caps the rows of each range table; 0 shows everything
	Limit int
	// Plain disables all styling
	Plain   bool
	Palette style.Palette
}

// RenderInfo writes the summary of img loaded from path
func RenderInfo(w io.Writer, path string, img *types.Image, opts InfoOptions) error {
	if opts.Plain {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}
	if opts.Palette.Validate() != nil {
		opts.Palette = style.DefaultPalette()
	}

	var out strings.Builder
	out.WriteString(heading(fmt.Sprintf("%s (%s)", path, img.Format), opts.Plain) + "\n")
	out.WriteString(muted(fmt.Sprintf("%d bytes in %d blocks, %d background and %d foreground ranges",
		img.TotalBytes(), len(img.Blocks), len(img.Background), len(img.Foreground)), opts.Plain) + "\n")

	sections := []struct {
		title string
		rows  [][]string
	}{
		{"Blocks", blockRows(img.Blocks)},
		{"Background", rangeRows(img.Background, opts.Limit, opts.Palette.Bg)},
		{"Foreground", rangeRows(img.Foreground, opts.Limit, opts.Palette.Fg)},
	}

	for _, s := range sections {
		out.WriteString("\n" + heading(s.title, opts.Plain) + "\n")
		if len(s.rows) == 1 {
			out.WriteString(muted("  none", opts.Plain) + "\n")
			continue
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(s.rows).Srender()
		if err != nil {
			return err
		}
		out.WriteString(table + "\n")
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func blockRows(blocks []types.ContentBlock) [][]string {
	rows := [][]string{{"Name", "Address", "End", "Size"}}
	for _, b := range blocks {
		rows = append(rows, []string{
			b.Name,
			FormatAddress(b.Address),
			FormatAddress(b.End()),
			FormatSize(uint64(len(b.Data))),
		})
	}
	return rows
}

func rangeRows(ranges []types.AnnotationRange, limit int, color func(int) uint8) [][]string {
	rows := [][]string{{"#", "Name", "Start", "End", "Size", "Colour"}}
	for i, r := range ranges {
		if limit > 0 && i == limit {
			rows = append(rows, []string{"", fmt.Sprintf("... %d more", len(ranges)-limit), "", "", "", ""})
			break
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			r.Name,
			FormatAddress(r.Start),
			FormatAddress(r.End()),
			FormatSize(r.Size),
			fmt.Sprintf("%d", color(i)),
		})
	}
	return rows
}

// FormatAddress renders an address the way the dump does
func FormatAddress(addr uint64) string {
	return fmt.Sprintf("0x%08x", addr)
}

// FormatSize renders a byte count with a binary unit when it is large
func FormatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 4; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTP"[exp])
}

func heading(s string, plain bool) string {
	if plain {
		return s
	}
	return style.TitleStyle.Render(s)
}

func muted(s string, plain bool) string {
	if plain {
		return s
	}
	return style.MutedStyle.Render(s)
}
