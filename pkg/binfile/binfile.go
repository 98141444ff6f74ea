package binfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/logging"
	"github.com/arthur-debert/hexmap/pkg/types"
	"github.com/ianlancetaylor/demangle"
	"github.com/spf13/afero"
)

// Format names a container format
type Format string

const (
	FormatAuto Format = "auto"
	FormatELF  Format = "elf"
	FormatESP  Format = "esp"
	FormatIHex Format = "ihex"
	FormatRaw  Format = "raw"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "elf":
		return FormatELF, nil
	case "esp", "esp32":
		return FormatESP, nil
	case "ihex", "hex":
		return FormatIHex, nil
	case "raw", "bin":
		return FormatRaw, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrFormatUnknown, "unknown format: %s", s)
	}
}

// BlockSource selects what an ELF file contributes as content blocks
type BlockSource string

const (
	BlocksSegments BlockSource = "segments"
	BlocksSections BlockSource = "sections"
)

// ParseBlockSource parses a block source name
func ParseBlockSource(s string) (BlockSource, error) {
	switch strings.ToLower(s) {
	case "segments", "segment", "":
		return BlocksSegments, nil
	case "sections", "section":
		return BlocksSections, nil
	default:
		return BlocksSegments, errors.Newf(errors.ErrInvalidInput, "unknown block source: %s", s)
	}
}

// LoadOptions controls extraction
type LoadOptions struct {
	Format    Format
	Blocks    BlockSource
	Base      uint64
	HideEmpty bool
	Demangle  bool
	// Name labels the raw block; defaults to the file name
	Name string
}

// Load reads path from fs and extracts an image from it
func Load(fs afero.Fs, path string, opts LoadOptions) (*types.Image, error) {
	logger := logging.GetLogger("binfile")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	if opts.Name == "" {
		opts.Name = filepath.Base(path)
	}

	img, err := Parse(data, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("format", img.Format).
		Int("blocks", len(img.Blocks)).
		Int("background", len(img.Background)).
		Int("foreground", len(img.Foreground)).
		Msg("Loaded binary")
	return img, nil
}

// Parse extracts an image from an in-memory file. Blocks may reference data.
func Parse(data []byte, opts LoadOptions) (*types.Image, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		format = Detect(data)
	}

	var (
		img *types.Image
		err error
	)
	switch format {
	case FormatELF:
		img, err = parseELF(data, opts)
	case FormatESP:
		img, err = parseESP(data)
	case FormatIHex:
		img, err = parseIHex(data)
	case FormatRaw:
		img = parseRaw(data, opts)
	default:
		return nil, errors.Newf(errors.ErrFormatUnknown, "unknown format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	postProcess(img, opts)
	return img, nil
}

// Detect guesses the container format from the leading bytes
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("\x7fELF")):
		return FormatELF
	case looksLikeESP(data):
		return FormatESP
	case bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(":")):
		return FormatIHex
	default:
		return FormatRaw
	}
}

func parseRaw(data []byte, opts LoadOptions) *types.Image {
	img := &types.Image{Format: string(FormatRaw)}
	if len(data) > 0 {
		img.Blocks = append(img.Blocks, types.ContentBlock{
			Address: opts.Base,
			Name:    opts.Name,
			Data:    data,
		})
	}
	return img
}

// postProcess applies the name and size filters shared by every format
func postProcess(img *types.Image, opts LoadOptions) {
	if opts.HideEmpty {
		img.Background = types.DropEmpty(img.Background)
		img.Foreground = types.DropEmpty(img.Foreground)
	}
	if opts.Demangle {
		demangleNames(img.Background)
		demangleNames(img.Foreground)
	}
	img.Normalize()
}

func demangleNames(ranges []types.AnnotationRange) {
	for i := range ranges {
		ranges[i].Name = demangle.Filter(ranges[i].Name)
	}
}

// view returns data[off:off+size] after bounds checking
func view(data []byte, off, size uint64, what string) ([]byte, error) {
	end := off + size
	if end < off || end > uint64(len(data)) {
		return nil, errors.Newf(errors.ErrFormatInvalid,
			"%s at offset %#x with size %#x exceeds file size %#x", what, off, size, len(data))
	}
	return data[off:end:end], nil
}

func blockName(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
