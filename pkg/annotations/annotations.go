// Package annotations loads user supplied annotation maps: extra background
// and foreground ranges kept next to a binary, written in TOML, YAML or XML.
//
// All three formats describe the same shape:
//
//	[[background]]
//	name = "bootloader"
//	start = "0x1000"
//	size = 0x7000
//
// Addresses and sizes accept integers or strings with a 0x, 0o or 0b prefix.
// An entry may give end instead of size.
package annotations

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/logging"
	"github.com/arthur-debert/hexmap/pkg/types"
	"github.com/spf13/afero"
)

// Kind is an annotation file syntax
type Kind string

const (
	KindTOML Kind = "toml"
	KindYAML Kind = "yaml"
	KindXML  Kind = "xml"
)

// KindFromPath picks the syntax from the file extension
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return KindTOML, nil
	case ".yaml", ".yml":
		return KindYAML, nil
	case ".xml":
		return KindXML, nil
	default:
		return "", errors.Newf(errors.ErrAnnotationParse, "unsupported annotation file type: %s", path).
			WithDetail("path", path)
	}
}

// File is a decoded annotation map
type File struct {
	Background []types.AnnotationRange
	Foreground []types.AnnotationRange
}

// Len returns the number of ranges across both layers
func (f *File) Len() int {
	return len(f.Background) + len(f.Foreground)
}

// Apply appends the ranges to the image layers and restores sort order
func (f *File) Apply(img *types.Image) {
	img.AddRanges(types.LayerBackground, f.Background...)
	img.AddRanges(types.LayerForeground, f.Foreground...)
	img.Normalize()
}

// entry is the raw form shared by the TOML and YAML decoders
type entry struct {
	Name  string `toml:"name" yaml:"name"`
	Start any    `toml:"start" yaml:"start"`
	Size  any    `toml:"size" yaml:"size"`
	End   any    `toml:"end" yaml:"end"`
}

type document struct {
	Background []entry `toml:"background" yaml:"background"`
	Foreground []entry `toml:"foreground" yaml:"foreground"`
}

// LoadFile reads and decodes an annotation map
func LoadFile(fs afero.Fs, path string) (*File, error) {
	kind, err := KindFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "annotation file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	f, err := Parse(data, kind)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAnnotationParse, "invalid annotation file %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("annotations")
	logger.Debug().
		Str("path", path).
		Int("background", len(f.Background)).
		Int("foreground", len(f.Foreground)).
		Msg("Loaded annotation file")
	return f, nil
}

// Parse decodes an annotation map of the given syntax
func Parse(data []byte, kind Kind) (*File, error) {
	var (
		doc *document
		err error
	)
	switch kind {
	case KindTOML:
		doc, err = decodeTOML(data)
	case KindYAML:
		doc, err = decodeYAML(data)
	case KindXML:
		doc, err = decodeXML(data)
	default:
		return nil, errors.Newf(errors.ErrAnnotationParse, "unsupported annotation syntax: %s", kind)
	}
	if err != nil {
		return nil, err
	}

	bg, err := convert(doc.Background, types.LayerBackground)
	if err != nil {
		return nil, err
	}
	fg, err := convert(doc.Foreground, types.LayerForeground)
	if err != nil {
		return nil, err
	}
	return &File{Background: bg, Foreground: fg}, nil
}

func convert(entries []entry, layer types.Layer) ([]types.AnnotationRange, error) {
	ranges := make([]types.AnnotationRange, 0, len(entries))
	for i, e := range entries {
		r, err := e.toRange()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrAnnotationParse, "%s entry %d", layer, i).
				WithDetail("layer", layer.String()).
				WithDetail("index", i)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func (e entry) toRange() (types.AnnotationRange, error) {
	if e.Name == "" {
		return types.AnnotationRange{}, errors.New(errors.ErrAnnotationParse, "missing name")
	}
	if e.Start == nil {
		return types.AnnotationRange{}, errors.Newf(errors.ErrAnnotationParse, "%s: missing start", e.Name)
	}
	start, err := parseNumber(e.Start)
	if err != nil {
		return types.AnnotationRange{}, errors.Wrapf(err, errors.ErrAnnotationParse, "%s: start", e.Name)
	}

	var size uint64
	switch {
	case e.Size != nil && e.End != nil:
		return types.AnnotationRange{}, errors.Newf(errors.ErrAnnotationParse, "%s: size and end are exclusive", e.Name)
	case e.Size != nil:
		if size, err = parseNumber(e.Size); err != nil {
			return types.AnnotationRange{}, errors.Wrapf(err, errors.ErrAnnotationParse, "%s: size", e.Name)
		}
	case e.End != nil:
		end, err := parseNumber(e.End)
		if err != nil {
			return types.AnnotationRange{}, errors.Wrapf(err, errors.ErrAnnotationParse, "%s: end", e.Name)
		}
		if end < start {
			return types.AnnotationRange{}, errors.Newf(errors.ErrAnnotationParse, "%s: end %#x before start %#x", e.Name, end, start)
		}
		size = end - start
	}

	return types.AnnotationRange{Start: start, Size: size, Name: e.Name}, nil
}

// parseNumber accepts the integer shapes the decoders produce and numeric
// strings with an optional base prefix
func parseNumber(v any) (uint64, error) {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxUint64 {
			return 0, fmt.Errorf("not an address: %v", n)
		}
		return uint64(n), nil
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(n), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("not an address: %q", n)
		}
		return u, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
