package config

import (
	"github.com/arthur-debert/hexmap/pkg/binfile"
	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/arthur-debert/hexmap/pkg/style"
	"github.com/arthur-debert/hexmap/pkg/ui"
)

// MaxColumns bounds the line width
const MaxColumns = 256

// Config is the complete hexmap configuration
type Config struct {
	Columns         int           `koanf:"columns"`
	BreakOnBounds   bool          `koanf:"break_on_bounds"`
	HideEmpty       bool          `koanf:"hide_empty"`
	Demangle        bool          `koanf:"demangle"`
	Color           string        `koanf:"color"`
	Format          string        `koanf:"format"`
	Blocks          string        `koanf:"blocks"`
	Base            uint64        `koanf:"base"`
	SkipZeroAddress bool          `koanf:"skip_zero_address"`
	Annotations     []string      `koanf:"annotations"`
	Palette         PaletteConfig `koanf:"palette"`
}

// PaletteConfig holds xterm-256 colour indices
type PaletteConfig struct {
	Foreground        []int `koanf:"foreground"`
	Background        []int `koanf:"background"`
	DefaultForeground int   `koanf:"default_foreground"`
}

// Validate checks every value that can be checked without I/O
func (c *Config) Validate() error {
	if c.Columns <= 0 || c.Columns > MaxColumns {
		return errors.Newf(errors.ErrConfigValid, "columns must be between 1 and %d, got %d", MaxColumns, c.Columns).
			WithDetail("key", "columns")
	}
	if _, err := ui.ParseColorMode(c.Color); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid color").WithDetail("key", "color")
	}
	if _, err := binfile.ParseFormat(c.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid format").WithDetail("key", "format")
	}
	if _, err := binfile.ParseBlockSource(c.Blocks); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid blocks").WithDetail("key", "blocks")
	}

	for key, list := range map[string][]int{
		"palette.foreground":         c.Palette.Foreground,
		"palette.background":         c.Palette.Background,
		"palette.default_foreground": {c.Palette.DefaultForeground},
	} {
		for _, v := range list {
			if v < 0 || v > 255 {
				return errors.Newf(errors.ErrConfigValid, "%s: colour %d out of range 0-255", key, v).
					WithDetail("key", key)
			}
		}
	}
	if err := c.StylePalette().Validate(); err != nil {
		return err
	}
	return nil
}

// StylePalette converts the configured colours for the renderer
func (c *Config) StylePalette() style.Palette {
	return style.Palette{
		Foreground:        toColors(c.Palette.Foreground),
		Background:        toColors(c.Palette.Background),
		DefaultForeground: uint8(c.Palette.DefaultForeground),
	}
}

// ColorMode returns the parsed color setting. Call after Validate.
func (c *Config) ColorMode() ui.ColorMode {
	mode, _ := ui.ParseColorMode(c.Color)
	return mode
}

// LoadOptions returns the extractor settings
func (c *Config) LoadOptions() binfile.LoadOptions {
	format, _ := binfile.ParseFormat(c.Format)
	blocks, _ := binfile.ParseBlockSource(c.Blocks)
	return binfile.LoadOptions{
		Format:    format,
		Blocks:    blocks,
		Base:      c.Base,
		HideEmpty: c.HideEmpty,
		Demangle:  c.Demangle,
	}
}

func toColors(values []int) []uint8 {
	out := make([]uint8, 0, len(values))
	for _, v := range values {
		out = append(out, uint8(v))
	}
	return out
}
