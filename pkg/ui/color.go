// Package ui decides how much terminal styling the output can carry.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode is the user's colour preference
type ColorMode int

const (
	// ColorAuto colours only interactive terminals that support it
	ColorAuto ColorMode = iota
	// ColorAlways forces 256-colour output, e.g. for `less -R`
	ColorAlways
	// ColorNever writes plain text
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "yes", "force":
		return ColorAlways, nil
	case "never", "no", "none":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode: %s", s)
	}
}

// Profile resolves a mode to the termenv profile used for output
func Profile(mode ColorMode, output *os.File) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI256
	case ColorNever:
		return termenv.Ascii
	}
	if !IsColorTerminal(output) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// IsColorTerminal reports whether output is an interactive terminal and
// NO_COLOR is unset
func IsColorTerminal(output *os.File) bool {
	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if output == nil {
		return false
	}

	// Check if we're being piped or redirected
	return isatty.IsTerminal(output.Fd()) || isatty.IsCygwinTerminal(output.Fd())
}
