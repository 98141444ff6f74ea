// Package style holds everything that decides how hexmap output looks.
//
// The dump itself is written through a Writer, a small stateful adapter
// that sits between the renderer and the raw output and only emits an SGR
// transition when the requested Style differs from the one in effect.
// Colours are 256-colour palette indices chosen from a fixed Palette by
// range index, and are degraded through the terminal's termenv profile.
//
// The CLI chrome (errors, headings, the info tables) uses the lipgloss
// styles in styles.go.
package style
