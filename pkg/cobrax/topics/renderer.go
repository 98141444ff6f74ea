package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns raw topic content into terminal output
type Renderer interface {
	// Render formats content; ext is the topic file extension, e.g. ".md"
	Render(content string, ext string) string
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other extensions
// pass through untouched, as does markdown glamour fails on.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a style
	// file path; empty selects one from the terminal background
	Style string
	// Width wraps text at this column; 0 keeps glamour's default
	Width int

	term *glamour.TermRenderer
}

// NewGlamourRenderer creates a markdown renderer with automatic styling
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

// Render converts markdown to styled terminal output
func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	term, err := r.renderer()
	if err != nil {
		return content
	}
	rendered, err := term.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// renderer builds the glamour renderer on first use
func (r *GlamourRenderer) renderer() (*glamour.TermRenderer, error) {
	if r.term != nil {
		return r.term, nil
	}

	var options []glamour.TermRendererOption
	if r.Style == "" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	term, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, err
	}
	r.term = term
	return term, nil
}
