package style

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Writer writes styled text, emitting an SGR transition only when the style
// actually changes. The first write error is kept and every later write is
// dropped; callers check Err or Close once at the end.
type Writer struct {
	out     io.Writer
	profile termenv.Profile
	last    Style
	err     error
}

// NewWriter creates a Writer. With termenv.Ascii no escape sequences are
// ever written.
func NewWriter(out io.Writer, profile termenv.Profile) *Writer {
	return &Writer{out: out, profile: profile}
}

// Print writes text in the given style
func (w *Writer) Print(text string, st Style) {
	if st != w.last {
		w.write(w.transition(st))
		w.last = st
	}
	w.write(text)
}

// Newline ends the current output line. The style in effect is kept.
func (w *Writer) Newline() {
	w.write("\n")
}

// Err returns the first write error, if any
func (w *Writer) Err() error {
	return w.err
}

// Close resets styling if needed and returns the first write error
func (w *Writer) Close() error {
	if !w.last.IsPlain() {
		w.write(w.transition(Plain))
		w.last = Plain
	}
	return w.err
}

// transition builds the SGR sequence that switches the terminal to st.
// Attributes are always reset first so a transition never depends on the
// previous style.
func (w *Writer) transition(st Style) string {
	if w.profile == termenv.Ascii {
		return ""
	}
	params := []string{termenv.ResetSeq}
	if st.Bold {
		params = append(params, termenv.BoldSeq)
	}
	if st.Fg.Set {
		if seq := w.profile.Convert(termenv.ANSI256Color(st.Fg.Index)).Sequence(false); seq != "" {
			params = append(params, seq)
		}
	}
	if st.Bg.Set {
		if seq := w.profile.Convert(termenv.ANSI256Color(st.Bg.Index)).Sequence(true); seq != "" {
			params = append(params, seq)
		}
	}
	return termenv.CSI + strings.Join(params, ";") + "m"
}

func (w *Writer) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}
