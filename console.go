package scribe

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// stream wraps one of the two console outputs (alert or normal) with
// its color decision. Writes happen under the engine lock, so a torn
// interleaved line is impossible.
type stream struct {
	w     io.Writer
	color bool
}

var (
	fatalColor = color.New(color.FgRed, color.Bold)
	errColor   = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	dimColor   = color.New(color.FgHiBlack)
)

func init() {
	// The decision whether to emit escape codes is the stream's, not
	// the package-global heuristic of fatih/color.
	for _, c := range []*color.Color{fatalColor, errColor, warnColor, dimColor} {
		c.EnableColor()
	}
}

func newStream(w io.Writer, colors string) *stream {
	s := &stream{w: w}
	switch colors {
	case ColorsOn:
		s.color = true
	case ColorsOff:
	default: // auto
		if f, ok := w.(*os.File); ok {
			s.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}
	return s
}

// writeLine renders one message to the stream. Colorization keys off
// the severity: red for Error and worse, yellow for Warning, dimmed
// preamble for everything else. Caller must hold the engine lock.
func (s *stream) writeLine(m *Message) {
	if !s.color {
		fmt.Fprintf(s.w, "%s%s%s%s\n", m.Preamble, m.Indentation, m.Prefix, m.Body)
		s.flush()
		return
	}
	switch {
	case m.Verbosity <= Fatal:
		fatalColor.Fprintf(s.w, "%s%s%s%s\n", m.Preamble, m.Indentation, m.Prefix, m.Body)
	case m.Verbosity == Error:
		errColor.Fprintf(s.w, "%s%s%s%s\n", m.Preamble, m.Indentation, m.Prefix, m.Body)
	case m.Verbosity == Warning:
		warnColor.Fprintf(s.w, "%s%s%s%s\n", m.Preamble, m.Indentation, m.Prefix, m.Body)
	default:
		fmt.Fprintf(s.w, "%s%s%s%s\n", dimColor.Sprint(m.Preamble), m.Indentation, m.Prefix, m.Body)
	}
	s.flush()
}

type flusher interface {
	Flush() error
}

// flush pushes buffered bytes through for writers that buffer.
// os.File writes are unbuffered and need nothing here.
func (s *stream) flush() {
	if f, ok := s.w.(flusher); ok {
		_ = f.Flush()
	}
}
