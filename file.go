package scribe

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileMode selects how AddFile opens its target.
type FileMode int

const (
	Truncate FileMode = iota
	Append
)

func (m FileMode) String() string {
	if m == Truncate {
		return "truncate"
	}
	return "append"
}

// AddFile registers a file sink at path, creating any missing parent
// directories first. cutoff is the per-sink verbosity limit, applied
// after the global threshold. The file receives a short header (the
// process arguments, the effective verbosity and the preamble column
// legend) and then one line per eligible message in the standard
// preamble + indentation + prefix + body layout. Removing the sink
// (its id is the path) or closing the logger closes the file.
//
// Failures to create directories or open the file are reported at
// Error and returned; the logger keeps running.
func (l *Logger) AddFile(path string, mode FileMode, cutoff Verbosity) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			l.Errorf("Failed to create directories to %q: %v", path, err)
			return fmt.Errorf("create log directories for %q: %w", path, err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if mode == Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		l.Errorf("Failed to open %q: %v", path, err)
		return fmt.Errorf("open log file %q: %w", path, err)
	}

	effective := l.GetVerbosity()
	if cutoff < effective {
		effective = cutoff
	}
	fmt.Fprintf(f, "arguments:       %s\n", l.argsLine)
	fmt.Fprintf(f, "Verbosity level: %d\n", effective)
	fmt.Fprintf(f, "%s\n", PreambleLegend)

	// os.File writes go straight to the descriptor, so every line is
	// on disk when the handler returns.
	handler := func(ctx any, m *Message) {
		file := ctx.(*os.File)
		if _, err := fmt.Fprintf(file, "%s%s%s%s\n", m.Preamble, m.Indentation, m.Prefix, m.Body); err != nil {
			l.handleError(fmt.Errorf("write log file %q: %w", file.Name(), err))
		}
	}
	closeHandler := func(ctx any) {
		file := ctx.(*os.File)
		if err := file.Close(); err != nil {
			l.handleError(fmt.Errorf("close log file %q: %w", file.Name(), err))
		}
	}
	l.AddSink(path, handler, f, cutoff, closeHandler)

	l.Infof("Logging to %q, mode: %s, verbosity: %d", path, mode, cutoff)
	return nil
}
