package scribe

import (
	"fmt"
	"time"
)

// scopeTimePrecision is the number of decimals in the elapsed-time
// field of a scope exit message (3 = milliseconds).
const scopeTimePrecision = 3

// Scope is the handle returned by Logger.Scope. End must be called
// when the bracketed region finishes, normally via defer:
//
//	defer log.Scopef(scribe.Info, "load %s", name).End()
//
// A scope whose verbosity is disabled at entry is inert: no messages,
// no indentation change, and End is a no-op.
//
// The indentation depth is shared across all goroutines, not
// per-goroutine: concurrent scopes on different goroutines interleave
// into one visual nesting.
type Scope struct {
	logger    *Logger
	verbosity Verbosity
	file      string
	line      int
	label     string
	start     time.Time
	active    bool
}

// Scope logs an entry message bracketing a region and deepens the
// shared indentation until the returned handle's End.
func (l *Logger) Scope(v Verbosity, label string) *Scope {
	return l.enterScope(v, 1, label)
}

// Scopef is Scope with a formatted label.
func (l *Logger) Scopef(v Verbosity, format string, args ...any) *Scope {
	if !l.Enabled(v) {
		return &Scope{}
	}
	return l.enterScope(v, 1, fmt.Sprintf(format, args...))
}

func (l *Logger) enterScope(v Verbosity, callDepth int, label string) *Scope {
	if !l.Enabled(v) || l.closed.Load() {
		return &Scope{}
	}
	file, line := callerOrigin(callDepth + 1)
	l.dispatch(v, file, line, "{ ", label)
	l.indentDepth.Add(1)
	return &Scope{
		logger:    l,
		verbosity: v,
		file:      file,
		line:      line,
		label:     label,
		start:     time.Now(),
		active:    true,
	}
}

// End closes the scope: shallows the shared indentation and emits the
// exit message with the elapsed seconds since entry. Calling End on an
// inert or already-ended scope does nothing.
func (s *Scope) End() {
	if !s.active {
		return
	}
	s.active = false
	s.logger.indentDepth.Add(-1)
	elapsed := time.Since(s.start).Seconds()
	s.logger.dispatch(s.verbosity, s.file, s.line, "} ",
		fmt.Sprintf("%.*f s: %s", scopeTimePrecision, elapsed, s.label))
}
