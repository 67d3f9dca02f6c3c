package scribe

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Logger is the diagnostic logging engine. One Logger carries the
// verbosity threshold, the ordered sink registry, the two console
// streams and the shared scope-indentation depth. All methods are safe
// for concurrent use from any goroutine; dispatch is serialized by a
// single re-entrant lock so sink callbacks may themselves log.
type Logger struct {
	mu          reentrantMutex
	verbosity   atomic.Int32
	indentDepth atomic.Int32
	stripPath   atomic.Bool
	closed      atomic.Bool

	startTime time.Time
	alert     *stream
	normal    *stream
	sinks     []sinkEntry

	fatalHandler func()
	errorHandler func(error)
	limiter      *rate.Limiter
	exit         func(int)

	argv0    string
	argsLine string
}

// New constructs a Logger from the given configuration.
func New(config Config) (*Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.AlertOutput == nil {
		config.AlertOutput = os.Stderr
	}
	if config.NormalOutput == nil {
		config.NormalOutput = os.Stdout
	}
	if config.Colors == "" {
		config.Colors = ColorsAuto
	}

	l := &Logger{
		startTime:    time.Now(),
		alert:        newStream(config.AlertOutput, config.Colors),
		normal:       newStream(config.NormalOutput, config.Colors),
		fatalHandler: config.FatalHandler,
		errorHandler: config.ErrorHandler,
		exit:         os.Exit,
	}
	l.verbosity.Store(int32(config.Verbosity))
	l.stripPath.Store(config.StripPath)

	if config.MaxLogRate > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(config.MaxLogRate), config.MaxLogRate)
	}

	return l, nil
}

// NewDefault constructs a Logger with DefaultConfig.
func NewDefault() *Logger {
	l, err := New(DefaultConfig())
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return l
}

// Enabled reports whether a message at the given verbosity would be
// emitted: negative levels always, others only up to the threshold.
// This is the first check on every log call and costs one atomic load
// and an integer comparison.
func (l *Logger) Enabled(v Verbosity) bool {
	return v < 0 || v <= Verbosity(l.verbosity.Load())
}

// SetVerbosity changes the global threshold at runtime.
func (l *Logger) SetVerbosity(v Verbosity) {
	l.verbosity.Store(int32(v))
}

// GetVerbosity returns the current global threshold.
func (l *Logger) GetVerbosity() Verbosity {
	return Verbosity(l.verbosity.Load())
}

// SetStripPath controls whether origin files are reduced to their
// basename in preambles.
func (l *Logger) SetStripPath(strip bool) {
	l.stripPath.Store(strip)
}

// SetFatalHandler installs the hook called exactly once right before
// process termination on the fatal path. The handler may log, but not
// at Fatal.
func (l *Logger) SetFatalHandler(handler func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fatalHandler = handler
}

// logf is the filtered entry point behind every formatted log call.
// callDepth is the number of frames between the user call site and
// this function.
func (l *Logger) logf(v Verbosity, callDepth int, prefix, format string, args ...any) {
	if !l.Enabled(v) || l.closed.Load() {
		return
	}
	if l.limiter != nil && !l.limiter.Allow() {
		return
	}
	file, line := callerOrigin(callDepth + 1)
	l.dispatch(v, file, line, prefix, fmt.Sprintf(format, args...))
}

// callerOrigin resolves the origin file and line of a log call.
func callerOrigin(callDepth int) (string, int) {
	_, file, line, ok := runtime.Caller(callDepth + 1)
	if !ok {
		return "???", 0
	}
	return file, line
}

// dispatch is the single delivery path for every accepted message:
// build the preamble, snapshot the indentation, write the line to the
// alert or normal stream, then invoke every sink whose cutoff admits
// the verbosity, in registration order. The lock is held across the
// stream write and the full traversal, so two concurrent dispatches
// never interleave; it is re-entrant, so sinks may log.
func (l *Logger) dispatch(v Verbosity, file string, line int, prefix, body string) {
	msg := Message{
		Verbosity:   v,
		Filename:    file,
		Line:        line,
		Preamble:    l.buildPreamble(v, file, line, time.Now()),
		Indentation: indentation(int(l.indentDepth.Load())),
		Prefix:      prefix,
		Body:        body,
	}
	l.logMessage(&msg)
}

func (l *Logger) logMessage(msg *Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.normal
	if msg.Verbosity <= Warning {
		out = l.alert
	}
	out.writeLine(msg)

	for _, s := range l.sinks {
		if msg.Verbosity <= s.cutoff {
			s.handler(s.ctx, msg)
		}
	}
}

// handleError reports a failure of the engine itself (not of the
// caller's code): the configured ErrorHandler if any, else stderr.
func (l *Logger) handleError(err error) {
	l.mu.Lock()
	handler := l.errorHandler
	l.mu.Unlock()
	if handler != nil {
		handler(err)
		return
	}
	fmt.Fprintf(os.Stderr, "scribe: %v\n", err)
}

// Logf emits a formatted message at the given verbosity.
func (l *Logger) Logf(v Verbosity, format string, args ...any) {
	l.logf(v, 1, "", format, args...)
}

// LogIff emits only when cond is true. The verbosity check still runs
// first, so a disabled level costs nothing beyond the comparison.
func (l *Logger) LogIff(v Verbosity, cond bool, format string, args ...any) {
	if !l.Enabled(v) || !cond {
		return
	}
	l.logf(v, 1, "", format, args...)
}

// RawLogf emits the formatted body with no preamble and no
// indentation, through the same streams and sinks as Logf.
func (l *Logger) RawLogf(v Verbosity, format string, args ...any) {
	l.rawLogf(v, 1, format, args...)
}

func (l *Logger) rawLogf(v Verbosity, callDepth int, format string, args ...any) {
	if !l.Enabled(v) || l.closed.Load() {
		return
	}
	if l.limiter != nil && !l.limiter.Allow() {
		return
	}
	file, line := callerOrigin(callDepth + 1)
	msg := Message{
		Verbosity: v,
		Filename:  file,
		Line:      line,
		Body:      fmt.Sprintf(format, args...),
	}
	l.logMessage(&msg)
}

// Infof logs at Info.
func (l *Logger) Infof(format string, args ...any) {
	l.logf(Info, 1, "", format, args...)
}

// Warningf logs at Warning.
func (l *Logger) Warningf(format string, args ...any) {
	l.logf(Warning, 1, "", format, args...)
}

// Errorf logs at Error.
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(Error, 1, "", format, args...)
}

// Close removes every sink, invoking each close hook once in
// registration order, and drops all subsequent messages. Close is
// idempotent.
func (l *Logger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sinks {
		if s.close != nil {
			s.close(s.ctx)
		}
	}
	l.sinks = nil
	return nil
}
