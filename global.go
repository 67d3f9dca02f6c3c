package scribe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Init prepares the logger for a program's main goroutine: it scans
// args for verbosity flags (-v N, -v=N and -vN all set the threshold;
// level names like -v WARNING work too) and returns the argument list
// with those flags removed, names the calling goroutine "main",
// prints the preamble column legend to the normal stream, and logs
// the original arguments and the effective verbosity.
//
// Call Init once, from the main goroutine, before other goroutines
// start logging. Malformed or missing flag values are reported at
// Error and skipped; they never abort startup.
func (l *Logger) Init(args []string) []string {
	out := make([]string, 0, len(args))
	if len(args) > 0 {
		l.argv0 = filepath.Base(args[0])
		l.argsLine = strings.Join(args, " ")
		out = append(out, args[0])
	}

	for i := 1; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-v") || (len(arg) > 2 && isAlpha(arg[2])) {
			out = append(out, arg)
			continue
		}
		value := arg[2:]
		if value == "" {
			if i+1 >= len(args) {
				l.Errorf("Missing verbosity level after -v")
				continue
			}
			i++
			value = args[i]
		}
		value = strings.TrimPrefix(value, "=")
		v, err := ParseVerbosity(value)
		if err != nil {
			l.Errorf("Bad verbosity after -v: %v", err)
			continue
		}
		l.SetVerbosity(v)
	}

	SetGoroutineName("main")

	l.mu.Lock()
	fmt.Fprintln(l.normal.w, PreambleLegend)
	l.normal.flush()
	l.mu.Unlock()

	l.Infof("arguments:       %s", l.argsLine)
	l.Infof("Verbosity level: %d", l.GetVerbosity())
	l.Infof("-----------------------------------")
	return out
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// SuggestLogPath proposes a log file path under prefix: the prefix
// (with a leading ~ expanded to the home directory), the program name
// recorded by Init, and a millisecond timestamp with a .log suffix,
// e.g. "~/logs/" becomes "/home/user/logs/myapp/20260831_164703.221.log".
func (l *Logger) SuggestLogPath(prefix string) (string, error) {
	if strings.HasPrefix(prefix, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			l.Errorf("Cannot resolve home directory: %v", err)
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		prefix = home + prefix[1:]
	}
	app := l.argv0
	if app == "" {
		app = "app"
	}
	stamp := time.Now().Format("20060102_150405.000")
	return filepath.Join(prefix, app, stamp+".log"), nil
}

// std is the process-wide default logger behind the package-level
// functions. Programs wanting different streams or a rate limit build
// their own Logger with New and keep a reference.
var std = NewDefault()

// Default returns the package-level logger.
func Default() *Logger { return std }

// Init runs Logger.Init on the default logger.
func Init(args []string) []string { return std.Init(args) }

// Logf logs a formatted message at v on the default logger.
func Logf(v Verbosity, format string, args ...any) {
	std.logf(v, 1, "", format, args...)
}

// LogIff logs on the default logger only when cond is true.
func LogIff(v Verbosity, cond bool, format string, args ...any) {
	if !std.Enabled(v) || !cond {
		return
	}
	std.logf(v, 1, "", format, args...)
}

// Infof logs at Info on the default logger.
func Infof(format string, args ...any) { std.logf(Info, 1, "", format, args...) }

// Warningf logs at Warning on the default logger.
func Warningf(format string, args ...any) { std.logf(Warning, 1, "", format, args...) }

// Errorf logs at Error on the default logger.
func Errorf(format string, args ...any) { std.logf(Error, 1, "", format, args...) }

// RawLogf logs without preamble or indentation on the default logger.
func RawLogf(v Verbosity, format string, args ...any) { std.rawLogf(v, 1, format, args...) }

// BeginScope opens a scope on the default logger.
func BeginScope(v Verbosity, label string) *Scope { return std.enterScope(v, 1, label) }

// BeginScopef opens a scope with a formatted label on the default logger.
func BeginScopef(v Verbosity, format string, args ...any) *Scope {
	if !std.Enabled(v) {
		return &Scope{}
	}
	return std.enterScope(v, 1, fmt.Sprintf(format, args...))
}

// AddSink registers a sink on the default logger.
func AddSink(id string, handler Handler, ctx any, cutoff Verbosity, closeHandler CloseHandler) {
	std.AddSink(id, handler, ctx, cutoff, closeHandler)
}

// RemoveSink removes a sink from the default logger.
func RemoveSink(id string) error { return std.RemoveSink(id) }

// AddFile registers a file sink on the default logger.
func AddFile(path string, mode FileMode, cutoff Verbosity) error {
	return std.AddFile(path, mode, cutoff)
}

// SetVerbosity sets the default logger's threshold.
func SetVerbosity(v Verbosity) { std.SetVerbosity(v) }

// GetVerbosity returns the default logger's threshold.
func GetVerbosity() Verbosity { return std.GetVerbosity() }

// SetStripPath controls basename stripping on the default logger.
func SetStripPath(strip bool) { std.SetStripPath(strip) }

// SetFatalHandler installs the pre-termination hook on the default
// logger.
func SetFatalHandler(handler func()) { std.SetFatalHandler(handler) }

// SuggestLogPath proposes a log path using the default logger's
// program name.
func SuggestLogPath(prefix string) (string, error) { return std.SuggestLogPath(prefix) }

// Check aborts through the default logger when cond is false.
func Check(cond bool, expr string) {
	if cond {
		return
	}
	file, line := callerOrigin(1)
	std.failAndAbort(1, checkPrefix(expr), file, line, "")
}

// Checkf is Check with a formatted detail message.
func Checkf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}
	file, line := callerOrigin(1)
	std.failAndAbort(1, checkPrefix(expr), file, line, fmt.Sprintf(format, args...))
}

// CheckNotNil aborts through the default logger when v is nil.
func CheckNotNil(v any, name string) {
	if !isNil(v) {
		return
	}
	file, line := callerOrigin(1)
	std.failAndAbort(1, checkPrefix(name+" != nil"), file, line, "")
}

// CheckNoErr aborts through the default logger when err is non-nil.
func CheckNoErr(err error) {
	if err == nil {
		return
	}
	file, line := callerOrigin(1)
	std.failAndAbort(1, checkPrefix("err == nil"), file, line, err.Error())
}

// Abortf unconditionally terminates through the default logger.
func Abortf(format string, args ...any) {
	file, line := callerOrigin(1)
	std.failAndAbort(1, "ABORT: ", file, line, fmt.Sprintf(format, args...))
}
