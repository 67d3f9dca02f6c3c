package scribe

import (
	"fmt"
	"strconv"
	"strings"
)

// Verbosity is the signed urgency scale for log messages.
// Lower values are more urgent. The three negative named levels are
// always emitted regardless of the configured threshold and go to the
// alert stream; Info and the positive verbose tiers are filtered by
// the threshold and go to the normal stream.
type Verbosity int32

// Named verbosity levels.
//
// Fatal is reserved for the abort path; call sites should not log at
// Fatal directly. Levels between Info and Max are free for
// application-defined verbose tiers.
const (
	Fatal   Verbosity = -3
	Error   Verbosity = -2
	Warning Verbosity = -1
	Info    Verbosity = 0
	Max     Verbosity = 9
)

// Tag returns the fixed-width level tag used in the preamble: FATL,
// ERR or WARN for the named negative levels, otherwise the numeric
// verbosity right-justified in four columns.
func (v Verbosity) Tag() string {
	switch {
	case v <= Fatal:
		return "FATL"
	case v == Error:
		return "ERR"
	case v == Warning:
		return "WARN"
	default:
		return fmt.Sprintf("% 4d", v)
	}
}

// String converts a Verbosity to a human-readable name.
func (v Verbosity) String() string {
	switch v {
	case Fatal:
		return "FATAL"
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return strconv.Itoa(int(v))
	}
}

// ParseVerbosity converts a level name or bare integer into a
// Verbosity.
//
// Returns:
//   - Verbosity: the parsed level (Info on failure)
//   - error: if the input names no known level and is not an integer
//     within [Fatal, Max]
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FATAL":
		return Fatal, nil
	case "ERROR":
		return Error, nil
	case "WARN", "WARNING":
		return Warning, nil
	case "INFO":
		return Info, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Info, fmt.Errorf("invalid verbosity: %q", s)
	}
	if n < int(Fatal) || n > int(Max) {
		return Info, fmt.Errorf("verbosity %d out of range [%d, %d]", n, Fatal, Max)
	}
	return Verbosity(n), nil
}
