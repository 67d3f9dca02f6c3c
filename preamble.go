package scribe

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	goroutineNameWidth = 16
	maxIndentDepth     = 100
)

// PreambleLegend is the column legend matching the preamble layout.
// It is printed by Init and at the top of every file sink.
const PreambleLegend = "date       time         ( uptime  ) [ goroutine name ]                   file:line     v| "

// buildPreamble renders the fixed-column header for one message:
//
//	2026-08-31 16:47:03.221 (   0.002s) [main            ]             scribe.go:42       0|
//
// Columns are wall-clock time with milliseconds, process uptime in
// seconds, goroutine name (hex id fallback) left-justified in 16
// columns, right-aligned file:line, and the 4-column level tag. The
// function is purely derived from its inputs, the process clocks and
// the rarely-mutated strip-path flag, so it is safe to call
// concurrently without holding the engine lock.
func (l *Logger) buildPreamble(v Verbosity, file string, line int, now time.Time) string {
	uptime := now.Sub(l.startTime).Seconds()
	label := goroutineLabel(goroutineID())
	if len(label) > goroutineNameWidth {
		label = label[:goroutineNameWidth]
	}
	if l.stripPath.Load() {
		file = filepath.Base(file)
	}
	return fmt.Sprintf("%s (%8.3fs) [%-*s]%23s:%-5d %4s| ",
		now.Format("2006-01-02 15:04:05.000"),
		uptime,
		goroutineNameWidth, label,
		file, line, v.Tag())
}

// indentationBuffer holds the marker for the maximum visual depth so
// rendering an indentation is a single slice.
var indentationBuffer = strings.Repeat(".   ", maxIndentDepth)

// indentation renders the visual nesting marker for the given scope
// depth, capped at maxIndentDepth levels.
func indentation(depth int) string {
	if depth <= 0 {
		return ""
	}
	if depth > maxIndentDepth {
		depth = maxIndentDepth
	}
	return indentationBuffer[:4*depth]
}
