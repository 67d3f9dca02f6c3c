package scribe

import (
	"fmt"
	"reflect"
)

// failAndAbort is the single path from an assertion failure to process
// termination: capture a stack trace (skipping the fatal machinery's
// own frames), dispatch it at Error, dispatch the failure itself at
// Fatal with expr as the message prefix, run the fatal handler once if
// set, then terminate. It never returns.
func (l *Logger) failAndAbort(stackSkip int, expr, file string, line int, body string) {
	if st := Stacktrace(stackSkip + 1); st != "" {
		l.dispatch(Error, file, line, "Stack trace:\n", st)
	}
	l.dispatch(Fatal, file, line, expr, body)

	l.mu.Lock()
	handler := l.fatalHandler
	l.mu.Unlock()
	if handler != nil {
		handler()
	}
	l.exit(1)
}

func checkPrefix(expr string) string {
	return fmt.Sprintf("CHECK FAILED:  %s  ", expr)
}

// Check aborts the process when cond is false. expr is the textual
// form of the condition, shown in the failure message:
//
//	scribe.Check(fp != nil, "fp != nil")
func (l *Logger) Check(cond bool, expr string) {
	if cond {
		return
	}
	file, line := callerOrigin(1)
	l.failAndAbort(1, checkPrefix(expr), file, line, "")
}

// Checkf is Check with a formatted detail message appended to the
// failure line.
func (l *Logger) Checkf(cond bool, expr, format string, args ...any) {
	if cond {
		return
	}
	file, line := callerOrigin(1)
	l.failAndAbort(1, checkPrefix(expr), file, line, fmt.Sprintf(format, args...))
}

// CheckNotNil aborts when v is nil (including a typed nil pointer,
// map, slice, channel or function). name identifies the value in the
// failure message.
func (l *Logger) CheckNotNil(v any, name string) {
	if !isNil(v) {
		return
	}
	file, line := callerOrigin(1)
	l.failAndAbort(1, checkPrefix(name+" != nil"), file, line, "")
}

// CheckNoErr aborts when err is non-nil, with the error text as the
// failure detail.
func (l *Logger) CheckNoErr(err error) {
	if err == nil {
		return
	}
	file, line := callerOrigin(1)
	l.failAndAbort(1, checkPrefix("err == nil"), file, line, err.Error())
}

// Abortf unconditionally terminates the process through the fatal
// path with a formatted message.
func (l *Logger) Abortf(format string, args ...any) {
	file, line := callerOrigin(1)
	l.failAndAbort(1, "ABORT: ", file, line, fmt.Sprintf(format, args...))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
