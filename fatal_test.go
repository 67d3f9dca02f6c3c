package scribe

import (
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fatal path dispatches exactly one Error-level stack trace, then
// one Fatal-level failure, runs the fatal handler once, then exits.
func TestFatalPathSequence(t *testing.T) {
	t.Parallel()

	l, _, _ := newTestLogger(t)

	var events []string
	l.AddSink("recorder", func(ctx any, m *Message) {
		events = append(events, fmt.Sprintf("sink:%d:%s", m.Verbosity, m.Prefix))
	}, nil, Max, nil)
	l.SetFatalHandler(func() { events = append(events, "handler") })

	exitCode := -1
	l.exit = func(code int) {
		exitCode = code
		events = append(events, "exit")
	}

	l.Check(false, "x != nil")

	require.Len(t, events, 4)
	assert.Equal(t, "sink:-2:Stack trace:\n", events[0])
	assert.Equal(t, "sink:-3:CHECK FAILED:  x != nil  ", events[1])
	assert.Equal(t, "handler", events[2])
	assert.Equal(t, "exit", events[3])
	assert.Equal(t, 1, exitCode)
}

func TestFatalStackTraceContent(t *testing.T) {
	t.Parallel()

	l, alert, _ := newTestLogger(t)
	l.exit = func(int) {}

	l.Checkf(false, "1 == 2", "math is broken: %d", 42)

	out := alert.String()
	assert.Contains(t, out, "Stack trace:")
	assert.Contains(t, out, "TestFatalStackTraceContent",
		"the failing call site appears in the trace")
	assert.NotContains(t, out, "failAndAbort", "the fatal machinery's own frames are skipped")
	assert.Contains(t, out, "FATL| CHECK FAILED:  1 == 2  math is broken: 42")
}

func TestChecksPassWithoutAborting(t *testing.T) {
	t.Parallel()

	l, alert, _ := newTestLogger(t)
	l.exit = func(int) { t.Fatal("passing check must not abort") }

	l.Check(true, "true")
	l.Checkf(true, "true", "unused %d", 1)
	l.CheckNotNil(t, "t")
	l.CheckNoErr(nil)
	assert.Empty(t, alert.String())
}

func TestCheckNotNilTypedNil(t *testing.T) {
	t.Parallel()

	l, alert, _ := newTestLogger(t)
	l.exit = func(int) {}

	var p *int
	l.CheckNotNil(p, "p")
	assert.Contains(t, alert.String(), "CHECK FAILED:  p != nil")
}

func TestCheckNoErrDetail(t *testing.T) {
	t.Parallel()

	l, alert, _ := newTestLogger(t)
	l.exit = func(int) {}

	l.CheckNoErr(fmt.Errorf("disk on fire"))
	assert.Contains(t, alert.String(), "CHECK FAILED:  err == nil  disk on fire")
}

func TestAbortfMessage(t *testing.T) {
	t.Parallel()

	l, alert, _ := newTestLogger(t)
	l.exit = func(int) {}

	l.Abortf("giving up after %d retries", 3)
	assert.Contains(t, alert.String(), "ABORT: giving up after 3 retries")
}

func TestFatalHandlerRunsOnce(t *testing.T) {
	t.Parallel()

	l, _, _ := newTestLogger(t)
	l.exit = func(int) {}

	runs := 0
	l.SetFatalHandler(func() { runs++ })
	l.Abortf("boom")
	assert.Equal(t, 1, runs)
}

// Real termination, verified in a subprocess.
func TestFatalTerminatesProcess(t *testing.T) {
	if os.Getenv("BE_CRASHER") == "1" {
		cfg := DefaultConfig()
		cfg.Colors = ColorsOff
		l, err := New(cfg)
		if err != nil {
			fmt.Println(err)
			return
		}
		l.Abortf("crashing on purpose")
		fmt.Println("UNREACHABLE")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalTerminatesProcess")
	cmd.Env = append(os.Environ(), "BE_CRASHER=1")
	out, err := cmd.CombinedOutput()

	e, ok := err.(*exec.ExitError)
	require.True(t, ok, "process ran with err %v, want exit status 1", err)
	assert.False(t, e.Success())
	assert.NotContains(t, string(out), "UNREACHABLE")
	assert.Contains(t, string(out), "ABORT: crashing on purpose")
}
