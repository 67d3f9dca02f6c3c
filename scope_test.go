package scribe

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exitLineRe = regexp.MustCompile(`(?m)\} (\d+\.\d{3}) s: (.+)$`)

func scopeElapsed(t *testing.T, out string, label string) float64 {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		m := exitLineRe.FindStringSubmatch(line)
		if m != nil && m[2] == label {
			sec, err := strconv.ParseFloat(m[1], 64)
			require.NoError(t, err)
			return sec
		}
	}
	t.Fatalf("no exit line for scope %q in output:\n%s", label, out)
	return 0
}

func TestScopeEntryExitPair(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)

	s := l.Scopef(Info, "work %d", 1)
	l.Infof("inside")
	s.End()

	out := normal.String()
	assert.Contains(t, out, "{ work 1")
	assert.Contains(t, out, ".   ", "body inside the scope is indented")
	assert.Regexp(t, exitLineRe, out)

	elapsed := scopeElapsed(t, out, "work 1")
	assert.GreaterOrEqual(t, elapsed, 0.0)
}

func TestScopeElapsedGrowsWithDelay(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)

	fast := l.Scope(Info, "fast")
	fast.End()

	slow := l.Scope(Info, "slow")
	time.Sleep(30 * time.Millisecond)
	slow.End()

	out := normal.String()
	assert.Greater(t, scopeElapsed(t, out, "slow"), scopeElapsed(t, out, "fast"))
	assert.GreaterOrEqual(t, scopeElapsed(t, out, "slow"), 0.030)
}

// A scope below the threshold is inert: no messages, no indentation.
func TestDisabledScope(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)
	l.SetVerbosity(Info)

	s := l.Scopef(2, "invisible")
	l.Infof("not indented")
	s.End()

	out := normal.String()
	assert.NotContains(t, out, "invisible")
	assert.NotContains(t, out, ".   ")
	assert.Zero(t, l.indentDepth.Load())
}

func TestNestedScopesIndent(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)

	outer := l.Scope(Info, "outer")
	inner := l.Scope(Info, "inner")
	l.Infof("deep")
	inner.End()
	outer.End()

	var deepLine string
	for _, line := range strings.Split(normal.String(), "\n") {
		if strings.Contains(line, "deep") {
			deepLine = line
		}
	}
	assert.Contains(t, deepLine, ".   .   deep")
	assert.Zero(t, l.indentDepth.Load(), "depth restored after all scopes end")
}

func TestScopeEndIdempotent(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)

	s := l.Scope(Info, "once")
	s.End()
	s.End()

	assert.Equal(t, 1, strings.Count(normal.String(), "} "), "End fires once")
	assert.Zero(t, l.indentDepth.Load())
}

// The exit line is emitted at the entry's indentation level.
func TestScopeExitIndentLevel(t *testing.T) {
	t.Parallel()

	l, _, normal := newTestLogger(t)

	outer := l.Scope(Info, "outer")
	inner := l.Scope(Info, "inner")
	inner.End()
	outer.End()

	for _, line := range strings.Split(normal.String(), "\n") {
		if strings.Contains(line, "} ") && strings.Contains(line, "inner") {
			assert.Contains(t, line, "| .   } ", "inner exit keeps one level of indentation")
		}
	}
}
